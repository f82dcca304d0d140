package service

import (
	"fmt"
	"strings"
	"time"

	"finhealth/internal/catalog"
	"finhealth/internal/model"
	"finhealth/internal/scoring"
)

// FormatAnswers renders the answer store grouped by category for the email body
func FormatAnswers(c *catalog.Catalog, answers model.AnswerStore) string {
	var b strings.Builder
	for i, cat := range c.Categories() {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s. %s\n", cat.ID, cat.Title)
		for _, q := range cat.Questions {
			fmt.Fprintf(&b, "  %s %s\n    %s\n", q.ID, q.Text, describeAnswer(answers, q.ID))
		}
	}
	return b.String()
}

func describeAnswer(answers model.AnswerStore, id string) string {
	a, ok := answers[id]
	if !ok || a.Exists == nil {
		return "Not answered (scored 1/5)"
	}
	if !*a.Exists {
		return "Control in place: No (scored 1/5)"
	}
	return fmt.Sprintf("Control in place: Yes, effectiveness %d/5", scoring.EffectiveScore(answers, id))
}

// FormatSummary renders indexes, flags and recommendations as plain text
func FormatSummary(c *catalog.Catalog, r *model.AssessmentResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fraud-Resistance Index (FRI): %.1f - %s\n", r.Indexes.FRI, r.Classifications.FRI)
	fmt.Fprintf(&b, "Decision Readiness Index (DRI): %.1f - %s\n", r.Indexes.DRI, r.Classifications.DRI)
	fmt.Fprintf(&b, "Finance Execution Index (FEI): %.1f - %s\n", r.Indexes.FEI, r.Classifications.FEI)

	b.WriteString("\nCategory averages:\n")
	for _, cat := range c.Categories() {
		fmt.Fprintf(&b, "  %s %s: %.1f\n", cat.ID, cat.Title, r.CategoryAverages[cat.ID])
	}

	if len(r.CriticalFlags) > 0 {
		fmt.Fprintf(&b, "\nCritical flags: %s\n", strings.Join(r.CriticalFlags, ", "))
	}

	if len(r.TopActions) > 0 {
		b.WriteString("\nTop actions:\n")
		for i, a := range r.TopActions {
			fmt.Fprintf(&b, "  %d. [%s, %d/5] %s\n", i+1, a.QuestionID, a.Score, a.ActionText)
		}
	}

	if len(r.StrongAreas) > 0 {
		b.WriteString("\nStrong areas:\n")
		for _, s := range r.StrongAreas {
			fmt.Fprintf(&b, "  - [%s, %d/5] %s\n", s.QuestionID, s.Score, s.Text)
		}
	}
	return b.String()
}

// BuildEmail assembles the collaborator payload for a completed assessment
func BuildEmail(c *catalog.Catalog, state model.WizardState, result *model.AssessmentResult, meta model.SubmissionMeta, country string) *model.EmailMessage {
	return &model.EmailMessage{
		ReplyTo:          state.Lead.Email,
		SubmitterName:    state.Lead.Name,
		SubmitterCompany: state.Lead.Company,
		FormattedAnswers: FormatAnswers(c, state.Answers),
		ResultsSummary:   FormatSummary(c, result),
		Sector:           state.Lead.Sector,
		ERPSystem:        state.Lead.ERPSystem,
		Country:          country,
		Timestamp:        result.CompletedAt.Format(time.RFC3339),
		SourceURL:        meta.SourceURL,
	}
}
