// Package scoring reduces an answer snapshot into the composite indexes,
// status bands and ranked recommendations of a finance health assessment.
// Every function is total: missing answers score as the worst case.
package scoring

import (
	"math"
	"sort"
	"time"

	"finhealth/internal/catalog"
	"finhealth/internal/model"
)

const (
	maxTopActions  = 5
	maxStrongAreas = 3
	strongScore    = 4
	floorScore     = 1
)

// Engine scores answers against one catalog
type Engine struct {
	catalog    *catalog.Catalog
	weights    WeightSet
	thresholds Thresholds
	now        func() time.Time
}

// Option customises an Engine
type Option func(*Engine)

// WithWeights overrides the index formulas
func WithWeights(w WeightSet) Option {
	return func(e *Engine) { e.weights = w }
}

// WithThresholds overrides the status bands
func WithThresholds(t Thresholds) Option {
	return func(e *Engine) { e.thresholds = t }
}

// WithClock sets the clock used for CompletedAt
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine, rejecting weights or thresholds that break
// their invariants.
func NewEngine(c *catalog.Catalog, opts ...Option) (*Engine, error) {
	e := &Engine{
		catalog:    c,
		weights:    DefaultWeights(),
		thresholds: DefaultThresholds(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.weights.Validate(); err != nil {
		return nil, err
	}
	if err := e.thresholds.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Catalog returns the question set this engine scores against
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Assess computes the full result for an answer snapshot
func (e *Engine) Assess(answers model.AnswerStore) model.AssessmentResult {
	averages := CategoryAverages(e.catalog, answers)
	indexes := ComputeIndexes(averages, e.weights)

	return model.AssessmentResult{
		CategoryAverages: averages,
		Indexes:          indexes,
		Classifications: model.Classifications{
			FRI: ClassifyWith(indexes.FRI, e.thresholds),
			DRI: ClassifyWith(indexes.DRI, e.thresholds),
			FEI: ClassifyWith(indexes.FEI, e.thresholds),
		},
		CriticalFlags: DetectCriticalFlags(e.catalog, answers),
		TopActions:    RankActions(e.catalog, answers),
		StrongAreas:   RankStrengths(e.catalog, answers),
		CompletedAt:   e.now().UTC(),
	}
}

// EffectiveScore is the score used for aggregation: 1 when unanswered or the
// control does not exist, otherwise the effectiveness rating.
func EffectiveScore(answers model.AnswerStore, questionID string) int {
	a, ok := answers[questionID]
	if !ok {
		return floorScore
	}
	if a.Exists != nil && !*a.Exists {
		return floorScore
	}
	if a.Effectiveness == nil {
		return floorScore
	}
	return *a.Effectiveness
}

// CategoryAverages averages effective scores per category, rounded to 1 dp
func CategoryAverages(c *catalog.Catalog, answers model.AnswerStore) map[model.CategoryID]float64 {
	out := make(map[model.CategoryID]float64)
	for _, cat := range c.Categories() {
		if len(cat.Questions) == 0 {
			out[cat.ID] = floorScore
			continue
		}
		sum := 0
		for _, q := range cat.Questions {
			sum += EffectiveScore(answers, q.ID)
		}
		out[cat.ID] = round1(float64(sum) / float64(len(cat.Questions)))
	}
	return out
}

// ComputeIndexes applies the weight formulas to category averages.
// A category missing from averages counts as the floor score.
func ComputeIndexes(averages map[model.CategoryID]float64, w WeightSet) model.Indexes {
	return model.Indexes{
		FRI: weighted(averages, w.FRI),
		DRI: weighted(averages, w.DRI),
		FEI: weighted(averages, w.FEI),
	}
}

func weighted(averages map[model.CategoryID]float64, terms IndexWeights) float64 {
	total := 0.0
	for _, t := range terms {
		avg, ok := averages[t.Category]
		if !ok {
			avg = floorScore
		}
		total += t.Weight * avg
	}
	return round1(total)
}

// Classify maps an index value to a status using the default bands
func Classify(v float64) model.Status {
	return ClassifyWith(v, DefaultThresholds())
}

// ClassifyWith maps an index value to a status using inclusive lower bounds
func ClassifyWith(v float64, t Thresholds) model.Status {
	switch {
	case v >= t.Strong:
		return model.StatusStrong
	case v >= t.Stable:
		return model.StatusStable
	case v >= t.AtRisk:
		return model.StatusAtRisk
	default:
		return model.StatusCritical
	}
}

// DetectCriticalFlags raises the money safety flag once if any money-safety
// question sits at the floor score.
func DetectCriticalFlags(c *catalog.Catalog, answers model.AnswerStore) []string {
	flags := []string{}
	for _, id := range c.MoneySafetyIDs() {
		if EffectiveScore(answers, id) == floorScore {
			flags = append(flags, model.CriticalMoneySafetyGap)
			break
		}
	}
	return flags
}

// RankActions returns the five lowest-scoring questions with their
// remediation text. Equal scores keep catalog order.
func RankActions(c *catalog.Catalog, answers model.AnswerStore) []model.Action {
	questions := c.Questions()
	actions := make([]model.Action, 0, len(questions))
	for _, q := range questions {
		text, ok := c.ActionText(q.ID)
		if !ok {
			text = "Review and strengthen: " + q.Text
		}
		actions = append(actions, model.Action{
			QuestionID: q.ID,
			Text:       q.Text,
			ActionText: text,
			Score:      EffectiveScore(answers, q.ID),
		})
	}

	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Score < actions[j].Score
	})

	if len(actions) > maxTopActions {
		actions = actions[:maxTopActions]
	}
	return actions
}

// RankStrengths returns up to three questions scoring 4 or more, taken in
// catalog order rather than by score.
func RankStrengths(c *catalog.Catalog, answers model.AnswerStore) []model.Strength {
	out := []model.Strength{}
	for _, q := range c.Questions() {
		score := EffectiveScore(answers, q.ID)
		if score < strongScore {
			continue
		}
		out = append(out, model.Strength{QuestionID: q.ID, Text: q.Text, Score: score})
		if len(out) == maxStrongAreas {
			break
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
