// Package wizard implements the question → lead form → results flow as a
// pure reducer over model.WizardState. Callers own persistence; nothing here
// keeps state between calls.
package wizard

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"finhealth/internal/model"
)

var (
	ErrNotAnswered          = errors.New("current question is not answered")
	ErrWrongStep            = errors.New("action not allowed at this step")
	ErrInvalidEffectiveness = errors.New("effectiveness must be between 1 and 5")
	ErrControlNotPresent    = errors.New("effectiveness requires the control to exist")
	ErrSubmitInProgress     = errors.New("submission already in progress")
	ErrNotSubmitting        = errors.New("no submission in progress")
	ErrFinished             = errors.New("assessment already completed")
)

// ValidationError lists the lead form fields that failed validation
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid lead form: " + strings.Join(e.Fields, ", ")
}

// Action is an input event for the reducer
type Action interface {
	isAction()
}

// SetExists records whether the control in the current question exists
type SetExists struct{ Exists bool }

// SetEffectiveness records the 1–5 rating of an existing control
type SetEffectiveness struct{ Value int }

// Next advances past the current question
type Next struct{}

// Back returns to the previous screen
type Back struct{}

// SubmitStarted validates the lead and marks a submission as outstanding
type SubmitStarted struct{ Lead model.LeadForm }

// SubmitSucceeded completes the wizard with the computed result
type SubmitSucceeded struct{ Result model.AssessmentResult }

// SubmitFailed returns to the lead form after a delivery failure
type SubmitFailed struct{ Reason string }

func (SetExists) isAction()        {}
func (SetEffectiveness) isAction() {}
func (Next) isAction()             {}
func (Back) isAction()             {}
func (SubmitStarted) isAction()    {}
func (SubmitSucceeded) isAction()  {}
func (SubmitFailed) isAction()     {}

// Wizard binds the reducer to a question count
type Wizard struct {
	total     int
	questions []string
}

// New creates a wizard over the ordered question ids
func New(questionIDs []string) *Wizard {
	return &Wizard{
		total:     len(questionIDs),
		questions: append([]string(nil), questionIDs...),
	}
}

// Total is the number of question steps
func (w *Wizard) Total() int {
	return w.total
}

// Initial returns the starting state Question(0)
func (w *Wizard) Initial() model.WizardState {
	return model.WizardState{
		Step:    model.StepQuestion,
		Index:   0,
		Answers: model.AnswerStore{},
	}
}

// CurrentQuestionID returns the id shown at Question(i)
func (w *Wizard) CurrentQuestionID(s model.WizardState) (string, bool) {
	if s.Step != model.StepQuestion || s.Index < 0 || s.Index >= w.total {
		return "", false
	}
	return w.questions[s.Index], true
}

// CanProceed reports whether Next is allowed from the current question
func (w *Wizard) CanProceed(s model.WizardState) bool {
	id, ok := w.CurrentQuestionID(s)
	if !ok {
		return false
	}
	return s.Answers[id].IsAnswered()
}

// Reduce applies an action and returns the next state. On error the
// returned state is the input state unchanged.
func (w *Wizard) Reduce(s model.WizardState, a Action) (model.WizardState, error) {
	if s.Step == model.StepResults {
		return s, ErrFinished
	}
	next := s
	next.Answers = s.Answers.Clone()

	switch act := a.(type) {
	case SetExists:
		id, ok := w.CurrentQuestionID(next)
		if !ok {
			return s, ErrWrongStep
		}
		ans := next.Answers[id]
		if act.Exists {
			if ans.Exists != nil && !*ans.Exists {
				// the forced floor rating was never chosen by the user
				ans.Effectiveness = nil
			}
			ans.Exists = model.BoolPtr(true)
		} else {
			ans.Exists = model.BoolPtr(false)
			ans.Effectiveness = model.IntPtr(model.MinEffectiveness)
		}
		next.Answers[id] = ans
		return next, nil

	case SetEffectiveness:
		id, ok := w.CurrentQuestionID(next)
		if !ok {
			return s, ErrWrongStep
		}
		if act.Value < model.MinEffectiveness || act.Value > model.MaxEffectiveness {
			return s, ErrInvalidEffectiveness
		}
		ans := next.Answers[id]
		if ans.Exists == nil || !*ans.Exists {
			return s, ErrControlNotPresent
		}
		ans.Effectiveness = model.IntPtr(act.Value)
		next.Answers[id] = ans
		return next, nil

	case Next:
		if next.Step != model.StepQuestion {
			return s, ErrWrongStep
		}
		if !w.CanProceed(next) {
			return s, ErrNotAnswered
		}
		if next.Index+1 < w.total {
			next.Index++
		} else {
			next.Step = model.StepLeadForm
		}
		return next, nil

	case Back:
		switch next.Step {
		case model.StepQuestion:
			if next.Index > 0 {
				next.Index--
			}
		case model.StepLeadForm:
			if next.Submitting {
				return s, ErrSubmitInProgress
			}
			next.Step = model.StepQuestion
			next.Index = w.total - 1
			next.LastError = ""
		}
		return next, nil

	case SubmitStarted:
		if next.Step != model.StepLeadForm {
			return s, ErrWrongStep
		}
		if next.Submitting {
			return s, ErrSubmitInProgress
		}
		lead := normalizeLead(act.Lead)
		if err := ValidateLead(lead); err != nil {
			return s, err
		}
		next.Lead = lead
		next.Submitting = true
		next.LastError = ""
		return next, nil

	case SubmitSucceeded:
		if next.Step != model.StepLeadForm || !next.Submitting {
			return s, ErrNotSubmitting
		}
		result := act.Result
		next.Step = model.StepResults
		next.Submitting = false
		next.LastError = ""
		next.Result = &result
		return next, nil

	case SubmitFailed:
		if next.Step != model.StepLeadForm || !next.Submitting {
			return s, ErrNotSubmitting
		}
		next.Submitting = false
		next.LastError = act.Reason
		return next, nil
	}

	return s, fmt.Errorf("wizard: unknown action %T", a)
}

// ValidateLead checks the required lead form fields and consent
func ValidateLead(l model.LeadForm) error {
	var missing []string
	if strings.TrimSpace(l.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(l.Company) == "" {
		missing = append(missing, "company")
	}
	email := strings.TrimSpace(l.Email)
	if email == "" {
		missing = append(missing, "email")
	} else if _, err := mail.ParseAddress(email); err != nil {
		missing = append(missing, "email")
	}
	if !l.Consent {
		missing = append(missing, "consent")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

func normalizeLead(l model.LeadForm) model.LeadForm {
	l.Name = strings.TrimSpace(l.Name)
	l.Company = strings.TrimSpace(l.Company)
	l.Email = strings.TrimSpace(l.Email)
	l.Phone = strings.TrimSpace(l.Phone)
	l.Sector = strings.TrimSpace(l.Sector)
	l.ERPSystem = strings.TrimSpace(l.ERPSystem)
	return l
}
