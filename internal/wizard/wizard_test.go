package wizard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhealth/internal/model"
)

func newTestWizard() *Wizard {
	return New([]string{"A1", "A2", "B1"})
}

func validLead() model.LeadForm {
	return model.LeadForm{
		Name:    "Sara",
		Company: "Acme Trading",
		Email:   "sara@acme.example",
		Consent: true,
	}
}

func mustReduce(t *testing.T, w *Wizard, s model.WizardState, actions ...Action) model.WizardState {
	t.Helper()
	var err error
	for _, a := range actions {
		s, err = w.Reduce(s, a)
		require.NoError(t, err, "action %T", a)
	}
	return s
}

func TestInitialState(t *testing.T) {
	w := newTestWizard()
	s := w.Initial()

	assert.Equal(t, model.StepQuestion, s.Step)
	assert.Equal(t, 0, s.Index)
	assert.Empty(t, s.Answers)
	assert.False(t, w.CanProceed(s))
}

func TestCanProceedGuard(t *testing.T) {
	w := newTestWizard()
	s := w.Initial()

	assert.False(t, w.CanProceed(s), "unanswered")

	s = mustReduce(t, w, s, SetExists{Exists: true})
	assert.False(t, w.CanProceed(s), "exists without effectiveness")

	for v := model.MinEffectiveness; v <= model.MaxEffectiveness; v++ {
		s2 := mustReduce(t, w, s, SetEffectiveness{Value: v})
		assert.True(t, w.CanProceed(s2), "effectiveness %d", v)
	}

	s = mustReduce(t, w, w.Initial(), SetExists{Exists: false})
	assert.True(t, w.CanProceed(s), "control absent")
	require.NotNil(t, s.Answers["A1"].Effectiveness)
	assert.Equal(t, 1, *s.Answers["A1"].Effectiveness)
}

func TestNextBlockedUntilAnswered(t *testing.T) {
	w := newTestWizard()
	s := w.Initial()

	got, err := w.Reduce(s, Next{})
	assert.ErrorIs(t, err, ErrNotAnswered)
	assert.Equal(t, 0, got.Index)
}

func TestSetEffectivenessRejectsOutOfRange(t *testing.T) {
	w := newTestWizard()
	s := mustReduce(t, w, w.Initial(), SetExists{Exists: true})

	for _, v := range []int{0, 6, -1} {
		_, err := w.Reduce(s, SetEffectiveness{Value: v})
		assert.ErrorIs(t, err, ErrInvalidEffectiveness)
	}
}

func TestSetEffectivenessRequiresExistingControl(t *testing.T) {
	w := newTestWizard()

	_, err := w.Reduce(w.Initial(), SetEffectiveness{Value: 3})
	assert.ErrorIs(t, err, ErrControlNotPresent)

	s := mustReduce(t, w, w.Initial(), SetExists{Exists: false})
	_, err = w.Reduce(s, SetEffectiveness{Value: 3})
	assert.ErrorIs(t, err, ErrControlNotPresent)
}

func TestSwitchingBackToExistsClearsForcedRating(t *testing.T) {
	w := newTestWizard()
	s := mustReduce(t, w, w.Initial(), SetExists{Exists: false}, SetExists{Exists: true})

	assert.Nil(t, s.Answers["A1"].Effectiveness)
	assert.False(t, w.CanProceed(s))
}

func TestForwardFlowReachesLeadForm(t *testing.T) {
	w := newTestWizard()
	s := mustReduce(t, w, w.Initial(),
		SetExists{Exists: true}, SetEffectiveness{Value: 4}, Next{},
		SetExists{Exists: false}, Next{},
		SetExists{Exists: true}, SetEffectiveness{Value: 2}, Next{},
	)

	assert.Equal(t, model.StepLeadForm, s.Step)
	assert.Len(t, s.Answers, 3)
}

func TestBackNavigation(t *testing.T) {
	w := newTestWizard()

	s, err := w.Reduce(w.Initial(), Back{})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Index, "back at first question is a no-op")

	s = mustReduce(t, w, w.Initial(), SetExists{Exists: false}, Next{}, Back{})
	assert.Equal(t, 0, s.Index)
	assert.True(t, w.CanProceed(s), "answer survives navigation")

	s = mustReduce(t, w, w.Initial(),
		SetExists{Exists: false}, Next{},
		SetExists{Exists: false}, Next{},
		SetExists{Exists: false}, Next{},
		Back{},
	)
	assert.Equal(t, model.StepQuestion, s.Step)
	assert.Equal(t, 2, s.Index)
}

func atLeadForm(t *testing.T, w *Wizard) model.WizardState {
	t.Helper()
	return mustReduce(t, w, w.Initial(),
		SetExists{Exists: false}, Next{},
		SetExists{Exists: false}, Next{},
		SetExists{Exists: false}, Next{},
	)
}

func TestSubmitValidation(t *testing.T) {
	w := newTestWizard()
	s := atLeadForm(t, w)

	lead := validLead()
	lead.Consent = false
	lead.Email = "not-an-email"

	got, err := w.Reduce(s, SubmitStarted{Lead: lead})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{"email", "consent"}, verr.Fields)
	assert.Equal(t, model.StepLeadForm, got.Step)
	assert.False(t, got.Submitting)
}

func TestSubmitLifecycle(t *testing.T) {
	w := newTestWizard()
	s := atLeadForm(t, w)

	s = mustReduce(t, w, s, SubmitStarted{Lead: validLead()})
	assert.True(t, s.Submitting)

	_, err := w.Reduce(s, SubmitStarted{Lead: validLead()})
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	_, err = w.Reduce(s, Back{})
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	failed := mustReduce(t, w, s, SubmitFailed{Reason: "submission failed, try again"})
	assert.Equal(t, model.StepLeadForm, failed.Step)
	assert.False(t, failed.Submitting)
	assert.Equal(t, "submission failed, try again", failed.LastError)

	retried := mustReduce(t, w, failed, SubmitStarted{Lead: validLead()})
	assert.Empty(t, retried.LastError)

	done := mustReduce(t, w, retried, SubmitSucceeded{Result: model.AssessmentResult{}})
	assert.Equal(t, model.StepResults, done.Step)
	require.NotNil(t, done.Result)

	_, err = w.Reduce(done, Back{})
	assert.ErrorIs(t, err, ErrFinished)
}

func TestSubmitOutcomeWithoutStart(t *testing.T) {
	w := newTestWizard()
	s := atLeadForm(t, w)

	_, err := w.Reduce(s, SubmitSucceeded{})
	assert.ErrorIs(t, err, ErrNotSubmitting)
	_, err = w.Reduce(s, SubmitFailed{Reason: "x"})
	assert.ErrorIs(t, err, ErrNotSubmitting)
}

func TestQuestionActionsRejectedOnLeadForm(t *testing.T) {
	w := newTestWizard()
	s := atLeadForm(t, w)

	_, err := w.Reduce(s, SetExists{Exists: true})
	assert.ErrorIs(t, err, ErrWrongStep)
	_, err = w.Reduce(s, Next{})
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	w := newTestWizard()
	s := mustReduce(t, w, w.Initial(), SetExists{Exists: true}, SetEffectiveness{Value: 2})

	_ = mustReduce(t, w, s, SetEffectiveness{Value: 5})
	assert.Equal(t, 2, *s.Answers["A1"].Effectiveness)
}

func TestValidateLeadTrimsWhitespace(t *testing.T) {
	lead := validLead()
	lead.Name = "   "
	err := ValidateLead(lead)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"name"}, verr.Fields)
}
