package model

import "time"

// Step is the wizard screen the user is on
type Step string

const (
	StepQuestion Step = "question"
	StepLeadForm Step = "lead_form"
	StepResults  Step = "results"
)

// WizardState is the explicit snapshot the wizard reducer operates on
type WizardState struct {
	Step       Step              `json:"step"`
	Index      int               `json:"index"` // current question, only meaningful in StepQuestion
	Answers    AnswerStore       `json:"answers"`
	Lead       LeadForm          `json:"lead"`
	Submitting bool              `json:"submitting"`
	LastError  string            `json:"lastError,omitempty"`
	Result     *AssessmentResult `json:"result,omitempty"`
}

// AssessmentSession is the server-side holder of one user's wizard state
type AssessmentSession struct {
	ID        string      `json:"id"`
	State     WizardState `json:"state"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// SessionView is what the API returns for the current wizard position
type SessionView struct {
	SessionID  string            `json:"sessionId"`
	Step       Step              `json:"step"`
	Index      int               `json:"index"`
	Total      int               `json:"total"`
	Question   *Question         `json:"question,omitempty"`
	Category   string            `json:"category,omitempty"`
	Answer     *Answer           `json:"answer,omitempty"`
	CanProceed bool              `json:"canProceed"`
	Submitting bool              `json:"submitting"`
	LastError  string            `json:"lastError,omitempty"`
	Result     *AssessmentResult `json:"result,omitempty"`
}

// StartSessionResponse is returned when a new assessment begins
type StartSessionResponse struct {
	Token string       `json:"token"`
	View  *SessionView `json:"view"`
}
