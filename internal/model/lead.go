package model

import "time"

// LeadForm is the contact form shown after the last question
type LeadForm struct {
	Name      string `json:"name" bson:"name"`
	Company   string `json:"company" bson:"company"`
	Email     string `json:"email" bson:"email"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`
	Sector    string `json:"sector,omitempty" bson:"sector,omitempty"`
	ERPSystem string `json:"erpSystem,omitempty" bson:"erpSystem,omitempty"`
	Consent   bool   `json:"consent" bson:"consent"`
}

// SubmissionMeta is request context captured at submit time
type SubmissionMeta struct {
	RemoteIP  string `json:"-"`
	SourceURL string `json:"sourceUrl"`
}

// Submission is the archived record of a delivered assessment
type Submission struct {
	ID               string           `json:"id" bson:"_id,omitempty"`
	SessionID        string           `json:"sessionId" bson:"sessionId"`
	Lead             LeadForm         `json:"lead" bson:"lead"`
	Result           AssessmentResult `json:"result" bson:"result"`
	FormattedAnswers string           `json:"formattedAnswers" bson:"formattedAnswers"`
	ResultsSummary   string           `json:"resultsSummary" bson:"resultsSummary"`
	Country          string           `json:"country,omitempty" bson:"country,omitempty"`
	SourceURL        string           `json:"sourceUrl,omitempty" bson:"sourceUrl,omitempty"`
	CreatedAt        time.Time        `json:"createdAt" bson:"createdAt"`
}

// EmailMessage is what the email-delivery collaborator receives
type EmailMessage struct {
	Recipient        string `json:"recipient"`
	ReplyTo          string `json:"reply_to"`
	SubmitterName    string `json:"submitter_name"`
	SubmitterCompany string `json:"submitter_company"`
	FormattedAnswers string `json:"formatted_answers"`
	ResultsSummary   string `json:"results_summary"`
	Sector           string `json:"sector"`
	ERPSystem        string `json:"erp_system"`
	Country          string `json:"country,omitempty"`
	Timestamp        string `json:"timestamp"`
	SourceURL        string `json:"source_url"`
}
