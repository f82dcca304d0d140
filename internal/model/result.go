package model

import "time"

// Status classifies a composite index
type Status string

const (
	StatusCritical Status = "Critical"
	StatusAtRisk   Status = "At Risk"
	StatusStable   Status = "Stable"
	StatusStrong   Status = "Strong"
)

// Rank orders statuses from Critical (0) to Strong (3)
func (s Status) Rank() int {
	switch s {
	case StatusStrong:
		return 3
	case StatusStable:
		return 2
	case StatusAtRisk:
		return 1
	default:
		return 0
	}
}

// CriticalMoneySafetyGap is raised when a money-safety control is absent or rated at the floor
const CriticalMoneySafetyGap = "Critical Money Safety Gap"

// Indexes holds the three composite scores
type Indexes struct {
	FRI float64 `json:"fri" bson:"fri"` // Fraud-Resistance Index
	DRI float64 `json:"dri" bson:"dri"` // Decision Readiness Index
	FEI float64 `json:"fei" bson:"fei"` // Finance Execution Index
}

// Classifications holds the status of each composite index
type Classifications struct {
	FRI Status `json:"fri" bson:"fri"`
	DRI Status `json:"dri" bson:"dri"`
	FEI Status `json:"fei" bson:"fei"`
}

// Action is a remediation recommendation for a weak question
type Action struct {
	QuestionID string `json:"questionId" bson:"questionId"`
	Text       string `json:"text" bson:"text"`
	ActionText string `json:"actionText" bson:"actionText"`
	Score      int    `json:"score" bson:"score"`
}

// Strength is a question where the organisation scores well
type Strength struct {
	QuestionID string `json:"questionId" bson:"questionId"`
	Text       string `json:"text" bson:"text"`
	Score      int    `json:"score" bson:"score"`
}

// AssessmentResult is computed once on submission and never mutated
type AssessmentResult struct {
	CategoryAverages map[CategoryID]float64 `json:"categoryAverages" bson:"categoryAverages"`
	Indexes          Indexes                `json:"indexes" bson:"indexes"`
	Classifications  Classifications        `json:"classifications" bson:"classifications"`
	CriticalFlags    []string               `json:"criticalFlags" bson:"criticalFlags"`
	TopActions       []Action               `json:"topActions" bson:"topActions"`
	StrongAreas      []Strength             `json:"strongAreas" bson:"strongAreas"`
	CompletedAt      time.Time              `json:"completedAt" bson:"completedAt"`
}
