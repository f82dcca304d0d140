package model

// CategoryID identifies one of the six assessment categories
type CategoryID string

const (
	CategoryFraud     CategoryID = "A" // Fraud & Money Safety
	CategoryControls  CategoryID = "B" // Internal Controls
	CategoryCashFlow  CategoryID = "C" // Cash Flow
	CategoryReporting CategoryID = "D" // Reporting
	CategoryTeam      CategoryID = "E" // Finance Team
	CategorySystems   CategoryID = "F" // Systems & Data
)

// Question is a single yes/no + effectiveness control question
type Question struct {
	ID         string     `json:"id" bson:"id"` // e.g., "A1", "F6"
	Text       string     `json:"text" bson:"text"`
	CategoryID CategoryID `json:"categoryId" bson:"categoryId"`
}

// Category groups the questions of one assessment area
type Category struct {
	ID        CategoryID `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}
