package model

// Effectiveness bounds for a control that exists
const (
	MinEffectiveness = 1
	MaxEffectiveness = 5
)

// Answer is the user's response to one question.
// Exists == false implies Effectiveness == 1.
type Answer struct {
	Exists        *bool `json:"exists" bson:"exists"`
	Effectiveness *int  `json:"effectiveness" bson:"effectiveness"`
}

// IsAnswered reports whether the question counts as answered
func (a Answer) IsAnswered() bool {
	if a.Exists == nil {
		return false
	}
	if !*a.Exists {
		return true
	}
	return a.Effectiveness != nil
}

// AnswerStore maps question ID to the recorded answer
type AnswerStore map[string]Answer

// Clone returns a deep copy so reducers never share pointers with callers
func (s AnswerStore) Clone() AnswerStore {
	out := make(AnswerStore, len(s))
	for id, a := range s {
		var c Answer
		if a.Exists != nil {
			v := *a.Exists
			c.Exists = &v
		}
		if a.Effectiveness != nil {
			v := *a.Effectiveness
			c.Effectiveness = &v
		}
		out[id] = c
	}
	return out
}

// BoolPtr and IntPtr are small helpers for building answers
func BoolPtr(v bool) *bool { return &v }

func IntPtr(v int) *int { return &v }
