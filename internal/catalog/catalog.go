// Package catalog holds the fixed question set of the finance health
// assessment together with the remediation text for each question.
package catalog

import (
	"errors"
	"fmt"

	"finhealth/internal/model"
)

var (
	ErrEmptyCatalog      = errors.New("catalog has no questions")
	ErrDuplicateQuestion = errors.New("duplicate question id")
)

// Catalog is an immutable, ordered question set
type Catalog struct {
	categories  []model.Category
	questions   []model.Question
	byID        map[string]int
	titles      map[model.CategoryID]string
	actions     map[string]string
	moneySafety []string
}

// New builds a catalog and checks that question ids are unique and that
// every question belongs to the category it is listed under.
func New(categories []model.Category, actions map[string]string, moneySafety []string) (*Catalog, error) {
	c := &Catalog{
		byID:        make(map[string]int),
		titles:      make(map[model.CategoryID]string, len(categories)),
		actions:     make(map[string]string, len(actions)),
		moneySafety: append([]string(nil), moneySafety...),
	}

	for _, cat := range categories {
		copied := model.Category{ID: cat.ID, Title: cat.Title}
		for _, q := range cat.Questions {
			if q.CategoryID != cat.ID {
				return nil, fmt.Errorf("question %s: category %q listed under %q", q.ID, q.CategoryID, cat.ID)
			}
			if _, dup := c.byID[q.ID]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateQuestion, q.ID)
			}
			c.byID[q.ID] = len(c.questions)
			c.questions = append(c.questions, q)
			copied.Questions = append(copied.Questions, q)
		}
		c.titles[cat.ID] = cat.Title
		c.categories = append(c.categories, copied)
	}
	if len(c.questions) == 0 {
		return nil, ErrEmptyCatalog
	}

	for id, text := range actions {
		c.actions[id] = text
	}
	for _, id := range c.moneySafety {
		if _, ok := c.byID[id]; !ok {
			return nil, fmt.Errorf("money-safety question %s not in catalog", id)
		}
	}
	return c, nil
}

// Default returns the built-in 36-question assessment.
// It panics if the built-in tables are inconsistent, which tests guard against.
func Default() *Catalog {
	c, err := New(defaultCategories(), defaultActions(), defaultMoneySafety())
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in tables invalid: %v", err))
	}
	return c
}

// Categories returns the categories in display order
func (c *Catalog) Categories() []model.Category {
	out := make([]model.Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = model.Category{
			ID:        cat.ID,
			Title:     cat.Title,
			Questions: append([]model.Question(nil), cat.Questions...),
		}
	}
	return out
}

// Questions returns every question flattened in catalog order
func (c *Catalog) Questions() []model.Question {
	return append([]model.Question(nil), c.questions...)
}

// Len is the total number of questions
func (c *Catalog) Len() int {
	return len(c.questions)
}

// At returns the question at a flattened position
func (c *Catalog) At(i int) (model.Question, bool) {
	if i < 0 || i >= len(c.questions) {
		return model.Question{}, false
	}
	return c.questions[i], true
}

// Lookup finds a question by id
func (c *Catalog) Lookup(id string) (model.Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Question{}, false
	}
	return c.questions[i], true
}

// CategoryTitle returns the display title of a category
func (c *Catalog) CategoryTitle(id model.CategoryID) string {
	return c.titles[id]
}

// ActionText returns the pre-authored remediation for a question
func (c *Catalog) ActionText(id string) (string, bool) {
	text, ok := c.actions[id]
	return text, ok
}

// MoneySafetyIDs are the questions that raise the critical money safety flag
func (c *Catalog) MoneySafetyIDs() []string {
	return append([]string(nil), c.moneySafety...)
}
