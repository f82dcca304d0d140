package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhealth/internal/model"
)

func TestDefaultCatalogShape(t *testing.T) {
	c := Default()

	require.Equal(t, 36, c.Len())
	cats := c.Categories()
	require.Len(t, cats, 6)

	wantIDs := []model.CategoryID{"A", "B", "C", "D", "E", "F"}
	for i, cat := range cats {
		assert.Equal(t, wantIDs[i], cat.ID)
		assert.NotEmpty(t, cat.Title)
		assert.GreaterOrEqual(t, len(cat.Questions), 4)
		assert.LessOrEqual(t, len(cat.Questions), 6)
	}

	first, ok := c.At(0)
	require.True(t, ok)
	assert.Equal(t, "A1", first.ID)

	last, ok := c.At(c.Len() - 1)
	require.True(t, ok)
	assert.Equal(t, "F6", last.ID)

	_, ok = c.At(c.Len())
	assert.False(t, ok)
}

func TestEveryQuestionHasActionText(t *testing.T) {
	c := Default()
	for _, q := range c.Questions() {
		text, ok := c.ActionText(q.ID)
		assert.Truef(t, ok, "missing action text for %s", q.ID)
		assert.NotEmpty(t, text)
	}
}

func TestMoneySafetyIDs(t *testing.T) {
	c := Default()
	ids := c.MoneySafetyIDs()
	require.Len(t, ids, 3)
	for _, id := range ids {
		q, ok := c.Lookup(id)
		require.True(t, ok)
		assert.Equal(t, model.CategoryFraud, q.CategoryID)
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	cats := []model.Category{
		{ID: "A", Title: "A", Questions: []model.Question{
			{ID: "A1", Text: "one", CategoryID: "A"},
			{ID: "A1", Text: "again", CategoryID: "A"},
		}},
	}
	_, err := New(cats, nil, nil)
	assert.ErrorIs(t, err, ErrDuplicateQuestion)
}

func TestNewRejectsMisfiledQuestion(t *testing.T) {
	cats := []model.Category{
		{ID: "A", Title: "A", Questions: []model.Question{
			{ID: "B1", Text: "wrong place", CategoryID: "B"},
		}},
	}
	_, err := New(cats, nil, nil)
	assert.Error(t, err)
}

func TestNewRejectsUnknownMoneySafetyID(t *testing.T) {
	cats := []model.Category{
		{ID: "A", Title: "A", Questions: []model.Question{{ID: "A1", Text: "x", CategoryID: "A"}}},
	}
	_, err := New(cats, nil, []string{"Z9"})
	assert.Error(t, err)
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(nil, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestCategoriesReturnsCopy(t *testing.T) {
	c := Default()
	cats := c.Categories()
	cats[0].Questions[0].Text = "mutated"

	q, _ := c.Lookup("A1")
	assert.NotEqual(t, "mutated", q.Text)
}
