package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegexParserShapes(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		wantAnswer      string
		wantSuggestions []string
	}{
		{
			name:       "plain text",
			body:       "Cash flow forecasting means projecting receipts and payments.",
			wantAnswer: "Cash flow forecasting means projecting receipts and payments.",
		},
		{
			name:       "object with output",
			body:       `{"output": "Reconcile bank accounts monthly."}`,
			wantAnswer: "Reconcile bank accounts monthly.",
		},
		{
			name:       "array wrapped object",
			body:       `[{"response": "Segregate duties between approval and payment."}]`,
			wantAnswer: "Segregate duties between approval and payment.",
		},
		{
			name:       "json string",
			body:       `"Keep a fixed asset register."`,
			wantAnswer: "Keep a fixed asset register.",
		},
		{
			name:            "explicit suggestions",
			body:            `{"answer": "VAT is 15%.", "suggestions": ["How do I file VAT returns?", "short", "What is the VAT registration threshold?"]}`,
			wantAnswer:      "VAT is 15%.",
			wantSuggestions: []string{"How do I file VAT returns?", "What is the VAT registration threshold?"},
		},
		{
			name: "header in text",
			body: "Zakat is due annually on qualifying assets.\n\n**Suggested questions:**\n1. How is the zakat base calculated?\n2. Ok?\n- When is zakat filing due?\n* Can zakat be paid in instalments?\n3. Which assets are exempt from zakat?\n4. What penalties apply for late filing?",
			wantAnswer: "Zakat is due annually on qualifying assets.",
			wantSuggestions: []string{
				"How is the zakat base calculated?",
				"When is zakat filing due?",
				"Can zakat be paid in instalments?",
				"Which assets are exempt from zakat?",
			},
		},
		{
			name:            "follow-up header inside json output",
			body:            `{"output": "Use a 13-week forecast.\nYou might also ask:\n- How often should I update it?"}`,
			wantAnswer:      "Use a 13-week forecast.",
			wantSuggestions: []string{"How often should I update it?"},
		},
	}

	p := RegexParser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, suggestions := p.Parse([]byte(tt.body))
			assert.Equal(t, tt.wantAnswer, answer)
			if tt.wantSuggestions == nil {
				assert.Empty(t, suggestions)
			} else {
				assert.Equal(t, tt.wantSuggestions, suggestions)
			}
		})
	}
}

func TestRegexParserUnusableBodies(t *testing.T) {
	p := RegexParser{}
	for _, body := range []string{"", "   ", `{"status": "ok"}`, `[]`, `42`} {
		answer, _ := p.Parse([]byte(body))
		assert.Empty(t, answer, body)
	}
}
