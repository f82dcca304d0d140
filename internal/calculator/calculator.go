// Package calculator holds the named tax calculators offered next to the
// assessment: each one multiplies an amount by a fixed rate.
package calculator

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"finhealth/internal/model"
)

var (
	ErrUnknownCalculator = errors.New("unknown calculator")
	ErrInvalidAmount     = errors.New("amount must be a non-negative number")
	ErrInvalidRate       = errors.New("rate must be between 0 and 1")
)

// Rate configures one calculator
type Rate struct {
	Label string  `yaml:"label" json:"label"`
	Rate  float64 `yaml:"rate" json:"rate"`
}

// DefaultRates returns the built-in calculators
func DefaultRates() map[string]Rate {
	return map[string]Rate{
		"vat":         {Label: "VAT", Rate: 0.15},
		"withholding": {Label: "Withholding Tax", Rate: 0.05},
		"zakat":       {Label: "Zakat", Rate: 0.025},
	}
}

// Registry looks calculators up by name
type Registry struct {
	rates map[string]Rate
}

// NewRegistry validates the rates and builds a registry
func NewRegistry(rates map[string]Rate) (*Registry, error) {
	r := &Registry{rates: make(map[string]Rate, len(rates))}
	for name, rate := range rates {
		if math.IsNaN(rate.Rate) || rate.Rate < 0 || rate.Rate > 1 {
			return nil, fmt.Errorf("calculator %q: %w", name, ErrInvalidRate)
		}
		if rate.Label == "" {
			rate.Label = name
		}
		r.rates[name] = rate
	}
	return r, nil
}

// List returns the calculators sorted by name
func (r *Registry) List() []model.CalculatorInfo {
	out := make([]model.CalculatorInfo, 0, len(r.rates))
	for name, rate := range r.rates {
		out = append(out, model.CalculatorInfo{Name: name, Label: rate.Label, Rate: rate.Rate})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Calculate applies the named rate. Tax is rounded to 2 dp.
func (r *Registry) Calculate(name string, amount float64) (*model.TaxCalculation, error) {
	rate, ok := r.rates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCalculator, name)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return nil, ErrInvalidAmount
	}

	tax := round2(amount * rate.Rate)
	return &model.TaxCalculation{
		Calculator: name,
		Amount:     amount,
		Rate:       rate.Rate,
		Tax:        tax,
		Total:      round2(amount + tax),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
