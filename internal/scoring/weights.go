package scoring

import (
	"fmt"
	"math"

	"finhealth/internal/model"
)

const weightTolerance = 0.001

// Term is one weighted category inside a composite index
type Term struct {
	Category model.CategoryID `yaml:"category" json:"category"`
	Weight   float64          `yaml:"weight" json:"weight"`
}

// IndexWeights is the linear combination behind one composite index
type IndexWeights []Term

// Sum returns the total of the weights
func (w IndexWeights) Sum() float64 {
	total := 0.0
	for _, t := range w {
		total += t.Weight
	}
	return total
}

// WeightSet holds the formulas for FRI, DRI and FEI
type WeightSet struct {
	FRI IndexWeights `yaml:"fri" json:"fri"`
	DRI IndexWeights `yaml:"dri" json:"dri"`
	FEI IndexWeights `yaml:"fei" json:"fei"`
}

// DefaultWeights returns the product-defined index formulas.
//
//	FRI = 0.45*A + 0.30*B + 0.25*F
//	DRI = 0.45*D + 0.35*C + 0.20*F
//	FEI = 0.40*E + 0.30*B + 0.30*D
func DefaultWeights() WeightSet {
	return WeightSet{
		FRI: IndexWeights{
			{Category: model.CategoryFraud, Weight: 0.45},
			{Category: model.CategoryControls, Weight: 0.30},
			{Category: model.CategorySystems, Weight: 0.25},
		},
		DRI: IndexWeights{
			{Category: model.CategoryReporting, Weight: 0.45},
			{Category: model.CategoryCashFlow, Weight: 0.35},
			{Category: model.CategorySystems, Weight: 0.20},
		},
		FEI: IndexWeights{
			{Category: model.CategoryTeam, Weight: 0.40},
			{Category: model.CategoryControls, Weight: 0.30},
			{Category: model.CategoryReporting, Weight: 0.30},
		},
	}
}

// Validate checks every index sums to 1.0 and no weight is negative
func (w WeightSet) Validate() error {
	for name, idx := range map[string]IndexWeights{"fri": w.FRI, "dri": w.DRI, "fei": w.FEI} {
		if len(idx) == 0 {
			return fmt.Errorf("%s: no terms", name)
		}
		if math.Abs(idx.Sum()-1.0) > weightTolerance {
			return fmt.Errorf("%s: weights sum to %.4f, must sum to 1.0", name, idx.Sum())
		}
		for _, t := range idx {
			if t.Weight < 0 {
				return fmt.Errorf("%s: negative weight %f for category %s", name, t.Weight, t.Category)
			}
		}
	}
	return nil
}

// Thresholds are inclusive lower bounds for each status above Critical
type Thresholds struct {
	Strong float64 `yaml:"strong" json:"strong"`
	Stable float64 `yaml:"stable" json:"stable"`
	AtRisk float64 `yaml:"at_risk" json:"atRisk"`
}

// DefaultThresholds returns the product-defined status bands
func DefaultThresholds() Thresholds {
	return Thresholds{Strong: 4.0, Stable: 3.2, AtRisk: 2.4}
}

// Validate checks the bands are strictly descending
func (t Thresholds) Validate() error {
	if !(t.Strong > t.Stable && t.Stable > t.AtRisk) {
		return fmt.Errorf("thresholds must descend: strong %.2f, stable %.2f, at_risk %.2f", t.Strong, t.Stable, t.AtRisk)
	}
	return nil
}
