package model

// TaxCalculation is the result of applying a named rate to an amount
type TaxCalculation struct {
	Calculator string  `json:"calculator"`
	Amount     float64 `json:"amount"`
	Rate       float64 `json:"rate"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
}

// CalculatorInfo describes an available calculator
type CalculatorInfo struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Rate  float64 `json:"rate"`
}
