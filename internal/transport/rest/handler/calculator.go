package handler

import (
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"finhealth/internal/calculator"
)

// CalculatorHandler serves the tax calculators
type CalculatorHandler struct {
	registry *calculator.Registry
	logger   *zap.Logger
}

// NewCalculatorHandler creates a new calculator handler
func NewCalculatorHandler(registry *calculator.Registry, logger *zap.Logger) *CalculatorHandler {
	return &CalculatorHandler{registry: registry, logger: logger}
}

// List handles GET /v1/calculators
func (h *CalculatorHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.List())
}

// CalculateRequest is the request body for a calculation
type CalculateRequest struct {
	Amount *float64 `json:"amount"`
}

// Calculate handles POST /v1/calculators/{name}
//
//	@Summary	Apply a tax rate to an amount
//	@Tags		calculators
//	@Accept		json
//	@Produce	json
//	@Param		name	path		string				true	"calculator name"
//	@Param		body	body		CalculateRequest	true	"amount"
//	@Success	200		{object}	model.TaxCalculation
//	@Failure	404		{object}	map[string]string
//	@Router		/calculators/{name} [post]
func (h *CalculatorHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Amount == nil {
		writeError(w, http.StatusBadRequest, "amount is required")
		return
	}

	result, err := h.registry.Calculate(mux.Vars(r)["name"], *req.Amount)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
