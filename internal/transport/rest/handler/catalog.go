package handler

import (
	"net/http"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"finhealth/internal/model"
	"finhealth/internal/service"
)

// CatalogHandler serves the question catalog and stateless scoring
type CatalogHandler struct {
	assessmentSvc *service.AssessmentService
	logger        *zap.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(assessmentSvc *service.AssessmentService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{assessmentSvc: assessmentSvc, logger: logger}
}

// Catalog handles GET /v1/catalog
//
//	@Summary	List categories and questions
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{array}	model.Category
//	@Router		/catalog [get]
func (h *CatalogHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": h.assessmentSvc.Catalog().Categories(),
		"total":      h.assessmentSvc.Catalog().Len(),
	})
}

// ScoreRequest carries a complete or partial answer map
type ScoreRequest struct {
	Answers model.AnswerStore `json:"answers"`
}

// Score handles POST /v1/score
//
//	@Summary	Score an answer map without a session
//	@Tags		catalog
//	@Accept		json
//	@Produce	json
//	@Param		body	body		ScoreRequest	true	"answers keyed by question id"
//	@Success	200		{object}	model.AssessmentResult
//	@Failure	422		{object}	map[string]string
//	@Router		/score [post]
func (h *CatalogHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Answers == nil {
		req.Answers = model.AnswerStore{}
	}

	result, err := h.assessmentSvc.Score(req.Answers)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
