package handler

import (
	"net/http"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"finhealth/internal/geo"
	"finhealth/internal/model"
	"finhealth/internal/service"
	"finhealth/internal/transport/rest/middleware"
)

// AssessmentHandler handles the wizard endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
	proxies       *geo.TrustedProxies
	logger        *zap.Logger
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService, proxies *geo.TrustedProxies, logger *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentSvc: assessmentSvc,
		proxies:       proxies,
		logger:        logger,
	}
}

// Start handles POST /v1/assessments
//
//	@Summary	Start an assessment
//	@Tags		assessments
//	@Produce	json
//	@Success	201	{object}	model.StartSessionResponse
//	@Router		/assessments [post]
func (h *AssessmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	resp, err := h.assessmentSvc.Start(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Current handles GET /v1/assessments/current
func (h *AssessmentHandler) Current(w http.ResponseWriter, r *http.Request) {
	view, err := h.assessmentSvc.Get(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Answer handles PUT /v1/assessments/current/answer
//
//	@Summary	Answer the current question
//	@Tags		assessments
//	@Accept		json
//	@Produce	json
//	@Param		body	body		service.AnswerInput	true	"exists and/or effectiveness"
//	@Success	200		{object}	model.SessionView
//	@Failure	409		{object}	map[string]string
//	@Failure	422		{object}	map[string]string
//	@Security	BearerAuth
//	@Router		/assessments/current/answer [put]
func (h *AssessmentHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req service.AnswerInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.assessmentSvc.Answer(r.Context(), middleware.GetSessionID(r.Context()), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Next handles POST /v1/assessments/current/next
func (h *AssessmentHandler) Next(w http.ResponseWriter, r *http.Request) {
	view, err := h.assessmentSvc.Next(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Back handles POST /v1/assessments/current/back
func (h *AssessmentHandler) Back(w http.ResponseWriter, r *http.Request) {
	view, err := h.assessmentSvc.Back(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SubmitRequest is the lead form plus the page it was sent from
type SubmitRequest struct {
	model.LeadForm
	SourceURL string `json:"sourceUrl"`
}

// Submit handles POST /v1/assessments/current/submit
//
//	@Summary	Submit the lead form and receive results
//	@Tags		assessments
//	@Accept		json
//	@Produce	json
//	@Param		body	body		SubmitRequest	true	"lead form"
//	@Success	200		{object}	model.SessionView
//	@Failure	422		{object}	map[string]string
//	@Failure	502		{object}	map[string]string
//	@Security	BearerAuth
//	@Router		/assessments/current/submit [post]
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sourceURL := req.SourceURL
	if sourceURL == "" {
		sourceURL = r.Referer()
	}
	meta := model.SubmissionMeta{
		RemoteIP:  h.proxies.ClientIP(r),
		SourceURL: sourceURL,
	}

	view, err := h.assessmentSvc.Submit(r.Context(), middleware.GetSessionID(r.Context()), req.LeadForm, meta)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Result handles GET /v1/assessments/current/result
func (h *AssessmentHandler) Result(w http.ResponseWriter, r *http.Request) {
	result, err := h.assessmentSvc.Result(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
