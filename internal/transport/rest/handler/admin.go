package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"finhealth/internal/service"
	"finhealth/internal/transport/rest/middleware"
)

// AdminHandler exposes archived submissions
type AdminHandler struct {
	submissionSvc *service.SubmissionService
	logger        *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(submissionSvc *service.SubmissionService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{submissionSvc: submissionSvc, logger: logger}
}

// ListSubmissions handles GET /v1/admin/submissions?limit=&offset=
//
//	@Summary	List archived submissions
//	@Tags		admin
//	@Produce	json
//	@Param		limit	query	int	false	"page size (max 100)"
//	@Param		offset	query	int	false	"offset"
//	@Success	200		{array}	model.Submission
//	@Security	BearerAuth
//	@Router		/admin/submissions [get]
func (h *AdminHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	subs, err := h.submissionSvc.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	h.logger.Debug("submissions listed",
		zap.String("adminId", middleware.GetAdminID(r.Context())),
		zap.Int("count", len(subs)),
	)
	writeJSON(w, http.StatusOK, subs)
}

// GetSubmission handles GET /v1/admin/submissions/{id}
func (h *AdminHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	sub, err := h.submissionSvc.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if sub == nil {
		writeError(w, http.StatusNotFound, "submission not found")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func queryInt(r *http.Request, key string, def int64) int64 {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}
