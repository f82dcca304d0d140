package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"finhealth/internal/calculator"
	"finhealth/internal/service"
	"finhealth/internal/wizard"
)

type fieldError struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

// writeServiceError maps domain errors to HTTP statuses. Anything unknown
// is logged and reported as a 500 without detail.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var verr *wizard.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, fieldError{Error: verr.Error(), Fields: verr.Fields})

	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, wizard.ErrInvalidEffectiveness),
		errors.Is(err, calculator.ErrInvalidAmount):
		writeError(w, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, wizard.ErrNotAnswered),
		errors.Is(err, wizard.ErrWrongStep),
		errors.Is(err, wizard.ErrControlNotPresent),
		errors.Is(err, wizard.ErrSubmitInProgress),
		errors.Is(err, wizard.ErrNotSubmitting),
		errors.Is(err, wizard.ErrFinished),
		errors.Is(err, service.ErrNotCompleted):
		writeError(w, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrSubmissionFailed):
		writeError(w, http.StatusBadGateway, service.ErrSubmissionFailed.Error())

	case errors.Is(err, service.ErrEmptyChatInput):
		writeError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, calculator.ErrUnknownCalculator):
		writeError(w, http.StatusNotFound, err.Error())

	default:
		logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
