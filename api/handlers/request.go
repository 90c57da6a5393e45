package handlers

import (
	"errors"
	"net/http"

	"github.com/igorsal/api-console/internal/executor"
	"github.com/igorsal/api-console/internal/interfaces"
	"github.com/igorsal/api-console/internal/models"
	"github.com/igorsal/api-console/internal/validation"
	pkgerrors "github.com/igorsal/api-console/pkg/errors"
)

// RequestHandler runs one console request
type RequestHandler struct {
	dispatcher   interfaces.Dispatcher
	logger       interfaces.Logger
	validator    *validation.Validator
	maxBodyBytes int64
}

func NewRequestHandler(dispatcher interfaces.Dispatcher, logger interfaces.Logger, maxBodyBytes int64) *RequestHandler {
	return &RequestHandler{
		dispatcher:   dispatcher,
		logger:       logger,
		validator:    validation.New(),
		maxBodyBytes: maxBodyBytes,
	}
}

// Handle answers 200 whenever the call was attempted, with success false on
// transport failure. Malformed input and unsupported methods answer 400.
func (h *RequestHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var cfg models.RequestConfig
	if err := decodeJSON(w, r, h.maxBodyBytes, &cfg); err != nil {
		h.reject(w, err)
		return
	}

	if err := h.validator.Struct(cfg); err != nil {
		h.reject(w, err)
		return
	}

	result, err := h.dispatcher.Dispatch(r.Context(), cfg)
	if err != nil {
		var unsupported *executor.UnsupportedMethodError
		if errors.As(err, &unsupported) {
			h.reject(w, pkgerrors.NewRoutingError(unsupported.Error()))
			return
		}

		activities := []models.ActivityEntry{}
		if result != nil {
			activities = result.Activities
		}
		writeJSON(w, h.logger, http.StatusOK, models.APIResponse{
			Success:    false,
			Activities: activities,
			Error:      err.Error(),
		})
		return
	}

	writeJSON(w, h.logger, http.StatusOK, models.APIResponse{
		Success:    true,
		Data:       result.Data,
		Activities: result.Activities,
	})
}

func (h *RequestHandler) reject(w http.ResponseWriter, err error) {
	statusCode := http.StatusBadRequest
	if appErr, ok := pkgerrors.AsAppError(err); ok {
		statusCode = appErr.StatusCode
	}

	h.logger.Warn("Console request rejected", "status_code", statusCode, "error", messageOf(err))
	writeJSON(w, h.logger, statusCode, models.APIResponse{
		Success:    false,
		Activities: []models.ActivityEntry{},
		Error:      messageOf(err),
	})
}

func messageOf(err error) string {
	if appErr, ok := pkgerrors.AsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}
