package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/igorsal/api-console/internal/interfaces"
	pkgerrors "github.com/igorsal/api-console/pkg/errors"
)

// decodeJSON reads at most limit bytes of r's body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit)).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			appErr := pkgerrors.NewValidationError("request body too large")
			appErr.StatusCode = http.StatusRequestEntityTooLarge
			return appErr
		}
		return pkgerrors.NewValidationError("invalid request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, logger interfaces.Logger, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", err)
	}
}
