package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/igorsal/api-console/internal/interfaces"
	pkgerrors "github.com/igorsal/api-console/pkg/errors"
)

// ErrorResponse is the body of every error answer
type ErrorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type,omitempty"`
}

// WriteError answers with the status of an AppError, or 500 with a generic
// message for anything else.
func WriteError(w http.ResponseWriter, r *http.Request, logger interfaces.Logger, err error) {
	statusCode := http.StatusInternalServerError
	resp := ErrorResponse{
		Error: "Internal server error",
		Type:  string(pkgerrors.ErrorTypeInternal),
	}

	if appErr, ok := pkgerrors.AsAppError(err); ok {
		statusCode = appErr.StatusCode
		resp = ErrorResponse{
			Error: appErr.Message,
			Type:  string(appErr.Type),
		}
	}

	if statusCode >= http.StatusInternalServerError {
		logger.Error("Request error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"status_code", statusCode,
			"error_type", resp.Type,
		)
	} else {
		logger.Warn("Request rejected",
			"method", r.Method,
			"path", r.URL.Path,
			"status_code", statusCode,
			"error", resp.Error,
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to encode error response", err)
	}
}

// PanicRecoveryMiddleware recovers from panics and answers 500
func PanicRecoveryMiddleware(logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovery := recover(); recovery != nil {
					if recovery == http.ErrAbortHandler {
						panic(recovery)
					}

					cause := pkgerrors.NewInternalError("Internal server error").
						WithCause(fmt.Errorf("panic: %v", recovery))
					WriteError(w, r, logger, cause)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
