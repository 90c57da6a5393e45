package handlers

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/igorsal/api-console/internal/interfaces"
)

type HealthHandler struct {
	logger  interfaces.Logger
	version string
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// NewHealthHandler creates a health handler. An empty fallback version is
// replaced by build information when available.
func NewHealthHandler(logger interfaces.Logger, fallbackVersion string) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		version: getVersion(fallbackVersion),
	}
}

// Handle processes health check requests
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode health response", err)
		return
	}

	h.logger.Debug("Health check completed successfully")
}

// getVersion returns build version information
func getVersion(fallback string) string {
	if info, ok := debug.ReadBuildInfo(); ok {
		// Try to get version from VCS info
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				if len(setting.Value) > 7 {
					return setting.Value[:7] // Short commit hash
				}
				return setting.Value
			}
		}

		// Fallback to module version if available
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}

	if fallback != "" {
		return fallback
	}
	return "dev"
}
