// Package headers turns console header rows and auth descriptors into wire headers.
package headers

import (
	"net/http"

	"github.com/igorsal/api-console/internal/models"
)

const (
	Authorization = "Authorization"
	ContentType   = "Content-Type"
	Accept        = "Accept"

	mimeJSON = "application/json"
)

// Build merges enabled header entries and the auth descriptor. Keys are
// canonicalized, so later entries overwrite earlier ones whatever their case;
// auth headers are applied last.
func Build(entries []models.HeaderEntry, auth models.AuthConfig) map[string]string {
	result := make(map[string]string)
	merge(result, entries)

	switch auth.Type {
	case models.AuthAPIKey:
		if auth.APIKey != nil && auth.APIKey.HeaderName != "" {
			result[http.CanonicalHeaderKey(auth.APIKey.HeaderName)] = auth.APIKey.Value
		}
	case models.AuthBearer:
		if auth.Bearer != nil {
			result[Authorization] = "Bearer " + auth.Bearer.Token
		}
	case models.AuthCustom:
		merge(result, auth.CustomHeaders)
	}

	return result
}

// Vendor returns the fixed header set used for every vendor API call.
func Vendor(token string) map[string]string {
	return map[string]string{
		Authorization: "Bearer " + token,
		ContentType:   mimeJSON,
		Accept:        mimeJSON,
	}
}

func merge(dst map[string]string, entries []models.HeaderEntry) {
	for _, h := range entries {
		if h.Enabled && h.Key != "" && h.Value != "" {
			dst[http.CanonicalHeaderKey(h.Key)] = h.Value
		}
	}
}
