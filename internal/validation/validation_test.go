package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igorsal/api-console/internal/models"
	pkgerrors "github.com/igorsal/api-console/pkg/errors"
)

func TestStructMessages(t *testing.T) {
	v := New()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"missing method", models.RequestConfig{URL: "http://x"}, "method is required"},
		{"missing url", models.RequestConfig{Method: models.MethodGet}, "url is required"},
		{"bad auth type", models.RequestConfig{Method: models.MethodGet, URL: "u", Auth: models.AuthConfig{Type: "oauth"}}, "type must be one of: none apiKey bearer custom"},
		{"empty rows", models.ProductImportRequest{URL: "u", Token: "t", Rows: []models.CSVRow{}}, "rows must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)

			appErr, ok := pkgerrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, pkgerrors.ErrorTypeValidation, appErr.Type)
			assert.Equal(t, tt.want, appErr.Message)
		})
	}
}

func TestStructAcceptsValid(t *testing.T) {
	assert.NoError(t, New().Struct(models.RequestConfig{Method: models.MethodGet, URL: "http://x"}))
}
