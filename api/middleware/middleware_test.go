package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/igorsal/api-console/pkg/errors"
	"github.com/igorsal/api-console/pkg/logger"
	"github.com/igorsal/api-console/pkg/metrics"
)

func TestPanicRecovery(t *testing.T) {
	h := PanicRecoveryMiddleware(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error","type":"internal"}`, rec.Body.String())
}

func TestWriteErrorUsesAppErrorStatus(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, httptest.NewRequest(http.MethodPost, "/api/bulkImport", nil), logger.NewNop(),
		pkgerrors.NewValidationError("url is required"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"url is required","type":"validation"}`, rec.Body.String())
}

func TestWriteErrorHidesUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), logger.NewNop(), assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestMetricsMiddlewareLabelsByRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewPrometheusCollector(reg)

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(collector))
	router.HandleFunc("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.WriteHeader(http.StatusOK)
	})

	for _, path := range []string{"/items/1", "/items/2"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP api_console_http_requests_total Total number of HTTP requests
# TYPE api_console_http_requests_total counter
api_console_http_requests_total{endpoint="/items/{id}",method="GET",status_code="202"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "api_console_http_requests_total"))
}
