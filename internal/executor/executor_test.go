package executor

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igorsal/api-console/internal/activity"
	"github.com/igorsal/api-console/internal/config"
	"github.com/igorsal/api-console/internal/models"
	"github.com/igorsal/api-console/io/upstream"
	pkgerrors "github.com/igorsal/api-console/pkg/errors"
	"github.com/igorsal/api-console/pkg/logger"
	"github.com/igorsal/api-console/pkg/metrics"
)

type capturedRequest struct {
	method  string
	path    string
	headers http.Header
	body    string
}

func newVendor(t *testing.T, status int, contentType, body string) (*httptest.Server, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		captured = append(captured, capturedRequest{
			method:  r.Method,
			path:    r.URL.Path,
			headers: r.Header.Clone(),
			body:    string(b),
		})
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.Header().Add("X-Trace", "a")
		w.Header().Add("X-Trace", "b")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func newDispatcher() *Dispatcher {
	sender := upstream.NewClient(config.UpstreamConfig{}, logger.NewNop(), metrics.NewPrometheusCollector(prometheus.NewRegistry()))
	return NewDispatcher(sender, activity.New(), logger.NewNop())
}

func strPtr(s string) *string { return &s }

func TestPostJSONReturnsCreated(t *testing.T) {
	srv, captured := newVendor(t, http.StatusCreated, "application/json", `{"id":"p1"}`)

	result, err := newDispatcher().Dispatch(context.Background(), models.RequestConfig{
		Method: models.MethodPost,
		URL:    srv.URL + "/products",
		Body:   strPtr(`{ "x": 1 }`),
	})

	require.NoError(t, err)
	require.NotNil(t, result.Data)
	assert.Equal(t, 201, result.Data.Status)
	assert.Equal(t, "Created", result.Data.StatusText)
	assert.Equal(t, map[string]any{"id": "p1"}, result.Data.Body)
	assert.GreaterOrEqual(t, result.Data.ResponseTime, int64(0))
	assert.Equal(t, len(`{"id":"p1"}`), result.Data.ResponseSize)
	assert.Equal(t, "a, b", result.Data.Headers["x-trace"])
	assert.Equal(t, "application/json", result.Data.Headers["content-type"])

	require.Len(t, *captured, 1)
	assert.Equal(t, http.MethodPost, (*captured)[0].method)
	assert.Equal(t, `{"x":1}`, (*captured)[0].body)
	assert.Equal(t, "application/json", (*captured)[0].headers.Get("Content-Type"))

	require.Len(t, result.Activities, 4)
	assert.Equal(t, "Preparing request...", result.Activities[0].Message)
	assert.Equal(t, "Sending POST to "+srv.URL+"/products", result.Activities[1].Message)
	success := result.Activities[2]
	assert.Equal(t, models.ActivitySuccess, success.Type)
	assert.Contains(t, success.Message, "201")
	assert.Equal(t, models.ActivitySuccess, result.Activities[3].Type)
	assert.Contains(t, result.Activities[3].Message, "kb response body")

	for _, a := range result.Activities {
		assert.Equal(t, result.Activities[0].RequestID, a.RequestID)
		assert.NotEqual(t, models.ActivityError, a.Type)
	}
}

func TestErrorStatusesAreData(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		srv, _ := newVendor(t, status, "application/json", `{"title":"nope"}`)

		result, err := newDispatcher().Dispatch(context.Background(), models.RequestConfig{
			Method: models.MethodGet,
			URL:    srv.URL,
		})

		require.NoError(t, err)
		assert.Equal(t, status, result.Data.Status)
		assert.Equal(t, map[string]any{"title": "nope"}, result.Data.Body)
		assert.Contains(t, result.Activities[len(result.Activities)-2].Message, http.StatusText(status))
	}
}

func TestNonJSONBodiesPassThrough(t *testing.T) {
	srv, captured := newVendor(t, http.StatusOK, "text/plain", "hello <world>")

	result, err := newDispatcher().Dispatch(context.Background(), models.RequestConfig{
		Method:  models.MethodPut,
		URL:     srv.URL,
		Headers: []models.HeaderEntry{{Key: "Content-Type", Value: "text/plain", Enabled: true}},
		Body:    strPtr("not {json"),
	})

	require.NoError(t, err)
	assert.Equal(t, "hello <world>", result.Data.Body)
	assert.Equal(t, len("hello <world>"), result.Data.ResponseSize)
	assert.Equal(t, "not {json", (*captured)[0].body)
	assert.Equal(t, "text/plain", (*captured)[0].headers.Get("Content-Type"))
}

func TestUserContentTypeIsKeptForJSON(t *testing.T) {
	srv, captured := newVendor(t, http.StatusOK, "", "")

	_, err := newDispatcher().Dispatch(context.Background(), models.RequestConfig{
		Method:  models.MethodPatch,
		URL:     srv.URL,
		Headers: []models.HeaderEntry{{Key: "content-type", Value: "application/merge-patch+json", Enabled: true}},
		Body:    strPtr(`{"a":true}`),
	})

	require.NoError(t, err)
	assert.Equal(t, "application/merge-patch+json", (*captured)[0].headers.Get("Content-Type"))
}

func TestBodyIgnoredForGetAndDelete(t *testing.T) {
	for _, m := range []models.Method{models.MethodGet, models.MethodDelete} {
		srv, captured := newVendor(t, http.StatusNoContent, "", "")

		result, err := newDispatcher().Dispatch(context.Background(), models.RequestConfig{
			Method: m,
			URL:    srv.URL,
			Body:   strPtr(`{"x":1}`),
		})

		require.NoError(t, err)
		assert.Equal(t, string(m), (*captured)[0].method)
		assert.Empty(t, (*captured)[0].body)
		assert.Equal(t, "", result.Data.Body)
		assert.Zero(t, result.Data.ResponseSize)
	}
}

func TestAuthIsAttachedAndMasked(t *testing.T) {
	srv, captured := newVendor(t, http.StatusOK, "application/json", `[]`)

	result, err := newDispatcher().Dispatch(context.Background(), models.RequestConfig{
		Method: models.MethodGet,
		URL:    srv.URL,
		Auth:   models.AuthConfig{Type: models.AuthBearer, Bearer: &models.BearerAuth{Token: "secret-token"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", (*captured)[0].headers.Get("Authorization"))
	require.Len(t, result.Activities, 5)
	assert.Contains(t, result.Activities[2].Message, "secr****")
	assert.NotContains(t, result.Activities[2].Message, "secret-token")
}

func TestUserAuthorizationEntryIsReplacedByBearer(t *testing.T) {
	srv, captured := newVendor(t, http.StatusOK, "", "")
	d := newDispatcher()

	for i := 0; i < 20; i++ {
		_, err := d.Dispatch(context.Background(), models.RequestConfig{
			Method:  models.MethodGet,
			URL:     srv.URL,
			Headers: []models.HeaderEntry{{Key: "authorization", Value: "stale", Enabled: true}},
			Auth:    models.AuthConfig{Type: models.AuthBearer, Bearer: &models.BearerAuth{Token: "tok"}},
		})
		require.NoError(t, err)
	}

	require.Len(t, *captured, 20)
	for _, req := range *captured {
		assert.Equal(t, []string{"Bearer tok"}, req.headers.Values("Authorization"))
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := srv.URL
	srv.Close()

	result, err := newDispatcher().Dispatch(context.Background(), models.RequestConfig{
		Method: models.MethodPost,
		URL:    target,
		Body:   strPtr(`{"x":1}`),
	})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeExternal))
	require.NotNil(t, result)
	assert.Nil(t, result.Data)
	last := result.Activities[len(result.Activities)-1]
	assert.Equal(t, models.ActivityError, last.Type)
	assert.Equal(t, err.Error(), last.Message)
	for _, a := range result.Activities {
		assert.NotEqual(t, models.ActivitySuccess, a.Type)
	}
}

func TestUnsupportedMethod(t *testing.T) {
	for _, m := range []models.Method{"HEAD", "OPTIONS", "post", ""} {
		result, err := newDispatcher().Dispatch(context.Background(), models.RequestConfig{Method: m, URL: "http://unused"})

		assert.Nil(t, result)
		var unsupported *UnsupportedMethodError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, m, unsupported.Method)
		assert.True(t, strings.HasPrefix(err.Error(), "unsupported HTTP method"))
	}
}

func TestDecodeBodyDoesNotEscapeHTML(t *testing.T) {
	body, size := decodeBody([]byte(`{"html": "<b>"}`))

	assert.Equal(t, map[string]any{"html": "<b>"}, body)
	assert.Equal(t, len(`{"html":"<b>"}`), size)
}
