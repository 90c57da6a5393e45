package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/igorsal/api-console/internal/interfaces"
)

// MetricsMiddleware tracks HTTP request metrics. The endpoint label is the
// route template so path parameters do not multiply series.
func MetricsMiddleware(metrics interfaces.MetricsCollector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &metricsResponseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			labels := map[string]string{
				"method":      r.Method,
				"endpoint":    endpointLabel(r),
				"status_code": strconv.Itoa(wrapped.statusCode),
			}

			metrics.IncrementCounter("http_requests_total", labels)
			metrics.RecordDuration("http_request_duration_seconds", duration, labels)
		})
	}
}

func endpointLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}

type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (mrw *metricsResponseWriter) WriteHeader(code int) {
	if !mrw.wroteHeader {
		mrw.statusCode = code
		mrw.wroteHeader = true
	}
	mrw.ResponseWriter.WriteHeader(code)
}

func (mrw *metricsResponseWriter) Write(b []byte) (int, error) {
	mrw.wroteHeader = true
	return mrw.ResponseWriter.Write(b)
}
