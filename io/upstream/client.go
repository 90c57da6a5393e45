// Package upstream issues single HTTP calls on behalf of the console. Any
// response that arrives, whatever its status, is returned as data; only
// transport failures are errors.
package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/igorsal/api-console/internal/config"
	"github.com/igorsal/api-console/internal/interfaces"
	"github.com/igorsal/api-console/internal/models"
	pkgerrors "github.com/igorsal/api-console/pkg/errors"
)

type Client struct {
	httpClient *resty.Client
	config     config.UpstreamConfig
	logger     interfaces.Logger
	metrics    interfaces.MetricsCollector

	mu       sync.Mutex
	breakers map[string]interfaces.CircuitBreaker
}

var _ interfaces.Sender = (*Client)(nil)

// NewClient creates an upstream client. Retries are disabled: every Send is
// exactly one attempt.
func NewClient(cfg config.UpstreamConfig, logger interfaces.Logger, metrics interfaces.MetricsCollector) *Client {
	client := resty.New().
		SetRetryCount(0).
		SetTimeout(cfg.Timeout)

	return &Client{
		httpClient: client,
		config:     cfg,
		logger:     logger,
		metrics:    metrics,
		breakers:   make(map[string]interfaces.CircuitBreaker),
	}
}

// circuitBreakerWrapper implements interfaces.CircuitBreaker
type circuitBreakerWrapper struct {
	cb *gobreaker.CircuitBreaker
}

func (w *circuitBreakerWrapper) Execute(req func() (interface{}, error)) (interface{}, error) {
	return w.cb.Execute(req)
}

func (w *circuitBreakerWrapper) Name() string {
	return w.cb.Name()
}

func (w *circuitBreakerWrapper) State() string {
	return w.cb.State().String()
}

// callerGone marks a transport error caused by the caller's context ending.
// It does not count against the vendor's breaker.
type callerGone struct {
	err error
}

func (e *callerGone) Error() string { return e.err.Error() }
func (e *callerGone) Unwrap() error { return e.err }

func countsAsSuccess(err error) bool {
	var gone *callerGone
	return err == nil || errors.As(err, &gone)
}

// passthrough is used when the breaker threshold is zero
type passthrough struct {
	name string
}

func (p passthrough) Execute(req func() (interface{}, error)) (interface{}, error) {
	return req()
}

func (p passthrough) Name() string  { return p.name }
func (p passthrough) State() string { return gobreaker.StateClosed.String() }

// breakerFor returns the breaker guarding host, creating it on first use.
func (c *Client) breakerFor(host string) interfaces.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cb, ok := c.breakers[host]; ok {
		return cb
	}

	var cb interfaces.CircuitBreaker
	if c.config.BreakerThreshold <= 0 {
		cb = passthrough{name: host}
	} else {
		threshold := uint32(c.config.BreakerThreshold)
		cb = &circuitBreakerWrapper{cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        host,
			MaxRequests: 1,
			Timeout:     c.config.BreakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			IsSuccessful: countsAsSuccess,
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				c.logger.Warn("Upstream circuit breaker state changed",
					"name", name,
					"from", from.String(),
					"to", to.String(),
				)
				c.metrics.SetGauge("circuit_breaker_state", float64(to), map[string]string{"name": name})
			},
		})}
	}

	c.breakers[host] = cb
	return cb
}

// Send performs one call. Non-2xx statuses are not errors. The returned error
// is an *errors.AppError of type external (no response) or unavailable
// (breaker open).
func (c *Client) Send(ctx context.Context, call models.UpstreamCall) (*models.UpstreamReply, error) {
	host := hostOf(call.URL)
	cb := c.breakerFor(host)
	startTime := time.Now()

	result, err := cb.Execute(func() (interface{}, error) {
		return c.execute(ctx, call, host)
	})

	duration := time.Since(startTime).Seconds()
	labels := map[string]string{"method": string(call.Method)}

	if err != nil {
		labels["outcome"] = "error"
		c.metrics.RecordDuration("upstream_request_duration_seconds", duration, labels)
		c.metrics.IncrementCounter("upstream_requests_total", labels)

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.Warn("Upstream call rejected by circuit breaker", "host", host, "state", cb.State())
			return nil, pkgerrors.NewUnavailableError(host).WithCause(err)
		}

		c.logger.Error("Upstream call failed", err, "method", call.Method, "host", host)
		return nil, err
	}

	reply := result.(*models.UpstreamReply)
	labels["outcome"] = statusClass(reply.StatusCode)
	c.metrics.RecordDuration("upstream_request_duration_seconds", duration, labels)
	c.metrics.IncrementCounter("upstream_requests_total", labels)

	c.logger.Debug("Upstream call completed",
		"method", call.Method,
		"host", host,
		"status_code", reply.StatusCode,
		"duration_ms", reply.Elapsed.Milliseconds(),
	)

	return reply, nil
}

func (c *Client) execute(ctx context.Context, call models.UpstreamCall, host string) (*models.UpstreamReply, error) {
	req := c.httpClient.R().
		SetContext(ctx).
		SetHeaders(call.Headers)

	if call.Body != nil {
		req.SetBody(call.Body)
	}

	resp, err := req.Execute(string(call.Method), call.URL)
	if err != nil {
		if ctx.Err() != nil {
			err = &callerGone{err: err}
		}
		return nil, pkgerrors.NewExternalError(host, "request failed").WithCause(err)
	}

	return &models.UpstreamReply{
		StatusCode: resp.StatusCode(),
		StatusText: statusText(resp.StatusCode(), resp.Status()),
		Headers:    resp.Header(),
		Body:       resp.Body(),
		Elapsed:    resp.Time(),
	}, nil
}

// statusText strips the numeric code from a status line such as "201 Created".
func statusText(code int, status string) string {
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if text == "" {
		return http.StatusText(code)
	}
	return text
}

func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "other"
	}
	return strconv.Itoa(code/100) + "xx"
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}
