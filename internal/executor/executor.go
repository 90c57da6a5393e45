// Package executor runs one console request: it builds the wire call, issues
// it exactly once and narrates each step as activity entries.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/igorsal/api-console/internal/activity"
	"github.com/igorsal/api-console/internal/headers"
	"github.com/igorsal/api-console/internal/interfaces"
	"github.com/igorsal/api-console/internal/models"
)

// Executor issues requests for a single HTTP method
type Executor struct {
	method   models.Method
	sender   interfaces.Sender
	narrator *activity.Narrator
	logger   interfaces.Logger
}

// NewExecutor creates an executor bound to method
func NewExecutor(method models.Method, sender interfaces.Sender, narrator *activity.Narrator, logger interfaces.Logger) *Executor {
	return &Executor{
		method:   method,
		sender:   sender,
		narrator: narrator,
		logger:   logger,
	}
}

// Method returns the HTTP method this executor issues
func (e *Executor) Method() models.Method {
	return e.method
}

// Execute issues cfg once. Any status is a normal completion. When no
// response is obtained the returned result has nil Data, still carries the
// activities, and the transport error is returned with it.
func (e *Executor) Execute(ctx context.Context, cfg models.RequestConfig) (*models.ExecutionResult, error) {
	requestID := activity.NewRequestID()
	activities := []models.ActivityEntry{e.narrator.RequestStart(requestID)}

	wire := headers.Build(cfg.Headers, cfg.Auth)
	var body []byte
	if e.method.AcceptsBody() && cfg.Body != nil {
		body = encodeBody(*cfg.Body, wire)
	}

	activities = append(activities, e.narrator.RequestSending(requestID, cfg))
	if entry, ok := e.narrator.AuthAttached(requestID, cfg.Auth); ok {
		activities = append(activities, entry)
	}

	startTime := time.Now()
	reply, err := e.sender.Send(ctx, models.UpstreamCall{
		Method:  e.method,
		URL:     cfg.URL,
		Headers: wire,
		Body:    body,
	})
	elapsed := time.Since(startTime).Milliseconds()

	if err != nil {
		e.logger.Warn("Console request failed", "request_id", requestID, "method", e.method, "error", err.Error())
		activities = append(activities, e.narrator.RequestError(requestID, err))
		return &models.ExecutionResult{Activities: activities}, err
	}

	data := normalize(reply, elapsed)
	activities = append(activities,
		e.narrator.RequestSuccess(requestID, data.Status, data.StatusText, data.ResponseTime),
		e.narrator.ResponseParsed(requestID, data.ResponseSize),
	)

	e.logger.Debug("Console request completed",
		"request_id", requestID,
		"method", e.method,
		"status", data.Status,
		"response_time_ms", data.ResponseTime,
	)

	return &models.ExecutionResult{Data: data, Activities: activities}, nil
}

// encodeBody sends JSON text compacted with a JSON content type, unless the
// caller already chose one. Anything else goes out verbatim.
func encodeBody(text string, wire map[string]string) []byte {
	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(text)); err != nil {
		return []byte(text)
	}

	if !hasHeader(wire, headers.ContentType) {
		wire[headers.ContentType] = "application/json"
	}
	return compact.Bytes()
}

func hasHeader(wire map[string]string, name string) bool {
	for key := range wire {
		if strings.EqualFold(key, name) {
			return true
		}
	}
	return false
}

func normalize(reply *models.UpstreamReply, elapsedMs int64) *models.ResponseData {
	body, size := decodeBody(reply.Body)

	return &models.ResponseData{
		Status:       reply.StatusCode,
		StatusText:   reply.StatusText,
		Headers:      flattenHeaders(reply.Headers),
		Body:         body,
		ResponseTime: elapsedMs,
		ResponseSize: size,
	}
}

// decodeBody returns the parsed JSON value and the length of its compact
// serialization, or the raw text and its length.
func decodeBody(raw []byte) (any, int) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return string(raw), len(raw)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(parsed); err != nil {
		return parsed, len(raw)
	}
	return parsed, len(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for name, values := range h {
		result[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	return result
}
