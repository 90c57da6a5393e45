package models

import (
	"net/http"
	"time"
)

// UpstreamCall is one wire-level request
type UpstreamCall struct {
	Method  Method
	URL     string
	Headers map[string]string
	Body    []byte
}

// UpstreamReply is a reachable response of any status
type UpstreamReply struct {
	StatusCode int
	StatusText string
	Headers    http.Header
	Body       []byte
	Elapsed    time.Duration
}

// IsSuccess reports a 2xx status
func (r *UpstreamReply) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
