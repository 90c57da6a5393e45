package models

// Method is an HTTP method accepted by the console
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// AcceptsBody reports whether a request body is sent for the method
func (m Method) AcceptsBody() bool {
	return m == MethodPost || m == MethodPut || m == MethodPatch
}

// AuthType selects the active AuthConfig variant
type AuthType string

const (
	AuthNone   AuthType = "none"
	AuthAPIKey AuthType = "apiKey"
	AuthBearer AuthType = "bearer"
	AuthCustom AuthType = "custom"
)

// HeaderEntry is one user supplied header row
type HeaderEntry struct {
	ID      string `json:"id,omitempty"`
	Key     string `json:"key"`
	Value   string `json:"value"`
	Enabled bool   `json:"enabled"`
}

type APIKeyAuth struct {
	HeaderName string `json:"headerName"`
	Value      string `json:"value"`
}

type BearerAuth struct {
	Token string `json:"token"`
}

// AuthConfig is a tagged variant; only the field matching Type is read.
type AuthConfig struct {
	Type          AuthType      `json:"type" validate:"omitempty,oneof=none apiKey bearer custom"`
	APIKey        *APIKeyAuth   `json:"apiKey,omitempty"`
	Bearer        *BearerAuth   `json:"bearer,omitempty"`
	CustomHeaders []HeaderEntry `json:"customHeaders,omitempty"`
}

// RequestConfig describes one console request
type RequestConfig struct {
	Method  Method        `json:"method" validate:"required"`
	URL     string        `json:"url" validate:"required"`
	Headers []HeaderEntry `json:"headers"`
	Auth    AuthConfig    `json:"auth"`
	Body    *string       `json:"body,omitempty"`
}

// ResponseData is the normalized outcome of one call
type ResponseData struct {
	Status       int               `json:"status"`
	StatusText   string            `json:"statusText"`
	Headers      map[string]string `json:"headers"`
	Body         any               `json:"body"`
	ResponseTime int64             `json:"responseTime"`
	ResponseSize int               `json:"responseSize"`
}

type ActivityType string

const (
	ActivityInfo    ActivityType = "info"
	ActivitySuccess ActivityType = "success"
	ActivityError   ActivityType = "error"
	ActivityWarning ActivityType = "warning"
)

// ActivityEntry is one narration line for a request
type ActivityEntry struct {
	ID        string       `json:"id"`
	Timestamp int64        `json:"timestamp"`
	RequestID string       `json:"requestId"`
	Type      ActivityType `json:"type"`
	Message   string       `json:"message"`
}

// ExecutionResult pairs the response with its narration. Data is nil when no
// response was obtained.
type ExecutionResult struct {
	Data       *ResponseData   `json:"data,omitempty"`
	Activities []ActivityEntry `json:"activities"`
}

// APIResponse is the envelope returned to the console for a single request
type APIResponse struct {
	Success    bool            `json:"success"`
	Data       *ResponseData   `json:"data,omitempty"`
	Activities []ActivityEntry `json:"activities"`
	Error      string          `json:"error,omitempty"`
}
