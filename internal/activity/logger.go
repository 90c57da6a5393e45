// Package activity produces the human readable narration attached to each
// console request. Entries are values; callers own the slice they append to.
package activity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/igorsal/api-console/internal/models"
)

const tokenPreviewLen = 4

// Narrator creates timestamped entries. The zero value is not usable; use New.
type Narrator struct {
	now   func() time.Time
	newID func() string
}

// New returns a Narrator using the wall clock and random ids.
func New() *Narrator {
	return &Narrator{
		now:   time.Now,
		newID: func() string { return "activity_" + uuid.NewString() },
	}
}

// NewWithClock returns a Narrator with a fixed clock, for deterministic output.
func NewWithClock(now func() time.Time) *Narrator {
	n := New()
	n.now = now
	return n
}

// NewRequestID returns an id correlating all entries of one logical request.
func NewRequestID() string {
	return "req_" + uuid.NewString()
}

func (n *Narrator) create(requestID string, t models.ActivityType, message string) models.ActivityEntry {
	return models.ActivityEntry{
		ID:        n.newID(),
		Timestamp: n.now().UnixMilli(),
		RequestID: requestID,
		Type:      t,
		Message:   message,
	}
}

func (n *Narrator) RequestStart(requestID string) models.ActivityEntry {
	return n.create(requestID, models.ActivityInfo, "Preparing request...")
}

func (n *Narrator) RequestSending(requestID string, cfg models.RequestConfig) models.ActivityEntry {
	return n.create(requestID, models.ActivityInfo, fmt.Sprintf("Sending %s to %s", cfg.Method, cfg.URL))
}

// AuthAttached reports the auth header that will be attached, with secrets
// masked. ok is false when no auth is configured.
func (n *Narrator) AuthAttached(requestID string, auth models.AuthConfig) (entry models.ActivityEntry, ok bool) {
	switch auth.Type {
	case models.AuthBearer:
		token := ""
		if auth.Bearer != nil {
			token = auth.Bearer.Token
		}
		return n.create(requestID, models.ActivityInfo,
			fmt.Sprintf("Attached Authorization header (Bearer %s)", MaskToken(token))), true
	case models.AuthAPIKey:
		name := ""
		if auth.APIKey != nil {
			name = auth.APIKey.HeaderName
		}
		return n.create(requestID, models.ActivityInfo,
			fmt.Sprintf("Attached API Key header (%s)", name)), true
	case models.AuthCustom:
		return n.create(requestID, models.ActivityInfo, "Attached custom authentication headers"), true
	}
	return models.ActivityEntry{}, false
}

func (n *Narrator) RequestSuccess(requestID string, status int, statusText string, elapsedMs int64) models.ActivityEntry {
	return n.create(requestID, models.ActivitySuccess,
		fmt.Sprintf("Received %d %s in %dms", status, statusText, elapsedMs))
}

func (n *Narrator) ResponseParsed(requestID string, size int) models.ActivityEntry {
	return n.create(requestID, models.ActivitySuccess,
		fmt.Sprintf("Parsed %.1fkb response body", float64(size)/1024))
}

func (n *Narrator) RequestError(requestID string, err error) models.ActivityEntry {
	message := "Request failed"
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return n.create(requestID, models.ActivityError, message)
}

// MaskToken keeps the first four characters of a secret.
func MaskToken(token string) string {
	runes := []rune(token)
	if len(runes) > tokenPreviewLen {
		runes = runes[:tokenPreviewLen]
	}
	return string(runes) + "****"
}
