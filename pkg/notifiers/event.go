package notifiers

import (
	"time"

	"github.com/google/uuid"

	"github.com/samvad-hq/gallery-client/pkg/apiclient"
)

// KindToast marks events produced from a user-facing toast.
const KindToast = "toast"

// Event represents the payload published downstream.
type Event struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	Type       string    `json:"type"`
	DurationMs int64     `json:"duration_ms"`
	RequestID  string    `json:"request_id,omitempty"`
	Method     string    `json:"method,omitempty"`
	URL        string    `json:"url,omitempty"`
	Status     int       `json:"status,omitempty"`
	Code       int       `json:"code,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewToastEvent constructs an Event for the given toast.
func NewToastEvent(t apiclient.Toast) Event {
	return Event{
		ID:         uuid.NewString(),
		Kind:       KindToast,
		Message:    t.Message,
		Type:       string(t.Type),
		DurationMs: t.Duration.Milliseconds(),
		RequestID:  t.Request.ID,
		Method:     t.Request.Method,
		URL:        t.Request.URL,
		Status:     t.Request.Status,
		Code:       t.Request.Code,
		OccurredAt: time.Now().UTC(),
	}
}
