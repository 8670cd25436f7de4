package events

import (
	"time"

	"github.com/resolvenow/complaint-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintCreated       EventType = "complaint_created"
	EventComplaintStatusChanged EventType = "complaint_status_changed"
	EventComplaintResolved      EventType = "complaint_resolved"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	ProfileID string             `json:"profile_id"`
	Role      domain.ProfileRole `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ComplaintID string      `json:"complaint_id"`
	Actor       Actor       `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// ComplaintCreatedPayload payload.
type ComplaintCreatedPayload struct {
	CategoryID string                   `json:"category_id"`
	Priority   domain.ComplaintPriority `json:"priority"`
	Title      string                   `json:"title"`
}

// ComplaintStatusChangedPayload payload.
type ComplaintStatusChangedPayload struct {
	OldStatus     domain.ComplaintStatus `json:"old_status"`
	NewStatus     domain.ComplaintStatus `json:"new_status"`
	AdminResponse *string                `json:"admin_response,omitempty"`
}

// ComplaintResolvedPayload payload.
type ComplaintResolvedPayload struct {
	ResolvedAt time.Time `json:"resolved_at"`
}
