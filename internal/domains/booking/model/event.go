package model

import "time"

type EventAction string

const (
	EventCreated       EventAction = "created"
	EventUpdated       EventAction = "updated"
	EventStatusChanged EventAction = "status_changed"
	EventDeleted       EventAction = "deleted"
)

// BookingEvent is published for every write on a booking and stored by the audit worker.
type BookingEvent struct {
	EventID      string      `json:"event_id"`
	BookingID    string      `json:"booking_id"`
	Action       EventAction `json:"action"`
	FromStatus   Status      `json:"from_status,omitempty"`
	ToStatus     Status      `json:"to_status,omitempty"`
	ResourceKind string      `json:"resource_kind"`
	ResourceName string      `json:"resource_name"`
	Actor        string      `json:"actor"`
	OccurredAt   time.Time   `json:"occurred_at"`
}
