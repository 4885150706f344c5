package model

import "time"

const (
	TableName  = "booking_audit_logs"
	EntityName = "booking_audit_log"

	FieldID         = "id"
	FieldBookingID  = "booking_id"
	FieldOccurredAt = "occurred_at"
)

// AuditLog is one stored booking event. ID is the event id, so redelivered events collide.
type AuditLog struct {
	ID           string    `db:"id"`
	BookingID    string    `db:"booking_id"`
	Action       string    `db:"action"`
	FromStatus   string    `db:"from_status"`
	ToStatus     string    `db:"to_status"`
	ResourceKind string    `db:"resource_kind"`
	ResourceName string    `db:"resource_name"`
	Actor        string    `db:"actor"`
	OccurredAt   time.Time `db:"occurred_at"`
	RecordedAt   time.Time `db:"recorded_at"`
}
