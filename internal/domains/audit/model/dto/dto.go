package dto

import (
	"time"

	"corpbooking/internal/domains/audit/model"
	bookingModel "corpbooking/internal/domains/booking/model"
	"corpbooking/shared/timezone"
)

func ToModel(event bookingModel.BookingEvent) model.AuditLog {
	return model.AuditLog{
		ID:           event.EventID,
		BookingID:    event.BookingID,
		Action:       string(event.Action),
		FromStatus:   string(event.FromStatus),
		ToStatus:     string(event.ToStatus),
		ResourceKind: event.ResourceKind,
		ResourceName: event.ResourceName,
		Actor:        event.Actor,
		OccurredAt:   event.OccurredAt,
		RecordedAt:   timezone.Now(),
	}
}

type AuditLogResponse struct {
	ID           string    `json:"id"`
	BookingID    string    `json:"booking_id"`
	Action       string    `json:"action"`
	FromStatus   string    `json:"from_status,omitempty"`
	ToStatus     string    `json:"to_status,omitempty"`
	ResourceKind string    `json:"resource_kind"`
	ResourceName string    `json:"resource_name"`
	Actor        string    `json:"actor"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func (r *AuditLogResponse) FromModel(m model.AuditLog) {
	r.ID = m.ID
	r.BookingID = m.BookingID
	r.Action = m.Action
	r.FromStatus = m.FromStatus
	r.ToStatus = m.ToStatus
	r.ResourceKind = m.ResourceKind
	r.ResourceName = m.ResourceName
	r.Actor = m.Actor
	r.OccurredAt = m.OccurredAt
}

type HistoryResponse struct {
	BookingID string             `json:"booking_id"`
	Entries   []AuditLogResponse `json:"entries"`
}

func (r *HistoryResponse) FromModels(bookingID string, models []model.AuditLog) {
	r.BookingID = bookingID
	r.Entries = make([]AuditLogResponse, 0, len(models))

	for _, m := range models {
		var entry AuditLogResponse
		entry.FromModel(m)
		r.Entries = append(r.Entries, entry)
	}
}
