// Package events publishes domain events for downstream consumers.
package events

import (
	"context"
	"time"
)

// Routing keys.
const (
	ReservationCreated       = "reservation.created"
	ReservationCancelled     = "reservation.cancelled"
	ReservationStatusChanged = "reservation.status_changed"
	PaymentCompleted         = "payment.completed"
)

type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       EventData `json:"data"`
}

type EventData struct {
	ReservationID     *int64  `json:"reservation_id,omitempty"`
	ReservationNumber string  `json:"reservation_number,omitempty"`
	RoomID            *int64  `json:"room_id,omitempty"`
	UserID            *int64  `json:"user_id,omitempty"`
	PaymentID         *int64  `json:"payment_id,omitempty"`
	TransactionID     string  `json:"transaction_id,omitempty"`
	Amount            float64 `json:"amount,omitempty"`
	Status            string  `json:"status,omitempty"`
	PreviousStatus    string  `json:"previous_status,omitempty"`
}

func New(eventType string, data EventData) Event {
	return Event{Type: eventType, OccurredAt: time.Now().UTC(), Data: data}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event; used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

func Int64(v int64) *int64 { return &v }
