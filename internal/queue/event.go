// Package queue defines message payloads exchanged over the message broker.
package queue

// AppointmentBookedEvent is published when an appointment is successfully
// booked. It carries enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type AppointmentBookedEvent struct {
	AppointmentID uint64 `json:"appointment_id"`
	UserID        uint64 `json:"user_id"`
	ServiceName   string `json:"service_name"`
	Category      string `json:"category"`
	PriceCents    uint64 `json:"price_cents"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	PointsAwarded int64  `json:"points_awarded"`
	BookedAt      string `json:"booked_at"`
}
