package model

import "time"

// Appointment status values. An appointment is created as booked and
// may transition to cancelled; rows are never physically deleted.
const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
)

// Appointment records a user's booking of a service at a half-hour
// slot. Date and time are stored as strings exactly as supplied on
// the wire ("YYYY-MM-DD" and "HH:MM"); the filter/sort kernel parses
// them defensively and treats unparseable values as minimum.
//
// At most one booked row may exist for a given (user, service, date,
// time) tuple. The repository enforces this with a conditional
// insert rather than a pre-check, so two concurrent bookings cannot
// both slip through.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – owner of the appointment.
//  ServiceID   – foreign key into services.
//  ServiceName – joined services.name, populated on reads.
//  Date        – appointment date, "YYYY-MM-DD".
//  Time        – appointment time, "HH:MM".
//  Status      – booked or cancelled.
//  CreatedAt   – creation timestamp.
type Appointment struct {
	ID          uint64    // appointments.id
	UserID      uint64    // appointments.user_id
	ServiceID   uint64    // appointments.service_id
	ServiceName string    // services.name (join)
	Date        string    // appointments.date
	Time        string    // appointments.time
	Status      string    // appointments.status
	CreatedAt   time.Time // appointments.created_at
}
