// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to operate on an appointment owned by someone else, while
// ErrConflict signals that an operation cannot proceed due to existing
// dependent records (e.g. deleting a service that still has booked
// appointments).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as attempting to
// delete a service that still has booked appointments. Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrServiceNotFound is returned when a service referenced by name
// or id does not exist in the catalog.
var ErrServiceNotFound = errors.New("service not found")

// ErrAppointmentNotFound is returned when an appointment id does not
// match any row.
var ErrAppointmentNotFound = errors.New("appointment not found")

// ErrInsufficientPoints is returned when a redemption asks for more
// loyalty points than the user's current balance.
var ErrInsufficientPoints = errors.New("insufficient loyalty points")
