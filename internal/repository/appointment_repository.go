package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/salon-booking/internal/model"
)

// AppointmentRepo provides access to the 'appointments' table and the
// loyalty side effects that booking and cancellation carry. All write
// paths run inside a transaction so the appointment row, the points
// balance and the ledger entry move together.
type AppointmentRepo struct{ DB *sql.DB }

func NewAppointmentRepo(db *sql.DB) *AppointmentRepo { return &AppointmentRepo{DB: db} }

// BookingResult reports the outcome of a Book call.
type BookingResult struct {
	AppointmentID uint64 // id of the booked row (existing one when Duplicate)
	Duplicate     bool   // true when an identical booked row already existed
	Points        int64  // user's loyalty balance after the call
}

// insertIfAbsent inserts a booked row only when no identical booked
// row exists. The guard lives in the statement itself instead of a
// separate pre-check so two concurrent bookings for the same slot
// cannot both insert.
const insertIfAbsent = `INSERT INTO appointments (user_id, service_id, date, time, status)
SELECT ?, ?, ?, ?, 'booked' FROM DUAL
WHERE NOT EXISTS (
	SELECT 1 FROM appointments
	WHERE user_id=? AND service_id=? AND date=? AND time=? AND status='booked'
)`

// Book creates a booked appointment for the given slot and credits the
// booking bonus. Booking an identical slot twice is an idempotent
// success: the existing row is reported and no points are awarded.
func (r *AppointmentRepo) Book(ctx context.Context, userID, serviceID uint64, date, tm string) (BookingResult, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return BookingResult{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, insertIfAbsent,
		userID, serviceID, date, tm,
		userID, serviceID, date, tm)
	if err != nil {
		return BookingResult{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return BookingResult{}, err
	}

	if n == 0 {
		// Identical booked row already present. Nothing was written,
		// so just report the existing row and the unchanged balance.
		var out BookingResult
		out.Duplicate = true
		if err := tx.QueryRowContext(ctx,
			"SELECT id FROM appointments WHERE user_id=? AND service_id=? AND date=? AND time=? AND status='booked' LIMIT 1",
			userID, serviceID, date, tm).Scan(&out.AppointmentID); err != nil {
			return BookingResult{}, err
		}
		if err := tx.QueryRowContext(ctx,
			"SELECT loyalty_points FROM users WHERE id=?", userID).Scan(&out.Points); err != nil {
			return BookingResult{}, err
		}
		if err := tx.Commit(); err != nil {
			return BookingResult{}, err
		}
		committed = true
		return out, nil
	}

	id, err := res.LastInsertId()
	if err != nil {
		return BookingResult{}, err
	}
	apptID := uint64(id)

	if _, err := tx.ExecContext(ctx,
		"UPDATE users SET loyalty_points = loyalty_points + ? WHERE id=?",
		model.PointsPerBooking, userID); err != nil {
		return BookingResult{}, err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO loyalty_transactions (user_id, delta, reason, appointment_id) VALUES (?,?,?,?)",
		userID, model.PointsPerBooking, "booking", apptID); err != nil {
		return BookingResult{}, err
	}

	var pts int64
	if err := tx.QueryRowContext(ctx,
		"SELECT loyalty_points FROM users WHERE id=?", userID).Scan(&pts); err != nil {
		return BookingResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return BookingResult{}, err
	}
	committed = true
	return BookingResult{AppointmentID: apptID, Duplicate: false, Points: pts}, nil
}

// CancelResult reports the outcome of a Cancel call.
type CancelResult struct {
	Cancelled bool  // false when the appointment was already cancelled
	Points    int64 // owner's loyalty balance after the call
}

// Cancel transitions a booked appointment to cancelled and deducts the
// cancellation fee from the owner. Cancelling an already-cancelled
// appointment is a no-op on both status and points. Callers that are
// not the owner get ErrForbidden unless asAdmin is set.
func (r *AppointmentRepo) Cancel(ctx context.Context, apptID, callerID uint64, asAdmin bool) (CancelResult, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return CancelResult{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var ownerID uint64
	var status string
	err = tx.QueryRowContext(ctx,
		"SELECT user_id, status FROM appointments WHERE id=? FOR UPDATE", apptID).
		Scan(&ownerID, &status)
	if err == sql.ErrNoRows {
		return CancelResult{}, ErrAppointmentNotFound
	}
	if err != nil {
		return CancelResult{}, err
	}
	if !asAdmin && ownerID != callerID {
		return CancelResult{}, ErrForbidden
	}

	// The status guard makes repeat cancellation a no-op; the fee is
	// only charged on the booked -> cancelled transition.
	res, err := tx.ExecContext(ctx,
		"UPDATE appointments SET status=? WHERE id=? AND status=?",
		model.StatusCancelled, apptID, model.StatusBooked)
	if err != nil {
		return CancelResult{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return CancelResult{}, err
	}

	out := CancelResult{Cancelled: n > 0}
	if n > 0 {
		if _, err := tx.ExecContext(ctx,
			"UPDATE users SET loyalty_points = loyalty_points - ? WHERE id=?",
			model.PointsPerCancellation, ownerID); err != nil {
			return CancelResult{}, err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO loyalty_transactions (user_id, delta, reason, appointment_id) VALUES (?,?,?,?)",
			ownerID, -model.PointsPerCancellation, "cancellation", apptID); err != nil {
			return CancelResult{}, err
		}
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT loyalty_points FROM users WHERE id=?", ownerID).Scan(&out.Points); err != nil {
		return CancelResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return CancelResult{}, err
	}
	committed = true
	return out, nil
}

// ListByUser returns all of a user's appointments joined to the
// service name, newest first. Filtering and sorting for display
// happen in memory in the booking package.
func (r *AppointmentRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Appointment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT a.id, a.user_id, a.service_id, s.name, a.date, a.time, a.status, a.created_at
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		WHERE a.user_id=?
		ORDER BY a.date DESC, a.time DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Appointment{}
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.UserID, &a.ServiceID, &a.ServiceName,
			&a.Date, &a.Time, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
