package model

import "time"

// Fixed loyalty deltas applied by the booking flow. Redemptions use
// a caller-chosen amount instead.
const (
	PointsPerBooking      = 10
	PointsPerCancellation = 5
)

// LoyaltyTransaction is one entry in the append-only points ledger.
// The users.loyalty_points balance is always updated in the same
// transaction that inserts the ledger row, so the sum of deltas for
// a user equals their balance.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – owner of the transaction.
//  Delta         – signed points change (+10 booking, -5 cancel, -N redeem).
//  Reason        – short machine-readable reason (booking, cancellation,
//                  redemption, adjustment).
//  AppointmentID – appointment that caused the change, if any (nullable).
//  CreatedAt     – creation timestamp.
type LoyaltyTransaction struct {
	ID            uint64    // loyalty_transactions.id
	UserID        uint64    // loyalty_transactions.user_id
	Delta         int64     // loyalty_transactions.delta
	Reason        string    // loyalty_transactions.reason
	AppointmentID *uint64   // loyalty_transactions.appointment_id (nullable)
	CreatedAt     time.Time // loyalty_transactions.created_at
}
