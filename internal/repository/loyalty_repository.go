package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/salon-booking/internal/model"
)

// LoyaltyRepo handles point redemptions, manual adjustments and the
// ledger history. Booking-driven point changes live in
// AppointmentRepo because they share a transaction with the
// appointment row.
type LoyaltyRepo struct{ DB *sql.DB }

func NewLoyaltyRepo(db *sql.DB) *LoyaltyRepo { return &LoyaltyRepo{DB: db} }

// Redeem deducts points from a user's balance after verifying it is
// sufficient, and appends a redemption ledger row. The balance read
// is locked so two concurrent redemptions cannot both pass the check.
func (r *LoyaltyRepo) Redeem(ctx context.Context, userID uint64, points int64) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var balance int64
	err = tx.QueryRowContext(ctx,
		"SELECT loyalty_points FROM users WHERE id=? FOR UPDATE", userID).Scan(&balance)
	if err != nil {
		return 0, err
	}
	if balance < points {
		return balance, ErrInsufficientPoints
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE users SET loyalty_points = loyalty_points - ? WHERE id=?",
		points, userID); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO loyalty_transactions (user_id, delta, reason) VALUES (?,?,?)",
		userID, -points, "redemption"); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return balance - points, nil
}

// Adjust applies a signed manual delta (admin operation) and records
// it with the given reason. Returns the new balance.
func (r *LoyaltyRepo) Adjust(ctx context.Context, userID uint64, delta int64, reason string) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"UPDATE users SET loyalty_points = loyalty_points + ? WHERE id=?", delta, userID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, sql.ErrNoRows
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO loyalty_transactions (user_id, delta, reason) VALUES (?,?,?)",
		userID, delta, reason); err != nil {
		return 0, err
	}
	var balance int64
	if err := tx.QueryRowContext(ctx,
		"SELECT loyalty_points FROM users WHERE id=?", userID).Scan(&balance); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return balance, nil
}

// History returns a user's most recent ledger entries, newest first.
func (r *LoyaltyRepo) History(ctx context.Context, userID uint64, limit int) ([]model.LoyaltyTransaction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, delta, reason, appointment_id, created_at
		FROM loyalty_transactions
		WHERE user_id=?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.LoyaltyTransaction{}
	for rows.Next() {
		var t model.LoyaltyTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Delta, &t.Reason,
			&t.AppointmentID, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
