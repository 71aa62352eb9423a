package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/salon-booking/internal/model"
)

// UserRepo provides access to the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrPhoneExists = errors.New("phone already registered")

const userColumns = "id,name,phone,role,password_hash,loyalty_points,is_active,created_at,updated_at"

// Create inserts a customer account and returns its ID. The phone
// number is the login identity; a duplicate phone maps to
// ErrPhoneExists so callers can treat it as "already registered"
// rather than a failure.
func (r *UserRepo) Create(ctx context.Context, name, phone, role string) (uint64, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, phone, role, loyalty_points) VALUES (?,?,?,0)",
		name, phone, role)
	if err != nil {
		// MySQL error 1062 = duplicate entry for a unique key.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrPhoneExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByPhone fetches a user by trimmed phone number.
func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (model.User, error) {
	phone = strings.TrimSpace(phone)
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE phone=? LIMIT 1", phone))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// SetPassword stores a bcrypt hash and promotes the account to the
// given role. Used when bootstrapping the admin account.
func (r *UserRepo) SetPassword(ctx context.Context, id uint64, hash, role string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, role=? WHERE id=?", hash, role, id)
	return err
}

// LoyaltyPoints returns the current balance for a user.
func (r *UserRepo) LoyaltyPoints(ctx context.Context, id uint64) (int64, error) {
	var pts int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT loyalty_points FROM users WHERE id=? LIMIT 1", id).Scan(&pts)
	return pts, err
}

// Search lists users filtered by an optional name/phone substring,
// newest first. An empty query returns everyone.
func (r *UserRepo) Search(ctx context.Context, query string, limit int) ([]model.User, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q := "SELECT " + userColumns + " FROM users"
	args := []any{}
	if s := strings.TrimSpace(query); s != "" {
		q += " WHERE LOWER(name) LIKE ? OR phone LIKE ?"
		pat := "%" + strings.ToLower(s) + "%"
		args = append(args, pat, pat)
	}
	q += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Phone, &u.Role, &u.PasswordHash,
			&u.LoyaltyPoints, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Phone, &u.Role, &u.PasswordHash,
		&u.LoyaltyPoints, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
