package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/salon-booking/internal/model"
)

// ServiceRepo provides CRUD access to the 'services' catalog table.
type ServiceRepo struct{ DB *sql.DB }

func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{DB: db} }

const serviceColumns = "id,name,price_cents,duration_min,description,category,created_at,updated_at"

// List returns the whole catalog ordered by category then name, the
// order the booking screen displays it in.
func (r *ServiceRepo) List(ctx context.Context) ([]model.Service, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+serviceColumns+" FROM services ORDER BY category, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanServices(rows)
}

// GetByName resolves a service by its unique name. Booking requests
// carry the name on the wire; appointments store the id.
func (r *ServiceRepo) GetByName(ctx context.Context, name string) (model.Service, error) {
	var s model.Service
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+serviceColumns+" FROM services WHERE name=? LIMIT 1",
		strings.TrimSpace(name)).
		Scan(&s.ID, &s.Name, &s.PriceCents, &s.DurationMin, &s.Description,
			&s.Category, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Service{}, ErrServiceNotFound
	}
	return s, err
}

// GetByID fetches a service by id.
func (r *ServiceRepo) GetByID(ctx context.Context, id uint64) (model.Service, error) {
	var s model.Service
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+serviceColumns+" FROM services WHERE id=? LIMIT 1", id).
		Scan(&s.ID, &s.Name, &s.PriceCents, &s.DurationMin, &s.Description,
			&s.Category, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Service{}, ErrServiceNotFound
	}
	return s, err
}

// Create inserts a new service and returns its id. A duplicate name
// surfaces as ErrConflict.
func (r *ServiceRepo) Create(ctx context.Context, s model.Service) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO services (name, price_cents, duration_min, description, category) VALUES (?,?,?,?,?)",
		strings.TrimSpace(s.Name), s.PriceCents, s.DurationMin, s.Description, s.Category)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update rewrites all editable fields of a service.
func (r *ServiceRepo) Update(ctx context.Context, s model.Service) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE services SET name=?, price_cents=?, duration_min=?, description=?, category=? WHERE id=?",
		strings.TrimSpace(s.Name), s.PriceCents, s.DurationMin, s.Description, s.Category, s.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is 0 both for a missing row and for a no-op
		// update; distinguish by probing for the row.
		if _, err := r.GetByID(ctx, s.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a service unless booked appointments still reference
// it, in which case ErrConflict is returned so the handler can respond
// with 409. The guard and the delete run in one transaction.
func (r *ServiceRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var booked int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM appointments WHERE service_id=? AND status=?",
		id, model.StatusBooked).Scan(&booked); err != nil {
		return err
	}
	if booked > 0 {
		return ErrConflict
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM services WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrServiceNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func scanServices(rows *sql.Rows) ([]model.Service, error) {
	out := []model.Service{}
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.PriceCents, &s.DurationMin,
			&s.Description, &s.Category, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
