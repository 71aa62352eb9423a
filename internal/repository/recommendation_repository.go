package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/salon-booking/internal/model"
)

// RecommendationRepo derives a short list of suggested services from a
// user's recent category preferences, falling back to global
// popularity. It is read-only and deliberately forgiving: any failure
// along the personalized path degrades to the popularity list rather
// than surfacing an error to the caller.
type RecommendationRepo struct{ DB *sql.DB }

func NewRecommendationRepo(db *sql.DB) *RecommendationRepo { return &RecommendationRepo{DB: db} }

const recommendationLimit = 5

// Recommend returns up to 5 suggested services for a user.
//
// Users with booked history get a randomized pick from their two
// most-frequent categories, excluding services they booked in the
// last 30 days. Users without history, and any personalized path
// that comes up empty or fails, get the globally most-booked
// services instead.
func (r *RecommendationRepo) Recommend(ctx context.Context, userID uint64) ([]model.Service, error) {
	cats, err := r.favoriteCategories(ctx, userID)
	if err != nil || len(cats) == 0 {
		return r.Popular(ctx)
	}

	recs, err := r.fromCategories(ctx, userID, cats)
	if err != nil || len(recs) == 0 {
		return r.Popular(ctx)
	}
	return recs, nil
}

// Popular returns the services with the highest historical booking
// count. Ties fall wherever the store iteration order puts them.
func (r *RecommendationRepo) Popular(ctx context.Context) ([]model.Service, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT s.id, s.name, s.price_cents, s.duration_min, s.description, s.category, s.created_at, s.updated_at
		FROM services s
		LEFT JOIN appointments a ON a.service_id = s.id
		GROUP BY s.id
		ORDER BY COUNT(a.id) DESC
		LIMIT ?`, recommendationLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanServices(rows)
}

// favoriteCategories returns the user's top 2 categories by booked
// appointment count.
func (r *RecommendationRepo) favoriteCategories(ctx context.Context, userID uint64) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT s.category
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		WHERE a.user_id=? AND a.status=?
		GROUP BY s.category
		ORDER BY COUNT(*) DESC, MAX(a.date) DESC
		LIMIT 2`, userID, model.StatusBooked)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// fromCategories picks up to 5 services in the given categories that
// the user has not booked in the last 30 days, in randomized order.
func (r *RecommendationRepo) fromCategories(ctx context.Context, userID uint64, cats []string) ([]model.Service, error) {
	placeholders := strings.TrimRight(strings.Repeat("?,", len(cats)), ",")
	args := make([]any, 0, len(cats)+2)
	for _, c := range cats {
		args = append(args, c)
	}
	args = append(args, userID, recommendationLimit)

	// Dates are stored as 'YYYY-MM-DD' strings, so lexicographic
	// comparison against the formatted cutoff is a correct range test.
	q := `SELECT s.id, s.name, s.price_cents, s.duration_min, s.description, s.category, s.created_at, s.updated_at
		FROM services s
		WHERE s.category IN (` + placeholders + `)
		AND s.id NOT IN (
			SELECT service_id FROM appointments
			WHERE user_id=? AND date > DATE_FORMAT(DATE_SUB(CURDATE(), INTERVAL 30 DAY), '%Y-%m-%d')
		)
		ORDER BY RAND()
		LIMIT ?`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanServices(rows)
}
