package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func serviceRows(names ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "price_cents", "duration_min", "description", "category", "created_at", "updated_at",
	})
	now := time.Now()
	for i, n := range names {
		rows.AddRow(uint64(i+1), n, uint64(5000), uint32(45), "", "Hair", now, now)
	}
	return rows
}

func TestRecommendFallsBackToPopularWithoutHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT s.category").
		WithArgs(uint64(1), "booked").
		WillReturnRows(sqlmock.NewRows([]string{"category"}))
	mock.ExpectQuery("ORDER BY COUNT").
		WithArgs(5).
		WillReturnRows(serviceRows("Haircut & Styling", "Manicure"))

	repo := NewRecommendationRepo(db)
	recs, err := repo.Recommend(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "Haircut & Styling", recs[0].Name)
}

func TestRecommendUsesFavoriteCategories(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT s.category").
		WithArgs(uint64(1), "booked").
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("Hair").AddRow("Skin"))
	mock.ExpectQuery("s.category IN").
		WithArgs("Hair", "Skin", uint64(1), 5).
		WillReturnRows(serviceRows("Hair Coloring", "Facial Treatment", "Hair Spa"))

	repo := NewRecommendationRepo(db)
	recs, err := repo.Recommend(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recs, 3)
}

func TestRecommendEmptyPersonalizedFallsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT s.category").
		WithArgs(uint64(1), "booked").
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("Nails"))
	// Everything in the favorite categories was booked recently.
	mock.ExpectQuery("s.category IN").
		WithArgs("Nails", uint64(1), 5).
		WillReturnRows(serviceRows())
	mock.ExpectQuery("ORDER BY COUNT").
		WithArgs(5).
		WillReturnRows(serviceRows("Pedicure"))

	repo := NewRecommendationRepo(db)
	recs, err := repo.Recommend(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "Pedicure", recs[0].Name)
}
