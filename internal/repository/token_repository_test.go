package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func refreshRow(userID uint64, expiresAt time.Time, revokedAt sql.NullTime) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
		AddRow(userID, expiresAt, revokedAt)
}

func TestValidateRefreshActiveToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WithArgs("hash-1").
		WillReturnRows(refreshRow(42, time.Now().UTC().Add(24*time.Hour), sql.NullTime{}))

	repo := NewTokenRepo(db)
	userID, err := repo.ValidateRefresh(context.Background(), "hash-1")
	require.NoError(t, err)
	require.Equal(t, uint64(42), userID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateRefreshUnknownHash(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WithArgs("no-such-hash").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}))

	repo := NewTokenRepo(db)
	_, err = repo.ValidateRefresh(context.Background(), "no-such-hash")
	require.ErrorIs(t, err, ErrRefreshInvalid)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateRefreshRevokedToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	revoked := sql.NullTime{Time: time.Now().UTC().Add(-time.Hour), Valid: true}
	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WithArgs("hash-2").
		WillReturnRows(refreshRow(42, time.Now().UTC().Add(24*time.Hour), revoked))

	repo := NewTokenRepo(db)
	_, err = repo.ValidateRefresh(context.Background(), "hash-2")
	require.ErrorIs(t, err, ErrRefreshInvalid)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateRefreshExpiredToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WithArgs("hash-3").
		WillReturnRows(refreshRow(42, time.Now().UTC().Add(-time.Minute), sql.NullTime{}))

	repo := NewTokenRepo(db)
	_, err = repo.ValidateRefresh(context.Background(), "hash-3")
	require.ErrorIs(t, err, ErrRefreshInvalid)
	require.NoError(t, mock.ExpectationsWereMet())
}
