package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestRedeemDeductsAndLogs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT loyalty_points FROM users").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"loyalty_points"}).AddRow(int64(120)))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET loyalty_points = loyalty_points - ? WHERE id=?")).
		WithArgs(int64(100), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO loyalty_transactions").
		WithArgs(uint64(1), int64(-100), "redemption").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := NewLoyaltyRepo(db)
	balance, err := repo.Redeem(context.Background(), 1, 100)
	require.NoError(t, err)
	require.Equal(t, int64(20), balance)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemInsufficientBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT loyalty_points FROM users").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"loyalty_points"}).AddRow(int64(40)))
	mock.ExpectRollback()

	repo := NewLoyaltyRepo(db)
	balance, err := repo.Redeem(context.Background(), 1, 100)
	require.ErrorIs(t, err, ErrInsufficientPoints)
	require.Equal(t, int64(40), balance)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustUnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET loyalty_points = loyalty_points + ? WHERE id=?")).
		WithArgs(int64(50), uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewLoyaltyRepo(db)
	_, err = repo.Adjust(context.Background(), 404, 50, "goodwill")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
