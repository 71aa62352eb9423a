package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestBookAwardsPointsOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(uint64(1), uint64(3), "2026-09-10", "14:00", uint64(1), uint64(3), "2026-09-10", "14:00").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET loyalty_points = loyalty_points + ? WHERE id=?")).
		WithArgs(int64(10), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO loyalty_transactions").
		WithArgs(uint64(1), int64(10), "booking", uint64(7)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT loyalty_points FROM users WHERE id=?")).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"loyalty_points"}).AddRow(int64(30)))
	mock.ExpectCommit()

	repo := NewAppointmentRepo(db)
	res, err := repo.Book(context.Background(), 1, 3, "2026-09-10", "14:00")
	require.NoError(t, err)
	require.False(t, res.Duplicate)
	require.Equal(t, uint64(7), res.AppointmentID)
	require.Equal(t, int64(30), res.Points)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookDuplicateIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	// The guarded insert matches an existing booked row and writes nothing.
	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(uint64(1), uint64(3), "2026-09-10", "14:00", uint64(1), uint64(3), "2026-09-10", "14:00").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id FROM appointments").
		WithArgs(uint64(1), uint64(3), "2026-09-10", "14:00").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uint64(5)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT loyalty_points FROM users WHERE id=?")).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"loyalty_points"}).AddRow(int64(20)))
	mock.ExpectCommit()

	repo := NewAppointmentRepo(db)
	res, err := repo.Book(context.Background(), 1, 3, "2026-09-10", "14:00")
	require.NoError(t, err)
	require.True(t, res.Duplicate)
	require.Equal(t, uint64(5), res.AppointmentID)
	require.Equal(t, int64(20), res.Points, "no points awarded on a duplicate booking")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelDeductsPointsOnTransition(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, status FROM appointments").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "status"}).AddRow(uint64(1), "booked"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments SET status=? WHERE id=? AND status=?")).
		WithArgs("cancelled", uint64(7), "booked").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET loyalty_points = loyalty_points - ? WHERE id=?")).
		WithArgs(int64(5), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO loyalty_transactions").
		WithArgs(uint64(1), int64(-5), "cancellation", uint64(7)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT loyalty_points FROM users WHERE id=?")).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"loyalty_points"}).AddRow(int64(25)))
	mock.ExpectCommit()

	repo := NewAppointmentRepo(db)
	res, err := repo.Cancel(context.Background(), 7, 1, false)
	require.NoError(t, err)
	require.True(t, res.Cancelled)
	require.Equal(t, int64(25), res.Points)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelTwiceIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, status FROM appointments").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "status"}).AddRow(uint64(1), "cancelled"))
	// Status guard in the update matches nothing, so no deduction follows.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments SET status=? WHERE id=? AND status=?")).
		WithArgs("cancelled", uint64(7), "booked").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT loyalty_points FROM users WHERE id=?")).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"loyalty_points"}).AddRow(int64(25)))
	mock.ExpectCommit()

	repo := NewAppointmentRepo(db)
	res, err := repo.Cancel(context.Background(), 7, 1, false)
	require.NoError(t, err)
	require.False(t, res.Cancelled)
	require.Equal(t, int64(25), res.Points)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelForbiddenForOtherUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, status FROM appointments").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "status"}).AddRow(uint64(2), "booked"))
	mock.ExpectRollback()

	repo := NewAppointmentRepo(db)
	_, err = repo.Cancel(context.Background(), 7, 1, false)
	require.ErrorIs(t, err, ErrForbidden)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelAdminOverridesOwnership(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, status FROM appointments").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "status"}).AddRow(uint64(2), "booked"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments SET status=? WHERE id=? AND status=?")).
		WithArgs("cancelled", uint64(7), "booked").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// The fee lands on the appointment owner, not the admin caller.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET loyalty_points = loyalty_points - ? WHERE id=?")).
		WithArgs(int64(5), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO loyalty_transactions").
		WithArgs(uint64(2), int64(-5), "cancellation", uint64(7)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT loyalty_points FROM users WHERE id=?")).
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"loyalty_points"}).AddRow(int64(5)))
	mock.ExpectCommit()

	repo := NewAppointmentRepo(db)
	res, err := repo.Cancel(context.Background(), 7, 99, true)
	require.NoError(t, err)
	require.True(t, res.Cancelled)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelUnknownAppointment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, status FROM appointments").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "status"}))
	mock.ExpectRollback()

	repo := NewAppointmentRepo(db)
	_, err = repo.Cancel(context.Background(), 404, 1, false)
	require.ErrorIs(t, err, ErrAppointmentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
