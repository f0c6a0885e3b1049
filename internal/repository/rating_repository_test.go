package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*RatingRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewRatingRepo(db), mock
}

func TestUpsertRecomputesAggregateInOneTx(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM stores WHERE id = ? FOR UPDATE")).
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ratings (user_id, store_id, rating) VALUES (?, ?, ?)")).
		WithArgs(uint64(1), uint64(10), uint8(4)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT ROUND(AVG(rating), 1) FROM ratings WHERE store_id = ?")).
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(3.0))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE stores SET overall_rating = ? WHERE id = ?")).
		WithArgs(3.0, uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	avg, err := repo.Upsert(context.Background(), 1, 10, 4)
	require.NoError(t, err)
	require.Equal(t, 3.0, avg)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertReportsCommitFailure(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM stores WHERE id = ? FOR UPDATE")).
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ratings (user_id, store_id, rating) VALUES (?, ?, ?)")).
		WithArgs(uint64(1), uint64(10), uint8(4)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT ROUND(AVG(rating), 1) FROM ratings WHERE store_id = ?")).
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(4.0))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE stores SET overall_rating = ? WHERE id = ?")).
		WithArgs(4.0, uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("Error 1213: Deadlock found when trying to get lock"))

	avg, err := repo.Upsert(context.Background(), 1, 10, 4)
	require.Error(t, err, "a commit failure must not look like a successful submission")
	require.Zero(t, avg)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertUnknownStoreWritesNothing(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM stores WHERE id = ? FOR UPDATE")).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Upsert(context.Background(), 1, 99, 4)
	require.ErrorIs(t, err, ErrStoreNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertRollsBackWhenRecomputeFails(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM stores WHERE id = ? FOR UPDATE")).
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ratings (user_id, store_id, rating) VALUES (?, ?, ?)")).
		WithArgs(uint64(1), uint64(10), uint8(2)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT ROUND(AVG(rating), 1) FROM ratings WHERE store_id = ?")).
		WithArgs(uint64(10)).
		WillReturnError(errors.New("connection lost"))
	mock.ExpectRollback()

	_, err := repo.Upsert(context.Background(), 1, 10, 2)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertMapsMissingUserFK(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM stores WHERE id = ? FOR UPDATE")).
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ratings (user_id, store_id, rating) VALUES (?, ?, ?)")).
		WithArgs(uint64(77), uint64(10), uint8(5)).
		WillReturnError(errors.New("Error 1452: Cannot add or update a child row"))
	mock.ExpectRollback()

	_, err := repo.Upsert(context.Background(), 77, 10, 5)
	require.ErrorIs(t, err, ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
