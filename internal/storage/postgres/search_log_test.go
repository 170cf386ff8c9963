package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image_fetcher/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func TestSearchLogStore_Record(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewSearchLogStore(db)
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	log := &domain.SearchLog{
		Query:       "old harbor",
		Requested:   []string{"bing", "loc"},
		Represented: []string{"loc"},
		Fetched:     9,
		Returned:    7,
		DurationMS:  1500,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO search_log")).
		WithArgs("old harbor", sqlmock.AnyArg(), sqlmock.AnyArg(), 9, 7, int64(1500)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(42, createdAt))

	id, err := store.Record(context.Background(), log)

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, int64(42), log.ID)
	assert.Equal(t, createdAt, log.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchLogStore_Record_Error(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewSearchLogStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO search_log")).
		WillReturnError(errors.New("connection refused"))

	_, err := store.Record(context.Background(), &domain.SearchLog{Query: "x"})

	assert.ErrorContains(t, err, "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchLogStore_Recent(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewSearchLogStore(db)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	columns := []string{"id", "query", "requested", "represented", "fetched", "returned", "duration_ms", "created_at"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM search_log")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(2, "pier", "{bing,loc}", "{loc}", 4, 3, 250, now).
			AddRow(1, "harbor", "{}", "{}", 0, 0, 10, now.Add(-time.Hour)))

	logs, err := store.Recent(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "pier", logs[0].Query)
	assert.Equal(t, []string{"bing", "loc"}, logs[0].Requested)
	assert.Equal(t, []string{"loc"}, logs[0].Represented)
	assert.Equal(t, int64(250), logs[0].DurationMS)
	assert.Equal(t, now, logs[0].CreatedAt)
	assert.Empty(t, logs[1].Requested)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchLogStore_DeleteBefore(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewSearchLogStore(db)
	cutoff := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM search_log WHERE created_at < $1")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := store.DeleteBefore(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
