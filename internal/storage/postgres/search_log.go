package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"image_fetcher/internal/domain"
)

type SearchLogStore struct {
	db *sqlx.DB
}

func NewSearchLogStore(db *sqlx.DB) *SearchLogStore {
	return &SearchLogStore{db: db}
}

type searchLogRow struct {
	ID          int64          `db:"id"`
	Query       string         `db:"query"`
	Requested   pq.StringArray `db:"requested"`
	Represented pq.StringArray `db:"represented"`
	Fetched     int            `db:"fetched"`
	Returned    int            `db:"returned"`
	DurationMS  int64          `db:"duration_ms"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r searchLogRow) toDomain() domain.SearchLog {
	return domain.SearchLog{
		ID:          r.ID,
		Query:       r.Query,
		Requested:   []string(r.Requested),
		Represented: []string(r.Represented),
		Fetched:     r.Fetched,
		Returned:    r.Returned,
		DurationMS:  r.DurationMS,
		CreatedAt:   r.CreatedAt,
	}
}

// Record inserts a search log and fills in its ID and creation time.
func (s *SearchLogStore) Record(ctx context.Context, log *domain.SearchLog) (int64, error) {
	query := `
		INSERT INTO search_log (
			query, requested, represented, fetched, returned, duration_ms
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query,
		log.Query,
		pq.Array(nonNil(log.Requested)),
		pq.Array(nonNil(log.Represented)),
		log.Fetched,
		log.Returned,
		log.DurationMS,
	).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return 0, err
	}

	return log.ID, nil
}

// Recent returns the newest search logs first.
func (s *SearchLogStore) Recent(ctx context.Context, limit int) ([]domain.SearchLog, error) {
	query := `
		SELECT id, query, requested, represented, fetched, returned, duration_ms, created_at
		FROM search_log
		ORDER BY created_at DESC, id DESC
		LIMIT $1`

	var rows []searchLogRow
	if err := s.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, err
	}

	logs := make([]domain.SearchLog, len(rows))
	for i, r := range rows {
		logs[i] = r.toDomain()
	}
	return logs, nil
}

// DeleteBefore removes search logs created before cutoff and reports how many were deleted.
func (s *SearchLogStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM search_log WHERE created_at < $1", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
