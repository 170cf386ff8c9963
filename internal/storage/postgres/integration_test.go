//go:build integration

package postgres

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"image_fetcher/internal/domain"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_search_log.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM search_log")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) TestSearchLogStore_Record() {
	store := NewSearchLogStore(s.db)

	log := &domain.SearchLog{
		Query:       "steam engine",
		Requested:   []string{"bing", "loc", "archive"},
		Represented: []string{"loc", "archive"},
		Fetched:     20,
		Returned:    17,
		DurationMS:  1200,
	}

	id, err := store.Record(s.ctx, log)
	s.NoError(err)
	s.Greater(id, int64(0))
	s.False(log.CreatedAt.IsZero())

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM search_log WHERE query = $1", "steam engine")
	s.NoError(err)
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestSearchLogStore_Record_NilSources() {
	store := NewSearchLogStore(s.db)

	_, err := store.Record(s.ctx, &domain.SearchLog{Query: "empty"})
	s.NoError(err)

	logs, err := store.Recent(s.ctx, 1)
	s.NoError(err)
	s.Require().Len(logs, 1)
	s.Empty(logs[0].Requested)
	s.Empty(logs[0].Represented)
}

func (s *PostgresIntegrationSuite) TestSearchLogStore_Recent_NewestFirst() {
	store := NewSearchLogStore(s.db)

	for _, q := range []string{"first", "second", "third"} {
		_, err := store.Record(s.ctx, &domain.SearchLog{
			Query:       q,
			Requested:   []string{"wikimedia"},
			Represented: []string{"wikimedia"},
			Fetched:     3,
			Returned:    3,
			DurationMS:  300,
		})
		s.Require().NoError(err)
	}

	logs, err := store.Recent(s.ctx, 2)
	s.NoError(err)
	s.Require().Len(logs, 2)
	s.Equal("third", logs[0].Query)
	s.Equal("second", logs[1].Query)
	s.Equal([]string{"wikimedia"}, logs[0].Requested)
	s.Equal(int64(300), logs[0].DurationMS)
}

func (s *PostgresIntegrationSuite) TestSearchLogStore_DeleteBefore() {
	store := NewSearchLogStore(s.db)
	now := time.Now()

	_, err := s.db.ExecContext(s.ctx,
		"INSERT INTO search_log (query, created_at) VALUES ($1, $2), ($3, $4)",
		"old", now.Add(-48*time.Hour),
		"fresh", now,
	)
	s.Require().NoError(err)

	deleted, err := store.DeleteBefore(s.ctx, now.Add(-24*time.Hour))
	s.NoError(err)
	s.Equal(int64(1), deleted)

	logs, err := store.Recent(s.ctx, 10)
	s.NoError(err)
	s.Require().Len(logs, 1)
	s.Equal("fresh", logs[0].Query)
}
