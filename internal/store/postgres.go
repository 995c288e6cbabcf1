package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS high_scores (
    id TEXT PRIMARY KEY,
    nickname TEXT NOT NULL DEFAULT '',
    score INTEGER NOT NULL,
    level INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_high_scores_score ON high_scores(score DESC, created_at);
`

// PostgresStore implements ScoreStore using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// Submit inserts a finished game.
func (s *PostgresStore) Submit(ctx context.Context, e *Entry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO high_scores (id, nickname, score, level, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.Nickname, e.Score, e.Level, e.CreatedAt)
	return err
}

// Top returns the best entries.
func (s *PostgresStore) Top(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, nickname, score, level, created_at
		 FROM high_scores ORDER BY score DESC, created_at ASC LIMIT $1`, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanEntry)
}

// Best returns the highest recorded score.
func (s *PostgresStore) Best(ctx context.Context) (int, error) {
	var best int
	err := s.pool.QueryRow(ctx, `SELECT COALESCE(MAX(score), 0) FROM high_scores`).Scan(&best)
	return best, err
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanEntry(row pgx.CollectableRow) (Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.Nickname, &e.Score, &e.Level, &e.CreatedAt)
	return e, err
}
