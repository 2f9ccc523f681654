package store

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/newsreview/internal/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of a pgx pool or connection the store needs.
// *pgxpool.Pool, pgx.Tx and pgxmock pools all satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const createExclusionsTable = `CREATE TABLE IF NOT EXISTS not_relevant_urls (
	url        TEXT PRIMARY KEY,
	summary    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertExclusion = `INSERT INTO not_relevant_urls (url, summary)
VALUES ($1, $2)
ON CONFLICT (url) DO NOTHING`

const listExclusions = `SELECT url, summary FROM not_relevant_urls
ORDER BY created_at, url`

// PGStore keeps exclusions in the not_relevant_urls table. The primary key
// on url makes concurrent writers from any number of processes safe.
type PGStore struct {
	db    DBTX
	label string
}

// NewPGStore creates a store using db. label is shown to the reviewer as the
// save location and must not contain credentials.
func NewPGStore(db DBTX, label string) *PGStore {
	if label == "" {
		label = "postgres: not_relevant_urls"
	}
	return &PGStore{db: db, label: label}
}

// EnsureSchema creates the exclusions table if it does not exist.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createExclusionsTable); err != nil {
		return fmt.Errorf("create not_relevant_urls: %w", err)
	}
	return nil
}

// Location returns a display label for the table.
func (s *PGStore) Location() string {
	return s.label
}

// MarkNotRelevant inserts url unless it is already present.
func (s *PGStore) MarkNotRelevant(ctx context.Context, url, summary string) (bool, error) {
	tag, err := s.db.Exec(ctx, insertExclusion, url, summary)
	if err != nil {
		return false, fmt.Errorf("insert not relevant url: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List returns every entry in insertion order.
func (s *PGStore) List(ctx context.Context) ([]core.ExclusionEntry, error) {
	rows, err := s.db.Query(ctx, listExclusions)
	if err != nil {
		return nil, fmt.Errorf("list not relevant urls: %w", err)
	}
	defer rows.Close()

	entries := []core.ExclusionEntry{}
	for rows.Next() {
		var e core.ExclusionEntry
		if err := rows.Scan(&e.URL, &e.Summary); err != nil {
			return nil, fmt.Errorf("scan not relevant url: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate not relevant urls: %w", err)
	}

	return entries, nil
}
