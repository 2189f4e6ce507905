package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/billing-assistant/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	// Pragmas below are per connection.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	email      TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS search_history (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL REFERENCES users(id),
	query         TEXT NOT NULL,
	results_count INTEGER NOT NULL DEFAULT 0,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_search_history_user_id ON search_history(user_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveUserEmail(ctx context.Context, email string) (*model.User, error) {
	email = NormalizeEmail(email)
	now := time.Now().UTC()

	row := s.db.QueryRowContext(ctx,
		`INSERT INTO users (id, email, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(email) DO UPDATE SET updated_at = excluded.updated_at
		 RETURNING id, email, name, created_at, updated_at`,
		uuid.New().String(), email, nameFromEmail(email), now, now,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: save user %s", email)
	}
	return u, nil
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, name, created_at, updated_at FROM users WHERE email = ?`,
		NormalizeEmail(email),
	)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get user")
	}
	return u, nil
}

func (s *SQLiteStore) SaveSearchHistory(ctx context.Context, userID, query string, resultsCount int) (*model.SearchRecord, error) {
	rec := &model.SearchRecord{
		ID:           uuid.New().String(),
		UserID:       userID,
		Query:        query,
		ResultsCount: resultsCount,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO search_history (id, user_id, query, results_count, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Query, rec.ResultsCount, rec.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert search history for user %s", userID)
	}
	return rec, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanUser(row scannable) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
