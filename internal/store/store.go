// Package store persists chat users and their search history.
package store

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/billing-assistant/internal/model"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = eris.New("store: not found")

// Store defines the persistence interface for users and search history.
type Store interface {
	// SaveUserEmail returns the user for email, creating it when absent and
	// touching updated_at when present.
	SaveUserEmail(ctx context.Context, email string) (*model.User, error)
	// GetUserByEmail returns ErrNotFound when no user has email.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	SaveSearchHistory(ctx context.Context, userID, query string, resultsCount int) (*model.SearchRecord, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open returns the store for driver ("sqlite" or "postgres"). Driver "none"
// or "" returns a nil Store and no error.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch strings.ToLower(driver) {
	case "", "none":
		return nil, nil
	case "sqlite":
		return NewSQLite(dsn)
	case "postgres", "postgresql":
		return NewPostgres(ctx, dsn, nil)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// nameFromEmail derives a display name from the local part of an address.
func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
