package domain

import (
	"context"
	"time"
)

// TextCompleter defines the single capability the pipeline needs from a
// language model: one system-prompted completion per call. A nil
// TextCompleter anywhere in the pipeline means the capability is not
// configured and must be treated as permanently unavailable.
type TextCompleter interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
}

// ProductRepository defines the interface for product listing persistence.
// Date range arguments are inclusive YYYY-MM-DD strings; an empty bound
// leaves that side of the range open.
type ProductRepository interface {
	// InsertBatch stores one day's processed listings under the given date.
	InsertBatch(ctx context.Context, date string, products []Product) error

	// FindByName returns every stored listing whose name contains the
	// given fragment, case-insensitively, within the date range.
	FindByName(ctx context.Context, name, from, to string) ([]StoredProduct, error)

	// FindPriceHistory returns listings matching name fragment and exact
	// unit within the date range, ordered by date ascending. An empty
	// supplier matches all suppliers.
	FindPriceHistory(ctx context.Context, name, unit, supplier, from, to string) ([]StoredProduct, error)

	// EnsureIndexes creates the query indexes if they do not exist.
	EnsureIndexes(ctx context.Context) error

	Close(ctx context.Context) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
