// File: internal/repository/listing/interface.go
package listing

import (
	"context"

	"github.com/iyunix/campus-market/internal/domain"
)

// Repository stores the whole collection of one category.
// There is no partial update: callers load, mutate in memory and replace.
type Repository interface {
	// Load returns the collection in stored order. Missing, empty or unreadable
	// storage yields an empty collection; read failures are logged, never returned.
	Load(ctx context.Context) []domain.Listing
	// Replace overwrites the collection. Readers never observe a half-written collection.
	Replace(ctx context.Context, listings []domain.Listing) error
}

// Logger interface for listing repositories
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
