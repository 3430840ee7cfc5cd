package db

import (
	"context"

	"github.com/fbz-tec/skytrack/core/dataset"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Store defines the interface for database operations.
// Implementations handle connection management and normalize driver values
// into dataset scalars.
type Store interface {
	Connect() error
	Close() error
	Dialect() string
	// Fetch runs a query and returns the full result as a named ResultSet.
	Fetch(ctx context.Context, name, sql string, args ...any) (*dataset.ResultSet, error)
	// QueryInt64 runs a query returning a single integer, e.g. INSERT ... RETURNING id.
	QueryInt64(ctx context.Context, sql string, args ...any) (int64, error)
}
