package db

import (
	"context"
	"fmt"

	"github.com/fbz-tec/skytrack/core/formatters"
	"github.com/fbz-tec/skytrack/internal/logger"
)

// SnapshotTimeFormat is the layout timestamps and dates are stored with in a
// snapshot. SQLite date functions only parse ISO-8601 text.
const SnapshotTimeFormat = formatters.DefaultTimeFormat

// AirportTables are the tables the reports read.
var AirportTables = []string{
	"airline",
	"airport",
	"flights",
	"booking",
	"booking_flight",
	"baggage",
	"passengers",
	"security_check",
}

// Snapshot copies whole tables from src into the SQLite store dst.
// src must render time values with SnapshotTimeFormat.
// It returns the number of rows copied, keyed by table name.
func Snapshot(ctx context.Context, src Store, dst *SQLStore, tables []string) (map[string]int, error) {
	copied := make(map[string]int, len(tables))
	for _, table := range tables {
		rs, err := src.Fetch(ctx, table, "SELECT * FROM "+formatters.QuoteIdent(table))
		if err != nil {
			return copied, fmt.Errorf("failed to read %s: %w", table, err)
		}
		if err := dst.Load(ctx, rs); err != nil {
			return copied, err
		}
		copied[table] = rs.Len()
		logger.Info("Copied %d rows from %s", rs.Len(), table)
	}
	return copied, nil
}
