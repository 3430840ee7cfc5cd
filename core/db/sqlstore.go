package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fbz-tec/skytrack/core/dataset"
	"github.com/fbz-tec/skytrack/core/formatters"
	"github.com/fbz-tec/skytrack/internal/logger"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory SQLite database.
const MemoryPath = ":memory:"

// SQLStore reads an offline SQLite snapshot of the airport database.
type SQLStore struct {
	path       string
	create     bool
	timeFormat string
	db         *sql.DB
}

// NewSQLStore returns a store for the SQLite file at path. With create set,
// a missing file (and its directory) is created on Connect.
func NewSQLStore(path string, create bool) *SQLStore {
	return &SQLStore{path: path, create: create, timeFormat: formatters.DefaultTimeFormat}
}

// WithTimeFormat sets the pattern used for time values read back from the snapshot.
func (s *SQLStore) WithTimeFormat(format string) *SQLStore {
	s.timeFormat = format
	return s
}

func (s *SQLStore) Dialect() string { return DialectSQLite }

// Path returns the snapshot file location.
func (s *SQLStore) Path() string { return s.path }

// Connect opens the snapshot file.
func (s *SQLStore) Connect() error {
	if s.db != nil {
		return nil
	}

	dsn := s.path
	if s.path != MemoryPath {
		if s.create {
			if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
				return fmt.Errorf("failed to create snapshot directory: %w", err)
			}
			dsn += "?mode=rwc"
		} else {
			if _, err := os.Stat(s.path); err != nil {
				return fmt.Errorf("snapshot not found at %s: %w", s.path, err)
			}
			dsn += "?mode=rw"
		}
	}

	logger.Debug("Opening SQLite snapshot: %s", s.path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}

	// One connection keeps a :memory: database alive and serializes writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("unable to ping snapshot: %w", err)
	}

	s.db = db
	return nil
}

// Close closes the snapshot.
func (s *SQLStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Fetch executes a query and materializes every row.
func (s *SQLStore) Fetch(ctx context.Context, name, query string, args ...any) (*dataset.ResultSet, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not connected")
	}

	logger.Debug("Executing query for %s: %s", name, query)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("error reading columns: %w", err)
	}

	rs := dataset.New(name, columns...)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("error reading row %d: %w", rs.Len()+1, err)
		}
		for i, v := range values {
			values[i] = formatters.NormalizeSQLValue(v, s.timeFormat)
		}
		rs.Append(values...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return rs, nil
}

// QueryInt64 runs a single-value query and scans the result into an int64.
func (s *SQLStore) QueryInt64(ctx context.Context, query string, args ...any) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not connected")
	}
	var n int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("query execution failed: %w", err)
	}
	return n, nil
}

// Load copies a ResultSet into a table named after it, creating the table
// (with untyped columns) when missing. Rows are inserted in one transaction.
func (s *SQLStore) Load(ctx context.Context, rs *dataset.ResultSet) error {
	if s.db == nil {
		return fmt.Errorf("database not connected")
	}
	if err := rs.Validate(); err != nil {
		return err
	}

	table := formatters.QuoteIdent(rs.Name)
	cols := make([]string, len(rs.Columns))
	marks := make([]string, len(rs.Columns))
	for i, c := range rs.Columns {
		cols[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
		marks[i] = "?"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(cols, ", "))
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create table %s: %w", rs.Name, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("failed to prepare insert for %s: %w", rs.Name, err)
	}
	defer stmt.Close()

	for i, row := range rs.Rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("failed to insert row %d into %s: %w", i+1, rs.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", rs.Name, err)
	}
	logger.Debug("Loaded %d rows into %s", rs.Len(), rs.Name)
	return nil
}
