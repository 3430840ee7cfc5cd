package db

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/fbz-tec/skytrack/core/dataset"
	"github.com/fbz-tec/skytrack/core/formatters"
	"github.com/fbz-tec/skytrack/internal/logger"
	"github.com/jackc/pgx/v5"
)

const connectTimeout = 10 * time.Second

// PgStore represents a PostgreSQL database store connection.
type PgStore struct {
	dsn        string
	timeFormat string
	conn       *pgx.Conn
}

// NewPgStore creates a new PostgreSQL store instance with the given DSN.
func NewPgStore(dsn string) *PgStore {
	return &PgStore{dsn: dsn, timeFormat: formatters.DefaultTimeFormat}
}

// WithTimeFormat sets the yyyy-MM-dd style pattern used for date and timestamp columns.
func (s *PgStore) WithTimeFormat(format string) *PgStore {
	s.timeFormat = format
	return s
}

// TimeFormat returns the pattern used for date and timestamp columns.
func (s *PgStore) TimeFormat() string { return s.timeFormat }

func (s *PgStore) Dialect() string { return DialectPostgres }

// Connect establishes a connection to the PostgreSQL database.
// Returns an error if the connection fails or if ping fails.
func (s *PgStore) Connect() error {
	if s.conn != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	logger.Debug("Connection timeout: %v", connectTimeout)
	logger.Debug("Attempting to connect to database host: %s", SanitizeDSN(s.dsn))

	conn, err := pgx.Connect(ctx, s.dsn)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return fmt.Errorf("unable to ping database: %w", err)
	}

	logger.Debug("Database ping successful")
	s.conn = conn
	return nil
}

// Close closes the database connection.
func (s *PgStore) Close() error {
	if s.conn == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := s.conn.Close(ctx)
	if err != nil {
		logger.Debug("Error closing database connection: %v", err)
	} else {
		logger.Debug("Database connection closed successfully")
	}
	s.conn = nil
	return err
}

// Fetch executes a query and materializes every row, normalizing values by column OID.
func (s *PgStore) Fetch(ctx context.Context, name, sql string, args ...any) (*dataset.ResultSet, error) {
	if s.conn == nil {
		return nil, fmt.Errorf("database not connected")
	}

	logger.Debug("Executing query for %s: %s", name, sql)
	start := time.Now()

	rows, err := s.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	oids := make([]uint32, len(fields))
	for i, fd := range fields {
		columns[i] = fd.Name
		oids[i] = fd.DataTypeOID
	}

	rs := dataset.New(name, columns...)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("error reading row %d: %w", rs.Len()+1, err)
		}
		row := make([]any, len(values))
		for i, v := range values {
			row[i] = formatters.NormalizeValue(v, oids[i], s.timeFormat)
		}
		rs.Append(row...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	logger.Debug("Fetched %d rows for %s in %v", rs.Len(), name, time.Since(start))
	return rs, nil
}

// QueryInt64 runs a single-value query and scans the result into an int64.
func (s *PgStore) QueryInt64(ctx context.Context, sql string, args ...any) (int64, error) {
	if s.conn == nil {
		return 0, fmt.Errorf("database not connected")
	}
	var n int64
	if err := s.conn.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("query execution failed: %w", err)
	}
	return n, nil
}

// SanitizeDSN masks the password inside a PostgreSQL DSN for logs and summaries.
func SanitizeDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "<invalid-dsn>"
	}

	var userInfo string
	if u.User != nil {
		username := u.User.Username()
		if _, hasPwd := u.User.Password(); hasPwd {
			userInfo = fmt.Sprintf("%s:***@", username)
		} else {
			userInfo = fmt.Sprintf("%s@", username)
		}
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	return fmt.Sprintf("%s://%s%s%s", u.Scheme, userInfo, u.Host, path)
}
