package cmd

import (
	"fmt"

	"github.com/fbz-tec/skytrack/core/config"
	"github.com/fbz-tec/skytrack/core/db"
	"github.com/fbz-tec/skytrack/internal/logger"
)

// resolveDSN builds the PostgreSQL DSN from --dsn, or from .env and DB_*
// variables with the connection flags applied on top.
func resolveDSN() (string, error) {
	if connString != "" {
		logger.Debug("Using connection string from --dsn flag")
		return connString, nil
	}

	logger.Debug("Loading configuration from environment and flags")
	cfg, changed := config.LoadConfig().Apply(config.Overrides{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Name:     dbName,
		Password: dbPassword,
	})
	for _, name := range changed {
		logger.Debug("Overriding DB %s from flag", name)
	}

	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("configuration error: %w", err)
	}
	logger.Debug("Configuration loaded: host=%s port=%d database=%s user=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser)
	return cfg.GetConnectionString(), nil
}

// openStore connects to the SQLite snapshot given by --sqlite, otherwise to
// PostgreSQL. The returned source string is safe to print.
func openStore() (db.Store, string, error) {
	if sqlitePath != "" {
		store := db.NewSQLStore(sqlitePath, false).WithTimeFormat(timeFormat)
		if err := store.Connect(); err != nil {
			return nil, "", err
		}
		return store, "sqlite:" + sqlitePath, nil
	}

	pg, source, err := openPostgres(reportSource)
	if err != nil {
		return nil, "", err
	}
	return pg, source, nil
}

func openPostgres(newStore func(dsn string) *db.PgStore) (*db.PgStore, string, error) {
	dsn, err := resolveDSN()
	if err != nil {
		return nil, "", err
	}
	store := newStore(dsn)
	if err := store.Connect(); err != nil {
		return nil, "", err
	}
	return store, db.SanitizeDSN(dsn), nil
}

// reportSource renders time values with --time-format.
func reportSource(dsn string) *db.PgStore {
	return db.NewPgStore(dsn).WithTimeFormat(timeFormat)
}

// snapshotSource ignores --time-format: the snapshot must stay readable by
// SQLite date functions.
func snapshotSource(dsn string) *db.PgStore {
	return db.NewPgStore(dsn).WithTimeFormat(db.SnapshotTimeFormat)
}
