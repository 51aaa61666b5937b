package store

import (
	"fmt"
	"log/slog"
	"strings"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Driver selection is part of Opts so the caller can thread it through the
// same option slice as the DSN.

// WithDriver sets the database driver (sqlite3, postgres, or memory).
func WithDriver(driver string) Option {
	return func(o *Opts) { o.Driver = driver }
}

// DetectDSNType classifies a DSN as postgres or sqlite3. Postgres DSNs come
// as URLs or key=value connection strings; anything else is treated as an
// SQLite file path.
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return DriverPostgres
	}
	return DriverSQLite
}

// New creates a store for the configured driver. An empty driver selects the
// in-memory store, which keeps development and tests free of database setup.
func New(opts ...Option) (Store, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	switch cfg.Driver {
	case DriverSQLite:
		return NewSQLiteStore(opts...)
	case DriverPostgres:
		return NewPostgresStore(opts...)
	case DriverMemory, "":
		slog.Debug("store.New: using in-memory store")
		return NewInMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
