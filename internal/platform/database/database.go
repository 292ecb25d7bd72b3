package database

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"mdtboard/internal/platform/config"
)

// New opens the shared connection pool. The driver is picked from the DSN
// scheme: postgres:// goes through lib/pq, anything else is treated as an
// sqlite file path (an optional file: prefix is stripped).
func New(cfg config.DatabaseConfig) (*sql.DB, error) {
	driver := "sqlite3"
	dsn := cfg.URL

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "postgres"
	} else if strings.HasPrefix(dsn, "file:") {
		dsn = strings.TrimPrefix(dsn, "file:")
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
	}
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}
