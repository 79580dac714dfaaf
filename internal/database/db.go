package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Open opens the configured backend. A bare sqlite path gets sensible
// defaults and its directory is created.
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverSQLite:
		if !strings.HasPrefix(dsn, "file:") {
			if dir := filepath.Dir(dsn); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("mkdir db dir: %w", err)
				}
			}
			dsn = fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", dsn)
		}
		db, err := sql.Open(DriverSQLite, dsn)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(1) // sqlite
		db.SetConnMaxLifetime(0)
		return db, nil
	case DriverPostgres:
		db, err := sql.Open(DriverPostgres, dsn)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(10)
		db.SetConnMaxIdleTime(5 * time.Minute)
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
