package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Supported database/sql driver names
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// OpenDB opens and verifies a database connection for the given driver
func OpenDB(driver, dataSourceName string) (*sql.DB, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	if driver == DriverSQLite {
		dataSourceName = withSQLiteOptions(dataSourceName)
	}

	db, err := sql.Open(driver, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if driver == DriverPostgres {
		db.SetMaxOpenConns(25)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	return db, nil
}

// withSQLiteOptions applies per-connection settings through the DSN so every
// pooled connection gets them; several dispatcher workers insert concurrently.
func withSQLiteOptions(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn
	}
	return dsn + "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on"
}

// InitializeDatabase opens the database connection and runs migrations
func InitializeDatabase(driver, dataSourceName string, logger logrus.FieldLogger) (*sql.DB, error) {
	db, err := OpenDB(driver, dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(db, driver, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.WithField("driver", driver).Info("database initialized")
	return db, nil
}
