package database

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	query := "SELECT id FROM web_log WHERE actor = ? AND operation = ? LIMIT ?"

	assert.Equal(t, query, Rebind(DriverSQLite, query))
	assert.Equal(t,
		"SELECT id FROM web_log WHERE actor = $1 AND operation = $2 LIMIT $3",
		Rebind(DriverPostgres, query))
}

func TestLoadMigrations(t *testing.T) {
	for _, driver := range []string{DriverSQLite, DriverPostgres} {
		migrations, err := LoadMigrations(driver)
		require.NoError(t, err, driver)
		require.NotEmpty(t, migrations, driver)
		assert.Equal(t, "001_create_web_log", migrations[0].Version)
		assert.Contains(t, migrations[0].SQL, "CREATE TABLE IF NOT EXISTS web_log")
	}

	// Labels and route patterns have no length limit on either dialect
	postgres, err := LoadMigrations(DriverPostgres)
	require.NoError(t, err)
	for _, column := range []string{"actor TEXT", "operation TEXT", "description TEXT", "parameters TEXT"} {
		assert.Contains(t, postgres[0].SQL, column)
	}

	_, err = LoadMigrations("mysql")
	assert.Error(t, err)
}

func TestOpenDBUnsupportedDriver(t *testing.T) {
	_, err := OpenDB("mysql", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestInitializeDatabaseIsRepeatable(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)
	dbPath := filepath.Join(t.TempDir(), "weblog.db")

	db, err := InitializeDatabase(DriverSQLite, dbPath, logger)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 1, count)
	require.NoError(t, db.Close())

	// Second run must not re-apply anything
	hook.Reset()
	db, err = InitializeDatabase(DriverSQLite, dbPath, logger)
	require.NoError(t, err)
	defer db.Close()

	for _, entry := range hook.AllEntries() {
		assert.NotEqual(t, "running migration", entry.Message)
	}

	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM web_log").Scan(&count))
	assert.Equal(t, 0, count)
}
