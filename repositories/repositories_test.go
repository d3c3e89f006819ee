package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogem/weblog/database"
	"github.com/blogem/weblog/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	logger, _ := test.NewNullLogger()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	// Initialize test database using the actual migration system
	db, err := database.InitializeDatabase(database.DriverSQLite, dbPath, logger)
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

var baseTime = time.Date(2024, time.January, 19, 10, 0, 0, 0, time.UTC)

func newEntry(actor, operation string, offset time.Duration) models.WebLog {
	return models.WebLog{
		Actor:          actor,
		SourceIP:       "10.0.0.1",
		Operation:      operation,
		Parameters:     `arg0: {"id":1}`,
		Description:    "update product",
		OccurredAt:     baseTime.Add(offset),
		DurationMillis: 12,
	}
}

func TestWebLogRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWebLogRepository(db, database.DriverSQLite)
	ctx := context.Background()

	entry := newEntry("alice", "POST /product/update", 0)

	// Test Create
	id, err := repo.Create(ctx, entry)
	require.NoError(t, err)
	assert.NotZero(t, id)

	// Test GetByID returns the same record with the assigned id
	retrieved, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, retrieved.ID)
	assert.Equal(t, entry.Actor, retrieved.Actor)
	assert.Equal(t, entry.SourceIP, retrieved.SourceIP)
	assert.Equal(t, entry.Operation, retrieved.Operation)
	assert.Equal(t, entry.Parameters, retrieved.Parameters)
	assert.Equal(t, entry.Description, retrieved.Description)
	assert.Equal(t, entry.DurationMillis, retrieved.DurationMillis)
	assert.True(t, entry.OccurredAt.Equal(retrieved.OccurredAt), "occurred_at %v != %v", entry.OccurredAt, retrieved.OccurredAt)

	// Same record twice yields two distinct rows
	secondID, err := repo.Create(ctx, entry)
	require.NoError(t, err)
	assert.NotEqual(t, id, secondID)

	count, err := repo.CountByFilter(ctx, models.WebLogFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Test GetByID on a missing record
	_, err = repo.GetByID(ctx, 9999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestWebLogRepository_EmptyActorDefaultsToAnonymous(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWebLogRepository(db, database.DriverSQLite)
	ctx := context.Background()

	id, err := repo.Create(ctx, newEntry("", "GET /weblog/list", 0))
	require.NoError(t, err)

	retrieved, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.AnonymousActor, retrieved.Actor)
}

func TestWebLogRepository_Listing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWebLogRepository(db, database.DriverSQLite)
	ctx := context.Background()

	// 12 records for alice, 3 for bob, interleaved in time
	for i := 0; i < 12; i++ {
		_, err := repo.Create(ctx, newEntry("alice", "POST /product/update", time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}
	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, newEntry("bob", "POST /order/close", time.Duration(i)*time.Minute+30*time.Second))
		require.NoError(t, err)
	}

	t.Run("page is newest first and stable", func(t *testing.T) {
		first, err := repo.ListPage(ctx, 0, 5)
		require.NoError(t, err)
		require.Len(t, first, 5)
		for i := 1; i < len(first); i++ {
			assert.False(t, first[i].OccurredAt.After(first[i-1].OccurredAt))
		}

		again, err := repo.ListPage(ctx, 0, 5)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	})

	t.Run("by exact actor", func(t *testing.T) {
		entries, err := repo.ListByActor(ctx, "bob")
		require.NoError(t, err)
		assert.Len(t, entries, 3)

		entries, err = repo.ListByActor(ctx, "bo")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("filtered second page", func(t *testing.T) {
		filter := models.WebLogFilter{Actor: "ali"}
		total, err := repo.CountByFilter(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(12), total)

		all, err := repo.ListByFilter(ctx, filter, 0, 12)
		require.NoError(t, err)
		require.Len(t, all, 12)

		page, err := repo.ListByFilter(ctx, filter, 5, 5)
		require.NoError(t, err)
		require.Len(t, page, 5)
		assert.Equal(t, all[5:10], page)
	})

	t.Run("filter by operation", func(t *testing.T) {
		filter := models.WebLogFilter{Operation: "POST /order/close"}
		total, err := repo.CountByFilter(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)

		filter.Actor = "alice"
		total, err = repo.CountByFilter(ctx, filter)
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestWebLogRepository_ActorFilterIsLiteral(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWebLogRepository(db, database.DriverSQLite)
	ctx := context.Background()

	actors := []string{"admin_1", "adminX1", "Admin_1", "100%", "1000", `back\slash`, "backXslash"}
	for i, actor := range actors {
		_, err := repo.Create(ctx, newEntry(actor, "POST /product/update", time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	tests := []struct {
		name  string
		actor string
		want  []string
	}{
		{name: "underscore", actor: "n_1", want: []string{"Admin_1", "admin_1"}},
		{name: "percent", actor: "0%", want: []string{"100%"}},
		{name: "backslash", actor: `k\s`, want: []string{`back\slash`}},
		{name: "case insensitive", actor: "ADMINX", want: []string{"adminX1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := models.WebLogFilter{Actor: tt.actor}

			entries, err := repo.ListByFilter(ctx, filter, 0, 20)
			require.NoError(t, err)
			got := make([]string, 0, len(entries))
			for _, e := range entries {
				got = append(got, e.Actor)
			}
			assert.ElementsMatch(t, tt.want, got)

			total, err := repo.CountByFilter(ctx, filter)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)
		})
	}
}

func TestFilterClause(t *testing.T) {
	where, args := filterClause(models.WebLogFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = filterClause(models.WebLogFilter{Actor: `a_b%c\d`})
	assert.Equal(t, ` WHERE LOWER(actor) LIKE LOWER(?) ESCAPE '\'`, where)
	assert.Equal(t, []interface{}{`%a\_b\%c\\d%`}, args)
}

func TestWebLogRepository_ConcurrentInserts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWebLogRepository(db, database.DriverSQLite)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, newEntry(fmt.Sprintf("user%d", i%4), "POST /x", time.Duration(i)*time.Second))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	count, err := repo.CountByFilter(ctx, models.WebLogFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(40), count)
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestWebLogRepository_DatabaseErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("insert failure is wrapped", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewWebLogRepository(db, database.DriverSQLite)

		mock.ExpectQuery("INSERT INTO web_log").WillReturnError(errors.New("disk I/O error"))

		_, err := repo.Create(ctx, newEntry("alice", "POST /x", 0))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert web log")
		assert.Contains(t, err.Error(), "disk I/O error")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("postgres placeholders", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewWebLogRepository(db, database.DriverPostgres)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM web_log WHERE LOWER\(actor\) LIKE LOWER\(\$1\) ESCAPE '\\' AND operation = \$2`).
			WithArgs("%ali%", "POST /x").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.CountByFilter(ctx, models.WebLogFilter{Actor: "ali", Operation: "POST /x"})
		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewWebLogRepository(db, database.DriverSQLite)

		mock.ExpectQuery("SELECT (.+) FROM web_log ORDER BY").
			WithArgs(5, 0).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.ListPage(ctx, 0, 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query web logs")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("scan failure", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewWebLogRepository(db, database.DriverSQLite)

		mock.ExpectQuery("SELECT (.+) FROM web_log WHERE actor = ").
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		_, err := repo.ListByActor(ctx, "alice")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to scan web log")
	})
}
