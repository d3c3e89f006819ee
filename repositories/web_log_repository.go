package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/blogem/weblog/database"
	"github.com/blogem/weblog/models"
)

// WebLogRepository persists and queries web logs
type WebLogRepository interface {
	Create(ctx context.Context, entry models.WebLog) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.WebLog, error)
	ListPage(ctx context.Context, offset, limit int) ([]models.WebLog, error)
	ListByActor(ctx context.Context, actor string) ([]models.WebLog, error)
	ListByFilter(ctx context.Context, filter models.WebLogFilter, offset, limit int) ([]models.WebLog, error)
	CountByFilter(ctx context.Context, filter models.WebLogFilter) (int64, error)
}

const webLogColumns = `id, actor, ip, operation, parameters, description, occurred_at, duration_ms`

// webLogOrder keeps paged reads stable across calls
const webLogOrder = `ORDER BY occurred_at DESC, id DESC`

// webLogRepository implements WebLogRepository on database/sql
type webLogRepository struct {
	db     *sql.DB
	driver string
}

// NewWebLogRepository creates a new web log repository
func NewWebLogRepository(db *sql.DB, driver string) WebLogRepository {
	return &webLogRepository{db: db, driver: driver}
}

// Create inserts a web log and returns its assigned ID
func (r *webLogRepository) Create(ctx context.Context, entry models.WebLog) (int64, error) {
	query := `
		INSERT INTO web_log (actor, ip, operation, parameters, description, occurred_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	actor := entry.Actor
	if actor == "" {
		actor = models.AnonymousActor
	}

	var id int64
	err := r.db.QueryRowContext(ctx, r.bind(query),
		actor,
		entry.SourceIP,
		entry.Operation,
		entry.Parameters,
		entry.Description,
		entry.OccurredAt.UTC(),
		entry.DurationMillis,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert web log: %w", err)
	}

	return id, nil
}

// GetByID retrieves a web log by ID
func (r *webLogRepository) GetByID(ctx context.Context, id int64) (*models.WebLog, error) {
	query := `SELECT ` + webLogColumns + ` FROM web_log WHERE id = ?`

	entry, err := scanWebLog(r.db.QueryRowContext(ctx, r.bind(query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("web log with ID %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get web log: %w", err)
	}

	return entry, nil
}

// ListPage retrieves one page of web logs, newest first
func (r *webLogRepository) ListPage(ctx context.Context, offset, limit int) ([]models.WebLog, error) {
	query := `SELECT ` + webLogColumns + ` FROM web_log ` + webLogOrder + ` LIMIT ? OFFSET ?`
	return r.query(ctx, query, limit, offset)
}

// ListByActor retrieves every web log of exactly one actor, newest first
func (r *webLogRepository) ListByActor(ctx context.Context, actor string) ([]models.WebLog, error) {
	query := `SELECT ` + webLogColumns + ` FROM web_log WHERE actor = ? ` + webLogOrder
	return r.query(ctx, query, actor)
}

// ListByFilter retrieves one page of web logs matching the filter
func (r *webLogRepository) ListByFilter(ctx context.Context, filter models.WebLogFilter, offset, limit int) ([]models.WebLog, error) {
	where, args := filterClause(filter)
	query := `SELECT ` + webLogColumns + ` FROM web_log` + where + ` ` + webLogOrder + ` LIMIT ? OFFSET ?`
	args = append(args, limit, offset)
	return r.query(ctx, query, args...)
}

// CountByFilter counts the web logs matching the filter
func (r *webLogRepository) CountByFilter(ctx context.Context, filter models.WebLogFilter) (int64, error) {
	where, args := filterClause(filter)
	query := `SELECT COUNT(*) FROM web_log` + where

	var count int64
	if err := r.db.QueryRowContext(ctx, r.bind(query), args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count web logs: %w", err)
	}

	return count, nil
}

func (r *webLogRepository) bind(query string) string {
	return database.Rebind(r.driver, query)
}

func (r *webLogRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.WebLog, error) {
	rows, err := r.db.QueryContext(ctx, r.bind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query web logs: %w", err)
	}
	defer rows.Close()

	entries := []models.WebLog{}
	for rows.Next() {
		entry, err := scanWebLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan web log: %w", err)
		}
		entries = append(entries, *entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating web logs: %w", err)
	}

	return entries, nil
}

// likeEscaper makes LIKE wildcards in user input match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// filterClause builds the WHERE clause for a filter; empty criteria are left out.
// The actor match is a case-insensitive substring match on every driver.
func filterClause(filter models.WebLogFilter) (string, []interface{}) {
	if filter.IsEmpty() {
		return "", nil
	}

	var conditions []string
	var args []interface{}

	if filter.Actor != "" {
		conditions = append(conditions, `LOWER(actor) LIKE LOWER(?) ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(filter.Actor)+"%")
	}
	if filter.Operation != "" {
		conditions = append(conditions, "operation = ?")
		args = append(args, filter.Operation)
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWebLog(row rowScanner) (*models.WebLog, error) {
	var entry models.WebLog
	err := row.Scan(
		&entry.ID,
		&entry.Actor,
		&entry.SourceIP,
		&entry.Operation,
		&entry.Parameters,
		&entry.Description,
		&entry.OccurredAt,
		&entry.DurationMillis,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
