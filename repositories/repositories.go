package repositories

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// Repositories struct holds all repository interfaces
type Repositories struct {
	WebLog WebLogRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB, driver string) *Repositories {
	return &Repositories{
		WebLog: NewWebLogRepository(db, driver),
	}
}
