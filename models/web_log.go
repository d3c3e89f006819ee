package models

import (
	"time"
)

// AnonymousActor is recorded when no identity can be resolved for a call
const AnonymousActor = "anonymous"

// WebLog represents one audited admin operation
type WebLog struct {
	ID             int64     `json:"id" db:"id"`
	Actor          string    `json:"actor" db:"actor"`
	SourceIP       string    `json:"source_ip" db:"ip"`
	Operation      string    `json:"operation" db:"operation"`
	Parameters     string    `json:"parameters" db:"parameters"`
	Description    string    `json:"description" db:"description"`
	OccurredAt     time.Time `json:"occurred_at" db:"occurred_at"`
	DurationMillis int64     `json:"duration_ms" db:"duration_ms"`
}

// WebLogFilter narrows web log queries. Empty fields match everything.
type WebLogFilter struct {
	// Actor is matched as a substring
	Actor string `json:"actor,omitempty"`
	// Operation is matched exactly
	Operation string `json:"operation,omitempty"`
}

// IsEmpty reports whether the filter matches all records
func (f WebLogFilter) IsEmpty() bool {
	return f.Actor == "" && f.Operation == ""
}
