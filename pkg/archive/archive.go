// Package archive records tool runs.
//
// Every call made through the tool runner is saved as a [Record], whether it
// succeeded or failed, so that results quoted in a well plan can be traced
// back to their inputs. Records are immutable and keyed by a random UUID.
//
// # Backends
//
//   - [NullStore] discards records.
//   - [SQLiteStore] keeps a local "runs" table (modernc.org/sqlite, no cgo).
//   - [MongoStore] writes to a shared "runs" collection.
package archive

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Record is one archived tool run.
type Record struct {
	ID        string          `json:"id"`
	Tool      string          `json:"tool"`
	Input     json.RawMessage `json:"input"`
	Output    json.RawMessage `json:"output,omitempty"`
	ErrorCode string          `json:"error_code,omitempty"`
	Error     string          `json:"error,omitempty"`
	Cached    bool            `json:"cached"`
	Duration  time.Duration   `json:"duration_ns"`
	CreatedAt time.Time       `json:"created_at"`
}

// Failed reports whether the run returned an error.
func (r Record) Failed() bool { return r.ErrorCode != "" }

// ListOptions filters [Store.List].
type ListOptions struct {
	// Tool restricts results to one tool. Empty means all tools.
	Tool string
	// Limit caps the number of records. Zero means DefaultListLimit.
	Limit int
}

// DefaultListLimit is the page size when ListOptions.Limit is zero.
const DefaultListLimit = 50

func (o ListOptions) limit() int {
	if o.Limit <= 0 {
		return DefaultListLimit
	}
	return o.Limit
}

// Store persists records.
type Store interface {
	// Save inserts rec. Saving an existing ID is an error.
	Save(ctx context.Context, rec Record) error

	// Get returns the record with the given ID, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (Record, error)

	// List returns records newest first.
	List(ctx context.Context, opts ListOptions) ([]Record, error)

	// Close releases the backend.
	Close() error
}

// NewID returns a fresh record ID.
func NewID() string {
	return uuid.NewString()
}
