// Package source defines the record-source boundary of the aggregation
// engine and its concrete implementations: a SQLite-backed source polling
// a posts table, a seeded mock source for tests and demos, and a static
// per-region series loader for the region table view. The engine only
// ever reads one full batch snapshot per tick; storage, schema, and
// delivery semantics stay on this side of the boundary.
package source

import (
	"context"
	"time"
)

// Record is one text unit from a source. Text is the only field the
// engine reads; ID and CreatedAt are carried for logging and display.
type Record struct {
	ID        int64
	Text      string
	CreatedAt time.Time
}

// Source supplies the current batch of records. Implementations may
// return the full table or only recent rows; the engine recomputes from
// whatever batch it receives and tolerates either.
type Source interface {
	// Name identifies the source in logs.
	Name() string

	// FetchBatch returns the current batch snapshot. A non-nil error
	// aborts the tick; an empty batch is valid and produces empty
	// output downstream.
	FetchBatch(ctx context.Context) ([]Record, error)
}

// Texts extracts the text column from a batch.
func Texts(batch []Record) []string {
	out := make([]string, len(batch))
	for i, r := range batch {
		out[i] = r.Text
	}
	return out
}
