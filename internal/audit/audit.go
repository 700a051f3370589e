// Package audit provides the append-only store of paraphrase transactions.
// The production backend is a line-delimited JSON file; an in-memory backend
// satisfies the same interface for tests and would be the shape of a
// database-backed one.
package audit

import (
	"context"
	"time"
)

// Record is one paraphrase transaction. Records are immutable once written
// and never updated or deleted.
type Record struct {
	Timestamp       time.Time `json:"timestamp"`
	RequestID       string    `json:"request_id"`
	OriginalText    string    `json:"original_text"`
	ParaphrasedText string    `json:"paraphrased_text"`
}

// QueryOptions filters a Query call. Nil bounds are open-ended; Limit <= 0
// means the default limit.
type QueryOptions struct {
	Start *time.Time
	End   *time.Time
	Limit int
}

// DefaultQueryLimit caps Query results when no limit is given.
const DefaultQueryLimit = 100

// Summary aggregates records at or after a point in time.
type Summary struct {
	Count             int     `json:"count"`
	AvgOriginalLen    float64 `json:"avg_original_length"`
	AvgParaphrasedLen float64 `json:"avg_paraphrased_length"`
}

// Store is the paraphrase audit store.
type Store interface {
	// Append durably writes a single record. Existing records are never
	// rewritten or reordered.
	Append(ctx context.Context, rec Record) error

	// Query returns records whose timestamp lies within [Start, End], in
	// file order, capped at the limit. A corrupted record is skipped, not
	// fatal.
	Query(ctx context.Context, opts QueryOptions) ([]Record, error)

	// Summarize returns the count and average text lengths over records at
	// or after since. Zero-valued when nothing matches.
	Summarize(ctx context.Context, since time.Time) (Summary, error)
}

// matches reports whether a record falls inside the query bounds.
func (o QueryOptions) matches(rec Record) bool {
	if o.Start != nil && rec.Timestamp.Before(*o.Start) {
		return false
	}
	if o.End != nil && rec.Timestamp.After(*o.End) {
		return false
	}
	return true
}

// limit returns the effective result cap.
func (o QueryOptions) limit() int {
	if o.Limit > 0 {
		return o.Limit
	}
	return DefaultQueryLimit
}
