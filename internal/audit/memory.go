package audit

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"
)

// MemoryStore is an in-memory Store. It exists for tests and as the
// reference for any future database-backed implementation.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append stores one record.
func (s *MemoryStore) Append(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// Query returns matching records in insertion order, capped at the limit.
func (s *MemoryStore) Query(_ context.Context, opts QueryOptions) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	max := opts.limit()
	out := make([]Record, 0, max)
	for _, rec := range s.records {
		if !opts.matches(rec) {
			continue
		}
		out = append(out, rec)
		if len(out) >= max {
			break
		}
	}
	return out, nil
}

// Summarize aggregates every record at or after since.
func (s *MemoryStore) Summarize(_ context.Context, since time.Time) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum Summary
	var origTotal, paraTotal int
	for _, rec := range s.records {
		if rec.Timestamp.Before(since) {
			continue
		}
		sum.Count++
		origTotal += utf8.RuneCountInString(rec.OriginalText)
		paraTotal += utf8.RuneCountInString(rec.ParaphrasedText)
	}
	if sum.Count > 0 {
		sum.AvgOriginalLen = float64(origTotal) / float64(sum.Count)
		sum.AvgParaphrasedLen = float64(paraTotal) / float64(sum.Count)
	}
	return sum, nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Records returns a copy of all stored records.
func (s *MemoryStore) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}
