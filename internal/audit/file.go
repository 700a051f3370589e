package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"voicenote/internal/logger"
)

// FileStore is the JSONL-on-disk audit store: one self-contained JSON object
// per line. Appends are serialized and synced so concurrent paraphrase calls
// never interleave partial records and a crash loses at most the record
// being written.
type FileStore struct {
	mu   sync.Mutex
	path string
	log  *logger.Logger
}

// NewFileStore creates a FileStore writing to path, creating the parent
// directory if needed.
func NewFileStore(path string, log *logger.Logger) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create audit log directory: %w", err)
		}
	}
	return &FileStore{
		path: path,
		log:  log.WithComponent("audit"),
	}, nil
}

// Append writes one record as a single JSON line.
func (s *FileStore) Append(_ context.Context, rec Record) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write audit record: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync audit log: %w", err)
	}
	return nil
}

// Query scans the file in order, skipping corrupted lines with a warning.
func (s *FileStore) Query(_ context.Context, opts QueryOptions) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	max := opts.limit()
	records := make([]Record, 0, max)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			s.log.Warn("Skipping invalid audit record", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		if !opts.matches(rec) {
			continue
		}
		records = append(records, rec)
		if len(records) >= max {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	return records, nil
}

// Summarize aggregates every record at or after since.
func (s *FileStore) Summarize(_ context.Context, since time.Time) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Summary{}, nil
		}
		return Summary{}, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var sum Summary
	var origTotal, paraTotal int

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			s.log.Warn("Skipping invalid audit record", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		if rec.Timestamp.Before(since) {
			continue
		}
		sum.Count++
		origTotal += utf8.RuneCountInString(rec.OriginalText)
		paraTotal += utf8.RuneCountInString(rec.ParaphrasedText)
	}
	if err := scanner.Err(); err != nil {
		return Summary{}, fmt.Errorf("read audit log: %w", err)
	}

	if sum.Count > 0 {
		sum.AvgOriginalLen = float64(origTotal) / float64(sum.Count)
		sum.AvgParaphrasedLen = float64(paraTotal) / float64(sum.Count)
	}
	return sum, nil
}
