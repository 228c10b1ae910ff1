// Package store persists finished candidate lists. The pipeline hands
// each run's records over exactly once; everything durable beyond that
// single write is out of scope.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"

	"github.com/hireloop/scout/internal/search"
)

// runRecord is the persisted shape of one search run.
type runRecord struct {
	RunID      string             `json:"run_id"`
	SavedAt    time.Time          `json:"saved_at"`
	Count      int                `json:"count"`
	Candidates []search.Candidate `json:"candidates"`
}

// JSONStore writes one JSON document per search run.
type JSONStore struct {
	dir string
	now func() time.Time
}

// NewJSON creates a store rooted at dir. The directory is created on
// first save.
func NewJSON(dir string) *JSONStore {
	return &JSONStore{dir: dir, now: time.Now}
}

// Save persists the run's candidates. Implements search.Store.
func (s *JSONStore) Save(ctx context.Context, runID string, candidates []search.Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("results dir: %w", err)
	}

	rec := runRecord{
		RunID:      runID,
		SavedAt:    s.now().UTC(),
		Count:      len(candidates),
		Candidates: candidates,
	}
	data, err := sonic.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode run record: %w", err)
	}

	name := fmt.Sprintf("candidates_%s_%s.json", rec.SavedAt.Format("20060102_150405"), shortID(runID))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write run record: %w", err)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
