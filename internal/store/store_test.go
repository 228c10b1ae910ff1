package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireloop/scout/internal/search"
)

func TestSaveWritesOneRecordPerRun(t *testing.T) {
	dir := t.TempDir()
	s := NewJSON(dir)
	s.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }

	candidates := []search.Candidate{
		{Name: "Ada Park", Headline: "Senior Backend Engineer", ProfileURL: "https://www.linkedin.com/in/adapark", Score: 9.5},
		{Name: "Sam Ode", Headline: "Staff Engineer", ProfileURL: "https://www.linkedin.com/in/samode", Score: 4.5},
	}
	require.NoError(t, s.Save(context.Background(), "0f8fad5b-d9cb-469f-a165-70867728950e", candidates))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "candidates_20260829_120000_0f8fad5b.json", entries[0].Name())

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)

	var rec struct {
		RunID      string             `json:"run_id"`
		Count      int                `json:"count"`
		Candidates []search.Candidate `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, "0f8fad5b-d9cb-469f-a165-70867728950e", rec.RunID)
	assert.Equal(t, 2, rec.Count)
	require.Len(t, rec.Candidates, 2)
	assert.Equal(t, "Ada Park", rec.Candidates[0].Name)
}

func TestSaveEmptyRun(t *testing.T) {
	dir := t.TempDir()
	s := NewJSON(dir)

	require.NoError(t, s.Save(context.Background(), "run", nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewJSON(t.TempDir())
	assert.Error(t, s.Save(ctx, "run", nil))
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	s := NewJSON(dir)

	require.NoError(t, s.Save(context.Background(), "run", nil))
	_, err := os.Stat(dir)
	assert.NoError(t, err)
}
