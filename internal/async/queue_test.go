package async

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insurelens/policy-parser/internal/docload"
	"github.com/insurelens/policy-parser/internal/extract"
	"github.com/insurelens/policy-parser/internal/patterns"
	"github.com/insurelens/policy-parser/internal/pipeline"
)

func newBatchProcessor(t *testing.T) *pipeline.Processor {
	t.Helper()
	store, err := patterns.NewStore(nil)
	require.NoError(t, err)
	return pipeline.NewProcessor(nil,
		docload.NewLoader(docload.Config{}, nil),
		extract.NewCoordinator(store, nil),
		nil)
}

func TestPoolRunsAllJobs(t *testing.T) {
	dir := t.TempDir()
	var jobs []Job
	for i := 0; i < 6; i++ {
		path := filepath.Join(dir, fmt.Sprintf("doc-%d.txt", i))
		require.NoError(t, os.WriteFile(path, []byte("Policy Term : 20"), 0o644))
		jobs = append(jobs, Job{Path: path})
	}

	pool := NewPool(newBatchProcessor(t), 3, nil)
	results := pool.Run(context.Background(), jobs)

	require.Len(t, results, len(jobs))
	seen := map[string]bool{}
	for _, r := range results {
		assert.NoError(t, r.Err)
		seen[r.Job.Path] = true
	}
	assert.Len(t, seen, len(jobs), "every job appears exactly once")
}

func TestPoolReportsPerJobErrors(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("Policy Term : 20"), 0o644))

	jobs := []Job{
		{Path: good},
		{Path: filepath.Join(dir, "missing.txt")},
	}

	pool := NewPool(newBatchProcessor(t), 2, nil)
	results := pool.Run(context.Background(), jobs)

	require.Len(t, results, 2)
	byPath := map[string]Result{}
	for _, r := range results {
		byPath[r.Job.Path] = r
	}
	assert.NoError(t, byPath[good].Err)
	assert.Error(t, byPath[jobs[1].Path].Err)
}

func TestPoolStopsSubmittingOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(newBatchProcessor(t), 2, nil)
	results := pool.Run(ctx, []Job{{Path: "never.txt"}, {Path: "ever.txt"}})

	assert.LessOrEqual(t, len(results), 2, "cancelled context submits no further jobs")
}
