package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insurelens/policy-parser/constants"
	"github.com/insurelens/policy-parser/internal/docload"
	"github.com/insurelens/policy-parser/internal/entity"
	"github.com/insurelens/policy-parser/internal/extract"
	"github.com/insurelens/policy-parser/internal/patterns"
)

type recordingRepo struct {
	saved []*entity.ExtractionRun
}

func (r *recordingRepo) SaveRun(_ context.Context, run *entity.ExtractionRun) error {
	r.saved = append(r.saved, run)
	return nil
}

func (r *recordingRepo) GetRun(_ context.Context, id uuid.UUID) (*entity.ExtractionRun, error) {
	for _, run := range r.saved {
		if run.ID == id {
			return run, nil
		}
	}
	return nil, os.ErrNotExist
}

func (r *recordingRepo) ListRuns(_ context.Context, _ string, _ int) ([]*entity.ExtractionRun, error) {
	return r.saved, nil
}

func newTestProcessor(t *testing.T, runs *recordingRepo) *Processor {
	t.Helper()
	store, err := patterns.NewStore(nil)
	require.NoError(t, err)
	coord := extract.NewCoordinator(store, nil)
	loader := docload.NewLoader(docload.Config{}, nil)
	if runs == nil {
		return NewProcessor(nil, loader, coord, nil)
	}
	return NewProcessor(nil, loader, coord, runs)
}

func TestProcessFileTxt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.txt")
	require.NoError(t, os.WriteFile(path,
		[]byte("Policy Number : PLHA1234567\nPremium Amount : ₹ 25,960.00\n"), 0o644))

	runs := &recordingRepo{}
	p := newTestProcessor(t, runs)

	report, runID, err := p.ProcessFile(context.Background(), path, "")
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.NotEqual(t, uuid.Nil, runID)

	o, ok := report.Outcome(constants.FieldPremiumAmount)
	require.True(t, ok)
	assert.Equal(t, "25960.00", o.Value, "currency marker must be stripped before matching")

	require.Len(t, runs.saved, 1)
	run := runs.saved[0]
	assert.Equal(t, runID, run.ID)
	assert.Equal(t, path, run.SourcePath)
	assert.Equal(t, "txt", run.LoadMethod)
	assert.JSONEq(t, mustSchemaJSON(t, report), string(run.ReportJSON))
}

func TestProcessTextWithoutArchive(t *testing.T) {
	p := newTestProcessor(t, nil)

	report, runID, err := p.ProcessText(context.Background(), "Policy Term : 20", "", "api")
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, runID, "no archive configured, no run id")

	o, ok := report.Outcome(constants.FieldPolicyTerm)
	require.True(t, ok)
	assert.Equal(t, "20", o.Value)
}

func TestProcessTextArchivesWithSource(t *testing.T) {
	runs := &recordingRepo{}
	p := newTestProcessor(t, runs)

	_, _, err := p.ProcessText(context.Background(), "Premium Amount : 100", "hdfc", "upload.pdf")
	require.NoError(t, err)

	require.Len(t, runs.saved, 1)
	assert.Equal(t, "upload.pdf", runs.saved[0].SourcePath)
	assert.Equal(t, "inline", runs.saved[0].LoadMethod)
	assert.Equal(t, "hdfc", runs.saved[0].IssuerID)
}

func TestProcessFileMissing(t *testing.T) {
	p := newTestProcessor(t, nil)
	_, _, err := p.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), "")
	assert.Error(t, err)
}

func mustSchemaJSON(t *testing.T, report *entity.ExtractionReport) string {
	t.Helper()
	raw, err := report.SchemaJSON()
	require.NoError(t, err)
	return string(raw)
}
