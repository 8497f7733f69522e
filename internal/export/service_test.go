package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/insurelens/policy-parser/internal/entity"
)

type fakeRunRepository struct {
	runs []*entity.ExtractionRun
}

func (f *fakeRunRepository) SaveRun(_ context.Context, run *entity.ExtractionRun) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRunRepository) GetRun(_ context.Context, id uuid.UUID) (*entity.ExtractionRun, error) {
	for _, r := range f.runs {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, context.Canceled
}

func (f *fakeRunRepository) ListRuns(_ context.Context, issuerID string, _ int) ([]*entity.ExtractionRun, error) {
	var out []*entity.ExtractionRun
	for _, r := range f.runs {
		if issuerID == "" || r.IssuerID == issuerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func testRun(issuerID, source, reportJSON string) *entity.ExtractionRun {
	return &entity.ExtractionRun{
		ID:         uuid.New(),
		IssuerID:   issuerID,
		SourcePath: source,
		LoadMethod: "pdf-text",
		Aggregate:  0.9,
		ReportJSON: []byte(reportJSON),
		CreatedAt:  time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC),
	}
}

func TestExportRunsXLSX(t *testing.T) {
	repo := &fakeRunRepository{runs: []*entity.ExtractionRun{
		testRun("hdfc", "a.pdf",
			`{"policy_number":{"value":"18273645","confidence":1,"method":"strict"},"premium_amount":{"value":"50000.00","confidence":1,"method":"strict"}}`),
		testRun("lic", "b.pdf",
			`{"policy_number":{"value":null,"confidence":0,"method":"none"},"maturity_value":{"value":"750000","confidence":0.8,"method":"approximate"}}`),
	}}
	svc := NewService(repo, nil)

	raw, err := svc.ExportRunsXLSX(context.Background(), "", 0)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Extractions")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Fixed columns first, then the sorted union of field keys across runs.
	assert.Equal(t, []string{
		"Run ID", "Issuer", "Source", "Load Method", "Aggregate Confidence", "Created At",
		"maturity_value", "policy_number", "premium_amount",
	}, rows[0])

	assert.Equal(t, "hdfc", rows[1][1])
	assert.Equal(t, "a.pdf", rows[1][2])
	assert.Equal(t, "18273645", rows[1][7])
	assert.Equal(t, "50000.00", rows[1][8])

	assert.Equal(t, "lic", rows[2][1])
	assert.Equal(t, "750000", rows[2][6])
}

func TestExportRunsXLSXEmptyArchive(t *testing.T) {
	svc := NewService(&fakeRunRepository{}, nil)

	raw, err := svc.ExportRunsXLSX(context.Background(), "", 0)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Extractions")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header row only")
}

func TestExportRunsXLSXFiltersByIssuer(t *testing.T) {
	repo := &fakeRunRepository{runs: []*entity.ExtractionRun{
		testRun("hdfc", "a.pdf", `{}`),
		testRun("lic", "b.pdf", `{}`),
	}}
	svc := NewService(repo, nil)

	raw, err := svc.ExportRunsXLSX(context.Background(), "lic", 0)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Extractions")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "lic", rows[1][1])
}
