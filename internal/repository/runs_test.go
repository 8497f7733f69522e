package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insurelens/policy-parser/internal/common"
	"github.com/insurelens/policy-parser/internal/entity"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), common.DatabaseConfig{
		Driver: "sqlite",
		DSN:    ":memory:",
		// one connection so the in-memory database is shared across queries
		MaxConns: 1,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleRun(issuerID string) *entity.ExtractionRun {
	return &entity.ExtractionRun{
		IssuerID:   issuerID,
		SourcePath: "/tmp/policy.pdf",
		LoadMethod: "pdf-text",
		Aggregate:  0.87,
		ReportJSON: []byte(`{"premium_amount":{"value":"25960.00","confidence":1,"method":"strict"}}`),
	}
}

func TestSaveRunAssignsIDAndTimestamp(t *testing.T) {
	repo := NewRunRepository(openTestDB(t), nil)
	run := sampleRun("hdfc")

	require.NoError(t, repo.SaveRun(context.Background(), run))
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.False(t, run.CreatedAt.IsZero())
}

func TestSaveAndGetRun(t *testing.T) {
	repo := NewRunRepository(openTestDB(t), nil)
	run := sampleRun("hdfc")
	require.NoError(t, repo.SaveRun(context.Background(), run))

	got, err := repo.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "hdfc", got.IssuerID)
	assert.Equal(t, "/tmp/policy.pdf", got.SourcePath)
	assert.Equal(t, "pdf-text", got.LoadMethod)
	assert.InDelta(t, 0.87, got.Aggregate, 1e-9)
	assert.JSONEq(t, string(run.ReportJSON), string(got.ReportJSON))
	assert.WithinDuration(t, run.CreatedAt, got.CreatedAt, time.Millisecond)
}

func TestGetRunNotFound(t *testing.T) {
	repo := NewRunRepository(openTestDB(t), nil)

	_, err := repo.GetRun(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DB_GET", appErr.Code)
}

func TestListRunsNewestFirst(t *testing.T) {
	repo := NewRunRepository(openTestDB(t), nil)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		run := sampleRun("lic")
		run.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		run.SourcePath = string(rune('a' + i))
		require.NoError(t, repo.SaveRun(context.Background(), run))
	}

	runs, err := repo.ListRuns(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "c", runs[0].SourcePath)
	assert.Equal(t, "a", runs[2].SourcePath)
}

func TestListRunsFiltersByIssuer(t *testing.T) {
	repo := NewRunRepository(openTestDB(t), nil)
	require.NoError(t, repo.SaveRun(context.Background(), sampleRun("hdfc")))
	require.NoError(t, repo.SaveRun(context.Background(), sampleRun("lic")))
	require.NoError(t, repo.SaveRun(context.Background(), sampleRun("hdfc")))

	runs, err := repo.ListRuns(context.Background(), "hdfc", 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	for _, r := range runs {
		assert.Equal(t, "hdfc", r.IssuerID)
	}
}

func TestListRunsHonorsLimit(t *testing.T) {
	repo := NewRunRepository(openTestDB(t), nil)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.SaveRun(context.Background(), sampleRun("hdfc")))
	}

	runs, err := repo.ListRuns(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), common.DatabaseConfig{Driver: "oracle"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
}
