package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/insurelens/policy-parser/internal/common"
	"github.com/insurelens/policy-parser/internal/entity"
)

// RunRepository persists and lists archived extraction runs.
type RunRepository interface {
	SaveRun(ctx context.Context, run *entity.ExtractionRun) error
	GetRun(ctx context.Context, id uuid.UUID) (*entity.ExtractionRun, error)
	ListRuns(ctx context.Context, issuerID string, limit int) ([]*entity.ExtractionRun, error)
}

type runRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRunRepository(db *sql.DB, logger *slog.Logger) RunRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &runRepository{db: db, logger: logger}
}

func (r *runRepository) SaveRun(ctx context.Context, run *entity.ExtractionRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO extraction_runs (id, issuer_id, source_path, load_method, aggregate_confidence, report_json, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID.String(), run.IssuerID, run.SourcePath, run.LoadMethod,
		run.Aggregate, string(run.ReportJSON), run.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		r.logger.Error("failed to save extraction run", "run_id", run.ID, "error", err)
		return common.NewAppError("DB_SAVE", "save extraction run", err)
	}
	r.logger.Debug("extraction run archived", "run_id", run.ID, "issuer_id", run.IssuerID)
	return nil
}

func (r *runRepository) GetRun(ctx context.Context, id uuid.UUID) (*entity.ExtractionRun, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, issuer_id, source_path, load_method, aggregate_confidence, report_json, created_at
FROM extraction_runs WHERE id = $1`, id.String())
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, common.NewAppError("DB_GET", "extraction run not found", common.ErrNotFound)
	}
	if err != nil {
		return nil, common.NewAppError("DB_GET", "load extraction run", err)
	}
	return run, nil
}

func (r *runRepository) ListRuns(ctx context.Context, issuerID string, limit int) ([]*entity.ExtractionRun, error) {
	if limit <= 0 {
		limit = 100
	}
	var (
		rows *sql.Rows
		err  error
	)
	if issuerID == "" {
		rows, err = r.db.QueryContext(ctx, `
SELECT id, issuer_id, source_path, load_method, aggregate_confidence, report_json, created_at
FROM extraction_runs ORDER BY created_at DESC LIMIT $1`, limit)
	} else {
		rows, err = r.db.QueryContext(ctx, `
SELECT id, issuer_id, source_path, load_method, aggregate_confidence, report_json, created_at
FROM extraction_runs WHERE issuer_id = $1 ORDER BY created_at DESC LIMIT $2`, issuerID, limit)
	}
	if err != nil {
		return nil, common.NewAppError("DB_LIST", "list extraction runs", err)
	}
	defer rows.Close()

	var out []*entity.ExtractionRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, common.NewAppError("DB_LIST", "scan extraction run", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*entity.ExtractionRun, error) {
	var (
		run        entity.ExtractionRun
		idStr      string
		reportStr  string
		createdStr string
	)
	if err := row.Scan(&idStr, &run.IssuerID, &run.SourcePath, &run.LoadMethod,
		&run.Aggregate, &reportStr, &createdStr); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	created, err := time.Parse(time.RFC3339Nano, createdStr)
	if err != nil {
		return nil, err
	}
	run.ID = id
	run.CreatedAt = created
	run.ReportJSON = []byte(reportStr)
	return &run, nil
}
