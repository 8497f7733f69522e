// Package pipeline wires document loading, normalization, extraction and
// archiving into one per-document flow.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/insurelens/policy-parser/internal/docload"
	"github.com/insurelens/policy-parser/internal/entity"
	"github.com/insurelens/policy-parser/internal/extract"
	"github.com/insurelens/policy-parser/internal/normalize"
	"github.com/insurelens/policy-parser/internal/repository"
)

// Processor coordinates load -> normalize -> extract -> archive.
// Runs is optional; without it reports are produced but not archived.
type Processor struct {
	Logger      *slog.Logger
	Loader      *docload.Loader
	Coordinator *extract.Coordinator
	Runs        repository.RunRepository
}

func NewProcessor(logger *slog.Logger, loader *docload.Loader, coord *extract.Coordinator, runs repository.RunRepository) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Loader: loader, Coordinator: coord, Runs: runs}
}

// ProcessFile runs the full flow for one document on disk.
func (p *Processor) ProcessFile(ctx context.Context, path, issuerID string) (*entity.ExtractionReport, uuid.UUID, error) {
	res, err := p.Loader.Load(ctx, path)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("load document: %w", err)
	}
	p.Logger.Info("document loaded",
		"path", path, "method", res.Method, "pages", res.Pages, "warnings", len(res.Warnings))

	lines := normalize.Text(res.Text)
	report := p.Coordinator.Extract(lines, issuerID)

	runID, err := p.archive(ctx, report, path, res.Method)
	if err != nil {
		return report, runID, err
	}
	return report, runID, nil
}

// ProcessText runs extraction over already-materialized text (API callers).
func (p *Processor) ProcessText(ctx context.Context, text, issuerID, sourceName string) (*entity.ExtractionReport, uuid.UUID, error) {
	lines := normalize.Text(text)
	report := p.Coordinator.Extract(lines, issuerID)
	runID, err := p.archive(ctx, report, sourceName, "inline")
	if err != nil {
		return report, runID, err
	}
	return report, runID, nil
}

func (p *Processor) archive(ctx context.Context, report *entity.ExtractionReport, sourcePath, loadMethod string) (uuid.UUID, error) {
	if p.Runs == nil {
		return uuid.Nil, nil
	}
	reportJSON, err := report.SchemaJSON()
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode report: %w", err)
	}
	run := &entity.ExtractionRun{
		ID:         uuid.New(),
		IssuerID:   report.IssuerID,
		SourcePath: sourcePath,
		LoadMethod: loadMethod,
		Aggregate:  report.Aggregate,
		ReportJSON: reportJSON,
	}
	if err := p.Runs.SaveRun(ctx, run); err != nil {
		return run.ID, err
	}
	p.Logger.Info("extraction archived",
		"run_id", run.ID, "issuer_id", run.IssuerID,
		"aggregate_confidence", run.Aggregate, "source", sourcePath)
	return run.ID, nil
}
