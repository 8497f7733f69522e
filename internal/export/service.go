// Package export renders archived extraction runs as XLSX workbooks.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/insurelens/policy-parser/internal/entity"
	"github.com/insurelens/policy-parser/internal/repository"
)

// Service is a tiny façade over the run repository that produces XLSX bytes.
type Service struct {
	runs   repository.RunRepository
	logger *slog.Logger
}

func NewService(runs repository.RunRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{runs: runs, logger: logger}
}

// ExportRunsXLSX returns an XLSX workbook for archived runs, one row per
// run with a column per extracted field. Empty issuerID exports all issuers.
func (s *Service) ExportRunsXLSX(ctx context.Context, issuerID string, limit int) ([]byte, error) {
	start := time.Now()

	runs, err := s.runs.ListRuns(ctx, issuerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Extractions"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defIdx, _ := f.GetSheetIndex("Sheet1"); defIdx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	fieldKeys := collectFieldKeys(runs)
	headers := append([]string{"Run ID", "Issuer", "Source", "Load Method", "Aggregate Confidence", "Created At"}, fieldKeys...)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range runs {
		fields := decodeReport(r)
		values := []any{
			r.ID.String(), r.IssuerID, r.SourcePath, r.LoadMethod,
			r.Aggregate, r.CreatedAt.UTC().Format(time.RFC3339),
		}
		for _, key := range fieldKeys {
			v := ""
			if fr, ok := fields[key]; ok && fr.Value != nil {
				v = *fr.Value
			}
			values = append(values, v)
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("export complete",
		"issuer_id", issuerID, "runs", len(runs), "duration_ms", time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}

func collectFieldKeys(runs []*entity.ExtractionRun) []string {
	seen := map[string]struct{}{}
	for _, r := range runs {
		for key := range decodeReport(r) {
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func decodeReport(r *entity.ExtractionRun) map[string]entity.FieldResult {
	var fields map[string]entity.FieldResult
	if err := json.Unmarshal(r.ReportJSON, &fields); err != nil {
		return nil
	}
	return fields
}
