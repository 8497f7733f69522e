package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/insurelens/policy-parser/internal/common"
	"github.com/insurelens/policy-parser/internal/entity"
)

type extractRequest struct {
	IssuerID string `json:"issuer_id"`
	Text     string `json:"text"`
	Source   string `json:"source,omitempty"`
}

type extractResponse struct {
	RunID               string                        `json:"run_id,omitempty"`
	IssuerID            string                        `json:"issuer_id"`
	AggregateConfidence float64                       `json:"aggregate_confidence"`
	Fields              map[string]entity.FieldResult `json:"fields"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	source := req.Source
	if source == "" {
		source = "api"
	}

	report, runID, err := s.processor.ProcessText(r.Context(), req.Text, req.IssuerID, source)
	if err != nil {
		s.logger.Error("extract failed", "issuer_id", req.IssuerID, "error", err)
		writeError(w, http.StatusInternalServerError, "extraction failed")
		return
	}

	resp := extractResponse{
		IssuerID:            report.IssuerID,
		AggregateConfidence: report.Aggregate,
		Fields:              report.ToSchema(),
	}
	if runID != uuid.Nil {
		resp.RunID = runID.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, http.StatusServiceUnavailable, "archive store not configured")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.runs.ListRuns(r.Context(), r.URL.Query().Get("issuer_id"), limit)
	if err != nil {
		s.logger.Error("list runs failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	// Omit report bodies in listings.
	type runSummary struct {
		ID        string  `json:"id"`
		IssuerID  string  `json:"issuer_id"`
		Source    string  `json:"source_path"`
		Method    string  `json:"load_method"`
		Aggregate float64 `json:"aggregate_confidence"`
		CreatedAt string  `json:"created_at"`
	}
	out := make([]runSummary, 0, len(runs))
	for _, run := range runs {
		out = append(out, runSummary{
			ID:        run.ID.String(),
			IssuerID:  run.IssuerID,
			Source:    run.SourcePath,
			Method:    run.LoadMethod,
			Aggregate: run.Aggregate,
			CreatedAt: run.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, http.StatusServiceUnavailable, "archive store not configured")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run id")
		return
	}
	run, err := s.runs.GetRun(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		s.logger.Error("get run failed", "run_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(run.ReportJSON)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		writeError(w, http.StatusServiceUnavailable, "archive store not configured")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	data, err := s.exporter.ExportRunsXLSX(r.Context(), r.URL.Query().Get("issuer_id"), limit)
	if err != nil {
		s.logger.Error("export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="extractions.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
