package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExtractionRun is an archived extraction for data transfer between layers.
type ExtractionRun struct {
	ID         uuid.UUID `json:"id"`
	IssuerID   string    `json:"issuer_id"`
	SourcePath string    `json:"source_path"`
	LoadMethod string    `json:"load_method"` // "txt" | "pdf-text" | "pdf-ocr" | "inline"
	Aggregate  float64   `json:"aggregate_confidence"`
	ReportJSON []byte    `json:"report_json"`
	CreatedAt  time.Time `json:"created_at"`
}
