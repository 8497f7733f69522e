// Package extract runs the two-tier field extraction over a document and
// assembles the report.
package extract

import (
	"log/slog"

	"github.com/insurelens/policy-parser/constants"
	"github.com/insurelens/policy-parser/internal/entity"
	"github.com/insurelens/policy-parser/internal/match"
	"github.com/insurelens/policy-parser/internal/patterns"
	"github.com/insurelens/policy-parser/internal/score"
)

// Coordinator evaluates every field of the resolved definition set against a
// document. It holds no per-document state, so one Coordinator may serve many
// goroutines concurrently; the pattern store it reads is build-once.
type Coordinator struct {
	store  *patterns.Store
	logger *slog.Logger
}

func NewCoordinator(store *patterns.Store, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{store: store, logger: logger}
}

// Extract evaluates all fields for the issuer over the normalized lines and
// returns the completed report. Fields are independent: each is tried strict
// first, then approximate, then recorded as not found. Every field key of
// the resolved set appears in the report exactly once, in set order.
func (c *Coordinator) Extract(lines []string, issuerID string) *entity.ExtractionReport {
	set := c.store.Resolve(issuerID)
	outcomes := make([]entity.MatchOutcome, 0, set.Len())
	var sum float64

	for _, key := range set.Keys() {
		def, _ := set.Definition(key)
		o := evaluateField(lines, def)
		o.Confidence = score.Confidence(o)
		sum += o.Confidence
		outcomes = append(outcomes, o)
	}

	agg := 0.0
	if len(outcomes) > 0 {
		agg = sum / float64(len(outcomes))
	}
	report := &entity.ExtractionReport{
		IssuerID:  issuerID,
		Outcomes:  outcomes,
		Aggregate: agg,
	}
	c.logger.Debug("extraction complete",
		"issuer_id", issuerID, "fields", len(outcomes), "aggregate_confidence", agg)
	return report
}

// evaluateField walks the per-field tiers: strict, then approximate, then
// not-found. All three ends are terminal; there are no retries within a
// document.
func evaluateField(lines []string, def patterns.FieldDefinition) entity.MatchOutcome {
	if o, ok := match.Strict(lines, def); ok {
		return o
	}
	if o, ok := match.Approximate(lines, def); ok {
		return o
	}
	return entity.MatchOutcome{
		FieldKey: def.Key,
		Method:   constants.MethodNone,
	}
}
