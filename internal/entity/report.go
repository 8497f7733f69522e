package entity

import (
	"encoding/json"

	"github.com/insurelens/policy-parser/constants"
)

// MatchOutcome records how a single field was (or was not) resolved.
type MatchOutcome struct {
	FieldKey string           `json:"field_key"`
	RawToken string           `json:"raw_token,omitempty"` // as captured, pre-validation
	Value    string           `json:"value,omitempty"`     // post value-kind validation
	Found    bool             `json:"found"`
	Method   constants.Method `json:"method"`
	// Signal is the raw match quality before confidence conversion:
	// 1.0 for strict hits, the 0-100 similarity score for approximate hits,
	// 0 when the field was not found.
	Signal float64 `json:"signal"`
	// Ambiguous marks a strict hit that had to pick among several matching
	// occurrences via the ordering rule.
	Ambiguous  bool    `json:"ambiguous,omitempty"`
	Confidence float64 `json:"confidence"`
}

// FieldResult is the wire shape for one field in the report schema:
// exactly value, confidence and method, nothing else.
type FieldResult struct {
	Value      *string `json:"value"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"`
}

// ExtractionReport is the immutable result of evaluating one document.
// Outcomes are ordered by the resolved definition set's key order.
type ExtractionReport struct {
	IssuerID  string         `json:"issuer_id"`
	Outcomes  []MatchOutcome `json:"outcomes"`
	Aggregate float64        `json:"aggregate_confidence"`
}

// Outcome returns the outcome for a field key, if present.
func (r *ExtractionReport) Outcome(key string) (MatchOutcome, bool) {
	for _, o := range r.Outcomes {
		if o.FieldKey == key {
			return o, true
		}
	}
	return MatchOutcome{}, false
}

// ToSchema converts the report to the documented output contract: a mapping
// from field key to {value, confidence, method}.
func (r *ExtractionReport) ToSchema() map[string]FieldResult {
	out := make(map[string]FieldResult, len(r.Outcomes))
	for _, o := range r.Outcomes {
		var v *string
		if o.Found {
			val := o.Value
			v = &val
		}
		out[o.FieldKey] = FieldResult{
			Value:      v,
			Confidence: o.Confidence,
			Method:     string(o.Method),
		}
	}
	return out
}

// SchemaJSON renders the output contract as JSON. Keys are emitted in sorted
// order by encoding/json, so identical reports serialize identically.
func (r *ExtractionReport) SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(r.ToSchema(), "", "  ")
}
