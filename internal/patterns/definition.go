package patterns

import (
	"fmt"
	"regexp"

	"github.com/insurelens/policy-parser/constants"
)

// delimiter between a label and its value: colon, dash, or a whitespace run.
const delimiter = `(?:\s*[:\-]\s*|\s+)`

// StrictPattern anchors a label regex to an adjacent value capture on the
// same line. Label and value are compiled into one case-insensitive regex so
// a hit guarantees structural adjacency.
type StrictPattern struct {
	Label string `json:"label"`
	Value string `json:"value"`

	re *regexp.Regexp
}

// compile checks label and value fragments on their own before joining them;
// a malformed fragment must not slip through by borrowing syntax from the
// delimiter or the other fragment.
func (p *StrictPattern) compile() error {
	if _, err := regexp.Compile(p.Label); err != nil {
		return fmt.Errorf("label pattern %q: %w", p.Label, err)
	}
	value, err := regexp.Compile(p.Value)
	if err != nil {
		return fmt.Errorf("value pattern %q: %w", p.Value, err)
	}
	if value.NumSubexp() < 1 {
		return fmt.Errorf("value pattern %q has no capture group", p.Value)
	}
	re, err := regexp.Compile(`(?i)` + p.Label + delimiter + p.Value)
	if err != nil {
		return err
	}
	p.re = re
	return nil
}

// Matches returns the captured values of every match in the line, in order.
// The capture of interest is the last group, mirroring the (Label)...(Value)
// convention.
func (p *StrictPattern) Matches(line string) []string {
	ms := p.re.FindAllStringSubmatch(line, -1)
	if ms == nil {
		return nil
	}
	vals := make([]string, 0, len(ms))
	for _, m := range ms {
		vals = append(vals, m[len(m)-1])
	}
	return vals
}

// FieldDefinition describes how to locate and validate one field.
type FieldDefinition struct {
	Key      string              `json:"key"`
	Kind     constants.ValueKind `json:"kind"`
	Keywords []string            `json:"keywords"`
	Patterns []StrictPattern     `json:"patterns"`
	// Enum restricts enumerated-token fields to this vocabulary.
	Enum []string `json:"enum,omitempty"`
	// FinalAmount marks total/payable style fields where the last qualifying
	// occurrence in document order is the correct one.
	FinalAmount bool `json:"final_amount,omitempty"`
}

func (d *FieldDefinition) validate() error {
	if d.Key == "" {
		return fmt.Errorf("field definition missing key")
	}
	switch d.Kind {
	case constants.KindNumericCurrency, constants.KindIntegerDuration,
		constants.KindAlphanumericCode, constants.KindFreeText:
	case constants.KindEnumeratedToken:
		if len(d.Enum) == 0 {
			return fmt.Errorf("field %s: enumerated-token without enum values", d.Key)
		}
	default:
		return fmt.Errorf("field %s: unknown value kind %q", d.Key, d.Kind)
	}
	if len(d.Keywords) == 0 && len(d.Patterns) == 0 {
		return fmt.Errorf("field %s: no keywords and no patterns", d.Key)
	}
	for i := range d.Patterns {
		if err := d.Patterns[i].compile(); err != nil {
			return fmt.Errorf("field %s: pattern %d: %w", d.Key, i, err)
		}
	}
	return nil
}

// FieldDefinitionSet is the effective, immutable definition set for one
// issuer. Key order is stable so reports are reproducible.
type FieldDefinitionSet struct {
	issuerID string
	keys     []string
	defs     map[string]FieldDefinition
}

// IssuerID returns the issuer this set was resolved for.
func (s *FieldDefinitionSet) IssuerID() string { return s.issuerID }

// Keys returns the field keys in definition order.
func (s *FieldDefinitionSet) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Definition returns the definition for a field key.
func (s *FieldDefinitionSet) Definition(key string) (FieldDefinition, bool) {
	d, ok := s.defs[key]
	return d, ok
}

// Len returns the number of fields in the set.
func (s *FieldDefinitionSet) Len() int { return len(s.keys) }

// NewFieldDefinitionSet builds and validates a standalone definition set.
// The Store is the usual way to obtain sets; this exists for callers that
// assemble definitions programmatically.
func NewFieldDefinitionSet(issuerID string, defs []FieldDefinition) (*FieldDefinitionSet, error) {
	return newSet(issuerID, defs)
}
