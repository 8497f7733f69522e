package match

import (
	"github.com/insurelens/policy-parser/constants"
	"github.com/insurelens/policy-parser/internal/entity"
	"github.com/insurelens/policy-parser/internal/patterns"
)

// Strict applies the definition's anchored patterns line by line. Label and
// value must be structurally adjacent on the same line, so a hit cannot pick
// up a value belonging to a nearby unrelated field.
//
// Occurrence policy: final-amount fields take the last matching occurrence in
// document order (documents itemize net premium, tax, then the total last);
// everything else takes the first. A hit whose captured token fails value-kind
// validation is discarded, which lets the caller fall through to the
// approximate tier.
func Strict(lines []string, def patterns.FieldDefinition) (entity.MatchOutcome, bool) {
	for _, p := range def.Patterns {
		var hits []string
		for _, line := range lines {
			hits = append(hits, p.Matches(line)...)
		}
		if len(hits) == 0 {
			continue
		}
		raw := hits[0]
		if def.FinalAmount {
			raw = hits[len(hits)-1]
		}
		value, ok := NormalizeValue(def.Kind, raw, def.Enum)
		if !ok {
			continue
		}
		return entity.MatchOutcome{
			FieldKey:  def.Key,
			RawToken:  raw,
			Value:     value,
			Found:     true,
			Method:    constants.MethodStrict,
			Signal:    1.0,
			Ambiguous: len(hits) > 1,
		}, true
	}
	return entity.MatchOutcome{}, false
}
