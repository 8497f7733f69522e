package match

import (
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/insurelens/policy-parser/constants"
	"github.com/insurelens/policy-parser/internal/entity"
	"github.com/insurelens/policy-parser/internal/patterns"
)

// SimilarityThreshold is the minimum partial-alignment score a line must
// exceed (strictly) before it can supply a value. 85 tolerates one or two
// OCR character errors in a short label without admitting unrelated lines.
const SimilarityThreshold = 85

type candidate struct {
	line    int
	score   int
	spanEnd int // rune offset just past the matched keyword window
}

// Approximate locates the field by string similarity when no strict pattern
// fired. Each line gets the best partial-alignment score over the
// definition's keyword phrases; qualifying lines (score strictly above the
// threshold) are tried from highest score down, ties broken by earliest line
// in document order, until one yields a value. Numeric-currency takes the
// rightmost numeric token on the line, other kinds take the first satisfying
// token after the matched keyword span. No token on any qualifying line
// means no match.
func Approximate(lines []string, def patterns.FieldDefinition) (entity.MatchOutcome, bool) {
	var cands []candidate
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineScore := 0
		spanEnd := 0
		for _, kw := range def.Keywords {
			score, end := bestWindow(kw, line)
			if score > lineScore {
				lineScore = score
				spanEnd = end
			}
		}
		if lineScore > SimilarityThreshold {
			cands = append(cands, candidate{line: i, score: lineScore, spanEnd: spanEnd})
		}
	}
	sort.SliceStable(cands, func(a, b int) bool {
		if cands[a].score != cands[b].score {
			return cands[a].score > cands[b].score
		}
		return cands[a].line < cands[b].line
	})

	for _, c := range cands {
		line := lines[c.line]
		scanRegion := line
		if def.Kind != constants.KindNumericCurrency {
			runes := []rune(line)
			if c.spanEnd < len(runes) {
				scanRegion = string(runes[c.spanEnd:])
			} else {
				scanRegion = ""
			}
		}
		raw, value, ok := scanToken(def.Kind, scanRegion, def.Enum)
		if !ok {
			continue
		}
		return entity.MatchOutcome{
			FieldKey: def.Key,
			RawToken: raw,
			Value:    value,
			Found:    true,
			Method:   constants.MethodApproximate,
			Signal:   float64(c.score),
		}, true
	}
	return entity.MatchOutcome{}, false
}

// bestWindow slides a keyword-sized window across the line and returns the
// best similarity ratio (0-100) plus the rune offset just past the best
// window, approximating a partial-ratio alignment with a known span.
func bestWindow(keyword, line string) (int, int) {
	kw := strings.ToLower(keyword)
	runes := []rune(line)
	wlen := len([]rune(kw))
	if wlen == 0 {
		return 0, 0
	}
	if len(runes) <= wlen {
		return fuzzy.Ratio(kw, strings.ToLower(line)), len(runes)
	}
	best := 0
	bestEnd := wlen
	for i := 0; i+wlen <= len(runes); i++ {
		window := strings.ToLower(string(runes[i : i+wlen]))
		if s := fuzzy.Ratio(kw, window); s > best {
			best = s
			bestEnd = i + wlen
		}
	}
	return best, bestEnd
}
