// Package score maps raw match quality to a calibrated confidence in [0,1].
// Downstream routing thresholds depend on confidence being monotonically
// non-decreasing in signal strength within each method bucket.
package score

import (
	"github.com/insurelens/policy-parser/constants"
	"github.com/insurelens/policy-parser/internal/entity"
)

// Confidence is a pure function of the outcome's method and signal strength.
//
// strict: 1.0 for a clean single-occurrence hit, 0.95 when the ordering rule
// had to disambiguate several occurrences.
//
// approximate: linear within each score bucket. (90,100] maps to
// [0.80,0.85] and [85,90] maps to [0.60,0.75]. Scores in [80,85) are only
// reachable if the locator threshold is tuned down and clamp to the 0.60
// floor. The exact curve is a tunable, not a contract.
//
// none: 0.0 exactly; absence is a first-class outcome, not an error.
func Confidence(o entity.MatchOutcome) float64 {
	switch o.Method {
	case constants.MethodStrict:
		if o.Ambiguous {
			return 0.95
		}
		return 1.0
	case constants.MethodApproximate:
		return approximateConfidence(o.Signal)
	default:
		return 0.0
	}
}

func approximateConfidence(s float64) float64 {
	if s > 100 {
		s = 100
	}
	switch {
	case s > 90:
		return clamp01(0.80 + (s-90)/10*0.05)
	case s >= 85:
		return clamp01(0.60 + (s-85)/5*0.15)
	case s >= 80:
		return 0.60
	default:
		return 0.0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
