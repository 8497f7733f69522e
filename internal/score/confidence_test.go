package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/insurelens/policy-parser/constants"
	"github.com/insurelens/policy-parser/internal/entity"
)

func strictOutcome(ambiguous bool) entity.MatchOutcome {
	return entity.MatchOutcome{
		Found:     true,
		Method:    constants.MethodStrict,
		Signal:    1.0,
		Ambiguous: ambiguous,
	}
}

func approxOutcome(signal float64) entity.MatchOutcome {
	return entity.MatchOutcome{
		Found:  true,
		Method: constants.MethodApproximate,
		Signal: signal,
	}
}

func TestConfidenceStrict(t *testing.T) {
	assert.Equal(t, 1.0, Confidence(strictOutcome(false)))
	assert.Equal(t, 0.95, Confidence(strictOutcome(true)))
}

func TestConfidenceNone(t *testing.T) {
	assert.Equal(t, 0.0, Confidence(entity.MatchOutcome{Method: constants.MethodNone}))
	assert.Equal(t, 0.0, Confidence(entity.MatchOutcome{}))
}

func TestConfidenceApproximateBuckets(t *testing.T) {
	tests := []struct {
		signal float64
		want   float64
	}{
		{100, 0.85},
		{95, 0.825},
		{91, 0.805},
		{90, 0.75}, // boundary belongs to the lower bucket
		{88, 0.69},
		{86, 0.63},
		{85, 0.60},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Confidence(approxOutcome(tt.signal)), 1e-9, "signal %v", tt.signal)
	}
}

func TestConfidenceApproximateBounds(t *testing.T) {
	for s := 85.0; s <= 100.0; s += 0.5 {
		c := Confidence(approxOutcome(s))
		assert.GreaterOrEqual(t, c, 0.60, "signal %v", s)
		assert.LessOrEqual(t, c, 0.85, "signal %v", s)
	}
	// Above-scale signals clamp rather than exceed the ceiling.
	assert.InDelta(t, 0.85, Confidence(approxOutcome(120)), 1e-9)
}

func TestConfidenceApproximateMonotonic(t *testing.T) {
	prev := -1.0
	for s := 80.0; s <= 100.0; s += 0.25 {
		c := Confidence(approxOutcome(s))
		assert.GreaterOrEqual(t, c, prev, "signal %v", s)
		prev = c
	}
}

func TestConfidenceStrictAlwaysAboveApproximate(t *testing.T) {
	assert.Greater(t, Confidence(strictOutcome(true)), Confidence(approxOutcome(100)))
}
