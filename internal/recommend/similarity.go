package recommend

import (
	"fmt"
	"math"

	"github.com/suhruthkrishna/bookpal/internal/models"
)

// Cosine computes the cosine similarity between two embedding vectors:
// dot(a,b) / (|a| * |b|). The result is clamped to [0,1]; negative cosine
// between normalized sentence embeddings is noise rather than signal.
//
// Returns a DimensionMismatchError if the vectors differ in length and
// ErrUndefinedSimilarity if either vector has zero magnitude.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionMismatchError{WantDim: len(a), GotDim: len(b)}
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, ErrUndefinedSimilarity
	}

	score := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return clamp01(score), nil
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

// Thresholds holds the score cutoffs for tier classification
type Thresholds struct {
	Strong  float64 `yaml:"strong"`
	Partial float64 `yaml:"partial"`
}

// DefaultThresholds returns the standard 0.70/0.40 cutoffs
func DefaultThresholds() Thresholds {
	return Thresholds{Strong: 0.70, Partial: 0.40}
}

// Validate checks the invariant 0 <= partial < strong <= 1
func (t Thresholds) Validate() error {
	if t.Partial < 0 || t.Partial >= t.Strong || t.Strong > 1 {
		return fmt.Errorf("%w: thresholds must satisfy 0 <= partial (%v) < strong (%v) <= 1",
			ErrInvalidConfiguration, t.Partial, t.Strong)
	}
	return nil
}

// Classify maps a similarity score to a match tier. Boundaries are closed
// on the lower side: a score exactly at a threshold earns the higher tier.
func (t Thresholds) Classify(score float64) models.Tier {
	switch {
	case score >= t.Strong:
		return models.TierStrong
	case score >= t.Partial:
		return models.TierPartial
	default:
		return models.TierNone
	}
}
