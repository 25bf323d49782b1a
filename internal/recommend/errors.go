package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyLibrary is returned when there are no favorites to compare against
	ErrEmptyLibrary = errors.New("no favorites in library")

	// ErrUndefinedSimilarity is returned when cosine similarity is undefined
	// because one of the vectors has zero magnitude. A numeric 0.0 would be
	// indistinguishable from genuine orthogonality, so this is always an error.
	ErrUndefinedSimilarity = errors.New("similarity undefined for zero-magnitude vector")

	// ErrInvalidConfiguration is returned for threshold or top-k settings
	// that violate 0 <= partial < strong <= 1 or top-k >= 1
	ErrInvalidConfiguration = errors.New("invalid recommender configuration")
)

// DimensionMismatchError is returned when two embeddings of different
// lengths are compared. Embeddings are only comparable if produced by the
// same model.
type DimensionMismatchError struct {
	WantDim int
	GotDim  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: %d vs %d", e.WantDim, e.GotDim)
}
