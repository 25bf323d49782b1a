// Package embedding maps book metadata to fixed-length dense vectors.
// The model behind the Embed call is an opaque external capability; test
// doubles substitute deterministic vectors without invoking a real model.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/suhruthkrishna/bookpal/internal/models"
)

// ErrEmptyInput is returned when a book has no usable text to embed
var ErrEmptyInput = errors.New("no usable text to embed")

// Embedder generates a vector embedding for text. Implementations must be
// deterministic: the same text always yields the same vector, so profile
// recomputation stays stable.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// BookText builds the text representation of a book for embedding:
// title, authors, description, categories, publisher and page count,
// joined with empty components skipped. When the description is missing
// the title still anchors the text. Returns ErrEmptyInput if nothing
// usable remains after trimming.
func BookText(book models.BookRecord) (string, error) {
	components := []string{
		book.Title,
		strings.Join(book.Authors, " "),
		book.Description,
		strings.Join(book.Categories, " "),
		book.Publisher,
	}
	if book.PageCount > 0 {
		components = append(components, strconv.Itoa(book.PageCount))
	}

	var parts []string
	for _, c := range components {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}

	text := strings.Join(parts, " ")
	if text == "" {
		return "", fmt.Errorf("%w: book %q has no text content", ErrEmptyInput, book.ISBN)
	}
	return text, nil
}

// Normalize scales vec to unit length in place so cosine comparisons are
// about direction only. A zero vector is left untouched; the scorer
// reports it as undefined rather than dividing by zero here.
func Normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}

// NewFromEnv selects an embedding provider from the BOOKPAL_PROVIDER
// environment variable: "openai", "gemini", or "ollama" (the default,
// since it needs no API key).
func NewFromEnv() (Embedder, error) {
	provider := os.Getenv("BOOKPAL_PROVIDER")
	if provider == "" {
		provider = "ollama"
	}
	return NewProvider(provider)
}

// NewProvider constructs the named embedding provider
func NewProvider(provider string) (Embedder, error) {
	switch provider {
	case "openai":
		return NewOpenAI(), nil
	case "gemini":
		return NewGemini(), nil
	case "ollama":
		return NewOllama(), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}
