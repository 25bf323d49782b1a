package embedding

import (
	"context"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini embeds text with the Google Gemini embeddings API
type Gemini struct {
	model string
}

// NewGemini returns a new Gemini embedding provider
func NewGemini() *Gemini {
	model := os.Getenv("GEMINI_EMBEDDING_MODEL")
	if model == "" {
		model = "text-embedding-004"
	}
	return &Gemini{model: model}
}

// Embed generates an embedding for the given text using Gemini
func (g *Gemini) Embed(ctx context.Context, text string) ([]float32, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	em := client.EmbeddingModel(g.model)
	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}

	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding returned from Gemini")
	}

	vec := resp.Embedding.Values
	Normalize(vec)
	return vec, nil
}
