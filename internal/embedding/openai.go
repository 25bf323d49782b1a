package embedding

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI embeds text with the OpenAI embeddings API
type OpenAI struct {
	model string
}

// NewOpenAI returns a new OpenAI embedding provider
func NewOpenAI() *OpenAI {
	model := os.Getenv("OPENAI_EMBEDDING_MODEL")
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &OpenAI{model: model}
}

// Embed generates an embedding for the given text using OpenAI
func (o *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	client := openai.NewClient(apiKey)
	resp, err := client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(o.model),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding returned from OpenAI")
	}

	vec := resp.Data[0].Embedding
	Normalize(vec)
	return vec, nil
}
