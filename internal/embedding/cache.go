package embedding

import (
	"context"
	"sync"

	"github.com/suhruthkrishna/bookpal/internal/models"
)

// Cache memoizes embeddings per book ISBN so rebuilding genre profiles
// never re-embeds unchanged favorites. The embedding call dominates
// latency; everything else here is map lookups.
type Cache struct {
	embedder Embedder
	mu       sync.RWMutex
	vectors  map[string][]float32
}

// NewCache wraps an embedder with a per-ISBN cache
func NewCache(embedder Embedder) *Cache {
	return &Cache{
		embedder: embedder,
		vectors:  make(map[string][]float32),
	}
}

// EmbedRecord returns the embedding for a book, computing and caching it
// on first use. Books without an ISBN are embedded but never cached.
func (c *Cache) EmbedRecord(ctx context.Context, book models.BookRecord) ([]float32, error) {
	if book.ISBN != "" {
		c.mu.RLock()
		vec, ok := c.vectors[book.ISBN]
		c.mu.RUnlock()
		if ok {
			return vec, nil
		}
	}

	text, err := BookText(book)
	if err != nil {
		return nil, err
	}

	vec, err := c.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if book.ISBN != "" {
		c.mu.Lock()
		c.vectors[book.ISBN] = vec
		c.mu.Unlock()
	}
	return vec, nil
}

// Put seeds the cache with a known embedding, e.g. one loaded from the
// persisted favorites file.
func (c *Cache) Put(isbn string, vec []float32) {
	if isbn == "" || len(vec) == 0 {
		return
	}
	c.mu.Lock()
	c.vectors[isbn] = vec
	c.mu.Unlock()
}

// Forget drops a cached embedding
func (c *Cache) Forget(isbn string) {
	c.mu.Lock()
	delete(c.vectors, isbn)
	c.mu.Unlock()
}
