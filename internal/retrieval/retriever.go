// Package retrieval performs the semantic search and the keyword rerank on
// top of it.
package retrieval

import (
	"context"
	"fmt"

	"github.com/praveen-raj-m/compliance-ai/internal/chunk"
)

// Embedder turns a question into a query vector.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Index is the nearest-neighbour search the retriever runs against.
type Index interface {
	Search(ctx context.Context, collection string, vec []float32, limit uint64, source string) ([]chunk.ScoredChunk, error)
}

// Retriever embeds a query and searches one collection.
type Retriever struct {
	embedder   Embedder
	index      Index
	collection string
}

func NewRetriever(embedder Embedder, index Index, collection string) *Retriever {
	return &Retriever{embedder: embedder, index: index, collection: collection}
}

// Search returns up to topK chunks ordered by descending raw similarity.
// sourceFilter, when non-empty, must already be in canonical form (upper
// case, underscores); it is matched exactly against the stored source tag.
func (r *Retriever) Search(ctx context.Context, query string, topK int, sourceFilter string) ([]chunk.ScoredChunk, error) {
	vec, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := r.index.Search(ctx, r.collection, vec, uint64(topK), sourceFilter)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", r.collection, err)
	}
	return results, nil
}
