// Package gap finds regulation clauses the company policy does not cover:
// each regulation chunk is matched against its single best company-policy
// neighbour, and anything scoring under the acceptance threshold is
// reported.
package gap

import (
	"context"
	"fmt"

	"github.com/praveen-raj-m/compliance-ai/internal/chunk"
	"github.com/praveen-raj-m/compliance-ai/internal/utils"
)

const (
	// DefaultThreshold is the similarity under which a clause counts as
	// uncovered.
	DefaultThreshold = 0.75

	snippetRunes = 250
)

type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

type Index interface {
	Search(ctx context.Context, collection string, vec []float32, limit uint64, source string) ([]chunk.ScoredChunk, error)
}

type Analyzer struct {
	embedder Embedder
	index    Index
}

func NewAnalyzer(embedder Embedder, index Index) *Analyzer {
	return &Analyzer{embedder: embedder, index: index}
}

// FindGaps reports every regulation chunk whose best match in the company
// collection scores strictly below threshold, in the input order. Chunks
// with empty text are skipped: they contribute neither coverage nor gaps.
// A chunk with no match at all is a gap with score 0.
func (a *Analyzer) FindGaps(ctx context.Context, regulation []chunk.Chunk, companyCollection string, threshold float64) ([]chunk.GapRecord, error) {
	var gaps []chunk.GapRecord
	for _, reg := range regulation {
		if reg.FullText == "" {
			continue
		}

		vec, err := a.embedder.EmbedQuery(ctx, reg.FullText)
		if err != nil {
			return nil, fmt.Errorf("embedding chunk %s: %w", reg.ID, err)
		}

		matches, err := a.index.Search(ctx, companyCollection, vec, 1, "")
		if err != nil {
			return nil, fmt.Errorf("searching %s for chunk %s: %w", companyCollection, reg.ID, err)
		}

		best := 0.0
		if len(matches) > 0 {
			best = matches[0].Score
		}
		if len(matches) > 0 && best >= threshold {
			continue
		}

		gaps = append(gaps, chunk.GapRecord{
			ArticleID: reg.ArticleID,
			Title:     reg.Title,
			Source:    reg.Source,
			Score:     best,
			Text:      utils.Truncate(reg.FullText, snippetRunes),
		})
	}
	return gaps, nil
}
