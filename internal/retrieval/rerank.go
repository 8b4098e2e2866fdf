package retrieval

import (
	"sort"
	"strings"

	"github.com/praveen-raj-m/compliance-ai/internal/chunk"
)

// DefaultRerankWeight is the score bonus per overlapping keyword word.
const DefaultRerankWeight = 0.25

// Rerank boosts each result by weight times the number of distinct query
// words that appear in its keyword set, then re-sorts by the adjusted
// score. Nothing is dropped; ties keep the retriever's similarity order.
// An empty input means "no relevant information", not an error.
func Rerank(results []chunk.ScoredChunk, query string, weight float64) []chunk.ScoredChunk {
	if len(results) == 0 {
		return nil
	}

	queryWords := wordSet(query)

	reranked := make([]chunk.ScoredChunk, len(results))
	copy(reranked, results)
	for i := range reranked {
		keywordWords := wordSet(strings.Join(reranked[i].Chunk.TopKeywords, " "))
		matches := 0
		for word := range queryWords {
			if _, ok := keywordWords[word]; ok {
				matches++
			}
		}
		reranked[i].Score += weight * float64(matches)
	}

	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].Score > reranked[j].Score
	})
	return reranked
}

func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
