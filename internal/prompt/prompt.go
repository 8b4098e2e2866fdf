// Package prompt renders the bounded, source-attributed context block that
// frames a question for the LLM.
package prompt

import (
	"fmt"
	"strings"

	"github.com/praveen-raj-m/compliance-ai/internal/chunk"
)

const (
	// DefaultMaxContext bounds how many reranked chunks make it into the
	// prompt.
	DefaultMaxContext = 4

	// DefaultSystemInstruction keeps the model grounded in the retrieved
	// clauses.
	DefaultSystemInstruction = "You are a legal compliance expert. Respond ONLY based on the provided context. If you don't know the answer, say so."
)

// Build assembles the full prompt: system instruction, a CONTEXT section of
// labeled source blocks, the QUESTION, and a trailing ANSWER cue marking
// the generation boundary. results must already be reranked; only the first
// maxContext entries are used, in the order given. The caller is expected
// to short-circuit before calling Build when results is empty.
func Build(query string, results []chunk.ScoredChunk, systemInstruction string, maxContext int) string {
	if systemInstruction == "" {
		systemInstruction = DefaultSystemInstruction
	}
	if maxContext <= 0 {
		maxContext = DefaultMaxContext
	}
	if maxContext > len(results) {
		maxContext = len(results)
	}

	blocks := make([]string, 0, maxContext)
	for i, result := range results[:maxContext] {
		c := result.Chunk
		blocks = append(blocks, fmt.Sprintf(
			"### SOURCE %d\nSource: %s\nArticle: %s - %s\nScore: %.4f\n\n%s\n",
			i+1, c.Source, c.ArticleID, c.Title, result.Score, c.FullText,
		))
	}

	var b strings.Builder
	b.WriteString(systemInstruction)
	b.WriteString("\n\n### CONTEXT\n")
	b.WriteString(strings.Join(blocks, "\n\n"))
	b.WriteString("\n\n### QUESTION\n")
	b.WriteString(query)
	b.WriteString("\n\n### ANSWER\n")
	return b.String()
}
