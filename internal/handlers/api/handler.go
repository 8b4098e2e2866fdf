// Package api wires the pipeline components together and exposes them to
// the HTTP routes and the CLI.
package api

import (
	"context"
	"os"

	"github.com/praveen-raj-m/compliance-ai/internal/chunk"
	"github.com/praveen-raj-m/compliance-ai/internal/config"
	"github.com/praveen-raj-m/compliance-ai/internal/embedding"
	"github.com/praveen-raj-m/compliance-ai/internal/gap"
	"github.com/praveen-raj-m/compliance-ai/internal/ingest"
	"github.com/praveen-raj-m/compliance-ai/internal/keywords"
	"github.com/praveen-raj-m/compliance-ai/internal/llms"
	"github.com/praveen-raj-m/compliance-ai/internal/logger"
	"github.com/praveen-raj-m/compliance-ai/internal/retrieval"
	"github.com/praveen-raj-m/compliance-ai/internal/vector"
)

// Handler owns one instance of every pipeline component, constructed once
// at process start.
type Handler struct {
	Cfg *config.Config

	embedder  *embedding.Client
	db        *vector.Db
	retriever *retrieval.Retriever
	analyzer  *gap.Analyzer
	llm       llms.Generator
	pipeline  *ingest.Pipeline
}

func NewHandler(cfg *config.Config) (*Handler, error) {
	db, err := vector.Connect(cfg.Qdrant.Addr)
	if err != nil {
		return nil, err
	}

	embedder := embedding.NewClient(cfg)
	chunker := chunk.NewChunker(keywords.NewExtractor())

	llm := llms.NewHandler(cfg)
	if os.Getenv("GEMINI_API_KEY") != "" {
		gemini, err := llms.NewGeminiHandler(context.Background())
		if err != nil {
			logger.Warn("gemini unavailable, sticking with ollama", "err", err)
		} else {
			llm.Gemini = gemini
		}
	}

	return &Handler{
		Cfg:       cfg,
		embedder:  embedder,
		db:        db,
		retriever: retrieval.NewRetriever(embedder, db, cfg.Qdrant.StandardsCollection),
		analyzer:  gap.NewAnalyzer(embedder, db),
		llm:       llm,
		pipeline:  ingest.NewPipeline(cfg, chunker, embedder, db),
	}, nil
}
