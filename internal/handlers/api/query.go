package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/praveen-raj-m/compliance-ai/internal/handlers"
	"github.com/praveen-raj-m/compliance-ai/internal/logger"
	"github.com/praveen-raj-m/compliance-ai/internal/pipeline"
	"github.com/praveen-raj-m/compliance-ai/internal/prompt"
	"github.com/praveen-raj-m/compliance-ai/internal/retrieval"
	"github.com/praveen-raj-m/compliance-ai/internal/utils"
)

const (
	// NoInfoAnswer is the fixed reply when reranking yields no candidates.
	// A normal outcome, not an error.
	NoInfoAnswer = "No relevant information found. Please try rephrasing or use a different source filter."

	// fallbackAnswer replaces generated prose when the LLM is unreachable.
	// The retrieved sources still go out so the user sees attributed
	// context.
	fallbackAnswer = "The language model could not be reached, so no answer was generated. The sources below were retrieved for your question and may still be useful."
)

// Source attributes one context block in a query response.
type Source struct {
	Source  string  `json:"source"`
	Article string  `json:"article"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
}

// QueryResult is the outcome of one question. Success is false for both the
// no-results case and the LLM-fallback case.
type QueryResult struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
	Success bool     `json:"success"`
}

type queryRequest struct {
	Query    string `json:"query"`
	Standard string `json:"standard"`
}

// Answer runs the read path for one question: retrieve, rerank, assemble
// the prompt, generate. standard may be empty to search all standards.
func (h *Handler) Answer(ctx context.Context, query, standard string) (*QueryResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, pipeline.NewError(pipeline.KindValidation, "missing query", nil)
	}

	sourceFilter := ""
	if standard != "" {
		sourceFilter = utils.NormalizeSource(standard)
	}

	results, err := h.retriever.Search(ctx, query, h.Cfg.Retrieval.TopK, sourceFilter)
	if err != nil {
		return nil, pipeline.NewError(pipeline.KindRetrieval, "search", err)
	}

	reranked := retrieval.Rerank(results, query, h.Cfg.Retrieval.RerankWeight)
	if len(reranked) == 0 {
		return &QueryResult{Answer: NoInfoAnswer, Sources: []Source{}, Success: false}, nil
	}

	top := reranked
	if len(top) > h.Cfg.Retrieval.MaxContext {
		top = top[:h.Cfg.Retrieval.MaxContext]
	}
	sources := make([]Source, len(top))
	for i, r := range top {
		sources[i] = Source{
			Source:  r.Chunk.Source,
			Article: r.Chunk.ArticleID,
			Title:   r.Chunk.Title,
			Score:   r.Score,
		}
	}

	built := prompt.Build(query, reranked, prompt.DefaultSystemInstruction, h.Cfg.Retrieval.MaxContext)
	answer, err := h.llm.Generate(ctx, built, "")
	if err != nil {
		genErr := pipeline.NewError(pipeline.KindGeneration, "generate answer", err)
		logger.Error("generation failed, returning fallback", "err", genErr)
		return &QueryResult{Answer: fallbackAnswer, Sources: sources, Success: false}, nil
	}

	return &QueryResult{Answer: answer, Sources: sources, Success: true}, nil
}

// PostQuery handles POST /api/query.
func (h *Handler) PostQuery(c echo.Context) error {
	var body queryRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, handlers.ErrorResponse{Error: "Invalid request body"})
	}

	result, err := h.Answer(c.Request().Context(), body.Query, body.Standard)
	if err != nil {
		if pipeline.IsKind(err, pipeline.KindValidation) {
			return c.JSON(http.StatusBadRequest, handlers.ErrorResponse{Error: err.Error()})
		}
		logger.Error("query failed", "err", err)
		return c.JSON(http.StatusInternalServerError, handlers.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}
