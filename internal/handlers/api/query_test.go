package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praveen-raj-m/compliance-ai/internal/chunk"
	"github.com/praveen-raj-m/compliance-ai/internal/config"
	"github.com/praveen-raj-m/compliance-ai/internal/pipeline"
	"github.com/praveen-raj-m/compliance-ai/internal/retrieval"
)

type stubEmbedder struct{}

func (stubEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return []float32{0.1, 0.2}, nil
}

type stubIndex struct {
	results    []chunk.ScoredChunk
	err        error
	collection string
	source     string
	limit      uint64
}

func (s *stubIndex) Search(_ context.Context, collection string, _ []float32, limit uint64, source string) ([]chunk.ScoredChunk, error) {
	s.collection = collection
	s.source = source
	s.limit = limit
	return s.results, s.err
}

type stubGenerator struct {
	answer string
	err    error
	prompt string
	calls  int
}

func (s *stubGenerator) Generate(_ context.Context, prompt, _ string) (string, error) {
	s.calls++
	s.prompt = prompt
	return s.answer, s.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("nonexistent.yaml")
	require.NoError(t, err)
	return cfg
}

func newTestHandler(t *testing.T, index *stubIndex, gen *stubGenerator) *Handler {
	t.Helper()
	cfg := testConfig(t)
	return &Handler{
		Cfg:       cfg,
		retriever: retrieval.NewRetriever(stubEmbedder{}, index, cfg.Qdrant.StandardsCollection),
		llm:       gen,
	}
}

func searchResult(id, source, article, title, text string, score float64, keywords ...string) chunk.ScoredChunk {
	return chunk.ScoredChunk{
		Chunk: chunk.Chunk{
			ID:          id,
			Source:      source,
			ArticleID:   article,
			Title:       title,
			TopKeywords: keywords,
			FullText:    text,
		},
		Score: score,
	}
}

func TestAnswerSuccess(t *testing.T) {
	index := &stubIndex{results: []chunk.ScoredChunk{
		searchResult("gdpr_32", "GDPR", "Article", "33 Breach Notification", "Report within 72 hours.", 0.88, "breach notification"),
	}}
	gen := &stubGenerator{answer: "Breaches must be reported within 72 hours."}
	h := newTestHandler(t, index, gen)

	result, err := h.Answer(context.Background(), "when to report a breach", "")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, gen.answer, result.Answer)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "GDPR", result.Sources[0].Source)
	assert.Equal(t, "Article", result.Sources[0].Article)
	assert.Equal(t, "33 Breach Notification", result.Sources[0].Title)
	// The reranked score is reported, similarity plus the keyword bonus.
	assert.InDelta(t, 0.88+0.25, result.Sources[0].Score, 1e-9)
	assert.Contains(t, gen.prompt, "### CONTEXT")
	assert.Contains(t, gen.prompt, "Report within 72 hours.")
}

func TestAnswerNoResults(t *testing.T) {
	gen := &stubGenerator{answer: "should not be called"}
	h := newTestHandler(t, &stubIndex{}, gen)

	result, err := h.Answer(context.Background(), "anything", "")

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, NoInfoAnswer, result.Answer)
	assert.Empty(t, result.Sources)
	assert.Equal(t, 0, gen.calls, "generator must not run without context")
}

func TestAnswerGeneratorFailureFallsBack(t *testing.T) {
	index := &stubIndex{results: []chunk.ScoredChunk{
		searchResult("gdpr_0", "GDPR", "Article", "1 Scope", "Applies broadly.", 0.90),
	}}
	gen := &stubGenerator{err: errors.New("ollama unreachable")}
	h := newTestHandler(t, index, gen)

	result, err := h.Answer(context.Background(), "scope?", "")

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, fallbackAnswer, result.Answer)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "GDPR", result.Sources[0].Source)
}

func TestAnswerSearchFailure(t *testing.T) {
	index := &stubIndex{err: errors.New("qdrant down")}
	h := newTestHandler(t, index, &stubGenerator{})

	result, err := h.Answer(context.Background(), "anything", "")

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestAnswerNormalizesStandardFilter(t *testing.T) {
	index := &stubIndex{}
	h := newTestHandler(t, index, &stubGenerator{})

	_, err := h.Answer(context.Background(), "anything", "iso 27001")

	require.NoError(t, err)
	assert.Equal(t, "ISO_27001", index.source)
	assert.Equal(t, uint64(h.Cfg.Retrieval.TopK), index.limit)
}

func TestAnswerBoundsSources(t *testing.T) {
	results := []chunk.ScoredChunk{
		searchResult("r_0", "REG", "Article", "1 A", "One.", 0.95),
		searchResult("r_1", "REG", "Article", "2 B", "Two.", 0.90),
		searchResult("r_2", "REG", "Article", "3 C", "Three.", 0.85),
		searchResult("r_3", "REG", "Article", "4 D", "Four.", 0.80),
		searchResult("r_4", "REG", "Article", "5 E", "Five.", 0.75),
	}
	gen := &stubGenerator{answer: "ok"}
	h := newTestHandler(t, &stubIndex{results: results}, gen)

	result, err := h.Answer(context.Background(), "unmatched words", "")

	require.NoError(t, err)
	assert.Len(t, result.Sources, h.Cfg.Retrieval.MaxContext)
	assert.NotContains(t, gen.prompt, "Five.")
}

func TestPostQueryMissingQuery(t *testing.T) {
	h := newTestHandler(t, &stubIndex{}, &stubGenerator{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"standard":"GDPR"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.PostQuery(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing query")
}

func TestAnswerEmptyQueryIsValidationError(t *testing.T) {
	gen := &stubGenerator{}
	h := newTestHandler(t, &stubIndex{}, gen)

	result, err := h.Answer(context.Background(), "   ", "")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, pipeline.IsKind(err, pipeline.KindValidation))
	assert.Equal(t, 0, gen.calls)
}

func TestPostQueryNoResultsStillOK(t *testing.T) {
	h := newTestHandler(t, &stubIndex{}, &stubGenerator{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query":"anything"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.PostQuery(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), "No relevant information found")
}

func TestPostQuerySearchErrorIs500(t *testing.T) {
	h := newTestHandler(t, &stubIndex{err: errors.New("qdrant down")}, &stubGenerator{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query":"anything"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.PostQuery(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
