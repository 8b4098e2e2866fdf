package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praveen-raj-m/compliance-ai/internal/chunk"
	"github.com/praveen-raj-m/compliance-ai/internal/gap"
)

type gapEmbedder struct{}

func (gapEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return []float32{0.5}, nil
}

type gapIndex struct {
	score float64
}

func (g *gapIndex) Search(context.Context, string, []float32, uint64, string) ([]chunk.ScoredChunk, error) {
	return []chunk.ScoredChunk{{Chunk: chunk.Chunk{ID: "company_0"}, Score: g.score}}, nil
}

func writeStandard(t *testing.T, h *Handler, source string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(h.Cfg.Data.ParsedDir, 0o755))
	chunks := []chunk.Chunk{
		{ID: "g_0", Source: source, ArticleID: "Article", Title: "1 Scope", FullText: "Applies to all processing."},
		{ID: "g_1", Source: source, ArticleID: "Article", Title: "2 Terms", FullText: "Definitions follow."},
	}
	require.NoError(t, chunk.WriteJSONL(filepath.Join(h.Cfg.Data.ParsedDir, source+".jsonl"), chunks))
}

func gapTestHandler(t *testing.T, score float64) *Handler {
	t.Helper()
	h := newTestHandler(t, &stubIndex{}, &stubGenerator{})
	h.Cfg.Data.ParsedDir = filepath.Join(t.TempDir(), "parsed")
	h.analyzer = gap.NewAnalyzer(gapEmbedder{}, &gapIndex{score: score})
	return h
}

func getGaps(t *testing.T, h *Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.GetGaps(e.NewContext(req, rec)))
	return rec
}

func TestGetGapsMissingStandardParam(t *testing.T) {
	rec := getGaps(t, gapTestHandler(t, 0.9), "/api/gaps")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing standard")
}

func TestGetGapsRejectsTraversalStandard(t *testing.T) {
	rec := getGaps(t, gapTestHandler(t, 0.9), "/api/gaps?standard=../../secret")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid standard name")
}

func TestGetGapsUningestedStandard(t *testing.T) {
	rec := getGaps(t, gapTestHandler(t, 0.9), "/api/gaps?standard=GDPR")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "has not been ingested")
}

func TestGetGapsCovered(t *testing.T) {
	h := gapTestHandler(t, 0.90)
	writeStandard(t, h, "GDPR")

	rec := getGaps(t, h, "/api/gaps?standard=gdpr")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"covered":true`)
	assert.Contains(t, rec.Body.String(), `"standard":"GDPR"`)
	assert.Contains(t, rec.Body.String(), `"gaps":[]`)
}

func TestGetGapsUncovered(t *testing.T) {
	h := gapTestHandler(t, 0.40)
	writeStandard(t, h, "GDPR")

	rec := getGaps(t, h, "/api/gaps?standard=GDPR")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"covered":false`)
	assert.Contains(t, rec.Body.String(), "1 Scope")
	assert.Contains(t, rec.Body.String(), "2 Terms")
}

func TestGetGapsCustomThreshold(t *testing.T) {
	h := gapTestHandler(t, 0.70)
	writeStandard(t, h, "GDPR")

	// 0.70 clears a 0.5 threshold even though it misses the default 0.75.
	rec := getGaps(t, h, "/api/gaps?standard=GDPR&threshold=0.5")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"covered":true`)
	assert.Contains(t, rec.Body.String(), `"threshold":0.5`)
}

func TestGetGapsInvalidThreshold(t *testing.T) {
	h := gapTestHandler(t, 0.70)
	writeStandard(t, h, "GDPR")

	rec := getGaps(t, h, "/api/gaps?standard=GDPR&threshold=abc")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid threshold")
}

func TestGetStandardsEmptyWhenDirMissing(t *testing.T) {
	h := gapTestHandler(t, 0)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/standards", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.GetStandards(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"standards":[]}`, rec.Body.String())
}

func TestGetStandardsListsSorted(t *testing.T) {
	h := gapTestHandler(t, 0)
	writeStandard(t, h, "ISO_27001")
	writeStandard(t, h, "GDPR")
	// Non-chunk files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(h.Cfg.Data.ParsedDir, "notes.txt"), []byte("x"), 0o644))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/standards", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.GetStandards(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"standards":["GDPR","ISO_27001"]}`, rec.Body.String())
}
