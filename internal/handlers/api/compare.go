package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/praveen-raj-m/compliance-ai/internal/chunk"
	"github.com/praveen-raj-m/compliance-ai/internal/handlers"
	"github.com/praveen-raj-m/compliance-ai/internal/llms"
	"github.com/praveen-raj-m/compliance-ai/internal/logger"
	"github.com/praveen-raj-m/compliance-ai/internal/pipeline"
	"github.com/praveen-raj-m/compliance-ai/internal/utils"
)

// GapReport is the response of GET /api/gaps.
type GapReport struct {
	Standard  string            `json:"standard"`
	Threshold float64           `json:"threshold"`
	Covered   bool              `json:"covered"`
	Gaps      []chunk.GapRecord `json:"gaps"`
}

// PostCompare handles POST /api/compare: ingest the uploaded company
// policy, then ask the LLM for a clause-by-clause comparison against the
// chosen standard.
func (h *Handler) PostCompare(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, handlers.ErrorResponse{Error: "No file provided"})
	}
	standard := c.FormValue("standard")
	if standard == "" {
		return c.JSON(http.StatusBadRequest, handlers.ErrorResponse{Error: "Missing file or standard"})
	}
	model := c.FormValue("llm")

	source := utils.NormalizeSource(standard)
	if !utils.ValidSource(source) {
		return c.JSON(http.StatusBadRequest, handlers.ErrorResponse{Error: "Invalid standard name"})
	}
	regulation, err := h.loadStandardChunks(source)
	if err != nil {
		return c.JSON(http.StatusBadRequest, handlers.ErrorResponse{
			Error: fmt.Sprintf("Standard %s has not been ingested", source),
		})
	}

	// The client controls the filename; keep only its base name.
	policyStem := utils.NormalizeSource(trimExt(filepath.Base(file.Filename)))
	if !utils.ValidSource(policyStem) {
		return c.JSON(http.StatusBadRequest, handlers.ErrorResponse{Error: "Invalid policy filename"})
	}
	savedPath, err := saveUpload(file, h.Cfg.Data.CompanyDir, policyStem)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, handlers.ErrorResponse{Error: err.Error()})
	}

	ctx := c.Request().Context()
	if _, err := h.pipeline.IngestCompanyPolicy(ctx, savedPath); err != nil {
		logger.Error("company policy ingestion failed", "err", err)
		return c.JSON(http.StatusInternalServerError, handlers.ErrorResponse{
			Error: fmt.Sprintf("Policy processing failed: %v", err),
		})
	}

	company, err := chunk.ReadJSONL(filepath.Join(h.Cfg.Data.CompanyDir, policyStem+".jsonl"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, handlers.ErrorResponse{Error: err.Error()})
	}

	comparePrompt := llms.BuildComparePrompt(company, regulation, source)
	result, err := h.llm.Generate(ctx, comparePrompt, model)
	if err != nil {
		genErr := pipeline.NewError(pipeline.KindGeneration, "compare policies", err)
		logger.Error("comparison generation failed", "err", genErr)
		return c.JSON(http.StatusInternalServerError, handlers.ErrorResponse{
			Error: fmt.Sprintf("Comparison failed: %v", genErr),
		})
	}

	return c.JSON(http.StatusOK, handlers.CompareResponse{Result: result})
}

// GetGaps handles GET /api/gaps?standard=X[&threshold=0.75]: the coverage
// gaps of the last ingested company policy against one regulation.
func (h *Handler) GetGaps(c echo.Context) error {
	standard := c.QueryParam("standard")
	if standard == "" {
		return c.JSON(http.StatusBadRequest, handlers.ErrorResponse{Error: "Missing standard"})
	}

	threshold := h.Cfg.Compare.Threshold
	if raw := c.QueryParam("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, handlers.ErrorResponse{Error: "Invalid threshold"})
		}
		threshold = parsed
	}

	source := utils.NormalizeSource(standard)
	if !utils.ValidSource(source) {
		return c.JSON(http.StatusBadRequest, handlers.ErrorResponse{Error: "Invalid standard name"})
	}
	regulation, err := h.loadStandardChunks(source)
	if err != nil {
		return c.JSON(http.StatusBadRequest, handlers.ErrorResponse{
			Error: fmt.Sprintf("Standard %s has not been ingested", source),
		})
	}

	gaps, err := h.analyzer.FindGaps(c.Request().Context(), regulation, h.Cfg.Qdrant.CompanyAlias, threshold)
	if err != nil {
		logger.Error("gap analysis failed", "source", source, "err", err)
		return c.JSON(http.StatusInternalServerError, handlers.ErrorResponse{Error: err.Error()})
	}
	if gaps == nil {
		gaps = []chunk.GapRecord{}
	}

	return c.JSON(http.StatusOK, GapReport{
		Standard:  source,
		Threshold: threshold,
		Covered:   len(gaps) == 0,
		Gaps:      gaps,
	})
}

func (h *Handler) loadStandardChunks(source string) ([]chunk.Chunk, error) {
	path := filepath.Join(h.Cfg.Data.ParsedDir, source+".jsonl")
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return chunk.ReadJSONL(path)
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
