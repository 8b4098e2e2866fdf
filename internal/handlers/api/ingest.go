package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/praveen-raj-m/compliance-ai/internal/handlers"
	"github.com/praveen-raj-m/compliance-ai/internal/logger"
	"github.com/praveen-raj-m/compliance-ai/internal/utils"
)

// PostUploadStandard handles POST /api/upload-standard: save the uploaded
// regulation, chunk it, embed it, index it.
func (h *Handler) PostUploadStandard(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, handlers.ErrorResponse{Error: "No file provided"})
	}
	name := c.FormValue("name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, handlers.ErrorResponse{Error: "Missing file or standard name"})
	}

	source := utils.NormalizeSource(name)
	if !utils.ValidSource(source) {
		return c.JSON(http.StatusBadRequest, handlers.ErrorResponse{Error: "Invalid standard name"})
	}
	savedPath, err := saveUpload(file, h.Cfg.Data.RawDocsDir, source)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, handlers.ErrorResponse{Error: err.Error()})
	}

	count, err := h.pipeline.IngestStandard(c.Request().Context(), savedPath, source)
	if err != nil {
		logger.Error("standard ingestion failed", "source", source, "err", err)
		return c.JSON(http.StatusInternalServerError, handlers.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, handlers.MessageResponse{
		Message: fmt.Sprintf("Successfully uploaded, chunked, and embedded %s (%d chunks)", source, count),
		Added:   true,
	})
}

// GetStandards handles GET /api/standards and GET /api/embedded-standards:
// the standards with a parsed chunk file on disk.
func (h *Handler) GetStandards(c echo.Context) error {
	entries, err := os.ReadDir(h.Cfg.Data.ParsedDir)
	if err != nil {
		if os.IsNotExist(err) {
			return c.JSON(http.StatusOK, handlers.StandardsResponse{Standards: []string{}})
		}
		return c.JSON(http.StatusInternalServerError, handlers.ErrorResponse{Error: err.Error()})
	}

	standards := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		standards = append(standards, strings.TrimSuffix(entry.Name(), ".jsonl"))
	}
	sort.Strings(standards)
	return c.JSON(http.StatusOK, handlers.StandardsResponse{Standards: standards})
}

func saveUpload(file *multipart.FileHeader, dir, stem string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".pdf"
	}
	dstPath := filepath.Join(dir, stem+ext)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return dstPath, nil
}
