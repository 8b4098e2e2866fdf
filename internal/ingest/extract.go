package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/praveen-raj-m/compliance-ai/internal/logger"
	"github.com/praveen-raj-m/compliance-ai/internal/utils"
)

// ExtractText pulls the raw text out of an uploaded document. PDFs are read
// page by page, row by row, so that header lines stay on their own lines
// for the chunker; anything else is treated as plain text.
func ExtractText(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return extractPDF(path)
	}
	return utils.ReadTextFromFile(path)
}

func extractPDF(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer file.Close()

	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			// noisy extracted pages are routine in scanned regulations;
			// skip and keep going
			logger.Warn("skipping unreadable pdf page", "path", path, "page", i, "err", err)
			continue
		}
		for _, row := range rows {
			var line strings.Builder
			for _, word := range row.Content {
				line.WriteString(word.S)
			}
			text.WriteString(line.String())
			text.WriteString("\n")
		}
	}
	return text.String(), nil
}
