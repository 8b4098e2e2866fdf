package chunk

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Chunk is a single clause extracted from a regulation or policy document.
// The JSON field names are the on-disk JSONL format, one record per line.
type Chunk struct {
	ID           string   `json:"id"`
	Source       string   `json:"source"`
	Jurisdiction string   `json:"jurisdiction"`
	ArticleID    string   `json:"article_id"`
	Title        string   `json:"title"`
	TopKeywords  []string `json:"top_keywords"`
	FullText     string   `json:"full_text"`
}

// ScoredChunk pairs a chunk with a similarity score. Never persisted.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// GapRecord marks a regulation clause the company policy does not cover.
type GapRecord struct {
	ArticleID string  `json:"article_id"`
	Title     string  `json:"title"`
	Source    string  `json:"source"`
	Score     float64 `json:"score"`
	Text      string  `json:"text"`
}

// WriteJSONL writes chunks to path, one JSON object per line.
func WriteJSONL(path string, chunks []Chunk) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	enc := json.NewEncoder(writer)
	for _, c := range chunks {
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("encoding chunk %s: %w", c.ID, err)
		}
	}
	return writer.Flush()
}

// ReadJSONL reads back a chunk file written by WriteJSONL. Blank lines are
// skipped; a malformed line is an error since we only read our own output.
func ReadJSONL(path string) ([]Chunk, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var chunks []Chunk
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var c Chunk
		if err := json.Unmarshal(line, &c); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		chunks = append(chunks, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return chunks, nil
}
