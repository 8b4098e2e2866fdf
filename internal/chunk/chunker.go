package chunk

import (
	"fmt"
	"regexp"
	"strings"
)

// KeywordExtractor ranks the key phrases of a clause body.
type KeywordExtractor interface {
	Extract(text string) []string
}

var (
	// "Article 33", "Clause 5", "Section 12", "CHAPTER 2", "§ 7" (any case).
	headerTokenPattern = regexp.MustCompile(`(?i)^(Article|Clause|Section|CHAPTER|§)\s+\d+`)
	// Numbered outlines like "2.1", "A.3.2 Definitions", "4 - Scope".
	// Deliberately permissive: a sentence starting with a bare number also
	// matches, same as the upstream chunkers this format comes from.
	numberingPattern = regexp.MustCompile(`^([A-Z]\.)?\d+(\.\d+)*(\s+-?\s*[\w() ]+)?$`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
)

// Chunker splits raw document text into clause chunks, one per detected
// header. Text before the first header is attributed to a chunk with an
// empty article id.
type Chunker struct {
	keywords KeywordExtractor
}

func NewChunker(keywords KeywordExtractor) *Chunker {
	return &Chunker{keywords: keywords}
}

// accumulator is the chunk currently being built while scanning lines.
type accumulator struct {
	articleID string
	title     string
	content   strings.Builder
}

func (a *accumulator) flushInto(dst *[]accumulatedChunk) {
	body := strings.TrimSpace(a.content.String())
	if body == "" {
		return
	}
	*dst = append(*dst, accumulatedChunk{articleID: a.articleID, title: a.title, fullText: body})
}

type accumulatedChunk struct {
	articleID string
	title     string
	fullText  string
}

// Chunk walks the document line by line. A header line flushes the current
// accumulator (dropped when empty) and starts a new one; any other line is
// appended to the current content. The trailing accumulator is flushed at
// end of input.
func (c *Chunker) Chunk(text, source, jurisdiction string) []Chunk {
	if jurisdiction == "" {
		jurisdiction = "unspecified"
	}
	var (
		flushed []accumulatedChunk
		current accumulator
	)

	for _, raw := range strings.Split(text, "\n") {
		line := normalizeLine(raw)
		if line == "" {
			continue
		}

		if isHeader(line) {
			current.flushInto(&flushed)
			articleID, title := splitHeader(line)
			current = accumulator{articleID: articleID, title: title}
			continue
		}

		current.content.WriteString(" ")
		current.content.WriteString(line)
	}
	current.flushInto(&flushed)

	chunks := make([]Chunk, 0, len(flushed))
	for i, acc := range flushed {
		keywords := []string{}
		if c.keywords != nil {
			keywords = c.keywords.Extract(acc.fullText)
		}
		chunks = append(chunks, Chunk{
			ID:           fmt.Sprintf("%s_%d", strings.ToLower(source), i),
			Source:       source,
			Jurisdiction: jurisdiction,
			ArticleID:    acc.articleID,
			Title:        acc.title,
			TopKeywords:  keywords,
			FullText:     acc.fullText,
		})
	}
	return chunks
}

func normalizeLine(line string) string {
	return whitespaceRuns.ReplaceAllString(strings.TrimSpace(line), " ")
}

func isHeader(line string) bool {
	return headerTokenPattern.MatchString(line) || numberingPattern.MatchString(line)
}

// splitHeader tokenizes a header line: first token is the article id, the
// next one or two tokens form the title.
func splitHeader(line string) (articleID, title string) {
	parts := strings.SplitN(line, " ", 3)
	articleID = parts[0]
	if len(parts) > 1 {
		title = parts[1]
	}
	if len(parts) > 2 {
		title += " " + parts[2]
	}
	return articleID, strings.TrimSpace(title)
}
