// Package ingest runs the write path: extract text, chunk it, persist the
// chunk file, embed every chunk, then replace the indexed content. All the
// failable work happens before anything destructive, so a failed ingestion
// never leaves a standard or the company collection empty.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/praveen-raj-m/compliance-ai/internal/chunk"
	"github.com/praveen-raj-m/compliance-ai/internal/config"
	"github.com/praveen-raj-m/compliance-ai/internal/logger"
	"github.com/praveen-raj-m/compliance-ai/internal/pipeline"
	"github.com/praveen-raj-m/compliance-ai/internal/vector"
)

// Embedder embeds chunk bodies for storage.
type Embedder interface {
	EmbedPassage(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// Index is the slice of the vector store the pipeline writes to.
type Index interface {
	EnsureCollection(ctx context.Context, name string, dim int) error
	Upsert(ctx context.Context, collection string, points []vector.Point) error
	DeleteBySource(ctx context.Context, collection, source string) error
	SwapAlias(ctx context.Context, alias, collection string) (string, error)
	DropCollection(ctx context.Context, name string) error
}

type Pipeline struct {
	cfg      *config.Config
	chunker  *chunk.Chunker
	embedder Embedder
	index    Index
}

func NewPipeline(cfg *config.Config, chunker *chunk.Chunker, embedder Embedder, index Index) *Pipeline {
	return &Pipeline{cfg: cfg, chunker: chunker, embedder: embedder, index: index}
}

// IngestStandard processes one regulation document under the given source
// name. The previous content of that source is replaced, but only after
// chunking and embedding have fully succeeded. Returns the chunk count.
func (p *Pipeline) IngestStandard(ctx context.Context, filePath, source string) (int, error) {
	chunks, points, err := p.prepare(ctx, filePath, source, jurisdictionFor(source), p.cfg.Data.ParsedDir)
	if err != nil {
		return 0, err
	}

	collection := p.cfg.Qdrant.StandardsCollection
	if err := p.index.EnsureCollection(ctx, collection, p.embedder.Dimension()); err != nil {
		return 0, pipeline.NewError(pipeline.KindIngestion, "ensure collection", err)
	}
	if err := p.index.DeleteBySource(ctx, collection, source); err != nil {
		return 0, pipeline.NewError(pipeline.KindIngestion, "clear previous chunks", err)
	}
	if err := p.index.Upsert(ctx, collection, points); err != nil {
		return 0, pipeline.NewError(pipeline.KindIngestion, "index chunks", err)
	}

	logger.Info("ingested standard", "source", source, "chunks", len(chunks))
	return len(chunks), nil
}

// IngestCompanyPolicy processes the uploaded company policy into a staged
// collection and atomically swaps the company alias onto it, dropping the
// previous one. A crash mid-ingestion leaves the alias on the old, intact
// collection.
func (p *Pipeline) IngestCompanyPolicy(ctx context.Context, filePath string) (int, error) {
	source := sourceFromFile(filePath)
	chunks, points, err := p.prepare(ctx, filePath, source, "Company", p.cfg.Data.CompanyDir)
	if err != nil {
		return 0, err
	}

	alias := p.cfg.Qdrant.CompanyAlias
	staging := fmt.Sprintf("%s_%d", alias, time.Now().Unix())

	if err := p.index.EnsureCollection(ctx, staging, p.embedder.Dimension()); err != nil {
		return 0, pipeline.NewError(pipeline.KindIngestion, "create staging collection", err)
	}
	if err := p.index.Upsert(ctx, staging, points); err != nil {
		// staging is disposable; the live alias is untouched
		if dropErr := p.index.DropCollection(ctx, staging); dropErr != nil {
			logger.Warn("could not drop staging collection", "collection", staging, "err", dropErr)
		}
		return 0, pipeline.NewError(pipeline.KindIngestion, "index company chunks", err)
	}

	previous, err := p.index.SwapAlias(ctx, alias, staging)
	if err != nil {
		return 0, pipeline.NewError(pipeline.KindIngestion, "swap company alias", err)
	}
	if previous != "" && previous != staging {
		if err := p.index.DropCollection(ctx, previous); err != nil {
			logger.Warn("could not drop previous company collection", "collection", previous, "err", err)
		}
	}

	logger.Info("ingested company policy", "source", source, "chunks", len(chunks), "collection", staging)
	return len(chunks), nil
}

// prepare runs the non-destructive stages: extract, chunk, write the JSONL
// chunk file, embed.
func (p *Pipeline) prepare(ctx context.Context, filePath, source, jurisdiction, outDir string) ([]chunk.Chunk, []vector.Point, error) {
	text, err := ExtractText(filePath)
	if err != nil {
		return nil, nil, pipeline.NewError(pipeline.KindIngestion, "extract text", err)
	}

	chunks := p.chunker.Chunk(text, source, jurisdiction)
	if len(chunks) == 0 {
		return nil, nil, pipeline.NewError(pipeline.KindIngestion, "chunk document",
			fmt.Errorf("no chunks produced from %s", filePath))
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, nil, pipeline.NewError(pipeline.KindIngestion, "create output dir", err)
	}
	outPath := filepath.Join(outDir, source+".jsonl")
	if err := chunk.WriteJSONL(outPath, chunks); err != nil {
		return nil, nil, pipeline.NewError(pipeline.KindIngestion, "write chunk file", err)
	}

	points := make([]vector.Point, len(chunks))
	for i, c := range chunks {
		vec, err := p.embedder.EmbedPassage(ctx, c.FullText)
		if err != nil {
			return nil, nil, pipeline.NewError(pipeline.KindIngestion,
				fmt.Sprintf("embed chunk %s", c.ID), err)
		}
		points[i] = vector.NewPoint(c, vec)
	}
	return chunks, points, nil
}

// jurisdictionFor tags well-known standards with their jurisdiction.
func jurisdictionFor(source string) string {
	lower := strings.ToLower(source)
	switch {
	case strings.Contains(lower, "gdpr"):
		return "EU"
	case strings.Contains(lower, "cppa") || strings.Contains(lower, "ccpa"):
		return "California"
	default:
		return "Global"
	}
}

func sourceFromFile(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
