package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/praveen-raj-m/compliance-ai/internal/chunk"
	"github.com/praveen-raj-m/compliance-ai/internal/config"
	"github.com/praveen-raj-m/compliance-ai/internal/embedding"
	"github.com/praveen-raj-m/compliance-ai/internal/ingest"
	"github.com/praveen-raj-m/compliance-ai/internal/keywords"
	"github.com/praveen-raj-m/compliance-ai/internal/logger"
	"github.com/praveen-raj-m/compliance-ai/internal/utils"
	"github.com/praveen-raj-m/compliance-ai/internal/vector"
)

// Batch-ingest every document in a directory as a compliance standard. The
// source name of each file is its name without the extension, upper-cased.
func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	dir := flag.String("dir", "", "directory of .pdf/.txt standards to ingest (defaults to the raw docs dir)")
	flag.Parse()

	logger.Init(false)

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	if *dir == "" {
		*dir = cfg.Data.RawDocsDir
	}

	db, err := vector.Connect(cfg.Qdrant.Addr)
	if err != nil {
		panic(err)
	}
	embedder := embedding.NewClient(cfg)
	chunker := chunk.NewChunker(keywords.NewExtractor())
	pipeline := ingest.NewPipeline(cfg, chunker, embedder, db)

	entries, err := os.ReadDir(*dir)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	start := time.Now()
	total := 0
	for _, entry := range entries {
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if entry.IsDir() || (ext != ".pdf" && ext != ".txt") {
			continue
		}

		source := utils.NormalizeSource(strings.TrimSuffix(name, filepath.Ext(name)))
		count, err := pipeline.IngestStandard(ctx, filepath.Join(*dir, name), source)
		if err != nil {
			fmt.Printf("failed: %s: %v\n", name, err)
			continue
		}
		fmt.Printf("%s -> %d chunks\n", name, count)
		total += count
	}

	indexed, err := db.Count(ctx, cfg.Qdrant.StandardsCollection)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Done in %s. Ingested %d chunks, %d points in %s.\n",
		time.Since(start), total, indexed, cfg.Qdrant.StandardsCollection)
}
