package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, ":5001", cfg.Server.Addr)
	assert.Equal(t, "localhost:6334", cfg.Qdrant.Addr)
	assert.Equal(t, "compliance_semantic", cfg.Qdrant.StandardsCollection)
	assert.Equal(t, "company_policy", cfg.Qdrant.CompanyAlias)
	assert.Equal(t, "e5-large-v2", cfg.Embedder.Model)
	assert.Equal(t, 1024, cfg.Embedder.Dimension)
	assert.Equal(t, "llama3", cfg.LLM.DefaultModel)
	assert.Equal(t, 6, cfg.Retrieval.TopK)
	assert.Equal(t, 0.25, cfg.Retrieval.RerankWeight)
	assert.Equal(t, 4, cfg.Retrieval.MaxContext)
	assert.Equal(t, 0.75, cfg.Compare.Threshold)
}

func TestLoadOverridesAndFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":8080"
qdrant:
  standards_collection: custom_collection
retrieval:
  top_k: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "custom_collection", cfg.Qdrant.StandardsCollection)
	assert.Equal(t, 10, cfg.Retrieval.TopK)
	// Everything unspecified still gets its default.
	assert.Equal(t, "company_policy", cfg.Qdrant.CompanyAlias)
	assert.Equal(t, 0.25, cfg.Retrieval.RerankWeight)
}

func TestLoadHonorsExplicitZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
retrieval:
  rerank_weight: 0
compare:
  threshold: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	// An explicit zero is a setting, not an omission.
	assert.Equal(t, 0.0, cfg.Retrieval.RerankWeight)
	assert.Equal(t, 0.0, cfg.Compare.Threshold)
	assert.Equal(t, 6, cfg.Retrieval.TopK)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
