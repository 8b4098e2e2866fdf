// Package config loads the application configuration from a YAML file and
// fills in defaults for anything missing. Secrets (API keys) come from the
// environment, loaded from .env by godotenv in main.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	FrontendOrigin string `yaml:"frontend_origin"`
}

// DataConfig holds the on-disk layout for raw uploads and parsed chunk files.
type DataConfig struct {
	RawDocsDir string `yaml:"raw_docs_dir"`
	ParsedDir  string `yaml:"parsed_dir"`
	CompanyDir string `yaml:"company_dir"`
}

// QdrantConfig contains connection details for the vector index.
type QdrantConfig struct {
	Addr                string `yaml:"addr"`
	StandardsCollection string `yaml:"standards_collection"`
	CompanyAlias        string `yaml:"company_alias"`
}

// EmbedderConfig configures the embedding service client.
type EmbedderConfig struct {
	URL         string `yaml:"url"`
	Model       string `yaml:"model"`
	Dimension   int    `yaml:"dimension"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// LLMConfig configures the generation backend.
type LLMConfig struct {
	URL          string `yaml:"url"`
	DefaultModel string `yaml:"default_model"`
	TimeoutSecs  int    `yaml:"timeout_secs"`
}

// RetrievalConfig holds the knobs of the search / rerank / prompt stages.
type RetrievalConfig struct {
	TopK         int     `yaml:"top_k"`
	RerankWeight float64 `yaml:"rerank_weight"`
	MaxContext   int     `yaml:"max_context"`
}

// CompareConfig holds the coverage-gap acceptance threshold.
type CompareConfig struct {
	Threshold float64 `yaml:"threshold"`
}

// Config is the root configuration object, constructed once in main and
// passed by reference into every component.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	Qdrant    QdrantConfig    `yaml:"qdrant"`
	Embedder  EmbedderConfig  `yaml:"embedder"`
	LLM       LLMConfig       `yaml:"llm"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Compare   CompareConfig   `yaml:"compare"`
}

// Load reads the config at path over the defaults: keys absent from the
// file keep their default, keys present win even when set to a zero value
// (a rerank weight of 0 is a legitimate setting). A missing file yields the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":5001",
			FrontendOrigin: "http://localhost:5173",
		},
		Data: DataConfig{
			RawDocsDir: filepath.Join("data", "raw_docs"),
			ParsedDir:  filepath.Join("data", "parsed_json_semantic"),
			CompanyDir: filepath.Join("data", "company_chunks"),
		},
		Qdrant: QdrantConfig{
			Addr:                "localhost:6334", // gRPC port; 6333 is the HTTP one
			StandardsCollection: "compliance_semantic",
			CompanyAlias:        "company_policy",
		},
		Embedder: EmbedderConfig{
			URL:         "http://localhost:11434/api/embed",
			Model:       "e5-large-v2",
			Dimension:   1024,
			TimeoutSecs: 60,
		},
		LLM: LLMConfig{
			URL:          "http://localhost:11434/api/generate",
			DefaultModel: "llama3",
			TimeoutSecs:  300,
		},
		Retrieval: RetrievalConfig{
			TopK:         6,
			RerankWeight: 0.25,
			MaxContext:   4,
		},
		Compare: CompareConfig{
			Threshold: 0.75,
		},
	}
}
