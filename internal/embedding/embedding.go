// Package embedding is the client for the embedding service. The model is
// trained with asymmetric prefixes: questions are embedded as "query: ..."
// and stored chunks as "passage: ...". Mixing them up does not error, it
// just quietly ruins relevance, so the prefixes live here and nowhere else.
package embedding

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/praveen-raj-m/compliance-ai/internal/config"
	"github.com/praveen-raj-m/compliance-ai/internal/utils"
)

const (
	queryPrefix   = "query: "
	passagePrefix = "passage: "
)

type embedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Client talks to an Ollama-compatible /api/embed endpoint.
type Client struct {
	url    string
	model  string
	dim    int
	client *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		url:    cfg.Embedder.URL,
		model:  cfg.Embedder.Model,
		dim:    cfg.Embedder.Dimension,
		client: &http.Client{Timeout: time.Duration(cfg.Embedder.TimeoutSecs) * time.Second},
	}
}

// Dimension is the vector size the configured model produces.
func (c *Client) Dimension() int {
	return c.dim
}

// EmbedQuery embeds a search question.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return c.embed(ctx, queryPrefix+text)
}

// EmbedPassage embeds a stored chunk body.
func (c *Client) EmbedPassage(ctx context.Context, text string) ([]float32, error) {
	return c.embed(ctx, passagePrefix+text)
}

func (c *Client) embed(ctx context.Context, input string) ([]float32, error) {
	req := embedRequest{Model: c.model, Input: input}

	var resp embedResponse
	if err := utils.PostJSON(ctx, c.client, c.url, req, &resp); err != nil {
		return nil, fmt.Errorf("embedding request: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0]) == 0 {
		return nil, fmt.Errorf("embedding service returned no vector")
	}

	vec := resp.Embeddings[0]
	if c.dim > 0 && len(vec) != c.dim {
		return nil, fmt.Errorf("embedding dimension %d, expected %d", len(vec), c.dim)
	}
	return vec, nil
}
