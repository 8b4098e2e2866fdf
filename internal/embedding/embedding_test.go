package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praveen-raj-m/compliance-ai/internal/config"
)

func embedServer(t *testing.T, vec []float32) (*httptest.Server, *embedRequest) {
	t.Helper()
	var got embedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(embedResponse{Embeddings: [][]float32{vec}})
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func testClient(t *testing.T, url string, dim int) *Client {
	t.Helper()
	cfg, err := config.Load("nonexistent.yaml")
	require.NoError(t, err)
	cfg.Embedder.URL = url
	cfg.Embedder.Dimension = dim
	return NewClient(cfg)
}

func TestEmbedQueryPrefix(t *testing.T) {
	srv, got := embedServer(t, []float32{0.1, 0.2, 0.3})
	c := testClient(t, srv.URL, 3)

	vec, err := c.EmbedQuery(context.Background(), "what is consent?")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, "query: what is consent?", got.Input)
	assert.Equal(t, "e5-large-v2", got.Model)
}

func TestEmbedPassagePrefix(t *testing.T) {
	srv, got := embedServer(t, []float32{0.4, 0.5, 0.6})
	c := testClient(t, srv.URL, 3)

	_, err := c.EmbedPassage(context.Background(), "Consent must be freely given.")

	require.NoError(t, err)
	assert.Equal(t, "passage: Consent must be freely given.", got.Input)
}

func TestEmbedDimensionMismatch(t *testing.T) {
	srv, _ := embedServer(t, []float32{0.1, 0.2})
	c := testClient(t, srv.URL, 3)

	_, err := c.EmbedQuery(context.Background(), "question")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension")
}

func TestEmbedEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(embedResponse{})
	}))
	t.Cleanup(srv.Close)
	c := testClient(t, srv.URL, 3)

	_, err := c.EmbedQuery(context.Background(), "question")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no vector")
}

func TestDimension(t *testing.T) {
	c := testClient(t, "http://localhost:0", 1024)
	assert.Equal(t, 1024, c.Dimension())
}
