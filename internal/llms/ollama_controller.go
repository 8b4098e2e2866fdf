package llms

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/praveen-raj-m/compliance-ai/internal/config"
	"github.com/praveen-raj-m/compliance-ai/internal/utils"
)

// OllamaLLM talks to a local Ollama daemon's /api/generate endpoint.
type OllamaLLM struct {
	url    string
	client *http.Client
}

// generateRequest is the Ollama API request format. Streaming is off: the
// pipeline wants the complete answer in one response.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func NewOllamaHandler(cfg *config.Config) *OllamaLLM {
	return &OllamaLLM{
		url:    cfg.LLM.URL,
		client: &http.Client{Timeout: time.Duration(cfg.LLM.TimeoutSecs) * time.Second},
	}
}

func (o *OllamaLLM) Generate(ctx context.Context, prompt, model string) (string, error) {
	req := generateRequest{Model: model, Prompt: prompt, Stream: false}

	var resp generateResponse
	if err := utils.PostJSON(ctx, o.client, o.url, req, &resp); err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	answer := strings.TrimSpace(resp.Response)
	if answer == "" {
		return "", fmt.Errorf("ollama returned an empty response for model %s", model)
	}
	return answer, nil
}
