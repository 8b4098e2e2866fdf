// Package llms holds the generation backends. Each provider has its own
// controller; callers pick one through the Handler by model name.
package llms

import (
	"context"
	"strings"

	"github.com/praveen-raj-m/compliance-ai/internal/config"
)

// Generator produces text for a prompt. Failures are recovered at the
// pipeline boundary with a fallback answer, never propagated to the user.
type Generator interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
}

// Handler routes generation requests to the right provider controller.
type Handler struct {
	Ollama *OllamaLLM
	Gemini *GeminiLLM

	defaultModel string
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{
		Ollama:       NewOllamaHandler(cfg),
		defaultModel: cfg.LLM.DefaultModel,
	}
}

// Generate sends the prompt to the provider implied by the model name.
// Gemini models need the Gemini controller to have been attached; anything
// else goes to the local Ollama daemon.
func (h *Handler) Generate(ctx context.Context, prompt, model string) (string, error) {
	if model == "" {
		model = h.defaultModel
	}
	if strings.HasPrefix(strings.ToLower(model), "gemini") && h.Gemini != nil {
		return h.Gemini.Generate(ctx, prompt, model)
	}
	return h.Ollama.Generate(ctx, prompt, model)
}
