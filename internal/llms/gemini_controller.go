package llms

import (
	"context"

	"google.golang.org/genai"
)

// GeminiLLM is the hosted alternative to the local Ollama daemon. The genai
// client reads GEMINI_API_KEY from the environment on its own.
type GeminiLLM struct {
	client *genai.Client
	parser *GeminiParser
}

func NewGeminiHandler(ctx context.Context) (*GeminiLLM, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &GeminiLLM{client: client, parser: &GeminiParser{}}, nil
}

func (g *GeminiLLM) Generate(ctx context.Context, prompt, model string) (string, error) {
	contents := []*genai.Content{
		{
			Parts: []*genai.Part{{Text: prompt}},
			Role:  "user",
		},
	}
	return g.parser.ParseResponse(g.client.Models.GenerateContent(ctx, model, contents, nil))
}
