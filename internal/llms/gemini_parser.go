package llms

import (
	"fmt"

	"google.golang.org/genai"
)

// GeminiParser extracts the answer text from a genai response.
type GeminiParser struct{}

func (GeminiParser) ParseResponse(resp *genai.GenerateContentResponse, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) < 1 {
		return "", fmt.Errorf("no candidates in gemini response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) < 1 {
		return "", fmt.Errorf("no content in gemini response")
	}
	return candidate.Content.Parts[0].Text, nil
}
