package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

type Header struct {
	Key   string
	Value string
}

// PostJSON marshals body, POSTs it and decodes the JSON response into out.
// Non-2xx statuses are returned as errors with the response body included,
// since the embedding and LLM services put their diagnostics there.
func PostJSON(ctx context.Context, client *http.Client, url string, body any, out any, headers ...Header) error {
	if client == nil {
		client = http.DefaultClient
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for _, header := range headers {
		req.Header.Set(header.Key, header.Value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("POST %s: %s: %s", url, resp.Status, strings.TrimSpace(string(detail)))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func ReadTextFromFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// NormalizeSource maps a user-supplied standard name to the canonical
// source tag stored in chunk payloads ("iso 27001" -> "ISO_27001").
func NormalizeSource(name string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(name)), " ", "_")
}

// ValidSource reports whether a source tag is safe to use as a file stem.
// User-supplied names become paths under the data directories, so anything
// carrying a path separator or a traversal component is rejected.
func ValidSource(source string) bool {
	if source == "" {
		return false
	}
	if strings.ContainsAny(source, `/\`) || strings.Contains(source, "..") {
		return false
	}
	return source == filepath.Base(source)
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
