// Package handlers holds the response envelope types shared by the HTTP
// surface.
package handlers

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse reports the outcome of an ingestion request.
type MessageResponse struct {
	Message string `json:"message"`
	Added   bool   `json:"added"`
}

// StandardsResponse lists the standards with parsed chunk files on disk.
type StandardsResponse struct {
	Standards []string `json:"standards"`
}

// CompareResponse carries the LLM's policy comparison text.
type CompareResponse struct {
	Result string `json:"result"`
}
