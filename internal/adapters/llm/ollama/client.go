// Package ollama talks to a local Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gitmsg/gitmsg/internal/ports"
)

// Client queries a local Ollama server for completions.
type Client struct {
	baseURL string
	model   string
	http    *http.Client
}

// NewClient creates a new Ollama client.
func NewClient(baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.1"
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    &http.Client{Timeout: 0}, // Let context handle timeout
	}
}

// Query sends the prompt to /api/generate and returns the raw reply text.
func (c *Client) Query(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model":  c.model,
		"prompt": prompt,
		"stream": false,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ports.ServiceError{Backend: "Ollama", Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/generate", bytes.NewReader(jsonBody))
	if err != nil {
		return "", &ports.ServiceError{Backend: "Ollama", Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &ports.ServiceError{Backend: "Ollama", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &ports.ServiceError{
			Backend: "Ollama",
			Err:     fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	// A reply without a "response" key decodes to the empty string, which the
	// parser upstream treats as "no candidates".
	var respData struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&respData); err != nil {
		return "", &ports.ServiceError{Backend: "Ollama", Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	return respData.Response, nil
}
