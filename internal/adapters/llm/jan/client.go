// Package jan talks to a local Jan server through its OpenAI-compatible API.
package jan

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/gitmsg/gitmsg/internal/ports"
)

// temperature matches what the Jan chat UI uses for local models.
const temperature = 0.7

// Client implements ports.Model against a Jan server.
type Client struct {
	model  string
	client *openai.Client
}

// NewClient creates a new Jan client. Jan ignores the API key, so none is
// required.
func NewClient(baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:1337/v1"
	}
	if model == "" {
		model = "llama 3.1"
	}

	config := openai.DefaultConfig("")
	config.BaseURL = baseURL

	return &Client{
		model:  model,
		client: openai.NewClientWithConfig(config),
	}
}

// Query sends the prompt as a single user message and returns the reply text.
func (c *Client) Query(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", &ports.ServiceError{Backend: "Jan", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &ports.ServiceError{Backend: "Jan", Err: fmt.Errorf("no choices returned")}
	}

	return resp.Choices[0].Message.Content, nil
}
