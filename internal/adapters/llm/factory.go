// Package llm constructs model backends.
package llm

import (
	"fmt"

	"github.com/gitmsg/gitmsg/internal/adapters/llm/jan"
	"github.com/gitmsg/gitmsg/internal/adapters/llm/mock"
	"github.com/gitmsg/gitmsg/internal/adapters/llm/ollama"
	"github.com/gitmsg/gitmsg/internal/ports"
)

// NewFromConfig creates a model backend from configuration values.
func NewFromConfig(backend, janURL, ollamaURL, model string) (ports.Model, error) {
	switch backend {
	case "jan":
		return jan.NewClient(janURL, model), nil
	case "ollama":
		return ollama.NewClient(ollamaURL, model), nil
	case "mock":
		return mock.NewClient(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", backend)
	}
}
