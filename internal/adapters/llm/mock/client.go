// Package mock provides an offline model backend for demos and tests.
package mock

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
)

// Client is a mock model implementation that needs no running server.
type Client struct{}

// NewClient creates a new mock model client.
func NewClient() *Client {
	return &Client{}
}

var subjects = []string{
	"Add new functionality to enhance the project",
	"Fix issue affecting system stability",
	"Simplify internal logic for clarity",
	"Update documentation for recent changes",
	"Update dependencies and maintenance tasks",
}

// Query returns a deterministic numbered reply derived from the prompt hash,
// in the same shape a real model is asked to produce.
func (c *Client) Query(ctx context.Context, prompt string) (string, error) {
	hash := hashString(prompt)

	var b strings.Builder
	for i := 0; i < 3; i++ {
		idx := int((hash + uint64(i)) % uint64(len(subjects)))
		fmt.Fprintf(&b, "%d. %s\n", i+1, subjects[idx])
	}
	return b.String(), nil
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
