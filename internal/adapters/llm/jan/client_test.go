package jan

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gitmsg/gitmsg/internal/ports"
)

func completionReply(content string) string {
	return `{"id":"cmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":` + jsonString(content) + `},"finish_reason":"stop"}]}`
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestQuerySendsSingleUserMessage(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		Temperature float32 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s, want /v1/chat/completions", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionReply("1. First\n2. Second\n3. Third")))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v1", "llama 3.1")
	reply, err := c.Query(context.Background(), "summarize this diff")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	if got.Model != "llama 3.1" {
		t.Errorf("model = %q", got.Model)
	}
	if got.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", got.Temperature)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" {
		t.Fatalf("messages = %+v, want one user message", got.Messages)
	}
	if got.Messages[0].Content != "summarize this diff" {
		t.Errorf("content = %q", got.Messages[0].Content)
	}
	if reply != "1. First\n2. Second\n3. Third" {
		t.Errorf("reply = %q", reply)
	}
}

func TestQueryServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"model not loaded"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v1", "llama 3.1")
	_, err := c.Query(context.Background(), "prompt")
	if err == nil {
		t.Fatal("Query() should fail on server error")
	}

	var svcErr *ports.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("error type = %T, want *ports.ServiceError", err)
	}
	if svcErr.Backend != "Jan" {
		t.Errorf("Backend = %s, want Jan", svcErr.Backend)
	}
}

func TestQueryNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v1", "llama 3.1")
	_, err := c.Query(context.Background(), "prompt")

	var svcErr *ports.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("error type = %T, want *ports.ServiceError", err)
	}
}
