package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gitmsg/gitmsg/internal/adapters/fzf"
	"github.com/gitmsg/gitmsg/internal/config"
	"github.com/gitmsg/gitmsg/internal/erruser"
	"github.com/gitmsg/gitmsg/internal/output"
	"github.com/gitmsg/gitmsg/internal/ports"
	"github.com/gitmsg/gitmsg/internal/ui"
)

func TestInferenceName(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{config.BackendJan, "Jan AI"},
		{config.BackendOllama, "Ollama"},
		{config.BackendMock, "Mock"},
	}
	for _, tt := range tests {
		if got := inferenceName(tt.backend); got != tt.want {
			t.Errorf("inferenceName(%q) = %q, want %q", tt.backend, got, tt.want)
		}
	}
}

func TestChooserFor(t *testing.T) {
	if _, ok := chooserFor(config.ChooserFzf).(*fzf.Chooser); !ok {
		t.Error("fzf mode should return the fzf chooser")
	}
	if _, ok := chooserFor(config.ChooserBuiltin).(*ui.Picker); !ok {
		t.Error("builtin mode should return the built-in picker")
	}

	// Auto falls back to the built-in picker when fzf is not on PATH.
	t.Setenv("PATH", t.TempDir())
	if _, ok := chooserFor(config.ChooserAuto).(*ui.Picker); !ok {
		t.Error("auto mode without fzf should return the built-in picker")
	}
}

func TestReportError(t *testing.T) {
	t.Setenv("GITMSG_LOG_PATH", filepath.Join(t.TempDir(), "errors.log"))

	tests := []struct {
		name string
		err  error
	}{
		{"user-facing", erruser.New("Not a git repository or git is not installed.", errors.New("exit status 128"))},
		{"service", &ports.ServiceError{Backend: "ollama", Err: errors.New("connection refused")}},
		{"plain", errors.New("encode candidates: bad value")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reportError(tt.err); got != 1 {
				t.Errorf("reportError() = %d, want 1", got)
			}
		})
	}
}

// initTestRepo creates a throwaway repository and chdirs into it.
func initTestRepo(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	t.Chdir(t.TempDir())
	gitRun(t, "init", "-q")
	gitRun(t, "config", "user.email", "test@example.com")
	gitRun(t, "config", "user.name", "test")
}

func gitRun(t *testing.T, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func mockConfig() *config.Config {
	cfg := config.Default()
	cfg.Backend = config.BackendMock
	return cfg
}

func TestSuggestNoChanges(t *testing.T) {
	initTestRepo(t)

	var buf bytes.Buffer
	ctx := output.WithPrinter(context.Background(), &buf)

	if err := suggest(ctx, mockConfig(), false); err != nil {
		t.Fatalf("suggest() error = %v", err)
	}
	if got := buf.String(); got != "No changes to commit.\n" {
		t.Errorf("suggest() output = %q", got)
	}
}

func TestSuggestOutputs(t *testing.T) {
	initTestRepo(t)

	// Stage a change so the mock backend has a diff to describe.
	if err := os.WriteFile("main.go", []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	gitRun(t, "add", "main.go")

	var plain bytes.Buffer
	ctx := output.WithPrinter(context.Background(), &plain)
	if err := suggest(ctx, mockConfig(), false); err != nil {
		t.Fatalf("suggest() error = %v", err)
	}
	lines := strings.Split(strings.TrimRight(plain.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("suggest() printed %d lines, want 3:\n%s", len(lines), plain.String())
	}
	for i, line := range lines {
		if wantPrefix := []string{"1. ", "2. ", "3. "}[i]; !strings.HasPrefix(line, wantPrefix) {
			t.Errorf("line %d = %q, want prefix %q", i, line, wantPrefix)
		}
	}

	var asJSON bytes.Buffer
	ctx = output.WithPrinter(context.Background(), &asJSON)
	if err := suggest(ctx, mockConfig(), true); err != nil {
		t.Fatalf("suggest(json) error = %v", err)
	}
	var candidates []string
	if err := json.Unmarshal(asJSON.Bytes(), &candidates); err != nil {
		t.Fatalf("suggest(json) produced invalid JSON: %v\n%s", err, asJSON.String())
	}
	if len(candidates) != 3 {
		t.Errorf("suggest(json) produced %d candidates, want 3", len(candidates))
	}
}
