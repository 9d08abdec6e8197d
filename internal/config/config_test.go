package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolateUserConfigDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()

	// os.UserConfigDir consults these on common platforms.
	t.Setenv("APPDATA", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
}

// clearEnv makes tests deterministic even if the developer has vars set.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

var allEnvKeys = []string{
	"GITMSG_BACKEND", "OLLAMA_MODEL", "JAN_MODEL",
	"GITMSG_OLLAMA_URL", "GITMSG_JAN_URL",
	"GITMSG_MAX_CHARS", "GITMSG_DIFF_LIMIT", "GITMSG_TIMEOUT",
	"GITMSG_CHOOSER", "GITMSG_REDACT", "GITMSG_DEBUG",
}

func TestConfigDefaults(t *testing.T) {
	isolateUserConfigDir(t)
	clearEnv(t, allEnvKeys...)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend != BackendJan {
		t.Errorf("Backend = %s, want jan", cfg.Backend)
	}
	if cfg.JanModel != "llama 3.1" {
		t.Errorf("JanModel = %s, want 'llama 3.1'", cfg.JanModel)
	}
	if cfg.OllamaModel != "llama3.1" {
		t.Errorf("OllamaModel = %s, want llama3.1", cfg.OllamaModel)
	}
	if cfg.MaxChars != 75 {
		t.Errorf("MaxChars = %d, want 75", cfg.MaxChars)
	}
	if cfg.DiffLimit != 5000 {
		t.Errorf("DiffLimit = %d, want 5000", cfg.DiffLimit)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %s, want 2m", cfg.Timeout)
	}
	if cfg.Chooser != ChooserAuto {
		t.Errorf("Chooser = %s, want auto", cfg.Chooser)
	}
	if !cfg.Redact {
		t.Error("Default redact should be true")
	}
	if cfg.Analytics || cfg.Vim || cfg.Num || cfg.Debug {
		t.Error("Display flags should default to false")
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	isolateUserConfigDir(t)
	clearEnv(t, allEnvKeys...)

	t.Setenv("GITMSG_BACKEND", "ollama")
	t.Setenv("OLLAMA_MODEL", "codellama")
	t.Setenv("GITMSG_MAX_CHARS", "100")
	t.Setenv("GITMSG_TIMEOUT", "30s")
	t.Setenv("GITMSG_REDACT", "false")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend != BackendOllama {
		t.Errorf("Backend = %s, want ollama", cfg.Backend)
	}
	if cfg.ActiveModel() != "codellama" {
		t.Errorf("ActiveModel() = %s, want codellama", cfg.ActiveModel())
	}
	if cfg.MaxChars != 100 {
		t.Errorf("MaxChars = %d, want 100", cfg.MaxChars)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s", cfg.Timeout)
	}
	if cfg.Redact {
		t.Error("GITMSG_REDACT=false should disable redaction")
	}
}

func TestConfigFileThenEnvPrecedence(t *testing.T) {
	isolateUserConfigDir(t)
	clearEnv(t, allEnvKeys...)

	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath() error = %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	file := "backend = \"mock\"\nmax_chars = 50\nvim = true\n"
	if err := os.WriteFile(path, []byte(file), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("GITMSG_MAX_CHARS", "60")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend != BackendMock {
		t.Errorf("Backend = %s, want mock from file", cfg.Backend)
	}
	if cfg.MaxChars != 60 {
		t.Errorf("MaxChars = %d, want 60 (env beats file)", cfg.MaxChars)
	}
	if !cfg.Vim {
		t.Error("vim from file should survive env overrides")
	}
}

func TestConfigFlagOverridesWin(t *testing.T) {
	isolateUserConfigDir(t)
	clearEnv(t, allEnvKeys...)

	t.Setenv("GITMSG_BACKEND", "ollama")
	t.Setenv("GITMSG_MAX_CHARS", "100")

	backend := BackendJan
	model := "custom-model"
	maxChars := 42
	cfg, err := Load(&Overrides{Backend: &backend, Model: &model, MaxChars: &maxChars})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend != BackendJan {
		t.Errorf("Backend = %s, want jan (flag beats env)", cfg.Backend)
	}
	if cfg.JanModel != "custom-model" {
		t.Errorf("JanModel = %s, want custom-model", cfg.JanModel)
	}
	if cfg.OllamaModel != "llama3.1" {
		t.Errorf("OllamaModel = %s, want untouched default", cfg.OllamaModel)
	}
	if cfg.MaxChars != 42 {
		t.Errorf("MaxChars = %d, want 42", cfg.MaxChars)
	}
}

func TestConfigValidation(t *testing.T) {
	isolateUserConfigDir(t)
	clearEnv(t, allEnvKeys...)

	t.Setenv("GITMSG_BACKEND", "gpt9000")
	if _, err := Load(nil); err == nil {
		t.Error("Load() should reject unknown backends")
	}

	t.Setenv("GITMSG_BACKEND", "jan")
	t.Setenv("GITMSG_MAX_CHARS", "-1")
	if _, err := Load(nil); err == nil {
		t.Error("Load() should reject non-positive max chars")
	}

	t.Setenv("GITMSG_MAX_CHARS", "75")
	t.Setenv("GITMSG_CHOOSER", "dialog")
	if _, err := Load(nil); err == nil {
		t.Error("Load() should reject unknown choosers")
	}
}

func TestActiveModel(t *testing.T) {
	cfg := &Config{Backend: BackendOllama, OllamaModel: "llama3.2", JanModel: "llama 3.1"}
	if got := cfg.ActiveModel(); got != "llama3.2" {
		t.Errorf("ActiveModel() = %s, want llama3.2", got)
	}

	cfg.Backend = BackendJan
	if got := cfg.ActiveModel(); got != "llama 3.1" {
		t.Errorf("ActiveModel() = %s, want 'llama 3.1'", got)
	}

	cfg.Backend = BackendMock
	if got := cfg.ActiveModel(); got != "mock" {
		t.Errorf("ActiveModel() = %s, want mock", got)
	}
}

func TestBackendDisplay(t *testing.T) {
	if got := BackendDisplay(BackendOllama); got != "Ollama" {
		t.Errorf("BackendDisplay(ollama) = %s", got)
	}
	if got := BackendDisplay(BackendJan); got != "Jan" {
		t.Errorf("BackendDisplay(jan) = %s", got)
	}
	if got := BackendDisplay("something"); got != "something" {
		t.Errorf("BackendDisplay passthrough = %s", got)
	}
}
