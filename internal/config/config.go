package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Backend identifiers. The set is closed: new backends are added here and in
// the llm factory, never discovered at runtime.
const (
	BackendJan    = "jan"
	BackendOllama = "ollama"
	BackendMock   = "mock"
)

// Chooser modes.
const (
	ChooserAuto    = "auto"
	ChooserFzf     = "fzf"
	ChooserBuiltin = "builtin"
)

const (
	defaultMaxChars  = 75
	defaultDiffLimit = 5000
	defaultTimeout   = 2 * time.Minute
	defaultOllamaURL = "http://localhost:11434"
	defaultJanURL    = "http://localhost:1337/v1"
)

// Config holds all application configuration. It is read-only after Load.
type Config struct {
	Backend     string
	OllamaModel string
	JanModel    string
	OllamaURL   string
	JanURL      string
	MaxChars    int // target characters per commit message
	DiffLimit   int // bytes of diff sent to the model
	Timeout     time.Duration
	Chooser     string
	Analytics   bool
	Vim         bool
	Num         bool
	Redact      bool
	Debug       bool
}

// Overrides represents optional CLI flag overrides. A non-nil pointer wins
// over defaults, config file and environment.
type Overrides struct {
	Backend   *string
	Model     *string // applies to the resolved backend
	MaxChars  *int
	Analytics *bool
	Vim       *bool
	Num       *bool
	Debug     *bool
}

// Default returns the built-in defaults, before the config file, the
// environment and flag overrides are applied.
func Default() *Config {
	return &Config{
		Backend:     BackendJan,
		OllamaModel: DefaultModels[BackendOllama],
		JanModel:    DefaultModels[BackendJan],
		OllamaURL:   defaultOllamaURL,
		JanURL:      defaultJanURL,
		MaxChars:    defaultMaxChars,
		DiffLimit:   defaultDiffLimit,
		Timeout:     defaultTimeout,
		Chooser:     ChooserAuto,
		Redact:      true,
	}
}

// Load loads configuration with precedence:
// defaults → config file → environment → flag overrides.
func Load(o *Overrides) (*Config, error) {
	cfg := Default()

	// Config file (best-effort; a missing file is not an error).
	if path, err := DefaultConfigPath(); err == nil {
		if fileCfg, err := LoadFromFile(path); err == nil && fileCfg != nil {
			applyFileConfig(cfg, fileCfg)
		}
	}

	// Env overrides. OLLAMA_MODEL and JAN_MODEL are the historical names;
	// everything else is namespaced.
	if v, ok := os.LookupEnv("GITMSG_BACKEND"); ok && v != "" {
		cfg.Backend = v
	}
	if v, ok := os.LookupEnv("OLLAMA_MODEL"); ok && v != "" {
		cfg.OllamaModel = v
	}
	if v, ok := os.LookupEnv("JAN_MODEL"); ok && v != "" {
		cfg.JanModel = v
	}
	if v, ok := os.LookupEnv("GITMSG_OLLAMA_URL"); ok && v != "" {
		cfg.OllamaURL = v
	}
	if v, ok := os.LookupEnv("GITMSG_JAN_URL"); ok && v != "" {
		cfg.JanURL = v
	}
	if _, ok := os.LookupEnv("GITMSG_MAX_CHARS"); ok {
		cfg.MaxChars = getEnvInt("GITMSG_MAX_CHARS", cfg.MaxChars)
	}
	if _, ok := os.LookupEnv("GITMSG_DIFF_LIMIT"); ok {
		cfg.DiffLimit = getEnvInt("GITMSG_DIFF_LIMIT", cfg.DiffLimit)
	}
	if _, ok := os.LookupEnv("GITMSG_TIMEOUT"); ok {
		cfg.Timeout = getEnvDuration("GITMSG_TIMEOUT", cfg.Timeout)
	}
	if v, ok := os.LookupEnv("GITMSG_CHOOSER"); ok && v != "" {
		cfg.Chooser = v
	}
	if _, ok := os.LookupEnv("GITMSG_REDACT"); ok {
		cfg.Redact = getEnvBool("GITMSG_REDACT", cfg.Redact)
	}
	if _, ok := os.LookupEnv("GITMSG_DEBUG"); ok {
		cfg.Debug = getEnvBool("GITMSG_DEBUG", cfg.Debug)
	}

	applyOverrides(cfg, o)

	// Validate
	switch cfg.Backend {
	case BackendJan, BackendOllama, BackendMock:
	default:
		return nil, fmt.Errorf("invalid backend: %s (must be 'jan', 'ollama' or 'mock')", cfg.Backend)
	}

	switch cfg.Chooser {
	case ChooserAuto, ChooserFzf, ChooserBuiltin:
	default:
		return nil, fmt.Errorf("invalid chooser: %s (must be 'auto', 'fzf' or 'builtin')", cfg.Chooser)
	}

	if cfg.MaxChars <= 0 {
		return nil, fmt.Errorf("max chars must be positive, got %d", cfg.MaxChars)
	}
	if cfg.DiffLimit <= 0 {
		return nil, fmt.Errorf("diff limit must be positive, got %d", cfg.DiffLimit)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}

	return cfg, nil
}

// ActiveModel returns the model name for the configured backend.
func (c *Config) ActiveModel() string {
	switch c.Backend {
	case BackendOllama:
		return c.OllamaModel
	case BackendJan:
		return c.JanModel
	default:
		return DefaultModels[c.Backend]
	}
}

// BackendDisplay returns the user-visible name of a backend identifier.
func BackendDisplay(backend string) string {
	switch backend {
	case BackendJan:
		return "Jan"
	case BackendOllama:
		return "Ollama"
	case BackendMock:
		return "Mock"
	default:
		return backend
	}
}

func applyFileConfig(dst *Config, src *FileConfig) {
	if dst == nil || src == nil {
		return
	}
	if src.Backend != nil {
		dst.Backend = *src.Backend
	}
	if src.OllamaModel != nil {
		dst.OllamaModel = *src.OllamaModel
	}
	if src.JanModel != nil {
		dst.JanModel = *src.JanModel
	}
	if src.OllamaURL != nil {
		dst.OllamaURL = *src.OllamaURL
	}
	if src.JanURL != nil {
		dst.JanURL = *src.JanURL
	}
	if src.MaxChars != nil {
		dst.MaxChars = *src.MaxChars
	}
	if src.DiffLimit != nil {
		dst.DiffLimit = *src.DiffLimit
	}
	if src.Timeout != nil {
		if d, err := time.ParseDuration(*src.Timeout); err == nil {
			dst.Timeout = d
		}
	}
	if src.Chooser != nil {
		dst.Chooser = *src.Chooser
	}
	if src.Analytics != nil {
		dst.Analytics = *src.Analytics
	}
	if src.Vim != nil {
		dst.Vim = *src.Vim
	}
	if src.Num != nil {
		dst.Num = *src.Num
	}
	if src.Redact != nil {
		dst.Redact = *src.Redact
	}
}

func applyOverrides(dst *Config, src *Overrides) {
	if dst == nil || src == nil {
		return
	}
	if src.Backend != nil {
		dst.Backend = *src.Backend
	}
	if src.Model != nil && *src.Model != "" {
		switch dst.Backend {
		case BackendOllama:
			dst.OllamaModel = *src.Model
		case BackendJan:
			dst.JanModel = *src.Model
		}
	}
	if src.MaxChars != nil {
		dst.MaxChars = *src.MaxChars
	}
	if src.Analytics != nil {
		dst.Analytics = *src.Analytics
	}
	if src.Vim != nil {
		dst.Vim = *src.Vim
	}
	if src.Num != nil {
		dst.Num = *src.Num
	}
	if src.Debug != nil {
		dst.Debug = *src.Debug
	}
}

// getEnvInt retrieves an environment variable as int with a default value.
func getEnvInt(key string, defaultValue int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool retrieves an environment variable as bool with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultValue
}

// getEnvDuration retrieves an environment variable as a duration ("90s",
// "2m") with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultValue
}
