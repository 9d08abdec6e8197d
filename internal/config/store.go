package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig mirrors the TOML config file with optional fields.
// This prevents missing keys from clobbering defaults.
type FileConfig struct {
	Backend     *string `toml:"backend"`
	OllamaModel *string `toml:"ollama_model"`
	JanModel    *string `toml:"jan_model"`
	OllamaURL   *string `toml:"ollama_url"`
	JanURL      *string `toml:"jan_url"`
	MaxChars    *int    `toml:"max_chars"`
	DiffLimit   *int    `toml:"diff_limit"`
	Timeout     *string `toml:"timeout"` // duration string, e.g. "2m"
	Chooser     *string `toml:"chooser"`
	Analytics   *bool   `toml:"analytics"`
	Vim         *bool   `toml:"vim"`
	Num         *bool   `toml:"num"`
	Redact      *bool   `toml:"redact"`
}

// fileValues is the concrete shape written by SaveToFile.
type fileValues struct {
	Backend     string `toml:"backend"`
	OllamaModel string `toml:"ollama_model"`
	JanModel    string `toml:"jan_model"`
	OllamaURL   string `toml:"ollama_url"`
	JanURL      string `toml:"jan_url"`
	MaxChars    int    `toml:"max_chars"`
	DiffLimit   int    `toml:"diff_limit"`
	Timeout     string `toml:"timeout"`
	Chooser     string `toml:"chooser"`
	Analytics   bool   `toml:"analytics"`
	Vim         bool   `toml:"vim"`
	Num         bool   `toml:"num"`
	Redact      bool   `toml:"redact"`
}

// DefaultConfigPath returns the default per-user config path.
//
// Typically:
// - Linux:   ~/.config/gitmsg/config.toml
// - macOS:   ~/Library/Application Support/gitmsg/config.toml
// - Windows: %AppData%/gitmsg/config.toml
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, "gitmsg", "config.toml"), nil
}

// LoadFromFile loads config from a TOML file. If the file doesn't exist,
// returns (nil, nil).
func LoadFromFile(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg FileConfig
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config TOML: %w", err)
	}
	return &cfg, nil
}

// SaveToFile saves config to a TOML file (atomic write). Creates directories
// as needed. The file is written with 0600 permissions.
func SaveToFile(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	v := fileValues{
		Backend:     cfg.Backend,
		OllamaModel: cfg.OllamaModel,
		JanModel:    cfg.JanModel,
		OllamaURL:   cfg.OllamaURL,
		JanURL:      cfg.JanURL,
		MaxChars:    cfg.MaxChars,
		DiffLimit:   cfg.DiffLimit,
		Timeout:     cfg.Timeout.String(),
		Chooser:     cfg.Chooser,
		Analytics:   cfg.Analytics,
		Vim:         cfg.Vim,
		Num:         cfg.Num,
		Redact:      cfg.Redact,
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(0o600); err != nil {
		return fmt.Errorf("chmod temp config: %w", err)
	}
	if err := toml.NewEncoder(tmp).Encode(v); err != nil {
		return fmt.Errorf("encode config TOML: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp config: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	_ = os.Chmod(path, 0o600)

	return nil
}

// DeleteConfig removes the config file at the given path.
func DeleteConfig(path string) error {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil // Already gone, not an error
		}
		return fmt.Errorf("remove config: %w", err)
	}
	return nil
}
