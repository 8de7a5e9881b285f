package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Assistant holds the text-generation collaborator settings. The API key
// may be left empty in the file and supplied via GEMINI_API_KEY instead.
type Assistant struct {
	APIKey  string `yaml:"api_key,omitempty"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url,omitempty"`
}

type Config struct {
	Theme     string    `yaml:"theme"`
	Assistant Assistant `yaml:"assistant"`

	DataDir string `yaml:"-"`
	DBPath  string `yaml:"-"`
}

func defaults(dataDir string) Config {
	return Config{
		Theme: ThemeLight,
		Assistant: Assistant{
			Model: "gemini-2.5-flash",
		},
		DataDir: dataDir,
		DBPath:  filepath.Join(dataDir, "libtrack.db"),
	}
}

// Load reads config.yaml from dataDir, falling back to defaults when the
// file does not exist yet.
func Load(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := defaults(dataDir)
	raw, err := os.ReadFile(filepath.Join(dataDir, "config.yaml"))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Theme != ThemeDark {
		cfg.Theme = ThemeLight
	}
	if cfg.Assistant.Model == "" {
		cfg.Assistant.Model = "gemini-2.5-flash"
	}
	return cfg, nil
}

// Save writes the config back to dataDir. Called on every theme toggle.
func (c Config) Save() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.DataDir, "config.yaml"), raw, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultDataDir resolves the per-user data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".libtrack"
	}
	return filepath.Join(home, ".libtrack")
}
