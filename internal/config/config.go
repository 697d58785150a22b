package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all redseam client configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Store API
	API APIConfig `yaml:"api"`

	// Local state (session file, history database, logs)
	Storage StorageConfig `yaml:"storage"`

	// Checkout display
	Checkout CheckoutConfig `yaml:"checkout"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the remote store API.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// StorageConfig configures where local state lives.
type StorageConfig struct {
	StateDir    string `yaml:"state_dir"`
	HistoryPath string `yaml:"history_path"`
}

// CheckoutConfig configures checkout presentation values the server does not
// return. Delivery is the flat delivery cost added to the items subtotal.
type CheckoutConfig struct {
	Delivery float64 `yaml:"delivery"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Debug bool   `yaml:"debug"`
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	stateDir := defaultStateDir()
	return &Config{
		Name:    "redseam",
		Version: "1.0.0",

		API: APIConfig{
			BaseURL: "https://api.redseam.redberryinternship.ge/api",
			Timeout: "30s",
		},

		Storage: StorageConfig{
			StateDir:    stateDir,
			HistoryPath: filepath.Join(stateDir, "history.db"),
		},

		Checkout: CheckoutConfig{
			Delivery: 5,
		},

		Logging: LoggingConfig{
			Debug: false,
			Level: "info",
		},
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".redseam"
	}
	return filepath.Join(home, ".redseam")
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(defaultStateDir(), "config.yaml")
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("REDSEAM_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if dir := os.Getenv("REDSEAM_STATE_DIR"); dir != "" {
		c.Storage.StateDir = dir
		c.Storage.HistoryPath = filepath.Join(dir, "history.db")
	}
	if path := os.Getenv("REDSEAM_HISTORY_DB"); path != "" {
		c.Storage.HistoryPath = path
	}
	if os.Getenv("REDSEAM_DEBUG") != "" {
		c.Logging.Debug = true
	}
}

// SessionPath returns the location of the persisted session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Storage.StateDir, "session.json")
}

// BrowsePath returns the location of the persisted browse query string.
func (c *Config) BrowsePath() string {
	return filepath.Join(c.Storage.StateDir, "browse.query")
}

// GetAPITimeout returns the API timeout as a duration.
func (c *Config) GetAPITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
