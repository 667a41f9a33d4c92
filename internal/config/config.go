// Package config loads and persists the calassist YAML configuration.
//
// The file lives at ~/.config/calassist/config.yaml by default. Missing
// files are created on first load with defaults and 0600 permissions so the
// calendar ID never ends up world-readable.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// OllamaConfig describes the local model service endpoint.
type OllamaConfig struct {
	// BaseURL is the Ollama API base, e.g. "http://localhost:11434/api".
	BaseURL string `yaml:"base_url" json:"base_url"`
	// Model is the model name passed to /api/chat.
	Model string `yaml:"model" json:"model"`
	// Temperature controls sampling; scheduling wants it low.
	Temperature float64 `yaml:"temperature" json:"temperature"`
}

// Config is the top-level application configuration.
type Config struct {
	// OrganizerZone is the IANA timezone all meeting requests are anchored
	// in (e.g. "Asia/Karachi").
	OrganizerZone string `yaml:"organizer_zone" json:"organizer_zone"`

	// OrganizerEmail is the organizer's address, attached to created events.
	OrganizerEmail string `yaml:"organizer_email" json:"organizer_email"`

	// CalendarID is the Google Calendar events are created on.
	// "primary" targets the authenticated account's main calendar.
	CalendarID string `yaml:"calendar_id" json:"calendar_id"`

	// MaxIterations caps model round-trips per conversation turn.
	MaxIterations int `yaml:"max_iterations" json:"max_iterations"`

	// StepTimeout bounds each model round-trip and tool call.
	// Zero disables the per-step timeout.
	StepTimeout time.Duration `yaml:"step_timeout" json:"step_timeout"`

	// Ollama configures the model service connection.
	Ollama OllamaConfig `yaml:"ollama" json:"ollama"`

	// MetricsAddr is the listen address for the Prometheus metrics server.
	// Empty disables the metrics server.
	MetricsAddr string `yaml:"metrics_addr,omitempty" json:"metrics_addr,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		OrganizerZone:  "Asia/Karachi",
		OrganizerEmail: "",
		CalendarID:     "primary",
		MaxIterations:  5,
		StepTimeout:    0,
		Ollama: OllamaConfig{
			BaseURL:     "http://localhost:11434/api",
			Model:       "llama3.2",
			Temperature: 0.1,
		},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.OrganizerZone == "" {
		c.OrganizerZone = "Asia/Karachi"
	}
	if c.CalendarID == "" {
		c.CalendarID = "primary"
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = 5
	}
	if c.StepTimeout < 0 {
		c.StepTimeout = 0
	}
	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = "http://localhost:11434/api"
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = "llama3.2"
	}
	if c.Ollama.Temperature <= 0 {
		c.Ollama.Temperature = 0.1
	}
}

// DefaultPath returns the default config file location,
// ~/.config/calassist/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "calassist", "config.yaml")
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file in same directory then rename.
	tmp, err := os.CreateTemp(dir, ".calassist-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	// Flush and close before chmod/rename.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// Set permissions to 0600 on temp file before rename.
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	// Rename over the target path.
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	return nil
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
