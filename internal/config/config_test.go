package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "Asia/Karachi", cfg.OrganizerZone)
	assert.Equal(t, "primary", cfg.CalendarID)
	assert.Equal(t, 5, cfg.MaxIterations)
	assert.Equal(t, "http://localhost:11434/api", cfg.Ollama.BaseURL)
	assert.Equal(t, "llama3.2", cfg.Ollama.Model)
	assert.InDelta(t, 0.1, cfg.Ollama.Temperature, 1e-9)
}

func TestNormalizeFillsZeroValues(t *testing.T) {
	cfg := &Config{MaxIterations: -3, StepTimeout: -time.Second}
	cfg.Normalize()

	assert.Equal(t, "Asia/Karachi", cfg.OrganizerZone)
	assert.Equal(t, "primary", cfg.CalendarID)
	assert.Equal(t, 5, cfg.MaxIterations)
	assert.Equal(t, time.Duration(0), cfg.StepTimeout)
	assert.Equal(t, "llama3.2", cfg.Ollama.Model)
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		OrganizerZone: "Europe/Madrid",
		CalendarID:    "team@example.com",
		MaxIterations: 8,
		StepTimeout:   30 * time.Second,
		Ollama:        OllamaConfig{Model: "qwen2.5", Temperature: 0.3},
	}
	cfg.Normalize()

	assert.Equal(t, "Europe/Madrid", cfg.OrganizerZone)
	assert.Equal(t, "team@example.com", cfg.CalendarID)
	assert.Equal(t, 8, cfg.MaxIterations)
	assert.Equal(t, 30*time.Second, cfg.StepTimeout)
	assert.Equal(t, "qwen2.5", cfg.Ollama.Model)
	assert.InDelta(t, 0.3, cfg.Ollama.Temperature, 1e-9)
}

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.CalendarID)

	// File must exist with restrictive permissions.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.OrganizerZone = "Asia/Tokyo"
	cfg.CalendarID = "work@example.com"
	cfg.MaxIterations = 7
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loaded.OrganizerZone)
	assert.Equal(t, "work@example.com", loaded.CalendarID)
	assert.Equal(t, 7, loaded.MaxIterations)
}

func TestLoadNormalizesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("organizer_zone: Europe/London\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", cfg.OrganizerZone)
	assert.Equal(t, "primary", cfg.CalendarID)
	assert.Equal(t, 5, cfg.MaxIterations)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("organizer_zone: [unclosed\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestSaveNilConfig(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "config.yaml"), nil)
	assert.Error(t, err)
}
