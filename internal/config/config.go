// Package config loads the nomad settings file.
//
// The file is JSON. A missing file is not an error: defaults apply. Command
// line flags are layered on top by the caller.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	appDir   = "nomad"
	fileName = "config.json"
)

// Config holds every tunable of the editor.
type Config struct {
	Provider        string   `json:"provider"`
	Model           string   `json:"model"`
	Temperature     float64  `json:"temperature"`
	SystemPrompt    string   `json:"system_prompt"`
	Timeout         Duration `json:"timeout"`
	LogFile         string   `json:"log_file"`
	LogLevel        string   `json:"log_level"`
	ShowLineNumbers bool     `json:"show_line_numbers"`
	TabWidth        int      `json:"tab_width"`
}

// Duration is a time.Duration written as a Go duration string ("90s").
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"30s\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Provider:    "echo",
		Temperature: 0.7,
		Timeout:     Duration(60 * time.Second),
		LogLevel:    "info",
		TabWidth:    4,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/nomad/config.json (or the platform
// equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// Load reads path over the defaults. A missing file yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

var validProviders = map[string]bool{
	"echo":      true,
	"openai":    true,
	"anthropic": true,
	"ollama":    true,
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if !validProviders[strings.ToLower(c.Provider)] {
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature %v out of range [0,2]", c.Temperature)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("negative timeout %s", c.Timeout.Std())
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.TabWidth < 1 || c.TabWidth > 16 {
		return fmt.Errorf("tab width %d out of range [1,16]", c.TabWidth)
	}
	return nil
}
