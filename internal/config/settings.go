package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/schism-dev/schism/internal/defs"
)

// Settings is the tool configuration read from schism.yaml. A missing
// file yields defaults; missing fields are filled in individually.
type Settings struct {
	Server ServerSettings `yaml:"server"`
	Log    LogSettings    `yaml:"log"`
	Panel  PanelSettings  `yaml:"panel"`
}

// ServerSettings configures the mock HTTP server.
type ServerSettings struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// Addr returns the host:port listen address.
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// TLS reports whether both certificate and key paths are configured.
func (s ServerSettings) TLS() bool {
	return s.CertFile != "" && s.KeyFile != ""
}

// LogSettings configures slog output.
type LogSettings struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// SlogLevel maps the configured level name to a slog.Level. Unknown
// names fall back to info.
func (l LogSettings) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// PanelSettings configures the control panel TUI.
type PanelSettings struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	NoColor         bool          `yaml:"no_color"`
}

// DefaultSettings returns the settings used when schism.yaml is absent:
// loopback-only on port 8000, plain text logs.
func DefaultSettings() *Settings {
	return &Settings{
		Server: ServerSettings{Host: "127.0.0.1", Port: 8000},
		Log:    LogSettings{Level: "info", Format: "text"},
		Panel:  PanelSettings{RefreshInterval: time.Second},
	}
}

// LoadSettings reads schism.yaml from dir, applying defaults for the
// whole file or any missing field.
func LoadSettings(dir string) (*Settings, error) {
	s := DefaultSettings()

	path := filepath.Join(dir, defs.SettingsYAML)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings read: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	s.applyDefaults()
	return s, nil
}

func (s *Settings) applyDefaults() {
	def := DefaultSettings()
	if s.Server.Host == "" {
		s.Server.Host = def.Server.Host
	}
	if s.Server.Port == 0 {
		s.Server.Port = def.Server.Port
	}
	if s.Log.Level == "" {
		s.Log.Level = def.Log.Level
	}
	if s.Log.Format == "" {
		s.Log.Format = def.Log.Format
	}
	if s.Panel.RefreshInterval <= 0 {
		s.Panel.RefreshInterval = def.Panel.RefreshInterval
	}
}
