package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the protoplay CLI configuration.
type Config struct {
	Window        WindowConfig `yaml:"window"`
	ScreenshotDir string       `yaml:"screenshot_dir"`
	LogLevel      string       `yaml:"log_level"` // debug | info | warn | error
	Script        string       `yaml:"script"`
	ExitWhenDone  bool         `yaml:"exit_when_done"`
	Debug         bool         `yaml:"debug"`
}

// WindowConfig controls the player window.
type WindowConfig struct {
	Title   string `yaml:"title"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	ShowFPS bool   `yaml:"show_fps"`
}

// LoadConfig reads a YAML configuration file. An empty path yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Window.Title == "" {
		c.Window.Title = "protoplay"
	}
	if c.Window.Width <= 0 {
		c.Window.Width = 1280
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 720
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// level parses LogLevel. Unknown values fall back to info.
func (c *Config) level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
