package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/workbench/internal/plugins/counter"
	"github.com/alexisbeaulieu97/workbench/internal/plugins/formatter"
	"github.com/alexisbeaulieu97/workbench/internal/plugins/renamer"
)

// Defaults returns the configuration used when no file exists.
func Defaults() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Preferences.Backend == "" {
		cfg.Preferences.Backend = "file"
	}
	if cfg.Preferences.Path == "" {
		name := "preferences.json"
		if cfg.Preferences.Backend == "sqlite" {
			name = "preferences.db"
		}
		cfg.Preferences.Path = filepath.Join(DefaultDir(), name)
	}
	cfg.Preferences.Path = ExpandPath(cfg.Preferences.Path)
	cfg.I18n.Dir = ExpandPath(cfg.I18n.Dir)
	if cfg.I18n.Bundle == "" {
		cfg.I18n.Bundle = "strings"
	}
	if len(cfg.Locales) == 0 {
		cfg.Locales = []string{"en", "zh-CN", "zh-TW", "ja", "es", "de", "fr", "pt"}
	}
	if cfg.Theme.Default == "" {
		cfg.Theme.Default = "light"
	}
	if len(cfg.Plugins) == 0 {
		cfg.Plugins = []string{counter.Implementation, formatter.Implementation, renamer.Implementation}
	}
	if len(cfg.Counter.Extensions) == 0 {
		cfg.Counter.Extensions = []string{".go", ".java", ".py", ".js", ".ts", ".c", ".h", ".cpp", ".xml", ".html"}
	}
	if len(cfg.Counter.ExcludeDirs) == 0 {
		cfg.Counter.ExcludeDirs = []string{".git", ".idea", ".vscode", "node_modules", "target", "build", "dist", "vendor"}
	}
	if cfg.Counter.Workers == 0 {
		cfg.Counter.Workers = 4
	}
}

// DefaultDir is the directory holding the host's configuration and preferences.
func DefaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "workbench")
	}
	return ".workbench"
}

// DefaultPath is the configuration file consulted when --config is not given.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
