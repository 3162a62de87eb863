// Package config defines the menusheet configuration file, its embedded
// defaults and the user-facing message catalogs.
package config

import (
	"github.com/oakwood-commons/menusheet/internal/sheet"
)

// Config is the merged configuration.
type Config struct {
	App      AppConfig      `yaml:"app" json:"app" toml:"app"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging" toml:"logging"`
	Extract  ExtractConfig  `yaml:"extract" json:"extract" toml:"extract"`
	Notify   NotifyConfig   `yaml:"notify" json:"notify" toml:"notify"`
	Sink     SinkConfig     `yaml:"sink" json:"sink" toml:"sink"`
	Messages MessagesConfig `yaml:"messages" json:"messages" toml:"messages"`
}

// AppConfig describes the tool in help output.
type AppConfig struct {
	Name        string `yaml:"name" json:"name" toml:"name"`
	Description string `yaml:"description" json:"description" toml:"description"`
}

// LoggingConfig selects the log level and encoding.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level" toml:"level"`
	Format string `yaml:"format" json:"format" toml:"format"`
}

// ExtractConfig controls the osascript calls.
type ExtractConfig struct {
	OSAScript        string   `yaml:"osascript" json:"osascript" toml:"osascript"`
	FrontmostTimeout Duration `yaml:"frontmost_timeout" json:"frontmost_timeout" toml:"frontmost_timeout"`
	MenuTimeout      Duration `yaml:"menu_timeout" json:"menu_timeout" toml:"menu_timeout"`
	Filter           string   `yaml:"filter" json:"filter" toml:"filter"`
}

// NotifyConfig controls the desktop notification.
type NotifyConfig struct {
	Enabled bool     `yaml:"enabled" json:"enabled" toml:"enabled"`
	Title   string   `yaml:"title" json:"title" toml:"title"`
	Timeout Duration `yaml:"timeout" json:"timeout" toml:"timeout"`
}

// SinkConfig selects where the rows are written.
type SinkConfig struct {
	Kind        string       `yaml:"kind" json:"kind" toml:"kind"`
	Credentials string       `yaml:"credentials" json:"credentials" toml:"credentials"`
	OutputDir   string       `yaml:"output_dir" json:"output_dir" toml:"output_dir"`
	ShareWith   []string     `yaml:"share_with" json:"share_with" toml:"share_with"`
	Header      sheet.Header `yaml:"header" json:"header" toml:"header"`
}

// MessagesConfig picks the notification catalog and per-message overrides.
type MessagesConfig struct {
	Locale    string            `yaml:"locale" json:"locale" toml:"locale"`
	Overrides map[string]string `yaml:"overrides" json:"overrides" toml:"overrides"`
}
