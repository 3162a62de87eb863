package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/oakwood-commons/menusheet/internal/config"
	"github.com/oakwood-commons/menusheet/pkg/loader"
	"github.com/oakwood-commons/menusheet/pkg/settings"
)

// configFileNames are probed in order inside the config directory.
var configFileNames = []string{"config.yaml", "config.yml", "config.toml", "config.json"}

// resolveConfigPath returns the explicit path if set, otherwise the first
// existing config file in $XDG_CONFIG_HOME/menusheet or ~/.config/menusheet.
// An empty result means defaults only.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dir = filepath.Join(xdg, settings.CliBinaryName)
	} else if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".config", settings.CliBinaryName)
	}
	if dir == "" {
		return ""
	}
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// loadMergedConfig decodes the embedded defaults and overlays cfgPath when set.
func loadMergedConfig(cfgPath string) (config.Config, error) {
	cfg, err := config.Default()
	if err != nil {
		return cfg, fmt.Errorf("load default config: %w", err)
	}
	if cfgPath == "" {
		return cfg, nil
	}
	if _, err := loader.DecodeFile(cfgPath, &cfg, loader.Strict()); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", cfgPath, err)
	}
	return cfg, nil
}

// applyFlagOverrides copies explicitly set flags over the config values.
func applyFlagOverrides(flags *pflag.FlagSet, opts *rootOptions, cfg *config.Config) {
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}
	if changed(flagCredentials) {
		cfg.Sink.Credentials = opts.credentials
	}
	if changed(flagSink) {
		cfg.Sink.Kind = opts.sink
	}
	if changed(flagOutputDir) {
		cfg.Sink.OutputDir = opts.outputDir
	}
	if changed(flagFilter) {
		cfg.Extract.Filter = opts.filter
	}
	if changed(flagLocale) {
		cfg.Messages.Locale = opts.locale
	}
	if changed(flagNoNotify) && opts.noNotify {
		cfg.Notify.Enabled = false
	}
	if opts.debug {
		cfg.Logging.Level = "debug"
	}
}
