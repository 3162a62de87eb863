package config

import (
	_ "embed"
	"fmt"

	"github.com/oakwood-commons/menusheet/pkg/loader"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// DefaultConfigYAML returns a copy of the embedded default config.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default decodes the embedded defaults. Each call returns a fresh value.
func Default() (Config, error) {
	var cfg Config
	if len(embeddedDefaultConfig) == 0 {
		return cfg, fmt.Errorf("embedded default config is empty")
	}
	if err := loader.Decode(embeddedDefaultConfig, loader.FormatYAML, &cfg, loader.Strict()); err != nil {
		return cfg, fmt.Errorf("decode embedded default config: %w", err)
	}
	return cfg, nil
}
