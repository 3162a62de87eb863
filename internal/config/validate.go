package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oakwood-commons/menusheet/internal/sheet"
	"github.com/oakwood-commons/menusheet/pkg/logger"
)

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch c.Logging.Format {
	case logger.FormatJSON, logger.FormatConsole:
	default:
		errs = append(errs, fmt.Errorf("logging.format: unknown format %q (expected json or console)", c.Logging.Format))
	}

	if strings.TrimSpace(c.Extract.OSAScript) == "" {
		errs = append(errs, errors.New("extract.osascript: must not be empty"))
	}
	if c.Extract.FrontmostTimeout <= 0 {
		errs = append(errs, fmt.Errorf("extract.frontmost_timeout: must be positive, got %s", c.Extract.FrontmostTimeout))
	}
	if c.Extract.MenuTimeout <= 0 {
		errs = append(errs, fmt.Errorf("extract.menu_timeout: must be positive, got %s", c.Extract.MenuTimeout))
	}
	if c.Notify.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("notify.timeout: must be positive, got %s", c.Notify.Timeout))
	}

	if _, err := sheet.ParseKind(c.Sink.Kind); err != nil {
		errs = append(errs, fmt.Errorf("sink.kind: %w", err))
	}

	if _, err := ParseLocale(c.Messages.Locale); err != nil {
		errs = append(errs, fmt.Errorf("messages.locale: %w", err))
	}
	for id := range c.Messages.Overrides {
		if !knownMessage(MessageID(id)) {
			errs = append(errs, fmt.Errorf("messages.overrides: unknown message %q", id))
		}
	}

	return errors.Join(errs...)
}
