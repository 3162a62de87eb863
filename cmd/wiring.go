package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oakwood-commons/menusheet/internal/cel"
	"github.com/oakwood-commons/menusheet/internal/config"
	"github.com/oakwood-commons/menusheet/internal/formatter"
	"github.com/oakwood-commons/menusheet/internal/menu"
	"github.com/oakwood-commons/menusheet/internal/notify"
	"github.com/oakwood-commons/menusheet/internal/osascript"
	"github.com/oakwood-commons/menusheet/internal/sheet"
	"github.com/oakwood-commons/menusheet/pkg/core"
	"github.com/oakwood-commons/menusheet/pkg/logger"
	"github.com/oakwood-commons/menusheet/pkg/settings"
)

// Replaced in tests.
var (
	newRunner = func(binary string) osascript.Runner {
		return osascript.NewExecRunner(binary)
	}
	osExecutable = os.Executable
)

func buildWalker(cfg config.Config, runner osascript.Runner) *menu.Walker {
	return menu.NewWalker(runner,
		menu.WithFrontmostTimeout(cfg.Extract.FrontmostTimeout.Std()),
		menu.WithMenuTimeout(cfg.Extract.MenuTimeout.Std()),
	)
}

// compileFilter returns nil when expr is empty.
func compileFilter(expr string) (core.Filter, error) {
	f, err := cel.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid --filter: %w", err)
	}
	if f == nil {
		return nil, nil
	}
	return f, nil
}

// resolveCredentialsPath returns configured, or credentials.json in the
// directory of the running executable.
func resolveCredentialsPath(configured string) string {
	if configured != "" {
		return configured
	}
	exe, err := osExecutable()
	if err != nil {
		return config.DefaultCredentialsFile
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), config.DefaultCredentialsFile)
}

func tableOptions(run *settings.Run) formatter.ColumnarOptions {
	return formatter.ColumnarOptions{NoColor: run.NoColor || !formatter.StdoutIsTerminal()}
}

// buildSink selects the configured sink; dry runs always print a table.
func buildSink(cfg config.Config, run *settings.Run, stdout io.Writer) (sheet.Sink, sheet.Kind, error) {
	kind, err := sheet.ParseKind(cfg.Sink.Kind)
	if err != nil {
		return nil, "", err
	}
	if run.DryRun {
		kind = sheet.KindTable
	}
	s, err := sheet.New(sheet.Options{
		Kind:        kind,
		Credentials: resolveCredentialsPath(cfg.Sink.Credentials),
		ShareWith:   cfg.Sink.ShareWith,
		OutputDir:   cfg.Sink.OutputDir,
		Out:         stdout,
		Table:       tableOptions(run),
	})
	if err != nil {
		return nil, "", err
	}
	return s, kind, nil
}

// buildNotifier posts through osascript unless notifications are disabled,
// in which case the message is printed.
func buildNotifier(cfg config.Config, run *settings.Run, runner osascript.Runner, stdout io.Writer) notify.Notifier {
	if run.NoNotify || run.DryRun {
		return notify.Func(func(ctx context.Context, message string) error {
			logger.FromContext(ctx).V(1).Info("notification suppressed", "text", message)
			_, err := fmt.Fprintln(stdout, message)
			return err
		})
	}
	return notify.NewOSAScript(runner, cfg.Notify.Title, cfg.Notify.Timeout.Std())
}
