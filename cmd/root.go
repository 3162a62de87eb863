// Package cmd implements the menusheet command line.
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/menusheet/internal/config"
	"github.com/oakwood-commons/menusheet/internal/sheet"
	"github.com/oakwood-commons/menusheet/pkg/core"
	"github.com/oakwood-commons/menusheet/pkg/logger"
	"github.com/oakwood-commons/menusheet/pkg/settings"
)

// Flag names shared between commands and config overrides.
const (
	flagConfigFile  = "config-file"
	flagCredentials = "credentials"
	flagSink        = "sink"
	flagOutputDir   = "output-dir"
	flagFilter      = "filter"
	flagLocale      = "locale"
	flagNoNotify    = "no-notify"
	flagDebug       = "debug"
	flagDryRun      = "dry-run"
	flagNoColor     = "no-color"
)

// rootOptions holds flag values and, after PersistentPreRunE, the merged
// configuration.
type rootOptions struct {
	configFile  string
	credentials string
	sink        string
	outputDir   string
	filter      string
	locale      string
	noNotify    bool
	debug       bool
	dryRun      bool
	noColor     bool

	cfg config.Config
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   settings.CliBinaryName,
		Short: "Export the frontmost app's menu shortcuts to a spreadsheet",
		Long: `menusheet reads every menu item of the frontmost macOS application through
the accessibility API, decodes its keyboard shortcut and writes the menu tree
to a new Google spreadsheet (or a CSV, Markdown, HTML file or terminal table).

The outcome is reported as a desktop notification. Orchestrated runs exit 0
even when extraction fails; the notification carries the failure.`,
		Example: "\n  menusheet\n  menusheet --sink csv --output-dir ~/Desktop\n  menusheet --filter 'has_shortcut'\n  menusheet extract -o json\n",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOrchestrated(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configFile, flagConfigFile, "", "path to a YAML, TOML or JSON config file")
	pf.StringVar(&opts.filter, flagFilter, "", "CEL expression selecting menu items, e.g. 'has_shortcut && depth <= 2'")
	pf.BoolVar(&opts.debug, flagDebug, false, "enable debug logging")
	pf.BoolVar(&opts.noColor, flagNoColor, false, "disable color output")

	f := rootCmd.Flags()
	f.StringVar(&opts.credentials, flagCredentials, "", "service-account key file (default: credentials.json next to the executable)")
	f.StringVar(&opts.sink, flagSink, "", "where to write: sheets|csv|markdown|html|table (default from config)")
	f.StringVar(&opts.outputDir, flagOutputDir, "", "directory for csv, markdown and html output")
	f.StringVar(&opts.locale, flagLocale, "", "notification language: ja|en (default from config)")
	f.BoolVar(&opts.noNotify, flagNoNotify, false, "print the outcome instead of posting a notification")
	f.BoolVar(&opts.dryRun, flagDryRun, false, "print the rows as a table instead of writing them")

	rootCmd.Version = settings.VersionInformation.String()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(newExtractCommand(opts))
	rootCmd.AddCommand(newConfigCommand(opts))
	rootCmd.AddCommand(newFilterCommand())
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

// Execute runs the command line with ctx as the root context.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// prepare loads configuration, applies flag overrides and installs the
// logger and run settings in the command context.
func (o *rootOptions) prepare(cmd *cobra.Command) error {
	cfg, err := loadMergedConfig(resolveConfigPath(o.configFile))
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd.Flags(), o, &cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	o.cfg = cfg

	level, _ := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Setup(logger.Options{Level: level, Format: cfg.Logging.Format})
	lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, lgr)
	ctx = settings.IntoContext(ctx, &settings.Run{
		MinLogLevel: level,
		NoNotify:    !cfg.Notify.Enabled,
		DryRun:      o.dryRun,
		NoColor:     o.noColor,
	})
	cmd.SetContext(ctx)
	return nil
}

// runOrchestrated performs the full extraction run. Only wiring problems and
// a failing notification are returned as errors.
func runOrchestrated(ctx context.Context, stdout io.Writer, opts *rootOptions) error {
	run := settings.FromContextOrDefault(ctx)
	cfg := opts.cfg

	filter, err := compileFilter(cfg.Extract.Filter)
	if err != nil {
		return err
	}
	sink, kind, err := buildSink(cfg, run, stdout)
	if err != nil {
		return err
	}
	runner := newRunner(cfg.Extract.OSAScript)

	engine, err := core.New(
		core.WithExtractor(buildWalker(cfg, runner)),
		core.WithSink(sink),
		core.WithNotifier(buildNotifier(cfg, run, runner, stdout)),
		core.WithFilter(filter),
		core.WithMessages(cfg.MessageCatalog()),
		core.WithHeader(cfg.Sink.Header),
	)
	if err != nil {
		return err
	}

	out, err := engine.Run(ctx)
	if err != nil {
		return err
	}
	if out.State == core.StateDone && kind != sheet.KindTable {
		fmt.Fprintln(stdout, out.URL)
	}
	return nil
}
