package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/menusheet/internal/formatter"
	"github.com/oakwood-commons/menusheet/internal/limiter"
	"github.com/oakwood-commons/menusheet/internal/menu"
	"github.com/oakwood-commons/menusheet/internal/sheet"
	"github.com/oakwood-commons/menusheet/pkg/loader"
	"github.com/oakwood-commons/menusheet/pkg/settings"
)

// Output formats of the extract command.
const (
	outputTable = "table"
	outputCSV   = "csv"
	outputTSV   = "tsv"
	outputJSON  = "json"
	outputYAML  = "yaml"
	outputRaw   = "raw"
)

var extractOutputs = []string{outputTable, outputCSV, outputTSV, outputJSON, outputYAML, outputRaw}

type extractOptions struct {
	output string
	from   string
	window limiter.Config
}

func newExtractCommand(root *rootOptions) *cobra.Command {
	opts := &extractOptions{}
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Print the frontmost app's menu items without writing a spreadsheet",
		Long: `Extract runs the menu walker (or parses a saved raw dump with --from) and
prints the items. Unlike the default command, failures exit non-zero.

-o raw prints the walker output unchanged; it is the input format of --from.
The --filter expression and the --limit, --offset and --tail window do not
apply to raw output. The window is taken after filtering.`,
		Example: "\n  menusheet extract\n  menusheet extract -o raw > safari.txt\n  menusheet extract --from safari.txt -o json --filter 'has_shortcut'\n",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExtract(cmd, root, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputTable, "output format: "+strings.Join(extractOutputs, "|"))
	cmd.Flags().StringVar(&opts.from, "from", "", "parse a raw dump from this file ('-' for stdin) instead of running osascript")
	cmd.Flags().IntVar(&opts.window.Limit, "limit", 0, "print at most this many items (0 = all)")
	cmd.Flags().IntVar(&opts.window.Offset, "offset", 0, "skip this many items")
	cmd.Flags().IntVar(&opts.window.Tail, "tail", 0, "print only the last N items")
	return cmd
}

func runExtract(cmd *cobra.Command, root *rootOptions, opts *extractOptions) error {
	if !validOutput(opts.output) {
		return fmt.Errorf("unknown output %q (expected one of %s)", opts.output, strings.Join(extractOutputs, ", "))
	}
	if err := opts.window.Validate(); err != nil {
		return err
	}
	cfg := root.cfg
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	filter, err := compileFilter(cfg.Extract.Filter)
	if err != nil {
		return err
	}

	raw, err := readRaw(cmd, opts.from, root)
	if err != nil {
		return err
	}
	if opts.output == outputRaw {
		_, err := io.WriteString(out, raw)
		return err
	}

	res, err := menu.Parse(raw)
	if err != nil {
		return err
	}
	if filter != nil {
		if res.Items, err = filter.Apply(res.Items); err != nil {
			return err
		}
	}

	res.Items = limiter.Apply(opts.window, res.Items)

	rows := sheet.Rows(res.Items, cfg.Sink.Header)
	switch opts.output {
	case outputTable:
		_, err = io.WriteString(out, formatter.RenderTable(rows, tableOptions(settings.FromContextOrDefault(ctx))))
	case outputCSV:
		err = sheet.WriteCSV(out, rows, ',')
	case outputTSV:
		_, err = io.WriteString(out, formatter.RenderTSV(rows))
	case outputJSON, outputYAML:
		var data []byte
		data, err = loader.Encode(res, loader.Format(opts.output))
		if err == nil {
			_, err = out.Write(data)
		}
	}
	return err
}

func validOutput(o string) bool {
	for _, v := range extractOutputs {
		if o == v {
			return true
		}
	}
	return false
}

// readRaw returns walker output from --from or from a live osascript run.
func readRaw(cmd *cobra.Command, from string, root *rootOptions) (string, error) {
	switch from {
	case "":
		return buildWalker(root.cfg, newRunner(root.cfg.Extract.OSAScript)).RawExtract(cmd.Context())
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(from)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}
