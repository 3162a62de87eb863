package sheet

import (
	"fmt"
	"io"
	"os"

	"github.com/oakwood-commons/menusheet/internal/formatter"
)

// Options selects and configures a Sink.
type Options struct {
	Kind        Kind
	Credentials string
	ShareWith   []string
	OutputDir   string
	Out         io.Writer
	Table       formatter.ColumnarOptions
}

// New returns the sink for opts.Kind.
func New(opts Options) (Sink, error) {
	switch opts.Kind {
	case KindSheets, "":
		return NewSheetsSink(opts.Credentials, opts.ShareWith), nil
	case KindCSV:
		return CSVSink{Dir: opts.OutputDir}, nil
	case KindMarkdown:
		return MarkdownSink{Dir: opts.OutputDir}, nil
	case KindHTML:
		return MarkdownSink{Dir: opts.OutputDir, HTML: true}, nil
	case KindTable:
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		return TableSink{Out: out, Options: opts.Table}, nil
	default:
		return nil, fmt.Errorf("unknown sink %q", opts.Kind)
	}
}
