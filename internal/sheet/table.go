package sheet

import (
	"context"
	"io"

	"github.com/oakwood-commons/menusheet/internal/formatter"
)

// TableSink prints the rows as a terminal table instead of creating a document.
type TableSink struct {
	Out     io.Writer
	Options formatter.ColumnarOptions
}

// CreateAndWrite implements Sink. It returns "stdout" as the location.
func (s TableSink) CreateAndWrite(_ context.Context, title string, rows [][]string) (string, error) {
	if _, err := io.WriteString(s.Out, title+"\n\n"+formatter.RenderTable(rows, s.Options)); err != nil {
		return "", writeFailed("print table", err)
	}
	return "stdout", nil
}
