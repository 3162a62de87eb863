package formatter

import (
	"fmt"
	"strings"
)

// ColumnarOptions configures columnar table rendering.
type ColumnarOptions struct {
	// NoColor disables color output.
	NoColor bool

	// TotalWidth is the total available width. If 0, uses terminal width.
	// A negative value disables shrinking.
	TotalWidth int

	// RowNumberStyle controls how row numbers are displayed:
	//   "numbered" - 1, 2, 3
	//   "none"     - no row number column (default)
	RowNumberStyle string
}

const (
	sepWidth    = 2
	minColWidth = 3
	maxColWidth = 40
)

// RenderTable renders spreadsheet rows, the first being the header, as an
// aligned table.
func RenderTable(rows [][]string, opts ColumnarOptions) string {
	if len(rows) == 0 {
		return ""
	}
	return RenderColumnarTable(rows[0], rows[1:], opts)
}

// RenderColumnarTable renders data as a multi-column table.
// columns: the column headers
// rows: the data rows (each row has values corresponding to columns)
func RenderColumnarTable(columns []string, rows [][]string, opts ColumnarOptions) string {
	if len(columns) == 0 {
		return ""
	}

	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = sanitizeCell(c)
	}
	cleanRows := make([][]string, len(rows))
	for i, row := range rows {
		clean := make([]string, len(cols))
		for j := range clean {
			if j < len(row) {
				clean[j] = sanitizeCell(row[j])
			}
		}
		cleanRows[i] = clean
	}

	totalWidth := opts.TotalWidth
	if totalWidth == 0 {
		totalWidth = TerminalWidth()
	}

	showRowNum := opts.RowNumberStyle == "numbered"
	rowNumWidth := 0
	if showRowNum {
		rowNumWidth = len(fmt.Sprintf("%d", len(rows))) + 2
	}

	availableWidth := totalWidth - rowNumWidth
	if showRowNum {
		availableWidth -= sepWidth
	}
	colWidths := calculateColumnWidths(cols, cleanRows, availableWidth)

	var b strings.Builder
	b.WriteString(renderHeader(cols, colWidths, rowNumWidth, showRowNum, opts.NoColor) + "\n")

	totalHeaderWidth := rowNumWidth
	if showRowNum {
		totalHeaderWidth += sepWidth
	}
	for i, w := range colWidths {
		totalHeaderWidth += w
		if i < len(colWidths)-1 {
			totalHeaderWidth += sepWidth
		}
	}
	separator := strings.Repeat("─", totalHeaderWidth)
	if !opts.NoColor {
		separator = separatorStyle.Render(separator)
	}
	b.WriteString(separator + "\n")

	for i, row := range cleanRows {
		b.WriteString(renderDataRow(i, row, colWidths, rowNumWidth, showRowNum, opts.NoColor) + "\n")
	}
	return b.String()
}

// calculateColumnWidths sizes each column to its widest cell, then shrinks
// when the table does not fit availableWidth: columns are capped at
// maxColWidth, then the widest column loses a cell at a time.
func calculateColumnWidths(columns []string, rows [][]string, availableWidth int) []int {
	numCols := len(columns)
	widths := make([]int, numCols)
	for i, col := range columns {
		widths[i] = displayWidth(col)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < numCols {
				if w := displayWidth(val); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	if availableWidth < 0 {
		return widths
	}
	usableWidth := availableWidth - (numCols-1)*sepWidth
	if sum(widths) <= usableWidth || usableWidth <= 0 {
		return widths
	}

	for i := range widths {
		if widths[i] > maxColWidth {
			widths[i] = maxColWidth
		}
	}
	for sum(widths) > usableWidth {
		maxIdx := 0
		for i := 1; i < numCols; i++ {
			if widths[i] > widths[maxIdx] {
				maxIdx = i
			}
		}
		if widths[maxIdx] <= minColWidth {
			break
		}
		widths[maxIdx]--
	}
	return widths
}

func sum(ns []int) int {
	total := 0
	for _, n := range ns {
		total += n
	}
	return total
}

func renderHeader(columns []string, widths []int, rowNumWidth int, showRowNum, noColor bool) string {
	sep := strings.Repeat(" ", sepWidth)
	parts := make([]string, 0, len(columns)+1)

	if showRowNum {
		header := padRight("#", rowNumWidth)
		if !noColor {
			header = headerStyle.Render(header)
		}
		parts = append(parts, header)
	}
	for i, col := range columns {
		header := padRight(col, widths[i])
		if !noColor {
			header = headerStyle.Render(header)
		}
		parts = append(parts, header)
	}
	return strings.TrimRight(strings.Join(parts, sep), " ")
}

// renderDataRow styles the two shortcut columns as keys and the menu path as values.
func renderDataRow(rowIndex int, values []string, widths []int, rowNumWidth int, showRowNum, noColor bool) string {
	sep := strings.Repeat(" ", sepWidth)
	parts := make([]string, 0, len(values)+1)

	if showRowNum {
		numStr := padRight(fmt.Sprintf("%d", rowIndex+1), rowNumWidth)
		if !noColor {
			numStr = keyStyle.Render(numStr)
		}
		parts = append(parts, numStr)
	}
	for i, val := range values {
		if i >= len(widths) {
			break
		}
		cell := padRight(val, widths[i])
		if !noColor {
			if i < 2 {
				cell = keyStyle.Render(cell)
			} else {
				cell = valueStyle.Render(cell)
			}
		}
		parts = append(parts, cell)
	}
	return strings.TrimRight(strings.Join(parts, sep), " ")
}
