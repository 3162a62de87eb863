package formatter

import "strings"

// RenderTSV renders rows as tab-separated lines. Tabs and newlines inside
// cells are replaced so the column count stays intact.
func RenderTSV(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(sanitizeCell(cell))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
