// Package sheet turns extracted menu items into spreadsheet rows and writes
// them to a new document through a Sink.
package sheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/oakwood-commons/menusheet/internal/menu"
)

// TitleTimeLayout formats the timestamp suffix of document titles.
const TitleTimeLayout = "2006-01-02_15-04-05"

// Header labels of the two fixed leading columns and the level columns.
type Header struct {
	Modifier string `json:"modifier" yaml:"modifier" toml:"modifier"`
	Key      string `json:"key" yaml:"key" toml:"key"`
	// Level is a fmt pattern taking the 1-based level number.
	Level string `json:"level" yaml:"level" toml:"level"`
}

// DefaultHeader returns the English header labels.
func DefaultHeader() Header {
	return Header{Modifier: "Modifier", Key: "Key", Level: "Level %d"}
}

func (h Header) withDefaults() Header {
	def := DefaultHeader()
	if h.Modifier == "" {
		h.Modifier = def.Modifier
	}
	if h.Key == "" {
		h.Key = def.Key
	}
	if h.Level == "" || !strings.Contains(h.Level, "%d") {
		h.Level = def.Level
	}
	return h
}

// Title names a new document "<app>_<YYYY-MM-DD_HH-MM-SS>".
func Title(appName string, at time.Time) string {
	return appName + "_" + at.Format(TitleTimeLayout)
}

// Rows builds the header row plus one row per item. Every row has
// 2 + max depth cells; shorter paths are padded with empty strings.
func Rows(items []menu.Item, h Header) [][]string {
	h = h.withDefaults()

	depth := 0
	for _, it := range items {
		if d := it.Depth(); d > depth {
			depth = d
		}
	}
	if depth == 0 {
		depth = 1
	}
	width := 2 + depth

	header := make([]string, 0, width)
	header = append(header, h.Modifier, h.Key)
	for i := 1; i <= depth; i++ {
		header = append(header, fmt.Sprintf(h.Level, i))
	}

	rows := make([][]string, 0, len(items)+1)
	rows = append(rows, header)
	for _, it := range items {
		row := make([]string, width)
		row[0] = it.Modifier
		row[1] = it.Key
		copy(row[2:], it.Path)
		rows = append(rows, row)
	}
	return rows
}
