package sheet

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// utf8BOM makes spreadsheet applications detect UTF-8 in CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVSink writes each document as <Dir>/<title>.csv.
type CSVSink struct {
	Dir string
}

// CreateAndWrite implements Sink.
func (s CSVSink) CreateAndWrite(_ context.Context, title string, rows [][]string) (string, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	if err := WriteCSV(&buf, rows, ','); err != nil {
		return "", writeFailed("encode csv", err)
	}
	return writeDocument(s.Dir, title, ".csv", buf.Bytes())
}

// WriteCSV encodes rows with the given field separator.
func WriteCSV(w io.Writer, rows [][]string, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// writeDocument creates dir/title+ext without overwriting and returns a file:// URL.
func writeDocument(dir, title, ext string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", writeFailed("create output directory", err)
	}
	path := filepath.Join(dir, safeFileName(title)+ext)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", writeFailed("create "+ext+" file", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", writeFailed("write "+ext+" file", err)
	}
	if err := f.Close(); err != nil {
		return "", writeFailed("close "+ext+" file", err)
	}
	return fileURL(path), nil
}

func fileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

var fileNameReplacer = strings.NewReplacer("/", "-", "\\", "-", ":", "-", "\x00", "")

func safeFileName(title string) string {
	name := strings.TrimSpace(fileNameReplacer.Replace(title))
	if name == "" || name == "." || name == ".." {
		return fmt.Sprintf("menu_%d", len(title))
	}
	return name
}
