package sheet

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrWriteFailed wraps every error returned by a Sink.
var ErrWriteFailed = errors.New("spreadsheet write failed")

// Sink persists rows as a new document and returns where it can be opened.
type Sink interface {
	CreateAndWrite(ctx context.Context, title string, rows [][]string) (string, error)
}

// CredentialedSink is implemented by sinks that authenticate with a
// credentials file before writing.
type CredentialedSink interface {
	Sink
	CredentialsPath() string
}

// Kind names a sink implementation in configuration and flags.
type Kind string

// Sink kinds.
const (
	KindSheets   Kind = "sheets"
	KindCSV      Kind = "csv"
	KindMarkdown Kind = "markdown"
	KindHTML     Kind = "html"
	KindTable    Kind = "table"
)

var kinds = map[Kind]struct{}{
	KindSheets:   {},
	KindCSV:      {},
	KindMarkdown: {},
	KindHTML:     {},
	KindTable:    {},
}

// Kinds lists valid sink kinds in sorted order.
func Kinds() []string {
	out := make([]string, 0, len(kinds))
	for k := range kinds {
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}

// ParseKind validates a sink kind name. "md" is accepted for markdown and
// "google" for sheets.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case "md":
		k = KindMarkdown
	case "google", "gsheets":
		k = KindSheets
	}
	if _, ok := kinds[k]; !ok {
		return "", fmt.Errorf("unknown sink %q (expected one of %s)", s, strings.Join(Kinds(), ", "))
	}
	return k, nil
}

func writeFailed(stage string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrWriteFailed, stage, err)
}
