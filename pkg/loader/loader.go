// Package loader decodes YAML, TOML and JSON documents onto Go values,
// detecting the format from the file extension or, failing that, from the
// content.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a supported document format.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatYAML, FormatTOML, FormatJSON}
}

// ParseFormat maps a format or extension name ("yml", ".toml") to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected yaml, toml or json)", name)
	}
}

// FormatError reports a document that could not be decoded.
type FormatError struct {
	Path   string
	Format Format
	Err    error
}

func (e *FormatError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid %s in %s: %v", strings.ToUpper(string(e.Format)), e.Path, e.Err)
	}
	return fmt.Sprintf("invalid %s: %v", strings.ToUpper(string(e.Format)), e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

type options struct {
	strict bool
}

// Option configures decoding.
type Option func(*options)

// Strict rejects keys that do not map to a field of the target struct.
func Strict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// DetectFormat picks the format for a document. A known extension on path
// wins; otherwise the content is sniffed, YAML being the fallback.
func DetectFormat(path string, data []byte) Format {
	if ext := filepath.Ext(path); ext != "" {
		if f, err := ParseFormat(ext); err == nil {
			return f
		}
	}
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("{")) {
		return FormatJSON
	}
	if isLikelyTOML(string(trimmed)) {
		return FormatTOML
	}
	return FormatYAML
}

// Decode decodes data in the given format onto into, which must be a
// pointer. Fields absent from the document keep their current values, so
// into can be pre-populated with defaults. An empty document is a no-op.
func Decode(data []byte, format Format, into any, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var err error
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(o.strict)
		err = dec.Decode(into)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		if o.strict {
			dec.DisallowUnknownFields()
		}
		err = dec.Decode(into)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if o.strict {
			dec.DisallowUnknownFields()
		}
		err = dec.Decode(into)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return &FormatError{Format: format, Err: err}
	}
	return nil
}

// DecodeFile reads path and decodes it onto into, returning the detected format.
func DecodeFile(path string, into any, opts ...Option) (Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	format := DetectFormat(path, data)
	if err := Decode(data, format, into, opts...); err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = path
		}
		return format, err
	}
	return format, nil
}

// Encode renders v in the given format.
func Encode(v any, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(v); err != nil {
			return nil, err
		}
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return buf.Bytes(), nil
}

var (
	// [section], [[array]], ["quoted"], [dotted.key]; excludes JSON arrays like [1, 2].
	tomlSectionPattern = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	// key = value, as opposed to YAML's key: value.
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// isLikelyTOML reports whether input has TOML section headers or mostly
// key = value lines.
func isLikelyTOML(input string) bool {
	sections, keyValues, nonEmpty := 0, 0, 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if tomlSectionPattern.MatchString(line) {
			sections++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValues++
		}
	}
	if sections > 0 {
		return true
	}
	return nonEmpty > 0 && keyValues > nonEmpty/2
}
