package osascript

import "strings"

var literalEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Escape escapes backslashes and double quotes so s can sit inside an
// AppleScript string literal.
func Escape(s string) string {
	return literalEscaper.Replace(s)
}

// Quote returns s as a double-quoted AppleScript string literal.
func Quote(s string) string {
	return `"` + Escape(s) + `"`
}
