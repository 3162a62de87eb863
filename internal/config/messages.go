package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// MessageID names one user-facing notification.
type MessageID string

// Notification messages. {app} is replaced with the frontmost app name.
const (
	MsgMissingCredentials  MessageID = "missing_credentials"
	MsgNoItems             MessageID = "no_items"
	MsgWritten             MessageID = "written"
	MsgAccessibilityDenied MessageID = "accessibility_denied"
	MsgMenuBarNotFound     MessageID = "menu_bar_not_found"
	MsgExtractionFailed    MessageID = "extraction_failed"
	MsgWriteFailed         MessageID = "write_failed"
)

// Placeholders substituted into message texts.
const (
	// AppPlaceholder is the application name.
	AppPlaceholder = "{app}"
	// FilePlaceholder is the base name of the credentials file.
	FilePlaceholder = "{file}"
)

// DefaultCredentialsFile is the key file name looked up next to the executable.
const DefaultCredentialsFile = "credentials.json"

// Locale selects a built-in catalog.
type Locale string

// Built-in locales.
const (
	LocaleJA Locale = "ja"
	LocaleEN Locale = "en"
)

var catalogs = map[Locale]map[MessageID]string{
	LocaleJA: {
		MsgMissingCredentials:  "{file} が見つかりません",
		MsgNoItems:             "メニュー項目が見つかりません: {app}",
		MsgWritten:             "{app} のメニューをスプレッドシートに書き込みました",
		MsgAccessibilityDenied: "アクセシビリティ権限を許可してください",
		MsgMenuBarNotFound:     "メニューバーが見つかりません: {app}",
		MsgExtractionFailed:    "メニュー取得に失敗しました",
		MsgWriteFailed:         "スプレッドシートへの書き込みに失敗しました",
	},
	LocaleEN: {
		MsgMissingCredentials:  "{file} not found",
		MsgNoItems:             "No menu items found: {app}",
		MsgWritten:             "Wrote the {app} menu to a spreadsheet",
		MsgAccessibilityDenied: "Allow accessibility access for the terminal or launcher",
		MsgMenuBarNotFound:     "Menu bar not found: {app}",
		MsgExtractionFailed:    "Failed to read the menu",
		MsgWriteFailed:         "Failed to write the spreadsheet",
	},
}

// ParseLocale validates a locale name.
func ParseLocale(s string) (Locale, error) {
	l := Locale(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := catalogs[l]; !ok {
		names := make([]string, 0, len(catalogs))
		for k := range catalogs {
			names = append(names, string(k))
		}
		sort.Strings(names)
		return "", fmt.Errorf("unknown locale %q (expected one of %s)", s, strings.Join(names, ", "))
	}
	return l, nil
}

func knownMessage(id MessageID) bool {
	_, ok := catalogs[LocaleEN][id]
	return ok
}

// Messages renders notification texts.
type Messages struct {
	texts map[MessageID]string
}

// NewMessages returns the catalog for locale with overrides applied. An
// unknown locale falls back to Japanese.
func NewMessages(locale string, overrides map[string]string) Messages {
	l, err := ParseLocale(locale)
	if err != nil {
		l = LocaleJA
	}
	texts := make(map[MessageID]string, len(catalogs[l]))
	for id, text := range catalogs[l] {
		texts[id] = text
	}
	for id, text := range overrides {
		if knownMessage(MessageID(id)) && text != "" {
			texts[MessageID(id)] = text
		}
	}
	return Messages{texts: texts}
}

// MessageCatalog builds the catalog configured in c.
func (c Config) MessageCatalog() Messages {
	return NewMessages(c.Messages.Locale, c.Messages.Overrides)
}

// Format returns message id with {app} replaced by appName and {file} by
// the default credentials file name.
func (m Messages) Format(id MessageID, appName string) string {
	return m.FormatFile(id, appName, "")
}

// FormatFile is Format with {file} replaced by the base name of path, or by
// DefaultCredentialsFile when path is empty.
func (m Messages) FormatFile(id MessageID, appName, path string) string {
	text, ok := m.texts[id]
	if !ok {
		text, ok = catalogs[LocaleJA][id]
		if !ok {
			return string(id)
		}
	}
	file := DefaultCredentialsFile
	if path != "" {
		file = filepath.Base(path)
	}
	return strings.NewReplacer(AppPlaceholder, appName, FilePlaceholder, file).Replace(text)
}
