package menu

import (
	"strconv"
	"strings"
	"unicode"
)

// Field layout of an item line written by the walker script.
const (
	fieldModifier = iota
	fieldChar
	fieldGlyph
	fieldPath

	// minFields is the three attribute fields plus at least one label.
	minFields = fieldPath + 1
)

// Parse turns walker output into a Result. The first line is the application
// name; every following line is "mask\tchar\tglyph\tlabel1\t...\tlabelN".
// Blank lines and lines with fewer than four fields are dropped. Only line
// breaks are trimmed from the end of the output, so the last line keeps its
// trailing empty labels like every other line.
func Parse(raw string) (Result, error) {
	raw = strings.TrimRight(strings.TrimLeftFunc(raw, unicode.IsSpace), "\r\n")
	lines := strings.Split(raw, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return Result{}, ErrEmptyOutput
	}

	res := Result{
		AppName: strings.TrimSpace(lines[0]),
		Items:   make([]Item, 0, len(lines)-1),
	}
	for _, line := range lines[1:] {
		if it, ok := parseLine(line); ok {
			res.Items = append(res.Items, it)
		}
	}
	return res, nil
}

func parseLine(line string) (Item, bool) {
	line = strings.TrimSuffix(line, "\r")
	if strings.TrimSpace(line) == "" {
		return Item{}, false
	}
	fields := strings.Split(line, "\t")
	if len(fields) < minFields {
		return Item{}, false
	}

	modRaw, charRaw, glyphRaw := fields[fieldModifier], fields[fieldChar], fields[fieldGlyph]
	it := Item{Path: fields[fieldPath:]}

	// A mask without a key is meaningless and is dropped.
	if charRaw == "" && glyphRaw == "" {
		return it, true
	}
	if modRaw != "" {
		if mask, err := strconv.Atoi(strings.TrimSpace(modRaw)); err == nil {
			it.Modifier = DecodeModifiers(mask)
		}
	}
	switch {
	case charRaw != "":
		it.Key = charRaw
	default:
		if code, err := strconv.Atoi(strings.TrimSpace(glyphRaw)); err == nil {
			it.Key = DecodeGlyph(code)
		} else {
			it.Key = "Glyph(" + glyphRaw + ")"
		}
	}
	return it, true
}
