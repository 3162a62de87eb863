package menu

import "strconv"

// GlyphCode identifies a non-printable shortcut key (AXMenuItemCmdGlyph).
type GlyphCode int

// glyphNames follows the kMenu*Glyph constants of Carbon's Menus.h.
var glyphNames = map[GlyphCode]string{
	2:   "Tab",
	4:   "Enter",
	9:   "Space",
	10:  "⌦",
	11:  "Return",
	23:  "⌫",
	27:  "Escape",
	28:  "Clear",
	98:  "Page Up",
	100: "←",
	101: "→",
	104: "↑",
	106: "↓",
	107: "Page Down",
	111: "F1",
	112: "F2",
	113: "F3",
	114: "F4",
	115: "F5",
	116: "F6",
	117: "F7",
	118: "F8",
	119: "F9",
	120: "F10",
	121: "F11",
	122: "F12",
	135: "F13",
	136: "F14",
	137: "F15",
	140: "Eject",
}

// String returns the key name, or "Glyph(<code>)" for codes not in the table.
func (g GlyphCode) String() string {
	if name, ok := glyphNames[g]; ok {
		return name
	}
	return "Glyph(" + strconv.Itoa(int(g)) + ")"
}

// DecodeGlyph maps a glyph code to a key name. It never fails.
func DecodeGlyph(code int) string {
	return GlyphCode(code).String()
}
