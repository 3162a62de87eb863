package menu

import "strings"

// ModifierMask is the AXMenuItemCmdModifiers bit set reported for a menu item.
type ModifierMask uint8

// Bits of ModifierMask. Command is implied unless ModNoCommand is set.
const (
	ModShift     ModifierMask = 1 << 0
	ModOption    ModifierMask = 1 << 1
	ModControl   ModifierMask = 1 << 2
	ModNoCommand ModifierMask = 1 << 3

	modifierBits = ModShift | ModOption | ModControl | ModNoCommand
)

// Names used when rendering a mask.
const (
	ModNameCommand = "Cmd"
	ModNameControl = "Ctrl"
	ModNameShift   = "Shift"
	ModNameOption  = "Opt"
)

// Has reports whether all bits of flag are set in m.
func (m ModifierMask) Has(flag ModifierMask) bool {
	return m&flag == flag
}

// String renders m as "+"-joined names in Cmd, Ctrl, Shift, Opt order.
func (m ModifierMask) String() string {
	m &= modifierBits
	parts := make([]string, 0, 4)
	if !m.Has(ModNoCommand) {
		parts = append(parts, ModNameCommand)
	}
	if m.Has(ModControl) {
		parts = append(parts, ModNameControl)
	}
	if m.Has(ModShift) {
		parts = append(parts, ModNameShift)
	}
	if m.Has(ModOption) {
		parts = append(parts, ModNameOption)
	}
	return strings.Join(parts, "+")
}

// DecodeModifiers renders an AXMenuItemCmdModifiers value. Only the low four
// bits are significant; 8 alone yields "".
func DecodeModifiers(mask int) string {
	return ModifierMask(mask & int(modifierBits)).String()
}
