package menu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeModifiers(t *testing.T) {
	tests := []struct {
		mask int
		want string
	}{
		{0, "Cmd"},
		{1, "Cmd+Shift"},
		{2, "Cmd+Opt"},
		{3, "Cmd+Shift+Opt"},
		{4, "Cmd+Ctrl"},
		{5, "Cmd+Ctrl+Shift"},
		{6, "Cmd+Ctrl+Opt"},
		{7, "Cmd+Ctrl+Shift+Opt"},
		{8, ""},
		{9, "Shift"},
		{10, "Opt"},
		{12, "Ctrl"},
		{15, "Ctrl+Shift+Opt"},
	}
	for _, tt := range tests {
		require.Equalf(t, tt.want, DecodeModifiers(tt.mask), "mask %d", tt.mask)
	}
}

func TestDecodeModifiersIgnoresHighBits(t *testing.T) {
	require.Equal(t, DecodeModifiers(1), DecodeModifiers(16|1))
	require.Equal(t, "", DecodeModifiers(24))
}

func TestDecodeModifiersNoCommandNeverYieldsCmd(t *testing.T) {
	for mask := 8; mask < 16; mask++ {
		require.NotContains(t, DecodeModifiers(mask), ModNameCommand)
	}
	for mask := 0; mask < 8; mask++ {
		require.Contains(t, DecodeModifiers(mask), ModNameCommand)
	}
}

func TestModifierMaskHas(t *testing.T) {
	m := ModShift | ModControl
	require.True(t, m.Has(ModShift))
	require.True(t, m.Has(ModControl))
	require.False(t, m.Has(ModOption))
	require.False(t, m.Has(ModShift|ModOption))
}
