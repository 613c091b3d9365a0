package inputhook

import (
	"testing"

	"github.com/jetkvm/inputhook/internal/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testKeymap builds a 6-column keymap from X11 keycode -> keysyms.
func testKeymap(t *testing.T, entries map[Key][]uint32) *display.Keymap {
	t.Helper()
	const min, max, per = 8, 255, 6
	km := &display.Keymap{MinKeycode: min, PerCode: per, Syms: make([]uint32, (max-min+1)*per)}
	for k, syms := range entries {
		code, ok := x11Codes.code(k)
		require.True(t, ok, k.String())
		copy(km.Syms[int(code-min)*per:], syms)
	}
	return km
}

func TestKeysymText(t *testing.T) {
	cases := []struct {
		sym  uint32
		text string
		dead bool
		ok   bool
	}{
		{0x61, "a", false, true},
		{0xe9, "é", false, true},
		{0x10020ac, "€", false, true},
		{0xfe51, "´", true, true},
		{0xfe57, "¨", true, true},
		{0xff0d, "\r", false, true},
		{0xffb7, "7", false, true},
		{0xffe1, "", false, false}, // Shift_L
		{0, "", false, false},
	}
	for _, tc := range cases {
		text, dead, ok := keysymText(tc.sym)
		assert.Equal(t, tc.ok, ok, "%#x", tc.sym)
		assert.Equal(t, tc.text, text, "%#x", tc.sym)
		assert.Equal(t, tc.dead, dead, "%#x", tc.sym)
	}
}

func TestX11LayoutLevels(t *testing.T) {
	l := newX11Layout(testKeymap(t, map[Key][]uint32{
		KeyS:     {0x73, 0x53},
		KeyA:     {0x61},
		KeyE:     {0x65, 0x45, 0x65, 0x45, 0x10020ac, 0x45},
		KeyNum1:  {0x31, 0x21},
		KeyQuote: {0xfe51, 0xfe57},
		KeyKp7:   {0xff95, 0xffb7},
		KeyF1:    {0xffbe},
	}))

	lookup := func(k Key, mods Modifiers) (string, bool, bool) { return l.Lookup(k, mods) }

	text, _, _ := lookup(KeyS, 0)
	assert.Equal(t, "s", text)
	text, _, _ = lookup(KeyS, ModShift)
	assert.Equal(t, "S", text)
	text, _, _ = lookup(KeyS, ModCapsLock)
	assert.Equal(t, "S", text)
	text, _, _ = lookup(KeyS, ModShift|ModCapsLock)
	assert.Equal(t, "s", text)

	// single column letters get their case from the letter itself
	text, _, _ = lookup(KeyA, ModCapsLock)
	assert.Equal(t, "A", text)

	text, _, _ = lookup(KeyE, ModAltGr)
	assert.Equal(t, "€", text)

	text, _, _ = lookup(KeyNum1, ModCapsLock)
	assert.Equal(t, "1", text)
	text, _, _ = lookup(KeyNum1, ModShift)
	assert.Equal(t, "!", text)

	text, dead, ok := lookup(KeyQuote, 0)
	assert.True(t, ok)
	assert.True(t, dead)
	assert.Equal(t, "´", text)

	text, _, _ = lookup(KeyKp7, 0)
	assert.Equal(t, "7", text)

	text, _, _ = lookup(KeyS, ModControl)
	assert.Equal(t, "\x13", text)

	_, _, ok = lookup(KeyF1, 0)
	assert.False(t, ok)
	_, _, ok = lookup(KeyZ, 0)
	assert.False(t, ok)
}

func TestX11LayoutComposesThroughKeyboard(t *testing.T) {
	kb := NewKeyboardWithLayout(newX11Layout(testKeymap(t, map[Key][]uint32{
		KeyQuote: {0xfe51, 0xfe57},
		KeyE:     {0x65, 0x45},
	})))

	_, ok := kb.Add(KeyPress(KeyQuote))
	assert.False(t, ok)
	kb.Add(KeyRelease(KeyQuote))
	name, ok := kb.Add(KeyPress(KeyE))
	assert.True(t, ok)
	assert.Equal(t, "é", name)
}
