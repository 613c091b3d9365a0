package inputhook

import (
	"testing"

	"github.com/jetkvm/inputhook/internal/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMacDecoderKeys(t *testing.T) {
	d := newMacDecoder()

	assert.Equal(t, []EventType{KeyPress(KeyA)}, d.decode(quartz.Event{Type: quartz.TypeKeyDown, Keycode: 0}))
	assert.Equal(t, []EventType{KeyRelease(KeyReturn)}, d.decode(quartz.Event{Type: quartz.TypeKeyUp, Keycode: 36}))
	assert.Equal(t, []EventType{KeyPress(UnknownKey(0x6e))}, d.decode(quartz.Event{Type: quartz.TypeKeyDown, Keycode: 0x6e}))
}

func TestMacDecoderModifiers(t *testing.T) {
	d := newMacDecoder()
	flags := func(code uint16, f uint64) []EventType {
		return d.decode(quartz.Event{Type: quartz.TypeFlagsChanged, Keycode: code, Flags: f})
	}

	assert.Equal(t, []EventType{KeyPress(KeyShiftLeft)}, flags(56, quartz.FlagShift|quartz.DevLeftShift))
	assert.Equal(t, []EventType{KeyPress(KeyShiftRight)}, flags(60, quartz.FlagShift|quartz.DevLeftShift|quartz.DevRightShift))
	// left released while right is still down
	assert.Equal(t, []EventType{KeyRelease(KeyShiftLeft)}, flags(56, quartz.FlagShift|quartz.DevRightShift))
	assert.Equal(t, []EventType{KeyRelease(KeyShiftRight)}, flags(60, 0))

	// posted events only set the shared mask
	assert.Equal(t, []EventType{KeyPress(KeyMetaLeft)}, flags(55, quartz.FlagCommand))
	assert.Empty(t, flags(55, quartz.FlagCommand), "no transition")
	assert.Equal(t, []EventType{KeyRelease(KeyMetaLeft)}, flags(55, 0))

	assert.Equal(t, []EventType{KeyPress(KeyCapsLock), KeyRelease(KeyCapsLock)}, flags(57, quartz.FlagAlphaShift))
	assert.Equal(t, []EventType{KeyPress(KeyCapsLock), KeyRelease(KeyCapsLock)}, flags(57, 0))

	assert.Empty(t, flags(0x0a, quartz.FlagShift))
}

func TestMacDecoderCapsLockTogglesKeyboard(t *testing.T) {
	d := newMacDecoder()
	kb := NewKeyboardWithLayout(USLayout)

	for _, et := range d.decode(quartz.Event{Type: quartz.TypeFlagsChanged, Keycode: macKeycodeCapsLock, Flags: quartz.FlagAlphaShift}) {
		kb.Add(et)
	}
	text, ok := kb.Add(KeyPress(KeyA))
	require.True(t, ok)
	assert.Equal(t, "A", text)
}

func TestMacDecoderMouse(t *testing.T) {
	d := newMacDecoder()

	assert.Equal(t, []EventType{ButtonPress(ButtonLeft)}, d.decode(quartz.Event{Type: quartz.TypeLeftMouseDown}))
	assert.Equal(t, []EventType{ButtonRelease(ButtonRight)}, d.decode(quartz.Event{Type: quartz.TypeRightMouseUp}))
	assert.Equal(t, []EventType{ButtonPress(ButtonMiddle)}, d.decode(quartz.Event{Type: quartz.TypeOtherMouseDown, Button: 2}))
	assert.Equal(t, []EventType{ButtonPress(UnknownButton(3))}, d.decode(quartz.Event{Type: quartz.TypeOtherMouseDown, Button: 3}))

	assert.Equal(t, []EventType{MouseMove(10.5, 20)}, d.decode(quartz.Event{Type: quartz.TypeLeftMouseDragged, X: 10.5, Y: 20}))

	assert.Equal(t, []EventType{Wheel(0, 3)}, d.decode(quartz.Event{Type: quartz.TypeScrollWheel, ScrollY: 3}))
	assert.Equal(t, []EventType{Wheel(2, 0)}, d.decode(quartz.Event{Type: quartz.TypeScrollWheel, ScrollX: -2}))
	assert.Empty(t, d.decode(quartz.Event{Type: quartz.TypeScrollWheel}))
}

func TestMacPostHelpers(t *testing.T) {
	btn, err := macMouseButton(ButtonMiddle)
	require.NoError(t, err)
	assert.Equal(t, uint32(quartz.ButtonCenter), btn)
	_, err = macMouseButton(UnknownButton(40))
	assert.ErrorIs(t, err, ErrUnmapped)

	assert.Equal(t, uint32(quartz.TypeOtherMouseDown), macButtonType(4, true))
	assert.Equal(t, uint32(quartz.TypeRightMouseUp), macButtonType(quartz.ButtonRight, false))

	typ, b := macMoveType(0)
	assert.Equal(t, uint32(quartz.TypeMouseMoved), typ)
	typ, b = macMoveType(1 << quartz.ButtonRight)
	assert.Equal(t, uint32(quartz.TypeRightMouseDragged), typ)
	assert.Equal(t, uint32(quartz.ButtonRight), b)
	typ, b = macMoveType(1 << 5)
	assert.Equal(t, uint32(quartz.TypeOtherMouseDragged), typ)
	assert.Equal(t, uint32(5), b)

	_, err = macKeycode(KeyPrintScreen)
	assert.ErrorIs(t, err, ErrUnmapped)

	assert.Equal(t, quartz.ModShift|quartz.ModOption, macModState(ModShift|ModAltGr))
}
