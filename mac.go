package inputhook

import (
	"fmt"
	"math"

	"github.com/jetkvm/inputhook/internal/quartz"
)

const macKeycodeCapsLock = 57

// macModifier is how the event flags report one modifier key: its own
// device bit, and the mask shared by both sides.
type macModifier struct {
	dev, generic uint64
}

var macModifiers = map[uint16]macModifier{
	56: {quartz.DevLeftShift, quartz.FlagShift},
	60: {quartz.DevRightShift, quartz.FlagShift},
	59: {quartz.DevLeftControl, quartz.FlagControl},
	62: {quartz.DevRightControl, quartz.FlagControl},
	58: {quartz.DevLeftAlternate, quartz.FlagAlternate},
	61: {quartz.DevRightAlternate, quartz.FlagAlternate},
	55: {quartz.DevLeftCommand, quartz.FlagCommand},
	54: {quartz.DevRightCommand, quartz.FlagCommand},
	63: {0, quartz.FlagSecondaryFn},
}

// macDecoder turns tapped events into event types. Modifier keys only
// arrive as flag changes, so it remembers which ones are held.
type macDecoder struct {
	held map[uint16]bool
}

func newMacDecoder() *macDecoder {
	return &macDecoder{held: make(map[uint16]bool)}
}

func (d *macDecoder) decode(ev quartz.Event) []EventType {
	switch ev.Type {
	case quartz.TypeKeyDown:
		return []EventType{KeyPress(macCodes.key(uint32(ev.Keycode)))}
	case quartz.TypeKeyUp:
		return []EventType{KeyRelease(macCodes.key(uint32(ev.Keycode)))}
	case quartz.TypeFlagsChanged:
		return d.flagsChanged(ev)

	case quartz.TypeLeftMouseDown:
		return []EventType{ButtonPress(ButtonLeft)}
	case quartz.TypeLeftMouseUp:
		return []EventType{ButtonRelease(ButtonLeft)}
	case quartz.TypeRightMouseDown:
		return []EventType{ButtonPress(ButtonRight)}
	case quartz.TypeRightMouseUp:
		return []EventType{ButtonRelease(ButtonRight)}
	case quartz.TypeOtherMouseDown:
		return []EventType{ButtonPress(macButton(ev.Button))}
	case quartz.TypeOtherMouseUp:
		return []EventType{ButtonRelease(macButton(ev.Button))}

	case quartz.TypeMouseMoved, quartz.TypeLeftMouseDragged,
		quartz.TypeRightMouseDragged, quartz.TypeOtherMouseDragged:
		return []EventType{MouseMove(ev.X, ev.Y)}

	case quartz.TypeScrollWheel:
		if ev.ScrollX == 0 && ev.ScrollY == 0 {
			return nil
		}
		return []EventType{Wheel(-ev.ScrollX, ev.ScrollY)}
	}
	return nil
}

func (d *macDecoder) flagsChanged(ev quartz.Event) []EventType {
	k := macCodes.key(uint32(ev.Keycode))

	// Caps Lock reports its lock state, not the key, once per press.
	if ev.Keycode == macKeycodeCapsLock {
		return []EventType{KeyPress(k), KeyRelease(k)}
	}

	m, ok := macModifiers[ev.Keycode]
	if !ok {
		return nil
	}
	// posted events may carry only the side independent mask
	down := ev.Flags&m.dev != 0 || (ev.Flags&quartz.DevMask == 0 && ev.Flags&m.generic != 0)
	if d.held[ev.Keycode] == down {
		return nil
	}
	d.held[ev.Keycode] = down
	if down {
		return []EventType{KeyPress(k)}
	}
	return []EventType{KeyRelease(k)}
}

func macButton(n int64) Button {
	switch n {
	case quartz.ButtonLeft:
		return ButtonLeft
	case quartz.ButtonRight:
		return ButtonRight
	case quartz.ButtonCenter:
		return ButtonMiddle
	}
	return UnknownButton(uint32(n))
}

// macMouseButton is the CGMouseButton for b. Quartz numbers up to 31.
func macMouseButton(b Button) (uint32, error) {
	switch b {
	case ButtonLeft:
		return quartz.ButtonLeft, nil
	case ButtonRight:
		return quartz.ButtonRight, nil
	case ButtonMiddle:
		return quartz.ButtonCenter, nil
	}
	if code, ok := b.Unknown(); ok && code > quartz.ButtonCenter && code < 32 {
		return code, nil
	}
	return 0, fmt.Errorf("%w: button %s on mac", ErrUnmapped, b)
}

// macButtonType is the CGEventType of a press or release of button.
func macButtonType(button uint32, down bool) uint32 {
	switch {
	case button == quartz.ButtonLeft && down:
		return quartz.TypeLeftMouseDown
	case button == quartz.ButtonLeft:
		return quartz.TypeLeftMouseUp
	case button == quartz.ButtonRight && down:
		return quartz.TypeRightMouseDown
	case button == quartz.ButtonRight:
		return quartz.TypeRightMouseUp
	case down:
		return quartz.TypeOtherMouseDown
	}
	return quartz.TypeOtherMouseUp
}

// macMoveType picks the CGEventType for a pointer move while the buttons in
// the held bitmask are down. Moves with a button held must be drags or
// applications never see the drag.
func macMoveType(held uint32) (typ, button uint32) {
	switch {
	case held == 0:
		return quartz.TypeMouseMoved, quartz.ButtonLeft
	case held&(1<<quartz.ButtonLeft) != 0:
		return quartz.TypeLeftMouseDragged, quartz.ButtonLeft
	case held&(1<<quartz.ButtonRight) != 0:
		return quartz.TypeRightMouseDragged, quartz.ButtonRight
	}
	for b := uint32(quartz.ButtonCenter); b < 32; b++ {
		if held&(1<<b) != 0 {
			return quartz.TypeOtherMouseDragged, b
		}
	}
	return quartz.TypeMouseMoved, quartz.ButtonLeft
}

// macModState maps a modifier mask onto UCKeyTranslate modifier bits.
// The Mac has no AltGr; the right Option key plays its part.
func macModState(m Modifiers) uint32 {
	var s uint32
	if m.Has(ModShift) {
		s |= quartz.ModShift
	}
	if m.Has(ModCapsLock) {
		s |= quartz.ModCapsLock
	}
	if m.Has(ModControl) {
		s |= quartz.ModControl
	}
	if m.Has(ModAlt) || m.Has(ModAltGr) {
		s |= quartz.ModOption
	}
	if m.Has(ModMeta) {
		s |= quartz.ModCommand
	}
	return s
}

func macKeycode(k Key) (uint16, error) {
	code, ok := macCodes.code(k)
	if !ok || code > math.MaxUint16 {
		return 0, fmt.Errorf("%w: key %s on mac", ErrUnmapped, k)
	}
	return uint16(code), nil
}
