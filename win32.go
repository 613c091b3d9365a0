package inputhook

import (
	"fmt"
	"math"
	"time"

	"github.com/jetkvm/inputhook/internal/winhook"
)

const (
	vkReturn   = 0x0D
	vkShift    = 0x10
	vkControl  = 0x11
	vkMenu     = 0x12
	vkCapital  = 0x14
	vkLControl = 0xA2

	// scan code of the left Control the system sends ahead of AltGr
	altGrFakeCtrlScan = 0x21D
)

// winDecoder turns hook events into event types. Wheel rotation is
// collected until it adds up to whole notches.
type winDecoder struct {
	wheelV, wheelH int32
	lastX, lastY   int32
	seen           bool
}

func (d *winDecoder) key(ev winhook.KeyEvent) (EventType, bool) {
	if ev.VK == vkLControl && ev.Scan == altGrFakeCtrlScan {
		return EventType{}, false
	}
	k := win32Codes.key(ev.VK)
	if ev.VK == vkReturn && ev.Extended {
		k = KeyKpReturn
	}
	if ev.Down {
		return KeyPress(k), true
	}
	return KeyRelease(k), true
}

func (d *winDecoder) mouse(ev winhook.MouseEvent) (EventType, bool) {
	switch ev.Kind {
	case winhook.MouseMove:
		if d.seen && ev.X == d.lastX && ev.Y == d.lastY {
			return EventType{}, false
		}
		d.lastX, d.lastY, d.seen = ev.X, ev.Y, true
		return MouseMove(float64(ev.X), float64(ev.Y)), true
	case winhook.MouseButton:
		btn := winButtonToButton(ev.Button)
		if ev.Down {
			return ButtonPress(btn), true
		}
		return ButtonRelease(btn), true
	case winhook.MouseWheel:
		if n := notches(&d.wheelV, ev.Delta); n != 0 {
			return Wheel(0, n), true
		}
	case winhook.MouseHWheel:
		if n := notches(&d.wheelH, ev.Delta); n != 0 {
			return Wheel(n, 0), true
		}
	}
	return EventType{}, false
}

// notches adds delta to acc and takes out the whole notches.
func notches(acc *int32, delta int32) int64 {
	*acc += delta
	n := *acc / winhook.WheelDelta
	*acc -= n * winhook.WheelDelta
	return int64(n)
}

func winButtonToButton(b uint8) Button {
	switch b {
	case winhook.ButtonLeft:
		return ButtonLeft
	case winhook.ButtonRight:
		return ButtonRight
	case winhook.ButtonMiddle:
		return ButtonMiddle
	}
	return UnknownButton(uint32(b))
}

func buttonToWin(b Button) (uint8, error) {
	switch b {
	case ButtonLeft:
		return winhook.ButtonLeft, nil
	case ButtonRight:
		return winhook.ButtonRight, nil
	case ButtonMiddle:
		return winhook.ButtonMiddle, nil
	}
	if code, ok := b.Unknown(); ok && (code == winhook.ButtonX1 || code == winhook.ButtonX2) {
		return uint8(code), nil
	}
	return 0, fmt.Errorf("%w: button %s on win32", ErrUnmapped, b)
}

func vkFromKey(k Key) (uint16, bool, error) {
	if k == KeyKpReturn {
		return vkReturn, true, nil
	}
	code, ok := win32Codes.code(k)
	if !ok || code == 0 || code > 0xfe {
		return 0, false, fmt.Errorf("%w: key %s on win32", ErrUnmapped, k)
	}
	return uint16(code), false, nil
}

func wheelUnits(notches int64) int32 {
	const limit = math.MaxInt32 / winhook.WheelDelta
	notches = max(-limit, min(limit, notches))
	return int32(notches * winhook.WheelDelta)
}

// grabHook decides one hooked event on the hook thread and reports whether
// to swallow it. A replacement is sent before it returns.
func grabHook(decide decideFunc, send func(EventType) error) func(EventType, time.Time) bool {
	return func(et EventType, at time.Time) bool {
		dec := decide(et, at)
		switch dec.action {
		case grabSuppress:
			return true
		case grabReplace:
			if err := send(dec.replacement); err != nil {
				dropped("grab", "replace_failed")
				grabLogger().Warn().Err(err).Stringer("event", dec.replacement).Msg("replacement not injected")
			}
			return true
		}
		return false
	}
}
