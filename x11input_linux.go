//go:build linux

package inputhook

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jetkvm/inputhook/internal/display"
)

// Core protocol buttons 4-7 are wheel clicks; 8 and 9 are the side buttons.
const (
	x11WheelUp    = 4
	x11WheelDown  = 5
	x11WheelLeft  = 6
	x11WheelRight = 7
	x11Back       = 8
	x11Forward    = 9

	evdevBtnSide  = 0x113
	evdevBtnExtra = 0x114

	// maxX11WheelClicks bounds the clicks one Wheel event turns into.
	maxX11WheelClicks = 120
)

// buttonFromX11 names side buttons by their evdev codes so both Linux
// capture paths report them alike.
func buttonFromX11(detail byte) Button {
	switch detail {
	case 1:
		return ButtonLeft
	case 2:
		return ButtonMiddle
	case 3:
		return ButtonRight
	case x11Back:
		return UnknownButton(evdevBtnSide)
	case x11Forward:
		return UnknownButton(evdevBtnExtra)
	}
	return UnknownButton(uint32(detail))
}

func x11Button(b Button) (byte, error) {
	switch b {
	case ButtonLeft:
		return 1, nil
	case ButtonMiddle:
		return 2, nil
	case ButtonRight:
		return 3, nil
	}
	code, _ := b.Unknown()
	switch {
	case code == evdevBtnSide:
		return x11Back, nil
	case code == evdevBtnExtra:
		return x11Forward, nil
	case code >= 1 && code <= math.MaxUint8 && (code < x11WheelUp || code > x11WheelRight):
		return byte(code), nil
	}
	return 0, fmt.Errorf("%w: button %s on x11", ErrUnmapped, b)
}

func x11Keycode(k Key) (byte, error) {
	code, ok := x11Codes.code(k)
	if !ok || code < 8 || code > math.MaxUint8 {
		return 0, fmt.Errorf("%w: key %s on x11", ErrUnmapped, k)
	}
	return byte(code), nil
}

// decodeX11 turns a recorded core event into an event type. Wheel button
// releases carry nothing and report false.
func decodeX11(ev display.CoreEvent) (EventType, bool) {
	switch ev.Type {
	case display.EventKeyPress:
		return KeyPress(x11Codes.key(uint32(ev.Detail))), true
	case display.EventKeyRelease:
		return KeyRelease(x11Codes.key(uint32(ev.Detail))), true
	case display.EventButtonPress:
		switch ev.Detail {
		case x11WheelUp:
			return Wheel(0, 1), true
		case x11WheelDown:
			return Wheel(0, -1), true
		case x11WheelLeft:
			return Wheel(-1, 0), true
		case x11WheelRight:
			return Wheel(1, 0), true
		}
		return ButtonPress(buttonFromX11(ev.Detail)), true
	case display.EventButtonRelease:
		if ev.Detail >= x11WheelUp && ev.Detail <= x11WheelRight {
			return EventType{}, false
		}
		return ButtonRelease(buttonFromX11(ev.Detail)), true
	case display.EventMotionNotify:
		return MouseMove(float64(ev.RootX), float64(ev.RootY)), true
	}
	return EventType{}, false
}

// checkX11Mapping fails for keys and buttons XTEST cannot send.
func checkX11Mapping(et EventType) error {
	switch et.Kind {
	case KindKeyPress, KindKeyRelease:
		_, err := x11Keycode(et.Key)
		return err
	case KindButtonPress, KindButtonRelease:
		_, err := x11Button(et.Button)
		return err
	}
	return nil
}

// fakeInput is the XTEST request sink. *display.X11 implements it.
type fakeInput interface {
	FakeInput(typ, detail byte, rootX, rootY int16) error
}

func rootCoord(v float64) int16 {
	return int16(max(math.MinInt16, min(math.MaxInt16, math.Round(v))))
}

func wheelClicks(delta int64) int {
	return int(min(maxX11WheelClicks, max(-maxX11WheelClicks, delta)))
}

func sendX11(x fakeInput, et EventType) error {
	switch et.Kind {
	case KindKeyPress, KindKeyRelease:
		code, err := x11Keycode(et.Key)
		if err != nil {
			return err
		}
		typ := byte(display.EventKeyRelease)
		if et.Kind == KindKeyPress {
			typ = display.EventKeyPress
		}
		return x.FakeInput(typ, code, 0, 0)

	case KindButtonPress, KindButtonRelease:
		btn, err := x11Button(et.Button)
		if err != nil {
			return err
		}
		typ := byte(display.EventButtonRelease)
		if et.Kind == KindButtonPress {
			typ = display.EventButtonPress
		}
		return x.FakeInput(typ, btn, 0, 0)

	case KindMouseMove:
		return x.FakeInput(display.EventMotionNotify, 0, rootCoord(et.X), rootCoord(et.Y))

	case KindWheel:
		if err := clickWheel(x, et.DeltaX, x11WheelRight, x11WheelLeft); err != nil {
			return err
		}
		return clickWheel(x, et.DeltaY, x11WheelUp, x11WheelDown)
	}
	return fmt.Errorf("%w: kind %d", errInvalidEvent, et.Kind)
}

func clickWheel(x fakeInput, delta int64, positive, negative byte) error {
	n := wheelClicks(delta)
	btn := positive
	if n < 0 {
		btn, n = negative, -n
	}
	for range n {
		if err := x.FakeInput(display.EventButtonPress, btn, 0, 0); err != nil {
			return err
		}
		if err := x.FakeInput(display.EventButtonRelease, btn, 0, 0); err != nil {
			return err
		}
	}
	return nil
}

// listenX11 records input through the X server. It needs no access to
// input devices.
func (b *linuxBackend) listenX11(x *display.X11, reg *registration, emit emitFunc) error {
	rec, err := x.Record(func(ev display.CoreEvent) {
		if et, ok := decodeX11(ev); ok {
			emit(et, time.Time{})
		}
	})
	if err != nil {
		return fmt.Errorf("record X input: %w", err)
	}
	if !reg.installed(rec.Stop) {
		rec.Stop()
	}
	if err := rec.Wait(); err != nil {
		return fmt.Errorf("record X input: %w", err)
	}
	return nil
}

// simulateX11 injects through XTEST once uinput has been refused.
func (b *linuxBackend) simulateX11(x *display.X11, et EventType) error {
	if err := checkX11Mapping(et); err != nil {
		return err
	}
	if err := sendX11(x, et); err != nil {
		if errors.Is(err, ErrUnmapped) {
			return err
		}
		return fmt.Errorf("%w: XTEST: %w", ErrDeviceUnavailable, err)
	}
	return nil
}
