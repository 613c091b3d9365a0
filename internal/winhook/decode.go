// Package winhook wraps the Win32 low-level keyboard and mouse hooks and
// SendInput. Hook payloads are decoded from size-checked byte views; this
// file has no OS dependency so the decoding is tested everywhere.
package winhook

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unsafe"
)

// Window messages delivered to low-level hooks.
const (
	wmKeyDown     = 0x0100
	wmKeyUp       = 0x0101
	wmSysKeyDown  = 0x0104
	wmSysKeyUp    = 0x0105
	wmMouseMove   = 0x0200
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp   = 0x0205
	wmMButtonDown = 0x0207
	wmMButtonUp   = 0x0208
	wmMouseWheel  = 0x020A
	wmXButtonDown = 0x020B
	wmXButtonUp   = 0x020C
	wmMouseHWheel = 0x020E

	llkhfExtended = 0x01
	llkhfInjected = 0x10
	llmhfInjected = 0x01

	// WheelDelta is one wheel notch.
	WheelDelta = 120
)

// ExtraInfo values this package stamps on the input it sends.
const (
	TagSimulated   uintptr = 0x4948_5331 // "IHS1"
	TagReplacement uintptr = 0x4948_5232 // "IHR2"
)

var (
	ErrShortPayload   = errors.New("hook payload too short")
	ErrUnknownMessage = errors.New("unknown hook message")
)

const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// Sizes of KBDLLHOOKSTRUCT and MSLLHOOKSTRUCT: their last member is a
// ULONG_PTR aligned to the pointer size.
var (
	KeyboardPayloadSize = alignUp(16, ptrSize) + ptrSize
	MousePayloadSize    = alignUp(20, ptrSize) + ptrSize
)

func alignUp(n, align int) int {
	return (n + align - 1) / align * align
}

func readPtr(b []byte) uintptr {
	if ptrSize == 8 {
		return uintptr(binary.LittleEndian.Uint64(b))
	}
	return uintptr(binary.LittleEndian.Uint32(b))
}

// KeyEvent is a decoded KBDLLHOOKSTRUCT.
type KeyEvent struct {
	VK        uint32
	Scan      uint32
	Extended  bool
	Down      bool
	Injected  bool
	ExtraInfo uintptr
	// Time is milliseconds since boot.
	Time uint32
}

// DecodeKeyboard decodes the payload of a WH_KEYBOARD_LL callback.
func DecodeKeyboard(wParam uintptr, b []byte) (KeyEvent, error) {
	if len(b) < KeyboardPayloadSize {
		return KeyEvent{}, fmt.Errorf("%w: %d < %d bytes", ErrShortPayload, len(b), KeyboardPayloadSize)
	}

	var ev KeyEvent
	switch wParam {
	case wmKeyDown, wmSysKeyDown:
		ev.Down = true
	case wmKeyUp, wmSysKeyUp:
	default:
		return KeyEvent{}, fmt.Errorf("%w: keyboard %#x", ErrUnknownMessage, wParam)
	}

	ev.VK = binary.LittleEndian.Uint32(b[0:])
	ev.Scan = binary.LittleEndian.Uint32(b[4:])
	flags := binary.LittleEndian.Uint32(b[8:])
	ev.Time = binary.LittleEndian.Uint32(b[12:])
	ev.ExtraInfo = readPtr(b[alignUp(16, ptrSize):])
	ev.Extended = flags&llkhfExtended != 0
	ev.Injected = flags&llkhfInjected != 0

	if ev.VK == 0 || ev.VK > 0xfe {
		return KeyEvent{}, fmt.Errorf("%w: virtual key %#x", ErrUnknownMessage, ev.VK)
	}
	return ev, nil
}

type MouseKind uint8

const (
	MouseMove MouseKind = iota + 1
	MouseButton
	MouseWheel
	MouseHWheel
)

// Mouse buttons as reported in MouseEvent.Button.
const (
	ButtonLeft   = 1
	ButtonRight  = 2
	ButtonMiddle = 3
	ButtonX1     = 4
	ButtonX2     = 5
)

// MouseEvent is a decoded MSLLHOOKSTRUCT.
type MouseEvent struct {
	Kind   MouseKind
	X, Y   int32
	Button uint8
	Down   bool
	// Delta is the signed wheel rotation in WheelDelta units per notch,
	// positive away from the user or to the right.
	Delta     int32
	Injected  bool
	ExtraInfo uintptr
	Time      uint32
}

// DecodeMouse decodes the payload of a WH_MOUSE_LL callback.
func DecodeMouse(wParam uintptr, b []byte) (MouseEvent, error) {
	if len(b) < MousePayloadSize {
		return MouseEvent{}, fmt.Errorf("%w: %d < %d bytes", ErrShortPayload, len(b), MousePayloadSize)
	}

	ev := MouseEvent{
		X:         int32(binary.LittleEndian.Uint32(b[0:])),
		Y:         int32(binary.LittleEndian.Uint32(b[4:])),
		Time:      binary.LittleEndian.Uint32(b[16:]),
		ExtraInfo: readPtr(b[alignUp(20, ptrSize):]),
	}
	data := binary.LittleEndian.Uint32(b[8:])
	ev.Injected = binary.LittleEndian.Uint32(b[12:])&llmhfInjected != 0

	switch wParam {
	case wmMouseMove:
		ev.Kind = MouseMove
	case wmLButtonDown, wmLButtonUp:
		ev.Kind, ev.Button, ev.Down = MouseButton, ButtonLeft, wParam == wmLButtonDown
	case wmRButtonDown, wmRButtonUp:
		ev.Kind, ev.Button, ev.Down = MouseButton, ButtonRight, wParam == wmRButtonDown
	case wmMButtonDown, wmMButtonUp:
		ev.Kind, ev.Button, ev.Down = MouseButton, ButtonMiddle, wParam == wmMButtonDown
	case wmXButtonDown, wmXButtonUp:
		ev.Kind, ev.Down = MouseButton, wParam == wmXButtonDown
		switch data >> 16 {
		case 1:
			ev.Button = ButtonX1
		case 2:
			ev.Button = ButtonX2
		default:
			return MouseEvent{}, fmt.Errorf("%w: x button %d", ErrUnknownMessage, data>>16)
		}
	case wmMouseWheel:
		ev.Kind, ev.Delta = MouseWheel, int32(int16(data>>16))
	case wmMouseHWheel:
		ev.Kind, ev.Delta = MouseHWheel, int32(int16(data>>16))
	default:
		return MouseEvent{}, fmt.Errorf("%w: mouse %#x", ErrUnknownMessage, wParam)
	}
	return ev, nil
}

// SendInput structures.
const (
	inputMouse    = 0
	inputKeyboard = 1

	keyeventfExtendedKey = 0x0001
	keyeventfKeyUp       = 0x0002

	mouseeventfMove       = 0x0001
	mouseeventfLeftDown   = 0x0002
	mouseeventfLeftUp     = 0x0004
	mouseeventfRightDown  = 0x0008
	mouseeventfRightUp    = 0x0010
	mouseeventfMiddleDown = 0x0020
	mouseeventfMiddleUp   = 0x0040
	mouseeventfXDown      = 0x0080
	mouseeventfXUp        = 0x0100
	mouseeventfWheel      = 0x0800
	mouseeventfHWheel     = 0x1000
	mouseeventfAbsolute   = 0x8000
)

type mouseInput struct {
	Dx, Dy    int32
	MouseData uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

type keybdInput struct {
	Vk        uint16
	Scan      uint16
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// Input mirrors INPUT. MOUSEINPUT is the largest union member, so it sizes
// the union; keyboard input is written over its start.
type Input struct {
	Type  uint32
	union mouseInput
}

// extendedVKs are the keys that need KEYEVENTF_EXTENDEDKEY to be told apart
// from their keypad twins.
var extendedVKs = map[uint16]bool{
	0x21: true, 0x22: true, 0x23: true, 0x24: true, // PageUp PageDown End Home
	0x25: true, 0x26: true, 0x27: true, 0x28: true, // arrows
	0x2C: true, 0x2D: true, 0x2E: true, // PrintScreen Insert Delete
	0x5B: true, 0x5C: true, 0x5D: true, // LWin RWin Apps
	0x6F: true, 0x90: true, // Divide NumLock
	0xA3: true, 0xA5: true, // RControl RMenu
}

// KeyInput builds a key press or release. extended forces the extended
// flag, as keypad Enter needs.
func KeyInput(vk uint16, down, extended bool, tag uintptr) Input {
	in := Input{Type: inputKeyboard}
	ki := (*keybdInput)(unsafe.Pointer(&in.union))
	ki.Vk = vk
	ki.ExtraInfo = tag
	if !down {
		ki.Flags |= keyeventfKeyUp
	}
	if extended || extendedVKs[vk] {
		ki.Flags |= keyeventfExtendedKey
	}
	return in
}

// Keyboard returns the keyboard part of in and whether in is keyboard input.
func (in Input) Keyboard() (vk uint16, flags uint32, tag uintptr, ok bool) {
	if in.Type != inputKeyboard {
		return 0, 0, 0, false
	}
	ki := (*keybdInput)(unsafe.Pointer(&in.union))
	return ki.Vk, ki.Flags, ki.ExtraInfo, true
}

// Mouse returns the mouse part of in and whether in is mouse input.
func (in Input) Mouse() (dx, dy int32, data, flags uint32, ok bool) {
	if in.Type != inputMouse {
		return 0, 0, 0, 0, false
	}
	return in.union.Dx, in.union.Dy, in.union.MouseData, in.union.Flags, true
}

// ButtonInput builds a press or release of one of the Button* values.
func ButtonInput(button uint8, down bool, tag uintptr) (Input, error) {
	var flags, data uint32
	switch button {
	case ButtonLeft:
		flags = pick(down, mouseeventfLeftDown, mouseeventfLeftUp)
	case ButtonRight:
		flags = pick(down, mouseeventfRightDown, mouseeventfRightUp)
	case ButtonMiddle:
		flags = pick(down, mouseeventfMiddleDown, mouseeventfMiddleUp)
	case ButtonX1, ButtonX2:
		flags = pick(down, mouseeventfXDown, mouseeventfXUp)
		data = uint32(button - ButtonX1 + 1)
	default:
		return Input{}, fmt.Errorf("no SendInput button %d", button)
	}
	return Input{Type: inputMouse, union: mouseInput{MouseData: data, Flags: flags, ExtraInfo: tag}}, nil
}

func pick(down bool, d, u uint32) uint32 {
	if down {
		return d
	}
	return u
}

// AbsoluteCoord maps pixel v on an axis of size pixels to the 0..65535
// range of MOUSEEVENTF_ABSOLUTE, picking the smallest value that lands on
// that pixel.
func AbsoluteCoord(v float64, size uint64) int32 {
	if size == 0 {
		return 0
	}
	p := math.Floor(math.Max(0, math.Min(v, float64(size-1))))
	n := math.Ceil(p * 65536 / float64(size))
	return int32(math.Min(n, 65535))
}

// MoveInput moves the pointer to (x, y) on the primary display.
func MoveInput(x, y float64, width, height uint64, tag uintptr) Input {
	return Input{Type: inputMouse, union: mouseInput{
		Dx:        AbsoluteCoord(x, width),
		Dy:        AbsoluteCoord(y, height),
		Flags:     mouseeventfMove | mouseeventfAbsolute,
		ExtraInfo: tag,
	}}
}

// WheelInput turns the wheel by delta, in WheelDelta units.
func WheelInput(delta int32, horizontal bool, tag uintptr) Input {
	flags := uint32(mouseeventfWheel)
	if horizontal {
		flags = mouseeventfHWheel
	}
	return Input{Type: inputMouse, union: mouseInput{MouseData: uint32(delta), Flags: flags, ExtraInfo: tag}}
}
