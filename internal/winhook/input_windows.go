//go:build windows

package winhook

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	procSendInput                 = user32.NewProc("SendInput")
	procGetSystemMetrics          = user32.NewProc("GetSystemMetrics")
	procGetCursorPos              = user32.NewProc("GetCursorPos")
	procToUnicodeEx               = user32.NewProc("ToUnicodeEx")
	procMapVirtualKeyExW          = user32.NewProc("MapVirtualKeyExW")
	procGetKeyboardLayout         = user32.NewProc("GetKeyboardLayout")
	procGetForegroundWindow       = user32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcessId  = user32.NewProc("GetWindowThreadProcessId")
	procSetProcessDpiAwarenessCtx = user32.NewProc("SetProcessDpiAwarenessContext")
	procGetTickCount              = kernel32.NewProc("GetTickCount")
)

const (
	smCxScreen = 0
	smCyScreen = 1

	mapvkVKToVSC = 0

	// leaves the kernel dead-key state alone (Windows 10 1607+)
	toUnicodeNoStateChange = 0x4

	dpiAwarenessPerMonitorV2 = ^uintptr(3) // DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 (-4)
)

// EnableDPIAwareness makes hook coordinates, SendInput and the screen size
// agree on physical pixels. It fails if the process already chose a mode.
func EnableDPIAwareness() error {
	if err := procSetProcessDpiAwarenessCtx.Find(); err != nil {
		return err
	}
	r, _, err := procSetProcessDpiAwarenessCtx.Call(dpiAwarenessPerMonitorV2)
	if r == 0 {
		return fmt.Errorf("SetProcessDpiAwarenessContext: %w", err)
	}
	return nil
}

// EventTime converts a hook timestamp, milliseconds since boot, to wall
// clock time.
func EventTime(ms uint32) time.Time {
	now, _, _ := procGetTickCount.Call()
	age := uint32(now) - ms
	return time.Now().Add(-time.Duration(age) * time.Millisecond)
}

var ErrBlocked = errors.New("SendInput was blocked, the target may run at a higher integrity level")

// Send submits inputs in one SendInput call.
func Send(inputs ...Input) error {
	if len(inputs) == 0 {
		return nil
	}
	n, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(n) != len(inputs) {
		if n == 0 && errors.Is(err, windows.ERROR_SUCCESS) {
			return ErrBlocked
		}
		return fmt.Errorf("SendInput sent %d of %d: %w", n, len(inputs), err)
	}
	return nil
}

// ScreenSize is the size of the primary display.
func ScreenSize() (uint64, uint64, error) {
	w, _, _ := procGetSystemMetrics.Call(smCxScreen)
	h, _, _ := procGetSystemMetrics.Call(smCyScreen)
	if w == 0 || h == 0 {
		return 0, 0, errors.New("GetSystemMetrics reported an empty screen")
	}
	return uint64(w), uint64(h), nil
}

// CursorPos is the current pointer position.
func CursorPos() (int32, int32, error) {
	var pt struct{ X, Y int32 }
	r, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if r == 0 {
		return 0, 0, fmt.Errorf("GetCursorPos: %w", err)
	}
	return pt.X, pt.Y, nil
}

// ForegroundLayout is the keyboard layout of the thread owning the
// foreground window. Layouts are per thread on Windows.
func ForegroundLayout() uintptr {
	hwnd, _, _ := procGetForegroundWindow.Call()
	var tid uintptr
	if hwnd != 0 {
		tid, _, _ = procGetWindowThreadProcessId.Call(hwnd, 0)
	}
	hkl, _, _ := procGetKeyboardLayout.Call(tid)
	return hkl
}

// KeyState is a GetKeyboardState style array: bit 0x80 marks a key down,
// bit 0x01 a toggle on.
type KeyState [256]byte

// Translate returns the text vk types under state in layout hkl. Dead keys
// come back with dead set and their spacing character as text.
func Translate(vk uint32, state *KeyState, hkl uintptr) (text string, dead bool, ok bool) {
	scan, _, _ := procMapVirtualKeyExW.Call(uintptr(vk), mapvkVKToVSC, hkl)

	var buf [8]uint16
	n, _, _ := procToUnicodeEx.Call(
		uintptr(vk),
		scan,
		uintptr(unsafe.Pointer(&state[0])),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		toUnicodeNoStateChange,
		hkl,
	)
	switch c := int32(n); {
	case c < 0:
		return string(utf16.Decode(buf[:1])), true, true
	case c > 0:
		return string(utf16.Decode(buf[:min(int(c), len(buf))])), false, true
	}
	return "", false, false
}
