//go:build windows

package winhook

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/jetkvm/inputhook/internal/logging"
	"golang.org/x/sys/windows"
)

var logger = logging.Subsystem("winhook")

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procGetModuleHandleW    = kernel32.NewProc("GetModuleHandleW")
)

const (
	whKeyboardLL = 13
	whMouseLL    = 14
	hcAction     = 0
	wmQuit       = 0x0012
)

type msg struct {
	Hwnd    windows.Handle
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// Handlers receive decoded events on the hook thread. Returning true
// swallows the event so no application sees it.
type Handlers struct {
	Keyboard func(KeyEvent) bool
	Mouse    func(MouseEvent) bool
}

// Hook is a keyboard and mouse low-level hook pair running a message loop
// on its own locked OS thread.
type Hook struct {
	handlers Handlers
	threadID uint32
	done     chan struct{}
	stopOnce sync.Once
}

// hooks maps hook thread ids to their Hook. Low-level hook procedures run
// on the thread that installed them.
var hooks sync.Map

var (
	keyboardCallback = windows.NewCallback(keyboardProc)
	mouseCallback    = windows.NewCallback(mouseProc)
)

// Start installs both hooks and returns once they are live.
func Start(h Handlers) (*Hook, error) {
	hk := &Hook{handlers: h, done: make(chan struct{})}
	started := make(chan error, 1)
	go hk.run(started)
	if err := <-started; err != nil {
		<-hk.done
		return nil, err
	}
	return hk, nil
}

func (hk *Hook) run(started chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(hk.done)

	hk.threadID = windows.GetCurrentThreadId()
	hooks.Store(hk.threadID, hk)
	defer hooks.Delete(hk.threadID)

	mod, _, _ := procGetModuleHandleW.Call(0)
	kbd, _, err := procSetWindowsHookExW.Call(whKeyboardLL, keyboardCallback, mod, 0)
	if kbd == 0 {
		started <- fmt.Errorf("SetWindowsHookExW(WH_KEYBOARD_LL): %w", err)
		return
	}
	defer procUnhookWindowsHookEx.Call(kbd)

	mouse, _, err := procSetWindowsHookExW.Call(whMouseLL, mouseCallback, mod, 0)
	if mouse == 0 {
		started <- fmt.Errorf("SetWindowsHookExW(WH_MOUSE_LL): %w", err)
		return
	}
	defer procUnhookWindowsHookEx.Call(mouse)

	started <- nil
	logger().Debug().Uint32("thread", hk.threadID).Msg("low-level hooks installed")

	var m msg
	for {
		r, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r) {
		case 0:
			return
		case -1:
			logger().Error().Err(err).Msg("GetMessageW failed")
			return
		}
	}
}

// Stop ends the message loop. It is safe to call more than once.
func (hk *Hook) Stop() {
	hk.stopOnce.Do(func() {
		r, _, err := procPostThreadMessageW.Call(uintptr(hk.threadID), wmQuit, 0, 0)
		if r == 0 && !errors.Is(err, windows.ERROR_SUCCESS) {
			logger().Warn().Err(err).Msg("PostThreadMessageW failed")
		}
	})
}

// Wait blocks until the hooks are removed.
func (hk *Hook) Wait() {
	<-hk.done
}

func current() *Hook {
	v, ok := hooks.Load(windows.GetCurrentThreadId())
	if !ok {
		return nil
	}
	return v.(*Hook)
}

func callNext(nCode int, wParam, lParam uintptr) uintptr {
	r, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return r
}

func keyboardProc(nCode int, wParam, lParam uintptr) uintptr {
	if nCode == hcAction {
		if hk := current(); hk != nil && hk.handlers.Keyboard != nil {
			b := unsafe.Slice((*byte)(unsafe.Pointer(lParam)), KeyboardPayloadSize)
			ev, err := DecodeKeyboard(wParam, b)
			if err != nil {
				logger().Trace().Err(err).Msg("undecodable keyboard hook payload")
			} else if hk.handlers.Keyboard(ev) {
				return 1
			}
		}
	}
	return callNext(nCode, wParam, lParam)
}

func mouseProc(nCode int, wParam, lParam uintptr) uintptr {
	if nCode == hcAction {
		if hk := current(); hk != nil && hk.handlers.Mouse != nil {
			b := unsafe.Slice((*byte)(unsafe.Pointer(lParam)), MousePayloadSize)
			ev, err := DecodeMouse(wParam, b)
			if err != nil {
				logger().Trace().Err(err).Msg("undecodable mouse hook payload")
			} else if hk.handlers.Mouse(ev) {
				return 1
			}
		}
	}
	return callNext(nCode, wParam, lParam)
}
