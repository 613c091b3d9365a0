//go:build darwin

package quartz

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>
#include <CoreFoundation/CoreFoundation.h>
#include <CoreGraphics/CoreGraphics.h>
#include <stdint.h>

extern int goTapEvent(CGEventType type, CGEventRef event, uintptr_t handle);

static CGEventRef tapCallback(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *userInfo) {
	if (goTapEvent(type, event, (uintptr_t)userInfo)) {
		return NULL;
	}
	return event;
}

static Boolean axTrusted(void) {
	return AXIsProcessTrusted();
}

static CFMachPortRef createTap(uintptr_t handle, Boolean active) {
	CGEventMask mask =
		CGEventMaskBit(kCGEventKeyDown) | CGEventMaskBit(kCGEventKeyUp) |
		CGEventMaskBit(kCGEventFlagsChanged) |
		CGEventMaskBit(kCGEventLeftMouseDown) | CGEventMaskBit(kCGEventLeftMouseUp) |
		CGEventMaskBit(kCGEventRightMouseDown) | CGEventMaskBit(kCGEventRightMouseUp) |
		CGEventMaskBit(kCGEventOtherMouseDown) | CGEventMaskBit(kCGEventOtherMouseUp) |
		CGEventMaskBit(kCGEventMouseMoved) | CGEventMaskBit(kCGEventLeftMouseDragged) |
		CGEventMaskBit(kCGEventRightMouseDragged) | CGEventMaskBit(kCGEventOtherMouseDragged) |
		CGEventMaskBit(kCGEventScrollWheel);
	return CGEventTapCreate(kCGSessionEventTap, kCGHeadInsertEventTap,
		active ? kCGEventTapOptionDefault : kCGEventTapOptionListenOnly,
		mask, tapCallback, (void *)handle);
}

static CFRunLoopSourceRef addToCurrentLoop(CFMachPortRef tap) {
	CFRunLoopSourceRef source = CFMachPortCreateRunLoopSource(kCFAllocatorDefault, tap, 0);
	if (source != NULL) {
		CFRunLoopAddSource(CFRunLoopGetCurrent(), source, kCFRunLoopCommonModes);
		CGEventTapEnable(tap, true);
	}
	return source;
}

static void runFor(double seconds) {
	CFRunLoopRunInMode(kCFRunLoopDefaultMode, seconds, false);
}

static void readEvent(CGEventRef ev, uint16_t *keycode, uint64_t *flags, double *x, double *y,
		int64_t *button, int64_t *scrollY, int64_t *scrollX, int64_t *userData) {
	CGPoint p = CGEventGetLocation(ev);
	*x = p.x;
	*y = p.y;
	*keycode = (uint16_t)CGEventGetIntegerValueField(ev, kCGKeyboardEventKeycode);
	*flags = (uint64_t)CGEventGetFlags(ev);
	*button = CGEventGetIntegerValueField(ev, kCGMouseEventButtonNumber);
	*scrollY = CGEventGetIntegerValueField(ev, kCGScrollWheelEventPointDeltaAxis1);
	*scrollX = CGEventGetIntegerValueField(ev, kCGScrollWheelEventPointDeltaAxis2);
	*userData = CGEventGetIntegerValueField(ev, kCGEventSourceUserData);
}
*/
import "C"

import (
	"runtime"
	"runtime/cgo"
	"sync"
	"sync/atomic"

	"github.com/jetkvm/inputhook/internal/logging"
)

var logger = logging.Subsystem("quartz")

// Handler receives every tapped event on the tap's run loop thread.
// Returning true swallows the event; listen-only taps ignore the result.
type Handler func(Event) bool

// Tap is a session event tap with its own run loop on a locked OS thread.
type Tap struct {
	handler Handler
	port    C.CFMachPortRef
	loop    C.CFRunLoopRef

	stopping atomic.Bool
	stopOnce sync.Once
	done     chan struct{}
}

// Trusted reports whether the process may create active taps and post
// events.
func Trusted() bool {
	return C.axTrusted() != 0
}

// Start creates a tap and returns once it is enabled. Active taps can
// swallow events.
func Start(active bool, h Handler) (*Tap, error) {
	if active && !Trusted() {
		return nil, ErrNotTrusted
	}
	t := &Tap{handler: h, done: make(chan struct{})}
	started := make(chan error, 1)
	go t.run(active, started)
	if err := <-started; err != nil {
		<-t.done
		return nil, err
	}
	return t, nil
}

func (t *Tap) run(active bool, started chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(t.done)

	handle := cgo.NewHandle(t)
	defer handle.Delete()

	var act C.Boolean
	if active {
		act = 1
	}
	t.port = C.createTap(C.uintptr_t(handle), act)
	if t.port == 0 {
		started <- ErrTapCreate
		return
	}
	defer C.CFRelease(C.CFTypeRef(t.port))
	defer C.CFMachPortInvalidate(t.port)

	source := C.addToCurrentLoop(t.port)
	if source == 0 {
		started <- ErrTapCreate
		return
	}
	defer C.CFRelease(C.CFTypeRef(source))
	t.loop = C.CFRunLoopGetCurrent()

	started <- nil
	logger().Debug().Bool("active", active).Msg("event tap enabled")

	// a stop landing between the check and the run is picked up on the
	// next timeout
	for !t.stopping.Load() {
		C.runFor(0.25)
	}
	C.CGEventTapEnable(t.port, false)
}

// Stop ends the run loop. Safe to call more than once.
func (t *Tap) Stop() {
	t.stopOnce.Do(func() {
		t.stopping.Store(true)
		C.CFRunLoopStop(t.loop)
	})
}

// Wait blocks until the tap is removed.
func (t *Tap) Wait() {
	<-t.done
}

func readEvent(typ C.CGEventType, ev C.CGEventRef) Event {
	var (
		keycode                            C.uint16_t
		flags                              C.uint64_t
		x, y                               C.double
		button, scrollY, scrollX, userData C.int64_t
	)
	C.readEvent(ev, &keycode, &flags, &x, &y, &button, &scrollY, &scrollX, &userData)
	return Event{
		Type:     uint32(typ),
		Keycode:  uint16(keycode),
		Flags:    uint64(flags),
		X:        float64(x),
		Y:        float64(y),
		Button:   int64(button),
		ScrollY:  int64(scrollY),
		ScrollX:  int64(scrollX),
		UserData: int64(userData),
	}
}

// goTapEvent returns 1 to swallow the event.
//
//export goTapEvent
func goTapEvent(typ C.CGEventType, ev C.CGEventRef, handle C.uintptr_t) C.int {
	t, ok := cgo.Handle(handle).Value().(*Tap)
	if !ok {
		return 0
	}
	switch uint32(typ) {
	case TypeTapDisabledByTimeout, TypeTapDisabledByUserInput:
		if !t.stopping.Load() {
			logger().Warn().Uint32("reason", uint32(typ)).Msg("event tap disabled by the system, re-enabling")
			C.CGEventTapEnable(t.port, true)
		}
		return 0
	}
	if t.handler(readEvent(typ, ev)) {
		return 1
	}
	return 0
}
