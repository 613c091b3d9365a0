//go:build darwin

package quartz

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreFoundation/CoreFoundation.h>
#include <CoreGraphics/CoreGraphics.h>
#include <stdint.h>

static CGEventSourceRef newSource(void) {
	return CGEventSourceCreate(kCGEventSourceStateHIDSystemState);
}

static int post(CGEventRef ev, int64_t tag) {
	if (ev == NULL) {
		return 0;
	}
	CGEventSetIntegerValueField(ev, kCGEventSourceUserData, tag);
	CGEventPost(kCGHIDEventTap, ev);
	CFRelease(ev);
	return 1;
}

static int postKey(CGEventSourceRef src, uint16_t code, Boolean down, int64_t tag) {
	return post(CGEventCreateKeyboardEvent(src, (CGKeyCode)code, down), tag);
}

static int postMouse(CGEventSourceRef src, uint32_t type, double x, double y, uint32_t button, int64_t tag) {
	CGEventRef ev = CGEventCreateMouseEvent(src, (CGEventType)type, CGPointMake(x, y), (CGMouseButton)button);
	if (ev != NULL) {
		CGEventSetIntegerValueField(ev, kCGMouseEventButtonNumber, button);
	}
	return post(ev, tag);
}

static int postScroll(CGEventSourceRef src, int32_t dy, int32_t dx, int64_t tag) {
	return post(CGEventCreateScrollWheelEvent(src, kCGScrollEventUnitPixel, 2, dy, dx), tag);
}

static void cursorPos(double *x, double *y) {
	CGEventRef ev = CGEventCreate(NULL);
	CGPoint p = CGPointMake(0, 0);
	if (ev != NULL) {
		p = CGEventGetLocation(ev);
		CFRelease(ev);
	}
	*x = p.x;
	*y = p.y;
}

static void mainDisplaySize(size_t *w, size_t *h) {
	CGDirectDisplayID id = CGMainDisplayID();
	*w = CGDisplayPixelsWide(id);
	*h = CGDisplayPixelsHigh(id);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"sync"
)

var ErrPost = errors.New("could not create event")

var (
	sourceOnce sync.Once
	source     C.CGEventSourceRef
)

// eventSource is shared by every posted event. A nil source is valid and
// only loses the HID system state.
func eventSource() C.CGEventSourceRef {
	sourceOnce.Do(func() {
		source = C.newSource()
	})
	return source
}

func boolean(b bool) C.Boolean {
	if b {
		return 1
	}
	return 0
}

// PostKey posts a key down or up for a virtual keycode.
func PostKey(code uint16, down bool, tag int64) error {
	if C.postKey(eventSource(), C.uint16_t(code), boolean(down), C.int64_t(tag)) == 0 {
		return fmt.Errorf("%w: key %d", ErrPost, code)
	}
	return nil
}

// PostMouse posts a mouse event of CGEventType typ at x, y. button is the
// CGMouseButton for button and drag events.
func PostMouse(typ uint32, x, y float64, button uint32, tag int64) error {
	if C.postMouse(eventSource(), C.uint32_t(typ), C.double(x), C.double(y), C.uint32_t(button), C.int64_t(tag)) == 0 {
		return fmt.Errorf("%w: mouse type %d", ErrPost, typ)
	}
	return nil
}

// PostScroll posts a pixel scroll. dy > 0 scrolls up, dx > 0 left.
func PostScroll(dy, dx int32, tag int64) error {
	if C.postScroll(eventSource(), C.int32_t(dy), C.int32_t(dx), C.int64_t(tag)) == 0 {
		return fmt.Errorf("%w: scroll", ErrPost)
	}
	return nil
}

// CursorPos is the pointer location in global display coordinates.
func CursorPos() (float64, float64) {
	var x, y C.double
	C.cursorPos(&x, &y)
	return float64(x), float64(y)
}

// DisplaySize is the main display size in the units events use.
func DisplaySize() (uint64, uint64, error) {
	var w, h C.size_t
	C.mainDisplaySize(&w, &h)
	if w == 0 || h == 0 {
		return 0, 0, errors.New("main display reported an empty size")
	}
	return uint64(w), uint64(h), nil
}
