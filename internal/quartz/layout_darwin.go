//go:build darwin

package quartz

/*
#cgo LDFLAGS: -framework Carbon -framework CoreFoundation
#include <Carbon/Carbon.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdint.h>

static CFDataRef copyLayoutData(void) {
	TISInputSourceRef src = TISCopyCurrentKeyboardInputSource();
	CFDataRef data = NULL;
	if (src != NULL) {
		data = (CFDataRef)TISGetInputSourceProperty(src, kTISPropertyUnicodeKeyLayoutData);
	}
	if (data == NULL) {
		// input methods such as the CJK ones have no layout data of their own
		if (src != NULL) {
			CFRelease(src);
		}
		src = TISCopyCurrentKeyboardLayoutInputSource();
		if (src == NULL) {
			return NULL;
		}
		data = (CFDataRef)TISGetInputSourceProperty(src, kTISPropertyUnicodeKeyLayoutData);
	}
	if (data != NULL) {
		CFRetain(data);
	}
	CFRelease(src);
	return data;
}

static int translate(CFDataRef data, uint16_t code, uint32_t mods, uint32_t *dead, UniChar *buf, int cap) {
	const UCKeyboardLayout *layout = (const UCKeyboardLayout *)CFDataGetBytePtr(data);
	UniCharCount n = 0;
	OSStatus st = UCKeyTranslate(layout, code, kUCKeyActionDown, mods, LMGetKbdType(),
		0, dead, (UniCharCount)cap, &n, buf);
	if (st != noErr) {
		return -1;
	}
	return (int)n;
}
*/
import "C"

import (
	"fmt"
	"unicode/utf16"
)

const keycodeSpace = 49

// KeyLayout holds the unicode layout data of the input source that was
// current when it was loaded.
type KeyLayout struct {
	data C.CFDataRef
}

// CurrentLayout loads the layout of the current input source.
func CurrentLayout() (*KeyLayout, error) {
	data := C.copyLayoutData()
	if data == 0 {
		return nil, ErrNoLayout
	}
	return &KeyLayout{data: data}, nil
}

// Translate runs UCKeyTranslate for a key down of code under the modifier
// state mods (Mod* bits). dead carries the dead key state between calls: a
// dead key returns no text and leaves dead non-zero.
func (l *KeyLayout) Translate(code uint16, mods uint32, dead *uint32) (string, error) {
	var buf [8]C.UniChar
	state := C.uint32_t(*dead)
	n := C.translate(l.data, C.uint16_t(code), C.uint32_t(mods), &state, &buf[0], C.int(len(buf)))
	*dead = uint32(state)
	if n < 0 {
		return "", fmt.Errorf("UCKeyTranslate failed for keycode %d", code)
	}
	u := make([]uint16, int(n))
	for i := range u {
		u[i] = uint16(buf[i])
	}
	return string(utf16.Decode(u)), nil
}

// DeadGlyph returns the spacing form of the accent a pending dead state
// would add, by typing Space on top of it.
func (l *KeyLayout) DeadGlyph(dead uint32) (string, error) {
	return l.Translate(keycodeSpace, 0, &dead)
}
