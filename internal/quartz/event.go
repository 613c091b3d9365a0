// Package quartz wraps the Quartz event services used on macOS: event taps
// for capture and grab, CGEventPost for injection and UCKeyTranslate for
// layouts. Event and the constants in this file build on every platform so
// the decoding built on them can be tested anywhere.
package quartz

import "errors"

// CGEventType values.
const (
	TypeLeftMouseDown     = 1
	TypeLeftMouseUp       = 2
	TypeRightMouseDown    = 3
	TypeRightMouseUp      = 4
	TypeMouseMoved        = 5
	TypeLeftMouseDragged  = 6
	TypeRightMouseDragged = 7
	TypeKeyDown           = 10
	TypeKeyUp             = 11
	TypeFlagsChanged      = 12
	TypeScrollWheel       = 22
	TypeOtherMouseDown    = 25
	TypeOtherMouseUp      = 26
	TypeOtherMouseDragged = 27

	TypeTapDisabledByTimeout   = 0xFFFFFFFE
	TypeTapDisabledByUserInput = 0xFFFFFFFF
)

// CGMouseButton numbers.
const (
	ButtonLeft   = 0
	ButtonRight  = 1
	ButtonCenter = 2
)

// CGEventFlags. The Flag* masks are device independent, the Dev* bits tell
// the left and right modifier apart.
const (
	FlagAlphaShift  uint64 = 0x00010000
	FlagShift       uint64 = 0x00020000
	FlagControl     uint64 = 0x00040000
	FlagAlternate   uint64 = 0x00080000
	FlagCommand     uint64 = 0x00100000
	FlagSecondaryFn uint64 = 0x00800000

	DevLeftControl    uint64 = 0x00000001
	DevLeftShift      uint64 = 0x00000002
	DevRightShift     uint64 = 0x00000004
	DevLeftCommand    uint64 = 0x00000008
	DevRightCommand   uint64 = 0x00000010
	DevLeftAlternate  uint64 = 0x00000020
	DevRightAlternate uint64 = 0x00000040
	DevRightControl   uint64 = 0x00002000

	DevMask = DevLeftControl | DevLeftShift | DevRightShift | DevLeftCommand |
		DevRightCommand | DevLeftAlternate | DevRightAlternate | DevRightControl
)

// Values stored in kCGEventSourceUserData of every event this package
// posts.
const (
	TagSimulated   int64 = 0x49485331
	TagReplacement int64 = 0x49485232
)

var (
	ErrNotTrusted = errors.New("process is not trusted for accessibility")
	ErrTapCreate  = errors.New("CGEventTapCreate failed")
	ErrNoLayout   = errors.New("no unicode keyboard layout for the current input source")
)

// Event is the part of a CGEvent the hooks need.
type Event struct {
	Type    uint32
	Keycode uint16
	Flags   uint64
	X, Y    float64
	// Button is kCGMouseEventButtonNumber.
	Button int64
	// Scroll point deltas, positive up and left.
	ScrollY, ScrollX int64
	UserData         int64
}

// UCKeyTranslate modifier state bits, Carbon EventModifiers shifted right
// by eight.
const (
	ModCommand  uint32 = 1 << 0
	ModShift    uint32 = 1 << 1
	ModCapsLock uint32 = 1 << 2
	ModOption   uint32 = 1 << 3
	ModControl  uint32 = 1 << 4
)
