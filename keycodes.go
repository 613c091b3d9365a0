package inputhook

import "fmt"

// Platform selects a keycode space.
type Platform uint8

const (
	PlatformX11   Platform = iota + 1 // X11 keycode
	PlatformEvdev                     // Linux input-event-codes
	PlatformWin32                     // Win32 virtual-key code
	PlatformMac                       // macOS CGKeyCode
)

func (p Platform) String() string {
	switch p {
	case PlatformX11:
		return "x11"
	case PlatformEvdev:
		return "evdev"
	case PlatformWin32:
		return "win32"
	case PlatformMac:
		return "mac"
	}
	return fmt.Sprintf("Platform(%d)", uint8(p))
}

type codePair struct {
	key  Key
	code uint32
}

// codeTable is a bidirectional Key <-> platform code map. Lookups by code
// never fail: codes without a name come back as UnknownKey(code).
type codeTable struct {
	toCode map[Key]uint32
	toKey  map[uint32]Key
}

func newCodeTable(pairs []codePair) *codeTable {
	t := &codeTable{
		toCode: make(map[Key]uint32, len(pairs)),
		toKey:  make(map[uint32]Key, len(pairs)),
	}
	for _, p := range pairs {
		if _, dup := t.toCode[p.key]; dup {
			panic(fmt.Sprintf("inputhook: key %s mapped twice", p.key))
		}
		if _, dup := t.toKey[p.code]; dup {
			panic(fmt.Sprintf("inputhook: code %d mapped twice", p.code))
		}
		t.toCode[p.key] = p.code
		t.toKey[p.code] = p.key
	}
	return t
}

func (t *codeTable) key(code uint32) Key {
	if k, ok := t.toKey[code]; ok {
		return k
	}
	return UnknownKey(code)
}

func (t *codeTable) code(k Key) (uint32, bool) {
	if raw, ok := k.Unknown(); ok {
		return raw, true
	}
	c, ok := t.toCode[k]
	return c, ok
}

func tableFor(p Platform) *codeTable {
	switch p {
	case PlatformX11:
		return x11Codes
	case PlatformEvdev:
		return evdevCodes
	case PlatformWin32:
		return win32Codes
	case PlatformMac:
		return macCodes
	}
	return nil
}

// KeyFromCode maps a platform keycode to a Key. It is total: unmapped codes
// return UnknownKey(code).
func KeyFromCode(p Platform, code uint32) Key {
	t := tableFor(p)
	if t == nil {
		return UnknownKey(code)
	}
	return t.key(code)
}

// CodeFromKey maps a Key to the platform keycode. Named keys with no
// equivalent on p report false; Unknown keys pass their raw code through.
func CodeFromKey(p Platform, k Key) (uint32, bool) {
	t := tableFor(p)
	if t == nil {
		return 0, false
	}
	return t.code(k)
}

// Linux BTN_* codes.
const (
	evdevBtnLeft   = 0x110
	evdevBtnRight  = 0x111
	evdevBtnMiddle = 0x112
)

func buttonFromEvdev(code uint16) Button {
	switch code {
	case evdevBtnLeft:
		return ButtonLeft
	case evdevBtnRight:
		return ButtonRight
	case evdevBtnMiddle:
		return ButtonMiddle
	}
	return UnknownButton(uint32(code))
}

func evdevFromButton(b Button) (uint16, bool) {
	switch b {
	case ButtonLeft:
		return evdevBtnLeft, true
	case ButtonRight:
		return evdevBtnRight, true
	case ButtonMiddle:
		return evdevBtnMiddle, true
	}
	if code, ok := b.Unknown(); ok && code <= 0xffff {
		return uint16(code), true
	}
	return 0, false
}

func isEvdevButton(code uint16) bool {
	// BTN_MISC..BTN_GEAR_UP and BTN_TRIGGER_HAPPY range
	return ((code >= 0x100 && code < 0x160) || (code >= 0x2c0 && code < 0x2e8)) && !isEvdevDigitizer(code)
}

// isEvdevDigitizer covers BTN_TOOL_* and BTN_TOUCH, which report tool state
// rather than presses.
func isEvdevDigitizer(code uint16) bool {
	return code >= 0x140 && code < 0x150
}
