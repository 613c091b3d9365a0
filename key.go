package inputhook

import (
	"strconv"
	"strings"
)

// Key identifies a physical key by position, named after the US QWERTY
// legend. Keys without a name carry their raw platform code, see UnknownKey.
type Key uint64

const unknownTag = 1 << 32

const (
	KeyAlt Key = iota + 1
	KeyAltGr
	KeyBackspace
	KeyCapsLock
	KeyControlLeft
	KeyControlRight
	KeyDelete
	KeyDownArrow
	KeyEnd
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyHome
	KeyLeftArrow
	KeyMetaLeft
	KeyMetaRight
	KeyPageDown
	KeyPageUp
	KeyReturn
	KeyRightArrow
	KeyShiftLeft
	KeyShiftRight
	KeySpace
	KeyTab
	KeyUpArrow
	KeyPrintScreen
	KeyScrollLock
	KeyPause
	KeyNumLock
	KeyBackQuote
	KeyNum1
	KeyNum2
	KeyNum3
	KeyNum4
	KeyNum5
	KeyNum6
	KeyNum7
	KeyNum8
	KeyNum9
	KeyNum0
	KeyMinus
	KeyEqual
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyI
	KeyO
	KeyP
	KeyLeftBracket
	KeyRightBracket
	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyH
	KeyJ
	KeyK
	KeyL
	KeySemiColon
	KeyQuote
	KeyBackSlash
	KeyIntlBackslash
	KeyZ
	KeyX
	KeyC
	KeyV
	KeyB
	KeyN
	KeyM
	KeyComma
	KeyDot
	KeySlash
	KeyInsert
	KeyKpReturn
	KeyKpMinus
	KeyKpPlus
	KeyKpMultiply
	KeyKpDivide
	KeyKp0
	KeyKp1
	KeyKp2
	KeyKp3
	KeyKp4
	KeyKp5
	KeyKp6
	KeyKp7
	KeyKp8
	KeyKp9
	KeyKpDelete
	KeyFunction

	keyCount = int(KeyFunction)
)

var keyNames = [...]string{
	KeyAlt:           "Alt",
	KeyAltGr:         "AltGr",
	KeyBackspace:     "Backspace",
	KeyCapsLock:      "CapsLock",
	KeyControlLeft:   "ControlLeft",
	KeyControlRight:  "ControlRight",
	KeyDelete:        "Delete",
	KeyDownArrow:     "DownArrow",
	KeyEnd:           "End",
	KeyEscape:        "Escape",
	KeyF1:            "F1",
	KeyF2:            "F2",
	KeyF3:            "F3",
	KeyF4:            "F4",
	KeyF5:            "F5",
	KeyF6:            "F6",
	KeyF7:            "F7",
	KeyF8:            "F8",
	KeyF9:            "F9",
	KeyF10:           "F10",
	KeyF11:           "F11",
	KeyF12:           "F12",
	KeyHome:          "Home",
	KeyLeftArrow:     "LeftArrow",
	KeyMetaLeft:      "MetaLeft",
	KeyMetaRight:     "MetaRight",
	KeyPageDown:      "PageDown",
	KeyPageUp:        "PageUp",
	KeyReturn:        "Return",
	KeyRightArrow:    "RightArrow",
	KeyShiftLeft:     "ShiftLeft",
	KeyShiftRight:    "ShiftRight",
	KeySpace:         "Space",
	KeyTab:           "Tab",
	KeyUpArrow:       "UpArrow",
	KeyPrintScreen:   "PrintScreen",
	KeyScrollLock:    "ScrollLock",
	KeyPause:         "Pause",
	KeyNumLock:       "NumLock",
	KeyBackQuote:     "BackQuote",
	KeyNum1:          "Num1",
	KeyNum2:          "Num2",
	KeyNum3:          "Num3",
	KeyNum4:          "Num4",
	KeyNum5:          "Num5",
	KeyNum6:          "Num6",
	KeyNum7:          "Num7",
	KeyNum8:          "Num8",
	KeyNum9:          "Num9",
	KeyNum0:          "Num0",
	KeyMinus:         "Minus",
	KeyEqual:         "Equal",
	KeyQ:             "KeyQ",
	KeyW:             "KeyW",
	KeyE:             "KeyE",
	KeyR:             "KeyR",
	KeyT:             "KeyT",
	KeyY:             "KeyY",
	KeyU:             "KeyU",
	KeyI:             "KeyI",
	KeyO:             "KeyO",
	KeyP:             "KeyP",
	KeyLeftBracket:   "LeftBracket",
	KeyRightBracket:  "RightBracket",
	KeyA:             "KeyA",
	KeyS:             "KeyS",
	KeyD:             "KeyD",
	KeyF:             "KeyF",
	KeyG:             "KeyG",
	KeyH:             "KeyH",
	KeyJ:             "KeyJ",
	KeyK:             "KeyK",
	KeyL:             "KeyL",
	KeySemiColon:     "SemiColon",
	KeyQuote:         "Quote",
	KeyBackSlash:     "BackSlash",
	KeyIntlBackslash: "IntlBackslash",
	KeyZ:             "KeyZ",
	KeyX:             "KeyX",
	KeyC:             "KeyC",
	KeyV:             "KeyV",
	KeyB:             "KeyB",
	KeyN:             "KeyN",
	KeyM:             "KeyM",
	KeyComma:         "Comma",
	KeyDot:           "Dot",
	KeySlash:         "Slash",
	KeyInsert:        "Insert",
	KeyKpReturn:      "KpReturn",
	KeyKpMinus:       "KpMinus",
	KeyKpPlus:        "KpPlus",
	KeyKpMultiply:    "KpMultiply",
	KeyKpDivide:      "KpDivide",
	KeyKp0:           "Kp0",
	KeyKp1:           "Kp1",
	KeyKp2:           "Kp2",
	KeyKp3:           "Kp3",
	KeyKp4:           "Kp4",
	KeyKp5:           "Kp5",
	KeyKp6:           "Kp6",
	KeyKp7:           "Kp7",
	KeyKp8:           "Kp8",
	KeyKp9:           "Kp9",
	KeyKpDelete:      "KpDelete",
	KeyFunction:      "Function",
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key, keyCount*2)
	for k := 1; k <= keyCount; k++ {
		name := keyNames[k]
		m[strings.ToLower(name)] = Key(k)
		if len(name) == 4 && strings.HasPrefix(name, "Key") {
			m[strings.ToLower(name[3:])] = Key(k)
		}
	}
	return m
}()

// UnknownKey wraps a raw platform code that has no named Key.
func UnknownKey(code uint32) Key {
	return unknownTag | Key(code)
}

// Unknown returns the raw platform code of a key built with UnknownKey.
func (k Key) Unknown() (uint32, bool) {
	if k&unknownTag == 0 {
		return 0, false
	}
	return uint32(k), true
}

// Valid reports whether k is a named key or an Unknown code.
func (k Key) Valid() bool {
	if _, ok := k.Unknown(); ok {
		return k>>33 == 0
	}
	return k >= 1 && int(k) <= keyCount
}

func (k Key) String() string {
	if code, ok := k.Unknown(); ok {
		return "Unknown(" + strconv.FormatUint(uint64(code), 10) + ")"
	}
	if k.Valid() {
		return keyNames[k]
	}
	return "Key(" + strconv.FormatUint(uint64(k), 10) + ")"
}

// ParseKey looks a named key up by its String form, ignoring case.
// Letter keys are also accepted bare ("s" for KeyS).
func ParseKey(s string) (Key, bool) {
	k, ok := keysByName[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

// IsModifier reports whether k only changes how other keys resolve.
func IsModifier(k Key) bool {
	switch k {
	case KeyShiftLeft, KeyShiftRight, KeyCapsLock,
		KeyControlLeft, KeyControlRight,
		KeyAlt, KeyAltGr, KeyMetaLeft, KeyMetaRight,
		KeyFunction, KeyNumLock:
		return true
	}
	return false
}

// AllKeys lists every named key in declaration order.
func AllKeys() []Key {
	keys := make([]Key, 0, keyCount)
	for k := 1; k <= keyCount; k++ {
		keys = append(keys, Key(k))
	}
	return keys
}
