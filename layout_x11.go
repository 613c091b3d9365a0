package inputhook

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jetkvm/inputhook/internal/display"
)

// x11Layout resolves keys through the core protocol keyboard mapping.
// Columns 0/1 are group 1 unshifted/shifted, 4/5 the AltGr level.
type x11Layout struct {
	keymap *display.Keymap
}

func newX11Layout(km *display.Keymap) Layout {
	return x11Layout{keymap: km}
}

func (l x11Layout) Lookup(key Key, mods Modifiers) (string, bool, bool) {
	code, ok := x11Codes.code(key)
	if !ok {
		return "", false, false
	}
	syms := l.keymap.Lookup(code)
	if len(syms) == 0 {
		return "", false, false
	}

	lower, upper := column(syms, 0), column(syms, 1)
	if mods.Has(ModAltGr) && column(syms, 4) != 0 {
		lower, upper = column(syms, 4), column(syms, 5)
	}

	lowerText, lowerDead, ok := keysymText(lower)
	if !ok {
		return "", false, false
	}
	upperText, upperDead := lowerText, lowerDead
	if upper != 0 {
		if t, d, ok := keysymText(upper); ok {
			upperText, upperDead = t, d
		}
	} else if isLetter(lowerText) {
		upperText = strings.ToUpper(lowerText)
	}

	shifted := mods.Has(ModShift)
	switch {
	case isLetter(lowerText) && lowerText != upperText:
		shifted = shifted != mods.Has(ModCapsLock)
	case isKeypad(key) && isKeypadDigitSym(upper) && !isKeypadDigitSym(lower):
		// NumLock is assumed on
		shifted = !shifted
	}

	text, dead := lowerText, lowerDead
	if shifted {
		text, dead = upperText, upperDead
	}
	if mods.Has(ModControl) && !dead {
		if c, ok := controlChar(text); ok {
			return c, false, true
		}
	}
	return text, dead, true
}

func column(syms []uint32, i int) uint32 {
	if i < len(syms) {
		return syms[i]
	}
	return 0
}

func isLetter(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size == len(s) && unicode.IsLetter(r) && unicode.ToUpper(r) != unicode.ToLower(r)
}

func isKeypad(k Key) bool {
	switch k {
	case KeyKp0, KeyKp1, KeyKp2, KeyKp3, KeyKp4, KeyKp5, KeyKp6, KeyKp7, KeyKp8, KeyKp9, KeyKpDelete:
		return true
	}
	return false
}

// controlChar maps an ASCII letter to its C0 control character.
func controlChar(s string) (string, bool) {
	if len(s) != 1 {
		return "", false
	}
	c := s[0] | 0x20
	if c < 'a' || c > 'z' {
		return "", false
	}
	return string(rune(c - 'a' + 1)), true
}
