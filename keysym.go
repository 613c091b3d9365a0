package inputhook

// X11 keysyms that produce text but are not Latin-1 or Unicode keysyms.
var keysymSpecials = map[uint32]string{
	0xff08: "\b",
	0xff09: "\t",
	0xff0a: "\n",
	0xff0d: "\r",
	0xff1b: "\x1b",
	0xffff: "\x7f",
	0xfe20: "\t", // ISO_Left_Tab
	0xff80: " ",  // KP_Space
	0xff89: "\t", // KP_Tab
	0xff8d: "\r", // KP_Enter
	0xffaa: "*",
	0xffab: "+",
	0xffac: ",",
	0xffad: "-",
	0xffae: ".",
	0xffaf: "/",
	0xffbd: "=",
}

// keysymDead maps dead_* keysyms to the spacing glyph of their accent.
var keysymDead = map[uint32]rune{
	0xfe50: '`',
	0xfe51: '\u00b4',
	0xfe52: '^',
	0xfe53: '~',
	0xfe54: '\u00af',
	0xfe55: '\u02d8',
	0xfe56: '\u02d9',
	0xfe57: '\u00a8',
	0xfe58: '\u02da',
	0xfe59: '\u02dd',
	0xfe5a: '\u02c7',
	0xfe5b: '\u00b8',
	0xfe5c: '\u02db',
}

const (
	keysymKP0     = 0xffb0
	keysymKP9     = 0xffb9
	keysymUnicode = 0x01000000
)

// keysymText returns the text a keysym types and whether it is a dead key.
//
// TODO: legacy keysym blocks (Latin-2..4, Cyrillic, Greek, Kana) resolve to
// nothing; layouts using them need a translation table.
func keysymText(ks uint32) (string, bool, bool) {
	switch {
	case ks == 0:
		return "", false, false
	case ks >= 0x20 && ks <= 0x7e, ks >= 0xa0 && ks <= 0xff:
		return string(rune(ks)), false, true
	case ks >= keysymUnicode+0x20 && ks <= keysymUnicode+0x10ffff:
		return string(rune(ks - keysymUnicode)), false, true
	case ks >= keysymKP0 && ks <= keysymKP9:
		return string(rune('0' + ks - keysymKP0)), false, true
	}
	if r, ok := keysymDead[ks]; ok {
		return string(r), true, true
	}
	if s, ok := keysymSpecials[ks]; ok {
		return s, false, true
	}
	return "", false, false
}

// isKeypadDigitSym reports whether ks is KP_0..KP_9 or KP_Decimal.
func isKeypadDigitSym(ks uint32) bool {
	return (ks >= keysymKP0 && ks <= keysymKP9) || ks == 0xffae
}
