package inputhook

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// combiningMarks maps the spacing form of an accent to its combining mark.
var combiningMarks = map[rune]rune{
	'`':      '\u0300',
	'\'':     '\u0301',
	'\u00b4': '\u0301',
	'^':      '\u0302',
	'~':      '\u0303',
	'\u00af': '\u0304',
	'\u02d8': '\u0306',
	'\u02d9': '\u0307',
	'"':      '\u0308',
	'\u00a8': '\u0308',
	'\u02da': '\u030a',
	'\u00b0': '\u030a',
	'\u02dd': '\u030b',
	'\u02c7': '\u030c',
	'\u00b8': '\u0327',
	'\u02db': '\u0328',
}

// composeDead combines a pending dead accent with the text of the next key.
// Space yields the accent itself. Pairs with no precomposed form come back
// as accent followed by text.
func composeDead(accent rune, text string) string {
	if text == " " {
		return string(accent)
	}
	mark, ok := combiningMarks[accent]
	if !ok || utf8.RuneCountInString(text) != 1 {
		return string(accent) + text
	}
	composed := norm.NFC.String(text + string(mark))
	if utf8.RuneCountInString(composed) != 1 {
		return string(accent) + text
	}
	return composed
}
