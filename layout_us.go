package inputhook

// usLevels holds the unshifted and shifted text of a key on US QWERTY.
type usLevels struct {
	base, shifted string
}

var usKeys = map[Key]usLevels{
	KeyBackQuote:     {"`", "~"},
	KeyNum1:          {"1", "!"},
	KeyNum2:          {"2", "@"},
	KeyNum3:          {"3", "#"},
	KeyNum4:          {"4", "$"},
	KeyNum5:          {"5", "%"},
	KeyNum6:          {"6", "^"},
	KeyNum7:          {"7", "&"},
	KeyNum8:          {"8", "*"},
	KeyNum9:          {"9", "("},
	KeyNum0:          {"0", ")"},
	KeyMinus:         {"-", "_"},
	KeyEqual:         {"=", "+"},
	KeyLeftBracket:   {"[", "{"},
	KeyRightBracket:  {"]", "}"},
	KeyBackSlash:     {"\\", "|"},
	KeyIntlBackslash: {"\\", "|"},
	KeySemiColon:     {";", ":"},
	KeyQuote:         {"'", "\""},
	KeyComma:         {",", "<"},
	KeyDot:           {".", ">"},
	KeySlash:         {"/", "?"},
	KeySpace:         {" ", " "},
	KeyTab:           {"\t", "\t"},
	KeyReturn:        {"\r", "\r"},
	KeyKpReturn:      {"\r", "\r"},
	KeyBackspace:     {"\b", "\b"},
	KeyEscape:        {"\x1b", "\x1b"},
	KeyDelete:        {"\x7f", "\x7f"},
	KeyKp0:           {"0", "0"},
	KeyKp1:           {"1", "1"},
	KeyKp2:           {"2", "2"},
	KeyKp3:           {"3", "3"},
	KeyKp4:           {"4", "4"},
	KeyKp5:           {"5", "5"},
	KeyKp6:           {"6", "6"},
	KeyKp7:           {"7", "7"},
	KeyKp8:           {"8", "8"},
	KeyKp9:           {"9", "9"},
	KeyKpDelete:      {".", "."},
	KeyKpPlus:        {"+", "+"},
	KeyKpMinus:       {"-", "-"},
	KeyKpMultiply:    {"*", "*"},
	KeyKpDivide:      {"/", "/"},
}

var usLetters = map[Key]byte{
	KeyA: 'a', KeyB: 'b', KeyC: 'c', KeyD: 'd', KeyE: 'e', KeyF: 'f', KeyG: 'g',
	KeyH: 'h', KeyI: 'i', KeyJ: 'j', KeyK: 'k', KeyL: 'l', KeyM: 'm', KeyN: 'n',
	KeyO: 'o', KeyP: 'p', KeyQ: 'q', KeyR: 'r', KeyS: 's', KeyT: 't', KeyU: 'u',
	KeyV: 'v', KeyW: 'w', KeyX: 'x', KeyY: 'y', KeyZ: 'z',
}

type usLayout struct {
	// dead lists the keys that are dead at a given level, keyed by their text.
	dead map[string]bool
}

// USLayout is the US QWERTY layout with no dead keys. It is the fallback
// when no native layout can be queried.
var USLayout Layout = usLayout{}

// USInternationalLayout is US QWERTY with the US-International dead keys:
// ' " ` ~ ^.
var USInternationalLayout Layout = usLayout{dead: map[string]bool{
	"'": true, "\"": true, "`": true, "~": true, "^": true,
}}

func (l usLayout) Lookup(key Key, mods Modifiers) (string, bool, bool) {
	if c, ok := usLetters[key]; ok {
		if mods.Has(ModControl) {
			return string(rune(c & 0x1f)), false, true
		}
		if mods.Has(ModShift) != mods.Has(ModCapsLock) {
			c -= 'a' - 'A'
		}
		return string(rune(c)), false, true
	}

	lv, ok := usKeys[key]
	if !ok {
		return "", false, false
	}
	text := lv.base
	if mods.Has(ModShift) {
		text = lv.shifted
	}
	return text, l.dead[text], true
}
