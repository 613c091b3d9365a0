package inputhook

// Win32 virtual-key codes. VK_RETURN covers both Enter keys, the keypad one
// is told apart by the extended flag, so KpReturn has no entry.
var win32Codes = newCodeTable([]codePair{
	{KeyAlt, 164},
	{KeyAltGr, 165},
	{KeyBackspace, 0x08},
	{KeyCapsLock, 20},
	{KeyControlLeft, 162},
	{KeyControlRight, 163},
	{KeyDelete, 46},
	{KeyDownArrow, 40},
	{KeyEnd, 35},
	{KeyEscape, 27},
	{KeyF1, 112},
	{KeyF2, 113},
	{KeyF3, 114},
	{KeyF4, 115},
	{KeyF5, 116},
	{KeyF6, 117},
	{KeyF7, 118},
	{KeyF8, 119},
	{KeyF9, 120},
	{KeyF10, 121},
	{KeyF11, 122},
	{KeyF12, 123},
	{KeyHome, 36},
	{KeyLeftArrow, 37},
	{KeyMetaLeft, 91},
	{KeyMetaRight, 92},
	{KeyPageDown, 34},
	{KeyPageUp, 33},
	{KeyReturn, 0x0D},
	{KeyRightArrow, 39},
	{KeyShiftLeft, 160},
	{KeyShiftRight, 161},
	{KeySpace, 32},
	{KeyTab, 0x09},
	{KeyUpArrow, 38},
	{KeyPrintScreen, 44},
	{KeyScrollLock, 145},
	{KeyPause, 19},
	{KeyNumLock, 144},
	{KeyBackQuote, 192},
	{KeyNum1, 49},
	{KeyNum2, 50},
	{KeyNum3, 51},
	{KeyNum4, 52},
	{KeyNum5, 53},
	{KeyNum6, 54},
	{KeyNum7, 55},
	{KeyNum8, 56},
	{KeyNum9, 57},
	{KeyNum0, 48},
	{KeyMinus, 189},
	{KeyEqual, 187},
	{KeyQ, 'Q'},
	{KeyW, 'W'},
	{KeyE, 'E'},
	{KeyR, 'R'},
	{KeyT, 'T'},
	{KeyY, 'Y'},
	{KeyU, 'U'},
	{KeyI, 'I'},
	{KeyO, 'O'},
	{KeyP, 'P'},
	{KeyLeftBracket, 219},
	{KeyRightBracket, 221},
	{KeyA, 'A'},
	{KeyS, 'S'},
	{KeyD, 'D'},
	{KeyF, 'F'},
	{KeyG, 'G'},
	{KeyH, 'H'},
	{KeyJ, 'J'},
	{KeyK, 'K'},
	{KeyL, 'L'},
	{KeySemiColon, 186},
	{KeyQuote, 222},
	{KeyBackSlash, 220},
	{KeyIntlBackslash, 226},
	{KeyZ, 'Z'},
	{KeyX, 'X'},
	{KeyC, 'C'},
	{KeyV, 'V'},
	{KeyB, 'B'},
	{KeyN, 'N'},
	{KeyM, 'M'},
	{KeyComma, 188},
	{KeyDot, 190},
	{KeySlash, 191},
	{KeyInsert, 45},
	{KeyKpMinus, 109},
	{KeyKpPlus, 107},
	{KeyKpMultiply, 106},
	{KeyKpDivide, 111},
	{KeyKp0, 96},
	{KeyKp1, 97},
	{KeyKp2, 98},
	{KeyKp3, 99},
	{KeyKp4, 100},
	{KeyKp5, 101},
	{KeyKp6, 102},
	{KeyKp7, 103},
	{KeyKp8, 104},
	{KeyKp9, 105},
	{KeyKpDelete, 110},
})
