package inputhook

// X11 keycodes as produced by the evdev xkb keymap (evdev code + 8).
var x11Codes = newCodeTable([]codePair{
	{KeyAlt, 64},
	{KeyAltGr, 108},
	{KeyBackspace, 22},
	{KeyCapsLock, 66},
	{KeyControlLeft, 37},
	{KeyControlRight, 105},
	{KeyDelete, 119},
	{KeyDownArrow, 116},
	{KeyEnd, 115},
	{KeyEscape, 9},
	{KeyF1, 67},
	{KeyF2, 68},
	{KeyF3, 69},
	{KeyF4, 70},
	{KeyF5, 71},
	{KeyF6, 72},
	{KeyF7, 73},
	{KeyF8, 74},
	{KeyF9, 75},
	{KeyF10, 76},
	{KeyF11, 95},
	{KeyF12, 96},
	{KeyHome, 110},
	{KeyLeftArrow, 113},
	{KeyMetaLeft, 133},
	{KeyMetaRight, 134},
	{KeyPageDown, 117},
	{KeyPageUp, 112},
	{KeyReturn, 36},
	{KeyRightArrow, 114},
	{KeyShiftLeft, 50},
	{KeyShiftRight, 62},
	{KeySpace, 65},
	{KeyTab, 23},
	{KeyUpArrow, 111},
	{KeyPrintScreen, 107},
	{KeyScrollLock, 78},
	{KeyPause, 127},
	{KeyNumLock, 77},
	{KeyBackQuote, 49},
	{KeyNum1, 10},
	{KeyNum2, 11},
	{KeyNum3, 12},
	{KeyNum4, 13},
	{KeyNum5, 14},
	{KeyNum6, 15},
	{KeyNum7, 16},
	{KeyNum8, 17},
	{KeyNum9, 18},
	{KeyNum0, 19},
	{KeyMinus, 20},
	{KeyEqual, 21},
	{KeyQ, 24},
	{KeyW, 25},
	{KeyE, 26},
	{KeyR, 27},
	{KeyT, 28},
	{KeyY, 29},
	{KeyU, 30},
	{KeyI, 31},
	{KeyO, 32},
	{KeyP, 33},
	{KeyLeftBracket, 34},
	{KeyRightBracket, 35},
	{KeyA, 38},
	{KeyS, 39},
	{KeyD, 40},
	{KeyF, 41},
	{KeyG, 42},
	{KeyH, 43},
	{KeyJ, 44},
	{KeyK, 45},
	{KeyL, 46},
	{KeySemiColon, 47},
	{KeyQuote, 48},
	{KeyBackSlash, 51},
	{KeyIntlBackslash, 94},
	{KeyZ, 52},
	{KeyX, 53},
	{KeyC, 54},
	{KeyV, 55},
	{KeyB, 56},
	{KeyN, 57},
	{KeyM, 58},
	{KeyComma, 59},
	{KeyDot, 60},
	{KeySlash, 61},
	{KeyInsert, 118},
	{KeyKpReturn, 104},
	{KeyKpMinus, 82},
	{KeyKpPlus, 86},
	{KeyKpMultiply, 63},
	{KeyKpDivide, 106},
	{KeyKp0, 90},
	{KeyKp1, 87},
	{KeyKp2, 88},
	{KeyKp3, 89},
	{KeyKp4, 83},
	{KeyKp5, 84},
	{KeyKp6, 85},
	{KeyKp7, 79},
	{KeyKp8, 80},
	{KeyKp9, 81},
	{KeyKpDelete, 91},
})
