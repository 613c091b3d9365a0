package inputhook

// Linux input-event-codes KEY_* values.
var evdevCodes = newCodeTable([]codePair{
	{KeyEscape, 1},
	{KeyNum1, 2},
	{KeyNum2, 3},
	{KeyNum3, 4},
	{KeyNum4, 5},
	{KeyNum5, 6},
	{KeyNum6, 7},
	{KeyNum7, 8},
	{KeyNum8, 9},
	{KeyNum9, 10},
	{KeyNum0, 11},
	{KeyMinus, 12},
	{KeyEqual, 13},
	{KeyBackspace, 14},
	{KeyTab, 15},
	{KeyQ, 16},
	{KeyW, 17},
	{KeyE, 18},
	{KeyR, 19},
	{KeyT, 20},
	{KeyY, 21},
	{KeyU, 22},
	{KeyI, 23},
	{KeyO, 24},
	{KeyP, 25},
	{KeyLeftBracket, 26},
	{KeyRightBracket, 27},
	{KeyReturn, 28},
	{KeyControlLeft, 29},
	{KeyA, 30},
	{KeyS, 31},
	{KeyD, 32},
	{KeyF, 33},
	{KeyG, 34},
	{KeyH, 35},
	{KeyJ, 36},
	{KeyK, 37},
	{KeyL, 38},
	{KeySemiColon, 39},
	{KeyQuote, 40},
	{KeyBackQuote, 41},
	{KeyShiftLeft, 42},
	{KeyBackSlash, 43},
	{KeyZ, 44},
	{KeyX, 45},
	{KeyC, 46},
	{KeyV, 47},
	{KeyB, 48},
	{KeyN, 49},
	{KeyM, 50},
	{KeyComma, 51},
	{KeyDot, 52},
	{KeySlash, 53},
	{KeyShiftRight, 54},
	{KeyKpMultiply, 55},
	{KeyAlt, 56},
	{KeySpace, 57},
	{KeyCapsLock, 58},
	{KeyF1, 59},
	{KeyF2, 60},
	{KeyF3, 61},
	{KeyF4, 62},
	{KeyF5, 63},
	{KeyF6, 64},
	{KeyF7, 65},
	{KeyF8, 66},
	{KeyF9, 67},
	{KeyF10, 68},
	{KeyNumLock, 69},
	{KeyScrollLock, 70},
	{KeyKp7, 71},
	{KeyKp8, 72},
	{KeyKp9, 73},
	{KeyKpMinus, 74},
	{KeyKp4, 75},
	{KeyKp5, 76},
	{KeyKp6, 77},
	{KeyKpPlus, 78},
	{KeyKp1, 79},
	{KeyKp2, 80},
	{KeyKp3, 81},
	{KeyKp0, 82},
	{KeyKpDelete, 83},
	{KeyIntlBackslash, 86},
	{KeyF11, 87},
	{KeyF12, 88},
	{KeyKpReturn, 96},
	{KeyControlRight, 97},
	{KeyKpDivide, 98},
	{KeyPrintScreen, 99},
	{KeyAltGr, 100},
	{KeyHome, 102},
	{KeyUpArrow, 103},
	{KeyPageUp, 104},
	{KeyLeftArrow, 105},
	{KeyRightArrow, 106},
	{KeyEnd, 107},
	{KeyDownArrow, 108},
	{KeyPageDown, 109},
	{KeyInsert, 110},
	{KeyDelete, 111},
	{KeyPause, 119},
	{KeyMetaLeft, 125},
	{KeyMetaRight, 126},
	{KeyFunction, 464},
})
