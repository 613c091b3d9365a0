package inputhook

// macOS virtual keycodes (kVK_* from HIToolbox Events.h).
var macCodes = newCodeTable([]codePair{
	{KeyAlt, 58},
	{KeyAltGr, 61},
	{KeyBackspace, 51},
	{KeyCapsLock, 57},
	{KeyControlLeft, 59},
	{KeyControlRight, 62},
	{KeyDelete, 117},
	{KeyDownArrow, 125},
	{KeyEnd, 119},
	{KeyEscape, 53},
	{KeyF1, 122},
	{KeyF2, 120},
	{KeyF3, 99},
	{KeyF4, 118},
	{KeyF5, 96},
	{KeyF6, 97},
	{KeyF7, 98},
	{KeyF8, 100},
	{KeyF9, 101},
	{KeyF10, 109},
	{KeyF11, 103},
	{KeyF12, 111},
	{KeyFunction, 63},
	{KeyHome, 115},
	{KeyLeftArrow, 123},
	{KeyMetaLeft, 55},
	{KeyMetaRight, 54},
	{KeyPageDown, 121},
	{KeyPageUp, 116},
	{KeyReturn, 36},
	{KeyRightArrow, 124},
	{KeyShiftLeft, 56},
	{KeyShiftRight, 60},
	{KeySpace, 49},
	{KeyTab, 48},
	{KeyUpArrow, 126},
	{KeyBackQuote, 50},
	{KeyNum1, 18},
	{KeyNum2, 19},
	{KeyNum3, 20},
	{KeyNum4, 21},
	{KeyNum5, 23},
	{KeyNum6, 22},
	{KeyNum7, 26},
	{KeyNum8, 28},
	{KeyNum9, 25},
	{KeyNum0, 29},
	{KeyMinus, 27},
	{KeyEqual, 24},
	{KeyQ, 12},
	{KeyW, 13},
	{KeyE, 14},
	{KeyR, 15},
	{KeyT, 17},
	{KeyY, 16},
	{KeyU, 32},
	{KeyI, 34},
	{KeyO, 31},
	{KeyP, 35},
	{KeyLeftBracket, 33},
	{KeyRightBracket, 30},
	{KeyA, 0},
	{KeyS, 1},
	{KeyD, 2},
	{KeyF, 3},
	{KeyG, 5},
	{KeyH, 4},
	{KeyJ, 38},
	{KeyK, 40},
	{KeyL, 37},
	{KeySemiColon, 41},
	{KeyQuote, 39},
	{KeyBackSlash, 42},
	{KeyIntlBackslash, 10},
	{KeyZ, 6},
	{KeyX, 7},
	{KeyC, 8},
	{KeyV, 9},
	{KeyB, 11},
	{KeyN, 45},
	{KeyM, 46},
	{KeyComma, 43},
	{KeyDot, 47},
	{KeySlash, 44},
	{KeyInsert, 114},
	{KeyKpReturn, 76},
	{KeyKpMinus, 78},
	{KeyKpPlus, 69},
	{KeyKpMultiply, 67},
	{KeyKpDivide, 75},
	{KeyKp0, 82},
	{KeyKp1, 83},
	{KeyKp2, 84},
	{KeyKp3, 85},
	{KeyKp4, 86},
	{KeyKp5, 87},
	{KeyKp6, 88},
	{KeyKp7, 89},
	{KeyKp8, 91},
	{KeyKp9, 92},
	{KeyKpDelete, 65},
})
