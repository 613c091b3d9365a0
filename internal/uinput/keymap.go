package uinput

// Event types and codes from linux/input-event-codes.h.
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03

	synReport = 0

	EvKey = evKey
	EvRel = evRel
	EvAbs = evAbs

	RelX      = 0x00
	RelY      = 0x01
	RelHWheel = 0x06
	RelWheel  = 0x08

	AbsX = 0x00
	AbsY = 0x01

	BtnLeft    = 0x110
	BtnRight   = 0x111
	BtnMiddle  = 0x112
	BtnSide    = 0x113
	BtnExtra   = 0x114
	BtnForward = 0x115
	BtnBack    = 0x116
	BtnTask    = 0x117

	KeyMax = 0x2ff
)

// KeyboardKeys is every key code a full keyboard can send: KEY_ESC up to
// KEY_MICMUTE plus the extended range, without the BTN_* blocks.
func KeyboardKeys() []uint16 {
	keys := make([]uint16, 0, KeyMax)
	for code := uint16(1); code <= KeyMax; code++ {
		if (code >= 0x100 && code < 0x160) || (code >= 0x2c0 && code < 0x2e8) {
			continue
		}
		keys = append(keys, code)
	}
	return keys
}

// MouseButtons are the buttons of the virtual pointer.
func MouseButtons() []uint16 {
	return []uint16{BtnLeft, BtnRight, BtnMiddle, BtnSide, BtnExtra, BtnForward, BtnBack, BtnTask}
}
