package display

import "github.com/BurntSushi/xgb"

// RECORD reply categories.
const (
	CategoryFromServer  = 0
	CategoryFromClient  = 1
	CategoryStartOfData = 4
	CategoryEndOfData   = 5
)

// Core input event codes.
const (
	EventKeyPress      = 2
	EventKeyRelease    = 3
	EventButtonPress   = 4
	EventButtonRelease = 5
	EventMotionNotify  = 6
)

const wireEventSize = 32

// CoreEvent is a device event as recorded by the server.
type CoreEvent struct {
	Type   byte
	Detail byte // keycode or button
	Time   uint32
	RootX  int16
	RootY  int16
	State  uint16
}

// DecodeRecorded splits the data of a FromServer reply into core events.
// The context carries no element headers, so the data is a run of 32-byte
// wire events. Anything outside the input range is skipped, as is a short
// trailing chunk.
func DecodeRecorded(data []byte) []CoreEvent {
	var out []CoreEvent
	for len(data) >= wireEventSize {
		b := data[:wireEventSize]
		data = data[wireEventSize:]

		typ := b[0] & 0x7f
		if typ < EventKeyPress || typ > EventMotionNotify {
			continue
		}
		out = append(out, CoreEvent{
			Type:   typ,
			Detail: b[1],
			Time:   xgb.Get32(b[4:]),
			RootX:  int16(xgb.Get16(b[20:])),
			RootY:  int16(xgb.Get16(b[22:])),
			State:  xgb.Get16(b[28:]),
		})
	}
	return out
}
