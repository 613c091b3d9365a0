package inputhook

import (
	"fmt"
	"strconv"
	"time"
)

// Button is a mouse button. Buttons beyond the first three differ by OS and
// are reported as UnknownButton with the platform code.
type Button uint64

const (
	ButtonLeft Button = iota + 1
	ButtonRight
	ButtonMiddle
)

func UnknownButton(code uint32) Button {
	return unknownTag | Button(code)
}

func (b Button) Unknown() (uint32, bool) {
	if b&unknownTag == 0 {
		return 0, false
	}
	return uint32(b), true
}

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonMiddle:
		return "Middle"
	}
	if code, ok := b.Unknown(); ok {
		return "Unknown(" + strconv.FormatUint(uint64(code), 10) + ")"
	}
	return "Button(" + strconv.FormatUint(uint64(b), 10) + ")"
}

type EventKind uint8

const (
	KindKeyPress EventKind = iota + 1
	KindKeyRelease
	KindButtonPress
	KindButtonRelease
	KindMouseMove
	KindWheel
)

var eventKindNames = map[EventKind]string{
	KindKeyPress:      "KeyPress",
	KindKeyRelease:    "KeyRelease",
	KindButtonPress:   "ButtonPress",
	KindButtonRelease: "ButtonRelease",
	KindMouseMove:     "MouseMove",
	KindWheel:         "Wheel",
}

func (k EventKind) String() string {
	if s, ok := eventKindNames[k]; ok {
		return s
	}
	return "EventKind(" + strconv.Itoa(int(k)) + ")"
}

// EventType is the payload of an Event. Only the fields that belong to Kind
// are set; build values with the constructors below so the rest stay zero
// and two equal events compare equal with ==.
type EventType struct {
	Kind   EventKind
	Key    Key
	Button Button
	// X and Y are absolute pixels in the platform's native coordinate space.
	X, Y float64
	// DeltaY > 0 scrolls up, DeltaX > 0 scrolls right.
	DeltaX, DeltaY int64
}

func KeyPress(k Key) EventType         { return EventType{Kind: KindKeyPress, Key: k} }
func KeyRelease(k Key) EventType       { return EventType{Kind: KindKeyRelease, Key: k} }
func ButtonPress(b Button) EventType   { return EventType{Kind: KindButtonPress, Button: b} }
func ButtonRelease(b Button) EventType { return EventType{Kind: KindButtonRelease, Button: b} }

func MouseMove(x, y float64) EventType {
	return EventType{Kind: KindMouseMove, X: x, Y: y}
}

func Wheel(deltaX, deltaY int64) EventType {
	return EventType{Kind: KindWheel, DeltaX: deltaX, DeltaY: deltaY}
}

func (e EventType) String() string {
	switch e.Kind {
	case KindKeyPress, KindKeyRelease:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Key)
	case KindButtonPress, KindButtonRelease:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Button)
	case KindMouseMove:
		return fmt.Sprintf("MouseMove{x: %g, y: %g}", e.X, e.Y)
	case KindWheel:
		return fmt.Sprintf("Wheel{delta_x: %d, delta_y: %d}", e.DeltaX, e.DeltaY)
	}
	return e.Kind.String()
}

// Event is one decoded input event. Name holds the text the key produced
// under the active layout and is only set for KeyPress.
type Event struct {
	Time time.Time
	Name string
	Type EventType
}
