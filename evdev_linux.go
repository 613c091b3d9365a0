//go:build linux

package inputhook

import (
	"sync"
	"time"

	evdev "github.com/holoplot/go-evdev"
	"github.com/jetkvm/inputhook/internal/devinput"
)

const (
	relWheelHiRes  evdev.EvCode = 0x0b
	relHWheelHiRes evdev.EvCode = 0x0c
)

// decoded is one event type and the indexes of the raw events in its frame
// that produced it.
type decoded struct {
	et  EventType
	raw []int
}

// frameDecoder turns evdev frames into event types. Pointer motion from all
// devices moves one shared position.
type frameDecoder struct {
	engine        string
	pointer       *pointerTracker
	width, height float64

	lock    sync.Mutex
	touches map[string]*touchState
}

type touchState struct {
	down         bool
	valid        bool
	lastX, lastY int32
}

func newFrameDecoder(engine string, pointer *pointerTracker, width, height uint64) *frameDecoder {
	return &frameDecoder{
		engine:  engine,
		pointer: pointer,
		width:   float64(width),
		height:  float64(height),
		touches: map[string]*touchState{},
	}
}

// frameTime is the kernel timestamp of the frame's SYN_REPORT.
func frameTime(f devinput.Frame) time.Time {
	if len(f.Events) == 0 {
		return time.Time{}
	}
	tv := f.Events[len(f.Events)-1].Time
	return time.Unix(int64(tv.Sec), int64(tv.Usec)*1000)
}

// decode returns the events of one frame. Motion comes first, the rest in
// the order the kernel reported it.
func (d *frameDecoder) decode(f devinput.Frame) []decoded {
	src := f.Source

	var (
		out          []decoded
		motion       []int
		relX, relY   int32
		absX, absY   int32
		hasX, hasY   bool
		wheelV       = -1
		wheelH       = -1
		hiResV       []int
		hiResH       []int
		touchChanged bool
		touchDown    bool
	)

	for i, ev := range f.Events {
		switch ev.Type {
		case evdev.EV_KEY:
			code := uint16(ev.Code)
			if isEvdevDigitizer(code) {
				if ev.Code == evdev.BTN_TOUCH {
					touchChanged, touchDown = true, ev.Value != 0
				}
				continue
			}
			if isEvdevButton(code) {
				b := buttonFromEvdev(code)
				switch ev.Value {
				case 1:
					out = append(out, decoded{ButtonPress(b), []int{i}})
				case 0:
					out = append(out, decoded{ButtonRelease(b), []int{i}})
				}
				continue
			}
			k := evdevCodes.key(uint32(code))
			switch ev.Value {
			case 0:
				out = append(out, decoded{KeyRelease(k), []int{i}})
			case 1, 2:
				out = append(out, decoded{KeyPress(k), []int{i}})
			}

		case evdev.EV_REL:
			switch ev.Code {
			case evdev.REL_X:
				relX += ev.Value
				motion = append(motion, i)
			case evdev.REL_Y:
				relY += ev.Value
				motion = append(motion, i)
			case evdev.REL_WHEEL:
				// evdev already counts up and right as positive
				wheelV = len(out)
				out = append(out, decoded{Wheel(0, int64(ev.Value)), []int{i}})
			case evdev.REL_HWHEEL:
				wheelH = len(out)
				out = append(out, decoded{Wheel(int64(ev.Value), 0), []int{i}})
			case relWheelHiRes:
				hiResV = append(hiResV, i)
			case relHWheelHiRes:
				hiResH = append(hiResH, i)
			default:
				dropped(d.engine, "rel_axis")
			}

		case evdev.EV_ABS:
			switch ev.Code {
			case evdev.ABS_X:
				absX, hasX = ev.Value, true
				motion = append(motion, i)
			case evdev.ABS_Y:
				absY, hasY = ev.Value, true
				motion = append(motion, i)
			}
		}
	}

	// high resolution wheel events travel with the notch they belong to
	if wheelV >= 0 {
		out[wheelV].raw = append(out[wheelV].raw, hiResV...)
	}
	if wheelH >= 0 {
		out[wheelH].raw = append(out[wheelH].raw, hiResH...)
	}

	var (
		x, y  float64
		moved bool
	)
	switch {
	case relX != 0 || relY != 0:
		x, y = d.pointer.moveBy(float64(relX), float64(relY))
		moved = true
	case src.Touchpad && (hasX || hasY || touchChanged):
		var dx, dy int32
		dx, dy, moved = d.touch(src.Path, absX, absY, hasX, hasY, touchChanged, touchDown)
		if moved {
			x, y = d.pointer.moveBy(float64(dx), float64(dy))
		}
	case src.HasAbs && (hasX || hasY):
		x, y = d.pointer.position()
		if hasX {
			x = scaleAxis(absX, src.AbsX.Minimum, src.AbsX.Maximum, d.width)
		}
		if hasY {
			y = scaleAxis(absY, src.AbsY.Minimum, src.AbsY.Maximum, d.height)
		}
		x, y = d.pointer.moveTo(x, y)
		moved = true
	}
	if moved {
		out = append([]decoded{{MouseMove(x, y), motion}}, out...)
	}
	return out
}

// touch converts touchpad finger positions into relative motion.
func (d *frameDecoder) touch(path string, absX, absY int32, hasX, hasY, changed, down bool) (int32, int32, bool) {
	d.lock.Lock()
	defer d.lock.Unlock()

	st, ok := d.touches[path]
	if !ok {
		st = &touchState{}
		d.touches[path] = st
	}
	if changed {
		st.down, st.valid = down, false
	}
	if !st.down {
		return 0, 0, false
	}

	x, y := st.lastX, st.lastY
	if hasX {
		x = absX
	}
	if hasY {
		y = absY
	}
	wasValid := st.valid
	dx, dy := x-st.lastX, y-st.lastY
	st.lastX, st.lastY, st.valid = x, y, true
	if !wasValid || (dx == 0 && dy == 0) {
		return 0, 0, false
	}
	return dx, dy, true
}

func (d *frameDecoder) forget(path string) {
	d.lock.Lock()
	defer d.lock.Unlock()
	delete(d.touches, path)
}
