//go:build linux

package inputhook

import (
	"fmt"
	"math"
	"slices"

	"github.com/jetkvm/inputhook/internal/uinput"
)

// injector writes event types to one uinput device. With a known screen
// size the device has absolute axes; otherwise motion is sent as deltas from
// a tracked position.
type injector struct {
	dev      eventWriter
	absolute bool
	pointer  *pointerTracker
}

type eventWriter interface {
	Emit(events ...uinput.Event) error
	Name() string
	Close() error
}

func newInjector(path, name string, width, height uint64, pointer *pointerTracker) (*injector, error) {
	cfg := uinput.Config{
		Name: name,
		Keys: append(uinput.KeyboardKeys(), uinput.MouseButtons()...),
		Rel:  []uint16{uinput.RelWheel, uinput.RelHWheel},
	}
	absolute := width > 0 && height > 0
	if absolute {
		cfg.Abs = []uinput.AbsAxis{
			{Code: uinput.AbsX, Min: 0, Max: int32(width - 1)},
			{Code: uinput.AbsY, Min: 0, Max: int32(height - 1)},
		}
	} else {
		cfg.Rel = append(cfg.Rel, uinput.RelX, uinput.RelY)
	}

	dev, err := uinput.Create(path, cfg, simulateLogger())
	if err != nil {
		return nil, deviceError(err)
	}
	return &injector{dev: dev, absolute: absolute, pointer: pointer}, nil
}

func (in *injector) close() {
	if err := in.dev.Close(); err != nil {
		simulateLogger().Debug().Err(err).Str("device", in.dev.Name()).Msg("closing virtual device")
	}
}

func evdevKey(k Key) (uint16, error) {
	code, ok := evdevCodes.code(k)
	if !ok || code == 0 || code > uinput.KeyMax || isEvdevButton(uint16(code)) || isEvdevDigitizer(uint16(code)) {
		return 0, fmt.Errorf("%w: key %s on evdev", ErrUnmapped, k)
	}
	return uint16(code), nil
}

func evdevButton(b Button) (uint16, error) {
	code, ok := evdevFromButton(b)
	if !ok || !slices.Contains(uinput.MouseButtons(), code) {
		return 0, fmt.Errorf("%w: button %s on evdev", ErrUnmapped, b)
	}
	return code, nil
}

// checkEvdevMapping fails for keys and buttons the virtual device cannot send.
func checkEvdevMapping(et EventType) error {
	switch et.Kind {
	case KindKeyPress, KindKeyRelease:
		_, err := evdevKey(et.Key)
		return err
	case KindButtonPress, KindButtonRelease:
		_, err := evdevButton(et.Button)
		return err
	}
	return nil
}

func pressValue(down bool) int32 {
	if down {
		return 1
	}
	return 0
}

func (in *injector) send(et EventType) error {
	switch et.Kind {
	case KindKeyPress, KindKeyRelease:
		code, err := evdevKey(et.Key)
		if err != nil {
			return err
		}
		return in.dev.Emit(uinput.Event{Type: uinput.EvKey, Code: code, Value: pressValue(et.Kind == KindKeyPress)})
	case KindButtonPress, KindButtonRelease:
		code, err := evdevButton(et.Button)
		if err != nil {
			return err
		}
		return in.dev.Emit(uinput.Event{Type: uinput.EvKey, Code: code, Value: pressValue(et.Kind == KindButtonPress)})
	case KindMouseMove:
		return in.move(et.X, et.Y)
	case KindWheel:
		if err := in.scroll(uinput.RelHWheel, et.DeltaX); err != nil {
			return err
		}
		return in.scroll(uinput.RelWheel, et.DeltaY)
	}
	return fmt.Errorf("%w: kind %d", errInvalidEvent, et.Kind)
}

func (in *injector) move(x, y float64) error {
	if in.absolute {
		tx, ty := in.pointer.moveTo(x, y)
		return in.dev.Emit(
			uinput.Event{Type: uinput.EvAbs, Code: uinput.AbsX, Value: int32(math.Round(tx))},
			uinput.Event{Type: uinput.EvAbs, Code: uinput.AbsY, Value: int32(math.Round(ty))},
		)
	}

	cx, cy := in.pointer.position()
	tx, ty := in.pointer.moveTo(x, y)
	dx, dy := int32(math.Round(tx-cx)), int32(math.Round(ty-cy))
	if dx == 0 && dy == 0 {
		return nil
	}
	return in.dev.Emit(
		uinput.Event{Type: uinput.EvRel, Code: uinput.RelX, Value: dx},
		uinput.Event{Type: uinput.EvRel, Code: uinput.RelY, Value: dy},
	)
}

func (in *injector) scroll(axis uint16, delta int64) error {
	if delta == 0 {
		return nil
	}
	return in.dev.Emit(uinput.Event{Type: uinput.EvRel, Code: axis, Value: wheelDelta(delta)})
}
