package inputhook

import (
	"errors"
	"fmt"
	"math"

	"github.com/jetkvm/inputhook/internal/metrics"
)

// Simulate injects one synthetic event into the OS input stream, where it
// looks like it came from a real device.
//
// MouseMove takes absolute pixels. Keys and buttons without a mapping on
// this platform fail with ErrUnmapped; Unknown codes are passed through raw.
// A failed call leaves nothing behind that affects later calls. Concurrent
// calls are not ordered relative to each other.
func Simulate(et EventType) error {
	if err := validateEventType(et); err != nil {
		return fail(et, err)
	}
	if err := platform().simulate(et); err != nil {
		return fail(et, err)
	}
	simulateLogger().Trace().Stringer("event", et).Msg("simulated")
	return nil
}

func fail(et EventType, err error) error {
	se := newSimulateError(et, err)
	metrics.SimulateErrors.WithLabelValues(se.Kind.String()).Inc()
	simulateLogger().Debug().Err(err).Stringer("event", et).Msg("simulate failed")
	return se
}

var errInvalidEvent = errors.New("invalid event")

func validateEventType(et EventType) error {
	switch et.Kind {
	case KindKeyPress, KindKeyRelease:
		if !et.Key.Valid() {
			return fmt.Errorf("%w: key %d", errInvalidEvent, uint64(et.Key))
		}
	case KindButtonPress, KindButtonRelease:
		if _, unknown := et.Button.Unknown(); !unknown && (et.Button < ButtonLeft || et.Button > ButtonMiddle) {
			return fmt.Errorf("%w: button %d", errInvalidEvent, uint64(et.Button))
		}
	case KindMouseMove:
		if math.IsNaN(et.X) || math.IsNaN(et.Y) || math.IsInf(et.X, 0) || math.IsInf(et.Y, 0) {
			return fmt.Errorf("%w: position (%g, %g)", errInvalidEvent, et.X, et.Y)
		}
	case KindWheel:
	default:
		return fmt.Errorf("%w: kind %d", errInvalidEvent, et.Kind)
	}
	return nil
}

// wheelDelta clamps a wheel delta to what one relative axis event carries.
// The range is symmetric so the result can be negated.
func wheelDelta(delta int64) int32 {
	return int32(max(-math.MaxInt32, min(math.MaxInt32, delta)))
}
