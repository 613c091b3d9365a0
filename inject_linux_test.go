//go:build linux

package inputhook

import (
	"math"
	"testing"

	"github.com/jetkvm/inputhook/internal/uinput"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	frames [][]uinput.Event
}

func (w *recordingWriter) Emit(events ...uinput.Event) error {
	w.frames = append(w.frames, events)
	return nil
}

func (w *recordingWriter) Name() string { return "recording" }
func (w *recordingWriter) Close() error { return nil }

func TestWheelDeltaClamps(t *testing.T) {
	assert.Equal(t, int32(3), wheelDelta(3))
	assert.Equal(t, int32(-1), wheelDelta(-1))
	assert.Equal(t, int32(math.MaxInt32), wheelDelta(1<<40))
	assert.Equal(t, int32(-math.MaxInt32), wheelDelta(math.MinInt64))
	assert.Equal(t, int32(math.MaxInt32), -wheelDelta(math.MinInt64))
}

func TestInjectorWheelIsOneFramePerAxis(t *testing.T) {
	w := &recordingWriter{}
	in := &injector{dev: w, pointer: newPointerTracker(0, 0)}

	require.NoError(t, in.send(Wheel(0, math.MinInt64)))
	require.NoError(t, in.send(Wheel(1<<40, 0)))
	require.NoError(t, in.send(Wheel(-2, 5)))
	require.NoError(t, in.send(Wheel(0, 0)))

	assert.Equal(t, [][]uinput.Event{
		{{Type: uinput.EvRel, Code: uinput.RelWheel, Value: -math.MaxInt32}},
		{{Type: uinput.EvRel, Code: uinput.RelHWheel, Value: math.MaxInt32}},
		{{Type: uinput.EvRel, Code: uinput.RelHWheel, Value: -2}},
		{{Type: uinput.EvRel, Code: uinput.RelWheel, Value: 5}},
	}, w.frames)
}
