//go:build linux

package inputhook

import (
	"errors"
	"math"
	"testing"

	"github.com/jetkvm/inputhook/internal/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequest struct {
	typ, detail byte
	x, y        int16
}

type recordingXTest struct {
	sent []fakeRequest
	err  error
}

func (r *recordingXTest) FakeInput(typ, detail byte, x, y int16) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, fakeRequest{typ, detail, x, y})
	return nil
}

func TestDecodeX11(t *testing.T) {
	cases := []struct {
		ev   display.CoreEvent
		want EventType
	}{
		{display.CoreEvent{Type: display.EventKeyPress, Detail: 38}, KeyPress(KeyA)},
		{display.CoreEvent{Type: display.EventKeyRelease, Detail: 9}, KeyRelease(KeyEscape)},
		{display.CoreEvent{Type: display.EventButtonPress, Detail: 1}, ButtonPress(ButtonLeft)},
		{display.CoreEvent{Type: display.EventButtonRelease, Detail: 3}, ButtonRelease(ButtonRight)},
		{display.CoreEvent{Type: display.EventButtonPress, Detail: 4}, Wheel(0, 1)},
		{display.CoreEvent{Type: display.EventButtonPress, Detail: 5}, Wheel(0, -1)},
		{display.CoreEvent{Type: display.EventButtonPress, Detail: 6}, Wheel(-1, 0)},
		{display.CoreEvent{Type: display.EventButtonPress, Detail: 7}, Wheel(1, 0)},
		{display.CoreEvent{Type: display.EventButtonPress, Detail: 8}, ButtonPress(UnknownButton(evdevBtnSide))},
		{display.CoreEvent{Type: display.EventButtonPress, Detail: 12}, ButtonPress(UnknownButton(12))},
		{display.CoreEvent{Type: display.EventMotionNotify, RootX: 640, RootY: -2}, MouseMove(640, -2)},
	}
	for _, c := range cases {
		got, ok := decodeX11(c.ev)
		require.True(t, ok, "%+v", c.ev)
		assert.Equal(t, c.want, got, "%+v", c.ev)
	}

	_, ok := decodeX11(display.CoreEvent{Type: display.EventButtonRelease, Detail: 5})
	assert.False(t, ok, "wheel releases are dropped")
	_, ok = decodeX11(display.CoreEvent{Type: 12})
	assert.False(t, ok)
}

func TestX11ButtonsRoundTrip(t *testing.T) {
	for _, detail := range []byte{1, 2, 3, 8, 9, 10, 20} {
		b, err := x11Button(buttonFromX11(detail))
		require.NoError(t, err, detail)
		assert.Equal(t, detail, b)
	}
	for _, b := range []Button{UnknownButton(4), UnknownButton(7), UnknownButton(0), UnknownButton(300)} {
		_, err := x11Button(b)
		assert.ErrorIs(t, err, ErrUnmapped, "%s", b)
	}
}

func TestSendX11(t *testing.T) {
	x := &recordingXTest{}

	require.NoError(t, sendX11(x, KeyPress(KeyA)))
	require.NoError(t, sendX11(x, ButtonRelease(ButtonMiddle)))
	require.NoError(t, sendX11(x, MouseMove(1e9, -1e9)))
	require.NoError(t, sendX11(x, Wheel(-1, 2)))

	assert.Equal(t, []fakeRequest{
		{display.EventKeyPress, 38, 0, 0},
		{display.EventButtonRelease, 2, 0, 0},
		{display.EventMotionNotify, 0, math.MaxInt16, math.MinInt16},
		{display.EventButtonPress, 6, 0, 0},
		{display.EventButtonRelease, 6, 0, 0},
		{display.EventButtonPress, 4, 0, 0},
		{display.EventButtonRelease, 4, 0, 0},
		{display.EventButtonPress, 4, 0, 0},
		{display.EventButtonRelease, 4, 0, 0},
	}, x.sent)
}

func TestSendX11WheelIsBounded(t *testing.T) {
	x := &recordingXTest{}
	require.NoError(t, sendX11(x, Wheel(0, math.MinInt64)))
	require.Len(t, x.sent, 2*maxX11WheelClicks)
	assert.Equal(t, byte(x11WheelDown), x.sent[0].detail)

	x.sent = nil
	require.NoError(t, sendX11(x, Wheel(math.MaxInt64, 0)))
	require.Len(t, x.sent, 2*maxX11WheelClicks)
	assert.Equal(t, byte(x11WheelRight), x.sent[0].detail)
}

func TestSendX11Failures(t *testing.T) {
	x := &recordingXTest{}
	assert.ErrorIs(t, checkX11Mapping(KeyPress(UnknownKey(300))), ErrUnmapped)
	assert.ErrorIs(t, sendX11(x, ButtonPress(UnknownButton(5))), ErrUnmapped)
	assert.Empty(t, x.sent)

	x.err = errors.New("connection reset")
	assert.ErrorContains(t, sendX11(x, KeyPress(KeyA)), "connection reset")
}
