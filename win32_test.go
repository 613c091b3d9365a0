package inputhook

import (
	"math"
	"testing"
	"time"

	"github.com/jetkvm/inputhook/internal/winhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWinDecoderKeys(t *testing.T) {
	d := &winDecoder{}

	et, ok := d.key(winhook.KeyEvent{VK: 0x41, Down: true})
	require.True(t, ok)
	assert.Equal(t, KeyPress(KeyA), et)

	et, ok = d.key(winhook.KeyEvent{VK: vkReturn, Extended: true})
	require.True(t, ok)
	assert.Equal(t, KeyRelease(KeyKpReturn), et)

	et, _ = d.key(winhook.KeyEvent{VK: vkReturn, Down: true})
	assert.Equal(t, KeyPress(KeyReturn), et)

	_, ok = d.key(winhook.KeyEvent{VK: vkLControl, Scan: altGrFakeCtrlScan, Down: true})
	assert.False(t, ok, "AltGr's synthetic Control is not reported")

	et, _ = d.key(winhook.KeyEvent{VK: 0xE8, Down: true})
	assert.Equal(t, KeyPress(UnknownKey(0xE8)), et)
}

func TestWinDecoderMouse(t *testing.T) {
	d := &winDecoder{}

	et, ok := d.mouse(winhook.MouseEvent{Kind: winhook.MouseMove, X: 10, Y: 20})
	require.True(t, ok)
	assert.Equal(t, MouseMove(10, 20), et)
	_, ok = d.mouse(winhook.MouseEvent{Kind: winhook.MouseMove, X: 10, Y: 20})
	assert.False(t, ok, "repeated position")

	et, _ = d.mouse(winhook.MouseEvent{Kind: winhook.MouseButton, Button: winhook.ButtonX1, Down: true})
	assert.Equal(t, ButtonPress(UnknownButton(winhook.ButtonX1)), et)

	// a high resolution wheel reports part notches
	_, ok = d.mouse(winhook.MouseEvent{Kind: winhook.MouseWheel, Delta: 60})
	assert.False(t, ok)
	et, ok = d.mouse(winhook.MouseEvent{Kind: winhook.MouseWheel, Delta: 60})
	require.True(t, ok)
	assert.Equal(t, Wheel(0, 1), et)

	et, _ = d.mouse(winhook.MouseEvent{Kind: winhook.MouseHWheel, Delta: -240})
	assert.Equal(t, Wheel(-2, 0), et)
}

func TestWinMappings(t *testing.T) {
	vk, ext, err := vkFromKey(KeyKpReturn)
	require.NoError(t, err)
	assert.Equal(t, uint16(vkReturn), vk)
	assert.True(t, ext)

	_, _, err = vkFromKey(UnknownKey(0x1ff))
	assert.ErrorIs(t, err, ErrUnmapped)

	btn, err := buttonToWin(UnknownButton(winhook.ButtonX2))
	require.NoError(t, err)
	assert.Equal(t, uint8(winhook.ButtonX2), btn)

	_, err = buttonToWin(UnknownButton(9))
	assert.ErrorIs(t, err, ErrUnmapped)
}

func TestWheelUnits(t *testing.T) {
	assert.Equal(t, int32(120), wheelUnits(1))
	assert.Equal(t, int32(-360), wheelUnits(-3))
	assert.Greater(t, wheelUnits(math.MaxInt64), int32(0))
	assert.Less(t, wheelUnits(math.MinInt64), int32(0))
}

func TestGrabHookSendsReplacementInline(t *testing.T) {
	var sent []EventType
	hook := grabHook(func(et EventType, _ time.Time) grabDecision {
		switch et {
		case KeyPress(KeyTab):
			return grabDecision{action: grabSuppress}
		case KeyPress(KeyA):
			return grabDecision{action: grabReplace, replacement: KeyPress(KeyB)}
		}
		return grabDecision{action: grabPass}
	}, func(et EventType) error {
		sent = append(sent, et)
		return nil
	})

	assert.True(t, hook(KeyPress(KeyA), time.Time{}))
	require.Equal(t, []EventType{KeyPress(KeyB)}, sent, "replacement goes out before the next event is decided")
	assert.False(t, hook(KeyPress(KeyC), time.Time{}))
	assert.True(t, hook(KeyPress(KeyTab), time.Time{}))
	assert.Len(t, sent, 1)

	failing := grabHook(func(EventType, time.Time) grabDecision {
		return grabDecision{action: grabReplace, replacement: KeyPress(KeyB)}
	}, func(EventType) error { return ErrUnmapped })
	assert.True(t, failing(KeyPress(KeyA), time.Time{}))
}
