package inputhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var platforms = []Platform{PlatformX11, PlatformEvdev, PlatformWin32, PlatformMac}

func TestCodeTablesRoundTrip(t *testing.T) {
	for _, p := range platforms {
		t.Run(p.String(), func(t *testing.T) {
			for code := uint32(0); code < 1024; code++ {
				k := KeyFromCode(p, code)
				back, ok := CodeFromKey(p, k)
				require.True(t, ok, "code %d -> %s has no way back", code, k)
				assert.Equal(t, code, back, "code %d -> %s", code, k)
			}
		})
	}
}

func TestCodeTablesNamedKeysAreLeftInverse(t *testing.T) {
	for _, p := range platforms {
		for _, k := range AllKeys() {
			code, ok := CodeFromKey(p, k)
			if !ok {
				continue
			}
			assert.Equal(t, k, KeyFromCode(p, code), "%s on %s", k, p)
		}
	}
}

func TestUnknownCodesPassThrough(t *testing.T) {
	for _, p := range platforms {
		k := KeyFromCode(p, 0xfff0)
		raw, ok := k.Unknown()
		require.True(t, ok)
		assert.Equal(t, uint32(0xfff0), raw)

		code, ok := CodeFromKey(p, UnknownKey(4242))
		require.True(t, ok)
		assert.Equal(t, uint32(4242), code)
	}
}

func TestCodeTablesCoverTheCommonKeys(t *testing.T) {
	common := []Key{
		KeyEscape, KeyTab, KeyReturn, KeySpace, KeyBackspace,
		KeyShiftLeft, KeyShiftRight, KeyControlLeft, KeyAlt, KeyMetaLeft, KeyCapsLock,
		KeyA, KeyS, KeyZ, KeyNum1, KeyNum0, KeyF1, KeyF12,
		KeyLeftArrow, KeyRightArrow, KeyUpArrow, KeyDownArrow,
	}
	for _, p := range platforms {
		for _, k := range common {
			_, ok := CodeFromKey(p, k)
			assert.True(t, ok, "%s missing on %s", k, p)
		}
	}
}

func TestPartialMappings(t *testing.T) {
	_, ok := CodeFromKey(PlatformWin32, KeyKpReturn)
	assert.False(t, ok)
	_, ok = CodeFromKey(PlatformX11, KeyFunction)
	assert.False(t, ok)

	code, ok := CodeFromKey(PlatformEvdev, KeyS)
	require.True(t, ok)
	assert.Equal(t, uint32(31), code)

	code, ok = CodeFromKey(PlatformX11, KeyS)
	require.True(t, ok)
	assert.Equal(t, uint32(39), code)
}

func TestX11CodesAreEvdevPlusEight(t *testing.T) {
	for _, k := range AllKeys() {
		x, okX := CodeFromKey(PlatformX11, k)
		e, okE := CodeFromKey(PlatformEvdev, k)
		if !okX || !okE {
			continue
		}
		assert.Equal(t, e+8, x, "%s", k)
	}
}

func TestEvdevButtons(t *testing.T) {
	assert.Equal(t, ButtonLeft, buttonFromEvdev(0x110))
	assert.Equal(t, ButtonRight, buttonFromEvdev(0x111))
	assert.Equal(t, ButtonMiddle, buttonFromEvdev(0x112))
	assert.Equal(t, UnknownButton(0x113), buttonFromEvdev(0x113))

	code, ok := evdevFromButton(UnknownButton(0x114))
	require.True(t, ok)
	assert.Equal(t, uint16(0x114), code)

	_, ok = evdevFromButton(UnknownButton(1 << 20))
	assert.False(t, ok)

	assert.True(t, isEvdevButton(0x110))
	assert.False(t, isEvdevButton(31))
	assert.False(t, isEvdevButton(0x14a)) // BTN_TOUCH
	assert.True(t, isEvdevDigitizer(0x14a))
}
