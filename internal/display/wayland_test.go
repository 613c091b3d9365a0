package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSwayOutputs(t *testing.T) {
	data := []byte(`[
		{"name": "eDP-1", "active": true, "rect": {"x": 0, "y": 0, "width": 1920, "height": 1080}},
		{"name": "DP-2", "active": true, "rect": {"x": 1920, "y": 0, "width": 2560, "height": 1440}},
		{"name": "HDMI-A-1", "active": false, "rect": {"x": 0, "y": 0, "width": 0, "height": 0}}
	]`)
	w, h, err := parseSwayOutputs(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(4480), w)
	assert.Equal(t, uint64(1440), h)
}

func TestParseSwayOutputsNoneActive(t *testing.T) {
	_, _, err := parseSwayOutputs([]byte(`[{"active": false}]`))
	assert.Error(t, err)

	_, _, err = parseSwayOutputs([]byte(`{`))
	assert.Error(t, err)
}

func TestParseHyprMonitors(t *testing.T) {
	data := []byte(`[
		{"id": 0, "x": 0, "y": 0, "width": 2880, "height": 1800, "scale": 2.0, "transform": 0},
		{"id": 1, "x": 1440, "y": 0, "width": 1920, "height": 1080, "scale": 1.0, "transform": 1}
	]`)
	w, h, err := parseHyprMonitors(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(1440+1080), w)
	assert.Equal(t, uint64(1920), h)
}

func TestBounds(t *testing.T) {
	w, h, err := bounds([]rect{{X: -100, Y: 0, W: 100, H: 50}, {X: 0, Y: 0, W: 200, H: 100}})
	require.NoError(t, err)
	assert.Equal(t, uint64(300), w)
	assert.Equal(t, uint64(100), h)
}

func TestKeymapLookup(t *testing.T) {
	m := &Keymap{MinKeycode: 8, PerCode: 2, Syms: []uint32{1, 2, 3, 4}}
	assert.Equal(t, []uint32{1, 2}, m.Lookup(8))
	assert.Equal(t, []uint32{3, 4}, m.Lookup(9))
	assert.Nil(t, m.Lookup(10))
	assert.Nil(t, m.Lookup(7))
}
