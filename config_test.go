package inputhook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("INPUTHOOK_LOG_LEVEL", "debug")
	t.Setenv("INPUTHOOK_INPUT_DIR", "/tmp/input")
	t.Setenv("INPUTHOOK_SCREEN", " 1920x1080 ")
	t.Setenv("INPUTHOOK_X11", "off")
	t.Setenv("INPUTHOOK_HOTPLUG_SETTLE", "50ms")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/input", cfg.InputDir)
	assert.Equal(t, defaultUinputPath, cfg.UinputPath)
	assert.Equal(t, uint64(1920), cfg.ScreenWidth)
	assert.Equal(t, uint64(1080), cfg.ScreenHeight)
	assert.True(t, cfg.DisableX11)
	assert.Equal(t, 50*time.Millisecond, cfg.HotplugSettle)
}

func TestLoadConfigFromEnvRejectsGarbage(t *testing.T) {
	t.Setenv("INPUTHOOK_SCREEN", "big")
	_, err := LoadConfigFromEnv()
	assert.Error(t, err)

	t.Setenv("INPUTHOOK_SCREEN", "")
	t.Setenv("INPUTHOOK_X11", "maybe")
	_, err = LoadConfigFromEnv()
	assert.Error(t, err)
}

func TestParseScreenSize(t *testing.T) {
	w, h, err := parseScreenSize("2560X1440")
	require.NoError(t, err)
	assert.Equal(t, uint64(2560), w)
	assert.Equal(t, uint64(1440), h)

	for _, bad := range []string{"", "1920", "0x1080", "x", "-1x5"} {
		_, _, err := parseScreenSize(bad)
		assert.Error(t, err, bad)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{ScreenWidth: 800}.withDefaults()
	assert.Equal(t, defaultInputDir, cfg.InputDir)
	assert.Equal(t, defaultDeviceName, cfg.DeviceName)
	assert.Zero(t, cfg.ScreenWidth, "half a screen size is dropped")
	assert.Equal(t, defaultHotplugSettle, cfg.HotplugSettle)
}
