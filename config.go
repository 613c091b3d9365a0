package inputhook

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jetkvm/inputhook/internal/logging"
)

// Config holds the settings backends read when they are first used.
// Zero fields fall back to the defaults below.
type Config struct {
	// LogLevel is a zerolog level name.
	LogLevel string
	// InputDir is scanned for event* nodes on Linux.
	InputDir string
	// UinputPath is the uinput control node on Linux.
	UinputPath string
	// ScreenWidth and ScreenHeight override display detection when both are set.
	ScreenWidth, ScreenHeight uint64
	// DeviceName prefixes every virtual device this package creates.
	DeviceName string
	// DisableX11 skips the X server even when DISPLAY is set.
	DisableX11 bool
	// HotplugSettle is how long to wait before opening a new input node,
	// giving udev time to fix its permissions.
	HotplugSettle time.Duration
}

const (
	defaultInputDir      = "/dev/input"
	defaultUinputPath    = "/dev/uinput"
	defaultDeviceName    = "inputhook"
	defaultHotplugSettle = 200 * time.Millisecond
)

var (
	config     Config
	configOnce sync.Once
	configLock sync.Mutex
)

func DefaultConfig() Config {
	return Config{
		LogLevel:      "warn",
		InputDir:      defaultInputDir,
		UinputPath:    defaultUinputPath,
		DeviceName:    defaultDeviceName,
		HotplugSettle: defaultHotplugSettle,
	}
}

// LoadConfigFromEnv reads INPUTHOOK_* variables on top of DefaultConfig.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("INPUTHOOK_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("INPUTHOOK_INPUT_DIR")); v != "" {
		cfg.InputDir = v
	}
	if v := strings.TrimSpace(os.Getenv("INPUTHOOK_UINPUT")); v != "" {
		cfg.UinputPath = v
	}
	if v := strings.TrimSpace(os.Getenv("INPUTHOOK_DEVICE_NAME")); v != "" {
		cfg.DeviceName = v
	}
	if v := strings.TrimSpace(os.Getenv("INPUTHOOK_SCREEN")); v != "" {
		w, h, err := parseScreenSize(v)
		if err != nil {
			return cfg, fmt.Errorf("INPUTHOOK_SCREEN: %w", err)
		}
		cfg.ScreenWidth, cfg.ScreenHeight = w, h
	}
	if v := strings.TrimSpace(os.Getenv("INPUTHOOK_X11")); v != "" {
		switch strings.ToLower(v) {
		case "off", "0", "false", "no":
			cfg.DisableX11 = true
		case "auto", "on", "1", "true", "yes":
		default:
			return cfg, fmt.Errorf("INPUTHOOK_X11: unknown value %q", v)
		}
	}
	if v := strings.TrimSpace(os.Getenv("INPUTHOOK_HOTPLUG_SETTLE")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("INPUTHOOK_HOTPLUG_SETTLE: %w", err)
		}
		cfg.HotplugSettle = d
	}
	return cfg, nil
}

func parseScreenSize(s string) (uint64, uint64, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("want WIDTHxHEIGHT, got %q", s)
	}
	width, err := strconv.ParseUint(strings.TrimSpace(w), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("width: %w", err)
	}
	height, err := strconv.ParseUint(strings.TrimSpace(h), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("height: %w", err)
	}
	if width == 0 || height == 0 {
		return 0, 0, fmt.Errorf("screen size must be non-zero, got %q", s)
	}
	return width, height, nil
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.InputDir == "" {
		c.InputDir = d.InputDir
	}
	if c.UinputPath == "" {
		c.UinputPath = d.UinputPath
	}
	if c.DeviceName == "" {
		c.DeviceName = d.DeviceName
	}
	if c.HotplugSettle == 0 {
		c.HotplugSettle = d.HotplugSettle
	}
	if c.ScreenWidth == 0 || c.ScreenHeight == 0 {
		c.ScreenWidth, c.ScreenHeight = 0, 0
	}
	return c
}

// Configure replaces the active configuration. It only affects backends
// that have not been initialised yet.
func Configure(cfg Config) {
	configOnce.Do(func() {})

	configLock.Lock()
	config = cfg.withDefaults()
	configLock.Unlock()

	logging.SetLevel(config.LogLevel)
}

func currentConfig() Config {
	configOnce.Do(func() {
		cfg, err := LoadConfigFromEnv()
		if err != nil {
			defaultLogger().Warn().Err(err).Msg("ignoring invalid environment configuration")
		}
		configLock.Lock()
		config = cfg.withDefaults()
		configLock.Unlock()
		logging.SetLevel(cfg.LogLevel)
	})

	configLock.Lock()
	defer configLock.Unlock()
	return config
}
