package logging

import (
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var (
	rootLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}).
			Level(zerolog.WarnLevel).
			With().Timestamp().Logger()
	rootLock sync.RWMutex

	subsystems = map[string]*atomic.Pointer[zerolog.Logger]{}
)

func subsystemOf(root zerolog.Logger, name string) *zerolog.Logger {
	l := root.With().Str("subsystem", name).Logger()
	return &l
}

// SetRoot replaces the logger every subsystem logger derives from.
// Loggers are never modified once handed out; SetRoot publishes new ones,
// so it is safe to call while other goroutines are logging.
func SetRoot(l zerolog.Logger) {
	rootLock.Lock()
	defer rootLock.Unlock()

	rootLogger = l
	for name, sub := range subsystems {
		sub.Store(subsystemOf(rootLogger, name))
	}
}

// SetLevel parses a zerolog level name and applies it to the root logger.
// Unknown names leave the level unchanged.
func SetLevel(level string) bool {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return false
	}

	rootLock.RLock()
	l := rootLogger.Level(lvl)
	rootLock.RUnlock()

	SetRoot(l)
	return true
}

// Subsystem returns a getter for the named subsystem logger. The getter
// always yields the logger derived from the current root.
func Subsystem(name string) func() *zerolog.Logger {
	rootLock.Lock()
	defer rootLock.Unlock()

	sub, ok := subsystems[name]
	if !ok {
		sub = &atomic.Pointer[zerolog.Logger]{}
		sub.Store(subsystemOf(rootLogger, name))
		subsystems[name] = sub
	}
	return sub.Load
}
