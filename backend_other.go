//go:build !linux && !windows && !darwin

package inputhook

import "runtime"

type unsupportedBackend struct{}

func newPlatformBackend(Config) backend { return unsupportedBackend{} }

// platformLayout falls back to US so Keyboard stays usable for replaying
// recorded events.
func platformLayout() (Layout, error) { return USLayout, nil }

func (unsupportedBackend) name() string     { return "unsupported/" + runtime.GOOS }
func (unsupportedBackend) canReplace() bool { return false }

func (unsupportedBackend) listen(*registration, emitFunc) error { return ErrUnsupportedPlatform }
func (unsupportedBackend) grab(*registration, decideFunc) error { return ErrUnsupportedPlatform }
func (unsupportedBackend) simulate(EventType) error             { return ErrUnsupportedPlatform }

func (unsupportedBackend) displaySize() (uint64, uint64, error) {
	return 0, 0, ErrUnsupportedPlatform
}

func (unsupportedBackend) layout() (Layout, error) { return USLayout, nil }
