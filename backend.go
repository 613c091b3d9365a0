package inputhook

import (
	"sync"
	"time"

	"github.com/jetkvm/inputhook/internal/metrics"
)

// emitFunc receives every decoded event of a listener. at is the OS
// timestamp when the backend has one, zero otherwise.
type emitFunc func(et EventType, at time.Time)

// decideFunc is asked what to do with every decoded event of a grab.
type decideFunc func(et EventType, at time.Time) grabDecision

// backend is one OS input stack. Exactly one is chosen per process.
type backend interface {
	name() string

	// listen installs a read-only hook and blocks dispatching to emit until
	// reg is stopped. Install failures are returned before anything is
	// dispatched.
	listen(reg *registration, emit emitFunc) error
	// grab is listen with the power to drop or replace events.
	grab(reg *registration, decide decideFunc) error
	simulate(et EventType) error
	displaySize() (uint64, uint64, error)
	// layout returns the layout used to name key presses.
	layout() (Layout, error)
	// canReplace reports whether grab can substitute events, not only
	// pass or drop them.
	canReplace() bool
}

var (
	backendOnce    sync.Once
	currentBackend backend
)

func platform() backend {
	backendOnce.Do(func() {
		cfg := currentConfig()
		currentBackend = newPlatformBackend(cfg)
		defaultLogger().Info().Str("backend", currentBackend.name()).Msg("input backend selected")
	})
	return currentBackend
}

// pipeline turns decoded event types into Events, naming key presses with a
// Keyboard of its own.
type pipeline struct {
	engine   string
	keyboard *Keyboard
}

func newPipeline(engine string, b backend) *pipeline {
	p := &pipeline{engine: engine}
	l, err := b.layout()
	if err != nil {
		keyboardLogger().Warn().Err(err).Str("engine", engine).Msg("keyboard layout unavailable, key names disabled")
		return p
	}
	p.keyboard = NewKeyboardWithLayout(l)
	return p
}

func (p *pipeline) event(et EventType, at time.Time) Event {
	if at.IsZero() {
		at = time.Now()
	}
	ev := Event{Time: at, Type: et}
	if p.keyboard != nil && (et.Kind == KindKeyPress || et.Kind == KindKeyRelease) {
		if name, ok := p.keyboard.Add(et); ok {
			ev.Name = name
		}
	}
	metrics.EventsTotal.WithLabelValues(p.engine, et.Kind.String()).Inc()
	return ev
}

// dropped records a raw event that could not be decoded.
func dropped(engine, reason string) {
	metrics.EventsDropped.WithLabelValues(engine, reason).Inc()
}
