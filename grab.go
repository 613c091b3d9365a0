package inputhook

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/jetkvm/inputhook/internal/metrics"
)

// GrabFunc decides the fate of one grabbed event. Returning the event
// unchanged lets it through, returning nil drops it, and returning an event
// with a different Type drops the original and injects the new one instead.
type GrabFunc func(Event) *Event

type GrabState int32

const (
	GrabIdle GrabState = iota
	GrabInstalling
	GrabRunning
	GrabUninstalling
	GrabFailed
)

func (s GrabState) String() string {
	switch s {
	case GrabIdle:
		return "idle"
	case GrabInstalling:
		return "installing"
	case GrabRunning:
		return "running"
	case GrabUninstalling:
		return "uninstalling"
	case GrabFailed:
		return "failed"
	}
	return "unknown"
}

var grabState atomic.Int32

// CurrentGrabState reports where the process-wide grab is in its lifecycle.
func CurrentGrabState() GrabState {
	return GrabState(grabState.Load())
}

func setGrabState(s GrabState) {
	grabState.Store(int32(s))
}

type grabAction uint8

const (
	grabPass grabAction = iota
	grabSuppress
	grabReplace
)

func (a grabAction) String() string {
	switch a {
	case grabPass:
		return "pass"
	case grabSuppress:
		return "suppress"
	case grabReplace:
		return "replace"
	}
	return "unknown"
}

type grabDecision struct {
	action      grabAction
	replacement EventType
}

func decideGrab(ev Event, callback GrabFunc) grabDecision {
	out := callback(ev)

	var d grabDecision
	switch {
	case out == nil:
		d.action = grabSuppress
	case out.Type == ev.Type:
		d.action = grabPass
	default:
		d = grabDecision{action: grabReplace, replacement: out.Type}
	}
	metrics.GrabDecisions.WithLabelValues(d.action.String()).Inc()
	return d
}

// Grab is Listen with the power to drop or replace events before any other
// application sees them. See GrabFunc for the callback contract.
//
// All system input waits on the callback: a slow callback stalls the whole
// keyboard and mouse. Replacements are injected with a tag that keeps them
// from reaching the callback again. They are injected before the callback
// sees the next event, so they stay in order with what passes through.
func Grab(callback GrabFunc) error {
	return GrabContext(context.Background(), callback)
}

// GrabContext is Grab that also stops when ctx is done, returning ctx.Err().
func GrabContext(ctx context.Context, callback GrabFunc) error {
	if callback == nil {
		return &GrabError{Kind: KindOther, Err: errors.New("nil callback")}
	}

	reg, err := grabSlot.claim()
	if err != nil {
		return newGrabError(err)
	}
	defer reg.release()

	defer watchContext(ctx, reg)()

	b := platform()
	l := grabLogger().With().Str("session", reg.id.String()).Str("backend", b.name()).Logger()
	p := newPipeline("grab", b)

	setGrabState(GrabInstalling)
	l.Info().Msg("installing grab")
	reg.onRunning = func() {
		setGrabState(GrabRunning)
		l.Info().Msg("grab running")
	}

	err = b.grab(reg, func(et EventType, at time.Time) grabDecision {
		return decideGrab(p.event(et, at), callback)
	})
	if err != nil && !reg.wasInstalled() {
		setGrabState(GrabFailed)
		l.Error().Err(err).Msg("grab install failed")
		return newGrabError(err)
	}
	if err == nil && !reg.wasInstalled() {
		setGrabState(GrabIdle)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.Info().Msg("grab stopped before install")
		return newGrabError(ErrStopped)
	}

	setGrabState(GrabUninstalling)
	defer setGrabState(GrabIdle)
	if err != nil {
		l.Error().Err(err).Msg("grab ended with error")
		return newGrabError(err)
	}
	l.Info().Msg("grab released")

	return ctx.Err()
}

// StopGrab releases the running grab. Safe to call at any time, repeatedly.
// A grab stopped before its hook is live returns ErrStopped.
func StopGrab() {
	grabSlot.stop()
}

// CanReplace reports whether this platform's grab can substitute events.
// Where it cannot, a replacing GrabFunc result acts as a drop.
func CanReplace() bool {
	return platform().canReplace()
}
