//go:build darwin

package inputhook

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jetkvm/inputhook/internal/quartz"
)

// darwinBackend uses session event taps and CGEventPost. Posted events
// carry a quartz tag in kCGEventSourceUserData; the grab tap passes
// replacements on untouched.
type darwinBackend struct {
	cfg Config

	// buttons held by simulated presses, one bit per CGMouseButton
	lock sync.Mutex
	held uint32
}

func newPlatformBackend(cfg Config) backend {
	if !quartz.Trusted() {
		defaultLogger().Warn().Msg("process is not trusted for accessibility, grab and simulate will fail")
	}
	return &darwinBackend{cfg: cfg}
}

func platformLayout() (Layout, error) {
	return platform().layout()
}

func (b *darwinBackend) name() string { return "quartz" }

func (b *darwinBackend) canReplace() bool { return true }

func (b *darwinBackend) displaySize() (uint64, uint64, error) {
	if b.cfg.ScreenWidth > 0 && b.cfg.ScreenHeight > 0 {
		return b.cfg.ScreenWidth, b.cfg.ScreenHeight, nil
	}
	w, h, err := quartz.DisplaySize()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrNoDisplay, err)
	}
	return w, h, nil
}

func (b *darwinBackend) layout() (Layout, error) {
	kl, err := quartz.CurrentLayout()
	if err != nil {
		return nil, err
	}
	return &macLayout{kl: kl}, nil
}

func tapError(err error) error {
	switch {
	case errors.Is(err, quartz.ErrNotTrusted):
		return fmt.Errorf("%w: %w", ErrAccessibility, err)
	case errors.Is(err, quartz.ErrTapCreate):
		// listen-only taps need Input Monitoring instead
		return fmt.Errorf("%w: %w", ErrPermission, err)
	}
	return err
}

func (b *darwinBackend) listen(reg *registration, emit emitFunc) error {
	d := newMacDecoder()
	tap, err := quartz.Start(false, func(ev quartz.Event) bool {
		for _, et := range d.decode(ev) {
			emit(et, time.Time{})
		}
		return false
	})
	if err != nil {
		return tapError(err)
	}
	b.wait(reg, tap)
	return nil
}

func (b *darwinBackend) grab(reg *registration, decide decideFunc) error {
	d := newMacDecoder()
	tap, err := quartz.Start(true, func(ev quartz.Event) bool {
		if ev.UserData == quartz.TagReplacement {
			return false
		}
		swallow := false
		for _, et := range d.decode(ev) {
			dec := decide(et, time.Time{})
			switch dec.action {
			case grabSuppress:
				swallow = true
			case grabReplace:
				swallow = true
				// posting from the tap thread queues the event behind this one
				if err := b.send(dec.replacement, quartz.TagReplacement); err != nil {
					dropped("grab", "replace_failed")
					grabLogger().Warn().Err(err).Stringer("event", dec.replacement).Msg("replacement not posted")
				}
			}
		}
		return swallow
	})
	if err != nil {
		return tapError(err)
	}
	b.wait(reg, tap)
	return nil
}

func (b *darwinBackend) wait(reg *registration, tap *quartz.Tap) {
	if !reg.installed(tap.Stop) {
		tap.Stop()
	}
	tap.Wait()
}

func (b *darwinBackend) simulate(et EventType) error {
	if !quartz.Trusted() {
		return ErrAccessibility
	}
	return b.send(et, quartz.TagSimulated)
}

func (b *darwinBackend) send(et EventType, tag int64) error {
	var err error
	switch et.Kind {
	case KindKeyPress, KindKeyRelease:
		code, merr := macKeycode(et.Key)
		if merr != nil {
			return merr
		}
		err = quartz.PostKey(code, et.Kind == KindKeyPress, tag)

	case KindButtonPress, KindButtonRelease:
		btn, merr := macMouseButton(et.Button)
		if merr != nil {
			return merr
		}
		down := et.Kind == KindButtonPress
		x, y := quartz.CursorPos()
		if err = quartz.PostMouse(macButtonType(btn, down), x, y, btn, tag); err == nil {
			b.setHeld(btn, down)
		}

	case KindMouseMove:
		b.lock.Lock()
		typ, btn := macMoveType(b.held)
		b.lock.Unlock()
		err = quartz.PostMouse(typ, et.X, et.Y, btn, tag)

	case KindWheel:
		err = quartz.PostScroll(wheelDelta(et.DeltaY), -wheelDelta(et.DeltaX), tag)

	default:
		return fmt.Errorf("%w: kind %d", errInvalidEvent, et.Kind)
	}
	return err
}

func (b *darwinBackend) setHeld(btn uint32, down bool) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if down {
		b.held |= 1 << btn
	} else {
		b.held &^= 1 << btn
	}
}

// macLayout resolves keys with UCKeyTranslate, letting it keep the dead
// key state.
type macLayout struct {
	kl *quartz.KeyLayout
}

func (l *macLayout) Lookup(key Key, mods Modifiers) (string, bool, bool) {
	code, err := macKeycode(key)
	if err != nil {
		return "", false, false
	}
	var dead uint32
	text, err := l.kl.Translate(code, macModState(mods), &dead)
	if err != nil {
		return "", false, false
	}
	if text == "" && dead != 0 {
		glyph, err := l.kl.DeadGlyph(dead)
		if err != nil || glyph == "" {
			return "", false, false
		}
		return glyph, true, true
	}
	return text, false, text != ""
}

func (l *macLayout) LookupState(key Key, mods Modifiers, state *uint32) (string, bool) {
	code, err := macKeycode(key)
	if err != nil {
		return "", false
	}
	text, err := l.kl.Translate(code, macModState(mods), state)
	if err != nil {
		keyboardLogger().Debug().Err(err).Stringer("key", key).Msg("key translation failed")
		return "", false
	}
	return text, true
}
