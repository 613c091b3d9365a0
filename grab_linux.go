//go:build linux

package inputhook

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	evdev "github.com/holoplot/go-evdev"
	"github.com/jetkvm/inputhook/internal/devinput"
)

const (
	// releaseWait bounds how long a grab waits for held keys to come up
	// before taking a device.
	releaseWait = time.Second
	maxNameLen  = 79
)

// grabSession takes every device with EVIOCGRAB and re-emits what the
// callback lets through on a clone of it. Replacements go out on a device
// of their own.
type grabSession struct {
	b       *linuxBackend
	decide  decideFunc
	decoder *frameDecoder
	replace *injector

	lock   sync.Mutex
	clones map[string]*evdev.InputDevice
}

func (b *linuxBackend) grab(reg *registration, decide decideFunc) error {
	w, h := b.screen()
	pointer := b.sessionPointer(w, h)

	replace, err := newInjector(b.cfg.UinputPath, b.grabPrefix()+" replace", w, h, pointer)
	if err != nil {
		return err
	}
	defer replace.close()

	s := &grabSession{
		b:       b,
		decide:  decide,
		decoder: newFrameDecoder("grab", pointer, w, h),
		replace: replace,
		clones:  map[string]*evdev.InputDevice{},
	}
	return b.capture(reg, captureHooks{
		logger: grabLogger(),
		skip:   func(src *devinput.Source) bool { return b.isGrabDevice(src.Name) },
		attach: s.attach,
		detach: s.detach,
		frame:  s.frame,
	})
}

func (s *grabSession) cloneName(src *devinput.Source) string {
	name := s.b.grabPrefix() + ": " + src.Name
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	return name
}

func (s *grabSession) attach(src *devinput.Source) error {
	s.lock.Lock()
	_, dup := s.clones[src.Path]
	s.lock.Unlock()
	if dup {
		return fmt.Errorf("%s is already grabbed", src.Path)
	}

	waitForRelease(src)

	clone, err := evdev.CloneDevice(s.cloneName(src), src.Dev)
	if err != nil {
		return fmt.Errorf("clone: %w", err)
	}
	if err := src.Dev.Grab(); err != nil {
		_ = clone.Close()
		return fmt.Errorf("EVIOCGRAB: %w", err)
	}

	s.lock.Lock()
	s.clones[src.Path] = clone
	s.lock.Unlock()
	grabLogger().Debug().Str("device", src.String()).Msg("device grabbed")
	return nil
}

func (s *grabSession) detach(src *devinput.Source) {
	s.lock.Lock()
	clone := s.clones[src.Path]
	delete(s.clones, src.Path)
	s.lock.Unlock()

	s.decoder.forget(src.Path)
	if clone == nil {
		return
	}
	_ = src.Dev.Ungrab()
	if err := clone.Close(); err != nil {
		grabLogger().Debug().Err(err).Str("device", src.String()).Msg("closing clone")
	}
}

func (s *grabSession) clone(path string) *evdev.InputDevice {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.clones[path]
}

// waitForRelease holds off a grab while keys are down. A key pressed before
// the grab would otherwise have its release land on the clone, leaving it
// stuck on the original device.
func waitForRelease(src *devinput.Source) {
	if !src.HasKeys {
		return
	}
	deadline := time.Now().Add(releaseWait)
	for time.Now().Before(deadline) {
		state, err := src.Dev.State(evdev.EV_KEY)
		if err != nil {
			return
		}
		held := false
		for _, down := range state {
			if down {
				held = true
				break
			}
		}
		if !held {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	grabLogger().Warn().Str("device", src.String()).Msg("keys still held, grabbing anyway")
}

func (s *grabSession) frame(f devinput.Frame) {
	at := frameTime(f)
	drop := make([]bool, len(f.Events))

	var replacements []EventType
	for _, d := range s.decoder.decode(f) {
		dec := s.decide(d.et, at)
		if dec.action == grabPass {
			continue
		}
		for _, i := range d.raw {
			drop[i] = true
		}
		if dec.action == grabReplace {
			replacements = append(replacements, dec.replacement)
		}
	}

	s.forward(f, drop)

	for _, et := range replacements {
		if err := validateEventType(et); err != nil {
			grabLogger().Warn().Err(err).Msg("dropping invalid replacement")
			continue
		}
		if err := s.replace.send(et); err != nil {
			dropped("grab", "replace_failed")
			grabLogger().Warn().Err(err).Stringer("event", et).Msg("replacement not injected")
		}
	}
}

// forward writes the kept events of f to the clone of its device. Frames
// left with nothing but SYN and MSC events are not written.
func (s *grabSession) forward(f devinput.Frame, drop []bool) {
	clone := s.clone(f.Source.Path)
	if clone == nil {
		return
	}

	kept := make([]*evdev.InputEvent, 0, len(f.Events))
	meaningful := false
	for i, ev := range f.Events {
		if drop[i] {
			continue
		}
		// the clone autorepeats on its own
		if ev.Type == evdev.EV_KEY && ev.Value == 2 {
			continue
		}
		kept = append(kept, ev)
		if ev.Type != evdev.EV_SYN && ev.Type != evdev.EV_MSC {
			meaningful = true
		}
	}
	if !meaningful {
		return
	}

	for _, ev := range kept {
		if err := clone.WriteOne(ev); err != nil {
			if !errors.Is(err, os.ErrClosed) {
				grabLogger().Warn().Err(err).Str("device", f.Source.String()).Msg("pass-through write failed")
			}
			return
		}
	}
}
