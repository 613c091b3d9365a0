//go:build windows

package inputhook

import (
	"errors"
	"fmt"

	"github.com/jetkvm/inputhook/internal/winhook"
)

// windowsBackend uses WH_KEYBOARD_LL and WH_MOUSE_LL hooks and SendInput.
// Replacements from a grab carry winhook.TagReplacement and skip the grab
// callback.
type windowsBackend struct {
	cfg Config
}

func newPlatformBackend(cfg Config) backend {
	if err := winhook.EnableDPIAwareness(); err != nil {
		displayLogger().Debug().Err(err).Msg("DPI awareness not changed")
	}
	return &windowsBackend{cfg: cfg}
}

func platformLayout() (Layout, error) {
	return platform().layout()
}

func (b *windowsBackend) name() string { return "win32" }

func (b *windowsBackend) canReplace() bool { return true }

func (b *windowsBackend) displaySize() (uint64, uint64, error) {
	if b.cfg.ScreenWidth > 0 && b.cfg.ScreenHeight > 0 {
		return b.cfg.ScreenWidth, b.cfg.ScreenHeight, nil
	}
	w, h, err := winhook.ScreenSize()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrNoDisplay, err)
	}
	return w, h, nil
}

func (b *windowsBackend) layout() (Layout, error) {
	return winLayout{}, nil
}

func (b *windowsBackend) listen(reg *registration, emit emitFunc) error {
	d := &winDecoder{}
	hk, err := winhook.Start(winhook.Handlers{
		Keyboard: func(ev winhook.KeyEvent) bool {
			if et, ok := d.key(ev); ok {
				emit(et, winhook.EventTime(ev.Time))
			}
			return false
		},
		Mouse: func(ev winhook.MouseEvent) bool {
			if et, ok := d.mouse(ev); ok {
				emit(et, winhook.EventTime(ev.Time))
			}
			return false
		},
	})
	if err != nil {
		return err
	}
	b.wait(reg, hk)
	return nil
}

func (b *windowsBackend) grab(reg *registration, decide decideFunc) error {
	decideHook := grabHook(decide, func(et EventType) error {
		return b.send(et, winhook.TagReplacement)
	})
	handle := func(et EventType, ms uint32) bool {
		return decideHook(et, winhook.EventTime(ms))
	}

	d := &winDecoder{}
	hk, err := winhook.Start(winhook.Handlers{
		Keyboard: func(ev winhook.KeyEvent) bool {
			if ev.ExtraInfo == winhook.TagReplacement {
				return false
			}
			et, ok := d.key(ev)
			return ok && handle(et, ev.Time)
		},
		Mouse: func(ev winhook.MouseEvent) bool {
			if ev.ExtraInfo == winhook.TagReplacement {
				return false
			}
			et, ok := d.mouse(ev)
			return ok && handle(et, ev.Time)
		},
	})
	if err != nil {
		return err
	}
	b.wait(reg, hk)
	return nil
}

// wait blocks until reg is stopped and the hooks are gone.
func (b *windowsBackend) wait(reg *registration, hk *winhook.Hook) {
	if !reg.installed(hk.Stop) {
		hk.Stop()
	}
	hk.Wait()
}

func (b *windowsBackend) simulate(et EventType) error {
	return b.send(et, winhook.TagSimulated)
}

func (b *windowsBackend) send(et EventType, tag uintptr) error {
	inputs, err := b.inputs(et, tag)
	if err != nil {
		return err
	}
	if err := winhook.Send(inputs...); err != nil {
		if errors.Is(err, winhook.ErrBlocked) {
			return fmt.Errorf("%w: %w", ErrPermission, err)
		}
		return err
	}
	return nil
}

func (b *windowsBackend) inputs(et EventType, tag uintptr) ([]winhook.Input, error) {
	switch et.Kind {
	case KindKeyPress, KindKeyRelease:
		vk, extended, err := vkFromKey(et.Key)
		if err != nil {
			return nil, err
		}
		return []winhook.Input{winhook.KeyInput(vk, et.Kind == KindKeyPress, extended, tag)}, nil

	case KindButtonPress, KindButtonRelease:
		btn, err := buttonToWin(et.Button)
		if err != nil {
			return nil, err
		}
		in, err := winhook.ButtonInput(btn, et.Kind == KindButtonPress, tag)
		if err != nil {
			return nil, err
		}
		return []winhook.Input{in}, nil

	case KindMouseMove:
		w, h, err := b.displaySize()
		if err != nil {
			return nil, err
		}
		return []winhook.Input{winhook.MoveInput(et.X, et.Y, w, h, tag)}, nil

	case KindWheel:
		var inputs []winhook.Input
		if et.DeltaX != 0 {
			inputs = append(inputs, winhook.WheelInput(wheelUnits(et.DeltaX), true, tag))
		}
		if et.DeltaY != 0 {
			inputs = append(inputs, winhook.WheelInput(wheelUnits(et.DeltaY), false, tag))
		}
		return inputs, nil
	}
	return nil, fmt.Errorf("%w: kind %d", errInvalidEvent, et.Kind)
}

// winLayout asks ToUnicodeEx with the layout of the foreground window.
type winLayout struct{}

func (winLayout) Lookup(key Key, mods Modifiers) (string, bool, bool) {
	vk, _, err := vkFromKey(key)
	if err != nil {
		return "", false, false
	}

	var state winhook.KeyState
	if mods.Has(ModShift) {
		state[vkShift] = 0x80
	}
	if mods.Has(ModControl) {
		state[vkControl] = 0x80
	}
	if mods.Has(ModAltGr) {
		state[vkControl] = 0x80
		state[vkMenu] = 0x80
	}
	if mods.Has(ModCapsLock) {
		state[vkCapital] = 0x01
	}
	return winhook.Translate(uint32(vk), &state, winhook.ForegroundLayout())
}
