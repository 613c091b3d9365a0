//go:build linux

package inputhook

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/jetkvm/inputhook/internal/display"
)

// deviceSettle is added to the hotplug delay after creating a virtual
// device so running listeners have opened it before it sends anything.
const deviceSettle = 100 * time.Millisecond

// linuxBackend captures from evdev nodes and injects through uinput. An X
// server, when present, supplies geometry, the pointer position and the
// keyboard mapping.
type linuxBackend struct {
	cfg Config

	x11Once sync.Once
	x11     *display.X11

	simLock sync.Mutex
	sim     *injector
	// xtest is set once uinput was refused and XTEST took over.
	xtest bool
}

func newPlatformBackend(cfg Config) backend {
	return &linuxBackend{cfg: cfg}
}

func platformLayout() (Layout, error) {
	return platform().layout()
}

func (b *linuxBackend) name() string {
	if b.display() != nil {
		return "evdev+x11"
	}
	return "evdev"
}

func (b *linuxBackend) display() *display.X11 {
	b.x11Once.Do(func() {
		if b.cfg.DisableX11 {
			return
		}
		x, err := display.ConnectX11()
		if err != nil {
			if !errors.Is(err, display.ErrNoX11) {
				displayLogger().Warn().Err(err).Msg("X server unavailable")
			}
			return
		}
		b.x11 = x
	})
	return b.x11
}

func (b *linuxBackend) displaySize() (uint64, uint64, error) {
	if b.cfg.ScreenWidth > 0 && b.cfg.ScreenHeight > 0 {
		return b.cfg.ScreenWidth, b.cfg.ScreenHeight, nil
	}
	if x := b.display(); x != nil {
		w, h := x.ScreenSize()
		return w, h, nil
	}
	w, h, err := display.CompositorSize()
	if err != nil {
		if errors.Is(err, display.ErrNoCompositor) {
			return 0, 0, fmt.Errorf("%w: no X server or supported compositor, set INPUTHOOK_SCREEN", ErrNoDisplay)
		}
		return 0, 0, fmt.Errorf("%w: %w", ErrNoDisplay, err)
	}
	return w, h, nil
}

// screen is displaySize with unknown reported as 0x0.
func (b *linuxBackend) screen() (uint64, uint64) {
	w, h, err := b.displaySize()
	if err != nil {
		displayLogger().Debug().Err(err).Msg("display size unknown, pointer positions are relative to the start position")
		return 0, 0
	}
	return w, h
}

// sessionPointer returns a tracker starting where the pointer is now, or at
// the screen centre when that cannot be asked.
func (b *linuxBackend) sessionPointer(w, h uint64) *pointerTracker {
	p := newPointerTracker(w, h)
	if x := b.display(); x != nil {
		if px, py, err := x.Pointer(); err == nil {
			p.moveTo(px, py)
			return p
		}
	}
	p.moveTo(float64(w)/2, float64(h)/2)
	return p
}

func (b *linuxBackend) layout() (Layout, error) {
	if x := b.display(); x != nil {
		km, err := x.Keymap()
		if err == nil {
			return newX11Layout(km), nil
		}
		keyboardLogger().Warn().Err(err).Msg("cannot read X keyboard mapping, using US layout")
	}
	return USLayout, nil
}

func (b *linuxBackend) canReplace() bool { return true }

func (b *linuxBackend) simulateDeviceName() string {
	return b.cfg.DeviceName + " virtual input"
}

// grabPrefix starts the name of every device a grab creates. Grabs never
// take over devices carrying it.
func (b *linuxBackend) grabPrefix() string {
	return b.cfg.DeviceName + " grab"
}

func (b *linuxBackend) isGrabDevice(name string) bool {
	return strings.HasPrefix(name, b.grabPrefix())
}

func (b *linuxBackend) simulate(et EventType) error {
	if x := b.xtestDisplay(); x != nil {
		return b.simulateX11(x, et)
	}

	// unmapped events must fail before any device is touched
	if err := checkEvdevMapping(et); err != nil {
		return err
	}

	in, err := b.simulator()
	if err != nil {
		if x := b.fallBackToXTest(err); x != nil {
			return b.simulateX11(x, et)
		}
		return err
	}
	if err := in.send(et); err != nil {
		b.dropSimulator(in)
		return fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}
	return nil
}

func (b *linuxBackend) xtestDisplay() *display.X11 {
	b.simLock.Lock()
	defer b.simLock.Unlock()
	if b.xtest {
		return b.x11
	}
	return nil
}

// fallBackToXTest switches simulation to XTEST for good when uinput was
// refused on permissions and the X server offers XTEST.
func (b *linuxBackend) fallBackToXTest(err error) *display.X11 {
	if !errors.Is(err, ErrPermission) {
		return nil
	}
	x := b.display()
	if x == nil || !x.CanFakeInput() {
		return nil
	}
	b.simLock.Lock()
	b.xtest = true
	b.simLock.Unlock()
	simulateLogger().Info().Err(err).Msg("uinput not writable, simulating through XTEST")
	return x
}

func (b *linuxBackend) simulator() (*injector, error) {
	b.simLock.Lock()
	defer b.simLock.Unlock()

	if b.sim != nil {
		return b.sim, nil
	}

	w, h := b.screen()
	in, err := newInjector(b.cfg.UinputPath, b.simulateDeviceName(), w, h, b.sessionPointer(w, h))
	if err != nil {
		return nil, err
	}
	time.Sleep(b.cfg.HotplugSettle + deviceSettle)
	b.sim = in
	return in, nil
}

// dropSimulator discards a device that failed so the next call starts over.
func (b *linuxBackend) dropSimulator(in *injector) {
	b.simLock.Lock()
	if b.sim == in {
		b.sim = nil
	}
	b.simLock.Unlock()

	in.close()
	simulateLogger().Warn().Msg("virtual input device failed, it will be recreated")
}

// deviceError classifies an error from opening input nodes.
func deviceError(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %w (add the user to the input group)", ErrPermission, err)
	}
	return fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
}
