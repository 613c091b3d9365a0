//go:build linux

package inputhook

import (
	"context"
	"errors"
	"fmt"

	"github.com/jetkvm/inputhook/internal/devinput"
	"github.com/rs/zerolog"
)

// captureHooks customise the capture loop shared by listen and grab.
type captureHooks struct {
	logger *zerolog.Logger
	// skip rejects devices before they are read.
	skip func(*devinput.Source) bool
	// attach runs before a device is read; an error leaves it alone.
	attach func(*devinput.Source) error
	// detach runs once for every attached device when its reader ends.
	detach func(*devinput.Source)
	frame  func(devinput.Frame)
}

// capture reads every input node, including ones plugged in later, and
// hands their frames to h.frame until reg is stopped.
func (b *linuxBackend) capture(reg *registration, h captureHooks) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mux := devinput.NewMux(ctx, h.detach)
	go mux.Wait()
	shutdown := func() {
		mux.Close()
		for range mux.Frames() {
		}
	}

	add := func(src *devinput.Source) {
		if h.attach != nil {
			if err := h.attach(src); err != nil {
				h.logger.Warn().Err(err).Str("device", src.String()).Msg("skipping input device")
				_ = src.Dev.Close()
				return
			}
		}
		if !mux.Add(src) && h.detach != nil {
			h.detach(src)
		}
	}

	sources, err := devinput.Scan(b.cfg.InputDir, h.skip)
	if err != nil {
		shutdown()
		return deviceError(err)
	}
	for _, src := range sources {
		add(src)
	}
	if mux.Len() == 0 {
		shutdown()
		return fmt.Errorf("%w in %s", ErrNoDevices, b.cfg.InputDir)
	}

	err = devinput.Watch(ctx, b.cfg.InputDir, b.cfg.HotplugSettle, func(path string) {
		if mux.Has(path) {
			return
		}
		src, err := devinput.Open(path)
		if err != nil {
			h.logger.Debug().Err(err).Str("path", path).Msg("ignoring new input node")
			return
		}
		if h.skip != nil && h.skip(src) {
			_ = src.Dev.Close()
			return
		}
		add(src)
	})
	if err != nil {
		h.logger.Warn().Err(err).Msg("hotplug watch failed, new devices will be missed")
	}

	if !reg.installed(mux.Close) {
		shutdown()
		return nil
	}
	h.logger.Debug().Int("devices", mux.Len()).Msg("capturing")

	for f := range mux.Frames() {
		h.frame(f)
	}
	return nil
}

// listen reads input devices. When they are not readable and an X server
// is reachable, it records through the X server instead.
func (b *linuxBackend) listen(reg *registration, emit emitFunc) error {
	err := b.listenEvdev(reg, emit)
	if !errors.Is(err, ErrPermission) {
		return err
	}
	x := b.display()
	if x == nil {
		return err
	}
	listenLogger().Info().Err(err).Msg("input devices not readable, recording through the X server")
	return b.listenX11(x, reg, emit)
}

func (b *linuxBackend) listenEvdev(reg *registration, emit emitFunc) error {
	w, h := b.screen()
	dec := newFrameDecoder("listen", b.sessionPointer(w, h), w, h)

	return b.capture(reg, captureHooks{
		logger: listenLogger(),
		detach: func(src *devinput.Source) { dec.forget(src.Path) },
		frame: func(f devinput.Frame) {
			at := frameTime(f)
			for _, d := range dec.decode(f) {
				emit(d.et, at)
			}
		},
	})
}
