//go:build linux

package devinput

import (
	"context"
	"sync"

	evdev "github.com/holoplot/go-evdev"
	"github.com/jetkvm/inputhook/internal/logging"
	"golang.org/x/sync/errgroup"
)

var logger = logging.Subsystem("devinput")

// Frame is the batch of events a device reported up to and including its
// SYN_REPORT. Events keep the order the kernel delivered them in.
type Frame struct {
	Source *Source
	Events []*evdev.InputEvent
}

// Mux reads any number of sources and merges their frames onto one channel.
// Frames from one source stay in order.
type Mux struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
	frames chan Frame

	mu      sync.Mutex
	closed  bool
	sources map[string]*Source
	onClose func(*Source)
}

// NewMux returns an empty mux. onClose, if set, runs once for every source
// when its reader ends, before the device is closed.
func NewMux(ctx context.Context, onClose func(*Source)) *Mux {
	ctx, cancel := context.WithCancel(ctx)
	group, ctx := errgroup.WithContext(ctx)
	m := &Mux{
		ctx:     ctx,
		cancel:  cancel,
		group:   group,
		frames:  make(chan Frame, 64),
		sources: map[string]*Source{},
		onClose: onClose,
	}
	go func() {
		<-ctx.Done()
		m.Close()
	}()
	return m
}

// Add starts reading src. It reports false, and closes src, if the mux is
// already shut down or a source with the same path is being read.
func (m *Mux) Add(src *Source) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, dup := m.sources[src.Path]; m.closed || dup {
		_ = src.Dev.Close()
		return false
	}
	m.sources[src.Path] = src
	m.group.Go(func() error {
		m.read(src)
		return nil
	})
	logger().Debug().Str("device", src.String()).Msg("reading input device")
	return true
}

func (m *Mux) Has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sources[path]
	return ok
}

func (m *Mux) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sources)
}

func (m *Mux) Frames() <-chan Frame {
	return m.frames
}

// Close stops every reader. Frames is closed once Wait has seen them end.
func (m *Mux) Close() {
	m.mu.Lock()
	if !m.closed {
		m.closed = true
		for _, src := range m.sources {
			// unblocks ReadOne
			_ = src.Dev.Close()
		}
	}
	m.mu.Unlock()
	m.cancel()
}

// Wait blocks until the mux is closed and every reader has ended, then
// closes Frames.
func (m *Mux) Wait() {
	<-m.ctx.Done()
	m.Close()
	_ = m.group.Wait()
	close(m.frames)
}

func (m *Mux) read(src *Source) {
	defer func() {
		m.mu.Lock()
		delete(m.sources, src.Path)
		m.mu.Unlock()
		if m.onClose != nil {
			m.onClose(src)
		}
		_ = src.Dev.Close()
	}()

	var pending []*evdev.InputEvent
	for {
		ev, err := src.Dev.ReadOne()
		if err != nil {
			if m.ctx.Err() == nil {
				logger().Info().Err(err).Str("device", src.String()).Msg("input device gone")
			}
			return
		}

		if ev.Type != evdev.EV_SYN {
			pending = append(pending, ev)
			continue
		}
		switch ev.Code {
		case evdev.SYN_DROPPED:
			// the kernel buffer overflowed, the partial frame is unreliable
			logger().Debug().Str("device", src.String()).Int("events", len(pending)).Msg("dropping partial frame")
			pending = nil
			continue
		case evdev.SYN_REPORT:
		default:
			pending = append(pending, ev)
			continue
		}

		frame := Frame{Source: src, Events: append(pending, ev)}
		pending = nil
		select {
		case m.frames <- frame:
		case <-m.ctx.Done():
			return
		}
	}
}
