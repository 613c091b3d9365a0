package inputhook

import (
	"sync"

	"github.com/rs/xid"
)

// slot holds the single active registration of one engine.
type slot struct {
	name string

	lock   sync.Mutex
	active *registration
}

var (
	listenSlot = &slot{name: "listen"}
	grabSlot   = &slot{name: "grab"}
)

// registration is the owned handle of one running Listen or Grab call.
// Backends call installed once their hook is live and watch the returned
// value: false means a stop was requested during install.
type registration struct {
	id   xid.ID
	slot *slot

	// onRunning, if set, runs once the backend reports its hook installed.
	onRunning func()

	lock     sync.Mutex
	stopFn   func()
	stopped  bool
	stopOnce sync.Once
	live     bool
}

func (s *slot) claim() (*registration, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.active != nil {
		return nil, ErrAlreadyRunning
	}
	r := &registration{id: xid.New(), slot: s}
	s.active = r
	return r, nil
}

func (s *slot) current() *registration {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.active
}

// stop stops the active registration, if any.
func (s *slot) stop() {
	if r := s.current(); r != nil {
		r.stop()
	}
}

func (r *registration) release() {
	r.slot.lock.Lock()
	defer r.slot.lock.Unlock()
	if r.slot.active == r {
		r.slot.active = nil
	}
}

// installed records how to stop the running hook. It reports false when a
// stop already arrived, in which case the backend should tear down and
// return without running its loop.
func (r *registration) installed(stop func()) bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.stopped {
		return false
	}
	r.stopFn = stop
	r.live = true
	if r.onRunning != nil {
		r.onRunning()
	}
	return true
}

// wasInstalled reports whether the backend ever got its hook live.
func (r *registration) wasInstalled() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.live
}

func (r *registration) stop() {
	r.lock.Lock()
	r.stopped = true
	fn := r.stopFn
	r.lock.Unlock()

	if fn != nil {
		r.stopOnce.Do(fn)
	}
}
