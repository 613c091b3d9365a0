package inputhook

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend replays a fixed list of events and records what the engines
// asked of it.
type fakeBackend struct {
	events     []EventType
	installErr error
	// block keeps listen and grab running until stopped
	block bool
	// beforeInstall runs between claiming the slot and going live
	beforeInstall func(*registration)
	running       chan struct{}

	lock      sync.Mutex
	passed    []EventType
	replaced  []EventType
	simulated []EventType
	simErr    error
	size      [2]uint64
}

func newFakeBackend(events ...EventType) *fakeBackend {
	return &fakeBackend{events: events, running: make(chan struct{}, 1)}
}

func (f *fakeBackend) name() string            { return "fake" }
func (f *fakeBackend) canReplace() bool        { return true }
func (f *fakeBackend) layout() (Layout, error) { return USLayout, nil }

func (f *fakeBackend) displaySize() (uint64, uint64, error) {
	if f.size[0] == 0 {
		return 0, 0, ErrNoDisplay
	}
	return f.size[0], f.size[1], nil
}

func (f *fakeBackend) run(reg *registration, each func(EventType)) error {
	if f.installErr != nil {
		return f.installErr
	}
	if f.beforeInstall != nil {
		f.beforeInstall(reg)
	}
	stop := make(chan struct{})
	if !reg.installed(func() { close(stop) }) {
		return nil
	}
	select {
	case f.running <- struct{}{}:
	default:
	}
	for _, et := range f.events {
		each(et)
	}
	if f.block {
		<-stop
	}
	return nil
}

func (f *fakeBackend) listen(reg *registration, emit emitFunc) error {
	return f.run(reg, func(et EventType) { emit(et, time.Time{}) })
}

func (f *fakeBackend) grab(reg *registration, decide decideFunc) error {
	return f.run(reg, func(et EventType) {
		d := decide(et, time.Time{})
		f.lock.Lock()
		defer f.lock.Unlock()
		switch d.action {
		case grabPass:
			f.passed = append(f.passed, et)
		case grabReplace:
			f.replaced = append(f.replaced, d.replacement)
		}
	})
}

func (f *fakeBackend) simulate(et EventType) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.simErr != nil {
		err := f.simErr
		f.simErr = nil
		return err
	}
	f.simulated = append(f.simulated, et)
	return nil
}

// useBackend swaps the process backend for the duration of the test.
func useBackend(t *testing.T, b backend) {
	t.Helper()
	backendOnce.Do(func() { currentBackend = newPlatformBackend(currentConfig()) })
	prev := currentBackend
	currentBackend = b
	t.Cleanup(func() { currentBackend = prev })
}

func TestListenDeliversInOrder(t *testing.T) {
	f := newFakeBackend(KeyPress(KeyShiftLeft), KeyPress(KeyS), KeyRelease(KeyS), MouseMove(3, 4), Wheel(0, -1))
	useBackend(t, f)

	var got []Event
	require.NoError(t, Listen(func(ev Event) { got = append(got, ev) }))

	require.Len(t, got, 5)
	for i, ev := range got {
		assert.Equal(t, f.events[i], ev.Type)
		assert.False(t, ev.Time.IsZero())
	}
	assert.Equal(t, "S", got[1].Name)
	assert.Empty(t, got[2].Name)
	assert.Empty(t, got[3].Name)
}

func TestListenSingleRegistration(t *testing.T) {
	f := newFakeBackend()
	f.block = true
	useBackend(t, f)

	done := make(chan error, 1)
	go func() { done <- Listen(func(Event) {}) }()
	<-f.running

	err := Listen(func(Event) {})
	var le *ListenError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, KindAlreadyRunning, le.Kind)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	StopListen()
	require.NoError(t, <-done)
	StopListen()

	// the slot is free again
	f.block = false
	assert.NoError(t, Listen(func(Event) {}))
}

func TestListenContextCancel(t *testing.T) {
	f := newFakeBackend()
	f.block = true
	useBackend(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ListenContext(ctx, func(Event) {}) }()
	<-f.running
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestListenInstallFailure(t *testing.T) {
	f := newFakeBackend()
	f.installErr = errors.Join(ErrPermission, errors.New("open /dev/input/event3"))
	useBackend(t, f)

	err := Listen(func(Event) {})
	var le *ListenError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, KindPermission, le.Kind)
	assert.ErrorIs(t, err, ErrPermission)

	assert.Error(t, Listen(nil))
}

func TestStopBeforeInstall(t *testing.T) {
	reg, err := listenSlot.claim()
	require.NoError(t, err)
	defer reg.release()

	reg.stop()
	called := false
	assert.False(t, reg.installed(func() { called = true }))
	assert.False(t, reg.wasInstalled())
	assert.False(t, called)
}

func TestStoppedDuringInstall(t *testing.T) {
	f := newFakeBackend(KeyPress(KeyA))
	f.beforeInstall = func(*registration) {
		StopListen()
		StopGrab()
	}
	useBackend(t, f)

	called := false
	err := Listen(func(Event) { called = true })
	var le *ListenError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, KindStopped, le.Kind)
	assert.ErrorIs(t, err, ErrStopped)

	err = Grab(func(ev Event) *Event { called = true; return &ev })
	var ge *GrabError
	require.ErrorAs(t, err, &ge)
	assert.ErrorIs(t, err, ErrStopped)
	assert.Equal(t, GrabIdle, CurrentGrabState())
	assert.False(t, called)

	// a cancelled context wins over the stop
	ctx, cancel := context.WithCancel(context.Background())
	f.beforeInstall = func(reg *registration) {
		cancel()
		reg.stop()
	}
	assert.ErrorIs(t, ListenContext(ctx, func(Event) {}), context.Canceled)
}

func TestGrabDecisions(t *testing.T) {
	f := newFakeBackend(KeyPress(KeyA), KeyPress(KeyB), KeyPress(KeyC), KeyPress(KeyE))
	useBackend(t, f)

	var states []GrabState
	err := Grab(func(ev Event) *Event {
		states = append(states, CurrentGrabState())
		switch ev.Type {
		case KeyPress(KeyB):
			return nil
		case KeyPress(KeyC):
			ev.Type = KeyPress(KeyD)
		case KeyPress(KeyE):
			// a changed name alone is not a replacement
			ev.Name = "x"
		}
		return &ev
	})
	require.NoError(t, err)

	assert.Equal(t, []EventType{KeyPress(KeyA), KeyPress(KeyE)}, f.passed)
	assert.Equal(t, []EventType{KeyPress(KeyD)}, f.replaced)
	for _, s := range states {
		assert.Equal(t, GrabRunning, s)
	}
	assert.Equal(t, GrabIdle, CurrentGrabState())
}

func TestGrabInstallFailure(t *testing.T) {
	f := newFakeBackend()
	f.installErr = ErrAccessibility
	useBackend(t, f)

	err := Grab(func(ev Event) *Event { return &ev })
	var ge *GrabError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, KindPermission, ge.Kind)
	assert.Equal(t, GrabFailed, CurrentGrabState())

	f.installErr = nil
	require.NoError(t, Grab(func(ev Event) *Event { return &ev }))
	assert.Equal(t, GrabIdle, CurrentGrabState())
}

func TestGrabAndListenRunTogether(t *testing.T) {
	f := newFakeBackend()
	f.block = true
	f.running = make(chan struct{}, 2)
	useBackend(t, f)

	listening := make(chan error, 1)
	grabbing := make(chan error, 1)
	go func() { listening <- Listen(func(Event) {}) }()
	go func() { grabbing <- Grab(func(ev Event) *Event { return &ev }) }()
	<-f.running
	<-f.running

	StopGrab()
	require.NoError(t, <-grabbing)
	StopListen()
	require.NoError(t, <-listening)
}

func TestSimulateValidates(t *testing.T) {
	f := newFakeBackend()
	useBackend(t, f)

	for _, et := range []EventType{
		{},
		MouseMove(math.NaN(), 1),
		MouseMove(0, math.Inf(1)),
		ButtonPress(Button(9)),
	} {
		err := Simulate(et)
		var se *SimulateError
		require.ErrorAs(t, err, &se, "%v", et)
		assert.Equal(t, et, se.Event)
	}
	assert.Empty(t, f.simulated)

	require.NoError(t, Simulate(ButtonPress(UnknownButton(8))))
	require.NoError(t, Simulate(Wheel(0, 0)))
}

func TestSimulateFailureLeavesNoState(t *testing.T) {
	f := newFakeBackend()
	f.simErr = ErrUnmapped
	useBackend(t, f)

	err := Simulate(KeyPress(KeyA))
	var se *SimulateError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindUnmapped, se.Kind)

	require.NoError(t, Simulate(KeyPress(KeyA)))
	assert.Equal(t, []EventType{KeyPress(KeyA)}, f.simulated)
}

func TestDisplaySize(t *testing.T) {
	f := newFakeBackend()
	useBackend(t, f)

	_, _, err := DisplaySize()
	var de *DisplayError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindNoDisplay, de.Kind)

	f.size = [2]uint64{1920, 1080}
	w, h, err := DisplaySize()
	require.NoError(t, err)
	assert.Equal(t, uint64(1920), w)
	assert.Equal(t, uint64(1080), h)
}
