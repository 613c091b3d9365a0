package inputhook

import (
	"context"
	"errors"
	"time"
)

// Listen installs a system-wide, read-only input hook and calls callback for
// every keyboard and mouse event, in the order the OS produced them. It
// blocks until StopListen is called. The callback runs on the hook's loop
// and should return quickly.
//
// Only one listener may run per process; a second call fails with
// ErrAlreadyRunning. Install failures are returned as *ListenError. A
// StopListen that lands before the hook is live makes Listen return
// ErrStopped.
func Listen(callback func(Event)) error {
	return ListenContext(context.Background(), callback)
}

// ListenContext is Listen that also stops when ctx is done, returning
// ctx.Err().
func ListenContext(ctx context.Context, callback func(Event)) error {
	if callback == nil {
		return &ListenError{Kind: KindOther, Err: errors.New("nil callback")}
	}

	reg, err := listenSlot.claim()
	if err != nil {
		return newListenError(err)
	}
	defer reg.release()

	defer watchContext(ctx, reg)()

	b := platform()
	l := listenLogger().With().Str("session", reg.id.String()).Str("backend", b.name()).Logger()
	p := newPipeline("listen", b)

	l.Info().Msg("installing listener")
	reg.onRunning = func() { l.Info().Msg("listener running") }

	err = b.listen(reg, func(et EventType, at time.Time) {
		callback(p.event(et, at))
	})
	if err != nil {
		l.Error().Err(err).Msg("listener failed")
		return newListenError(err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if !reg.wasInstalled() {
		l.Info().Msg("listener stopped before install")
		return newListenError(ErrStopped)
	}
	l.Info().Msg("listener stopped")
	return nil
}

// StopListen stops the running listener. It is safe to call at any time and
// more than once; with no listener running it does nothing.
func StopListen() {
	listenSlot.stop()
}

// watchContext stops reg when ctx is done. The returned func ends the watch.
func watchContext(ctx context.Context, reg *registration) func() {
	if ctx.Done() == nil {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			reg.stop()
		case <-done:
		}
	}()
	return func() { close(done) }
}
