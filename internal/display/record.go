//go:build linux

package display

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/BurntSushi/xgb/record"
	"github.com/BurntSushi/xgb/xproto"
)

// Recording streams the server's core input events through a RECORD
// context. The context is managed on the X11 connection; its data arrives
// on a connection of its own.
type Recording struct {
	x    *X11
	ctx  record.Context
	data *dataConn

	stopping atomic.Bool
	stopOnce sync.Once
	done     chan struct{}
	err      error
}

// Record starts recording every client's key, button and motion events.
// h runs on the recording goroutine.
func (x *X11) Record(h func(CoreEvent)) (*Recording, error) {
	x.lock.Lock()
	defer x.lock.Unlock()
	if x.conn == nil {
		return nil, errors.New("X connection closed")
	}

	if err := record.Init(x.conn); err != nil {
		return nil, fmt.Errorf("RECORD extension: %w", err)
	}
	ctx, err := record.NewContextId(x.conn)
	if err != nil {
		return nil, err
	}
	ranges := []record.Range{{
		DeviceEvents: record.Range8{First: xproto.KeyPress, Last: xproto.MotionNotify},
	}}
	clients := []record.ClientSpec{record.CsAllClients}
	if err := record.CreateContextChecked(x.conn, ctx, 0, 1, 1, clients, ranges).Check(); err != nil {
		return nil, fmt.Errorf("create record context: %w", err)
	}
	x.conn.ExtLock.RLock()
	opcode := x.conn.Extensions["RECORD"]
	x.conn.ExtLock.RUnlock()

	free := func() { record.FreeContext(x.conn, ctx) }

	data, err := dialData(x.display)
	if err != nil {
		free()
		return nil, fmt.Errorf("record connection: %w", err)
	}
	if err := data.enable(opcode, uint32(ctx)); err != nil {
		_ = data.close()
		free()
		return nil, fmt.Errorf("enable record context: %w", err)
	}
	category, _, err := data.next()
	if err == nil && category != CategoryStartOfData {
		err = fmt.Errorf("unexpected record reply category %d", category)
	}
	if err != nil {
		_ = data.close()
		free()
		return nil, fmt.Errorf("enable record context: %w", err)
	}

	r := &Recording{x: x, ctx: ctx, data: data, done: make(chan struct{})}
	go r.run(h)
	logger().Debug().Uint32("context", uint32(ctx)).Msg("recording X input")
	return r, nil
}

func (r *Recording) run(h func(CoreEvent)) {
	defer close(r.done)
	defer func() {
		_ = r.data.close()
		r.x.lock.Lock()
		if r.x.conn != nil {
			record.FreeContext(r.x.conn, r.ctx)
		}
		r.x.lock.Unlock()
	}()

	for {
		category, data, err := r.data.next()
		if err != nil {
			if !r.stopping.Load() {
				r.err = err
			}
			return
		}
		switch category {
		case CategoryFromServer:
			for _, ev := range DecodeRecorded(data) {
				h(ev)
			}
		case CategoryEndOfData:
			return
		}
	}
}

// Stop disables the context. The server then ends the data stream.
func (r *Recording) Stop() {
	r.stopOnce.Do(func() {
		r.stopping.Store(true)

		r.x.lock.Lock()
		var err error
		if r.x.conn == nil {
			err = errors.New("X connection closed")
		} else {
			err = record.DisableContextChecked(r.x.conn, r.ctx).Check()
		}
		r.x.lock.Unlock()

		if err != nil {
			logger().Warn().Err(err).Msg("disabling record context failed, closing its connection")
			_ = r.data.close()
		}
	})
}

// Wait blocks until the stream has ended and returns why it broke, if it
// did before Stop.
func (r *Recording) Wait() error {
	<-r.done
	return r.err
}
