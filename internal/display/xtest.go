//go:build linux

package display

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xtest"
)

func (x *X11) initXTest() error {
	if x.xtestOK || x.xtestErr != nil {
		return x.xtestErr
	}
	if err := xtest.Init(x.conn); err != nil {
		x.xtestErr = fmt.Errorf("XTEST extension: %w", err)
		return x.xtestErr
	}
	x.xtestOK = true
	return nil
}

// FakeInput sends one synthetic core event through XTEST and waits for the
// server to accept it. For motion, detail 0 makes the position absolute.
func (x *X11) FakeInput(typ, detail byte, rootX, rootY int16) error {
	x.lock.Lock()
	defer x.lock.Unlock()
	if x.conn == nil {
		return errors.New("X connection closed")
	}
	if err := x.initXTest(); err != nil {
		return err
	}
	return xtest.FakeInputChecked(x.conn, typ, detail, 0, x.screen.Root, rootX, rootY, 0).Check()
}

// CanFakeInput reports whether the server offers XTEST.
func (x *X11) CanFakeInput() bool {
	x.lock.Lock()
	defer x.lock.Unlock()
	return x.conn != nil && x.initXTest() == nil
}
