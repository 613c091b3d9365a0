//go:build linux

package display

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/jetkvm/inputhook/internal/logging"
)

var logger = logging.Subsystem("display")

var ErrNoX11 = errors.New("DISPLAY is not set")

// X11 is a connection to the X server used for screen geometry, the pointer
// position and the core keyboard mapping.
type X11 struct {
	display string
	conn    *xgb.Conn
	screen  *xproto.ScreenInfo
	setup   *xproto.SetupInfo

	lock     sync.Mutex
	xtestErr error
	xtestOK  bool
}

func ConnectX11() (*X11, error) {
	display := os.Getenv("DISPLAY")
	if display == "" {
		return nil, ErrNoX11
	}
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		conn.Close()
		return nil, errors.New("X server reported no screens")
	}
	logger().Debug().Uint16("width", screen.WidthInPixels).Uint16("height", screen.HeightInPixels).Msg("connected to X server")
	return &X11{display: display, conn: conn, screen: screen, setup: setup}, nil
}

func (x *X11) Close() {
	x.lock.Lock()
	defer x.lock.Unlock()
	if x.conn != nil {
		x.conn.Close()
		x.conn = nil
	}
}

// ScreenSize is the size of the default screen's root window.
func (x *X11) ScreenSize() (uint64, uint64) {
	return uint64(x.screen.WidthInPixels), uint64(x.screen.HeightInPixels)
}

// Pointer returns the pointer position on the root window.
func (x *X11) Pointer() (float64, float64, error) {
	x.lock.Lock()
	defer x.lock.Unlock()
	if x.conn == nil {
		return 0, 0, errors.New("X connection closed")
	}

	reply, err := xproto.QueryPointer(x.conn, x.screen.Root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("query pointer: %w", err)
	}
	return float64(reply.RootX), float64(reply.RootY), nil
}

func (x *X11) Keymap() (*Keymap, error) {
	x.lock.Lock()
	defer x.lock.Unlock()
	if x.conn == nil {
		return nil, errors.New("X connection closed")
	}

	first := x.setup.MinKeycode
	count := byte(x.setup.MaxKeycode - first + 1)
	reply, err := xproto.GetKeyboardMapping(x.conn, first, count).Reply()
	if err != nil {
		return nil, fmt.Errorf("get keyboard mapping: %w", err)
	}

	syms := make([]uint32, len(reply.Keysyms))
	for i, s := range reply.Keysyms {
		syms[i] = uint32(s)
	}
	return &Keymap{MinKeycode: uint32(first), PerCode: int(reply.KeysymsPerKeycode), Syms: syms}, nil
}
