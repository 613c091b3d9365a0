//go:build linux

package display

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb"
)

// dataConn is a bare connection to the X server that carries the RECORD
// data stream. xgb hands each reply to exactly one cookie, so it cannot
// follow EnableContext, which is answered by a stream of replies.
type dataConn struct {
	conn net.Conn
}

type displayAddr struct {
	network string
	addr    string
	host    string
	number  string
}

func parseDisplay(display string) (displayAddr, error) {
	colon := strings.LastIndex(display, ":")
	if colon < 0 {
		return displayAddr{}, fmt.Errorf("bad display %q", display)
	}
	number := display[colon+1:]
	if dot := strings.LastIndex(number, "."); dot >= 0 {
		number = number[:dot]
	}
	if _, err := strconv.Atoi(number); err != nil {
		return displayAddr{}, fmt.Errorf("bad display %q", display)
	}

	host := display[:colon]
	switch {
	case strings.HasPrefix(host, "/"):
		return displayAddr{network: "unix", addr: display[:colon] + ":" + number, number: number}, nil
	case host == "" || host == "unix":
		return displayAddr{network: "unix", addr: "/tmp/.X11-unix/X" + number, number: number}, nil
	}
	network := "tcp"
	if slash := strings.LastIndex(host, "/"); slash >= 0 {
		network, host = host[:slash], host[slash+1:]
	}
	n, _ := strconv.Atoi(number)
	return displayAddr{
		network: network,
		addr:    net.JoinHostPort(host, strconv.Itoa(6000+n)),
		host:    host,
		number:  number,
	}, nil
}

const (
	authFamilyLocal = 256
	authFamilyWild  = 65535
)

// readAuthority returns the MIT-MAGIC-COOKIE-1 entry for a local display,
// or empty credentials when there is none.
func readAuthority(r io.Reader, hostname, number string) (string, []byte) {
	field := func() ([]byte, error) {
		var n uint16
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return nil, err
		}
		b := make([]byte, n)
		_, err := io.ReadFull(r, b)
		return b, err
	}

	for {
		var family uint16
		if err := binary.Read(r, binary.BigEndian, &family); err != nil {
			return "", nil
		}
		var fields [4][]byte
		for i := range fields {
			b, err := field()
			if err != nil {
				return "", nil
			}
			fields[i] = b
		}
		addr, disp, name, data := string(fields[0]), string(fields[1]), string(fields[2]), fields[3]

		hostOK := family == authFamilyWild || (family == authFamilyLocal && addr == hostname)
		dispOK := disp == "" || disp == number
		if hostOK && dispOK && name == "MIT-MAGIC-COOKIE-1" {
			return name, data
		}
	}
}

func authorityFile() string {
	if f := os.Getenv("XAUTHORITY"); f != "" {
		return f
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".Xauthority")
	}
	return ""
}

func setupRequest(authName string, authData []byte) []byte {
	buf := make([]byte, 12+xgb.Pad(len(authName))+xgb.Pad(len(authData)))
	buf[0] = 'l'
	xgb.Put16(buf[2:], 11)
	xgb.Put16(buf[6:], uint16(len(authName)))
	xgb.Put16(buf[8:], uint16(len(authData)))
	copy(buf[12:], authName)
	copy(buf[12+xgb.Pad(len(authName)):], authData)
	return buf
}

func dialData(display string) (*dataConn, error) {
	da, err := parseDisplay(display)
	if err != nil {
		return nil, err
	}
	conn, err := net.Dial(da.network, da.addr)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", display, err)
	}

	hostname := da.host
	if hostname == "" || hostname == "localhost" {
		hostname, _ = os.Hostname()
	}
	var (
		authName string
		authData []byte
	)
	if f, err := os.Open(authorityFile()); err == nil {
		authName, authData = readAuthority(f, hostname, da.number)
		_ = f.Close()
	}

	if err := handshake(conn, authName, authData); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &dataConn{conn: conn}, nil
}

func handshake(rw io.ReadWriter, authName string, authData []byte) error {
	if _, err := rw.Write(setupRequest(authName, authData)); err != nil {
		return err
	}
	head := make([]byte, 8)
	if _, err := io.ReadFull(rw, head); err != nil {
		return fmt.Errorf("read setup reply: %w", err)
	}
	rest := make([]byte, int(xgb.Get16(head[6:]))*4)
	if _, err := io.ReadFull(rw, rest); err != nil {
		return fmt.Errorf("read setup reply: %w", err)
	}
	switch head[0] {
	case 1:
		return nil
	case 0:
		reason := rest[:min(int(head[1]), len(rest))]
		return fmt.Errorf("X server refused connection: %s", reason)
	}
	return errors.New("X server asked for further authentication")
}

// enable sends RECORD EnableContext.
func (d *dataConn) enable(opcode byte, ctx uint32) error {
	buf := make([]byte, 8)
	buf[0] = opcode
	buf[1] = 5
	xgb.Put16(buf[2:], 2)
	xgb.Put32(buf[4:], ctx)
	_, err := d.conn.Write(buf)
	return err
}

// next returns the category and data of the next RECORD reply.
func (d *dataConn) next() (byte, []byte, error) {
	head := make([]byte, 32)
	for {
		if _, err := io.ReadFull(d.conn, head); err != nil {
			return 0, nil, err
		}
		switch head[0] {
		case 0:
			return 0, nil, fmt.Errorf("X error %d on the record connection", head[1])
		case 1:
			data := make([]byte, int(xgb.Get32(head[4:]))*4)
			if _, err := io.ReadFull(d.conn, data); err != nil {
				return 0, nil, err
			}
			return head[1], data, nil
		}
	}
}

func (d *dataConn) close() error {
	return d.conn.Close()
}
