//go:build linux

package display

import (
	"bytes"
	"encoding/binary"
	"io"
	"net"
	"testing"

	"github.com/BurntSushi/xgb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDisplay(t *testing.T) {
	cases := []struct {
		in   string
		want displayAddr
	}{
		{":0", displayAddr{network: "unix", addr: "/tmp/.X11-unix/X0", number: "0"}},
		{":1.0", displayAddr{network: "unix", addr: "/tmp/.X11-unix/X1", number: "1"}},
		{"unix:2", displayAddr{network: "unix", addr: "/tmp/.X11-unix/X2", number: "2"}},
		{"/tmp/launch-x/org.xquartz:0", displayAddr{network: "unix", addr: "/tmp/launch-x/org.xquartz:0", number: "0"}},
		{"remote:10", displayAddr{network: "tcp", addr: "remote:6010", host: "remote", number: "10"}},
		{"tcp/localhost:1.0", displayAddr{network: "tcp", addr: "localhost:6001", host: "localhost", number: "1"}},
	}
	for _, c := range cases {
		got, err := parseDisplay(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}

	for _, bad := range []string{"", "0", ":", ":x"} {
		_, err := parseDisplay(bad)
		assert.Error(t, err, bad)
	}
}

func authEntry(family uint16, addr, disp, name string, data []byte) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, family)
	for _, f := range [][]byte{[]byte(addr), []byte(disp), []byte(name), data} {
		_ = binary.Write(&buf, binary.BigEndian, uint16(len(f)))
		buf.Write(f)
	}
	return buf.Bytes()
}

func TestReadAuthority(t *testing.T) {
	cookie := bytes.Repeat([]byte{0xab}, 16)
	var file []byte
	file = append(file, authEntry(authFamilyLocal, "other", "0", "MIT-MAGIC-COOKIE-1", []byte("nope"))...)
	file = append(file, authEntry(authFamilyLocal, "box", "1", "MIT-MAGIC-COOKIE-1", []byte("wrong display"))...)
	file = append(file, authEntry(authFamilyLocal, "box", "0", "XDM-AUTHORIZATION-1", []byte("unsupported"))...)
	file = append(file, authEntry(authFamilyLocal, "box", "0", "MIT-MAGIC-COOKIE-1", cookie)...)

	name, data := readAuthority(bytes.NewReader(file), "box", "0")
	assert.Equal(t, "MIT-MAGIC-COOKIE-1", name)
	assert.Equal(t, cookie, data)

	name, data = readAuthority(bytes.NewReader(file), "box", "7")
	assert.Empty(t, name)
	assert.Nil(t, data)

	wild := authEntry(authFamilyWild, "", "", "MIT-MAGIC-COOKIE-1", cookie)
	name, _ = readAuthority(bytes.NewReader(wild), "anything", "3")
	assert.Equal(t, "MIT-MAGIC-COOKIE-1", name)

	// truncated files yield no credentials
	name, _ = readAuthority(bytes.NewReader(file[:5]), "other", "0")
	assert.Empty(t, name)
}

func TestSetupRequest(t *testing.T) {
	req := setupRequest("MIT-MAGIC-COOKIE-1", make([]byte, 16))
	assert.Len(t, req, 12+20+16)
	assert.Equal(t, byte('l'), req[0])
	assert.Equal(t, uint16(11), xgb.Get16(req[2:]))
	assert.Equal(t, uint16(18), xgb.Get16(req[6:]))
	assert.Equal(t, uint16(16), xgb.Get16(req[8:]))
	assert.Equal(t, "MIT-MAGIC-COOKIE-1", string(req[12:30]))
}

type scripted struct {
	io.Reader
	written bytes.Buffer
}

func (s *scripted) Write(p []byte) (int, error) { return s.written.Write(p) }

func setupReply(code byte, reason string, extra int) []byte {
	body := make([]byte, xgb.Pad(len(reason))+extra)
	copy(body, reason)
	head := make([]byte, 8)
	head[0] = code
	head[1] = byte(len(reason))
	xgb.Put16(head[6:], uint16(len(body)/4))
	return append(head, body...)
}

func TestHandshake(t *testing.T) {
	ok := &scripted{Reader: bytes.NewReader(setupReply(1, "", 32))}
	require.NoError(t, handshake(ok, "", nil))
	assert.Equal(t, 12, ok.written.Len())

	refused := &scripted{Reader: bytes.NewReader(setupReply(0, "No protocol specified", 0))}
	err := handshake(refused, "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No protocol specified")

	short := &scripted{Reader: bytes.NewReader([]byte{1, 0, 11})}
	assert.Error(t, handshake(short, "", nil))
}

func TestDataConnReplies(t *testing.T) {
	client, server := net.Pipe()
	d := &dataConn{conn: client}
	defer d.close()

	go func() {
		// an event on the data connection is skipped
		ev := make([]byte, 32)
		ev[0] = EventKeyPress
		_, _ = server.Write(ev)

		data := wireEvent(EventKeyRelease, 40, 7, 0, 0, 0)
		reply := make([]byte, 32)
		reply[0] = 1
		reply[1] = CategoryFromServer
		xgb.Put32(reply[4:], uint32(len(data)/4))
		_, _ = server.Write(append(reply, data...))

		xerr := make([]byte, 32)
		xerr[1] = 2
		_, _ = server.Write(xerr)
	}()

	category, data, err := d.next()
	require.NoError(t, err)
	assert.Equal(t, byte(CategoryFromServer), category)
	assert.Equal(t, []CoreEvent{{Type: EventKeyRelease, Detail: 40, Time: 7}}, DecodeRecorded(data))

	_, _, err = d.next()
	assert.ErrorContains(t, err, "X error 2")
}

func TestEnableRequest(t *testing.T) {
	client, server := net.Pipe()
	d := &dataConn{conn: client}
	defer d.close()

	go func() { _ = d.enable(146, 0x400001) }()
	buf := make([]byte, 8)
	_, err := io.ReadFull(server, buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{146, 5, 2, 0, 0x01, 0x00, 0x40, 0x00}, buf)
}
