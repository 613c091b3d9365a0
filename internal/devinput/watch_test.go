//go:build linux

package devinput

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEventNode(t *testing.T) {
	assert.True(t, IsEventNode("/dev/input/event3"))
	assert.True(t, IsEventNode("event12"))
	assert.False(t, IsEventNode("/dev/input/mice"))
	assert.False(t, IsEventNode("/dev/input/js0"))
	assert.False(t, IsEventNode("/dev/input/by-id"))
}

func TestWatchReportsNewEventNodes(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	found := make(chan string, 4)
	require.NoError(t, Watch(ctx, dir, 10*time.Millisecond, func(p string) { found <- p }))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "mouse0"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "event7"), nil, 0o600))

	select {
	case p := <-found:
		assert.Equal(t, filepath.Join(dir, "event7"), p)
	case <-time.After(2 * time.Second):
		t.Fatal("event node not reported")
	}

	select {
	case p := <-found:
		t.Fatalf("unexpected report %s", p)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatchMissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope"), 0, func(string) {})
	assert.Error(t, err)
}

func TestScanSkipsNonDevices(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "event0"), []byte("not a device"), 0o600))

	sources, err := Scan(dir, nil)
	require.NoError(t, err)
	assert.Empty(t, sources)
}
