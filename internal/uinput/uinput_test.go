//go:build linux

package uinput

import (
	"encoding/binary"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructLayout(t *testing.T) {
	assert.Equal(t, 80+8+4+4*absCnt*4, binary.Size(userDev{}))
	if unsafe.Sizeof(uintptr(0)) == 8 {
		assert.Equal(t, 24, binary.Size(inputEvent{}))
	}
}

func TestKeyboardKeysSkipButtons(t *testing.T) {
	keys := KeyboardKeys()
	require.NotEmpty(t, keys)
	assert.Equal(t, uint16(1), keys[0])
	assert.Contains(t, keys, uint16(31))
	assert.Contains(t, keys, uint16(464))
	assert.NotContains(t, keys, uint16(BtnLeft))
	assert.NotContains(t, keys, uint16(0x2c0))
}

func TestCreateWithoutUinput(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "uinput"), Config{Name: "test"}, nil)
	assert.Error(t, err)
}
