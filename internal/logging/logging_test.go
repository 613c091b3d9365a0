package logging

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubsystemLoggerIsShared(t *testing.T) {
	a := Subsystem("test-shared")
	b := Subsystem("test-shared")
	assert.Same(t, a(), b())
}

func TestSetRootRebuildsSubsystems(t *testing.T) {
	l := Subsystem("test-rebuild")
	before := l()

	var buf bytes.Buffer
	SetRoot(zerolog.New(&buf).Level(zerolog.DebugLevel))

	assert.NotSame(t, before, l())
	l().Debug().Msg("hello")
	assert.Contains(t, buf.String(), `"subsystem":"test-rebuild"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	SetRoot(zerolog.New(&buf).Level(zerolog.DebugLevel))
	l := Subsystem("test-level")

	require.True(t, SetLevel("ERROR"))
	l().Warn().Msg("dropped")
	assert.Empty(t, buf.String())

	assert.False(t, SetLevel("loud"))
	assert.False(t, SetLevel(""))
}

func TestSetRootWhileLogging(t *testing.T) {
	l := Subsystem("test-concurrent")
	held := l()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 1000 {
			l().Info().Msg("tick")
			held.Info().Msg("tick")
		}
	}()
	go func() {
		defer wg.Done()
		for i := range 1000 {
			lvl := zerolog.InfoLevel
			if i%2 == 0 {
				lvl = zerolog.ErrorLevel
			}
			SetRoot(zerolog.New(io.Discard).Level(lvl))
		}
	}()
	wg.Wait()
}
