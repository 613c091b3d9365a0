package inputhook

import "sync"

// Modifiers is the modifier mask handed to a Layout.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCapsLock
	ModControl
	ModAlt
	ModMeta
	ModAltGr
)

func (m Modifiers) Has(o Modifiers) bool { return m&o == o }

// Layout resolves a key under a modifier mask to the text it types.
// Dead keys report dead=true and their spacing glyph as text; the Keyboard
// composes them with the next keystroke.
type Layout interface {
	Lookup(key Key, mods Modifiers) (text string, dead bool, ok bool)
}

// StatefulLayout is implemented by layouts whose native API keeps its own
// dead-key state. The Keyboard stores that state opaquely and passes it back
// on every call instead of composing by itself.
type StatefulLayout interface {
	Layout
	LookupState(key Key, mods Modifiers, state *uint32) (string, bool)
}

// Keyboard tracks modifier latches and pending dead keys and turns key
// events into text. It is safe for concurrent use.
type Keyboard struct {
	mu     sync.Mutex
	layout Layout

	shiftL, shiftR bool
	ctrlL, ctrlR   bool
	alt, altGr     bool
	metaL, metaR   bool
	capsLock       bool

	pending rune
	native  uint32
}

// NewKeyboard returns a Keyboard using the layout active on this machine.
func NewKeyboard() (*Keyboard, error) {
	l, err := platformLayout()
	if err != nil {
		return nil, err
	}
	return NewKeyboardWithLayout(l), nil
}

func NewKeyboardWithLayout(l Layout) *Keyboard {
	return &Keyboard{layout: l}
}

// Add feeds one event into the keyboard. It returns the produced text for a
// KeyPress of a non-modifier key. Everything else only updates state.
func (k *Keyboard) Add(et EventType) (string, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	switch et.Kind {
	case KindKeyPress:
		if k.latch(et.Key, true) {
			return "", false
		}
		return k.resolve(et.Key)
	case KindKeyRelease:
		k.latch(et.Key, false)
	}
	return "", false
}

// Reset clears all latches and any pending dead key.
func (k *Keyboard) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()

	l := k.layout
	*k = Keyboard{layout: l}
}

func (k *Keyboard) Modifiers() Modifiers {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.mods()
}

// latch updates modifier state and reports whether key is a modifier.
func (k *Keyboard) latch(key Key, down bool) bool {
	switch key {
	case KeyShiftLeft:
		k.shiftL = down
	case KeyShiftRight:
		k.shiftR = down
	case KeyControlLeft:
		k.ctrlL = down
	case KeyControlRight:
		k.ctrlR = down
	case KeyAlt:
		k.alt = down
	case KeyAltGr:
		k.altGr = down
	case KeyMetaLeft:
		k.metaL = down
	case KeyMetaRight:
		k.metaR = down
	case KeyCapsLock:
		if down {
			k.capsLock = !k.capsLock
		}
	default:
		return IsModifier(key)
	}
	return true
}

func (k *Keyboard) mods() Modifiers {
	var m Modifiers
	if k.shiftL || k.shiftR {
		m |= ModShift
	}
	if k.capsLock {
		m |= ModCapsLock
	}
	if k.ctrlL || k.ctrlR {
		m |= ModControl
	}
	if k.alt {
		m |= ModAlt
	}
	if k.altGr {
		m |= ModAltGr
	}
	if k.metaL || k.metaR {
		m |= ModMeta
	}
	return m
}

func (k *Keyboard) resolve(key Key) (string, bool) {
	if k.layout == nil {
		return "", false
	}
	mods := k.mods()

	if sl, ok := k.layout.(StatefulLayout); ok {
		text, ok := sl.LookupState(key, mods, &k.native)
		return text, ok && text != ""
	}

	text, dead, ok := k.layout.Lookup(key, mods)
	if !ok || text == "" {
		return "", false
	}

	if dead {
		accent := []rune(text)[0]
		if k.pending != 0 {
			prev := k.pending
			k.pending = accent
			return string(prev), true
		}
		k.pending = accent
		return "", false
	}

	if k.pending != 0 {
		accent := k.pending
		k.pending = 0
		return composeDead(accent, text), true
	}
	return text, true
}
