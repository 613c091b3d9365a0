package display

// Keymap is the core protocol keyboard mapping: for keycode k the keysyms
// are Syms[(k-MinKeycode)*PerCode:][:PerCode].
type Keymap struct {
	MinKeycode uint32
	PerCode    int
	Syms       []uint32
}

func (m *Keymap) Lookup(keycode uint32) []uint32 {
	if keycode < m.MinKeycode || m.PerCode == 0 {
		return nil
	}
	start := int(keycode-m.MinKeycode) * m.PerCode
	if start+m.PerCode > len(m.Syms) {
		return nil
	}
	return m.Syms[start : start+m.PerCode]
}
