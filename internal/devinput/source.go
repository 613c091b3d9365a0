//go:build linux

package devinput

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	evdev "github.com/holoplot/go-evdev"
)

// Source is an opened /dev/input/event* node.
type Source struct {
	Dev  *evdev.InputDevice
	Path string
	Name string

	HasKeys bool
	HasRel  bool
	HasAbs  bool

	// AbsX and AbsY are the pointer axis ranges when HasAbs is set.
	AbsX, AbsY evdev.AbsInfo
	// Touchpad sources report finger position, not pointer position.
	Touchpad bool
}

func (s *Source) String() string {
	return fmt.Sprintf("%s (%s)", s.Path, s.Name)
}

// IsPointer reports whether s moves a pointer.
func (s *Source) IsPointer() bool {
	return s.HasRel || s.HasAbs
}

func IsEventNode(name string) bool {
	return strings.HasPrefix(filepath.Base(name), "event")
}

// Open opens path and reads its capabilities. Devices that produce neither
// keys nor pointer motion are rejected.
func Open(path string) (*Source, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, err
	}

	name, err := dev.Name()
	if err != nil {
		name = filepath.Base(path)
	}
	src := &Source{Dev: dev, Path: path, Name: name}

	for _, t := range dev.CapableTypes() {
		switch t {
		case evdev.EV_KEY:
			src.HasKeys = true
		case evdev.EV_REL:
			src.HasRel = true
		case evdev.EV_ABS:
			if infos, err := dev.AbsInfos(); err == nil {
				x, okX := infos[evdev.ABS_X]
				y, okY := infos[evdev.ABS_Y]
				if okX && okY && x.Maximum > x.Minimum && y.Maximum > y.Minimum {
					src.HasAbs = true
					src.AbsX, src.AbsY = x, y
				}
			}
		}
	}

	if src.HasAbs {
		for _, p := range dev.Properties() {
			if p == evdev.INPUT_PROP_POINTER {
				src.Touchpad = true
			}
		}
	}

	if !src.HasKeys && !src.IsPointer() {
		_ = dev.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrNotInput)
	}
	return src, nil
}

var ErrNotInput = errors.New("device has no key or pointer capabilities")

// Scan opens every event node in dir. Nodes that fail to open are skipped;
// if none opened and at least one failed on permissions, the permission
// error is returned.
func Scan(dir string, skip func(*Source) bool) ([]*Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if !e.IsDir() && IsEventNode(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	var (
		sources []*Source
		permErr error
	)
	for _, p := range paths {
		src, err := Open(p)
		if err != nil {
			if errors.Is(err, fs.ErrPermission) && permErr == nil {
				permErr = err
			}
			logger().Trace().Err(err).Str("path", p).Msg("skipping input node")
			continue
		}
		if skip != nil && skip(src) {
			_ = src.Dev.Close()
			continue
		}
		sources = append(sources, src)
	}

	if len(sources) == 0 && permErr != nil {
		return nil, permErr
	}
	return sources, nil
}
