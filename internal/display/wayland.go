package display

import (
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"

	"github.com/goccy/go-json"
)

var ErrNoCompositor = errors.New("no supported Wayland compositor found")

type rect struct {
	X, Y, W, H float64
}

// bounds returns the size of the smallest box holding every rect.
func bounds(rects []rect) (uint64, uint64, error) {
	if len(rects) == 0 {
		return 0, 0, errors.New("no active outputs")
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, r := range rects {
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.X+r.W)
		maxY = math.Max(maxY, r.Y+r.H)
	}
	return uint64(math.Round(maxX - minX)), uint64(math.Round(maxY - minY)), nil
}

type swayOutput struct {
	Active bool `json:"active"`
	Rect   struct {
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"rect"`
}

func parseSwayOutputs(data []byte) (uint64, uint64, error) {
	var outputs []swayOutput
	if err := json.Unmarshal(data, &outputs); err != nil {
		return 0, 0, fmt.Errorf("decode sway outputs: %w", err)
	}
	var rects []rect
	for _, o := range outputs {
		if o.Active {
			rects = append(rects, rect{o.Rect.X, o.Rect.Y, o.Rect.Width, o.Rect.Height})
		}
	}
	return bounds(rects)
}

type hyprMonitor struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Scale     float64 `json:"scale"`
	Transform int     `json:"transform"`
	Disabled  bool    `json:"disabled"`
}

func parseHyprMonitors(data []byte) (uint64, uint64, error) {
	var monitors []hyprMonitor
	if err := json.Unmarshal(data, &monitors); err != nil {
		return 0, 0, fmt.Errorf("decode hyprland monitors: %w", err)
	}
	var rects []rect
	for _, m := range monitors {
		if m.Disabled {
			continue
		}
		scale := m.Scale
		if scale <= 0 {
			scale = 1
		}
		w, h := m.Width/scale, m.Height/scale
		// odd transforms rotate by 90 or 270 degrees
		if m.Transform%2 == 1 {
			w, h = h, w
		}
		rects = append(rects, rect{m.X, m.Y, w, h})
	}
	return bounds(rects)
}

// CompositorSize asks the running Wayland compositor for its output layout.
// Sway and Hyprland are supported through their IPC command line tools.
func CompositorSize() (uint64, uint64, error) {
	switch {
	case os.Getenv("SWAYSOCK") != "":
		out, err := exec.Command("swaymsg", "-t", "get_outputs", "-r").Output()
		if err != nil {
			return 0, 0, fmt.Errorf("swaymsg: %w", err)
		}
		return parseSwayOutputs(out)
	case os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != "":
		out, err := exec.Command("hyprctl", "monitors", "-j").Output()
		if err != nil {
			return 0, 0, fmt.Errorf("hyprctl: %w", err)
		}
		return parseHyprMonitors(out)
	}
	return 0, 0, ErrNoCompositor
}
