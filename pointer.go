package inputhook

import (
	"math"
	"sync"
)

// pointerTracker keeps an absolute pointer position for stacks that only
// report or accept relative motion.
type pointerTracker struct {
	lock          sync.Mutex
	x, y          float64
	width, height float64
}

func newPointerTracker(width, height uint64) *pointerTracker {
	return &pointerTracker{width: float64(width), height: float64(height)}
}

func (p *pointerTracker) clamp() {
	if p.width > 0 {
		p.x = math.Min(p.x, p.width-1)
	}
	if p.height > 0 {
		p.y = math.Min(p.y, p.height-1)
	}
	p.x = math.Max(0, p.x)
	p.y = math.Max(0, p.y)
}

func (p *pointerTracker) moveBy(dx, dy float64) (float64, float64) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.x += dx
	p.y += dy
	p.clamp()
	return p.x, p.y
}

func (p *pointerTracker) moveTo(x, y float64) (float64, float64) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.x, p.y = x, y
	p.clamp()
	return p.x, p.y
}

func (p *pointerTracker) position() (float64, float64) {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.x, p.y
}

// scaleAxis maps v from the inclusive device range [min, max] onto
// [0, size). A device whose range is [0, size-1] maps onto itself.
func scaleAxis(v, min, max int32, size float64) float64 {
	if max <= min {
		return 0
	}
	if size <= 0 {
		return float64(v - min)
	}
	return float64(v-min) * size / float64(max-min+1)
}
