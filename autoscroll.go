package dnd

import "math"

// AutoScrollConfig tunes edge-proximity scrolling during a drag.
type AutoScrollConfig struct {
	// EdgeThreshold is how close to a container's top or bottom edge the
	// pointer must be before scrolling engages, in container units.
	EdgeThreshold float32

	// MaxVelocity is the scroll speed right at the edge, units per second.
	// The per-frame movement is MaxVelocity scaled by the frame's dt.
	MaxVelocity float32

	// Curve is the exponent applied to edge proximity: 1 is linear, higher
	// values keep scrolling slow until the pointer is nearly at the edge.
	Curve float32
}

// DefaultAutoScrollConfig returns sensible defaults: a 50-unit edge zone,
// 900 units/s at the edge (15 per frame at 60fps), gently eased.
func DefaultAutoScrollConfig() AutoScrollConfig {
	return AutoScrollConfig{
		EdgeThreshold: 50,
		MaxVelocity:   900,
		Curve:         1.5,
	}
}

// autoScrollStep advances one container's scroll position for one frame of
// an active drag. It only ever runs for the container the pointer is over,
// and only while the session is in PhaseDragging; the engine stops calling
// it the moment the drag ends, so there is no residual movement and no
// coast-to-stop inertia.
//
// Returns the new scroll position and whether it actually moved. Hitting a
// bound is not an error; movement simply stops in that direction.
func autoScrollStep(c *Container, pointer Vec2, dt float32) (float32, bool) {
	cfg := c.autoScroll
	if dt <= 0 || cfg.EdgeThreshold <= 0 || cfg.MaxVelocity <= 0 {
		return c.scrollTop(), false
	}

	b := c.bounds()
	if pointer.X < b.X || pointer.X >= b.X+b.W {
		return c.scrollTop(), false
	}

	distTop := pointer.Y - b.Y
	distBottom := b.Y + b.H - pointer.Y

	var dir, proximity float32
	switch {
	case distTop < cfg.EdgeThreshold:
		dir = -1
		proximity = 1 - maxf(distTop, 0)/cfg.EdgeThreshold
	case distBottom < cfg.EdgeThreshold:
		dir = 1
		proximity = 1 - maxf(distBottom, 0)/cfg.EdgeThreshold
	default:
		return c.scrollTop(), false
	}

	curve := cfg.Curve
	if curve <= 0 {
		curve = 1
	}
	velocity := cfg.MaxVelocity * float32(math.Pow(float64(proximity), float64(curve)))

	old := c.scrollTop()
	next := clampf(old+dir*velocity*dt, 0, c.maxScroll())
	if next == old {
		return old, false
	}
	c.setScrollTop(next)
	return next, true
}
