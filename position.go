package dnd

// resolver converts "where is the pointer, in which container" into a
// concrete placeholder index.
//
// Container identification may rely on geometry hit-testing, but the index
// itself is always derived from the live scrollTop and pointer position in
// pure arithmetic. Nothing here integrates deltas against a previous index:
// every resolution is a function of current absolute inputs only, which is
// what keeps the placeholder from drifting over hundreds of autoscroll
// frames or direction reversals.
type resolver struct {
	reg *containerRegistry
	seq uint64
}

// hitTest returns the container under the pointer that is eligible for the
// dragged item's group. When overlapping containers both contain the point,
// the most recently entered wins.
func (r *resolver) hitTest(p Vec2, group string) *Container {
	var best *Container
	r.reg.each(func(c *Container) {
		inside := c.groupMatches(group) && c.bounds().Contains(p)
		if inside && !c.underPtr {
			r.seq++
			c.enteredSeq = r.seq
		}
		c.underPtr = inside
		if inside && (best == nil || c.enteredSeq > best.enteredSeq) {
			best = c
		}
	})
	return best
}

// resolve computes the active container and placeholder index for a pointer
// position. A nil container result means "no drop target" - a valid state
// recoverable on the next sample, not an error.
//
// When the origin container is constrained, out-of-bounds pointers are
// clamped to its nearest in-bounds point first, so a constrained drag always
// has a placeholder.
func (r *resolver) resolve(p Vec2, source *Container) (*Container, int) {
	hit := r.hitTest(p, source.group)
	if hit == nil && source.constrain {
		p = source.bounds().Clamp(p)
		hit = source
	}
	if hit == nil {
		return nil, noIndex
	}
	cache := hit.window.Cache()
	idx := cache.IndexAt(hit.contentY(p))
	if n := cache.Len(); idx > n {
		idx = n
	}
	if idx < 0 {
		idx = 0
	}
	return hit, idx
}

// remapCursor maps a keyboard cursor from one container to another while
// preserving relative vertical position, so moving across lists feels
// continuous instead of resetting to the top.
func (r *resolver) remapCursor(from, to *Container, cursor int) int {
	fc := from.window.Cache()
	tc := to.window.Cache()

	fromTotal := fc.TotalHeight(fc.Len())
	toTotal := tc.TotalHeight(tc.Len())
	if fromTotal <= 0 || toTotal <= 0 {
		return 0
	}

	prop := clampf(fc.OffsetOf(cursor)/fromTotal, 0, 1)
	idx := tc.IndexAt(prop * toTotal)
	if n := tc.Len(); idx > n {
		idx = n
	}
	return idx
}
