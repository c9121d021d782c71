package dnd

// Window computes which slice of a list must actually be rendered. It wraps
// one HeightCache and owns no state beyond the overscan setting and a
// monotonically increasing version counter.
//
// The version counter is the sole change-notification mechanism: it bumps
// exactly once per cache mutation that could change visual output. Consumers
// that cached a range or transform must recompute when the version moved,
// and must not recompute otherwise.
type Window struct {
	cache    HeightCache
	overscan int
	version  uint64
}

// NewWindow wraps a height cache with windowing.
func NewWindow(cache HeightCache, overscan int) *Window {
	if overscan < 0 {
		overscan = 0
	}
	return &Window{cache: cache, overscan: overscan}
}

// Cache returns the wrapped height cache for read-only queries. Mutations
// must go through the Window so the version counter stays truthful.
func (w *Window) Cache() HeightCache { return w.cache }

// Version returns the current change stamp.
func (w *Window) Version() uint64 { return w.version }

// SetKeys replaces the list order. Returns whether anything changed.
func (w *Window) SetKeys(keys []ItemID) bool {
	if !w.cache.SetKeys(keys) {
		return false
	}
	w.version++
	return true
}

// SetHeight records a measured item height. Returns whether it changed.
func (w *Window) SetHeight(key ItemID, height float32) bool {
	if !w.cache.SetHeight(key, height) {
		return false
	}
	w.version++
	return true
}

// SetExcluded marks or clears the out-of-flow index.
func (w *Window) SetExcluded(index int) bool {
	if !w.cache.SetExcluded(index) {
		return false
	}
	w.version++
	return true
}

// Range returns the inclusive index range that should be rendered for the
// given scroll position, expanded by overscan on both sides. An empty list
// or degenerate viewport yields (0, -1); layout can legitimately be
// mid-flight, so this is not an error.
func (w *Window) Range(scrollTop, viewportHeight float32) (start, end int) {
	n := w.cache.Len()
	if n == 0 || viewportHeight <= 0 {
		return 0, -1
	}
	first := w.cache.FirstVisible(scrollTop)
	count := w.cache.VisibleCount(first, viewportHeight)
	if count == 0 {
		return 0, -1
	}
	start = first - w.overscan
	if start < 0 {
		start = 0
	}
	end = first + count - 1 + w.overscan
	if end > n-1 {
		end = n - 1
	}
	return start, end
}

// RenderOffset returns the single pixel offset at which the rendered window
// should be positioned, so individual rows need no per-row positioning.
func (w *Window) RenderOffset(start int) float32 {
	return w.cache.OffsetOf(start)
}
