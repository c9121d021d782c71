package dnd

// Engine owns every registered container and at most one drag gesture at a
// time. It is deliberately frame-driven, not timer-driven: backends feed it
// gesture events as they arrive and call Step once per frame with the frame
// delta. All time-based behavior (drag delay, autoscroll velocity) derives
// from the accumulated clock, so the engine is deterministic under test and
// indifferent to the host's frame pacing.
//
// The Engine is not safe for concurrent use; drive it from the frame loop
// like any other per-frame state.
type Engine struct {
	reg *containerRegistry
	res resolver

	pending *pendingAttempt
	sess    *session

	clock float32 // seconds, accumulated by Step

	onDrop   func(DropEvent)
	onScroll func(ScrollEvent)
}

// New returns an empty engine.
func New() *Engine {
	reg := newContainerRegistry()
	return &Engine{
		reg: reg,
		res: resolver{reg: reg},
	}
}

// OnDrop sets the callback invoked when a drag commits. The callback runs
// synchronously inside HandleGesture or HandleKey; the consumer mutates its
// collections, pushes new keys with SetKeys, then calls ConfirmDrop.
func (e *Engine) OnDrop(fn func(DropEvent)) { e.onDrop = fn }

// OnScroll sets the callback invoked whenever the engine changes a
// container's scroll position (autoscroll, EnsureVisible, Scroll).
func (e *Engine) OnScroll(fn func(ScrollEvent)) { e.onScroll = fn }

// RegisterContainer adds a droppable container and returns it. Registering
// an ID twice replaces the earlier registration with a warning.
func (e *Engine) RegisterContainer(cfg ContainerConfig, opts ...Option) *Container {
	c := newContainer(cfg, opts)
	e.reg.register(c)
	return c
}

// UnregisterContainer removes a container. If a drag session references it,
// the session is repaired first: losing the drop target just clears the
// placeholder, losing the origin cancels the whole drag. Unregistering an
// unknown ID warns and does nothing.
func (e *Engine) UnregisterContainer(id ContainerID) {
	if s := e.sess; s != nil {
		switch id {
		case s.source:
			e.cancelDrag()
		case s.active:
			s.active = ""
			s.placeholder = noIndex
		}
	}
	if p := e.pending; p != nil && p.container == id {
		e.pending = nil
	}
	e.reg.unregister(id)
}

// SetKeys replaces a container's item key list. Heights already measured for
// surviving keys are kept; keys that left drop their measurements.
//
// During a drag the session is reconciled against the new list: the dragged
// item may have moved index (exclusion follows it) or vanished (the drag is
// cancelled). Once a drop has been committed the source exclusion is simply
// lifted, since the consumer is re-integrating the item right now.
func (e *Engine) SetKeys(id ContainerID, keys []ItemID) {
	c := e.reg.get(id)
	if c == nil {
		dndLogger.Warn("SetKeys for unknown container", "id", id)
		return
	}
	c.window.SetKeys(keys)

	s := e.sess
	if s == nil || s.source != id {
		return
	}
	switch s.phase {
	case PhaseDragging:
		idx := c.window.Cache().IndexOf(s.item)
		if idx < 0 {
			dndLogger.Debug("dragged item removed from source, cancelling", "item", s.item)
			e.cancelDrag()
			return
		}
		if idx != s.sourceIndex {
			s.sourceIndex = idx
		}
		c.window.SetExcluded(idx)
	case PhaseDropPending:
		c.window.SetExcluded(noIndex)
	}
}

// SetItemHeight records a measured height for one item, replacing its
// estimate. Sub-quarter-unit jitter is ignored so re-measurement loops do
// not invalidate render windows every frame.
func (e *Engine) SetItemHeight(id ContainerID, item ItemID, height float32) {
	c := e.reg.get(id)
	if c == nil {
		dndLogger.Warn("SetItemHeight for unknown container", "id", id)
		return
	}
	c.window.SetHeight(item, height)
}

// Version returns the container's window version. It changes exactly when a
// height, key-list, or exclusion change altered layout, so renderers can use
// it as a cheap recompute signal.
func (e *Engine) Version(id ContainerID) uint64 {
	c := e.reg.get(id)
	if c == nil {
		return 0
	}
	return c.window.Version()
}

// RenderWindow is everything a renderer needs to draw one container's
// visible slice for one frame.
type RenderWindow struct {
	// Start and End are the inclusive index range to render. End < Start
	// means nothing is visible.
	Start, End int

	// Offset is the Y position of the Start row relative to the top of the
	// scrolled content, so rendering is positioned in one add instead of a
	// per-row sum.
	Offset float32

	Version uint64
}

// RenderWindow computes the visible index range for a container at its
// current scroll position, padded by the container's overscan.
func (e *Engine) RenderWindow(id ContainerID) RenderWindow {
	c := e.reg.get(id)
	if c == nil {
		return RenderWindow{Start: 0, End: -1}
	}
	listTop := c.scrollTop() - c.contentOffset
	start, end := c.window.Range(listTop, c.viewportHeight())
	rw := RenderWindow{Start: start, End: end, Version: c.window.Version()}
	if end >= start {
		rw.Offset = c.window.Cache().OffsetOf(start)
	}
	return rw
}

// Scroll applies a wheel or programmatic scroll delta to a container,
// clamped to the valid range. Mid-drag, the placeholder is re-resolved
// against the new position immediately.
func (e *Engine) Scroll(id ContainerID, delta float32) {
	c := e.reg.get(id)
	if c == nil {
		return
	}
	old := c.scrollTop()
	next := clampf(old+delta, 0, c.maxScroll())
	if next == old {
		return
	}
	c.setScrollTop(next)
	e.emitScroll(id, next)
	e.resolveNow()
}

// EnsureVisible scrolls a container the minimal distance needed to bring an
// item fully into view, padded on the approached side.
func (e *Engine) EnsureVisible(id ContainerID, index int, padding float32) {
	c := e.reg.get(id)
	if c == nil {
		return
	}
	cache := c.window.Cache()
	n := cache.Len()
	if n == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > n-1 {
		index = n - 1
	}

	rowTop := c.contentOffset + cache.OffsetOf(index)
	rowBottom := rowTop + cache.HeightAt(index)
	vh := c.viewportHeight()
	top := c.scrollTop()

	next := top
	if rowTop < top+padding {
		next = rowTop - padding
	} else if rowBottom > top+vh-padding {
		next = rowBottom - vh + padding
	}
	next = clampf(next, 0, c.maxScroll())
	if next == top {
		return
	}
	c.setScrollTop(next)
	e.emitScroll(id, next)
}

// Step advances the engine by one frame. dt is the frame delta in seconds.
//
// Order matters: the pending delay is checked first, then autoscroll moves
// the active container, then the placeholder is re-resolved so it reflects
// the post-scroll positions within the same frame.
func (e *Engine) Step(dt float32) {
	if dt > 0 {
		e.clock += dt
	}

	if p := e.pending; p != nil && !p.armed && e.clock >= p.armedAt {
		p.armed = true
	}

	s := e.sess
	if s == nil || s.phase != PhaseDragging {
		return
	}
	if !s.keyboard && s.active != "" {
		if c := e.reg.get(s.active); c != nil {
			if top, moved := autoScrollStep(c, e.effectivePointer(), dt); moved {
				e.emitScroll(c.id, top)
			}
		}
	}
	e.resolveNow()
}

// Phase returns the state machine's current phase.
func (e *Engine) Phase() Phase {
	switch {
	case e.sess != nil:
		return e.sess.phase
	case e.pending != nil:
		return PhasePending
	default:
		return PhaseIdle
	}
}

// Snapshot returns the outward-facing drag state for rendering. Axis lock is
// already applied to Pointer and PreviewOrigin.
func (e *Engine) Snapshot() Snapshot {
	if s := e.sess; s != nil {
		snap := s.snapshot()
		if !s.keyboard {
			p := e.effectivePointer()
			snap.Pointer = p
			snap.PreviewOrigin = p.Sub(s.grabOffset)
		}
		return snap
	}
	if p := e.pending; p != nil {
		return Snapshot{
			Phase:       PhasePending,
			Item:        p.item,
			Source:      p.container,
			SourceIndex: noIndex,
			Pointer:     p.pointer,
			Placeholder: noIndex,
		}
	}
	return Snapshot{Phase: PhaseIdle, Placeholder: noIndex, SourceIndex: noIndex}
}

func (e *Engine) emitScroll(id ContainerID, top float32) {
	if e.onScroll != nil {
		e.onScroll(ScrollEvent{Container: id, ScrollTop: top})
	}
}
