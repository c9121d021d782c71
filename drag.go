package dnd

// This file is the drag state machine:
//
//	Idle -> Pending -> Dragging -> DropPending -> Idle
//
// with Cancelled reachable from Pending or Dragging, returning to Idle in
// the same call. Exactly one pending attempt or session exists engine-wide.

// HandleGesture feeds one pre-classified pointer event into the state
// machine. Backends call this between frames; resolution always reads the
// live scroll position, so event-vs-frame ordering cannot go stale.
func (e *Engine) HandleGesture(ev GestureEvent) {
	switch ev.Type {
	case GestureStart:
		e.gestureStart(ev)
	case GestureMove:
		e.gestureMove(ev.Pos)
	case GestureEnd:
		e.gestureEnd(ev.Pos)
	case GestureCancel:
		e.gestureCancel()
	}
}

func (e *Engine) gestureStart(ev GestureEvent) {
	if e.sess != nil || e.pending != nil {
		return // a gesture is already in flight
	}
	c := e.reg.get(ev.Container)
	if c == nil {
		dndLogger.Warn("gesture start for unknown container", "id", ev.Container)
		return
	}
	if c.itemDisabled(ev.Item) || c.window.Cache().IndexOf(ev.Item) < 0 {
		return
	}
	e.pending = &pendingAttempt{
		item:      ev.Item,
		container: ev.Container,
		startPos:  ev.Pos,
		pointer:   ev.Pos,
		armedAt:   e.clock + c.dragDelay,
		armed:     c.dragDelay <= 0,
	}
}

func (e *Engine) gestureMove(pos Vec2) {
	if p := e.pending; p != nil {
		p.pointer = pos
		if !p.armed && e.clock >= p.armedAt {
			p.armed = true
		}
		if !p.armed {
			// Movement past the threshold before the delay elapses means
			// this is a swipe or scroll, not a drag.
			if c := e.reg.get(p.container); c != nil && pos.Sub(p.startPos).Len() > c.moveThreshold {
				dndLogger.Debug("pending drag aborted by movement", "item", p.item)
				e.pending = nil
			}
			return
		}
		e.promote(p, pos)
		return
	}

	if s := e.sess; s != nil && s.phase == PhaseDragging && !s.keyboard {
		s.pointer = pos
		e.resolveNow()
	}
}

func (e *Engine) gestureEnd(pos Vec2) {
	if e.pending != nil {
		e.pending = nil // released before confirming: a tap
		return
	}
	s := e.sess
	if s == nil || s.phase != PhaseDragging {
		return
	}
	if !s.keyboard {
		s.pointer = pos
		e.resolveNow()
	}
	e.drop()
}

func (e *Engine) gestureCancel() {
	if e.pending != nil {
		e.pending = nil
		return
	}
	if s := e.sess; s != nil && s.phase == PhaseDragging {
		e.cancelDrag()
	}
}

// promote confirms a pending attempt as a live drag session.
func (e *Engine) promote(p *pendingAttempt, pos Vec2) {
	e.pending = nil
	c := e.reg.get(p.container)
	if c == nil {
		return
	}
	cache := c.window.Cache()
	idx := cache.IndexOf(p.item)
	if idx < 0 {
		return // item disappeared while pending
	}

	// Grab offset is measured before exclusion: it positions the preview
	// relative to where the element actually sat at grab time.
	b := c.bounds()
	itemTopLeft := Vec2{
		X: b.X,
		Y: b.Y + c.contentOffset + cache.OffsetOf(idx) - c.scrollTop(),
	}

	e.sess = &session{
		item:        p.item,
		source:      p.container,
		sourceIndex: idx,
		pointer:     pos,
		startPos:    p.startPos,
		grabOffset:  p.startPos.Sub(itemTopLeft),
		placeholder: noIndex,
		phase:       PhaseDragging,
	}

	// The dragged item leaves the flow of its origin list - and only its
	// origin list, however many containers the drag crosses later.
	c.window.SetExcluded(idx)
	e.resolveNow()
}

// resolveNow recomputes the active container and placeholder from the
// current pointer position and current scroll state. It is called after
// every pointer move and after every scroll mutation in the same frame,
// never from a value captured earlier.
func (e *Engine) resolveNow() {
	s := e.sess
	if s == nil || s.phase != PhaseDragging || s.keyboard {
		return
	}
	src := e.reg.get(s.source)
	if src == nil {
		e.cancelDrag()
		return
	}
	hit, idx := e.res.resolve(e.effectivePointer(), src)
	if hit == nil {
		s.active = ""
		s.placeholder = noIndex
		return
	}
	s.active = hit.id
	s.placeholder = idx
}

// effectivePointer applies the origin container's axis lock to the raw
// pointer position.
func (e *Engine) effectivePointer() Vec2 {
	s := e.sess
	p := s.pointer
	if src := e.reg.get(s.source); src != nil {
		switch src.axis {
		case AxisX:
			p.Y = s.startPos.Y
		case AxisY:
			p.X = s.startPos.X
		}
	}
	return p
}

// drop commits the drag at the current placeholder. With no valid target
// the drag is treated as cancelled and the origin list is restored.
func (e *Engine) drop() {
	s := e.sess
	if s.active == "" || s.placeholder == noIndex {
		e.cancelDrag()
		return
	}
	s.phase = PhaseDropPending

	ev := DropEvent{
		Source:           s.source,
		SourceIndex:      s.sourceIndex,
		Destination:      s.active,
		DestinationIndex: s.placeholder,
	}
	if ev.Destination == ev.Source && ev.DestinationIndex > ev.SourceIndex {
		// Same-list moves report the insert position after removal.
		ev.DestinationIndex--
	}
	dndLogger.Debug("drop committed",
		"item", s.item,
		"source", ev.Source, "sourceIndex", ev.SourceIndex,
		"destination", ev.Destination, "destinationIndex", ev.DestinationIndex)

	if e.onDrop != nil {
		e.onDrop(ev)
	}
}

// cancelDrag reverts everything a live session touched: placeholder,
// exclusion in the origin list, and the session itself. The dragged item
// ends up logically unchanged from before the gesture began. Autoscroll
// stops with the session; it only ever runs in PhaseDragging.
func (e *Engine) cancelDrag() {
	s := e.sess
	if s == nil {
		return
	}
	s.phase = PhaseCancelled
	s.active = ""
	s.placeholder = noIndex
	if src := e.reg.get(s.source); src != nil {
		src.window.SetExcluded(noIndex)
	}
	e.sess = nil
}

// ConfirmDrop completes a drop: the consumer calls it after mutating its
// backing collections (and pushing new keys via SetKeys). Only now is the
// origin list's exclusion lifted, so there is no one-frame height jump
// between the drop and the reintegration.
func (e *Engine) ConfirmDrop() {
	s := e.sess
	if s == nil || s.phase != PhaseDropPending {
		return
	}
	if src := e.reg.get(s.source); src != nil {
		src.window.SetExcluded(noIndex)
	}
	e.sess = nil
}

// GrabKeyboard begins a keyboard-driven drag of an item. The logical cursor
// starts at the item's own index; see HandleKey for navigation. Returns
// false when a gesture is already in flight or the item cannot be dragged.
func (e *Engine) GrabKeyboard(containerID ContainerID, item ItemID) bool {
	if e.sess != nil || e.pending != nil {
		return false
	}
	c := e.reg.get(containerID)
	if c == nil {
		dndLogger.Warn("keyboard grab for unknown container", "id", containerID)
		return false
	}
	if c.itemDisabled(item) {
		return false
	}
	cache := c.window.Cache()
	idx := cache.IndexOf(item)
	if idx < 0 {
		return false
	}

	b := c.bounds()
	rowTop := b.Y + c.contentOffset + cache.OffsetOf(idx) - c.scrollTop()
	rowH := cache.HeightAt(idx)
	pointer := Vec2{X: b.X + b.W/2, Y: rowTop + rowH/2}

	e.sess = &session{
		item:        item,
		source:      containerID,
		sourceIndex: idx,
		active:      containerID,
		placeholder: idx,
		cursor:      idx,
		pointer:     pointer,
		startPos:    pointer,
		grabOffset:  Vec2{X: b.W / 2, Y: rowH / 2},
		phase:       PhaseDragging,
		keyboard:    true,
	}
	c.window.SetExcluded(idx)
	return true
}

// HandleKey advances a keyboard drag. Up/Down move the cursor one slot,
// clamped to [0, itemCount]. Left/Right switch to the adjacent registered
// container with a matching group (no-op at the ends of the sequence),
// preserving relative vertical position so the move feels continuous.
func (e *Engine) HandleKey(key DragKey) {
	s := e.sess
	if s == nil || s.phase != PhaseDragging || !s.keyboard {
		return
	}

	switch key {
	case DragKeyUp, DragKeyDown:
		c := e.reg.get(s.active)
		if c == nil {
			return
		}
		delta := 1
		if key == DragKeyUp {
			delta = -1
		}
		n := c.window.Cache().Len()
		s.cursor += delta
		if s.cursor < 0 {
			s.cursor = 0
		}
		if s.cursor > n {
			s.cursor = n
		}
		s.placeholder = s.cursor
		e.ensureCursorVisible(c, s)

	case DragKeyLeft, DragKeyRight:
		cur := e.reg.get(s.active)
		src := e.reg.get(s.source)
		if cur == nil || src == nil {
			return
		}
		dir := 1
		if key == DragKeyLeft {
			dir = -1
		}
		next := e.reg.neighbor(s.active, dir, src.group)
		if next == nil {
			return
		}
		s.cursor = e.res.remapCursor(cur, next, s.cursor)
		s.active = next.id
		s.placeholder = s.cursor
		e.ensureCursorVisible(next, s)

	case DragKeyDrop:
		e.drop()

	case DragKeyCancel:
		e.cancelDrag()
	}
}

// ensureCursorVisible keeps the keyboard cursor's row in view.
func (e *Engine) ensureCursorVisible(c *Container, s *session) {
	cache := c.window.Cache()
	n := cache.Len()
	if n == 0 {
		return
	}
	idx := s.cursor
	if idx > n-1 {
		idx = n - 1
	}
	e.EnsureVisible(c.id, idx, cache.HeightAt(idx))
}
