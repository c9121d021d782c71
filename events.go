package dnd

// GestureType classifies an inbound pointer gesture event.
type GestureType int

const (
	GestureStart  GestureType = iota // Pointer went down on a draggable item
	GestureMove                      // Pointer moved while down
	GestureEnd                       // Pointer released (drop)
	GestureCancel                    // Gesture aborted (focus loss, Escape)
)

// GestureEvent is a pre-classified pointer event. Raw event parsing (DOM,
// GLFW, tcell, ...) is the capture layer's job; the engine only sees these.
// Item and Container are meaningful on GestureStart and identify what was
// grabbed and where.
type GestureEvent struct {
	Type      GestureType
	Pos       Vec2
	Item      ItemID
	Container ContainerID
}

// DragKey is a keyboard drag command for non-pointer dragging.
type DragKey int

const (
	DragKeyUp     DragKey = iota // Move the cursor up one slot
	DragKeyDown                  // Move the cursor down one slot
	DragKeyLeft                  // Switch to the previous container
	DragKeyRight                 // Switch to the next container
	DragKeyDrop                  // Commit the drop at the cursor
	DragKeyCancel                // Abort and restore the origin list
)

// DropEvent reports a committed drop. The engine never mutates the backing
// collections itself; the consumer removes the item from the source, inserts
// it at the destination, and then calls Engine.ConfirmDrop.
//
// For a same-container drop DestinationIndex is already adjusted for the
// removal, so remove-then-insert applies it directly.
type DropEvent struct {
	Source           ContainerID
	SourceIndex      int
	Destination      ContainerID
	DestinationIndex int
}

// ScrollEvent reports a scroll-position change the engine performed or was
// told about, for external scroll-position displays.
type ScrollEvent struct {
	Container ContainerID
	ScrollTop float32
}

// PointerTracker turns raw pointer samples into gesture events by edge
// detection on the button state, the way capture layers typically see input
// (a button mask plus a position per sample). Backends are free to classify
// events themselves; this is shared glue for the common case.
type PointerTracker struct {
	down bool
	pos  Vec2
}

// Update reconciles the latest raw sample with the previous one and returns
// the gesture events it implies, in order. hit locates the draggable item
// under a press; it may return ok=false when the press landed on nothing
// draggable, in which case no gesture begins.
func (t *PointerTracker) Update(pos Vec2, down bool, hit func(Vec2) (ContainerID, ItemID, bool)) []GestureEvent {
	var events []GestureEvent

	switch {
	case down && !t.down:
		if hit != nil {
			if container, item, ok := hit(pos); ok {
				events = append(events, GestureEvent{
					Type:      GestureStart,
					Pos:       pos,
					Item:      item,
					Container: container,
				})
				t.down = true
			}
		}
	case down && t.down:
		if pos != t.pos {
			events = append(events, GestureEvent{Type: GestureMove, Pos: pos})
		}
	case !down && t.down:
		events = append(events, GestureEvent{Type: GestureEnd, Pos: pos})
		t.down = false
	}

	t.pos = pos
	return events
}

// Cancel aborts any gesture in flight, e.g. on focus loss or terminal
// suspend. Returns the cancel event and whether one was needed.
func (t *PointerTracker) Cancel() (GestureEvent, bool) {
	if !t.down {
		return GestureEvent{}, false
	}
	t.down = false
	return GestureEvent{Type: GestureCancel, Pos: t.pos}, true
}

// Dragging reports whether a press is currently being tracked.
func (t *PointerTracker) Dragging() bool { return t.down }
