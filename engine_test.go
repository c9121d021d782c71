package dnd

import "testing"

// testList backs a container with mutable geometry and scroll state, the way
// a real host view would.
type testList struct {
	bounds Rect
	scroll float32
}

func (l *testList) config(id ContainerID) ContainerConfig {
	return ContainerConfig{
		ID:           id,
		Bounds:       func() Rect { return l.bounds },
		ScrollTop:    func() float32 { return l.scroll },
		SetScrollTop: func(v float32) { l.scroll = v },
	}
}

func TestEngine_CrossContainerDrop(t *testing.T) {
	e := New()
	listA := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	listB := &testList{bounds: Rect{X: 300, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(listA.config("A"), WithFixedRowHeight(50))
	e.RegisterContainer(listB.config("B"), WithFixedRowHeight(50))
	e.SetKeys("A", makeKeys("a", 5))
	e.SetKeys("B", makeKeys("b", 5))

	var drops []DropEvent
	e.OnDrop(func(ev DropEvent) { drops = append(drops, ev) })

	// Grab a0 and carry it over B between b1 and b2.
	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 25}, Item: "a0", Container: "A"})
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 120, Y: 40}})
	if e.Phase() != PhaseDragging {
		t.Fatalf("Expected dragging phase, got %s", e.Phase())
	}
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 400, Y: 110}})

	snap := e.Snapshot()
	if snap.Active != "B" || snap.Placeholder != 2 {
		t.Errorf("Expected placeholder B/2, got %s/%d", snap.Active, snap.Placeholder)
	}

	e.HandleGesture(GestureEvent{Type: GestureEnd, Pos: Vec2{X: 400, Y: 110}})
	if len(drops) != 1 {
		t.Fatalf("Expected exactly one drop event, got %d", len(drops))
	}
	want := DropEvent{Source: "A", SourceIndex: 0, Destination: "B", DestinationIndex: 2}
	if drops[0] != want {
		t.Errorf("Expected drop %+v, got %+v", want, drops[0])
	}
	if e.Phase() != PhaseDropPending {
		t.Errorf("Expected dropPending phase, got %s", e.Phase())
	}

	// Consumer re-integrates: remove from A, insert into B, confirm.
	e.SetKeys("A", []ItemID{"a1", "a2", "a3", "a4"})
	e.SetKeys("B", []ItemID{"b0", "b1", "a0", "b2", "b3", "b4"})
	e.ConfirmDrop()

	if e.Phase() != PhaseIdle {
		t.Errorf("Expected idle phase after confirm, got %s", e.Phase())
	}
	if got := excludedIndex(t, e, "A"); got != noIndex {
		t.Errorf("Expected exclusion cleared on source, got %d", got)
	}
}

// excludedIndex reads a container's exclusion state.
func excludedIndex(t *testing.T, e *Engine, id ContainerID) int {
	t.Helper()
	c := e.reg.get(id)
	if c == nil {
		t.Fatalf("unknown container %q", id)
	}
	return c.window.Cache().Excluded()
}

func TestEngine_SameListDropAdjustsForRemoval(t *testing.T) {
	e := New()
	list := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(list.config("A"), WithFixedRowHeight(50))
	e.SetKeys("A", makeKeys("a", 5))

	var drop *DropEvent
	e.OnDrop(func(ev DropEvent) { drop = &ev })

	// Grab a1 and drop it at the very end of its own list.
	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 75}, Item: "a1", Container: "A"})
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 100, Y: 230}})
	e.HandleGesture(GestureEvent{Type: GestureEnd, Pos: Vec2{X: 100, Y: 230}})

	if drop == nil {
		t.Fatal("Expected a drop event")
	}
	// Placeholder 5 (append at end), reported as 4 once a1's removal is
	// accounted for: remove-then-insert applies it directly.
	if drop.SourceIndex != 1 || drop.DestinationIndex != 4 {
		t.Errorf("Expected source 1 -> destination 4, got %d -> %d", drop.SourceIndex, drop.DestinationIndex)
	}
}

func TestEngine_DropWithoutTargetCancels(t *testing.T) {
	e := New()
	listA := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(listA.config("A"), WithFixedRowHeight(50))
	e.SetKeys("A", makeKeys("a", 5))

	dropped := false
	e.OnDrop(func(DropEvent) { dropped = true })

	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 25}, Item: "a0", Container: "A"})
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 100, Y: 40}})
	// Release far outside any container.
	e.HandleGesture(GestureEvent{Type: GestureEnd, Pos: Vec2{X: 900, Y: 900}})

	if dropped {
		t.Error("Expected no drop event for a release outside all containers")
	}
	if e.Phase() != PhaseIdle {
		t.Errorf("Expected idle phase after cancelled drop, got %s", e.Phase())
	}
	if got := excludedIndex(t, e, "A"); got != noIndex {
		t.Errorf("Expected exclusion cleared after cancel, got %d", got)
	}
}

func TestEngine_GroupsRestrictTargets(t *testing.T) {
	e := New()
	listA := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	listB := &testList{bounds: Rect{X: 300, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(listA.config("A"), WithFixedRowHeight(50), WithGroup("files"))
	e.RegisterContainer(listB.config("B"), WithFixedRowHeight(50), WithGroup("tags"))
	e.SetKeys("A", makeKeys("a", 5))
	e.SetKeys("B", makeKeys("b", 5))

	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 25}, Item: "a0", Container: "A"})
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 400, Y: 110}})

	snap := e.Snapshot()
	if snap.Active != "" || snap.Placeholder != noIndex {
		t.Errorf("Expected no target over a different group, got %s/%d", snap.Active, snap.Placeholder)
	}
}

func TestEngine_DisabledItemNeverStarts(t *testing.T) {
	e := New()
	list := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(list.config("A"),
		WithFixedRowHeight(50),
		WithDisabledItems(func(id ItemID) bool { return id == "a1" }))
	e.SetKeys("A", makeKeys("a", 5))

	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 75}, Item: "a1", Container: "A"})
	if e.Phase() != PhaseIdle {
		t.Errorf("Expected disabled item to stay idle, got %s", e.Phase())
	}
}

func TestEngine_ScrollClampsAndNotifies(t *testing.T) {
	e := New()
	list := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(list.config("A"), WithFixedRowHeight(50))
	e.SetKeys("A", makeKeys("a", 100)) // content 5000, max scroll 4600

	var events []ScrollEvent
	e.OnScroll(func(ev ScrollEvent) { events = append(events, ev) })

	e.Scroll("A", 300)
	if list.scroll != 300 {
		t.Errorf("Expected scroll 300, got %f", list.scroll)
	}
	e.Scroll("A", 1e9)
	if list.scroll != 4600 {
		t.Errorf("Expected scroll clamped to 4600, got %f", list.scroll)
	}
	e.Scroll("A", -1e9)
	if list.scroll != 0 {
		t.Errorf("Expected scroll clamped to 0, got %f", list.scroll)
	}
	if len(events) != 3 {
		t.Errorf("Expected 3 scroll events, got %d", len(events))
	}

	// A delta that changes nothing emits nothing.
	e.Scroll("A", -10)
	if len(events) != 3 {
		t.Errorf("Expected no event for a no-op scroll, got %d", len(events))
	}
}

func TestEngine_EnsureVisibleScrollsMinimally(t *testing.T) {
	e := New()
	list := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(list.config("A"), WithFixedRowHeight(50))
	e.SetKeys("A", makeKeys("a", 100))

	// Row 50 spans 2500..2550; bringing its bottom edge into a 400-unit
	// viewport needs scroll 2150.
	e.EnsureVisible("A", 50, 0)
	if list.scroll != 2150 {
		t.Errorf("Expected scroll 2150, got %f", list.scroll)
	}

	// Already visible: no movement.
	e.EnsureVisible("A", 48, 0)
	if list.scroll != 2150 {
		t.Errorf("Expected no movement for visible row, got %f", list.scroll)
	}

	// Scrolling up aligns the row's top edge.
	e.EnsureVisible("A", 10, 0)
	if list.scroll != 500 {
		t.Errorf("Expected scroll 500, got %f", list.scroll)
	}
}

func TestEngine_RenderWindowWithContentOffset(t *testing.T) {
	e := New()
	list := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(list.config("A"),
		WithFixedRowHeight(50),
		WithContentOffset(100),
		WithOverscan(0))
	e.SetKeys("A", makeKeys("a", 100))

	// Header fully visible: the list starts at row 0.
	rw := e.RenderWindow("A")
	if rw.Start != 0 {
		t.Errorf("Expected start 0 under the header, got %d", rw.Start)
	}

	// Scrolled past the header: 50 units into the list.
	list.scroll = 150
	rw = e.RenderWindow("A")
	if rw.Start != 1 || rw.Offset != 50 {
		t.Errorf("Expected start 1 at offset 50, got %d at %f", rw.Start, rw.Offset)
	}
}

func TestEngine_UnregisterRepairsSession(t *testing.T) {
	e := New()
	listA := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	listB := &testList{bounds: Rect{X: 300, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(listA.config("A"), WithFixedRowHeight(50))
	e.RegisterContainer(listB.config("B"), WithFixedRowHeight(50))
	e.SetKeys("A", makeKeys("a", 5))
	e.SetKeys("B", makeKeys("b", 5))

	// Losing the drop target keeps the drag alive with no placeholder.
	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 25}, Item: "a0", Container: "A"})
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 400, Y: 110}})
	e.UnregisterContainer("B")
	snap := e.Snapshot()
	if e.Phase() != PhaseDragging || snap.Active != "" || snap.Placeholder != noIndex {
		t.Errorf("Expected live drag with no target, got %s %s/%d", e.Phase(), snap.Active, snap.Placeholder)
	}
	e.HandleGesture(GestureEvent{Type: GestureCancel})

	// Losing the origin cancels the whole drag.
	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 25}, Item: "a0", Container: "A"})
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 100, Y: 60}})
	e.UnregisterContainer("A")
	if e.Phase() != PhaseIdle {
		t.Errorf("Expected idle after origin unregistered, got %s", e.Phase())
	}
}

func TestEngine_SourceMutationDuringDrag(t *testing.T) {
	e := New()
	list := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(list.config("A"), WithFixedRowHeight(50))
	e.SetKeys("A", makeKeys("a", 5))

	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 125}, Item: "a2", Container: "A"})
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 100, Y: 140}})

	// Another item is removed mid-drag: the exclusion follows a2 to its new
	// index.
	e.SetKeys("A", []ItemID{"a1", "a2", "a3", "a4"})
	if got := excludedIndex(t, e, "A"); got != 1 {
		t.Errorf("Expected exclusion to follow item to index 1, got %d", got)
	}

	// The dragged item itself is removed: the drag cannot continue.
	e.SetKeys("A", []ItemID{"a1", "a3", "a4"})
	if e.Phase() != PhaseIdle {
		t.Errorf("Expected cancelled drag after item removal, got %s", e.Phase())
	}
}

func TestEngine_KeyboardDragAcrossContainers(t *testing.T) {
	e := New()
	listA := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	listB := &testList{bounds: Rect{X: 300, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(listA.config("A"), WithFixedRowHeight(50))
	e.RegisterContainer(listB.config("B"), WithFixedRowHeight(50))
	e.SetKeys("A", makeKeys("a", 8))
	e.SetKeys("B", makeKeys("b", 8))

	var drop *DropEvent
	e.OnDrop(func(ev DropEvent) { drop = &ev })

	if !e.GrabKeyboard("A", "a1") {
		t.Fatal("Expected keyboard grab to succeed")
	}
	if e.Phase() != PhaseDragging {
		t.Fatalf("Expected dragging phase, got %s", e.Phase())
	}

	// Two steps down, then across to the neighboring list.
	e.HandleKey(DragKeyDown)
	e.HandleKey(DragKeyDown)
	snap := e.Snapshot()
	if snap.Active != "A" || snap.Placeholder != 3 {
		t.Errorf("Expected cursor A/3, got %s/%d", snap.Active, snap.Placeholder)
	}

	e.HandleKey(DragKeyRight)
	snap = e.Snapshot()
	if snap.Active != "B" {
		t.Errorf("Expected cursor to move to B, got %s", snap.Active)
	}

	e.HandleKey(DragKeyDrop)
	if drop == nil {
		t.Fatal("Expected a drop event")
	}
	if drop.Source != "A" || drop.SourceIndex != 1 || drop.Destination != "B" {
		t.Errorf("Unexpected drop event %+v", *drop)
	}
}

func TestEngine_KeyboardCursorClamps(t *testing.T) {
	e := New()
	list := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(list.config("A"), WithFixedRowHeight(50))
	e.SetKeys("A", makeKeys("a", 3))

	e.GrabKeyboard("A", "a0")
	e.HandleKey(DragKeyUp)
	e.HandleKey(DragKeyUp)
	if got := e.Snapshot().Placeholder; got != 0 {
		t.Errorf("Expected cursor clamped at 0, got %d", got)
	}
	for i := 0; i < 10; i++ {
		e.HandleKey(DragKeyDown)
	}
	if got := e.Snapshot().Placeholder; got != 3 {
		t.Errorf("Expected cursor clamped at item count 3, got %d", got)
	}

	// No matching neighbor: Left/Right are no-ops, not errors.
	e.HandleKey(DragKeyLeft)
	if got := e.Snapshot().Active; got != "A" {
		t.Errorf("Expected cursor to stay in A, got %s", got)
	}

	e.HandleKey(DragKeyCancel)
	if e.Phase() != PhaseIdle {
		t.Errorf("Expected idle after keyboard cancel, got %s", e.Phase())
	}
}

func TestEngine_AxisLockPinsPointer(t *testing.T) {
	e := New()
	list := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 600}}
	e.RegisterContainer(list.config("A"), WithFixedRowHeight(50), WithAxisLock(AxisY))
	e.SetKeys("A", makeKeys("a", 10))

	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 25}, Item: "a0", Container: "A"})
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 180, Y: 220}})

	snap := e.Snapshot()
	if snap.Pointer.X != 100 {
		t.Errorf("Expected X pinned at 100 under Y-axis lock, got %f", snap.Pointer.X)
	}
	if snap.Pointer.Y != 220 {
		t.Errorf("Expected Y to track the pointer, got %f", snap.Pointer.Y)
	}
}

func TestEngine_ConstrainKeepsPlaceholderInOrigin(t *testing.T) {
	e := New()
	list := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(list.config("A"), WithFixedRowHeight(50), ConstrainToContainer())
	e.SetKeys("A", makeKeys("a", 5))

	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 25}, Item: "a0", Container: "A"})
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 700, Y: 900}})

	snap := e.Snapshot()
	if snap.Active != "A" {
		t.Errorf("Expected constrained drag to stay targeted at A, got %q", snap.Active)
	}
	if snap.Placeholder == noIndex {
		t.Error("Expected a resolved placeholder under constraint")
	}
}

func TestEngine_PreviewOriginTracksGrabOffset(t *testing.T) {
	e := New()
	list := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(list.config("A"), WithFixedRowHeight(50))
	e.SetKeys("A", makeKeys("a", 5))

	// Grab a1 (row spans 50..100) at (120, 80): the grab offset is (120, 30).
	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 120, Y: 80}, Item: "a1", Container: "A"})
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 140, Y: 200}})

	snap := e.Snapshot()
	want := Vec2{X: 20, Y: 170}
	if snap.PreviewOrigin != want {
		t.Errorf("Expected preview origin %+v, got %+v", want, snap.PreviewOrigin)
	}
}
