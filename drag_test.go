package dnd

import "testing"

func TestDragDelay_SwipeBeforeDelayIsNotADrag(t *testing.T) {
	e := New()
	list := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(list.config("A"),
		WithFixedRowHeight(50),
		WithDragDelay(0.2),
		WithMoveThreshold(6))
	e.SetKeys("A", makeKeys("a", 5))

	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 25}, Item: "a0", Container: "A"})
	if e.Phase() != PhasePending {
		t.Fatalf("Expected pending phase, got %s", e.Phase())
	}

	// Quick movement past the threshold before the delay elapses: a scroll
	// gesture, so the attempt is discarded entirely.
	e.Step(0.016)
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 100, Y: 45}})
	if e.Phase() != PhaseIdle {
		t.Errorf("Expected idle after a swipe, got %s", e.Phase())
	}
	if got := excludedIndex(t, e, "A"); got != noIndex {
		t.Errorf("Expected no exclusion for an aborted attempt, got %d", got)
	}
}

func TestDragDelay_SmallMovementSurvivesThenPromotes(t *testing.T) {
	e := New()
	list := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(list.config("A"),
		WithFixedRowHeight(50),
		WithDragDelay(0.2),
		WithMoveThreshold(6))
	e.SetKeys("A", makeKeys("a", 5))

	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 25}, Item: "a0", Container: "A"})

	// Jitter under the threshold keeps the attempt alive.
	e.Step(0.016)
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 102, Y: 27}})
	if e.Phase() != PhasePending {
		t.Fatalf("Expected attempt to survive jitter, got %s", e.Phase())
	}

	// Once the delay elapses, the next movement promotes to a live drag.
	e.Step(0.25)
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 103, Y: 30}})
	if e.Phase() != PhaseDragging {
		t.Errorf("Expected dragging after delay and movement, got %s", e.Phase())
	}
	if got := excludedIndex(t, e, "A"); got != 0 {
		t.Errorf("Expected source index 0 excluded, got %d", got)
	}
}

func TestDragDelay_TapReleasesCleanly(t *testing.T) {
	e := New()
	list := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(list.config("A"), WithFixedRowHeight(50), WithDragDelay(0.2))
	e.SetKeys("A", makeKeys("a", 5))

	dropped := false
	e.OnDrop(func(DropEvent) { dropped = true })

	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 25}, Item: "a0", Container: "A"})
	e.HandleGesture(GestureEvent{Type: GestureEnd, Pos: Vec2{X: 100, Y: 25}})

	if e.Phase() != PhaseIdle {
		t.Errorf("Expected idle after a tap, got %s", e.Phase())
	}
	if dropped {
		t.Error("Expected no drop event for a tap")
	}
}

func TestDrag_ZeroDelayArmsImmediately(t *testing.T) {
	e := New()
	list := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(list.config("A"), WithFixedRowHeight(50))
	e.SetKeys("A", makeKeys("a", 5))

	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 25}, Item: "a0", Container: "A"})
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 101, Y: 26}})
	if e.Phase() != PhaseDragging {
		t.Errorf("Expected immediate promotion with zero delay, got %s", e.Phase())
	}
}

func TestDrag_OnlyOneSessionAtATime(t *testing.T) {
	e := New()
	list := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(list.config("A"), WithFixedRowHeight(50))
	e.SetKeys("A", makeKeys("a", 5))

	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 25}, Item: "a0", Container: "A"})
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 100, Y: 40}})

	// A second start while a session is live is ignored.
	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 125}, Item: "a2", Container: "A"})
	if got := e.Snapshot().Item; got != "a0" {
		t.Errorf("Expected original session to survive, got item %s", got)
	}

	// Same for keyboard grabs.
	if e.GrabKeyboard("A", "a3") {
		t.Error("Expected keyboard grab to fail during a live session")
	}
}

func TestDrag_CancelRestoresOriginExactly(t *testing.T) {
	e := New()
	list := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(list.config("A"), WithFixedRowHeight(50))
	e.SetKeys("A", makeKeys("a", 5))
	c := e.reg.get(ContainerID("A"))

	before := c.window.Cache().TotalHeight(5)

	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 75}, Item: "a1", Container: "A"})
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 100, Y: 200}})
	if got := c.window.Cache().TotalHeight(5); got != before-50 {
		t.Fatalf("Expected total to shrink by one row mid-drag, got %f", got)
	}

	e.HandleGesture(GestureEvent{Type: GestureCancel})
	if got := c.window.Cache().TotalHeight(5); got != before {
		t.Errorf("Expected total restored to %f after cancel, got %f", before, got)
	}
	if e.Phase() != PhaseIdle {
		t.Errorf("Expected idle after cancel, got %s", e.Phase())
	}
}

func TestDrag_ExclusionStaysOnOriginAcrossContainers(t *testing.T) {
	e := New()
	listA := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	listB := &testList{bounds: Rect{X: 300, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(listA.config("A"), WithFixedRowHeight(50))
	e.RegisterContainer(listB.config("B"), WithFixedRowHeight(50))
	e.SetKeys("A", makeKeys("a", 5))
	e.SetKeys("B", makeKeys("b", 5))

	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 25}, Item: "a0", Container: "A"})
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 400, Y: 110}})

	// However far the drag wanders, only the origin list collapses.
	if got := excludedIndex(t, e, "A"); got != 0 {
		t.Errorf("Expected exclusion on origin, got %d", got)
	}
	if got := excludedIndex(t, e, "B"); got != noIndex {
		t.Errorf("Expected no exclusion on target, got %d", got)
	}
}

func TestDrag_VersionSignalsExclusionChanges(t *testing.T) {
	e := New()
	list := &testList{bounds: Rect{X: 0, Y: 0, W: 200, H: 400}}
	e.RegisterContainer(list.config("A"), WithFixedRowHeight(50))
	e.SetKeys("A", makeKeys("a", 5))

	v0 := e.Version("A")
	e.HandleGesture(GestureEvent{Type: GestureStart, Pos: Vec2{X: 100, Y: 25}, Item: "a0", Container: "A"})
	e.HandleGesture(GestureEvent{Type: GestureMove, Pos: Vec2{X: 100, Y: 40}})
	v1 := e.Version("A")
	if v1 == v0 {
		t.Error("Expected version bump when the dragged row left the flow")
	}
	e.HandleGesture(GestureEvent{Type: GestureCancel})
	if e.Version("A") == v1 {
		t.Error("Expected version bump when the row rejoined the flow")
	}
}
