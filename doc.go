/*
Package dnd provides a frame-driven drag-and-drop engine for virtualized
(windowed) lists, designed as idiomatic Go with a dedicated Engine type.

# Overview

The engine is renderer-agnostic and immediate-mode: it never touches a widget
tree or a window system. Backends register scroll containers with geometry
accessors, feed pre-classified gesture events between frames, and call Step
once per frame. In return the engine answers "which rows do I render, where,
and what does the drag session look like right now".

Item heights may be uniform (pure arithmetic) or measured per item (prefix
sums with estimates for unmeasured rows). Measurements are keyed by stable
item identity, so they survive reordering. During a drag the grabbed row is
excluded from its origin list's flow without mutating the caches, and every
placeholder resolution is recomputed from absolute positions, so nothing
drifts over long autoscrolls.

# Quick Start

	engine := dnd.New()

	engine.RegisterContainer(dnd.ContainerConfig{
	    ID:           "list",
	    Bounds:       func() dnd.Rect { return listBounds },
	    ScrollTop:    func() float32 { return scrollTop },
	    SetScrollTop: func(v float32) { scrollTop = v },
	}, dnd.WithFixedRowHeight(36), dnd.WithOverscan(3))
	engine.SetKeys("list", items)

	engine.OnDrop(func(ev dnd.DropEvent) {
	    // Remove from ev.Source at ev.SourceIndex, insert into
	    // ev.Destination at ev.DestinationIndex, then:
	    engine.SetKeys(ev.Source, sourceItems)
	    engine.SetKeys(ev.Destination, destinationItems)
	    engine.ConfirmDrop()
	})

	// Frame loop
	for running {
	    for _, ev := range pollGestures() {
	        engine.HandleGesture(ev)
	    }
	    engine.Step(dt)

	    rw := engine.RenderWindow("list")
	    for i := rw.Start; i <= rw.End; i++ {
	        // draw row i at rw.Offset plus the preceding row heights
	    }
	    drawDragPreview(engine.Snapshot())
	}

# Containers

Containers are registered with accessor functions, not values: bounds and
scroll position are read at the moment they are needed, so scrolling can
originate anywhere without going stale. Options tune behavior per container:
WithGroup restricts drop targets, WithDragDelay and WithMoveThreshold shape
touch gestures, WithAxisLock pins an axis, ConstrainToContainer keeps a drag
inside its origin, WithAutoScroll tunes edge scrolling.

# Dragging

A pointer drag runs Pending (delay, swipe detection), Dragging (placeholder
resolution, autoscroll), DropPending (consumer re-integrates the item) and
back to Idle via ConfirmDrop. Keyboard drags enter through GrabKeyboard and
navigate with HandleKey; Up/Down move the cursor, Left/Right cross to the
adjacent container with a matching group.

Backends that see raw button state can use PointerTracker to edge-detect it
into gesture events; see backend/opengl and backend/tcellui for a GLFW and a
tcell host respectively.
*/
package dnd
