// Package tcellui provides a terminal backend for the dnd engine on top of
// tcell. Cell coordinates map 1:1 to engine units, so containers are
// registered with cell-sized rows (typically height 1).
package tcellui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/go-theft-auto/dnd"
)

// HitFunc locates the draggable item under a pointer position. ok is false
// when the position is over nothing draggable.
type HitFunc func(dnd.Vec2) (dnd.ContainerID, dnd.ItemID, bool)

// WheelFunc receives scroll wheel input at the pointer position. delta is in
// rows, positive scrolling down.
type WheelFunc func(pos dnd.Vec2, delta float32)

// Adapter translates tcell events into engine gestures and keyboard drag
// commands.
type Adapter struct {
	engine  *dnd.Engine
	tracker dnd.PointerTracker
	hit     HitFunc
	wheel   WheelFunc
}

// NewAdapter creates an adapter for the given engine. The screen must have
// mouse reporting enabled (screen.EnableMouse).
func NewAdapter(engine *dnd.Engine, hit HitFunc) *Adapter {
	return &Adapter{engine: engine, hit: hit}
}

// SetWheelHandler routes wheel input, typically to Engine.Scroll for the
// container under the pointer.
func (a *Adapter) SetWheelHandler(fn WheelFunc) { a.wheel = fn }

// HandleEvent feeds one tcell event into the engine. It returns true when
// the event was consumed by drag handling, so hosts can fall through to
// their own bindings otherwise.
func (a *Adapter) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		return a.handleMouse(ev)
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return false
}

// Cancel aborts any pointer gesture in flight, e.g. on suspend or screen
// teardown.
func (a *Adapter) Cancel() {
	if ev, ok := a.tracker.Cancel(); ok {
		a.engine.HandleGesture(ev)
	}
}

func (a *Adapter) handleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	pos := dnd.Vec2{X: float32(x), Y: float32(y)}
	buttons := ev.Buttons()

	if a.wheel != nil {
		if buttons&tcell.WheelUp != 0 {
			a.wheel(pos, -1)
			return true
		}
		if buttons&tcell.WheelDown != 0 {
			a.wheel(pos, 1)
			return true
		}
	}

	// Terminals report no motion deltas; the tracker edge-detects Button1
	// across consecutive events.
	down := buttons&tcell.Button1 != 0
	events := a.tracker.Update(pos, down, a.hit)
	for _, gev := range events {
		a.engine.HandleGesture(gev)
	}
	return len(events) > 0
}

func (a *Adapter) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape {
		if gev, ok := a.tracker.Cancel(); ok {
			a.engine.HandleGesture(gev)
			return true
		}
		if a.engine.Phase() == dnd.PhaseDragging {
			a.engine.HandleKey(dnd.DragKeyCancel)
			return true
		}
		return false
	}

	if a.engine.Phase() != dnd.PhaseDragging {
		return false
	}
	key, ok := tcellKeyToDragKey(ev)
	if !ok {
		return false
	}
	a.engine.HandleKey(key)
	return true
}

// tcellKeyToDragKey maps tcell keys to keyboard drag commands.
func tcellKeyToDragKey(ev *tcell.EventKey) (dnd.DragKey, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return dnd.DragKeyUp, true
	case tcell.KeyDown:
		return dnd.DragKeyDown, true
	case tcell.KeyLeft:
		return dnd.DragKeyLeft, true
	case tcell.KeyRight:
		return dnd.DragKeyRight, true
	case tcell.KeyEnter:
		return dnd.DragKeyDrop, true
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return dnd.DragKeyDrop, true
		}
	}
	return 0, false
}

// FillBox paints a rectangular cell region with a style, clipped to the
// screen. Rendering helpers live here so demos stay free of cell loops.
func FillBox(s tcell.Screen, r dnd.Rect, style tcell.Style) {
	w, h := s.Size()
	x0, y0 := int(r.X), int(r.Y)
	x1, y1 := int(r.X+r.W), int(r.Y+r.H)
	for y := y0; y < y1 && y < h; y++ {
		if y < 0 {
			continue
		}
		for x := x0; x < x1 && x < w; x++ {
			if x < 0 {
				continue
			}
			s.SetContent(x, y, ' ', nil, style)
		}
	}
}

// DrawText writes a string starting at a cell position, clipped to the
// screen width.
func DrawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	w, h := s.Size()
	if y < 0 || y >= h {
		return
	}
	for _, r := range text {
		if x >= w {
			return
		}
		if x >= 0 {
			s.SetContent(x, y, r, nil, style)
		}
		x++
	}
}
