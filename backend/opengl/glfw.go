package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/dnd"
)

// HitFunc locates the draggable item under a pointer position. ok is false
// when the position is over nothing draggable.
type HitFunc func(dnd.Vec2) (dnd.ContainerID, dnd.ItemID, bool)

// WheelFunc receives scroll wheel input at the current pointer position.
// delta is in scroll steps, positive scrolling down.
type WheelFunc func(pos dnd.Vec2, delta float32)

// GLFWInputAdapter translates GLFW input into engine gesture events and
// keyboard drag commands. It installs its own window callbacks; call Update
// once per frame after glfw.PollEvents.
type GLFWInputAdapter struct {
	window  *glfw.Window
	engine  *dnd.Engine
	tracker dnd.PointerTracker
	hit     HitFunc
	wheel   WheelFunc
	down    bool
}

// NewGLFWInputAdapter creates the adapter and installs window callbacks.
func NewGLFWInputAdapter(window *glfw.Window, engine *dnd.Engine, hit HitFunc) *GLFWInputAdapter {
	a := &GLFWInputAdapter{
		window: window,
		engine: engine,
		hit:    hit,
	}

	window.SetKeyCallback(a.keyCallback)
	window.SetMouseButtonCallback(a.mouseButtonCallback)
	window.SetScrollCallback(a.scrollCallback)
	window.SetFocusCallback(a.focusCallback)

	return a
}

// SetWheelHandler routes scroll wheel input, typically to Engine.Scroll for
// the container under the pointer.
func (a *GLFWInputAdapter) SetWheelHandler(fn WheelFunc) { a.wheel = fn }

// Update samples the cursor and feeds any implied gesture events into the
// engine. Button edges arrive through the callback; position is polled so a
// held-still button and a moving cursor both resolve against fresh state.
func (a *GLFWInputAdapter) Update() {
	x, y := a.window.GetCursorPos()
	pos := dnd.Vec2{X: float32(x), Y: float32(y)}
	for _, ev := range a.tracker.Update(pos, a.down, a.hit) {
		a.engine.HandleGesture(ev)
	}
}

func (a *GLFWInputAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		a.down = true
	case glfw.Release:
		a.down = false
	}
}

func (a *GLFWInputAdapter) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	if a.wheel == nil {
		return
	}
	x, y := a.window.GetCursorPos()
	a.wheel(dnd.Vec2{X: float32(x), Y: float32(y)}, float32(-yoff))
}

func (a *GLFWInputAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}

	if key == glfw.KeyEscape {
		// Escape aborts whichever kind of drag is in flight.
		if ev, ok := a.tracker.Cancel(); ok {
			a.down = false
			a.engine.HandleGesture(ev)
			return
		}
		a.engine.HandleKey(dnd.DragKeyCancel)
		return
	}

	if dragKey, ok := glfwKeyToDragKey(key); ok {
		a.engine.HandleKey(dragKey)
	}
}

func (a *GLFWInputAdapter) focusCallback(w *glfw.Window, focused bool) {
	if focused {
		return
	}
	// Focus loss mid-gesture must not leave a stuck drag.
	if ev, ok := a.tracker.Cancel(); ok {
		a.down = false
		a.engine.HandleGesture(ev)
	}
}

// glfwKeyToDragKey maps GLFW keys to keyboard drag commands.
func glfwKeyToDragKey(key glfw.Key) (dnd.DragKey, bool) {
	switch key {
	case glfw.KeyUp:
		return dnd.DragKeyUp, true
	case glfw.KeyDown:
		return dnd.DragKeyDown, true
	case glfw.KeyLeft:
		return dnd.DragKeyLeft, true
	case glfw.KeyRight:
		return dnd.DragKeyRight, true
	case glfw.KeyEnter, glfw.KeySpace:
		return dnd.DragKeyDrop, true
	default:
		return 0, false
	}
}
