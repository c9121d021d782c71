// Example demonstrates two reorderable lists in a GLFW window: drag rows
// within a list, across to the other list, or grab a row with the keyboard
// (G) and move it with the arrows.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/opengl/  # run this example
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/dnd"
	"github.com/go-theft-auto/dnd/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "dnd example"

	rowHeight   = 36
	rowGap      = 2
	listPadding = 10
)

// list is one reorderable column: its items plus the mutable view state the
// engine reads through the container accessors.
type list struct {
	id     dnd.ContainerID
	items  []dnd.ItemID
	bounds dnd.Rect
	scroll float32
}

func (l *list) config() dnd.ContainerConfig {
	return dnd.ContainerConfig{
		ID:           l.id,
		Bounds:       func() dnd.Rect { return l.bounds },
		ScrollTop:    func() float32 { return l.scroll },
		SetScrollTop: func(v float32) { l.scroll = v },
	}
}

// itemAt returns the item under a screen position, if any.
func (l *list) itemAt(pos dnd.Vec2) (dnd.ItemID, bool) {
	if !l.bounds.Contains(pos) {
		return "", false
	}
	idx := int((pos.Y - l.bounds.Y + l.scroll) / rowHeight)
	if idx < 0 || idx >= len(l.items) {
		return "", false
	}
	return l.items[idx], true
}

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("dnd renderer: %w", err)
	}
	defer renderer.Delete()

	// Application state: two columns of rows.
	lists := []*list{
		{id: "left", items: numbered("left", 40), bounds: dnd.Rect{X: 40, Y: 40, W: 320, H: 520}},
		{id: "right", items: numbered("right", 12), bounds: dnd.Rect{X: 440, Y: 40, W: 320, H: 520}},
	}
	byID := map[dnd.ContainerID]*list{}
	for _, l := range lists {
		byID[l.id] = l
	}

	engine := dnd.New()
	containers := map[dnd.ContainerID]*dnd.Container{}
	for _, l := range lists {
		containers[l.id] = engine.RegisterContainer(l.config(),
			dnd.WithFixedRowHeight(rowHeight), dnd.WithOverscan(3))
		engine.SetKeys(l.id, l.items)
	}

	engine.OnDrop(func(ev dnd.DropEvent) {
		src, dst := byID[ev.Source], byID[ev.Destination]
		item := src.items[ev.SourceIndex]
		src.items = append(src.items[:ev.SourceIndex], src.items[ev.SourceIndex+1:]...)
		dst.items = append(dst.items[:ev.DestinationIndex],
			append([]dnd.ItemID{item}, dst.items[ev.DestinationIndex:]...)...)
		engine.SetKeys(src.id, src.items)
		engine.SetKeys(dst.id, dst.items)
		engine.ConfirmDrop()
	})

	hit := func(pos dnd.Vec2) (dnd.ContainerID, dnd.ItemID, bool) {
		for _, l := range lists {
			if item, ok := l.itemAt(pos); ok {
				return l.id, item, true
			}
		}
		return "", "", false
	}

	adapter := opengl.NewGLFWInputAdapter(window, engine, hit)
	adapter.SetWheelHandler(func(pos dnd.Vec2, delta float32) {
		for _, l := range lists {
			if l.bounds.Contains(pos) {
				engine.Scroll(l.id, delta*3*rowHeight)
				return
			}
		}
	})

	// G grabs the row under the cursor for keyboard dragging.
	window.SetKeyCallback(wrapKeyCallback(window, func(key glfw.Key) bool {
		if key != glfw.KeyG || engine.Phase() != dnd.PhaseIdle {
			return false
		}
		x, y := window.GetCursorPos()
		if container, item, ok := hit(dnd.Vec2{X: float32(x), Y: float32(y)}); ok {
			engine.GrabKeyboard(container, item)
			return true
		}
		return false
	}))

	last := glfw.GetTime()
	for !window.ShouldClose() {
		glfw.PollEvents()
		adapter.Update()

		now := glfw.GetTime()
		engine.Step(float32(now - last))
		last = now

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		renderer.Resize(w, h)
		renderer.Begin()
		snap := engine.Snapshot()
		for _, l := range lists {
			drawList(renderer, engine, l, containers[l.id], snap)
		}
		drawPreview(renderer, byID, snap)
		if err := renderer.Flush(); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}

// wrapKeyCallback chains an extra handler in front of the adapter's key
// callback, which SetKeyCallback would otherwise replace.
func wrapKeyCallback(window *glfw.Window, extra func(glfw.Key) bool) glfw.KeyCallback {
	prev := window.SetKeyCallback(nil)
	return func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Press && extra(key) {
			return
		}
		if prev != nil {
			prev(w, key, scancode, action, mods)
		}
	}
}

const (
	colorPanel       = 0x20202aff
	colorRow         = 0x32323eff
	colorPlaceholder = 0x4a90d9ff
	colorPreview     = 0x4a90d9aa
	colorPreviewEdge = 0x8fc3f2ff
)

func drawList(r *opengl.Renderer, engine *dnd.Engine, l *list, cont *dnd.Container, snap dnd.Snapshot) {
	r.ClearClip()
	r.FillRect(l.bounds, colorPanel)
	r.SetClip(l.bounds)

	rw := engine.RenderWindow(l.id)
	y := l.bounds.Y + rw.Offset - l.scroll
	for i := rw.Start; i <= rw.End; i++ {
		if snap.Phase == dnd.PhaseDragging && snap.Source == l.id && i == snap.SourceIndex {
			// The dragged row is out of flow; it occupies no space here.
			continue
		}
		r.FillRect(dnd.Rect{X: l.bounds.X + listPadding, Y: y, W: l.bounds.W - 2*listPadding, H: rowHeight - rowGap}, colorRow)
		y += rowHeight
	}

	// Placeholder line at the resolved slot. The cache offset already
	// accounts for the collapsed dragged row.
	if snap.Phase == dnd.PhaseDragging && snap.Active == l.id && snap.Placeholder >= 0 {
		slotY := l.bounds.Y + cont.Window().Cache().OffsetOf(snap.Placeholder) - l.scroll
		r.FillRect(dnd.Rect{X: l.bounds.X + listPadding, Y: slotY - 2, W: l.bounds.W - 2*listPadding, H: 4}, colorPlaceholder)
	}
}

func drawPreview(r *opengl.Renderer, byID map[dnd.ContainerID]*list, snap dnd.Snapshot) {
	if snap.Phase != dnd.PhaseDragging {
		return
	}
	src, ok := byID[snap.Source]
	if !ok {
		return
	}
	r.ClearClip()
	preview := dnd.Rect{
		X: snap.PreviewOrigin.X,
		Y: snap.PreviewOrigin.Y,
		W: src.bounds.W - 2*listPadding,
		H: rowHeight - rowGap,
	}
	r.FillRect(preview, colorPreview)
	r.StrokeRect(preview, 2, colorPreviewEdge)
}

func numbered(prefix string, n int) []dnd.ItemID {
	items := make([]dnd.ItemID, n)
	for i := range items {
		items[i] = dnd.ItemID(fmt.Sprintf("%s-%02d", prefix, i))
	}
	return items
}
