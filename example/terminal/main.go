// Example demonstrates two reorderable lists in the terminal: drag rows with
// the mouse, grab one with 'g' and move it with the arrows, scroll with the
// wheel. Tunables load from dnd-demo.toml next to the binary and reload live
// when the file is written.
//
//	go run ./example/terminal/
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-theft-auto/dnd"
	"github.com/go-theft-auto/dnd/backend/tcellui"
)

const configPath = "dnd-demo.toml"

// column is one reorderable list in the terminal grid.
type column struct {
	id     dnd.ContainerID
	title  string
	items  []dnd.ItemID
	bounds dnd.Rect
	scroll float32
}

func (c *column) config() dnd.ContainerConfig {
	return dnd.ContainerConfig{
		ID:           c.id,
		Bounds:       func() dnd.Rect { return c.bounds },
		ScrollTop:    func() float32 { return c.scroll },
		SetScrollTop: func(v float32) { c.scroll = v },
	}
}

func (c *column) itemAt(pos dnd.Vec2) (dnd.ItemID, bool) {
	if !c.bounds.Contains(pos) {
		return "", false
	}
	idx := int(pos.Y - c.bounds.Y + c.scroll)
	if idx < 0 || idx >= len(c.items) {
		return "", false
	}
	return c.items[idx], true
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	config, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	columns := []*column{
		{id: "backlog", title: "Backlog"},
		{id: "doing", title: "Doing"},
	}
	byID := map[dnd.ContainerID]*column{}
	for _, c := range columns {
		byID[c.id] = c
	}
	columns[0].items = numbered("task", config.LeftItems)
	columns[1].items = numbered("wip", config.RightItems)
	layout(screen, columns)

	engine := dnd.New()
	containers := map[dnd.ContainerID]*dnd.Container{}
	register := func(cfg DemoConfig) {
		for _, c := range columns {
			if _, ok := containers[c.id]; ok {
				engine.UnregisterContainer(c.id)
			}
		}
		for _, c := range columns {
			containers[c.id] = engine.RegisterContainer(c.config(),
				dnd.WithFixedRowHeight(1),
				dnd.WithOverscan(cfg.Overscan),
				dnd.WithDragDelay(float32(cfg.DragDelay)),
				dnd.WithMoveThreshold(float32(cfg.MoveThreshold)),
				dnd.WithAutoScroll(dnd.AutoScrollConfig{
					EdgeThreshold: float32(cfg.EdgeThreshold),
					MaxVelocity:   float32(cfg.MaxVelocity),
					Curve:         float32(cfg.Curve),
				}))
			engine.SetKeys(c.id, c.items)
		}
	}
	register(config)

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
		for _, c := range columns {
			if item, ok := c.itemAt(pos); ok {
				return c.id, item, true
			}
		}
		return "", "", false
	}

	adapter := tcellui.NewAdapter(engine, hit)
	adapter.SetWheelHandler(func(pos dnd.Vec2, delta float32) {
		for _, c := range columns {
			if c.bounds.Contains(pos) {
				engine.Scroll(c.id, delta)
				return
			}
		}
	})

	// Config reloads are best-effort; the demo runs fine without a file.
	updates, stopWatch, err := WatchConfig(configPath)
	if err == nil {
		defer stopWatch()
	}

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)

	cursor := dnd.Vec2{}
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch tev := ev.(type) {
			case *tcell.EventResize:
				layout(screen, columns)
				screen.Sync()
				continue
			case *tcell.EventMouse:
				x, y := tev.Position()
				cursor = dnd.Vec2{X: float32(x), Y: float32(y)}
			case *tcell.EventKey:
				if tev.Key() == tcell.KeyCtrlC || (tev.Key() == tcell.KeyRune && tev.Rune() == 'q' && engine.Phase() == dnd.PhaseIdle) {
					close(quit)
					return nil
				}
				if tev.Key() == tcell.KeyRune && tev.Rune() == 'g' && engine.Phase() == dnd.PhaseIdle {
					if container, item, ok := hit(cursor); ok {
						engine.GrabKeyboard(container, item)
					}
					continue
				}
			}
			adapter.HandleEvent(ev)

		case cfg := <-updates:
			register(cfg)

		case now := <-ticker.C:
			engine.Step(float32(now.Sub(last).Seconds()))
			last = now
			draw(screen, engine, columns, containers)
		}
	}
}

// layout spreads the columns across the screen with a one-row header.
func layout(screen tcell.Screen, columns []*column) {
	w, h := screen.Size()
	colW := float32(w)/float32(len(columns)) - 2
	for i, c := range columns {
		c.bounds = dnd.Rect{
			X: float32(i)*(colW+2) + 1,
			Y: 2,
			W: colW,
			H: float32(h - 3),
		}
	}
}

var (
	styleBase        = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)
	stylePanel       = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	styleRow         = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	stylePlaceholder = tcell.StyleDefault.Background(tcell.ColorGreen)
	stylePreview     = tcell.StyleDefault.Background(tcell.ColorTeal).Foreground(tcell.ColorBlack).Bold(true)
)

func draw(screen tcell.Screen, engine *dnd.Engine, columns []*column, containers map[dnd.ContainerID]*dnd.Container) {
	screen.Fill(' ', styleBase)
	snap := engine.Snapshot()

	for _, c := range columns {
		tcellui.DrawText(screen, int(c.bounds.X), 1, c.title, styleBase.Bold(true))
		tcellui.FillBox(screen, c.bounds, stylePanel)

		rw := engine.RenderWindow(c.id)
		y := c.bounds.Y + rw.Offset - c.scroll
		for i := rw.Start; i <= rw.End; i++ {
			if snap.Phase == dnd.PhaseDragging && snap.Source == c.id && i == snap.SourceIndex {
				continue
			}
			if y >= c.bounds.Y && y < c.bounds.Y+c.bounds.H {
				row := dnd.Rect{X: c.bounds.X, Y: y, W: c.bounds.W, H: 1}
				tcellui.FillBox(screen, row, styleRow)
				tcellui.DrawText(screen, int(c.bounds.X)+1, int(y), string(c.items[i]), styleRow)
			}
			y++
		}

		if snap.Phase == dnd.PhaseDragging && snap.Active == c.id && snap.Placeholder >= 0 {
			offset := containers[c.id].Window().Cache().OffsetOf(snap.Placeholder)
			slotY := c.bounds.Y + offset - c.scroll
			if slotY >= c.bounds.Y && slotY < c.bounds.Y+c.bounds.H {
				tcellui.FillBox(screen, dnd.Rect{X: c.bounds.X, Y: slotY, W: c.bounds.W, H: 1}, stylePlaceholder)
			}
		}
	}

	// Drag preview rides with the pointer, above everything.
	if snap.Phase == dnd.PhaseDragging {
		if src, ok := find(columns, snap.Source); ok {
			preview := dnd.Rect{X: snap.PreviewOrigin.X, Y: snap.PreviewOrigin.Y, W: src.bounds.W, H: 1}
			tcellui.FillBox(screen, preview, stylePreview)
			tcellui.DrawText(screen, int(preview.X)+1, int(preview.Y), string(snap.Item), stylePreview)
		}
	}

	screen.Show()
}

func find(columns []*column, id dnd.ContainerID) (*column, bool) {
	for _, c := range columns {
		if c.id == id {
			return c, true
		}
	}
	return nil, false
}

func numbered(prefix string, n int) []dnd.ItemID {
	items := make([]dnd.ItemID, n)
	for i := range items {
		items[i] = dnd.ItemID(fmt.Sprintf("%s-%02d", prefix, i))
	}
	return items
}
