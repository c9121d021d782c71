package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
)

// DemoConfig holds the tunables for the terminal demo, loaded from TOML so
// autoscroll and gesture behavior can be tweaked while the demo runs.
type DemoConfig struct {
	// Rows per list.
	LeftItems  int `toml:"left_items"`
	RightItems int `toml:"right_items"`

	// Extra rows rendered beyond the visible range.
	Overscan int `toml:"overscan"`

	// Seconds the pointer must stay down before a drag arms.
	DragDelay float64 `toml:"drag_delay"`

	// Cells of movement that abort a not-yet-armed attempt.
	MoveThreshold float64 `toml:"move_threshold"`

	// Autoscroll tuning: edge zone in cells, speed in cells/second, easing
	// exponent.
	EdgeThreshold float64 `toml:"edge_threshold"`
	MaxVelocity   float64 `toml:"max_velocity"`
	Curve         float64 `toml:"curve"`
}

// DefaultConfig returns demo defaults tuned for cell-sized rows.
func DefaultConfig() DemoConfig {
	return DemoConfig{
		LeftItems:     60,
		RightItems:    15,
		Overscan:      2,
		DragDelay:     0,
		MoveThreshold: 1,
		EdgeThreshold: 3,
		MaxVelocity:   30,
		Curve:         1.5,
	}
}

// LoadConfig loads configuration from a TOML file. A missing file is not an
// error; defaults apply.
func LoadConfig(path string) (DemoConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// WatchConfig reloads the config whenever the file is written and delivers
// it on the returned channel. Watching is best-effort: if the file or the
// watcher is unavailable, the channel simply never fires.
func WatchConfig(path string) (<-chan DemoConfig, func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("failed to watch config file: %w", err)
	}

	updates := make(chan DemoConfig, 1)
	go func() {
		defer close(updates)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == 0 {
					continue
				}
				// Debounce: wait a bit for atomic writes to complete.
				time.Sleep(100 * time.Millisecond)
				config, err := LoadConfig(path)
				if err != nil {
					continue
				}
				select {
				case updates <- config:
				default:
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return updates, func() { watcher.Close() }, nil
}
