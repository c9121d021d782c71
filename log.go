package dnd

import (
	"log/slog"
	"os"
)

// dndLogLevel controls the log level for engine debug logging.
// Default is LevelInfo, which suppresses Debug messages.
// SetVerbose(true) sets it to LevelDebug.
var dndLogLevel = new(slog.LevelVar)

// SetVerbose enables or disables verbose/debug logging for the engine.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		dndLogLevel.Set(slog.LevelDebug)
	} else {
		dndLogLevel.Set(slog.LevelInfo)
	}
}

// dndLogger is the logger for engine debugging and developer-facing warnings
// (double registration, unknown unregistration, events for unknown ids).
var dndLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: dndLogLevel}))
