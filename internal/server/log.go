package server

import (
	"os"

	"github.com/decred/slog"
)

// loggers groups the per-subsystem loggers so the wiring in StartApp
// stays in one place. SRVR covers HTTP and the websocket edge, GAME the
// room simulation, STOR the result archive.
type loggers struct {
	srvr slog.Logger
	game slog.Logger
	stor slog.Logger
}

func newLoggers(debug string) loggers {
	bknd := slog.NewBackend(os.Stdout)
	level := parseDebugLevel(debug)
	sub := func(tag string) slog.Logger {
		l := bknd.Logger(tag)
		l.SetLevel(level)
		return l
	}
	return loggers{
		srvr: sub("SRVR"),
		game: sub("GAME"),
		stor: sub("STOR"),
	}
}

// parseDebugLevel maps a level name to a slog level, defaulting to info
// for empty or unknown names.
func parseDebugLevel(s string) slog.Level {
	if s == "" {
		return slog.LevelInfo
	}
	if level, ok := slog.LevelFromString(s); ok {
		return level
	}
	return slog.LevelInfo
}
