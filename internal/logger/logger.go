package logger

import (
	"io"
	"log/slog"
	"os"
)

var ProgramLevel = new(slog.LevelVar)

// Setup initialiserer global logger med JSON-format. Debug senker
// nivået til slog.LevelDebug.
func Setup(debug bool) {
	SetupWithWriter(os.Stdout, debug)
}

// SetupWithWriter lar tester fange loggen i en buffer.
func SetupWithWriter(w io.Writer, debug bool) {
	ProgramLevel.Set(slog.LevelInfo)
	if debug {
		ProgramLevel.Set(slog.LevelDebug)
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     ProgramLevel,
		AddSource: false,
	}))
	slog.SetDefault(logger)
}
