// Package logger configures the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

var logFile *os.File

// Init installs a tint handler as the default slog logger. When filename is
// non-empty, log lines are written to both stdout and the file (colors
// disabled so the file stays readable).
func Init(level, filename string) error {
	slogLevel := slog.LevelInfo
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	}

	var w io.Writer = os.Stdout
	noColor := false
	if filename != "" {
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		logFile = f
		w = io.MultiWriter(os.Stdout, f)
		noColor = true
	}

	slog.SetDefault(slog.New(tint.NewHandler(w, &tint.Options{
		Level:      slogLevel,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	})))
	return nil
}

func Close() {
	if logFile != nil {
		logFile.Close()
	}
}
