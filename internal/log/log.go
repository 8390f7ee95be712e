package log

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

// NewHandler returns a slog handler with the given prefix.
func NewHandler(name string) slog.Handler {
	level := log.InfoLevel
	if os.Getenv("PUNCHCARD_DEBUG") != "" {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          name,
		Level:           level,
	})
}

// New returns a named logger for one component.
func New(name string) *slog.Logger {
	return slog.New(NewHandler(name))
}
