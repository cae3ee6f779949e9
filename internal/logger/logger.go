// Package logger builds the console logger shared by the command and pipeline.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a levelled console logger writing to w (stderr when nil).
// Unknown levels fall back to info.
func New(level string, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: lvl == log.DebugLevel,
		Level:           lvl,
	})
}

// Discard returns a logger that drops everything, for tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
