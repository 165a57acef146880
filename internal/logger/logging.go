// Package logger builds the charmbracelet/log loggers each component writes through.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Output is where component loggers write. stdout belongs to the IPC server,
// so everything goes to stderr.
var Output io.Writer = os.Stderr

// New returns a component logger tagged with prefix. It picks up the global
// level at call time and adds timestamps only in debug mode.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(Output, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: log.GetLevel() == log.DebugLevel,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
