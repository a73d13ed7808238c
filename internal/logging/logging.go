// Package logging builds the slog logger used across noe, rendered by
// charmbracelet/log.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn or error. Empty means info.
	Level string
	// Output defaults to stderr.
	Output io.Writer
	Prefix string
}

// New returns a slog.Logger backed by a charm logger. Debug level also
// reports the caller.
func New(opts Options) (*slog.Logger, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		var err error
		level, err = log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	h := log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		ReportCaller:    level <= log.DebugLevel,
	})
	return slog.New(h), nil
}

// Install makes l the process default for slog and the standard log package.
func Install(l *slog.Logger) {
	slog.SetDefault(l)
}

// Discard is a logger that drops everything, for tests.
func Discard() *slog.Logger {
	return slog.New(log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel}))
}
