// Package cli implements the famlayout command-line interface.
//
// This package provides commands for laying out family files, rendering them
// as SVG or Graphviz, stepping through a layout interactively and serving the
// layout engine over HTTP. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a layout and write it as JSON
//   - render: Generate SVG, DOT or Graphviz SVG drawings
//   - step: Watch the engine place people one at a time
//   - serve: Run the HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which includes
// every placement and repair the engine makes. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at the given level, with short
// "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one stage of a command.
type progress struct {
	logger *log.Logger
	start  time.Time
	now    func() time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now(), now: time.Now}
}

// done logs msg with the elapsed time and any extra key/value pairs, e.g.
//
//	laid out family root=homer people=4 elapsed=12ms
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := p.now().Sub(p.start).Round(time.Millisecond)
	p.logger.Info(msg, append(keyvals, "elapsed", elapsed)...)
}

type ctxKey struct{}

// withLogger attaches l to ctx for the command's run functions.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the attached logger, or log.Default() when none is set.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
