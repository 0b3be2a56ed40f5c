// Package cli implements the backdrop command-line interface.
//
// The CLI hosts the visualization three ways: headless frame export
// (render), an animated terminal view (animate) and an HTTP server (serve).
// It is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - render: Write SVG, PNG, JSON, DOT or Graphviz renderings of one frame
//   - animate: Play the scrolling background in the terminal
//   - serve: Run one instance and serve its frames over HTTP
//   - config: Print the effective configuration as TOML
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so that every host shares the same one.
//
// # Example
//
//	import "github.com/matzehuels/fightmetrics/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger that writes to w at the given level. Every line
// carries a "HH:MM:SS.cc" timestamp (e.g. "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command step. It belongs to a single goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts the clock for a step; call done when it finishes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with the given key/value pairs and an
// "elapsed" field rounded to the millisecond, for example:
//
//	14:32:01.45 INFO Rendered frame formats=2 ticks=120 elapsed=12ms
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

// ctxKey keys values this package stores in a context.
type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx. The root command does this once in
// PersistentPreRunE so render, animate and serve all log through the logger
// configured by --verbose.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached with withLogger, or
// log.Default() when there is none (as in tests that call a run function
// directly).
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
