// Package logging configures the global slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Init configures the default slog logger. Verbose enables debug level;
// otherwise only warnings and errors are emitted. A nil output defaults to
// os.Stderr.
func Init(verbose bool, output io.Writer) {
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(output, opts)))
}
