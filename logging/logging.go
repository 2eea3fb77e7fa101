// Package logging provides the structured logger shared across the
// catalog, capture and CLI layers. It is grounded on the teacher's
// fileformat.ProcessRecording, which reaches for a package-level
// utils.GetLogger() and logs failures via
// logger.ErrorContext(ctx, "...", slog.Any("error", err)) rather than
// bubbling every I/O hiccup up as a fatal error.
package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/mdobak/go-xerrors"
)

var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Logger is the narrow slice of *slog.Logger the rest of the module
// depends on, so tests can swap in a buffer-backed logger without
// pulling in slog's handler machinery.
type Logger interface {
	ErrorContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
}

// Default returns the package-wide logger. Call SetDefault in cmd/shazoom
// to point it at a differently configured handler (e.g. JSON output).
func Default() Logger { return defaultLogger }

// SetDefault replaces the package-wide logger.
func SetDefault(l *slog.Logger) { defaultLogger = l }

// Error wraps err with a stack trace via go-xerrors (the same library the
// teacher imports for exactly this in fileformat.ProcessRecording) and
// logs it against msg at ERROR level.
func Error(ctx context.Context, l Logger, msg string, err error) {
	wrapped := xerrors.New(err)
	l.ErrorContext(ctx, msg, slog.Any("error", wrapped))
}
