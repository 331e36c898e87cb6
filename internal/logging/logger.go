// Package logging defines the structured-logging contract used across the
// client. The default implementation wraps log/slog.
package logging

import "context"

// Logger is a leveled, context-aware logger. The variadic args are
// key-value pairs:
//
//	log.Warn(ctx, "status poll failed", "err", err)
type Logger interface {
	// Debug logs diagnostic detail, emitted only in verbose mode.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs normal operational events.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions, such as a swallowed
	// poll error.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying the given key-value pairs on
	// every record.
	With(args ...any) Logger
}
