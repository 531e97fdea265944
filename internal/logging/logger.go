// Package logging defines the small logger abstraction used across the
// application, plus an slog-backed implementation.
package logging

import "context"

// Logger is the minimal structured-logging surface the application needs.
// Implementations must be safe for concurrent use.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}
