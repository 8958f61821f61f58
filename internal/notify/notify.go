// Package notify is the user-facing notification side-channel.
// The service layer reports every failure through a Notifier exactly once
// before returning the error, so presentation layers never need to derive
// a message from the error value. Keeping the channel behind an interface
// keeps the data operations testable without a UI stub.
package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Notifier delivers fire-and-forget user-facing messages.
// Implementations must never fail the caller; delivery is best effort.
type Notifier interface {
	// Error reports a failure the user should see.
	Error(ctx context.Context, message string)
	// Info reports a non-failure event the user may see.
	Info(ctx context.Context, message string)
}

// LogNotifier emits notifications as structured log events. Each event
// carries a unique id so a delivery layer tailing the log stream can
// deduplicate on retransmission.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier constructs a LogNotifier writing through the given logger.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Error reports a failure the user should see.
func (n *LogNotifier) Error(ctx context.Context, message string) {
	n.log.ErrorContext(ctx, "notification",
		"event_id", uuid.NewString(),
		"severity", "error",
		"message", message,
	)
}

// Info reports a non-failure event the user may see.
func (n *LogNotifier) Info(ctx context.Context, message string) {
	n.log.InfoContext(ctx, "notification",
		"event_id", uuid.NewString(),
		"severity", "info",
		"message", message,
	)
}

// compile-time check: LogNotifier must satisfy Notifier.
var _ Notifier = (*LogNotifier)(nil)
