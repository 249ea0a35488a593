package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Notifier is the toast surface: short-lived, user-facing messages emitted by
// store operations. Implementations must be safe for concurrent use.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// SlogNotifier routes notifications to structured logs.
type SlogNotifier struct {
	Logger *slog.Logger
}

func (n *SlogNotifier) logger() *slog.Logger {
	if n.Logger != nil {
		return n.Logger
	}

	return slog.Default()
}

func (n *SlogNotifier) Success(message string) {
	n.logger().Info("notification", slog.String("kind", "success"), slog.String("message", message))
}

func (n *SlogNotifier) Error(message string) {
	n.logger().Warn("notification", slog.String("kind", "error"), slog.String("message", message))
}

// WriterNotifier prints toast lines to a terminal.
type WriterNotifier struct {
	W io.Writer

	mu sync.Mutex
}

func (n *WriterNotifier) Success(message string) {
	n.write("✓", message)
}

func (n *WriterNotifier) Error(message string) {
	n.write("✗", message)
}

func (n *WriterNotifier) write(mark, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	fmt.Fprintf(n.W, "%s %s\n", mark, message)
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Success(string) {}
func (Nop) Error(string)   {}
