// Package signal wires SIGINT and SIGTERM into graceful shutdown of a
// running build.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler starts a goroutine that waits for SIGINT or SIGTERM.
// On the first signal it runs onInterrupt (when non-nil), then cancels the
// context. The goroutine unregisters its channel and exits once the context
// is done, so a handler never outlives the command it guards.
//
// onInterrupt runs on the signal goroutine. It is where the caller asks a
// running build to stop cooperatively, before the context is torn down.
func SetupSignalHandler(ctx context.Context, cancel context.CancelFunc, onInterrupt func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			if onInterrupt != nil {
				onInterrupt()
			}
			cancel()
		case <-ctx.Done():
		}
	}()
}
