package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/shandysiswandi/dinebite/internal/pkg/stacktrace"
)

// handle runs h and turns a panic into an error so the message is nacked.
func handle(ctx context.Context, driver string, h Handler, msg Message) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			slog.ErrorContext(ctx, "panic in message handler",
				"driver", driver,
				"topic", msg.Topic(),
				"panic", rvr,
				"stack", stacktrace.InternalPaths(debug.Stack()),
			)
			err = fmt.Errorf("messaging: %s handler panic: %v", driver, rvr)
		}
	}()

	return h(ctx, msg)
}
