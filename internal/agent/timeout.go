package agent

import (
	"context"
	"time"
)

// DefaultCallTimeout bounds a single agent call.
const DefaultCallTimeout = 90 * time.Second

// withCallTimeout derives the context for one external call. A
// non-positive timeout leaves ctx unbounded.
func withCallTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
