package intake

import "context"

// Handler processes one newly arrived audio file.
type Handler func(ctx context.Context, path string) error

// Watcher monitors a drop directory and invokes the handler for each new
// recording. Start blocks until the context is canceled.
type Watcher interface {
	Start(ctx context.Context, handler Handler) error
}
