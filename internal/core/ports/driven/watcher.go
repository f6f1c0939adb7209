package driven

import "context"

// ChangeHandler is called with the path of a changed content file.
type ChangeHandler func(path string)

// Watcher reports changes below the content root.
type Watcher interface {
	// Watch delivers changes to handler until ctx is cancelled or Close is
	// called. It blocks.
	Watch(ctx context.Context, handler ChangeHandler) error

	// Close stops watching and releases resources.
	Close() error
}
