package reactive

// Listener is anything that can be notified when a dependency changes.
// This interface is implemented by memos and watchers.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	// For memos, this invalidates the cached value.
	// For watchers, this re-runs the callback.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during subscription and batch processing.
	ID() uint64
}

// Cleanup is a function that releases a subscription or other resource.
type Cleanup func()
