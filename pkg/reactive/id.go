package reactive

import "sync/atomic"

// globalIDCounter generates unique IDs for signals, memos, and watchers.
var globalIDCounter uint64

// nextID returns the next unique identifier.
func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}
