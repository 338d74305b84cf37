package reactive

import (
	"sync"
	"sync/atomic"
)

// Watcher is a callback that re-runs whenever any signal or memo it read
// during its last run changes. Unlike memos, watchers are eager: they run
// once on creation and again synchronously on every notification.
type Watcher struct {
	id uint64

	// fn is the callback to run.
	fn func()

	// sources are the signals/memos this watcher depends on.
	sources   []*signalBase
	sourcesMu sync.Mutex

	// running guards against re-entrant runs when the callback itself
	// writes a signal it reads.
	running atomic.Bool

	// stopped indicates the watcher has been stopped.
	stopped atomic.Bool
}

// Watch runs fn immediately with dependency tracking and re-runs it whenever
// a signal or memo it read changes. The returned Cleanup stops the watcher
// and unsubscribes it from all sources.
//
// fn should only read reactive state. Writes from inside the callback are
// dropped for the signals the watcher itself depends on (re-entrancy guard)
// and are a bug in the caller.
func Watch(fn func()) Cleanup {
	w := &Watcher{
		id: nextID(),
		fn: fn,
	}
	w.run()
	return w.Stop
}

// MarkDirty re-runs the watcher.
// Implements the Listener interface.
func (w *Watcher) MarkDirty() {
	if w.stopped.Load() {
		return
	}
	w.run()
}

// ID returns the unique identifier for this watcher.
// Implements the Listener interface.
func (w *Watcher) ID() uint64 {
	return w.id
}

// addSource adds a source dependency.
// Implements the sourceTracker interface.
func (w *Watcher) addSource(source *signalBase) {
	w.sourcesMu.Lock()
	defer w.sourcesMu.Unlock()

	for _, s := range w.sources {
		if s == source {
			return
		}
	}
	w.sources = append(w.sources, source)
}

// Stop halts the watcher and unsubscribes it from all sources.
// Safe to call more than once.
func (w *Watcher) Stop() {
	if w.stopped.Swap(true) {
		return
	}

	w.sourcesMu.Lock()
	for _, source := range w.sources {
		source.unsubscribe(w)
	}
	w.sources = nil
	w.sourcesMu.Unlock()
}

// run executes the callback with dependency tracking.
func (w *Watcher) run() {
	if w.running.Swap(true) {
		return
	}
	defer w.running.Store(false)

	// Unsubscribe from old sources; the run re-subscribes to whatever
	// it actually reads this time.
	w.sourcesMu.Lock()
	for _, source := range w.sources {
		source.unsubscribe(w)
	}
	w.sources = w.sources[:0]
	w.sourcesMu.Unlock()

	old := setCurrentListener(w)
	w.fn()
	setCurrentListener(old)
}

// Ensure Watcher implements sourceTracker
var _ sourceTracker = (*Watcher)(nil)
