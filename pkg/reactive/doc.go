// Package reactive provides the signal primitives the form engine is built on.
//
// # Overview
//
// A Signal is a thread-safe value container. Reading a signal inside a
// tracked context (a Memo computation or a Watch callback) subscribes the
// current listener, so later writes to the signal notify it. A Memo is a
// lazy cached computation over signals; a Watcher is a callback that
// re-runs whenever any signal it read changes.
//
// # Usage
//
//	count := reactive.NewSignal(0)
//
//	doubled := reactive.NewMemo(func() int {
//	    return count.Get() * 2
//	})
//
//	stop := reactive.Watch(func() {
//	    fmt.Println("count is", count.Get())
//	})
//	defer stop()
//
//	count.Set(1) // watcher re-runs, doubled recomputes on next read
//
// Batch groups several writes into a single notification phase:
//
//	reactive.Batch(func() {
//	    values.Set(v)
//	    errors.Set(e)
//	})
//	// subscribers are notified once
//
// Watch callbacks must only read. Writing a signal from inside a watcher
// re-enters the notification path and can loop.
package reactive
