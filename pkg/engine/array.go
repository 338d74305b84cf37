package engine

import (
	"strconv"
	"strings"

	"github.com/formflow-dev/formflow/pkg/reactive"
	"github.com/formflow-dev/formflow/pkg/schema"
)

// Array fields hold []any values. The helpers below are conveniences
// over SetValue that keep item-scoped error keys ("name.<i>") in step
// with the slice.

// AppendItem appends an item to an array field, subject to the field's
// MaxItems bound. Non-array fields are ignored. The change runs the
// full SetValue pipeline. No-op while a submission is in flight.
func (e *Engine) AppendItem(name string, value any) {
	e.mu.Lock()
	notify := e.appendItemLocked(name, value)
	e.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// RemoveItemAt removes the item at index from an array field and
// reindexes item-scoped error keys above it. The last remaining item
// is never removed. Out-of-range indexes and non-array fields are
// ignored. No-op while a submission is in flight.
func (e *Engine) RemoveItemAt(name string, index int) {
	e.mu.Lock()
	notify := e.removeItemAtLocked(name, index)
	e.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// CanAddItem reports whether the array field is below its MaxItems
// bound. Fields without a bound always accept more items.
func (e *Engine) CanAddItem(name string) bool {
	f, ok := e.schema.Field(name)
	if !ok || f.Type != schema.TypeArray {
		return false
	}
	if f.MaxItems <= 0 {
		return true
	}
	v, _ := e.values.GetKey(name)
	return len(arrayItems(v)) < f.MaxItems
}

// CanRemoveItem reports whether the array field has more than one item.
// The last item is never removable, regardless of MinItems.
func (e *Engine) CanRemoveItem(name string) bool {
	f, ok := e.schema.Field(name)
	if !ok || f.Type != schema.TypeArray {
		return false
	}
	v, _ := e.values.GetKey(name)
	return len(arrayItems(v)) > 1
}

func (e *Engine) appendItemLocked(name string, value any) func() {
	if e.submitting.Peek() {
		return nil
	}

	f, ok := e.schema.Field(name)
	if !ok || f.Type != schema.TypeArray {
		e.logger.Debug("ignoring append to non-array field", "field", name)
		return nil
	}

	items := arrayItems(e.values.Peek()[name])
	if f.MaxItems > 0 && len(items) >= f.MaxItems {
		return nil
	}

	next := make([]any, len(items)+1)
	copy(next, items)
	next[len(items)] = value

	return e.setValueLocked(name, next)
}

func (e *Engine) removeItemAtLocked(name string, index int) func() {
	if e.submitting.Peek() {
		return nil
	}

	f, ok := e.schema.Field(name)
	if !ok || f.Type != schema.TypeArray {
		e.logger.Debug("ignoring removal from non-array field", "field", name)
		return nil
	}

	items := arrayItems(e.values.Peek()[name])
	if index < 0 || index >= len(items) {
		return nil
	}
	if len(items) <= 1 {
		return nil
	}

	next := make([]any, 0, len(items)-1)
	next = append(next, items[:index]...)
	next = append(next, items[index+1:]...)

	var notify func()
	reactive.Batch(func() {
		e.reindexItemErrorsLocked(name, index)
		notify = e.setValueLocked(name, next)
	})
	return notify
}

// reindexItemErrorsLocked drops the removed item's error key and shifts
// the keys of the items above it down by one. Caller must hold e.mu.
func (e *Engine) reindexItemErrorsLocked(name string, removed int) {
	prefix := name + "."
	e.errors.Update(func(m map[string]string) map[string]string {
		next := make(map[string]string, len(m))
		for key, msg := range m {
			idx, ok := itemIndex(key, prefix)
			switch {
			case !ok || idx < removed:
				next[key] = msg
			case idx == removed:
				// dropped with the item
			default:
				next[prefix+strconv.Itoa(idx-1)] = msg
			}
		}
		return next
	})
}

// arrayItems normalizes an array field's stored value to a slice.
func arrayItems(v any) []any {
	items, _ := v.([]any)
	return items
}

// splitItemKey parses an item-scoped error key of the form "name.<i>".
func splitItemKey(key string) (name string, index int, ok bool) {
	dot := strings.LastIndex(key, ".")
	if dot <= 0 {
		return "", 0, false
	}
	idx, err := strconv.Atoi(key[dot+1:])
	if err != nil || idx < 0 {
		return "", 0, false
	}
	return key[:dot], idx, true
}

// itemIndex extracts the item index from an error key with the given
// "name." prefix.
func itemIndex(key, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(key, prefix)
	if !ok {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}
