package reactive

import (
	"reflect"
	"sync"
)

// Array is an ordered, mutable sequence container.
// Subscribers receive a copy of the items after every mutation.
type Array struct {
	mu    sync.Mutex
	items []any
	subs  subscribers
}

// NewArray returns a sequence holding a copy of items.
func NewArray(items ...any) *Array {
	return &Array{items: append([]any(nil), items...)}
}

// Get returns a copy of the items as []any.
func (a *Array) Get() any {
	return a.Items()
}

// Set replaces the contents with v, which may be nil, a slice or an array.
// Any other value becomes the single item.
func (a *Array) Set(v any) {
	a.Replace(toItems(v))
}

// Items returns a copy of the current items.
func (a *Array) Items() []any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]any(nil), a.items...)
}

// Len returns the number of items.
func (a *Array) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.items)
}

// At returns the item at index i.
func (a *Array) At(i int) any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.items[i]
}

// Replace discards the current contents and stores items.
func (a *Array) Replace(items []any) {
	a.mu.Lock()
	a.items = append([]any(nil), items...)
	a.notifyLocked()
}

// Push appends items to the end.
func (a *Array) Push(items ...any) {
	if len(items) == 0 {
		return
	}
	a.mu.Lock()
	a.items = append(a.items, items...)
	a.notifyLocked()
}

// Subscribe registers fn and returns a function that removes it.
func (a *Array) Subscribe(fn Subscriber) (cancel func()) {
	a.mu.Lock()
	id := a.subs.add(fn)
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		a.subs.remove(id)
		a.mu.Unlock()
	}
}

// notifyLocked releases a.mu and then runs the subscribers.
func (a *Array) notifyLocked() {
	snapshot := append([]any(nil), a.items...)
	subs := a.subs.snapshot()
	a.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

func toItems(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	default:
		return []any{v}
	}
}
