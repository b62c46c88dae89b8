// Package reactive provides the container primitives consumed by the mapper:
// writable cells, derived cells and sequence containers, each notifying its
// subscribers synchronously when its value changes.
//
// Subscribers run on the goroutine that performed the write and after the
// container's lock has been released, so a subscriber may read or write any
// container, including the one that notified it.
package reactive

import (
	"reflect"
	"sync"
)

// Subscriber receives the new value of a container.
type Subscriber func(value any)

// subscribers is a list of callbacks keyed by registration id.
type subscribers struct {
	next  int
	items map[int]Subscriber
	order []int
}

func (s *subscribers) add(fn Subscriber) int {
	if s.items == nil {
		s.items = make(map[int]Subscriber)
	}
	id := s.next
	s.next++
	s.items[id] = fn
	s.order = append(s.order, id)
	return id
}

func (s *subscribers) remove(id int) {
	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// snapshot returns the callbacks in registration order.
func (s *subscribers) snapshot() []Subscriber {
	out := make([]Subscriber, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// Observable is a writable cell holding a single value.
type Observable struct {
	mu    sync.Mutex
	value any
	subs  subscribers
}

// NewObservable returns a cell holding initial.
func NewObservable(initial any) *Observable {
	return &Observable{value: initial}
}

// Get returns the current value.
func (o *Observable) Get() any {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Set stores v and notifies subscribers unless v is a primitive equal to the
// current value.
func (o *Observable) Set(v any) {
	o.mu.Lock()
	if samePrimitive(o.value, v) {
		o.mu.Unlock()
		return
	}
	o.value = v
	subs := o.subs.snapshot()
	o.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Subscribe registers fn and returns a function that removes it.
func (o *Observable) Subscribe(fn Subscriber) (cancel func()) {
	o.mu.Lock()
	id := o.subs.add(fn)
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		o.subs.remove(id)
		o.mu.Unlock()
	}
}

// samePrimitive reports whether a and b are equal booleans, numbers or strings.
// Composite values always count as changed.
func samePrimitive(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	switch ta.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return a == b
	default:
		return false
	}
}
