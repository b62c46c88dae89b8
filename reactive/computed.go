package reactive

import "sync"

// Source is anything a Computed can depend on.
type Source interface {
	Subscribe(fn Subscriber) (cancel func())
}

// Computed is a read-only cell whose value is derived from other containers.
// Its compute function runs on every Get, so the value is never stale; the
// declared dependencies only drive change notification.
type Computed struct {
	compute func() any

	mu      sync.Mutex
	last    any
	subs    subscribers
	cancels []func()
}

// NewComputed returns a derived cell evaluating compute. Subscribers of the
// returned cell are notified whenever one of deps changes and the computed
// value differs from the last one observed.
func NewComputed(compute func() any, deps ...Source) *Computed {
	c := &Computed{compute: compute}
	c.last = compute()
	for _, dep := range deps {
		c.cancels = append(c.cancels, dep.Subscribe(func(any) { c.refresh() }))
	}
	return c
}

// Get evaluates the compute function.
func (c *Computed) Get() any {
	return c.compute()
}

// Derived marks the cell as computed.
func (c *Computed) Derived() bool { return true }

// Subscribe registers fn and returns a function that removes it.
func (c *Computed) Subscribe(fn Subscriber) (cancel func()) {
	c.mu.Lock()
	id := c.subs.add(fn)
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		c.subs.remove(id)
		c.mu.Unlock()
	}
}

// Dispose detaches the cell from its dependencies.
func (c *Computed) Dispose() {
	c.mu.Lock()
	cancels := c.cancels
	c.cancels = nil
	c.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

func (c *Computed) refresh() {
	v := c.compute()

	c.mu.Lock()
	if samePrimitive(c.last, v) {
		c.mu.Unlock()
		return
	}
	c.last = v
	subs := c.subs.snapshot()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}
