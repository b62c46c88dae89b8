package mapper

import "github.com/zoobzio/mapper/reactive"

// Reactor allocates the containers the engine wraps values in.
type Reactor interface {
	// NewCell returns a writable cell holding initial.
	NewCell(initial any) Writable

	// NewSequence returns a sequence container holding items.
	NewSequence(items []any) Sequence
}

// reactiveReactor allocates containers from the reactive package.
type reactiveReactor struct{}

// DefaultReactor returns the Reactor backed by the reactive package.
func DefaultReactor() Reactor {
	return reactiveReactor{}
}

func (reactiveReactor) NewCell(initial any) Writable {
	return reactive.NewObservable(initial)
}

func (reactiveReactor) NewSequence(items []any) Sequence {
	return reactive.NewArray(items...)
}
