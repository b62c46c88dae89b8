package mapper

import (
	"context"
	"sync"
	"time"
)

// Mapper maps plain data to reactive models and back.
//
// A Mapper is safe for concurrent use. Configuration methods (Register,
// SetReactor) may be called at any time; calls in progress keep the handler
// they already resolved.
type Mapper struct {
	// Mutable configuration protected by mu
	mu       sync.RWMutex
	handlers map[HandlerName]Handler
	reactor  Reactor
}

// New creates a Mapper seeded with the built-in handlers and the reactive
// package's containers.
func New() *Mapper {
	return &Mapper{
		handlers: builtinHandlers(),
		reactor:  DefaultReactor(),
	}
}

// builtinHandlers returns a fresh table of the five built-in handlers and
// the masking handlers.
func builtinHandlers() map[HandlerName]Handler {
	handlers := map[HandlerName]Handler{
		HandlerObject: objectHandler{},
		HandlerArray:  arrayHandler{},
		HandlerValue:  valueHandler{},
		HandlerIgnore: ignoreHandler{},
		HandlerCopy:   copyHandler{},
	}
	for name, h := range maskHandlers() {
		handlers[name] = h
	}
	return handlers
}

// Register makes h selectable by name through `$handler` and `$default`.
// Registering a built-in name replaces it for this Mapper, auto-resolution
// included. Returns the mapper for chaining. Safe for concurrent use.
func (m *Mapper) Register(name HandlerName, h Handler) *Mapper {
	m.mu.Lock()
	m.handlers[name] = h
	m.mu.Unlock()

	emitHandlerRegistered(context.Background(), name)
	return m
}

// Lookup returns the handler registered under name.
func (m *Mapper) Lookup(name HandlerName) (Handler, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.handlers[name]
	if !ok {
		return nil, newHandlerError(name)
	}
	return h, nil
}

// SetReactor replaces the container factory. Returns the mapper for chaining.
// Safe for concurrent use.
func (m *Mapper) SetReactor(r Reactor) *Mapper {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reactor = r
	return m
}

func (m *Mapper) reactorOrDefault() Reactor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.reactor == nil {
		return DefaultReactor()
	}
	return m.reactor
}

// FromJS maps source to its reactive form.
//
// options is a raw options value (nil, a handler name, a Handler or a
// Mapping). target, when non-nil, is an existing container or model to map
// into. wrap selects whether the result is placed in a container; see Wrap.
func (m *Mapper) FromJS(ctx context.Context, source, options, target any, wrap Wrap) (any, error) {
	defer enter()()
	ctx = withRun(ctx)

	start := time.Now()
	emitFromJSStart(ctx, Classify(source))

	result, err := m.fromJS(ctx, nil, source, options, target, wrap)
	emitFromJSComplete(ctx, Classify(source), time.Since(start), runDepth(), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ToJS maps a reactive value back to plain data: map[string]any for objects,
// []any for sequences and bare values otherwise.
func (m *Mapper) ToJS(ctx context.Context, source, options any) (any, error) {
	defer enter()()
	ctx = withRun(ctx)

	start := time.Now()
	emitToJSStart(ctx, Classify(source))

	result, err := m.toJS(ctx, nil, source, options)
	emitToJSComplete(ctx, Classify(source), time.Since(start), runDepth(), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// fromJS resolves the options of one node and dispatches to its handler.
func (m *Mapper) fromJS(ctx context.Context, parents *ancestor, value, options, target any, wrap Wrap) (any, error) {
	opts, err := resolveOptions(options, DirFromJS)
	if err != nil {
		return nil, err
	}
	h, err := m.handlerFor(opts, value)
	if err != nil {
		return nil, err
	}
	c := &Context{Options: opts, parents: parents, mapper: m, ctx: ctx}
	return h.FromJS(c, value, target, wrap)
}

// toJS resolves the options of one node and dispatches to its handler.
func (m *Mapper) toJS(ctx context.Context, parents *ancestor, value, options any) (any, error) {
	opts, err := resolveOptions(options, DirToJS)
	if err != nil {
		return nil, err
	}
	h, err := m.handlerFor(opts, value)
	if err != nil {
		return nil, err
	}
	c := &Context{Options: opts, parents: parents, mapper: m, ctx: ctx}
	return h.ToJS(c, value)
}

// handlerFor returns the explicit handler of opts, or the one the kind of
// value selects.
func (m *Mapper) handlerFor(opts *Options, value any) (Handler, error) {
	if opts.Custom != nil {
		return opts.Custom, nil
	}
	name := opts.Handler
	if name == "" {
		name = kindHandlers[Classify(value)]
	}
	return m.Lookup(name)
}
