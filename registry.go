package mapper

import "sync"

var (
	defaultMapper   *Mapper
	defaultMapperMu sync.RWMutex
)

// Default returns the process-wide Mapper used by the package-level
// functions. It is built on first use.
func Default() *Mapper {
	// Fast path: read-lock check
	defaultMapperMu.RLock()
	if m := defaultMapper; m != nil {
		defaultMapperMu.RUnlock()
		return m
	}
	defaultMapperMu.RUnlock()

	// Slow path: build with write-lock
	defaultMapperMu.Lock()
	defer defaultMapperMu.Unlock()

	// Double-check pattern
	if defaultMapper == nil {
		defaultMapper = New()
	}
	return defaultMapper
}

// Register makes h selectable by name on the default Mapper.
func Register(name HandlerName, h Handler) {
	Default().Register(name, h)
}

// Reset discards the default Mapper and every handler registered on it.
// This is primarily useful for test isolation.
func Reset() {
	defaultMapperMu.Lock()
	defer defaultMapperMu.Unlock()
	defaultMapper = nil
}
