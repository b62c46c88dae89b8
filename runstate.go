package mapper

import (
	"context"
	"sync/atomic"
)

// running counts the public FromJS/ToJS calls in progress across the process.
// It starts at zero. Every call increments it before any mapping work and
// decrements it on return, panics included, so a call triggered from a
// subscriber during an outer call never clears the outer call's visibility.
var running atomic.Int64

// IsRunning reports whether a FromJS or ToJS call is in progress anywhere in
// the process. With concurrent callers it also reports calls made on other
// goroutines; use IsRunningIn to ask about one call stack.
func IsRunning() bool {
	return running.Load() > 0
}

// runKey marks a context.Context as belonging to a call in progress.
type runKey struct{}

// IsRunningIn reports whether ctx was derived from a FromJS or ToJS call in
// progress. Handlers pass Context.Context().
func IsRunningIn(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	n, _ := ctx.Value(runKey{}).(int)
	return n > 0
}

// withRun returns ctx marked one call deeper.
func withRun(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	n, _ := ctx.Value(runKey{}).(int)
	return context.WithValue(ctx, runKey{}, n+1)
}

// enter marks the start of a call and returns the function ending it.
func enter() (leave func()) {
	running.Add(1)
	return func() { running.Add(-1) }
}

// runDepth returns the number of calls in progress.
func runDepth() int64 {
	return running.Load()
}
