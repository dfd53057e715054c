package resilience

import (
	"fmt"
	"sync"
)

// Group deduplicates concurrent calls for the same key. Callers that join an
// in-flight call receive the leader's result and shared=true.
type Group[T any] struct {
	mu    sync.Mutex
	calls map[string]*call[T]
}

type call[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// PanicError is what joined callers receive when the leader's fn panicked.
// The leader itself re-panics.
type PanicError struct {
	Key   string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("singleflight %q: panic: %v", e.Key, e.Value)
}

func (g *Group[T]) Do(key string, fn func() (T, error)) (v T, err error, shared bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*call[T])
	}
	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		<-c.done
		return c.val, c.err, true
	}
	c := &call[T]{done: make(chan struct{})}
	g.calls[key] = c
	g.mu.Unlock()

	g.run(key, c, fn)
	return c.val, c.err, false
}

// Result is what DoChan delivers.
type Result[T any] struct {
	Val    T
	Err    error
	Shared bool
}

// DoChan is Do without blocking the caller. fn runs on its own goroutine, so a
// caller that stops waiting does not stop the call for the others. A panic in
// fn is delivered as *PanicError instead of crashing the process.
func (g *Group[T]) DoChan(key string, fn func() (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)

	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*call[T])
	}
	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		go func() {
			<-c.done
			ch <- Result[T]{Val: c.val, Err: c.err, Shared: true}
		}()
		return ch
	}
	c := &call[T]{done: make(chan struct{})}
	g.calls[key] = c
	g.mu.Unlock()

	go func() {
		defer func() {
			if recover() != nil {
				ch <- Result[T]{Err: c.err}
			}
		}()
		g.run(key, c, fn)
		ch <- Result[T]{Val: c.val, Err: c.err}
	}()
	return ch
}

func (g *Group[T]) run(key string, c *call[T], fn func() (T, error)) {
	normal := false
	defer func() {
		var recovered any
		if !normal {
			recovered = recover()
			c.err = &PanicError{Key: key, Value: recovered}
		}
		g.mu.Lock()
		if g.calls[key] == c {
			delete(g.calls, key)
		}
		g.mu.Unlock()
		close(c.done)
		if !normal {
			panic(recovered)
		}
	}()

	c.val, c.err = fn()
	normal = true
}

// Forget makes the next Do for key start a fresh call even if one is still
// in flight.
func (g *Group[T]) Forget(key string) {
	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()
}

// SingleFlight is the untyped group used by caches holding mixed values.
type SingleFlight = Group[any]
