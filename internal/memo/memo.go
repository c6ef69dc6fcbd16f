// Package memo owns at-most-once computation caches keyed by comparable
// values.
//
// A Cache runs one computation per key at a time: concurrent callers for
// the same key join the in-flight call and share its value or its error.
// Successful results are retained for the cache's lifetime. Failures are
// delivered to every joined caller and then forgotten, so a later call
// computes again. A computation that panics releases its key the same
// way: the panic value is re-raised in every caller and nothing is
// retained.
package memo

import (
	"errors"
	"sync"
)

// errGoexit answers joined callers when a computation exits via
// runtime.Goexit and so has no outcome to share.
var errGoexit = errors.New("memo: computation exited without returning")

type call[V any] struct {
	done   chan struct{}
	val    V
	err    error
	panicV any // non-nil when the computation panicked
	joins  int // callers sharing this in-flight call
}

// Cache memoizes one value per key. The zero value is ready to use.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	settled  map[K]V
	inflight map[K]*call[V]
}

// Do returns the value for key: the cached result if one is settled, the
// shared outcome of an in-flight computation if one is running, or the
// result of invoking fn. fn runs without the cache lock held. If fn
// panics, the key is released and the panic is re-raised in the caller
// and in every joined caller.
func (c *Cache[K, V]) Do(key K, fn func() (V, error)) (V, error) {
	c.mu.Lock()
	if v, ok := c.settled[key]; ok {
		c.mu.Unlock()
		return v, nil
	}
	if cl, ok := c.inflight[key]; ok {
		cl.joins++
		c.mu.Unlock()
		<-cl.done
		if cl.panicV != nil {
			panic(cl.panicV)
		}
		return cl.val, cl.err
	}
	cl := &call[V]{done: make(chan struct{})}
	if c.inflight == nil {
		c.inflight = make(map[K]*call[V])
	}
	c.inflight[key] = cl
	c.mu.Unlock()

	c.run(key, cl, fn)
	if cl.panicV != nil {
		panic(cl.panicV)
	}
	return cl.val, cl.err
}

// run invokes fn and publishes its outcome. The cleanup is deferred so
// that the in-flight entry is removed and done is closed even when fn
// panics or exits its goroutine; a captured panic value is re-raised by
// Do in the leader and in every joiner.
func (c *Cache[K, V]) run(key K, cl *call[V], fn func() (V, error)) {
	finished := false
	defer func() {
		if !finished {
			cl.panicV = recover()
			if cl.panicV == nil {
				cl.err = errGoexit
			}
		}
		c.mu.Lock()
		delete(c.inflight, key)
		if finished && cl.err == nil {
			if c.settled == nil {
				c.settled = make(map[K]V)
			}
			c.settled[key] = cl.val
		}
		c.mu.Unlock()
		close(cl.done)
	}()
	cl.val, cl.err = fn()
	finished = true
}

// Cached reports whether key holds a settled value.
func (c *Cache[K, V]) Cached(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.settled[key]
	return ok
}

// Value memoizes a single computation. The zero value is ready to use.
type Value[V any] struct {
	cache Cache[struct{}, V]
}

// Do returns the memoized value, computing it through fn on first use.
func (v *Value[V]) Do(fn func() (V, error)) (V, error) {
	return v.cache.Do(struct{}{}, fn)
}

// Cached reports whether the value is settled.
func (v *Value[V]) Cached() bool {
	return v.cache.Cached(struct{}{})
}
