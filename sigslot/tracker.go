package sigslot

import (
	"runtime"
	"sync"
	"weak"
)

// Tracker guards a connection whose target is owned elsewhere. Acquire
// reports false once the owner is gone; otherwise the owner stays alive until
// release is called.
type Tracker interface {
	Acquire() (release func(), ok bool)
}

type weakTracker[O any] struct {
	wp weak.Pointer[O]
}

// Track returns a Tracker that expires when owner is garbage collected. It
// only works if nothing the signal holds, the slot included, keeps owner
// reachable; see WeakMethod and WeakFunctor.
func Track[O any](owner *O) Tracker {
	if owner == nil {
		panic("sigslot: nil owner")
	}
	return weakTracker[O]{wp: weak.Make(owner)}
}

func (t weakTracker[O]) Acquire() (func(), bool) {
	p := t.wp.Value()
	if p == nil {
		return nil, false
	}
	return func() { runtime.KeepAlive(p) }, true
}

// Lifetime is an owner whose end is explicit. End blocks until every
// invocation that already acquired the lifetime has returned, so it must not
// be called from inside one of those invocations.
//
// Acquire is a read lock, and sync.RWMutex does not allow recursive read
// locking. A slot tracked by a Lifetime must not emit another signal whose
// slot is tracked by the same Lifetime: if End is waiting at that moment the
// nested Acquire blocks behind it and both deadlock. Give nested owners their
// own Lifetime.
type Lifetime struct {
	mu    sync.RWMutex
	ended bool
}

func NewLifetime() *Lifetime {
	return &Lifetime{}
}

func (l *Lifetime) Acquire() (func(), bool) {
	l.mu.RLock()
	if l.ended {
		l.mu.RUnlock()
		return nil, false
	}
	return l.mu.RUnlock, true
}

func (l *Lifetime) End() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ended = true
}

func (l *Lifetime) Ended() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ended
}
