package sigslot

import (
	"runtime"
	"sync/atomic"
)

// spinLock serializes writers. Critical sections are short list walks, so
// waiting goroutines yield instead of parking.
type spinLock struct {
	held atomic.Bool
}

func (l *spinLock) Lock() {
	for !l.held.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

func (l *spinLock) Unlock() {
	if !l.held.Swap(false) {
		panic("sigslot: unlock of unlocked spinLock")
	}
}

func (l *spinLock) TryLock() bool {
	return l.held.CompareAndSwap(false, true)
}

type stage uint32

const (
	stageA stage = iota
	stageB
)

func (s stage) other() stage {
	return s ^ 1
}

func (s stage) String() string {
	if s == stageA {
		return "A"
	}
	return "B"
}

// readGuard counts one active reader against a stage. release is idempotent.
type readGuard struct {
	counter *atomic.Int64
}

func enterRead(counter *atomic.Int64) readGuard {
	counter.Add(1)
	return readGuard{counter: counter}
}

func (g *readGuard) release() {
	if g.counter != nil {
		g.counter.Add(-1)
		g.counter = nil
	}
}
