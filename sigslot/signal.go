package sigslot

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Signal is a thread-safe list of slots that can all be invoked with Emit.
//
// Emit and Connected never take the write lock. They register with the
// current stage for the duration of their walk, and removed connections are
// parked on that stage's pending list. A pending list is returned to the pool
// only after the other stage has no readers left, so a reader never observes
// a recycled cell.
type Signal[T any] struct {
	pool    *storage[T]
	head    atomic.Uint32
	pending [2]handle
	readers [2]atomic.Int64
	stage   atomic.Uint32
	writer  spinLock

	blocked atomic.Bool
	closed  atomic.Bool

	emits     atomic.Uint64
	reclaimed atomic.Uint64
	expired   atomic.Uint64

	log     logrus.FieldLogger
	onPanic PanicHandler
}

func New[T any](opts ...Option) *Signal[T] {
	cfg := newConfig(opts)
	return &Signal[T]{
		pool:    newStorage[T](cfg.capacity, cfg.log),
		log:     cfg.log,
		onPanic: cfg.onPanic,
	}
}

func (s *Signal[T]) currentStage() stage {
	return stage(s.stage.Load())
}

func (s *Signal[T]) loadHead() handle {
	return handle(s.head.Load())
}

func (s *Signal[T]) readAccess() readGuard {
	return enterRead(&s.readers[s.currentStage()])
}

// Connect adds slot unless an equal slot is already connected.
func (s *Signal[T]) Connect(slot Slot[T]) bool {
	return s.connect(slot, nil)
}

// ConnectTracked adds slot and disconnects it automatically during the
// first Emit that finds owner expired.
func (s *Signal[T]) ConnectTracked(slot Slot[T], owner Tracker) bool {
	return s.connect(slot, owner)
}

func (s *Signal[T]) connect(slot Slot[T], owner Tracker) bool {
	if slot.IsZero() {
		return false
	}

	s.writer.Lock()
	defer s.writer.Unlock()

	if s.closed.Load() {
		return false
	}
	s.synchronize()

	tail := nilHandle
	for h := s.loadHead(); h != nilHandle; {
		c := s.pool.cell(h)
		if c.slot.Equal(slot) {
			return false
		}
		tail = h
		h = c.loadNext()
	}

	h := s.pool.allocate()
	s.pool.cell(h).init(slot, owner)
	if tail == nilHandle {
		s.head.Store(uint32(h))
	} else {
		s.pool.cell(tail).storeNext(h)
	}
	return true
}

// Disconnect removes slot. It reports false if slot was not connected.
func (s *Signal[T]) Disconnect(slot Slot[T]) bool {
	s.writer.Lock()
	defer s.writer.Unlock()

	s.synchronize()
	return s.unlink(func(_ handle, c *connection[T]) bool {
		return c.slot.Equal(slot)
	})
}

// DisconnectAll removes every slot.
func (s *Signal[T]) DisconnectAll() {
	s.writer.Lock()
	defer s.writer.Unlock()

	s.retireAll()
}

// Connected reports whether an equal slot is connected.
func (s *Signal[T]) Connected(slot Slot[T]) bool {
	g := s.readAccess()
	defer g.release()

	for h := s.loadHead(); h != nilHandle; {
		c := s.pool.cell(h)
		if c.slot.Equal(slot) {
			return true
		}
		h = c.loadNext()
	}
	return false
}

// Emit invokes every connected slot with v, in connection order, on the
// calling goroutine.
func (s *Signal[T]) Emit(v T) {
	if s.blocked.Load() {
		return
	}

	g := s.readAccess()
	defer g.release()

	s.emits.Add(1)
	for h := s.loadHead(); h != nilHandle; {
		c := s.pool.cell(h)
		if s.deliver(c, v) {
			h = c.loadNext()
			continue
		}
		gone := h
		h = c.loadNext()
		s.removeExpired(gone)
	}
}

func (s *Signal[T]) deliver(c *connection[T], v T) (alive bool) {
	if s.onPanic != nil {
		defer func() {
			if r := recover(); r != nil {
				alive = true
				s.onPanic(r)
			}
		}()
	}
	return c.call(v)
}

// removeExpired takes the write lock from inside an Emit. The emitting
// reader has already moved past h.
func (s *Signal[T]) removeExpired(h handle) {
	s.writer.Lock()
	defer s.writer.Unlock()

	s.synchronize()
	removed := s.unlink(func(x handle, _ *connection[T]) bool {
		return x == h
	})
	if removed {
		s.expired.Add(1)
		s.log.WithField("handle", h).Debug("tracked owner expired, slot disconnected")
	}
}

func (s *Signal[T]) Block(blocked bool) {
	s.blocked.Store(blocked)
}

func (s *Signal[T]) Blocked() bool {
	return s.blocked.Load()
}

// Size counts the connected slots under the write lock.
func (s *Signal[T]) Size() int {
	s.writer.Lock()
	defer s.writer.Unlock()

	return s.countLive()
}

// Empty is a single atomic load and may be stale under concurrent writers.
func (s *Signal[T]) Empty() bool {
	return s.loadHead() == nilHandle
}

// Close disconnects everything and returns all cells to the pool without
// waiting for readers, so no Emit or Connected may be running. Connect
// reports false afterwards.
func (s *Signal[T]) Close() {
	s.writer.Lock()
	defer s.writer.Unlock()

	if s.closed.Swap(true) {
		return
	}
	s.retireAll()
	n := s.freePending(stageA) + s.freePending(stageB)
	s.log.WithField("cells", n).Debug("signal closed")
}

// Reclaim runs two reclamation passes and reports how many pending cells
// went back to the pool. Cells still guarded by a running reader stay pending.
func (s *Signal[T]) Reclaim() int {
	s.writer.Lock()
	defer s.writer.Unlock()

	before := s.reclaimed.Load()
	s.synchronize()
	s.synchronize()
	return int(s.reclaimed.Load() - before)
}

func (s *Signal[T]) countLive() int {
	n := 0
	for h := s.loadHead(); h != nilHandle; h = s.pool.cell(h).loadNext() {
		n++
	}
	return n
}

// synchronize frees the other stage's pending list and makes it current, but
// only when no reader is registered with it. Write lock must be held.
func (s *Signal[T]) synchronize() {
	other := s.currentStage().other()
	if s.readers[other].Load() != 0 {
		return
	}
	if n := s.freePending(other); n > 0 {
		s.log.WithFields(logrus.Fields{
			"stage": other.String(),
			"cells": n,
		}).Debug("pending connections reclaimed")
	}
	s.stage.Store(uint32(other))
}

func (s *Signal[T]) freePending(st stage) int {
	n := 0
	for h := s.pending[st]; h != nilHandle; n++ {
		next := s.pool.cell(h).link
		s.pool.deallocate(h)
		h = next
	}
	s.pending[st] = nilHandle
	s.reclaimed.Add(uint64(n))
	return n
}

// unlink removes the first live node accepted by match and parks it on the
// current stage's pending list.
func (s *Signal[T]) unlink(match func(handle, *connection[T]) bool) bool {
	prev := nilHandle
	for h := s.loadHead(); h != nilHandle; {
		c := s.pool.cell(h)
		next := c.loadNext()
		if !match(h, c) {
			prev = h
			h = next
			continue
		}
		if prev == nilHandle {
			s.head.Store(uint32(next))
		} else {
			s.pool.cell(prev).storeNext(next)
		}
		s.retire(h, next)
		return true
	}
	return false
}

// retire parks h. Pending nodes still pointing at h are redirected to its
// successor so readers standing on them skip it.
func (s *Signal[T]) retire(h, next handle) {
	for _, list := range s.pending {
		for p := list; p != nilHandle; {
			c := s.pool.cell(p)
			if c.loadNext() == h {
				c.storeNext(next)
			}
			p = c.link
		}
	}
	st := s.currentStage()
	s.pool.cell(h).link = s.pending[st]
	s.pending[st] = h
}

// retireAll parks the whole live list on the current stage in one pass and
// cuts every next link, so an Emit already walking the list stops at the
// node it is on.
func (s *Signal[T]) retireAll() {
	first := s.loadHead()
	if first == nilHandle {
		return
	}
	s.head.Store(uint32(nilHandle))

	st := s.currentStage()
	for h := first; h != nilHandle; {
		c := s.pool.cell(h)
		next := c.loadNext()
		if next == nilHandle {
			c.link = s.pending[st]
		} else {
			c.link = next
		}
		c.storeNext(nilHandle)
		h = next
	}
	s.pending[st] = first
}
