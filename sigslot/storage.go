package sigslot

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

const DefaultCapacity = 5

// storage is a pool of connection cells grown one fixed-size block at a time.
// Blocks are never moved, and the block table is swapped atomically on
// growth, so a handle obtained by a lock-free reader always resolves to the
// same cell. Everything except cell is writer-only.
type storage[T any] struct {
	capacity  int
	table     atomic.Pointer[[][]connection[T]]
	free      handle
	freeCount int
	log       logrus.FieldLogger
}

func newStorage[T any](capacity int, log logrus.FieldLogger) *storage[T] {
	if capacity < 1 {
		capacity = 1
	}
	s := &storage[T]{capacity: capacity, log: log}
	s.grow()
	return s
}

func (s *storage[T]) cell(h handle) *connection[T] {
	blocks := *s.table.Load()
	i := int(h) - 1
	return &blocks[i/s.capacity][i%s.capacity]
}

func (s *storage[T]) blocks() int {
	if t := s.table.Load(); t != nil {
		return len(*t)
	}
	return 0
}

// grow appends one block and threads its cells onto the freelist.
func (s *storage[T]) grow() {
	var blocks [][]connection[T]
	if old := s.table.Load(); old != nil {
		blocks = make([][]connection[T], len(*old), len(*old)+1)
		copy(blocks, *old)
	}
	block := make([]connection[T], s.capacity)
	base := len(blocks) * s.capacity
	for i := range block {
		block[i].link = handle(base + i + 2)
	}
	block[len(block)-1].link = s.free
	s.free = handle(base + 1)
	s.freeCount += s.capacity

	blocks = append(blocks, block)
	s.table.Store(&blocks)

	s.log.WithFields(logrus.Fields{
		"blocks": len(blocks),
		"cells":  len(blocks) * s.capacity,
	}).Debug("connection pool grown")
}

func (s *storage[T]) allocate() handle {
	if s.free == nilHandle {
		s.grow()
	}
	h := s.free
	c := s.cell(h)
	s.free = c.link
	c.link = nilHandle
	s.freeCount--
	return h
}

// deallocate drops the cell's contents and pushes it onto the freelist.
func (s *storage[T]) deallocate(h handle) {
	c := s.cell(h)
	c.slot = Slot[T]{}
	c.tracker = nil
	c.trackable = false
	c.next.Store(uint32(nilHandle))
	c.link = s.free
	s.free = h
	s.freeCount++
}
