package sigslot

import "sync/atomic"

// handle addresses a connection cell in storage. Zero is the nil handle.
type handle uint32

const nilHandle handle = 0

// connection is a node of the live list. A cell is live (reachable from the
// head), pending (on exactly one stage's pending list) or free (on the
// storage freelist), never more than one at a time.
type connection[T any] struct {
	slot      Slot[T]
	tracker   Tracker
	trackable bool

	// next links live nodes and is read by lock-free readers.
	next atomic.Uint32

	// link chains the pending list, and the freelist once the cell is free.
	// Only writers touch it.
	link handle
}

func (c *connection[T]) init(slot Slot[T], tracker Tracker) {
	c.slot = slot
	c.tracker = tracker
	c.trackable = tracker != nil
	c.next.Store(uint32(nilHandle))
	c.link = nilHandle
}

func (c *connection[T]) loadNext() handle {
	return handle(c.next.Load())
}

func (c *connection[T]) storeNext(h handle) {
	c.next.Store(uint32(h))
}

// call invokes the slot, pinning the owner of trackable connections for the
// duration of the call. It reports false without invoking when the owner has
// expired.
func (c *connection[T]) call(v T) bool {
	if !c.trackable {
		c.slot.Invoke(v)
		return true
	}
	release, ok := c.tracker.Acquire()
	if !ok {
		return false
	}
	defer release()
	c.slot.Invoke(v)
	return true
}
