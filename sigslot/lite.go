package sigslot

import "github.com/sirupsen/logrus"

type liteConnection[T any] struct {
	slot    Slot[T]
	tracker Tracker
	next    handle
	dead    bool
}

// Lite has the same operations as Signal without any synchronization. It is
// for signals owned by a single goroutine: the pool is one slice that doubles
// when full, and disconnected cells are recycled as soon as no Emit is
// running.
type Lite[T any] struct {
	cells    []liteConnection[T]
	free     handle
	first    handle
	blocked  bool
	emitting int
	retired  []handle
	log      logrus.FieldLogger
	onPanic  PanicHandler
}

func NewLite[T any](opts ...Option) *Lite[T] {
	cfg := newConfig(opts)
	l := &Lite[T]{log: cfg.log, onPanic: cfg.onPanic}
	l.grow(cfg.capacity)
	return l
}

func (l *Lite[T]) cell(h handle) *liteConnection[T] {
	return &l.cells[h-1]
}

func (l *Lite[T]) grow(n int) {
	base := len(l.cells)
	l.cells = append(l.cells, make([]liteConnection[T], n)...)
	for i := base; i < len(l.cells)-1; i++ {
		l.cells[i].next = handle(i + 2)
	}
	l.cells[len(l.cells)-1].next = l.free
	l.free = handle(base + 1)
	l.log.WithField("cells", len(l.cells)).Debug("lite pool grown")
}

func (l *Lite[T]) allocate() handle {
	if l.free == nilHandle {
		l.grow(len(l.cells))
	}
	h := l.free
	l.free = l.cell(h).next
	return h
}

// deallocate recycles h, or marks it dead while an Emit may still be
// standing on it.
func (l *Lite[T]) deallocate(h handle) {
	if l.emitting > 0 {
		c := l.cell(h)
		c.dead = true
		c.slot = Slot[T]{}
		c.tracker = nil
		l.retired = append(l.retired, h)
		return
	}
	*l.cell(h) = liteConnection[T]{next: l.free}
	l.free = h
}

func (l *Lite[T]) endEmit() {
	l.emitting--
	if l.emitting > 0 {
		return
	}
	for _, h := range l.retired {
		*l.cell(h) = liteConnection[T]{next: l.free}
		l.free = h
	}
	l.retired = l.retired[:0]
}

func (l *Lite[T]) Connect(slot Slot[T]) bool {
	return l.connect(slot, nil)
}

func (l *Lite[T]) ConnectTracked(slot Slot[T], owner Tracker) bool {
	return l.connect(slot, owner)
}

func (l *Lite[T]) connect(slot Slot[T], owner Tracker) bool {
	if slot.IsZero() {
		return false
	}
	tail := nilHandle
	for h := l.first; h != nilHandle; h = l.cell(h).next {
		if l.cell(h).slot.Equal(slot) {
			return false
		}
		tail = h
	}
	h := l.allocate()
	*l.cell(h) = liteConnection[T]{slot: slot, tracker: owner}
	if tail == nilHandle {
		l.first = h
	} else {
		l.cell(tail).next = h
	}
	return true
}

func (l *Lite[T]) Disconnect(slot Slot[T]) bool {
	return l.remove(func(_ handle, c *liteConnection[T]) bool {
		return c.slot.Equal(slot)
	})
}

func (l *Lite[T]) remove(match func(handle, *liteConnection[T]) bool) bool {
	prev := nilHandle
	for h := l.first; h != nilHandle; h = l.cell(h).next {
		c := l.cell(h)
		if !match(h, c) {
			prev = h
			continue
		}
		if prev == nilHandle {
			l.first = c.next
		} else {
			l.cell(prev).next = c.next
		}
		l.deallocate(h)
		return true
	}
	return false
}

func (l *Lite[T]) DisconnectAll() {
	for h := l.first; h != nilHandle; {
		next := l.cell(h).next
		l.deallocate(h)
		h = next
	}
	l.first = nilHandle
}

func (l *Lite[T]) Connected(slot Slot[T]) bool {
	for h := l.first; h != nilHandle; h = l.cell(h).next {
		if l.cell(h).slot.Equal(slot) {
			return true
		}
	}
	return false
}

// Emit invokes every slot with v. Slots may connect or disconnect on the
// same Lite while it runs.
func (l *Lite[T]) Emit(v T) {
	if l.blocked {
		return
	}
	l.emitting++
	defer l.endEmit()

	for h := l.first; h != nilHandle; {
		// cells are re-read through their handle: a slot may grow the pool
		c := l.cell(h)
		if c.dead {
			h = c.next
			continue
		}
		if l.deliver(c.slot, c.tracker, v) {
			h = l.cell(h).next
			continue
		}
		gone := h
		h = l.cell(h).next
		l.remove(func(x handle, _ *liteConnection[T]) bool {
			return x == gone
		})
		l.log.Debug("tracked owner expired, slot disconnected")
	}
}

func (l *Lite[T]) deliver(slot Slot[T], owner Tracker, v T) (alive bool) {
	if l.onPanic != nil {
		defer func() {
			if r := recover(); r != nil {
				alive = true
				l.onPanic(r)
			}
		}()
	}
	if owner == nil {
		slot.Invoke(v)
		return true
	}
	release, ok := owner.Acquire()
	if !ok {
		return false
	}
	defer release()
	slot.Invoke(v)
	return true
}

func (l *Lite[T]) Block(blocked bool) {
	l.blocked = blocked
}

func (l *Lite[T]) Blocked() bool {
	return l.blocked
}

func (l *Lite[T]) Size() int {
	n := 0
	for h := l.first; h != nilHandle; h = l.cell(h).next {
		n++
	}
	return n
}

func (l *Lite[T]) Empty() bool {
	return l.first == nilHandle
}
