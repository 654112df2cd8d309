package sigslot

import "fmt"

// Stats is a snapshot of a signal's connection pool. Live, PendingA,
// PendingB and Free always add up to Cells.
type Stats struct {
	Live      int
	PendingA  int
	PendingB  int
	Free      int
	Cells     int
	Blocks    int
	Stage     string
	ReadersA  int64
	ReadersB  int64
	Emits     uint64
	Reclaimed uint64
	Expired   uint64
	Blocked   bool
}

func (st Stats) Pending() int {
	return st.PendingA + st.PendingB
}

func (st Stats) String() string {
	return fmt.Sprintf("live=%d pending=%d/%d free=%d cells=%d stage=%s",
		st.Live, st.PendingA, st.PendingB, st.Free, st.Cells, st.Stage)
}

// Stats takes the write lock and walks every list.
func (s *Signal[T]) Stats() Stats {
	s.writer.Lock()
	defer s.writer.Unlock()

	return Stats{
		Live:      s.countLive(),
		PendingA:  s.countPending(stageA),
		PendingB:  s.countPending(stageB),
		Free:      s.pool.freeCount,
		Cells:     s.pool.blocks() * s.pool.capacity,
		Blocks:    s.pool.blocks(),
		Stage:     s.currentStage().String(),
		ReadersA:  s.readers[stageA].Load(),
		ReadersB:  s.readers[stageB].Load(),
		Emits:     s.emits.Load(),
		Reclaimed: s.reclaimed.Load(),
		Expired:   s.expired.Load(),
		Blocked:   s.blocked.Load(),
	}
}

func (s *Signal[T]) countPending(st stage) int {
	n := 0
	for h := s.pending[st]; h != nilHandle; h = s.pool.cell(h).link {
		n++
	}
	return n
}
