package sigslot_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/delaneyj/sigslot/sigslot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterTarget struct {
	hits atomic.Int64
}

func (c *counterTarget) Hit(v int) {
	c.hits.Add(int64(v))
}

func TestConcurrentEmitAndChurn(t *testing.T) {
	const (
		readers    = 4
		writers    = 4
		perWriter  = 16
		iterations = 300
	)

	sig := sigslot.New[int](sigslot.WithCapacity(8))
	stable := &counterTarget{}
	require.True(t, sig.Connect(sigslot.Method(stable, (*counterTarget).Hit)))

	var (
		wg       sync.WaitGroup
		stop     atomic.Bool
		emitted  atomic.Int64
		failures atomic.Int64
	)

	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for !stop.Load() {
				sig.Emit(1)
				emitted.Add(1)
				if !sig.Connected(sigslot.Method(stable, (*counterTarget).Hit)) {
					failures.Add(1)
				}
			}
		}()
	}

	var writersWG sync.WaitGroup
	for w := 0; w < writers; w++ {
		targets := make([]*counterTarget, perWriter)
		for i := range targets {
			targets[i] = &counterTarget{}
		}
		writersWG.Add(1)
		go func() {
			defer writersWG.Done()
			for i := 0; i < iterations; i++ {
				target := targets[i%perWriter]
				slot := sigslot.Method(target, (*counterTarget).Hit)
				if sig.Connected(slot) {
					if !sig.Disconnect(slot) || sig.Connected(slot) {
						failures.Add(1)
					}
				} else {
					if !sig.Connect(slot) || !sig.Connected(slot) {
						failures.Add(1)
					}
				}
			}
		}()
	}

	writersWG.Wait()
	stop.Store(true)
	wg.Wait()

	assert.Zero(t, failures.Load())
	assert.Equal(t, stable.hits.Load(), emitted.Load())

	st := sig.Stats()
	assert.Zero(t, st.ReadersA+st.ReadersB)
	assert.Equal(t, st.Cells, st.Live+st.Pending()+st.Free)
	assert.Equal(t, sig.Size(), st.Live)

	pending := st.Pending()
	assert.Equal(t, pending, sig.Reclaim())
	st = sig.Stats()
	assert.Zero(t, st.Pending())
	assert.Equal(t, st.Cells-st.Live, st.Free)
}

func TestConcurrentTrackedExpiry(t *testing.T) {
	sig := sigslot.New[int]()
	owners := make([]*sigslot.Lifetime, 32)
	for i := range owners {
		owners[i] = sigslot.NewLifetime()
		target := &counterTarget{}
		require.True(t, sig.ConnectTracked(sigslot.Method(target, (*counterTarget).Hit), owners[i]))
	}

	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				sig.Emit(1)
			}
		}()
	}
	for _, o := range owners {
		o.End()
	}
	wg.Wait()

	sig.Emit(1)
	assert.True(t, sig.Empty())
	assert.EqualValues(t, len(owners), sig.Stats().Expired)
}
