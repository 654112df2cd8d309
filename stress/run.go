package stress

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/sigslot/sigslot"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Report summarises one run. Stats is taken after the final reclamation.
type Report struct {
	RunID       string
	Scenario    string
	Duration    time.Duration
	Emits       int64
	Connects    int64
	Disconnects int64
	Expired     uint64
	Reclaimed   int
	Stats       sigslot.Stats
}

type target struct {
	hits atomic.Int64
}

func (t *target) Hit(v int) {
	t.hits.Add(int64(v))
}

func (t *target) slot() sigslot.Slot[int] {
	return sigslot.Method(t, (*target).Hit)
}

type writer struct {
	id        int
	rng       *rand.Rand
	targets   []*target
	owners    map[*target]*sigslot.Lifetime
	connected mapset.Set[*target]

	connects, disconnects int64
}

// seed derives a stable per worker seed so a scenario replays the same
// sequence of operations.
func seed(sc Scenario, id int) (uint64, uint64) {
	base := xxhash.Sum64String(fmt.Sprintf("%s/%s/%d", sc.Seed, sc.Name, id))
	return base, xxhash.Sum64String(fmt.Sprintf("%d", base))
}

func newWriter(sc Scenario, id int) *writer {
	s1, s2 := seed(sc, id)
	w := &writer{
		id:        id,
		rng:       rand.New(rand.NewPCG(s1, s2)),
		targets:   make([]*target, sc.TargetsPerWriter),
		connected: mapset.NewThreadUnsafeSet[*target](),
	}
	for i := range w.targets {
		w.targets[i] = &target{}
	}
	if sc.Tracked {
		w.owners = make(map[*target]*sigslot.Lifetime, len(w.targets))
		for _, t := range w.targets {
			w.owners[t] = sigslot.NewLifetime()
		}
	}
	return w
}

func (w *writer) run(ctx context.Context, sig *sigslot.Signal[int], iterations int) error {
	if len(w.targets) == 0 {
		return nil
	}
	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("writer %d: %w", w.id, err)
		}

		t := w.targets[w.rng.IntN(len(w.targets))]
		slot := t.slot()
		if w.connected.Contains(t) {
			if !sig.Disconnect(slot) {
				return fmt.Errorf("%w: writer %d: disconnect of connected target rejected", ErrVerification, w.id)
			}
			w.connected.Remove(t)
			w.disconnects++
		} else {
			var ok bool
			if owner, tracked := w.owners[t]; tracked {
				ok = sig.ConnectTracked(slot, owner)
			} else {
				ok = sig.Connect(slot)
			}
			if !ok {
				return fmt.Errorf("%w: writer %d: connect of disconnected target rejected", ErrVerification, w.id)
			}
			w.connected.Add(t)
			w.connects++
		}

		if got, want := sig.Connected(slot), w.connected.Contains(t); got != want {
			return fmt.Errorf("%w: writer %d: connected=%t, expected %t", ErrVerification, w.id, got, want)
		}
	}
	return nil
}

// expire ends the owners of every target still connected.
func (w *writer) expire() int {
	n := 0
	for t := range w.connected.Iter() {
		if owner, ok := w.owners[t]; ok {
			owner.End()
			n++
		}
	}
	return n
}

// Run executes sc. Readers emit and query a permanently connected anchor
// until every writer is done; writers connect and disconnect their own
// targets and cross-check the signal after each operation.
func Run(ctx context.Context, sc Scenario, log logrus.FieldLogger) (Report, error) {
	if err := sc.validate(); err != nil {
		return Report{}, err
	}

	if sc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sc.Timeout)
		defer cancel()
	}

	rep := Report{RunID: uuid.NewString(), Scenario: sc.Name}
	log = log.WithFields(logrus.Fields{
		"run":      rep.RunID,
		"scenario": sc.Name,
	})
	log.WithFields(logrus.Fields{
		"readers":    sc.Readers,
		"writers":    sc.Writers,
		"targets":    sc.TargetsPerWriter,
		"iterations": sc.Iterations,
		"capacity":   sc.Capacity,
		"tracked":    sc.Tracked,
	}).Info("stress run starting")

	sig := sigslot.New[int](
		sigslot.WithCapacity(sc.Capacity),
		sigslot.WithLogger(log),
	)
	defer sig.Close()

	anchor := &target{}
	anchorSlot := anchor.slot()
	sig.Connect(anchorSlot)

	start := time.Now()
	var (
		emits atomic.Int64
		stop  atomic.Bool
	)

	g, gctx := errgroup.WithContext(ctx)
	var readers sync.WaitGroup
	for r := 0; r < sc.Readers; r++ {
		readers.Add(1)
		g.Go(func() error {
			defer readers.Done()
			for !stop.Load() && gctx.Err() == nil {
				sig.Emit(1)
				emits.Add(1)
				if !sig.Connected(anchorSlot) {
					return fmt.Errorf("%w: reader %d lost the anchor slot", ErrVerification, r)
				}
			}
			return nil
		})
	}

	writers := make([]*writer, sc.Writers)
	var writing sync.WaitGroup
	for i := range writers {
		w := newWriter(sc, i)
		writers[i] = w
		writing.Add(1)
		g.Go(func() error {
			defer writing.Done()
			return w.run(gctx, sig, sc.Iterations)
		})
	}

	go func() {
		writing.Wait()
		stop.Store(true)
	}()
	if err := g.Wait(); err != nil {
		stop.Store(true)
		return rep, err
	}
	readers.Wait()

	rep.Duration = time.Since(start)
	rep.Emits = emits.Load()

	live := 1
	for _, w := range writers {
		rep.Connects += w.connects
		rep.Disconnects += w.disconnects
		live += w.connected.Cardinality()
	}
	if got := sig.Size(); got != live {
		return rep, fmt.Errorf("%w: %d connected, expected %d", ErrVerification, got, live)
	}

	if sc.Tracked {
		ended := 0
		for _, w := range writers {
			ended += w.expire()
		}
		sig.Emit(1)
		rep.Emits++
		if got := sig.Size(); got != 1 {
			return rep, fmt.Errorf("%w: %d connected after %d owners ended", ErrVerification, got, ended)
		}
		log.WithField("owners", ended).Debug("tracked owners ended")
	}

	if got := anchor.hits.Load(); got != rep.Emits {
		return rep, fmt.Errorf("%w: anchor saw %d of %d emits", ErrVerification, got, rep.Emits)
	}

	before := sig.Stats()
	if before.Cells != before.Live+before.Pending()+before.Free {
		return rep, fmt.Errorf("%w: cells leaked: %s", ErrVerification, before)
	}
	rep.Reclaimed = sig.Reclaim()
	rep.Stats = sig.Stats()
	rep.Expired = rep.Stats.Expired

	var errs []error
	if rep.Stats.Pending() != 0 {
		errs = append(errs, fmt.Errorf("%w: %d cells still pending", ErrVerification, rep.Stats.Pending()))
	}
	if rep.Stats.ReadersA+rep.Stats.ReadersB != 0 {
		errs = append(errs, fmt.Errorf("%w: reader counters not drained", ErrVerification))
	}
	if rep.Stats.Emits != uint64(rep.Emits) {
		errs = append(errs, fmt.Errorf("%w: signal counted %d emits, readers %d", ErrVerification, rep.Stats.Emits, rep.Emits))
	}
	if err := errors.Join(errs...); err != nil {
		return rep, err
	}

	log.WithFields(logrus.Fields{
		"duration":  rep.Duration,
		"emits":     rep.Emits,
		"connects":  rep.Connects,
		"reclaimed": rep.Reclaimed,
		"stats":     rep.Stats.String(),
	}).Info("stress run finished")
	return rep, nil
}
