package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"sync"
	"sync/atomic"
	"time"

	"github.com/delaneyj/sigslot/sigslot"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	iterationsKey = "iterations"
	profileKey    = "cpuprofile"
)

var (
	slotCounts = []int{1, 10, 100, 1_000}
	emitters   = []int{1, 4, 16}
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure emit latency for the signal implementations",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  iterationsKey,
				Usage: "Emits measured per row",
				Value: 1_000,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile",
				Value: "default.pgo",
			},
		},
		Action: benchmark,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func benchmark(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	iters := int(cmd.Int(iterationsKey))
	log.Printf("warming up")
	benchmarkSignal(iters, false)

	benchmarkSignal(iters, true)
	benchmarkLite(iters, true)
	benchmarkContended(iters, true)
	benchmarkChurn(iters, true)
	return nil
}

type sink struct {
	total atomic.Int64
}

func (s *sink) Add(v int) {
	s.total.Add(int64(v))
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendRow(tbl table.Writer, name string, tach *tachymeter.Tachymeter) {
	calc := tach.Calc()
	tbl.AppendRows([]table.Row{
		{
			name,
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		},
	})
}

func benchmarkSignal(iters int, shouldRender bool) {
	tbl := newTable("Signal")

	for _, n := range slotCounts {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		sig := sigslot.New[int]()
		for i := 0; i < n; i++ {
			sig.Connect(sigslot.Method(&sink{}, (*sink).Add))
		}

		for i := 0; i < iters; i++ {
			start := time.Now()
			sig.Emit(i)
			tach.AddTime(time.Since(start))
		}
		appendRow(tbl, fmt.Sprintf("emit: %s slots", humanize.Comma(int64(n))), tach)
	}

	if shouldRender {
		tbl.Render()
	}
}

func benchmarkLite(iters int, shouldRender bool) {
	tbl := newTable("Lite")

	for _, n := range slotCounts {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		sig := sigslot.NewLite[int]()
		for i := 0; i < n; i++ {
			sig.Connect(sigslot.Method(&sink{}, (*sink).Add))
		}

		for i := 0; i < iters; i++ {
			start := time.Now()
			sig.Emit(i)
			tach.AddTime(time.Since(start))
		}
		appendRow(tbl, fmt.Sprintf("emit: %s slots", humanize.Comma(int64(n))), tach)
	}

	if shouldRender {
		tbl.Render()
	}
}

// benchmarkContended times emits from one goroutine while others emit on
// the same signal.
func benchmarkContended(iters int, shouldRender bool) {
	tbl := newTable("Signal, concurrent emitters")

	for _, e := range emitters {
		for _, n := range slotCounts[:3] {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			sig := sigslot.New[int]()
			for i := 0; i < n; i++ {
				sig.Connect(sigslot.Method(&sink{}, (*sink).Add))
			}

			var (
				wg   sync.WaitGroup
				stop atomic.Bool
			)
			for i := 1; i < e; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for !stop.Load() {
						sig.Emit(1)
					}
				}()
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				sig.Emit(i)
				tach.AddTime(time.Since(start))
			}
			stop.Store(true)
			wg.Wait()

			appendRow(tbl, fmt.Sprintf("emit: %d emitters * %s slots", e, humanize.Comma(int64(n))), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

// benchmarkChurn times connect plus disconnect pairs while emitters run.
func benchmarkChurn(iters int, shouldRender bool) {
	tbl := newTable("Signal, connect/disconnect under emit")

	for _, e := range emitters {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		sig := sigslot.New[int]()
		for i := 0; i < 10; i++ {
			sig.Connect(sigslot.Method(&sink{}, (*sink).Add))
		}

		var (
			wg   sync.WaitGroup
			stop atomic.Bool
		)
		for i := 0; i < e; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for !stop.Load() {
					sig.Emit(1)
				}
			}()
		}

		target := &sink{}
		slot := sigslot.Method(target, (*sink).Add)
		for i := 0; i < iters; i++ {
			start := time.Now()
			sig.Connect(slot)
			sig.Disconnect(slot)
			tach.AddTime(time.Since(start))
		}
		stop.Store(true)
		wg.Wait()

		st := sig.Stats()
		appendRow(tbl, fmt.Sprintf("churn: %d emitters, %s cells", e, humanize.Comma(int64(st.Cells))), tach)
	}

	if shouldRender {
		tbl.Render()
	}
}
