package sigslot_test

import (
	"fmt"
	"testing"

	"github.com/delaneyj/sigslot/sigslot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoreboard struct {
	lines []string
}

func (s *scoreboard) Score(team string, points int) {
	s.lines = append(s.lines, fmt.Sprintf("%s+%d", team, points))
}

func (s *scoreboard) Reset() {
	s.lines = append(s.lines, "reset")
}

func (s *scoreboard) Move(x, y, z float64) {
	s.lines = append(s.lines, fmt.Sprintf("%.0f,%.0f,%.0f", x, y, z))
}

func TestSignal2(t *testing.T) {
	board := &scoreboard{}
	var total int
	sig := sigslot.New2[string, int]()

	require.True(t, sig.Connect(sigslot.Method2(board, (*scoreboard).Score)))
	require.True(t, sig.Connect(sigslot.Func2(func(_ string, points int) { total += points })))
	assert.False(t, sig.Connect(sigslot.Method2(board, (*scoreboard).Score)))

	sig.Emit("red", 3)
	sig.Emit("blue", 2)
	assert.Equal(t, []string{"red+3", "blue+2"}, board.lines)
	assert.Equal(t, 5, total)

	assert.True(t, sig.Disconnect(sigslot.Method2(board, (*scoreboard).Score)))
	sig.Emit("red", 1)
	assert.Len(t, board.lines, 2)
	assert.Equal(t, 6, total)
}

func TestSignal0(t *testing.T) {
	board := &scoreboard{}
	sig := sigslot.New0()
	sig.Connect(sigslot.Method0(board, (*scoreboard).Reset))

	sig.Emit()
	sig.Block(true)
	sig.Emit()
	assert.Equal(t, []string{"reset"}, board.lines)
	assert.True(t, sig.Connected(sigslot.Method0(board, (*scoreboard).Reset)))
}

func TestSignal3(t *testing.T) {
	board := &scoreboard{}
	sig := sigslot.New3[float64, float64, float64](sigslot.WithCapacity(1))
	sig.Connect(sigslot.Method3(board, (*scoreboard).Move))

	sig.Emit(1, 2, 3)
	assert.Equal(t, []string{"1,2,3"}, board.lines)
	assert.Equal(t, 1, sig.Size())
}

func TestFunc2DistinctClosures(t *testing.T) {
	sig := sigslot.New2[string, int]()
	totals := map[string]int{}
	for _, team := range []string{"red", "blue"} {
		require.True(t, sig.Connect(sigslot.Func2(func(name string, points int) {
			if name == team {
				totals[team] += points
			}
		})))
	}
	assert.Equal(t, 2, sig.Size())

	sig.Emit("red", 3)
	sig.Emit("blue", 2)
	assert.Equal(t, map[string]int{"red": 3, "blue": 2}, totals)
}
