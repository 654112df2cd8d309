package sigslot_test

import (
	"testing"

	"github.com/delaneyj/sigslot/sigslot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteScenario(t *testing.T) {
	calls = nil
	sig := sigslot.NewLite[int](sigslot.WithCapacity(1))

	require.True(t, sig.Connect(sigslot.Func(f)))
	require.True(t, sig.Connect(sigslot.Func(g)))
	assert.False(t, sig.Connect(sigslot.Func(g)))

	sig.Emit(5)
	assert.Equal(t, []string{"f(5)", "g(5)"}, calls)

	require.True(t, sig.Disconnect(sigslot.Func(f)))
	assert.False(t, sig.Disconnect(sigslot.Func(f)))
	calls = nil
	sig.Emit(7)
	assert.Equal(t, []string{"g(7)"}, calls)
	assert.Equal(t, 1, sig.Size())
	assert.False(t, sig.Connected(sigslot.Func(f)))
	assert.True(t, sig.Connected(sigslot.Func(g)))
}

func TestLiteBlockAndDisconnectAll(t *testing.T) {
	calls = nil
	sig := sigslot.NewLite[int]()
	sig.Connect(sigslot.Func(f))
	sig.Connect(sigslot.Func(h))

	sig.Block(true)
	assert.True(t, sig.Blocked())
	sig.Emit(1)
	assert.Empty(t, calls)
	sig.Block(false)

	sig.DisconnectAll()
	assert.True(t, sig.Empty())
	sig.Emit(2)
	assert.Empty(t, calls)

	assert.True(t, sig.Connect(sigslot.Func(h)))
	sig.Emit(3)
	assert.Equal(t, []string{"h(3)"}, calls)
}

func TestLiteSlotsMutateDuringEmit(t *testing.T) {
	sig := sigslot.NewLite[int](sigslot.WithCapacity(1))
	a := &recorder{name: "a"}
	b := &recorder{name: "b"}
	late := &recorder{name: "late"}
	later := &recorder{name: "later"}

	var self sigslot.Slot[int]
	self = sigslot.Func(func(int) {
		sig.Disconnect(self)
		sig.Disconnect(sigslot.Method(a, (*recorder).Record))
		// the second connect grows the pool while the emit is walking it
		sig.Connect(sigslot.Method(late, (*recorder).Record))
		sig.Connect(sigslot.Method(later, (*recorder).Record))
	})
	sig.Connect(self)
	sig.Connect(sigslot.Method(a, (*recorder).Record))
	sig.Connect(sigslot.Method(b, (*recorder).Record))

	sig.Emit(1)
	assert.Empty(t, a.got)
	assert.Equal(t, []int{1}, b.got)
	assert.Equal(t, []int{1}, late.got)
	assert.Equal(t, []int{1}, later.got)
	assert.Equal(t, 3, sig.Size())

	sig.Emit(2)
	assert.Equal(t, []int{1, 2}, b.got)
	assert.Equal(t, []int{1, 2}, late.got)
	assert.Equal(t, []int{1, 2}, later.got)
}

func TestLiteTrackedExpiry(t *testing.T) {
	calls = nil
	sig := sigslot.NewLite[int]()
	owner := sigslot.NewLifetime()
	sig.ConnectTracked(sigslot.Func(f), owner)
	sig.Connect(sigslot.Func(g))

	owner.End()
	sig.Emit(1)
	assert.Equal(t, []string{"g(1)"}, calls)
	assert.False(t, sig.Connected(sigslot.Func(f)))
}

func TestLitePanicHandler(t *testing.T) {
	calls = nil
	var recovered []any
	sig := sigslot.NewLite[int](sigslot.WithPanicHandler(func(r any) {
		recovered = append(recovered, r)
	}))
	sig.Connect(sigslot.Func(func(int) { panic("lite") }))
	sig.Connect(sigslot.Func(g))

	sig.Emit(4)
	assert.Equal(t, []string{"g(4)"}, calls)
	assert.Equal(t, []any{"lite"}, recovered)
}

func TestLiteDisconnectAllFromSlot(t *testing.T) {
	sig := sigslot.NewLite[int]()
	a := &recorder{name: "a"}

	sig.Connect(sigslot.Func(func(int) { sig.DisconnectAll() }))
	sig.Connect(sigslot.Method(a, (*recorder).Record))

	sig.Emit(1)
	assert.Empty(t, a.got)
	assert.True(t, sig.Empty())
}
