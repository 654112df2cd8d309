// Package sigslot implements signals and slots: a Signal holds an ordered
// set of callbacks and Emit calls each of them with the emitted value.
//
// Signal is safe for concurrent use. Connections live in a pooled block
// allocator and are reclaimed with two reader stages, so emitting never
// blocks on connect or disconnect. Lite is the single goroutine variant.
//
//	sig := sigslot.New[int]()
//	sig.Connect(sigslot.Func(func(v int) { fmt.Println(v) }))
//	sig.Emit(42)
//
// Slots compare by kind, function and receiver, so the same function or
// method connects at most once per signal. Connections can be tied to an
// owner with ConnectTracked; once the owner's Tracker reports it gone the
// connection is dropped on the next Emit.
package sigslot
