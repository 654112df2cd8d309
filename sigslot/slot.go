package sigslot

import (
	"reflect"
	"unsafe"
	"weak"
)

type slotKind uint8

const (
	kindFunc slotKind = iota + 1
	kindMethod
	kindFunctor
)

func (k slotKind) String() string {
	switch k {
	case kindFunc:
		return "func"
	case kindMethod:
		return "method"
	case kindFunctor:
		return "functor"
	default:
		return "empty"
	}
}

// slotKey identifies the target of a slot. target is always a weak pointer
// (or nil for plain functions) so keys stay comparable and never pin the
// receiver.
type slotKey struct {
	kind   slotKind
	code   uintptr
	target any
}

// Handler is implemented by functor targets.
type Handler[T any] interface {
	Handle(T)
}

// Slot is a type-erased callable target. Two slots are equal when they were
// built the same way from the same function and receiver.
type Slot[T any] struct {
	key    slotKey
	invoke func(T)
}

func newSlot[T any](kind slotKind, code uintptr, target any, invoke func(T)) Slot[T] {
	return Slot[T]{
		key:    slotKey{kind: kind, code: code, target: target},
		invoke: invoke,
	}
}

func codeOf(fn any) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

// closureOf returns the address of the closure object behind fn. Top level
// functions and literals that capture nothing use one static object, while
// each evaluation of a capturing literal allocates its own. The slot keeps fn
// reachable, so the address cannot be reused while it is connected.
func closureOf[F any](fn F) uintptr {
	return *(*uintptr)(unsafe.Pointer(&fn))
}

// Func wraps a plain function. Slots are equal when built from the same func
// value: a named function always matches itself, and two closures capturing
// variables are distinct targets even when created from one literal.
func Func[T any](fn func(T)) Slot[T] {
	if fn == nil {
		panic("sigslot: nil function")
	}
	return newSlot(kindFunc, closureOf(fn), nil, fn)
}

// Method binds a method expression such as (*Counter).Add to a receiver.
func Method[T any, C any](recv *C, method func(*C, T)) Slot[T] {
	if recv == nil || method == nil {
		panic("sigslot: nil receiver or method")
	}
	return newSlot(kindMethod, codeOf(method), weak.Make(recv), func(v T) {
		method(recv, v)
	})
}

// Functor wraps a pointer whose type implements Handler.
func Functor[T any, F any, PF interface {
	*F
	Handler[T]
}](f PF) Slot[T] {
	if f == nil {
		panic("sigslot: nil functor")
	}
	return newSlot(kindFunctor, 0, weak.Make((*F)(f)), f.Handle)
}

// WeakMethod is Method without a strong reference to recv. The returned
// Tracker expires once recv has been garbage collected; connect both with
// ConnectTracked.
func WeakMethod[T any, C any](recv *C, method func(*C, T)) (Slot[T], Tracker) {
	if recv == nil || method == nil {
		panic("sigslot: nil receiver or method")
	}
	wp := weak.Make(recv)
	s := newSlot(kindMethod, codeOf(method), wp, func(v T) {
		if p := wp.Value(); p != nil {
			method(p, v)
		}
	})
	return s, weakTracker[C]{wp: wp}
}

// WeakFunctor is Functor without a strong reference to f.
func WeakFunctor[T any, F any, PF interface {
	*F
	Handler[T]
}](f PF) (Slot[T], Tracker) {
	if f == nil {
		panic("sigslot: nil functor")
	}
	wp := weak.Make((*F)(f))
	s := newSlot(kindFunctor, 0, wp, func(v T) {
		if p := wp.Value(); p != nil {
			PF(p).Handle(v)
		}
	})
	return s, weakTracker[F]{wp: wp}
}

// Invoke calls the target. Invoking a zero Slot is a no-op.
func (s Slot[T]) Invoke(v T) {
	if s.invoke != nil {
		s.invoke(v)
	}
}

// Equal reports whether both slots address the same target.
func (s Slot[T]) Equal(other Slot[T]) bool {
	return s.key == other.key
}

func (s Slot[T]) IsZero() bool {
	return s.key.kind == 0
}

func (s Slot[T]) String() string {
	return s.key.kind.String()
}
