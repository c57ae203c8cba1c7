package piclist

import "golang.org/x/exp/constraints"

// Unit is the capability contract a type must satisfy to be linked into a
// List. The list reads and writes the two link slots and reads the order
// key; it never touches anything else in the unit.
//
// T is the unit type itself (usually a pointer to a struct embedding
// Entry[T]); its zero value means "no unit".
type Unit[T any, K constraints.Integer] interface {
	comparable
	Next() T
	Prev() T
	SetNext(T)
	SetPrev(T)
	OrderKey() K
}

// Entry holds the link slots of a unit. Embed it in a struct to satisfy
// the link half of Unit:
//
//	type Frame struct {
//		piclist.Entry[*Frame]
//		POC int32
//	}
//
//	func (f *Frame) OrderKey() int32 { return f.POC }
type Entry[T any] struct {
	next T
	prev T
}

// Next returns the unit that follows e in its list.
func (e *Entry[T]) Next() T { return e.next }

// Prev returns the unit that precedes e in its list.
func (e *Entry[T]) Prev() T { return e.prev }

func (e *Entry[T]) SetNext(u T) { e.next = u }
func (e *Entry[T]) SetPrev(u T) { e.prev = u }
