// Package piclist implements an intrusive doubly-linked list of externally
// owned units (frames, in the encoder pipeline). Link fields live inside the
// units, so pushing and popping never allocate.
//
// A unit may be linked into at most one list at a time. The list holds
// non-owning references: the owner of a unit must not recycle it while it
// is linked. A List is not safe for concurrent use; callers serialize
// access to shared instances.
package piclist

import "golang.org/x/exp/constraints"

// List is an ordered list of units. The zero value is an empty list with
// verification turned off.
type List[T Unit[T, K], K constraints.Integer] struct {
	head   T
	tail   T
	count  int
	verify bool
}

func New[T Unit[T, K], K constraints.Integer](opts *Options) *List[T, K] {
	if opts == nil {
		opts = &DefaultOptions
	}

	return &List[T, K]{verify: opts.Verify}
}

// PushFront links u as the new head. u must not be linked into any list.
func (l *List[T, K]) PushFront(u T) {
	var zero T
	if l.verify {
		l.checkDetached(opPushFront, u)
	}

	u.SetNext(l.head)
	u.SetPrev(zero)

	if l.count > 0 {
		l.head.SetPrev(u)
	} else {
		l.tail = u
	}
	l.head = u
	l.count++

	l.verified(opPushFront)
}

// PushBack links u as the new tail. u must not be linked into any list.
func (l *List[T, K]) PushBack(u T) {
	var zero T
	if l.verify {
		l.checkDetached(opPushBack, u)
	}

	u.SetNext(zero)
	u.SetPrev(l.tail)

	if l.count > 0 {
		l.tail.SetNext(u)
	} else {
		l.head = u
	}
	l.tail = u
	l.count++

	l.verified(opPushBack)
}

// PopFront unlinks and returns the head, or the zero T if l is empty.
func (l *List[T, K]) PopFront() T {
	var zero T
	u := l.head
	if u == zero {
		return zero
	}

	l.count--
	if l.count > 0 {
		l.head = u.Next()
		l.head.SetPrev(zero)
	} else {
		l.head, l.tail = zero, zero
	}
	u.SetNext(zero)
	u.SetPrev(zero)

	l.verified(opPopFront)
	return u
}

// PopBack unlinks and returns the tail, or the zero T if l is empty.
func (l *List[T, K]) PopBack() T {
	var zero T
	u := l.tail
	if u == zero {
		return zero
	}

	l.count--
	if l.count > 0 {
		l.tail = u.Prev()
		l.tail.SetNext(zero)
	} else {
		l.head, l.tail = zero, zero
	}
	u.SetNext(zero)
	u.SetPrev(zero)

	l.verified(opPopBack)
	return u
}

// Remove splices u out of l in O(1). u must be a member of l; with
// verification on this is checked by walking the list.
func (l *List[T, K]) Remove(u T) {
	var zero T
	if l.verify && (u == zero || !l.contains(u)) {
		l.fail(opRemove, u, errNotMember)
	}

	l.count--
	if l.count > 0 {
		next, prev := u.Next(), u.Prev()
		if l.head == u {
			l.head = next
		}
		if l.tail == u {
			l.tail = prev
		}

		if next != zero {
			next.SetPrev(prev)
		}
		if prev != zero {
			prev.SetNext(next)
		}
	} else {
		l.head, l.tail = zero, zero
	}
	u.SetNext(zero)
	u.SetPrev(zero)

	l.verified(opRemove)
}

// GetByOrderKey returns the first unit, walking from the head, whose order
// key equals key, or the zero T. Keys are not assumed to be sorted.
func (l *List[T, K]) GetByOrderKey(key K) T {
	var zero T
	u := l.head
	for u != zero && u.OrderKey() != key {
		u = u.Next()
	}
	return u
}

// Front returns the head without unlinking it.
func (l *List[T, K]) Front() T { return l.head }

// Back returns the tail without unlinking it.
func (l *List[T, K]) Back() T { return l.tail }

func (l *List[T, K]) Len() int    { return l.count }
func (l *List[T, K]) Empty() bool { return l.count == 0 }

// Each calls fn for every unit head to tail (tail to head if desc) until
// fn returns false. fn must not mutate l.
func (l *List[T, K]) Each(desc bool, fn func(u T) bool) {
	var zero T
	if desc {
		for u := l.tail; u != zero; u = u.Prev() {
			if !fn(u) {
				return
			}
		}
	} else {
		for u := l.head; u != zero; u = u.Next() {
			if !fn(u) {
				return
			}
		}
	}
}

func (l *List[T, K]) contains(u T) bool {
	var zero T
	tmp := l.head
	for tmp != zero && tmp != u {
		tmp = tmp.Next()
	}
	return tmp == u
}
