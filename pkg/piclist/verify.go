package piclist

import (
	"go-piclist/pkg/customerrors"
	"go-piclist/util/logger"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	opPushFront = "push_front"
	opPushBack  = "push_back"
	opPopFront  = "pop_front"
	opPopBack   = "pop_back"
	opRemove    = "remove"
)

var (
	errNilUnit   = errors.Wrap(customerrors.ErrInvariantViolation, "piclist: nil unit")
	errLinked    = errors.Wrap(customerrors.ErrInvariantViolation, "piclist: unit already in list")
	errNotMember = errors.Wrap(customerrors.ErrInvariantViolation, "piclist: unit being removed was not in list")
)

// Validate walks l and returns an error wrapping
// customerrors.ErrInvariantViolation at the first broken link it finds.
func (l *List[T, K]) Validate() error {
	var zero T
	if l.count < 0 {
		return violationf("negative count %d", l.count)
	}
	if l.count == 0 {
		if l.head != zero || l.tail != zero {
			return violationf("empty list has a head or tail")
		}
		return nil
	}
	if l.head == zero || l.tail == zero {
		return violationf("list of %d units has no head or tail", l.count)
	}
	if l.head.Prev() != zero {
		return violationf("head %v has a backward link", l.head.OrderKey())
	}
	if l.tail.Next() != zero {
		return violationf("tail %v has a forward link", l.tail.OrderKey())
	}

	n := 0
	prev := zero
	for u := l.head; u != zero; u = u.Next() {
		if u.Prev() != prev {
			return violationf("unit %v at %d does not link back to its predecessor", u.OrderKey(), n)
		}
		n++
		if n > l.count {
			return violationf("walk exceeds count %d", l.count)
		}
		prev = u
	}
	if prev != l.tail {
		return violationf("walk from head ends at %v, not at tail %v", prev.OrderKey(), l.tail.OrderKey())
	}
	if n != l.count {
		return violationf("walked %d units, count is %d", n, l.count)
	}
	return nil
}

func (l *List[T, K]) checkDetached(op string, u T) {
	var zero T
	if u == zero {
		l.fail(op, u, errNilUnit)
	}
	if u.Next() != zero || u.Prev() != zero || u == l.head {
		l.fail(op, u, errLinked)
	}
}

func (l *List[T, K]) verified(op string) {
	if !l.verify {
		return
	}

	var zero T
	if err := l.Validate(); err != nil {
		l.fail(op, zero, err)
	}
}

// fail reports a detected violation and panics: a list found in an
// inconsistent state is not allowed to keep running.
func (l *List[T, K]) fail(op string, u T, err error) {
	var zero T
	fields := logrus.Fields{"op": op, "len": l.count}
	if u != zero {
		fields["key"] = u.OrderKey()
	}

	logger.L.WithFields(fields).Error(err)
	panic(err)
}

func violationf(format string, args ...interface{}) error {
	return errors.Wrapf(customerrors.ErrInvariantViolation, "piclist: "+format, args...)
}
