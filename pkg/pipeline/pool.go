package pipeline

import (
	"go-piclist/pkg/frame"
	"go-piclist/pkg/piclist"
)

// Pool recycles frames through a free list so that steady-state encoding
// does not allocate.
type Pool struct {
	free      *piclist.List[*frame.Frame, int32]
	allocated int
}

func NewPool(opts *piclist.Options) *Pool {
	return &Pool{free: piclist.New[*frame.Frame, int32](opts)}
}

// Get returns a detached frame reset to poc, reusing a free one if any.
func (p *Pool) Get(poc int32) *frame.Frame {
	f := p.free.PopFront()
	if f == nil {
		p.allocated++
		return frame.New(poc)
	}

	f.Reset(poc)
	return f
}

// Put returns a detached frame to the pool.
func (p *Pool) Put(f *frame.Frame) {
	p.free.PushBack(f)
}

func (p *Pool) Len() int       { return p.free.Len() }
func (p *Pool) Allocated() int { return p.allocated }
