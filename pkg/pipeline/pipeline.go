// Package pipeline moves frames through the lists of a simplified encoder:
// lookahead (display order), encode queue (bitstream order), decoded picture
// buffer and free list. A Pipeline is not safe for concurrent use.
package pipeline

import (
	"go-piclist/config"
	"go-piclist/pkg/customerrors"
	"go-piclist/pkg/frame"
	"go-piclist/pkg/piclist"
	"go-piclist/util/helpers"
	"go-piclist/util/logger"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type frameList = piclist.List[*frame.Frame, int32]

// Packet describes one encoded frame in bitstream order.
type Packet struct {
	POC         int32
	Type        frame.SliceType
	EncodeOrder int64
	Refs        []int32
}

type Stats struct {
	Lookahead int
	Encode    int
	DPB       int
	Free      int
}

type Pipeline struct {
	cfg  *config.PipelineConfig
	pool *Pool

	lookahead *frameList
	encode    *frameList
	dpb       *frameList

	haveKeyframe bool
	lastKeyframe int32
	lastAnchor   int32
	havePushed   bool
	lastPushed   int32
	encoded      int64
	closed       bool
}

func New(cfg *config.PipelineConfig, verify bool) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid pipeline config")
	}

	opts := &piclist.Options{Verify: verify}
	return &Pipeline{
		cfg:        cfg,
		pool:       NewPool(opts),
		lookahead:  piclist.New[*frame.Frame, int32](opts),
		encode:     piclist.New[*frame.Frame, int32](opts),
		dpb:        piclist.New[*frame.Frame, int32](opts),
		lastAnchor: -1,
	}, nil
}

// Frame hands out a recycled frame for the picture with the given POC.
func (p *Pipeline) Frame(poc int32) *frame.Frame {
	return p.pool.Get(poc)
}

// Push queues f, which must be detached, in display order and returns the
// packets encoded as a result. POCs must strictly increase from push to
// push; a rejected frame stays with the caller.
func (p *Pipeline) Push(f *frame.Frame) ([]Packet, error) {
	if p.closed {
		return nil, customerrors.ErrClosed
	}
	if p.havePushed && f.POC <= p.lastPushed {
		return nil, errors.Wrapf(customerrors.ErrOutOfOrder, "poc %v pushed after %v", f.POC, p.lastPushed)
	}
	p.havePushed = true
	p.lastPushed = f.POC

	p.lookahead.PushBack(f)
	for p.lookahead.Len() > p.cfg.LookaheadDepth {
		p.decide()
	}
	return p.drain()
}

// Flush decides and encodes every queued frame, releases the reference
// buffer and closes the pipeline.
func (p *Pipeline) Flush() ([]Packet, error) {
	if p.closed {
		return nil, customerrors.ErrClosed
	}
	p.closed = true

	for !p.lookahead.Empty() {
		p.decide()
	}
	packets, err := p.drain()

	for f := p.dpb.PopFront(); f != nil; f = p.dpb.PopFront() {
		p.pool.Put(f)
	}
	return packets, err
}

func (p *Pipeline) Stats() Stats {
	return Stats{
		Lookahead: p.lookahead.Len(),
		Encode:    p.encode.Len(),
		DPB:       p.dpb.Len(),
		Free:      p.pool.Len(),
	}
}

func (p *Pipeline) keyframeDue(poc int32) bool {
	return !p.haveKeyframe || poc-p.lastKeyframe >= p.cfg.KeyframeInterval
}

// decide takes one mini-GOP off the lookahead and queues it in encode
// order: the anchor first, then the B frames before it.
func (p *Pipeline) decide() {
	first := p.lookahead.Front()
	if p.keyframeDue(first.POC) {
		p.lookahead.PopFront()
		p.queueAnchor(first, frame.I)
		return
	}

	size := helpers.Min(p.cfg.BFrames+1, p.lookahead.Len())
	anchorPOC, n := first.POC, 0
	p.lookahead.Each(false, func(f *frame.Frame) bool {
		// the B frames of a mini-GOP never straddle a keyframe
		if n > 0 && p.keyframeDue(f.POC) {
			return false
		}
		anchorPOC = f.POC
		n++
		return n < size
	})

	prevAnchor := p.lastAnchor
	anchor := p.lookahead.GetByOrderKey(anchorPOC)
	p.lookahead.Remove(anchor)
	p.queueAnchor(anchor, frame.P)

	for i := 1; i < n; i++ {
		b := p.lookahead.PopFront()
		b.Type = frame.B
		b.SetAnchors(prevAnchor, anchorPOC)
		p.encode.PushBack(b)
	}

	logger.L.WithFields(logrus.Fields{
		"stage":   "lookahead",
		"anchor":  anchorPOC,
		"bframes": n - 1,
	}).Debug("mini-GOP decided")
}

func (p *Pipeline) queueAnchor(f *frame.Frame, typ frame.SliceType) {
	f.Type = typ
	if typ == frame.I {
		p.haveKeyframe = true
		p.lastKeyframe = f.POC
	}
	p.lastAnchor = f.POC
	p.encode.PushBack(f)
}

// drain encodes the whole encode queue. After a failure the rest of the
// queue is dropped back into the pool.
func (p *Pipeline) drain() ([]Packet, error) {
	var packets []Packet
	for f := p.encode.PopFront(); f != nil; f = p.encode.PopFront() {
		pkt, err := p.encodeFrame(f)
		if err != nil {
			for f := p.encode.PopFront(); f != nil; f = p.encode.PopFront() {
				p.pool.Put(f)
			}
			return packets, err
		}
		packets = append(packets, pkt)
	}
	return packets, nil
}

func (p *Pipeline) encodeFrame(f *frame.Frame) (Packet, error) {
	switch f.Type {
	case frame.I:
		for r := p.dpb.PopFront(); r != nil; r = p.dpb.PopFront() {
			p.pool.Put(r)
		}
	case frame.P:
		ref := p.dpb.Back()
		if ref == nil {
			p.pool.Put(f)
			return Packet{}, errors.Wrapf(customerrors.ErrNotFound, "no reference for P frame %v", f.POC)
		}
		f.Refs = append(f.Refs, ref.POC)
	case frame.B:
		prev, next := f.Anchors()
		for _, poc := range []int32{prev, next} {
			if p.dpb.GetByOrderKey(poc) == nil {
				p.pool.Put(f)
				return Packet{}, errors.Wrapf(customerrors.ErrNotFound, "reference %v of B frame %v", poc, f.POC)
			}
			f.Refs = append(f.Refs, poc)
		}
	}

	f.EncodeOrder = p.encoded
	p.encoded++
	pkt := Packet{
		POC:         f.POC,
		Type:        f.Type,
		EncodeOrder: f.EncodeOrder,
		Refs:        append([]int32(nil), f.Refs...),
	}

	if f.IsReference() {
		p.dpb.PushBack(f)
		if p.dpb.Len() > p.cfg.MaxRefs {
			p.pool.Put(p.dpb.PopFront())
		}
	} else {
		p.pool.Put(f)
	}

	logger.L.WithFields(logrus.Fields{
		"stage": "encode",
		"poc":   pkt.POC,
		"type":  pkt.Type,
		"refs":  pkt.Refs,
	}).Debug("frame encoded")
	return pkt, nil
}
