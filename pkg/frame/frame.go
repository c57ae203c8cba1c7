// Package frame defines the picture unit that moves between the pipeline
// lists. Pixel storage and encoder state are not modeled.
package frame

import (
	"fmt"

	"go-piclist/pkg/piclist"
)

type SliceType uint8

const (
	Auto SliceType = iota // not decided yet
	I
	P
	B
)

func (t SliceType) String() string {
	switch t {
	case I:
		return "I"
	case P:
		return "P"
	case B:
		return "B"
	default:
		return "auto"
	}
}

type Frame struct {
	piclist.Entry[*Frame]

	POC         int32
	Type        SliceType
	Refs        []int32
	EncodeOrder int64

	// POCs of the anchors a B frame sits between, set by the lookahead.
	prevAnchor int32
	nextAnchor int32
}

func New(poc int32) *Frame {
	f := &Frame{}
	f.Reset(poc)
	return f
}

func (f *Frame) OrderKey() int32 { return f.POC }

// Reset clears the picture state for reuse. Links are left alone: a frame
// is only reset after it has been unlinked.
func (f *Frame) Reset(poc int32) {
	f.POC = poc
	f.Type = Auto
	f.Refs = f.Refs[:0]
	f.EncodeOrder = -1
	f.prevAnchor = -1
	f.nextAnchor = -1
}

func (f *Frame) Keyframe() bool    { return f.Type == I }
func (f *Frame) IsReference() bool { return f.Type == I || f.Type == P }

// SetAnchors records the display-order neighbours a B frame predicts from.
func (f *Frame) SetAnchors(prev, next int32) {
	f.prevAnchor = prev
	f.nextAnchor = next
}

func (f *Frame) Anchors() (prev, next int32) {
	return f.prevAnchor, f.nextAnchor
}

func (f *Frame) Format(s fmt.State, c rune) {
	s.Write([]byte(fmt.Sprintf("{poc:'%v', type:'%v'}", f.POC, f.Type)))
}
