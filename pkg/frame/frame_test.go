package frame

import (
	"fmt"
	"testing"

	"go-piclist/pkg/piclist"

	"github.com/stretchr/testify/require"
)

func TestReset(t *testing.T) {
	f := New(4)
	f.Type = B
	f.Refs = append(f.Refs, 0, 8)
	f.EncodeOrder = 3
	f.SetAnchors(0, 8)

	f.Reset(12)
	require.Equal(t, int32(12), f.POC)
	require.Equal(t, Auto, f.Type)
	require.Empty(t, f.Refs)
	require.Equal(t, int64(-1), f.EncodeOrder)

	prev, next := f.Anchors()
	require.Equal(t, int32(-1), prev)
	require.Equal(t, int32(-1), next)
}

func TestSliceType(t *testing.T) {
	require.Equal(t, "I", I.String())
	require.Equal(t, "P", P.String())
	require.Equal(t, "B", B.String())
	require.Equal(t, "auto", Auto.String())

	f := New(0)
	f.Type = I
	require.True(t, f.Keyframe())
	require.True(t, f.IsReference())
	f.Type = B
	require.False(t, f.IsReference())
}

func TestFormat(t *testing.T) {
	f := New(5)
	f.Type = P
	require.Equal(t, "{poc:'5', type:'P'}", fmt.Sprintf("%v", f))
}

func TestFrameIsListUnit(t *testing.T) {
	l := piclist.New[*Frame, int32](&piclist.Options{Verify: true})
	frames := []*Frame{New(0), New(2), New(1)}
	for _, f := range frames {
		l.PushBack(f)
	}

	require.Same(t, frames[2], l.GetByOrderKey(1))
	l.Remove(frames[1])
	require.Same(t, frames[2], frames[0].Next())
	require.Same(t, frames[0], l.PopFront())
	require.Same(t, frames[2], l.PopFront())
	require.True(t, l.Empty())
}
