package pipeline

import (
	"testing"

	"go-piclist/config"
	"go-piclist/pkg/customerrors"
	"go-piclist/pkg/frame"

	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T, cfg *config.PipelineConfig) *Pipeline {
	t.Helper()
	p, err := New(cfg, true)
	require.NoError(t, err)
	return p
}

// run pushes frames 0..n-1 and flushes, checking the buffer bounds on the way.
func run(t *testing.T, p *Pipeline, n int) []Packet {
	t.Helper()
	packets := []Packet{}
	for i := 0; i < n; i++ {
		out, err := p.Push(p.Frame(int32(i)))
		require.NoError(t, err)
		packets = append(packets, out...)

		stats := p.Stats()
		require.LessOrEqual(t, stats.DPB, p.cfg.MaxRefs)
		require.LessOrEqual(t, stats.Lookahead, p.cfg.LookaheadDepth)
		require.Zero(t, stats.Encode)
	}

	out, err := p.Flush()
	require.NoError(t, err)
	return append(packets, out...)
}

func requireValidStream(t *testing.T, packets []Packet, n int) {
	t.Helper()
	require.Len(t, packets, n)

	emitted := map[int32]frame.SliceType{}
	for i, pkt := range packets {
		require.Equal(t, int64(i), pkt.EncodeOrder)
		_, dup := emitted[pkt.POC]
		require.False(t, dup, "poc %v emitted twice", pkt.POC)

		for _, ref := range pkt.Refs {
			typ, ok := emitted[ref]
			require.True(t, ok, "poc %v references %v before it was emitted", pkt.POC, ref)
			require.NotEqual(t, frame.B, typ)
		}
		switch pkt.Type {
		case frame.I:
			require.Empty(t, pkt.Refs)
		case frame.P:
			require.Len(t, pkt.Refs, 1)
		case frame.B:
			require.Len(t, pkt.Refs, 2)
		default:
			t.Fatalf("poc %v left undecided", pkt.POC)
		}
		emitted[pkt.POC] = pkt.Type
	}
}

func TestEncodeOrder(t *testing.T) {
	p := newTestPipeline(t, config.NewPipelineConfig())
	packets := run(t, p, 13)
	requireValidStream(t, packets, 13)

	order := []int32{}
	types := ""
	for _, pkt := range packets {
		order = append(order, pkt.POC)
		types += pkt.Type.String()
	}
	require.Equal(t, []int32{0, 4, 1, 2, 3, 8, 5, 6, 7, 12, 9, 10, 11}, order)
	require.Equal(t, "IPBBBPBBBPBBB", types)

	require.Equal(t, []int32{0}, packets[1].Refs)
	require.Equal(t, []int32{0, 4}, packets[2].Refs)
	require.Equal(t, []int32{4, 8}, packets[6].Refs)
}

func TestKeyframeInterval(t *testing.T) {
	cfg := config.NewPipelineConfig()
	cfg.KeyframeInterval = 10
	p := newTestPipeline(t, cfg)

	packets := run(t, p, 35)
	requireValidStream(t, packets, 35)

	keyframes := []int32{}
	for _, pkt := range packets {
		if pkt.Type == frame.I {
			keyframes = append(keyframes, pkt.POC)
		}
	}
	require.Equal(t, []int32{0, 10, 20, 30}, keyframes)
}

func TestNoBFrames(t *testing.T) {
	cfg := config.NewPipelineConfig()
	cfg.BFrames = 0
	cfg.LookaheadDepth = 1
	p := newTestPipeline(t, cfg)

	packets := run(t, p, 20)
	requireValidStream(t, packets, 20)
	for i, pkt := range packets {
		require.Equal(t, int32(i), pkt.POC)
	}
}

func TestFramesReturnToPool(t *testing.T) {
	p := newTestPipeline(t, config.NewPipelineConfig())
	packets := run(t, p, 200)
	requireValidStream(t, packets, 200)

	stats := p.Stats()
	require.Zero(t, stats.Lookahead)
	require.Zero(t, stats.Encode)
	require.Zero(t, stats.DPB)
	require.Equal(t, p.pool.Allocated(), stats.Free)
	require.Less(t, p.pool.Allocated(), 200)
}

func TestPushAfterFlush(t *testing.T) {
	p := newTestPipeline(t, config.NewPipelineConfig())
	_, err := p.Flush()
	require.NoError(t, err)

	_, err = p.Push(frame.New(0))
	require.ErrorIs(t, err, customerrors.ErrClosed)
	_, err = p.Flush()
	require.ErrorIs(t, err, customerrors.ErrClosed)
}

func TestMissingReference(t *testing.T) {
	p := newTestPipeline(t, config.NewPipelineConfig())
	p.cfg.MaxRefs = 1

	var err error
	for i := 0; i < 10 && err == nil; i++ {
		_, err = p.Push(p.Frame(int32(i)))
	}
	require.ErrorIs(t, err, customerrors.ErrNotFound)
	require.Zero(t, p.Stats().Encode)
}

func TestFailedFlushReleasesFrames(t *testing.T) {
	p := newTestPipeline(t, config.NewPipelineConfig())
	p.cfg.MaxRefs = 1

	for i := 0; i < 4; i++ {
		_, err := p.Push(p.Frame(int32(i)))
		require.NoError(t, err)
	}

	_, err := p.Flush()
	require.ErrorIs(t, err, customerrors.ErrNotFound)

	stats := p.Stats()
	require.Zero(t, stats.Lookahead)
	require.Zero(t, stats.Encode)
	require.Zero(t, stats.DPB)
	require.Equal(t, p.pool.Allocated(), stats.Free)
}

func TestOutOfOrderPOC(t *testing.T) {
	p := newTestPipeline(t, config.NewPipelineConfig())

	packets := []Packet{}
	for _, poc := range []int32{0, 1, 2, 3} {
		out, err := p.Push(p.Frame(poc))
		require.NoError(t, err)
		packets = append(packets, out...)
	}

	for _, poc := range []int32{2, 3} {
		f := frame.New(poc)
		_, err := p.Push(f)
		require.ErrorIs(t, err, customerrors.ErrOutOfOrder)
		require.Nil(t, f.Next())
		require.Nil(t, f.Prev())
	}
	require.Equal(t, 4, p.Stats().Lookahead)

	for poc := int32(4); poc < 20; poc++ {
		out, err := p.Push(p.Frame(poc))
		require.NoError(t, err)
		packets = append(packets, out...)
	}
	out, err := p.Flush()
	require.NoError(t, err)
	requireValidStream(t, append(packets, out...), 20)
}

func TestInvalidConfig(t *testing.T) {
	cfg := config.NewPipelineConfig()
	cfg.MaxRefs = 1
	_, err := New(cfg, false)
	require.Error(t, err)
}

func TestPool(t *testing.T) {
	pool := NewPool(nil)

	f := pool.Get(3)
	require.Equal(t, int32(3), f.POC)
	require.Equal(t, 1, pool.Allocated())

	f.Type = frame.P
	pool.Put(f)
	require.Equal(t, 1, pool.Len())

	g := pool.Get(7)
	require.Same(t, f, g)
	require.Equal(t, int32(7), g.POC)
	require.Equal(t, frame.Auto, g.Type)
	require.Equal(t, 1, pool.Allocated())
	require.Zero(t, pool.Len())
}
