package track

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/clock"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/speed"
)

func TestInitialTiling(t *testing.T) {
	p := NewPool(8, 12, 10)
	require.Equal(t, 8, p.Len())
	require.Equal(t, 96.0, p.Span())

	// Members tile backward from the reposition plane at even spacing.
	for i := 0; i < p.Len(); i++ {
		require.InDelta(t, 10-12*float64(i+1), p.Z(i), 1e-12)
	}
}

func TestWrapSubtractsSpan(t *testing.T) {
	p := NewPool(4, 10, 5)
	var wrapped []int
	p.OnWrap(func(i int) { wrapped = append(wrapped, i) })

	// Front member sits at -5; advancing 11 pushes it past the plane.
	p.Advance(11)
	require.Equal(t, []int{0}, wrapped)
	require.InDelta(t, -34.0, p.Z(0), 1e-12)
}

func TestSpacingStableOverManyLaps(t *testing.T) {
	const frames = 10000
	p := NewPool(8, 12, 10)
	rng := rand.New(rand.NewSource(42))

	for f := 0; f < frames; f++ {
		// Speeds vary frame to frame, as they do with boost and streaks.
		p.Advance(0.2 + rng.Float64()*2.0)

		for i := 0; i < p.Len(); i++ {
			// Every member stays within one loop window of the camera.
			require.Greater(t, p.Z(i), p.reposition-p.Span())
			require.LessOrEqual(t, p.Z(i), p.reposition)

			// Adjacent spacing, taken modulo the span, never drifts.
			gap := math.Mod(p.Z(i)-p.Z((i+1)%p.Len()), p.Span())
			if gap < 0 {
				gap += p.Span()
			}
			require.InDelta(t, p.Spacing(), gap, 1e-9)
		}
	}
}

func TestFrameRateIndependence(t *testing.T) {
	// N frames at 60fps must advance the same distance as 2N frames at
	// 120fps over the same elapsed time.
	run := func(dt time.Duration, frames int) float64 {
		c := clock.New()
		m := speed.NewModel(0.55, 2.5, nil)
		p := NewPool(8, 12, 10)
		start := p.Z(3)
		wraps := 0
		p.OnWrap(func(i int) {
			if i == 3 {
				wraps++
			}
		})

		now := time.Now()
		c.Tick(now)
		for i := 0; i < frames; i++ {
			now = now.Add(dt)
			frame, ok := c.Tick(now)
			require.True(t, ok)
			p.Advance(m.PerFrame(frame.Factor))
		}
		return p.Z(3) - start + float64(wraps)*p.Span()
	}

	coarse := run(16670*time.Microsecond, 600)
	fine := run(8335*time.Microsecond, 1200)
	require.InDelta(t, coarse, fine, 1e-6)
}
