package effects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestSystem(seed int64) *System {
	return NewSystem(64, 5, 10, 0.35, 900*time.Millisecond, seed)
}

func TestActivationBurst(t *testing.T) {
	now := time.Now()
	for seed := int64(0); seed < 10; seed++ {
		s := newTestSystem(seed)
		require.True(t, s.ActivateBoost(now, 0, 0, 0))
		live := s.Live()
		require.GreaterOrEqual(t, live, 5)
		require.LessOrEqual(t, live, 10)
	}
}

func TestActivateWhileActiveIsNoOp(t *testing.T) {
	now := time.Now()
	s := newTestSystem(1)
	require.True(t, s.ActivateBoost(now, 0, 0, 0))
	live := s.Live()
	require.False(t, s.ActivateBoost(now, 0, 0, 0))
	require.Equal(t, live, s.Live())
}

func TestBoostEndsOnlyByDeactivate(t *testing.T) {
	now := time.Now()
	s := newTestSystem(1)
	s.ActivateBoost(now, 0, 0, 0)

	// Time passing and updates never end the boost by themselves.
	for i := 0; i < 200; i++ {
		now = now.Add(16 * time.Millisecond)
		s.Update(now, 1.0, 2.5, 0, 0, 0)
	}
	require.True(t, s.BoostActive())

	s.DeactivateBoost()
	require.False(t, s.BoostActive())
}

func TestParticleLifecycle(t *testing.T) {
	now := time.Now()
	s := newTestSystem(7)
	s.ActivateBoost(now, 0, 0, 0)
	s.DeactivateBoost() // freeze emission so only the burst ages out
	require.Positive(t, s.Live())

	// Mid-life: faded but alive, grown past its spawn scale.
	s.Update(now.Add(450*time.Millisecond), 1.0, 1.0, 0, 0, 0)
	s.Each(func(p *Particle) {
		require.Less(t, p.Opacity, 0.9)
		require.Greater(t, p.Opacity, 0.0)
		require.Greater(t, p.Scale, 1.0)
	})

	// Past the lifespan every particle is freed.
	s.Update(now.Add(time.Second), 1.0, 1.0, 0, 0, 0)
	require.Zero(t, s.Live())
}

func TestTrickleWhileBoosting(t *testing.T) {
	now := time.Now()
	s := newTestSystem(3)
	s.ActivateBoost(now, 0, 0, 0)
	burst := s.Live()

	// With a 2.5x boost the per-frame trickle probability is comfortably
	// nonzero; across 120 frames at least one extra particle must appear
	// before the burst expires.
	emitted := false
	for i := 0; i < 30; i++ {
		now = now.Add(16 * time.Millisecond)
		s.Update(now, 1.0, 2.5, 0, 0, 0)
		if s.Live() > burst {
			emitted = true
			break
		}
	}
	require.True(t, emitted)
}

func TestPoolExhaustionDropsSilently(t *testing.T) {
	now := time.Now()
	s := NewSystem(4, 5, 10, 0.35, 900*time.Millisecond, 1)
	s.ActivateBoost(now, 0, 0, 0)
	// Burst wanted 5..10 particles but only 4 slots exist.
	require.Equal(t, 4, s.Live())
}
