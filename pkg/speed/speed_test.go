package speed

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrentComposition(t *testing.T) {
	m := NewModel(0.5, 2.5, []float64{1.0, 1.2, 0.9})
	require.InDelta(t, 0.5, m.Current(), 1e-12)

	m.SetVehicle(1)
	require.InDelta(t, 0.6, m.Current(), 1e-12)

	m.SetStreakMultiplier(1.5)
	require.InDelta(t, 0.9, m.Current(), 1e-12)

	m.SetBoost(true)
	require.InDelta(t, 2.25, m.Current(), 1e-12)
	require.Equal(t, 2.5, m.BoostRatio())

	m.SetBoost(false)
	require.InDelta(t, 0.9, m.Current(), 1e-12)
	require.Equal(t, 1.0, m.BoostRatio())
}

func TestBoostScalesMultipliedSpeed(t *testing.T) {
	// Boost applies on top of vehicle and streak multipliers, not on base.
	m := NewModel(1.0, 2.5, []float64{2.0})
	m.SetVehicle(0)
	m.SetStreakMultiplier(1.25)
	m.SetBoost(true)
	require.InDelta(t, 1.0*2.0*1.25*2.5, m.Current(), 1e-12)
}

func TestOutOfRangeVehicleDefaultsToOne(t *testing.T) {
	m := NewModel(0.5, 2.5, []float64{1.3})
	m.SetVehicle(7)
	require.InDelta(t, 0.5, m.Current(), 1e-12)
	m.SetVehicle(-1)
	require.InDelta(t, 0.5, m.Current(), 1e-12)
}

func TestPerFrame(t *testing.T) {
	m := NewModel(0.6, 2.5, nil)
	require.InDelta(t, 0.6, m.PerFrame(1.0), 1e-12)
	require.InDelta(t, 0.3, m.PerFrame(0.5), 1e-12)
	require.InDelta(t, 1.2, m.PerFrame(2.0), 1e-12)
}
