// Package speed derives the single authoritative forward speed each frame
// from the base value, the selected vehicle's multiplier, the streak
// multiplier and the boost state.
package speed

// Model computes the current non-frame-scaled speed. The product is cached
// and recomputed only when an input changes; the per-frame factor is applied
// on top each frame. Recomputing from scratch every frame would reintroduce
// rounding drift for no benefit.
type Model struct {
	base        float64
	multipliers []float64
	vehicle     int
	streak      float64
	boostActive bool
	boostFactor float64

	current float64
}

// NewModel returns a model at streak multiplier 1 with boost off.
// multipliers is the per-vehicle lookup table; indexes outside it fall back
// to 1.0.
func NewModel(base, boostFactor float64, multipliers []float64) *Model {
	m := &Model{
		base:        base,
		multipliers: multipliers,
		streak:      1.0,
		boostFactor: boostFactor,
	}
	m.recompute()
	return m
}

func (m *Model) recompute() {
	vm := 1.0
	if m.vehicle >= 0 && m.vehicle < len(m.multipliers) {
		vm = m.multipliers[m.vehicle]
	}
	m.current = m.base * vm * m.streak
	if m.boostActive {
		// Boost multiplies the already-multiplied speed so it scales
		// correctly across vehicles and streaks.
		m.current *= m.boostFactor
	}
}

// SetVehicle selects the vehicle multiplier by index.
func (m *Model) SetVehicle(index int) {
	if m.vehicle == index {
		return
	}
	m.vehicle = index
	m.recompute()
}

// SetStreakMultiplier applies the externally computed streak multiplier.
func (m *Model) SetStreakMultiplier(mult float64) {
	if m.streak == mult {
		return
	}
	m.streak = mult
	m.recompute()
}

// SetBoost toggles the boost multiplier.
func (m *Model) SetBoost(active bool) {
	if m.boostActive == active {
		return
	}
	m.boostActive = active
	m.recompute()
}

// BoostActive reports whether boost is applied.
func (m *Model) BoostActive() bool {
	return m.boostActive
}

// BoostRatio is the ratio of the current speed to the unboosted speed: the
// boost factor while boost is active, otherwise 1.
func (m *Model) BoostRatio() float64 {
	if m.boostActive {
		return m.boostFactor
	}
	return 1.0
}

// Current returns the non-frame-scaled speed.
func (m *Model) Current() float64 {
	return m.current
}

// PerFrame returns the world-advance distance for a frame with the given
// frame-rate-independence factor.
func (m *Model) PerFrame(factor float64) float64 {
	return m.current * factor
}
