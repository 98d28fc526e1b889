// Package effects implements the cosmetic boost trail: a fixed pool of
// short-lived particles emitted behind the vehicle, with age-based fade and
// growth. Boost state itself lives here; the speed model only mirrors it.
package effects

import (
	"math/rand"
	"time"
)

// Particle is one live trail particle. Fields are plain data so the renderer
// can read them without indirection.
type Particle struct {
	X, Y, Z    float64
	VX, VY, VZ float64
	Scale      float64
	Opacity    float64

	born     time.Time
	lifespan time.Duration
	active   bool
}

const baseOpacity = 0.9

// System owns the particle pool and the boost flag. Activation is
// player-driven; deactivation only ever comes from the sign trigger
// resolver, so a boost is a commitment until the next question.
type System struct {
	particles []Particle
	free      []int
	rng       *rand.Rand

	boostActive bool

	burstMin, burstMax int
	trickleScale       float64
	lifespan           time.Duration
}

// NewSystem builds a pool of maxParticles slots.
func NewSystem(maxParticles, burstMin, burstMax int, trickleScale float64, lifespan time.Duration, seed int64) *System {
	s := &System{
		particles:    make([]Particle, maxParticles),
		free:         make([]int, 0, maxParticles),
		rng:          rand.New(rand.NewSource(seed)),
		burstMin:     burstMin,
		burstMax:     burstMax,
		trickleScale: trickleScale,
		lifespan:     lifespan,
	}
	for i := maxParticles - 1; i >= 0; i-- {
		s.free = append(s.free, i)
	}
	return s
}

// ActivateBoost starts a boost if one is not already running, emitting the
// activation burst behind (x, y, z). Returns whether activation happened.
func (s *System) ActivateBoost(now time.Time, x, y, z float64) bool {
	if s.boostActive {
		return false
	}
	s.boostActive = true
	n := s.burstMin + s.rng.Intn(s.burstMax-s.burstMin+1)
	for i := 0; i < n; i++ {
		s.emit(now, x, y, z)
	}
	return true
}

// DeactivateBoost ends the boost. Only the trigger resolver calls this;
// there is deliberately no key-release path.
func (s *System) DeactivateBoost() {
	s.boostActive = false
}

// BoostActive reports the boost state.
func (s *System) BoostActive() bool {
	return s.boostActive
}

// emit claims a free slot for a new particle with randomized offset and an
// upward/backward-biased velocity. A full pool drops the particle silently.
func (s *System) emit(now time.Time, x, y, z float64) {
	if len(s.free) == 0 {
		return
	}
	i := s.free[len(s.free)-1]
	s.free = s.free[:len(s.free)-1]

	p := &s.particles[i]
	p.X = x + (s.rng.Float64()-0.5)*0.6
	p.Y = y + (s.rng.Float64()-0.5)*0.3
	p.Z = z + s.rng.Float64()*0.4
	p.VX = (s.rng.Float64() - 0.5) * 0.02
	p.VY = 0.01 + s.rng.Float64()*0.03
	p.VZ = 0.04 + s.rng.Float64()*0.06
	p.Scale = 1.0
	p.Opacity = baseOpacity
	p.born = now
	p.lifespan = s.lifespan
	p.active = true
}

// Update ages every particle and, while boost is active, probabilistically
// emits the sustained trickle. boostRatio is current speed over unboosted
// speed; the trickle rate scales with how much faster the boost is.
func (s *System) Update(now time.Time, factor, boostRatio float64, x, y, z float64) {
	if s.boostActive && boostRatio > 1 {
		p := s.trickleScale * (boostRatio - 1) * factor
		if p > 1 {
			p = 1
		}
		if s.rng.Float64() < p {
			s.emit(now, x, y, z)
		}
	}

	for i := range s.particles {
		p := &s.particles[i]
		if !p.active {
			continue
		}
		age := now.Sub(p.born)
		if age >= p.lifespan {
			p.active = false
			s.free = append(s.free, i)
			continue
		}
		frac := float64(age) / float64(p.lifespan)
		p.X += p.VX * factor
		p.Y += p.VY * factor
		p.Z += p.VZ * factor
		p.Opacity = baseOpacity * (1 - frac)
		p.Scale = 1.0 + frac*1.5
	}
}

// Live counts active particles.
func (s *System) Live() int {
	n := 0
	for i := range s.particles {
		if s.particles[i].active {
			n++
		}
	}
	return n
}

// Each visits every active particle.
func (s *System) Each(fn func(p *Particle)) {
	for i := range s.particles {
		if s.particles[i].active {
			fn(&s.particles[i])
		}
	}
}

// Reset deactivates boost and frees every particle; used on scene teardown.
func (s *System) Reset() {
	s.boostActive = false
	s.free = s.free[:0]
	for i := len(s.particles) - 1; i >= 0; i-- {
		s.particles[i].active = false
		s.free = append(s.free, i)
	}
}
