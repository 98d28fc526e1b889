package track

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/vehicle"
)

// Resolver converts gantry crossings into at-most-one answer event per
// gantry per lap. It tracks a single "last triggered" slot (only one gantry
// can be in trigger range at a time) and a single in-flight selection guard
// with an explicit deadline, cleared deterministically each frame rather
// than by free-running timers.
type Resolver struct {
	gantries  *Pool
	threshold float64
	guardFor  time.Duration

	lastTriggered int
	inFlight      bool
	deadline      time.Time

	cancelBoost func()
	onLeft      func()
	onRight     func()
}

// NewResolver wires a resolver to the gantry ring. cancelBoost is invoked on
// every trigger crossing, win or lose, before any callback fires; onLeft and
// onRight are the answer events. The resolver re-arms a gantry the moment it
// wraps to the rear of the ring.
func NewResolver(gantries *Pool, threshold float64, guard time.Duration, cancelBoost, onLeft, onRight func()) *Resolver {
	r := &Resolver{
		gantries:      gantries,
		threshold:     threshold,
		guardFor:      guard,
		lastTriggered: -1,
		cancelBoost:   cancelBoost,
		onLeft:        onLeft,
		onRight:       onRight,
	}
	gantries.OnWrap(func(i int) {
		if i == r.lastTriggered {
			r.lastTriggered = -1
		}
	})
	return r
}

// Update runs the per-frame trigger scan; call it only while the scene is
// simulating, after the gantry pool has advanced.
func (r *Resolver) Update(now time.Time, lane vehicle.Lane) {
	// The guard clears on its stored deadline even if the external answer
	// pipeline never reports completion.
	if r.inFlight && !now.Before(r.deadline) {
		r.inFlight = false
	}

	// Candidate: the closest gantry past the vehicle, inside the trigger
	// window, that is not the one already consumed.
	best := -1
	bestZ := 0.0
	r.gantries.Each(func(i int, z float64) {
		if z <= 0 || z >= r.threshold || i == r.lastTriggered {
			return
		}
		if best == -1 || z < bestZ {
			best = i
			bestZ = z
		}
	})
	if best == -1 {
		return
	}

	// Boost never carries across a question; any crossing cuts it.
	if r.cancelBoost != nil {
		r.cancelBoost()
	}
	r.lastTriggered = best

	switch lane {
	case vehicle.LaneCenter:
		// No choice made: the gantry is consumed but neither answer fires.
		log.Debug().Int("gantry", best).Msg("sign passed in center lane")
		return
	case vehicle.LaneLeft, vehicle.LaneRight:
		if r.inFlight {
			// A previous selection is still being processed; the gantry
			// stays consumed but no second event fires.
			log.Debug().Int("gantry", best).Msg("selection still in flight, trigger dropped")
			return
		}
		r.inFlight = true
		r.deadline = now.Add(r.guardFor)
		if lane == vehicle.LaneLeft {
			r.onLeft()
		} else {
			r.onRight()
		}
	}
}

// Complete reports that the external answer pipeline finished, clearing the
// in-flight guard ahead of its deadline.
func (r *Resolver) Complete() {
	r.inFlight = false
}

// InFlight reports whether a selection is being processed.
func (r *Resolver) InFlight() bool {
	return r.inFlight
}

// Reset clears the consumed mark and guard, for a full scene reset.
func (r *Resolver) Reset() {
	r.lastTriggered = -1
	r.inFlight = false
	r.deadline = time.Time{}
}
