// Package vehicle holds the player vehicle state: the discrete lane that
// maps to answer choices, the continuous lateral position, and the eased
// lane-change animation with its banking tilt.
package vehicle

import (
	"math"
	"time"
)

// Lane is one of the three discrete lateral slots. The lane, not the
// continuous position, is what maps to an answer at a sign trigger.
type Lane int

const (
	LaneLeft Lane = iota
	LaneCenter
	LaneRight
)

// String returns the lane name for logs.
func (l Lane) String() string {
	switch l {
	case LaneLeft:
		return "left"
	case LaneCenter:
		return "center"
	case LaneRight:
		return "right"
	}
	return "unknown"
}

// Direction is a steering input.
type Direction int

const (
	DirLeft  Direction = -1
	DirRight Direction = 1
)

// laneAnim is the in-flight lane change. It exists only between Steer and
// the frame where t reaches 1.
type laneAnim struct {
	from, to float64
	target   Lane
	dir      Direction
	start    time.Time
}

// Vehicle is the player vehicle. All mutation happens on the scene's frame
// goroutine.
type Vehicle struct {
	lane      Lane
	x         float64
	tilt      float64
	laneWidth float64
	duration  time.Duration
	maxTilt   float64
	anim      *laneAnim
}

// New places the vehicle in the center lane at rest.
func New(laneWidth float64, changeDuration time.Duration, maxTilt float64) *Vehicle {
	return &Vehicle{
		lane:      LaneCenter,
		laneWidth: laneWidth,
		duration:  changeDuration,
		maxTilt:   maxTilt,
	}
}

// laneX is the lateral target position for a lane.
func (v *Vehicle) laneX(l Lane) float64 {
	return float64(int(l)-int(LaneCenter)) * v.laneWidth
}

// Steer requests a lane change. It is a no-op while a change is animating,
// and a no-op for the outward direction from an outer lane: from center
// either arrow moves to the adjacent lane, from left/right only the return
// toward center is accepted. Returns whether an animation started.
func (v *Vehicle) Steer(dir Direction, now time.Time) bool {
	if v.anim != nil {
		return false
	}
	target := Lane(int(v.lane) + int(dir))
	if target < LaneLeft || target > LaneRight {
		return false
	}
	v.anim = &laneAnim{
		from:   v.x,
		to:     v.laneX(target),
		target: target,
		dir:    dir,
		start:  now,
	}
	// The discrete lane commits immediately: a sign crossed mid-animation
	// resolves against the lane the player steered into, not the one being
	// left behind.
	v.lane = target
	return true
}

// easeInOutQuad is the quadratic ease-in-out curve on [0,1].
func easeInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - 2*(1-t)*(1-t)
}

// Update advances the animation. On completion the vehicle snaps exactly to
// the target position with zero tilt.
func (v *Vehicle) Update(now time.Time) {
	if v.anim == nil {
		return
	}
	t := now.Sub(v.anim.start).Seconds() / v.duration.Seconds()
	if t >= 1 {
		v.x = v.anim.to
		v.tilt = 0
		v.anim = nil
		return
	}
	if t < 0 {
		t = 0
	}
	eased := easeInOutQuad(t)
	v.x = v.anim.from + (v.anim.to-v.anim.from)*eased
	// Bank into the turn: zero at both endpoints, peak mid-transition.
	v.tilt = v.maxTilt * math.Sin(math.Pi*eased) * float64(v.anim.dir)
}

// Lane returns the authoritative discrete lane, committed at the moment a
// steer is accepted.
func (v *Vehicle) Lane() Lane {
	return v.lane
}

// X is the continuous lateral position.
func (v *Vehicle) X() float64 {
	return v.x
}

// Tilt is the current roll in radians, positive banking right.
func (v *Vehicle) Tilt() float64 {
	return v.tilt
}

// Changing reports whether a lane change is animating.
func (v *Vehicle) Changing() bool {
	return v.anim != nil
}
