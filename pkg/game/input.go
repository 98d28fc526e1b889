package game

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/vehicle"
)

// inputState is one frame's worth of player intent, decoupled from ebiten so
// the loop can be driven synthetically in tests.
type inputState struct {
	steer          vehicle.Direction // 0 = none
	pan            int               // held horizontal arrows, for free look
	boost          bool
	pauseToggle    bool
	exit           bool
	fpsToggle      bool
	freeLookToggle bool
	muteToggle     bool
	vehicleCycle   bool
}

// merge folds one-shot inputs latched from voided frames into this frame.
// Held state (pan) is re-polled every frame and never carried over.
func (in inputState) merge(prev inputState) inputState {
	if in.steer == 0 {
		in.steer = prev.steer
	}
	in.boost = in.boost || prev.boost
	in.pauseToggle = in.pauseToggle || prev.pauseToggle
	in.exit = in.exit || prev.exit
	in.fpsToggle = in.fpsToggle || prev.fpsToggle
	in.freeLookToggle = in.freeLookToggle || prev.freeLookToggle
	in.muteToggle = in.muteToggle || prev.muteToggle
	in.vehicleCycle = in.vehicleCycle || prev.vehicleCycle
	return in
}

// touchStart records where and when a touch began, for gesture
// classification on release.
type touchStart struct {
	x, y int
	at   time.Time
}

// pollInput reads the keyboard and classifies touch gestures.
func (s *DrivingScene) pollInput(now time.Time) inputState {
	var in inputState

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		in.steer = vehicle.DirLeft
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		in.steer = vehicle.DirRight
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.pan = -1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.pan = 1
	}
	in.boost = inpututil.IsKeyJustPressed(ebiten.KeyArrowUp)
	in.pauseToggle = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.exit = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	in.fpsToggle = inpututil.IsKeyJustPressed(ebiten.KeyG)
	in.freeLookToggle = inpututil.IsKeyJustPressed(ebiten.KeyF)
	in.muteToggle = inpututil.IsKeyJustPressed(ebiten.KeyM)
	in.vehicleCycle = inpututil.IsKeyJustPressed(ebiten.KeyV)

	s.pollTouches(now, &in)
	return in
}

// pollTouches tracks touches from press to release and classifies each
// completed gesture as exactly one of: boost swipe, lane-change swipe, or
// tap. A gesture that satisfies the vertical swipe thresholds never also
// counts as a horizontal one.
func (s *DrivingScene) pollTouches(now time.Time, in *inputState) {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		s.touches[id] = touchStart{x: x, y: y, at: now}
	}

	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		start, ok := s.touches[id]
		if !ok {
			continue
		}
		delete(s.touches, id)

		x, y := inpututil.TouchPositionInPreviousTick(id)
		dx := float64(x - start.x)
		dy := float64(y - start.y)
		elapsed := now.Sub(start.at).Seconds()

		sw := s.cfg.Swipe
		quick := elapsed > 0 && elapsed <= sw.MaxSeconds

		switch {
		case quick && -dy >= sw.MinDistance && math.Abs(dy) >= sw.AxisDominance*math.Abs(dx):
			// Upward swipe: boost.
			in.boost = true
		case quick && math.Abs(dx) >= sw.MinDistance && math.Abs(dx) >= sw.AxisDominance*math.Abs(dy):
			// Horizontal swipe: lane change toward the swipe.
			if dx < 0 {
				in.steer = vehicle.DirLeft
			} else {
				in.steer = vehicle.DirRight
			}
		case math.Abs(dx) < sw.MinDistance && math.Abs(dy) < sw.MinDistance:
			// Tap: the screen half picks the lane direction.
			if start.x < s.cfg.Window.Width/2 {
				in.steer = vehicle.DirLeft
			} else {
				in.steer = vehicle.DirRight
			}
		}
	}
}
