package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/assets"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/config"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/vehicle"
)

const frameDT = 16 * time.Millisecond

// stepFrames drives n frames at a steady 16ms cadence with the same input.
func stepFrames(s *DrivingScene, now *time.Time, n int, in inputState) {
	for i := 0; i < n; i++ {
		*now = now.Add(frameDT)
		s.step(*now, in)
	}
}

// newTestScene builds a headless scene: no scenery, no sounds, nothing to
// load, so it leaves PhaseLoading after the grace period alone.
func newTestScene(t *testing.T, cb Callbacks) (*DrivingScene, *time.Time) {
	t.Helper()
	cfg := config.Default()
	s := NewDrivingScene(cfg, cb, nil, nil, assets.NewTracker(0), 0, false)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.step(now, inputState{}) // first frame is void, arms the clock
	return s, &now
}

// toPlaying runs frames until the loading grace expires.
func toPlaying(t *testing.T, s *DrivingScene, now *time.Time) {
	t.Helper()
	for i := 0; i < 100 && s.Phase() != PhasePlaying; i++ {
		stepFrames(s, now, 1, inputState{})
	}
	require.Equal(t, PhasePlaying, s.Phase())
}

func TestLoadingPhaseHoldsThenPlays(t *testing.T) {
	s, now := newTestScene(t, Callbacks{})

	require.Equal(t, PhaseLoading, s.Phase())
	stepFrames(s, now, 5, inputState{})
	require.Equal(t, PhaseLoading, s.Phase(), "grace period should hold the loading phase")
	require.Zero(t, s.Distance(), "no world motion while loading")

	toPlaying(t, s, now)

	stepFrames(s, now, 10, inputState{})
	require.Greater(t, s.Distance(), 0.0)
}

func TestLoadingWaitsForTracker(t *testing.T) {
	cfg := config.Default()
	tracker := assets.NewTracker(2)
	s := NewDrivingScene(cfg, Callbacks{}, nil, nil, tracker, 0, false)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.step(now, inputState{})

	stepFrames(s, &now, 80, inputState{})
	require.Equal(t, PhaseLoading, s.Phase(), "must not start with assets outstanding")

	tracker.MarkLoaded("a")
	tracker.MarkFailed("b") // failures still count toward completion
	toPlaying(t, s, &now)
}

func TestPauseFreezesWorld(t *testing.T) {
	s, now := newTestScene(t, Callbacks{})
	toPlaying(t, s, now)

	stepFrames(s, now, 20, inputState{})
	before := s.Distance()
	require.Greater(t, before, 0.0)

	stepFrames(s, now, 1, inputState{pauseToggle: true})
	require.Equal(t, PhasePaused, s.Phase())

	stepFrames(s, now, 40, inputState{})
	require.Equal(t, before, s.Distance(), "paused frames must not advance the world")

	stepFrames(s, now, 1, inputState{pauseToggle: true})
	require.Equal(t, PhasePlaying, s.Phase())

	stepFrames(s, now, 10, inputState{})
	require.Greater(t, s.Distance(), before, "resume picks up where it left off")
}

func TestBoostCutAtSign(t *testing.T) {
	s, now := newTestScene(t, Callbacks{})
	toPlaying(t, s, now)

	stepFrames(s, now, 1, inputState{boost: true})
	require.True(t, s.trail.BoostActive())
	require.InDelta(t, s.cfg.Speed.BoostFactor, s.speedModel.BoostRatio(), 1e-9)

	// Stay in the center lane; the crossing consumes the sign silently but
	// still cuts the boost.
	cut := false
	for i := 0; i < 600; i++ {
		stepFrames(s, now, 1, inputState{})
		if !s.trail.BoostActive() {
			cut = true
			break
		}
	}
	require.True(t, cut, "first gantry crossing should cancel the boost")
	require.InDelta(t, 1.0, s.speedModel.BoostRatio(), 1e-9)
}

func TestSignSelectionFiresOnce(t *testing.T) {
	var left, right int
	s, now := newTestScene(t, Callbacks{
		OnSelectLeft:  func() { left++ },
		OnSelectRight: func() { right++ },
	})
	toPlaying(t, s, now)

	s.SetPrompt(Prompt{
		Word:               "chat",
		CorrectTranslation: "cat",
		Options:            [2]string{"cat", "dog"},
	})

	stepFrames(s, now, 1, inputState{steer: vehicle.DirLeft})

	for i := 0; i < 900 && left == 0; i++ {
		stepFrames(s, now, 1, inputState{})
	}
	require.Equal(t, 1, left, "left-lane crossing fires the left selection")
	require.Zero(t, right)

	// The same sign must not fire again while it remains in the window.
	stepFrames(s, now, 30, inputState{})
	require.Equal(t, 1, left)

	s.SelectionComplete()

	// Return to center, then take the right lane for the next sign.
	stepFrames(s, now, 1, inputState{steer: vehicle.DirRight})
	stepFrames(s, now, 30, inputState{})
	stepFrames(s, now, 1, inputState{steer: vehicle.DirRight})

	for i := 0; i < 900 && right == 0; i++ {
		stepFrames(s, now, 1, inputState{})
	}
	require.Equal(t, 1, right, "right-lane crossing fires the right selection")
	require.Equal(t, 1, left)
}

func TestSelectionBlockedWhileInFlight(t *testing.T) {
	var left int
	s, now := newTestScene(t, Callbacks{
		OnSelectLeft: func() { left++ },
	})
	toPlaying(t, s, now)

	stepFrames(s, now, 1, inputState{steer: vehicle.DirLeft})
	for i := 0; i < 900 && left == 0; i++ {
		stepFrames(s, now, 1, inputState{})
	}
	require.Equal(t, 1, left)
	require.True(t, s.resolver.InFlight())

	// Without SelectionComplete the guard releases on its own deadline.
	guardFrames := int(secs(s.cfg.Timing.SelectionGuardSeconds)/frameDT) + 5
	stepFrames(s, now, guardFrames, inputState{})
	require.False(t, s.resolver.InFlight())
}

func TestSteeringRejectedBeyondOuterLane(t *testing.T) {
	s, now := newTestScene(t, Callbacks{})
	toPlaying(t, s, now)

	stepFrames(s, now, 1, inputState{steer: vehicle.DirLeft})
	stepFrames(s, now, 30, inputState{}) // let the change finish
	require.Equal(t, vehicle.LaneLeft, s.car.Lane())

	stepFrames(s, now, 1, inputState{steer: vehicle.DirLeft})
	stepFrames(s, now, 30, inputState{})
	require.Equal(t, vehicle.LaneLeft, s.car.Lane(), "no lane beyond the outer one")
}

func TestExitCallback(t *testing.T) {
	exited := false
	s, now := newTestScene(t, Callbacks{OnExit: func() { exited = true }})

	stepFrames(s, now, 1, inputState{exit: true})
	require.True(t, exited)
}

func TestExitOnFirstFrameIsLatched(t *testing.T) {
	exited := false
	cfg := config.Default()
	s := NewDrivingScene(cfg, Callbacks{OnExit: func() { exited = true }}, nil, nil, assets.NewTracker(0), 0, false)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// The very first frame is void; the press must carry into the next one.
	s.step(now, inputState{exit: true})
	require.False(t, exited)

	s.step(now.Add(frameDT), inputState{})
	require.True(t, exited)
}

func TestPausePressSurvivesClockGlitch(t *testing.T) {
	s, now := newTestScene(t, Callbacks{})
	toPlaying(t, s, now)

	// A suspend-resume spike voids the frame carrying the press.
	*now = now.Add(2 * time.Second)
	s.step(*now, inputState{pauseToggle: true})
	require.Equal(t, PhasePlaying, s.Phase())

	stepFrames(s, now, 1, inputState{})
	require.Equal(t, PhasePaused, s.Phase())
}

func TestFreeLookSuspendsDriving(t *testing.T) {
	s, now := newTestScene(t, Callbacks{})
	toPlaying(t, s, now)

	stepFrames(s, now, 1, inputState{freeLookToggle: true})
	stepFrames(s, now, 1, inputState{steer: vehicle.DirLeft, pan: -1})
	stepFrames(s, now, 30, inputState{})
	require.Equal(t, vehicle.LaneCenter, s.car.Lane(), "steering is inert in free look")
	require.Less(t, s.freeLookPan, 0.0)

	stepFrames(s, now, 1, inputState{freeLookToggle: true})
	stepFrames(s, now, 1, inputState{steer: vehicle.DirLeft})
	stepFrames(s, now, 30, inputState{})
	require.Equal(t, vehicle.LaneLeft, s.car.Lane())
}

func TestVehicleCycleUpdatesSpeed(t *testing.T) {
	s, now := newTestScene(t, Callbacks{})
	toPlaying(t, s, now)

	start := s.vehicleIndex
	startSpeed := s.speedModel.Current()
	stepFrames(s, now, 1, inputState{vehicleCycle: true})
	require.Equal(t, (start+1)%len(vehicle.Catalog), s.vehicleIndex)
	require.NotEqual(t, startSpeed, s.speedModel.Current())

	// Mute toggling without an audio manager is a no-op, not a crash.
	stepFrames(s, now, 1, inputState{muteToggle: true})
}

func TestDisposeStopsTheLoop(t *testing.T) {
	s, now := newTestScene(t, Callbacks{})
	toPlaying(t, s, now)
	stepFrames(s, now, 10, inputState{})
	d := s.Distance()

	s.Dispose()
	s.Dispose() // safe to call twice

	stepFrames(s, now, 10, inputState{})
	require.Equal(t, d, s.Distance(), "disposed scene ignores frames")
}
