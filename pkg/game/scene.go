// Package game owns the driving scene: the per-frame loop that scrolls the
// road, resolves sign triggers into answer selections, and renders the
// world. The scene consumes a Prompt and produces answer events through
// Callbacks; vocabulary bookkeeping stays outside.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/assets"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/audio"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/clock"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/config"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/effects"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/scenery"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/speed"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/track"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/vehicle"
)

// Phase gates whether a frame advances game state at all. Loading and Paused
// render every frame but simulate nothing.
type Phase int

const (
	PhaseLoading Phase = iota
	PhasePlaying
	PhasePaused
)

// Prompt is the current question as supplied by the host: the word to
// translate and the two candidate answers on the overhead sign.
type Prompt struct {
	Word               string
	CorrectTranslation string
	Options            [2]string
	Progress           float64 // 0..100
}

// Feedback is the externally driven transient answer-result flag.
type Feedback struct {
	IsCorrect bool
}

// Callbacks are the scene's output events.
type Callbacks struct {
	OnSelectLeft  func()
	OnSelectRight func()
	OnExit        func()
}

// DrivingScene is the endless-runner quiz road. All of its state is owned
// outright and mutated only on the frame goroutine, each subsystem writing
// its own fields in a fixed per-frame order.
type DrivingScene struct {
	cfg       *config.Config
	callbacks Callbacks
	sounds    *audio.Manager
	tracker   *assets.Tracker

	clock      *clock.Clock
	speedModel *speed.Model
	road       *track.Pool
	markings   *track.Pool
	ground     *track.Pool
	gantries   *track.Pool
	resolver   *track.Resolver
	car        *vehicle.Vehicle
	trail      *effects.System

	scenery   scenery.Collaborator
	sceneryOK bool

	phase   Phase
	readyAt time.Time

	prompt       Prompt
	feedback     *Feedback
	streak       int
	vehicleIndex int

	freeLook    bool
	freeLookPan float64
	showFPS     bool
	latched     inputState

	touches map[ebiten.TouchID]touchStart

	vehicleSprite *ebiten.Image
	white         *ebiten.Image

	distance float64
	disposed bool
}

// vehicleZ is where the vehicle sits on the z axis; the trigger window
// (0, TriggerThreshold) lies in front of it.
const vehicleZ = 4.2

// NewDrivingScene wires the scene. scn may be nil (no background scenery);
// when present, its initialization result is reported to the tracker under
// the "scenery" id.
func NewDrivingScene(cfg *config.Config, cb Callbacks, scn scenery.Collaborator, sounds *audio.Manager, tracker *assets.Tracker, vehicleIndex int, showFPS bool) *DrivingScene {
	s := &DrivingScene{
		cfg:          cfg,
		callbacks:    cb,
		sounds:       sounds,
		tracker:      tracker,
		clock:        clock.New(),
		speedModel:   speed.NewModel(cfg.Speed.Base, cfg.Speed.BoostFactor, vehicle.Multipliers()),
		car:          vehicle.New(cfg.Road.LaneWidth, secs(cfg.Lane.ChangeSeconds), cfg.Lane.MaxTiltRadians),
		scenery:      scn,
		phase:        PhaseLoading,
		vehicleIndex: vehicleIndex,
		showFPS:      showFPS,
		touches:      make(map[ebiten.TouchID]touchStart),
	}

	s.speedModel.SetVehicle(vehicleIndex)

	r := cfg.Road
	s.road = track.NewPool(r.SlabCount, r.SlabLength, r.RepositionThreshold)
	s.markings = track.NewPool(r.MarkingCount, r.MarkingSpacing, r.RepositionThreshold)
	s.ground = track.NewPool(r.GroundCount, r.GroundLength, r.RepositionThreshold)
	s.gantries = track.NewPool(r.GantryCount, r.GantrySpacing, r.RepositionThreshold)

	s.trail = effects.NewSystem(
		cfg.Boost.MaxParticles,
		cfg.Boost.BurstMin,
		cfg.Boost.BurstMax,
		cfg.Boost.TrickleScale,
		secs(cfg.Boost.LifespanSeconds),
		time.Now().UnixNano(),
	)

	s.resolver = track.NewResolver(
		s.gantries,
		r.TriggerThreshold,
		secs(cfg.Timing.SelectionGuardSeconds),
		s.cancelBoost,
		func() {
			if s.callbacks.OnSelectLeft != nil {
				s.callbacks.OnSelectLeft()
			}
		},
		func() {
			if s.callbacks.OnSelectRight != nil {
				s.callbacks.OnSelectRight()
			}
		},
	)

	if scn != nil {
		if err := scn.Initialize(s.prompt.Progress); err != nil {
			log.Warn().Err(err).Msg("scenery failed to initialize, continuing without background")
			tracker.MarkFailed("scenery")
		} else {
			s.sceneryOK = true
			tracker.MarkLoaded("scenery")
		}
	}

	return s
}

func secs(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Update is the ebiten entry point: poll input, then run one frame.
func (s *DrivingScene) Update() error {
	now := time.Now()
	s.step(now, s.pollInput(now))
	return nil
}

// step runs one frame of the loop. It is input-agnostic so tests can drive
// it with synthetic frames and inputs.
func (s *DrivingScene) step(now time.Time, in inputState) {
	if s.disposed {
		return
	}

	frame, ok := s.clock.Tick(now)
	if !ok {
		// Void frame (first frame, clock glitch, tab resume): skip all
		// work, but hold on to one-shot presses so a key landing on a
		// voided frame is not lost.
		s.latched = in.merge(s.latched)
		return
	}
	in = in.merge(s.latched)
	s.latched = inputState{}

	if in.exit {
		if s.callbacks.OnExit != nil {
			s.callbacks.OnExit()
		}
		return
	}
	if in.fpsToggle {
		s.showFPS = !s.showFPS
	}
	if in.muteToggle {
		s.SetSoundEnabled(!s.sounds.Enabled())
	}
	if in.vehicleCycle {
		s.SetVehicle((s.vehicleIndex + 1) % len(vehicle.Catalog))
	}

	switch s.phase {
	case PhaseLoading:
		if s.tracker.Ready() {
			if s.readyAt.IsZero() {
				s.readyAt = now.Add(secs(s.cfg.Timing.LoadingGraceSeconds))
			} else if !now.Before(s.readyAt) {
				s.phase = PhasePlaying
				log.Info().Int("assets", s.tracker.Loaded()).Msg("assets ready, entering play")
			}
		}
		return

	case PhasePaused:
		if in.pauseToggle {
			s.phase = PhasePlaying
		}
		return

	case PhasePlaying:
		if in.pauseToggle {
			s.phase = PhasePaused
			return
		}
		if in.freeLookToggle {
			s.freeLook = !s.freeLook
		}
		if s.freeLook {
			// Free look suspends driving controls; arrows pan the camera.
			s.freeLookPan += float64(in.pan) * 6 * frame.Factor
		} else {
			if in.steer != 0 {
				if s.car.Steer(in.steer, now) {
					s.sounds.Play("lane")
				}
			}
			if in.boost {
				s.activateBoost(now)
			}
		}
		s.simulate(now, frame)
	}
}

// simulate advances world state for one valid Playing frame, in the fixed
// order: speed, world scroll, scenery, trigger scan, vehicle animation,
// particles.
func (s *DrivingScene) simulate(now time.Time, frame clock.Frame) {
	adv := s.speedModel.PerFrame(frame.Factor)
	s.distance += adv

	s.road.Advance(adv)
	s.markings.Advance(adv)
	s.ground.Advance(adv)
	s.gantries.Advance(adv)

	if s.sceneryOK {
		s.scenery.Update(s.prompt.Progress, adv, frame.Factor)
	}

	s.resolver.Update(now, s.car.Lane())
	s.car.Update(now)
	s.trail.Update(now, frame.Factor, s.speedModel.BoostRatio(), s.car.X(), 0.25, vehicleZ+0.5)
}

func (s *DrivingScene) activateBoost(now time.Time) {
	if s.trail.ActivateBoost(now, s.car.X(), 0.3, vehicleZ+0.5) {
		s.speedModel.SetBoost(true)
		s.sounds.Play("boost")
	}
}

// cancelBoost is handed to the resolver; every sign crossing cuts the boost.
func (s *DrivingScene) cancelBoost() {
	s.speedModel.SetBoost(false)
	s.trail.DeactivateBoost()
}

// SetPrompt replaces the current question. The gantry panels render the new
// options on their next pass.
func (s *DrivingScene) SetPrompt(p Prompt) {
	s.prompt = p
}

// SetFeedback sets or clears the transient answer-result flag and plays the
// matching sound on the set edge.
func (s *DrivingScene) SetFeedback(f *Feedback) {
	if f != nil && s.feedback == nil {
		if f.IsCorrect {
			s.sounds.Play("correct")
		} else {
			s.sounds.Play("wrong")
		}
	}
	s.feedback = f
}

// SetStreak updates the streak counter and its speed multiplier.
func (s *DrivingScene) SetStreak(count int, multiplier float64) {
	s.streak = count
	s.speedModel.SetStreakMultiplier(multiplier)
}

// SetVehicle selects the vehicle by catalog index.
func (s *DrivingScene) SetVehicle(index int) {
	s.vehicleIndex = index
	s.speedModel.SetVehicle(index)
	if s.vehicleSprite != nil {
		s.vehicleSprite.Deallocate()
		s.vehicleSprite = nil
	}
}

// SetSoundEnabled toggles sound playback live.
func (s *DrivingScene) SetSoundEnabled(enabled bool) {
	if s.sounds != nil {
		s.sounds.SetEnabled(enabled)
	}
}

// SelectionComplete reports that the host finished processing the last
// answer, releasing the selection guard before its deadline.
func (s *DrivingScene) SelectionComplete() {
	s.resolver.Complete()
}

// Phase returns the current loop phase.
func (s *DrivingScene) Phase() Phase {
	return s.phase
}

// Distance returns the total world distance traveled.
func (s *DrivingScene) Distance() float64 {
	return s.distance
}

// Dispose tears the scene down: scenery, particles, guards. Subsequent
// Update and Draw calls return early without touching freed state.
func (s *DrivingScene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	if s.sceneryOK {
		s.scenery.Dispose()
		s.sceneryOK = false
	}
	s.trail.Reset()
	s.resolver.Reset()
	if s.vehicleSprite != nil {
		s.vehicleSprite.Deallocate()
		s.vehicleSprite = nil
	}
	if s.white != nil {
		s.white.Deallocate()
		s.white = nil
	}
	log.Info().Float64("distance", s.distance).Msg("driving scene disposed")
}
