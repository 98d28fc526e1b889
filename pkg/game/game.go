package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/assets"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/audio"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/config"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/scenery"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/settings"
)

// Screen represents a UI screen interface
type Screen interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// Game implements the ebiten.Game interface and manages the overall game state
type Game struct {
	cfg           *config.Config
	store         *settings.Manager
	currentScreen Screen

	scene   *DrivingScene
	session *Session

	mute bool
	quit bool
}

// NewGame creates a new game instance
func NewGame(cfg *config.Config, store *settings.Manager, deck []Card, mute bool) *Game {
	g := &Game{
		cfg:   cfg,
		store: store,
		mute:  mute,
	}

	prefs := store.Get()
	soundOn := prefs.SoundEnabled && !mute

	// One slot per sound effect plus the scenery collaborator.
	tracker := assets.NewTracker(len(audio.SoundIDs) + 1)
	sounds := audio.NewManager("assets/sfx", tracker, soundOn)
	countryside := scenery.NewCountryside(cfg.Window.Width, cfg.Window.Height)

	g.session = NewSession(deck, secs(cfg.Timing.FeedbackSeconds), time.Now().UnixNano())
	g.scene = NewDrivingScene(
		cfg,
		g.session.Callbacks(g.requestExit),
		countryside,
		sounds,
		tracker,
		prefs.SelectedVehicle,
		prefs.ShowFPS,
	)
	g.session.Bind(g.scene)
	g.currentScreen = g.scene

	log.Info().
		Int("deck_size", len(g.session.deck)).
		Int("vehicle", prefs.SelectedVehicle).
		Bool("sound", soundOn).
		Msg("game ready")

	return g
}

func (g *Game) requestExit() {
	g.quit = true
}

// Update handles game logic updates
func (g *Game) Update() error {
	if g.quit || g.session.Done() {
		g.shutdown()
		return ebiten.Termination
	}
	if g.currentScreen != nil {
		if err := g.currentScreen.Update(); err != nil {
			return err
		}
	}
	if g.scene.Phase() == PhasePlaying {
		g.session.Update(time.Now())
	}
	return nil
}

// Draw renders the current screen
func (g *Game) Draw(screen *ebiten.Image) {
	if g.currentScreen != nil {
		g.currentScreen.Draw(screen)
	}
}

// Layout returns the game's screen dimensions
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func (g *Game) shutdown() {
	prefs := g.store.Get()
	prefs.SelectedVehicle = g.scene.vehicleIndex
	prefs.ShowFPS = g.scene.showFPS
	if !g.mute {
		// The CLI mute is a per-run override, not a preference change.
		prefs.SoundEnabled = g.scene.sounds.Enabled()
	}
	g.store.Set(prefs)
	g.scene.Dispose()
	log.Info().
		Float64("distance", g.scene.Distance()).
		Int("final_streak", g.session.Streak()).
		Msg("session over")
}
