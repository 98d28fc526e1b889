package main

import (
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/config"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/game"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/settings"
)

type CLI struct {
	Config     string `help:"Path to a YAML config file." type:"path"`
	Deck       string `help:"Path to a YAML deck of word pairs." type:"path"`
	Fullscreen bool   `help:"Start in fullscreen."`
	Mute       bool   `help:"Disable all sound for this run."`
	Debug      bool   `help:"Enable debug logging."`
}

// loadDeck reads a YAML list of {word, translation} pairs. An empty path
// returns nil, which falls back to the built-in demo deck.
func loadDeck(path string) ([]game.Card, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cards []game.Card
	if err := yaml.Unmarshal(data, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("flashlingo"),
		kong.Description("A driving game for drilling vocabulary."),
		kong.UsageOnError(),
	)

	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cli.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		log.Fatal().Err(err).Str("path", cli.Config).Msg("bad config")
	}

	deck, err := loadDeck(cli.Deck)
	if err != nil {
		log.Fatal().Err(err).Str("path", cli.Deck).Msg("bad deck file")
	}

	store, err := gdata.Open(gdata.Config{AppName: "flashlingo"})
	if err != nil {
		log.Warn().Err(err).Msg("settings storage unavailable, using defaults")
		store = nil
	}
	prefs := settings.NewManager(store)

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetFullscreen(cli.Fullscreen)

	if err := ebiten.RunGame(game.NewGame(cfg, prefs, deck, cli.Mute)); err != nil {
		log.Fatal().Err(err).Msg("game loop failed")
	}
}
