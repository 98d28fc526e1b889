// Package audio plays the game's short sound effects. Missing or undecodable
// files degrade to silence; the game never fails over audio.
package audio

import (
	"bytes"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/rs/zerolog/log"

	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/assets"
)

const sampleRate = 48000

// SoundIDs are the effects the driving scene asks for.
var SoundIDs = []string{"correct", "wrong", "boost", "lane"}

// Manager caches one player per sound and honors the live sound toggle.
type Manager struct {
	ctx     *audio.Context
	players map[string]*audio.Player
	enabled bool
}

// NewManager decodes every known sound from dir, reporting each id to the
// tracker whether it loads or not.
func NewManager(dir string, tracker *assets.Tracker, enabled bool) *Manager {
	m := &Manager{
		ctx:     audio.CurrentContext(),
		players: make(map[string]*audio.Player),
		enabled: enabled,
	}
	if m.ctx == nil {
		m.ctx = audio.NewContext(sampleRate)
	}

	for _, id := range SoundIDs {
		path := dir + "/" + id + ".mp3"
		data, err := os.ReadFile(path)
		if err != nil {
			tracker.MarkFailed("sfx:" + id)
			continue
		}
		stream, err := mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
		if err != nil {
			log.Warn().Err(err).Str("sound", id).Msg("failed to decode sound")
			tracker.MarkFailed("sfx:" + id)
			continue
		}
		player, err := m.ctx.NewPlayer(stream)
		if err != nil {
			log.Warn().Err(err).Str("sound", id).Msg("failed to create player")
			tracker.MarkFailed("sfx:" + id)
			continue
		}
		m.players[id] = player
		tracker.MarkLoaded("sfx:" + id)
	}
	return m
}

// SetEnabled toggles sound playback.
func (m *Manager) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// Enabled reports whether playback is on. A nil manager is silent.
func (m *Manager) Enabled() bool {
	return m != nil && m.enabled
}

// Play restarts the named sound. Unknown ids and disabled sound are no-ops.
func (m *Manager) Play(id string) {
	if m == nil || !m.enabled {
		return
	}
	player, ok := m.players[id]
	if !ok {
		return
	}
	if err := player.Rewind(); err != nil {
		log.Debug().Err(err).Str("sound", id).Msg("failed to rewind sound")
		return
	}
	player.Play()
}
