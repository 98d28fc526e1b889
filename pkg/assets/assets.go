// Package assets tracks asset readiness for the loading phase and loads
// images with flat-color fallbacks so a missing file never blocks the game.
package assets

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog/log"
)

// Tracker counts assets toward a precomputed expected total. Completion
// callbacks may fire more than once per asset, so ids are deduplicated, and
// load failures are accounted immediately so the loading phase can never be
// stuck waiting on them.
type Tracker struct {
	mu       sync.Mutex
	expected int
	seen     map[string]bool
}

// NewTracker expects the given number of distinct asset ids.
func NewTracker(expected int) *Tracker {
	return &Tracker{
		expected: expected,
		seen:     make(map[string]bool),
	}
}

// MarkLoaded records a successful load. Repeat calls for the same id are
// coalesced.
func (t *Tracker) MarkLoaded(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen[id] = true
}

// MarkFailed records a failed load. The id still counts toward the expected
// total; the failure itself is the caller's to degrade around.
func (t *Tracker) MarkFailed(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.seen[id] {
		log.Warn().Str("asset", id).Msg("asset failed to load, continuing without it")
	}
	t.seen[id] = true
}

// Ready reports whether every expected asset is accounted for.
func (t *Tracker) Ready() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen) >= t.expected
}

// Loaded returns how many distinct assets are accounted for.
func (t *Tracker) Loaded() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}

// Expected returns the precomputed total.
func (t *Tracker) Expected() int {
	return t.expected
}

// LoadImage loads an image file, reporting to the tracker either way. ok is
// false on failure; the caller supplies its own stand-in.
func LoadImage(t *Tracker, id, path string) (*ebiten.Image, bool) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		t.MarkFailed(id)
		return nil, false
	}
	t.MarkLoaded(id)
	return img, true
}
