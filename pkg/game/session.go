package game

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// Card is a single vocabulary pair to quiz.
type Card struct {
	Word        string
	Translation string
}

// demoDeck is the built-in French to English deck used when no deck file
// is supplied.
var demoDeck = []Card{
	{"chat", "cat"},
	{"chien", "dog"},
	{"maison", "house"},
	{"pomme", "apple"},
	{"livre", "book"},
	{"eau", "water"},
	{"soleil", "sun"},
	{"lune", "moon"},
	{"pain", "bread"},
	{"voiture", "car"},
	{"arbre", "tree"},
	{"fenetre", "window"},
}

// Session walks a deck of cards, presenting each as a two-option sign and
// scoring the player's lane choices.
type Session struct {
	deck  []Card
	index int
	rng   *rand.Rand

	scene  *DrivingScene
	streak int

	correctOnLeft bool
	awaiting      bool
	feedbackUntil time.Time
	feedbackFor   time.Duration
	done          bool
}

func NewSession(deck []Card, feedbackFor time.Duration, seed int64) *Session {
	if len(deck) == 0 {
		deck = demoDeck
	}
	return &Session{
		deck:        deck,
		rng:         rand.New(rand.NewSource(seed)),
		feedbackFor: feedbackFor,
	}
}

// Bind attaches the session to a scene and presents the first card.
func (s *Session) Bind(scene *DrivingScene) {
	s.scene = scene
	s.present()
}

// Callbacks returns the scene callback set routed through this session.
func (s *Session) Callbacks(onExit func()) Callbacks {
	return Callbacks{
		OnSelectLeft:  func() { s.answer(true) },
		OnSelectRight: func() { s.answer(false) },
		OnExit:        onExit,
	}
}

func (s *Session) Done() bool { return s.done }

func (s *Session) Streak() int { return s.streak }

// present pushes the current card onto the scene as a prompt, with the
// correct translation on a random side and a decoy from another card on
// the other.
func (s *Session) present() {
	if s.index >= len(s.deck) {
		s.done = true
		return
	}
	card := s.deck[s.index]
	s.correctOnLeft = s.rng.Intn(2) == 0

	decoy := s.decoyFor(s.index)
	var opts [2]string
	if s.correctOnLeft {
		opts[0], opts[1] = card.Translation, decoy
	} else {
		opts[0], opts[1] = decoy, card.Translation
	}

	progress := float64(s.index) / float64(len(s.deck)) * 100
	s.scene.SetPrompt(Prompt{
		Word:               card.Word,
		CorrectTranslation: card.Translation,
		Options:            opts,
		Progress:           progress,
	})
}

// decoyFor picks a translation from a different card.
func (s *Session) decoyFor(exclude int) string {
	if len(s.deck) < 2 {
		return "???"
	}
	for {
		i := s.rng.Intn(len(s.deck))
		if i != exclude {
			return s.deck[i].Translation
		}
	}
}

// answer scores a lane choice. left is true when the player drove through
// the left panel.
func (s *Session) answer(left bool) {
	if s.awaiting || s.done {
		return
	}
	correct := left == s.correctOnLeft
	if correct {
		s.streak++
	} else {
		s.streak = 0
	}
	log.Debug().
		Str("word", s.deck[s.index].Word).
		Bool("correct", correct).
		Int("streak", s.streak).
		Msg("answer")

	s.scene.SetFeedback(&Feedback{IsCorrect: correct})
	s.scene.SetStreak(s.streak, 1+0.05*float64(s.streak))
	s.awaiting = true
	s.feedbackUntil = time.Time{}
}

// Update advances the feedback timer and moves on to the next card once
// the flash has run its course.
func (s *Session) Update(now time.Time) {
	if !s.awaiting {
		return
	}
	if s.feedbackUntil.IsZero() {
		s.feedbackUntil = now.Add(s.feedbackFor)
		return
	}
	if now.Before(s.feedbackUntil) {
		return
	}
	s.awaiting = false
	s.scene.SetFeedback(nil)
	s.scene.SelectionComplete()
	s.index++
	s.present()
}
