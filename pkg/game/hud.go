package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var hudFace = text.NewGoXFace(bitmapfont.Face)

// drawCenteredText draws str centered at (centerX, centerY) at the given
// scale of the 16px bitmap font.
func (s *DrivingScene) drawCenteredText(screen *ebiten.Image, str string, centerX, centerY, scale float64, clr color.Color) {
	width := text.Advance(str, hudFace) * scale
	x := centerX - width/2
	y := centerY - 8*scale

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, hudFace, op)
}

// dimScreen lays a translucent tint over the whole frame.
func (s *DrivingScene) dimScreen(screen *ebiten.Image, clr color.RGBA) {
	w := float64(s.cfg.Window.Width)
	h := float64(s.cfg.Window.Height)
	s.fillQuad(screen, [4]float64{0, w, w, 0}, [4]float64{0, 0, h, h}, clr)
}

func (s *DrivingScene) drawHUD(screen *ebiten.Image) {
	w := float64(s.cfg.Window.Width)
	h := float64(s.cfg.Window.Height)

	// Word banner: the term to translate.
	if s.prompt.Word != "" {
		s.drawCenteredText(screen, s.prompt.Word, w/2, 40, 3.0, color.RGBA{255, 230, 120, 255})
		s.drawCenteredText(screen, "?", w/2, 72, 2.0, color.RGBA{220, 220, 220, 255})
	}

	s.drawProgressBar(screen)
	s.drawSpeedGauge(screen)

	if s.streak > 0 {
		s.drawCenteredText(screen, fmt.Sprintf("STREAK x%d", s.streak), w-90, h-30, 1.5, color.RGBA{255, 200, 50, 255})
	}
	if s.trail.BoostActive() {
		s.drawCenteredText(screen, "BOOST", w/2, h-40, 2.0, color.RGBA{255, 140, 30, 255})
	}
	if s.freeLook {
		s.drawCenteredText(screen, "FREE LOOK (F to exit)", w/2, 100, 1.2, color.RGBA{180, 220, 255, 255})
	}

	if s.feedback != nil {
		if s.feedback.IsCorrect {
			s.dimScreen(screen, color.RGBA{0, 120, 0, 60})
			s.drawCenteredText(screen, "CORRECT!", w/2, h/2-60, 4.0, color.RGBA{120, 255, 120, 255})
		} else {
			s.dimScreen(screen, color.RGBA{120, 0, 0, 60})
			s.drawCenteredText(screen, "WRONG!", w/2, h/2-60, 4.0, color.RGBA{255, 120, 120, 255})
			answer := fmt.Sprintf("%s = %s", s.prompt.Word, s.prompt.CorrectTranslation)
			s.drawCenteredText(screen, answer, w/2, h/2, 2.0, color.RGBA{255, 255, 255, 255})
		}
	}

	switch s.phase {
	case PhaseLoading:
		s.dimScreen(screen, color.RGBA{0, 0, 0, 110})
		s.drawCenteredText(screen, "LOADING", w/2, h/2-20, 3.0, color.RGBA{255, 255, 255, 255})
		status := fmt.Sprintf("%d / %d", s.tracker.Loaded(), s.tracker.Expected())
		s.drawCenteredText(screen, status, w/2, h/2+20, 1.5, color.RGBA{200, 200, 200, 255})
	case PhasePaused:
		s.dimScreen(screen, color.RGBA{0, 0, 0, 110})
		s.drawCenteredText(screen, "PAUSED", w/2, h/2-20, 3.0, color.RGBA{255, 255, 255, 255})
		s.drawCenteredText(screen, "SPACE to resume", w/2, h/2+20, 1.5, color.RGBA{200, 200, 200, 255})
		s.drawCenteredText(screen, "arrows steer, up boosts, V vehicle, M sound", w/2, h/2+50, 1.0, color.RGBA{170, 170, 170, 255})
	}

	if s.showFPS {
		s.drawCenteredText(screen, fmt.Sprintf("FPS %.1f", s.clock.FPS()), 60, 20, 1.0, color.RGBA{160, 255, 160, 255})
	}
}

// drawProgressBar shows deck progress in the top-right corner.
func (s *DrivingScene) drawProgressBar(screen *ebiten.Image) {
	w := float64(s.cfg.Window.Width)
	const barW, barH = 160.0, 14.0
	x := w - barW - 20
	y := 20.0

	s.fillQuad(screen, [4]float64{x, x + barW, x + barW, x}, [4]float64{y, y, y + barH, y + barH}, color.RGBA{40, 40, 40, 220})
	frac := s.prompt.Progress / 100
	if frac > 1 {
		frac = 1
	}
	if frac > 0 {
		fw := barW * frac
		s.fillQuad(screen, [4]float64{x, x + fw, x + fw, x}, [4]float64{y, y, y + barH, y + barH}, color.RGBA{90, 200, 90, 255})
	}
	s.drawCenteredText(screen, fmt.Sprintf("%.0f%%", s.prompt.Progress), x+barW/2, y+barH+14, 1.0, color.RGBA{220, 220, 220, 255})
}

// drawSpeedGauge shows the current speed with a filled bar, colored green
// through red as speed climbs.
func (s *DrivingScene) drawSpeedGauge(screen *ebiten.Image) {
	h := float64(s.cfg.Window.Height)
	x, y := 20.0, h-60
	const barW, barH = 160.0, 14.0

	// Display speed in arbitrary km/h-flavored units.
	kmh := s.speedModel.Current() * 110
	s.drawCenteredText(screen, fmt.Sprintf("%.0f KM/H", kmh), x+barW/2, y-16, 1.5, color.RGBA{230, 230, 230, 255})

	s.fillQuad(screen, [4]float64{x, x + barW, x + barW, x}, [4]float64{y, y, y + barH, y + barH}, color.RGBA{40, 40, 40, 220})

	frac := kmh / 220
	if frac > 1 {
		frac = 1
	}
	var clr color.RGBA
	switch {
	case frac < 0.5:
		clr = color.RGBA{100, 255, 100, 255}
	case frac < 0.8:
		clr = color.RGBA{255, 255, 100, 255}
	default:
		clr = color.RGBA{255, 100, 100, 255}
	}
	fw := barW * frac
	s.fillQuad(screen, [4]float64{x, x + fw, x + fw, x}, [4]float64{y, y, y + barH, y + barH}, clr)
}
