package game

import (
	"image"
	"image/color"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/assets"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/effects"
	"github.com/bchans/Flash-Lingo-V2-sub000/pkg/vehicle"
)

// Projection constants. The camera sits behind the vehicle looking down the
// negative z axis; world y is height above the road surface.
const (
	cameraZ   = 6.0
	camHeight = 2.4
	focal     = 1.2
	projUnit  = 150.0
	minDepth  = 0.4
)

func (s *DrivingScene) horizonY() float64 {
	return float64(s.cfg.Window.Height) * 0.42
}

// project maps a world point to screen space. ok is false behind the camera
// plane.
func (s *DrivingScene) project(x, y, z float64) (sx, sy, scale float64, ok bool) {
	d := cameraZ - z
	if d < minDepth {
		return 0, 0, 0, false
	}
	scale = focal / d
	cx := float64(s.cfg.Window.Width)/2 - s.freeLookPan
	sx = cx + x*scale*projUnit
	sy = s.horizonY() + (camHeight-y)*scale*projUnit
	return sx, sy, scale, true
}

// whitePixel returns the 1x1 source for DrawTriangles fills.
func (s *DrivingScene) whitePixel() *ebiten.Image {
	if s.white == nil {
		s.white = ebiten.NewImage(3, 3)
		s.white.Fill(color.White)
	}
	return s.white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// fillQuad draws an arbitrary screen-space quad, the building block for
// every projected road surface.
func (s *DrivingScene) fillQuad(dst *ebiten.Image, xs, ys [4]float64, clr color.RGBA) {
	r := float32(clr.R) / 255
	g := float32(clr.G) / 255
	b := float32(clr.B) / 255
	a := float32(clr.A) / 255
	vs := make([]ebiten.Vertex, 4)
	for i := 0; i < 4; i++ {
		vs[i] = ebiten.Vertex{
			DstX: float32(xs[i]), DstY: float32(ys[i]),
			SrcX: 0, SrcY: 0,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		}
	}
	is := []uint16{0, 1, 2, 0, 2, 3}
	dst.DrawTriangles(vs, is, s.whitePixel(), nil)
}

// groundQuad projects a flat strip of road surface between two z planes and
// fills it.
func (s *DrivingScene) groundQuad(dst *ebiten.Image, xLeft, xRight, zFar, zNear float64, clr color.RGBA) {
	if zNear > cameraZ-minDepth {
		zNear = cameraZ - minDepth
	}
	if zFar >= zNear {
		return
	}
	x0, y0, _, ok0 := s.project(xLeft, 0, zFar)
	x1, y1, _, ok1 := s.project(xRight, 0, zFar)
	x2, y2, _, ok2 := s.project(xRight, 0, zNear)
	x3, y3, _, ok3 := s.project(xLeft, 0, zNear)
	if !ok0 || !ok1 || !ok2 || !ok3 {
		return
	}
	s.fillQuad(dst, [4]float64{x0, x1, x2, x3}, [4]float64{y0, y1, y2, y3}, clr)
}

// Draw renders the scene. It runs in every phase: loading and pause still
// show the world, never a blank canvas.
func (s *DrivingScene) Draw(screen *ebiten.Image) {
	if s.disposed {
		return
	}

	if s.scenery != nil {
		s.scenery.Draw(screen)
	} else {
		screen.Fill(color.RGBA{135, 206, 235, 255})
	}

	s.drawGroundSlabs(screen)
	s.drawRoad(screen)
	s.drawMarkings(screen)
	s.drawGantries(screen)
	s.drawParticles(screen)
	s.drawVehicle(screen)
	s.drawHUD(screen)
}

// sortedZs returns the pool's member positions far-to-near for painter's
// order.
func sortedZs(each func(func(i int, z float64))) []float64 {
	var zs []float64
	each(func(_ int, z float64) { zs = append(zs, z) })
	sort.Float64s(zs)
	return zs
}

func (s *DrivingScene) drawGroundSlabs(screen *ebiten.Image) {
	halfWidth := s.cfg.Road.LaneWidth*1.5 + 8.0
	length := s.cfg.Road.GroundLength
	for i, z := range sortedZs(s.ground.Each) {
		clr := color.RGBA{34, 120, 34, 255}
		if i%2 == 0 {
			clr = color.RGBA{30, 108, 30, 255}
		}
		s.groundQuad(screen, -halfWidth, halfWidth, z, z+length, clr)
	}
}

func (s *DrivingScene) drawRoad(screen *ebiten.Image) {
	halfWidth := s.cfg.Road.LaneWidth*1.5 + 0.3
	length := s.cfg.Road.SlabLength
	for i, z := range sortedZs(s.road.Each) {
		clr := color.RGBA{60, 60, 60, 255}
		if i%2 == 0 {
			clr = color.RGBA{66, 66, 66, 255}
		}
		s.groundQuad(screen, -halfWidth, halfWidth, z, z+length, clr)
	}
	// Solid white edge lines.
	edge := color.RGBA{235, 235, 235, 255}
	for _, x := range []float64{-halfWidth, halfWidth} {
		s.groundQuad(screen, x-0.06, x+0.06, cameraZ-s.road.Span(), cameraZ-minDepth, edge)
	}
}

func (s *DrivingScene) drawMarkings(screen *ebiten.Image) {
	dash := color.RGBA{250, 250, 210, 255}
	half := s.cfg.Road.LaneWidth / 2
	for _, z := range sortedZs(s.markings.Each) {
		for _, x := range []float64{-half, half} {
			s.groundQuad(screen, x-0.035, x+0.035, z, z+1.2, dash)
		}
	}
}

func (s *DrivingScene) drawGantries(screen *ebiten.Image) {
	postX := s.cfg.Road.LaneWidth*1.5 + 0.8
	const barHeight = 3.4
	steel := color.RGBA{90, 95, 105, 255}
	panelBg := color.RGBA{18, 92, 44, 255}
	panelEdge := color.RGBA{230, 230, 230, 255}

	for _, z := range sortedZs(s.gantries.Each) {
		_, _, scale, ok := s.project(0, 0, z)
		if !ok {
			continue
		}

		// Posts.
		for _, x := range []float64{-postX, postX} {
			x0, y0, _, ok0 := s.project(x-0.1, barHeight+0.5, z)
			x1, y1, _, ok1 := s.project(x+0.1, barHeight+0.5, z)
			x2, y2, _, ok2 := s.project(x+0.1, 0, z)
			x3, y3, _, ok3 := s.project(x-0.1, 0, z)
			if ok0 && ok1 && ok2 && ok3 {
				s.fillQuad(screen, [4]float64{x0, x1, x2, x3}, [4]float64{y0, y1, y2, y3}, steel)
			}
		}

		// Crossbar.
		x0, y0, _, _ := s.project(-postX, barHeight+0.5, z)
		x1, y1, _, _ := s.project(postX, barHeight+0.5, z)
		x2, y2, _, _ := s.project(postX, barHeight+0.1, z)
		x3, y3, _, _ := s.project(-postX, barHeight+0.1, z)
		s.fillQuad(screen, [4]float64{x0, x1, x2, x3}, [4]float64{y0, y1, y2, y3}, steel)

		// Answer panels over the left and right lanes.
		for side, cx := range []float64{-s.cfg.Road.LaneWidth, s.cfg.Road.LaneWidth} {
			const halfPanel = 0.95
			px0, py0, _, _ := s.project(cx-halfPanel, barHeight, z)
			px1, py1, _, _ := s.project(cx+halfPanel, barHeight, z)
			px2, py2, _, _ := s.project(cx+halfPanel, barHeight-1.4, z)
			px3, py3, _, _ := s.project(cx-halfPanel, barHeight-1.4, z)
			s.fillQuad(screen, [4]float64{px0, px1, px2, px3}, [4]float64{py0, py1, py2, py3}, panelBg)
			s.fillQuad(screen, [4]float64{px0, px1, px1, px0}, [4]float64{py0, py1, py1 + 2, py0 + 2}, panelEdge)

			tx, ty, _, tok := s.project(cx, barHeight-0.7, z)
			if tok {
				textScale := scale * projUnit * 0.45 / 16.0
				if textScale > 0.12 {
					s.drawCenteredText(screen, s.prompt.Options[side], tx, ty, textScale, color.RGBA{255, 255, 255, 255})
				}
			}
		}
	}
}

func (s *DrivingScene) drawParticles(screen *ebiten.Image) {
	s.trail.Each(func(p *effects.Particle) {
		sx, sy, scale, ok := s.project(p.X, p.Y, p.Z)
		if !ok {
			return
		}
		r := 0.1 * p.Scale * scale * projUnit
		if r < 0.5 {
			return
		}
		a := p.Opacity
		clr := color.RGBA{uint8(255 * a), uint8(170 * a), uint8(40 * a), uint8(255 * a)}
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(r), clr, true)
	})
}

// ensureVehicleSprite returns the sprite for the selected vehicle: the
// on-disk image when one ships with the game, otherwise a procedural car in
// the catalog body color.
func (s *DrivingScene) ensureVehicleSprite() *ebiten.Image {
	if s.vehicleSprite != nil {
		return s.vehicleSprite
	}
	spec := vehicle.ByIndex(s.vehicleIndex)

	file := "assets/img/" + strings.ToLower(strings.ReplaceAll(spec.Name, " ", "_")) + ".png"
	if img, ok := assets.LoadImage(s.tracker, "sprite:"+spec.Name, file); ok {
		s.vehicleSprite = img
		return img
	}

	const w, h = 40, 64
	img := ebiten.NewImage(w, h)

	body := spec.Body
	roof := color.RGBA{body.R / 2, body.G / 2, body.B / 2, 255}
	windshield := color.RGBA{100, 180, 220, 255}
	wheel := color.RGBA{40, 40, 40, 255}

	for y := 10; y < 54; y++ {
		for x := 5; x < 35; x++ {
			img.Set(x, y, body)
		}
	}
	for y := 24; y < 44; y++ {
		for x := 8; x < 32; x++ {
			img.Set(x, y, roof)
		}
	}
	for y := 14; y < 24; y++ {
		for x := 9; x < 31; x++ {
			img.Set(x, y, windshield)
		}
	}
	for _, wy := range []int{12, 44} {
		for y := wy; y < wy+8; y++ {
			for x := 2; x < 8; x++ {
				img.Set(x, y, wheel)
			}
			for x := 32; x < 38; x++ {
				img.Set(x, y, wheel)
			}
		}
	}
	// Taillights.
	tail := color.RGBA{255, 40, 40, 255}
	for y := 53; y < 56; y++ {
		for x := 8; x < 13; x++ {
			img.Set(x, y, tail)
		}
		for x := 27; x < 32; x++ {
			img.Set(x, y, tail)
		}
	}

	s.vehicleSprite = img
	return img
}

func (s *DrivingScene) drawVehicle(screen *ebiten.Image) {
	sprite := s.ensureVehicleSprite()
	sx, sy, scale, ok := s.project(s.car.X(), 0, vehicleZ)
	if !ok {
		return
	}

	w := float64(sprite.Bounds().Dx())
	h := float64(sprite.Bounds().Dy())
	// World width of the car body is ~1.4 units.
	px := 1.4 * scale * projUnit / w

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(s.car.Tilt())
	op.GeoM.Scale(px, px)
	op.GeoM.Translate(sx, sy-h*px/2)
	screen.DrawImage(sprite, op)
}
