// Package scenery renders the background decoration: sky, drifting clouds
// and roadside vegetation. The scene drives it through the Collaborator
// interface and never looks inside; a failed initialization just means a
// plainer horizon.
package scenery

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Collaborator is the boundary the driving scene sees. Update advances
// decoration in lockstep with the frame: advance is the world distance
// traveled this frame and factor is the frame-time scale against nominal
// 60fps, so all decoration motion stays proportional to elapsed real time.
type Collaborator interface {
	Initialize(progress float64) error
	Update(progress, advance, factor float64)
	Draw(screen *ebiten.Image)
	Dispose()
}

type cloud struct {
	x, y   float64
	drift  float64
	sprite *ebiten.Image
}

// Countryside is the default collaborator: procedural vegetation strips that
// loop with travel distance, plus slow horizontal cloud drift.
type Countryside struct {
	width, height int
	horizon       float64

	strip       *ebiten.Image
	stripHeight int
	clouds      []cloud
	offset      float64
	progress    float64
	initialized bool
}

// NewCountryside sizes the scenery for the screen.
func NewCountryside(width, height int) *Countryside {
	return &Countryside{
		width:   width,
		height:  height,
		horizon: float64(height) * 0.42,
	}
}

// Initialize generates the vegetation strip and clouds from a fixed seed so
// the world looks the same every run.
func (c *Countryside) Initialize(progress float64) error {
	rng := rand.New(rand.NewSource(1977))
	c.progress = progress

	c.stripHeight = c.height
	c.strip = ebiten.NewImage(c.width, c.stripHeight)
	c.generateVegetation(c.strip, rng)

	for i := 0; i < 5; i++ {
		c.clouds = append(c.clouds, cloud{
			x:      rng.Float64() * float64(c.width),
			y:      20 + rng.Float64()*(c.horizon*0.5),
			drift:  0.1 + rng.Float64()*0.25,
			sprite: makeCloud(rng),
		})
	}

	c.initialized = true
	return nil
}

// generateVegetation scatters trees and bushes down the strip, denser toward
// the screen edges so the road corridor stays clear.
func (c *Countryside) generateVegetation(img *ebiten.Image, rng *rand.Rand) {
	img.Fill(color.RGBA{30, 100, 30, 255})

	// Grass shade variation.
	for i := 0; i < c.width*c.stripHeight/12; i++ {
		x := rng.Intn(c.width)
		y := rng.Intn(c.stripHeight)
		shade := uint8(80 + rng.Intn(60))
		img.Set(x, y, color.RGBA{30, shade, 30, 255})
	}

	corridorLeft := c.width/2 - c.width/6
	corridorRight := c.width/2 + c.width/6
	for y := 0; y < c.stripHeight; y += 14 {
		for x := 0; x < c.width; x += 8 + rng.Intn(20) {
			if x > corridorLeft && x < corridorRight {
				continue
			}
			drawX := x + rng.Intn(10) - 5
			drawY := y + rng.Intn(10) - 5
			if rng.Float64() < 0.3 {
				drawTree(img, drawX, drawY, c.width, c.stripHeight, rng)
			} else {
				drawBush(img, drawX, drawY, c.width, c.stripHeight, rng)
			}
		}
	}
}

// Update scrolls the vegetation by the frame's travel distance and drifts
// the clouds by the frame-time factor.
func (c *Countryside) Update(progress, advance, factor float64) {
	if !c.initialized {
		return
	}
	c.progress = progress
	// Vegetation scrolls a little slower than the road for depth.
	c.offset += advance * 14
	for i := range c.clouds {
		c.clouds[i].x += c.clouds[i].drift * factor
		if c.clouds[i].x > float64(c.width)+80 {
			c.clouds[i].x = -80
		}
	}
}

// Draw paints sky, clouds and the looping vegetation below the horizon.
func (c *Countryside) Draw(screen *ebiten.Image) {
	w := float64(c.width)

	// Sky: two bands fading toward the horizon.
	drawRect(screen, 0, 0, w, c.horizon*0.6, color.RGBA{92, 148, 252, 255})
	drawRect(screen, 0, c.horizon*0.6, w, c.horizon*0.4, color.RGBA{135, 206, 235, 255})

	if !c.initialized {
		// Scenery failed to initialize: flat ground, nothing else.
		drawRect(screen, 0, c.horizon, w, float64(c.height)-c.horizon, color.RGBA{30, 100, 30, 255})
		return
	}

	for i := range c.clouds {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(c.clouds[i].x, c.clouds[i].y)
		screen.DrawImage(c.clouds[i].sprite, op)
	}

	// Two copies of the strip tile vertically, keyed to travel distance.
	start := math.Mod(c.offset, float64(c.stripHeight))
	for _, y := range []float64{start - float64(c.stripHeight), start} {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(0, c.horizon+y)
		screen.DrawImage(c.strip, op)
	}
}

// Dispose releases the generated images.
func (c *Countryside) Dispose() {
	if c.strip != nil {
		c.strip.Deallocate()
		c.strip = nil
	}
	for i := range c.clouds {
		if c.clouds[i].sprite != nil {
			c.clouds[i].sprite.Deallocate()
		}
	}
	c.clouds = nil
	c.initialized = false
}

// drawTree draws a simple pine: trunk plus three triangular leaf layers.
func drawTree(img *ebiten.Image, x, y, maxW, maxH int, rng *rand.Rand) {
	height := 30 + rng.Intn(24)
	width := 16 + rng.Intn(12)

	trunkColor := color.RGBA{60, 40, 20, 255}
	trunkW := 3 + rng.Intn(3)
	for ty := 0; ty < height/3; ty++ {
		for tx := -trunkW / 2; tx < trunkW/2; tx++ {
			setPixel(img, x+tx, y-ty, maxW, maxH, trunkColor)
		}
	}

	leaves := color.RGBA{
		uint8(20 + rng.Intn(30)),
		uint8(80 + rng.Intn(60)),
		uint8(20 + rng.Intn(30)),
		255,
	}
	for l := 0; l < 3; l++ {
		layerY := y - (height / 3) - (l * height / 4)
		layerW := width - l*4
		if layerW < 4 {
			layerW = 4
		}
		for ly := 0; ly < height/3; ly++ {
			rowW := layerW * (height/3 - ly) / (height / 3)
			for lx := -rowW / 2; lx < rowW/2; lx++ {
				setPixel(img, x+lx, layerY-ly, maxW, maxH, leaves)
			}
		}
	}
}

// drawBush draws a round bush.
func drawBush(img *ebiten.Image, x, y, maxW, maxH int, rng *rand.Rand) {
	radius := 4 + rng.Intn(8)
	c := color.RGBA{
		uint8(40 + rng.Intn(40)),
		uint8(100 + rng.Intn(50)),
		uint8(40 + rng.Intn(40)),
		255,
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				setPixel(img, x+dx, y+dy, maxW, maxH, c)
			}
		}
	}
}

func setPixel(img *ebiten.Image, x, y, maxW, maxH int, c color.Color) {
	if x >= 0 && x < maxW && y >= 0 && y < maxH {
		img.Set(x, y, c)
	}
}

// makeCloud builds a small puffy cloud from overlapping circles.
func makeCloud(rng *rand.Rand) *ebiten.Image {
	img := ebiten.NewImage(96, 40)
	white := color.RGBA{250, 250, 252, 235}
	for i := 0; i < 4; i++ {
		cx := 16 + rng.Intn(64)
		cy := 14 + rng.Intn(12)
		r := 8 + rng.Intn(10)
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy <= r*r {
					setPixel(img, cx+dx, cy+dy, 96, 40, white)
				}
			}
		}
	}
	return img
}

func drawRect(screen *ebiten.Image, x, y, w, h float64, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), c, false)
}
