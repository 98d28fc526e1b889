package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every gameplay tunable. Values are compiled defaults that can
// be overridden by a yaml file; an absent file is not an error.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Road   RoadConfig   `yaml:"road"`
	Speed  SpeedConfig  `yaml:"speed"`
	Lane   LaneConfig   `yaml:"lane"`
	Boost  BoostConfig  `yaml:"boost"`
	Timing TimingConfig `yaml:"timing"`
	Swipe  SwipeConfig  `yaml:"swipe"`
}

// WindowConfig controls the host window.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// RoadConfig sizes the looping geometry pools. All distances are in world
// units along the z axis (positive z moves toward the camera).
type RoadConfig struct {
	LaneWidth float64 `yaml:"laneWidth"`

	SlabLength float64 `yaml:"slabLength"`
	SlabCount  int     `yaml:"slabCount"`

	MarkingSpacing float64 `yaml:"markingSpacing"`
	MarkingCount   int     `yaml:"markingCount"`

	GroundLength float64 `yaml:"groundLength"`
	GroundCount  int     `yaml:"groundCount"`

	GantrySpacing float64 `yaml:"gantrySpacing"`
	GantryCount   int     `yaml:"gantryCount"`

	// RepositionThreshold sits behind the camera so a segment never wraps
	// while still on screen.
	RepositionThreshold float64 `yaml:"repositionThreshold"`

	// TriggerThreshold is the z window just past the vehicle within which a
	// gantry resolves an answer.
	TriggerThreshold float64 `yaml:"triggerThreshold"`
}

// SpeedConfig feeds the speed model.
type SpeedConfig struct {
	Base        float64 `yaml:"base"`
	BoostFactor float64 `yaml:"boostFactor"`
}

// LaneConfig controls the lane-change animation.
type LaneConfig struct {
	ChangeSeconds  float64 `yaml:"changeSeconds"`
	MaxTiltRadians float64 `yaml:"maxTiltRadians"`
}

// BoostConfig controls the particle trail.
type BoostConfig struct {
	BurstMin        int     `yaml:"burstMin"`
	BurstMax        int     `yaml:"burstMax"`
	TrickleScale    float64 `yaml:"trickleScale"`
	LifespanSeconds float64 `yaml:"lifespanSeconds"`
	MaxParticles    int     `yaml:"maxParticles"`
}

// TimingConfig gathers the short bounded delays around selection handling.
// The exact values are tunable, not contracts.
type TimingConfig struct {
	SelectionGuardSeconds float64 `yaml:"selectionGuardSeconds"`
	FeedbackSeconds       float64 `yaml:"feedbackSeconds"`
	LoadingGraceSeconds   float64 `yaml:"loadingGraceSeconds"`
}

// SwipeConfig holds the touch gesture thresholds.
type SwipeConfig struct {
	MinDistance   float64 `yaml:"minDistance"`
	MaxSeconds    float64 `yaml:"maxSeconds"`
	AxisDominance float64 `yaml:"axisDominance"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1024,
			Height: 600,
			Title:  "Flash Lingo",
		},
		Road: RoadConfig{
			LaneWidth:           2.2,
			SlabLength:          12.0,
			SlabCount:           8,
			MarkingSpacing:      6.0,
			MarkingCount:        16,
			GroundLength:        24.0,
			GroundCount:         5,
			GantrySpacing:       160.0,
			GantryCount:         3,
			RepositionThreshold: 10.0,
			TriggerThreshold:    2.0,
		},
		Speed: SpeedConfig{
			Base:        0.55,
			BoostFactor: 2.5,
		},
		Lane: LaneConfig{
			ChangeSeconds:  0.35,
			MaxTiltRadians: 0.28,
		},
		Boost: BoostConfig{
			BurstMin:        5,
			BurstMax:        10,
			TrickleScale:    0.35,
			LifespanSeconds: 0.9,
			MaxParticles:    256,
		},
		Timing: TimingConfig{
			SelectionGuardSeconds: 1.0,
			FeedbackSeconds:       1.2,
			LoadingGraceSeconds:   0.5,
		},
		Swipe: SwipeConfig{
			MinDistance:   40.0,
			MaxSeconds:    0.6,
			AxisDominance: 1.5,
		},
	}
}

// Load reads a yaml config overlaying the defaults. A missing path returns
// the defaults without error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Road.SlabCount < 2 || c.Road.GantryCount < 1 {
		return fmt.Errorf("road pools are undersized: %d slabs, %d gantries", c.Road.SlabCount, c.Road.GantryCount)
	}
	if c.Road.TriggerThreshold <= 0 || c.Road.TriggerThreshold >= c.Road.RepositionThreshold {
		return fmt.Errorf("trigger threshold %.2f must sit between the vehicle and the reposition plane %.2f",
			c.Road.TriggerThreshold, c.Road.RepositionThreshold)
	}
	if c.Speed.Base <= 0 || c.Speed.BoostFactor < 1 {
		return fmt.Errorf("invalid speed config: base=%.2f boost=%.2f", c.Speed.Base, c.Speed.BoostFactor)
	}
	if c.Boost.BurstMin < 1 || c.Boost.BurstMax < c.Boost.BurstMin {
		return fmt.Errorf("invalid boost burst range %d..%d", c.Boost.BurstMin, c.Boost.BurstMax)
	}
	return nil
}
