package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bouncelab/internal/dynamo"
	"github.com/san-kum/bouncelab/internal/physics"
	"github.com/san-kum/bouncelab/internal/sim"
)

const (
	DefaultWidth      = 1280
	DefaultHeight     = 720
	DefaultBodies     = 20
	DefaultFPS        = 60
	DefaultMaxFrameDt = 0.05
)

type Config struct {
	Window         WindowConfig  `yaml:"window"`
	PixelsPerMeter float64       `yaml:"pixels_per_meter"`
	Gravity        GravityConfig `yaml:"gravity"`
	SubSteps       int           `yaml:"sub_steps"`
	Restitution    float64       `yaml:"restitution"`
	SpringFactor   float64       `yaml:"spring_factor"`
	Mode           string        `yaml:"mode"`
	Bodies         BodiesConfig  `yaml:"bodies"`
	Labels         LabelsConfig  `yaml:"labels"`
	Intro          IntroConfig   `yaml:"intro"`
	Seed           int64         `yaml:"seed"`
	FPS            int           `yaml:"fps"`
	MaxFrameDt     float64       `yaml:"max_frame_dt"`
}

// WindowConfig is the simulated area in pixels. Window front ends replace it
// with the desktop resolution unless --fixed-size is given.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type GravityConfig struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Enabled bool    `yaml:"enabled"`
}

type BodiesConfig struct {
	Count     int     `yaml:"count"`
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
}

type LabelsConfig struct {
	FadeInSpeed   float64 `yaml:"fade_in_speed"`
	FadeOutSpeed  float64 `yaml:"fade_out_speed"`
	HueRate       float64 `yaml:"hue_rate"`
	HueStep       float64 `yaml:"hue_step"`
	CharSize      int     `yaml:"char_size"`
	SolidCharSize int     `yaml:"solid_char_size"`
}

type IntroConfig struct {
	Texts []string `yaml:"texts"`
}

func DefaultConfig() *Config {
	return &Config{
		Window:         WindowConfig{Width: DefaultWidth, Height: DefaultHeight},
		PixelsPerMeter: float64(dynamo.DefaultUnits),
		Gravity:        GravityConfig{Y: physics.DefaultGravity, Enabled: true},
		SubSteps:       physics.DefaultSubSteps,
		Restitution:    physics.DefaultRestitution,
		SpringFactor:   physics.DefaultSpringFactor,
		Mode:           physics.ModeVerlet.String(),
		Bodies: BodiesConfig{
			Count:     DefaultBodies,
			MinRadius: physics.MinRadius,
			MaxRadius: physics.MaxRadius,
		},
		Labels: LabelsConfig{
			FadeInSpeed:   physics.DefaultFadeInSpeed,
			FadeOutSpeed:  physics.DefaultFadeOutSpeed,
			HueRate:       physics.DefaultHueRate,
			HueStep:       physics.DefaultHueStep,
			CharSize:      physics.DefaultCharSize,
			SolidCharSize: physics.DefaultSolidCharSize,
		},
		Intro: IntroConfig{
			Texts: []string{"bouncelab", "click to spawn", "G toggles gravity", "I dismisses this"},
		},
		FPS:        DefaultFPS,
		MaxFrameDt: DefaultMaxFrameDt,
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func ParseMode(s string) (physics.Mode, error) {
	switch s {
	case "", "verlet":
		return physics.ModeVerlet, nil
	case "kinematic":
		return physics.ModeKinematic, nil
	}
	return 0, fmt.Errorf("mode %q: %w", s, dynamo.ErrInvalidConfig)
}

func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), dynamo.ErrInvalidConfig)
	}
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return invalid("window %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.PixelsPerMeter <= 0:
		return invalid("pixels_per_meter must be positive, got %v", c.PixelsPerMeter)
	case c.SubSteps < 2:
		return invalid("sub_steps must be at least 2, got %d", c.SubSteps)
	case c.Restitution < 0 || c.Restitution > 1:
		return invalid("restitution must be in [0, 1], got %v", c.Restitution)
	case c.SpringFactor < 0:
		return invalid("spring_factor must not be negative, got %v", c.SpringFactor)
	case c.Bodies.Count < 0:
		return invalid("bodies.count must not be negative, got %d", c.Bodies.Count)
	case c.Bodies.MinRadius <= 0 || c.Bodies.MaxRadius < c.Bodies.MinRadius:
		return invalid("bodies radius range [%v, %v] is empty", c.Bodies.MinRadius, c.Bodies.MaxRadius)
	case c.Labels.FadeInSpeed <= 0 || c.Labels.FadeOutSpeed <= 0:
		return invalid("label fade speeds must be positive")
	case c.Labels.CharSize <= 0 || c.Labels.SolidCharSize <= 0:
		return invalid("label char sizes must be positive")
	case c.FPS <= 0:
		return invalid("fps must be positive, got %d", c.FPS)
	case c.MaxFrameDt < 0 || math.IsNaN(c.MaxFrameDt):
		return invalid("max_frame_dt must not be negative, got %v", c.MaxFrameDt)
	}
	if _, err := ParseMode(c.Mode); err != nil {
		return err
	}
	return nil
}

// FrameDt is the fixed step used by headless runs.
func (c *Config) FrameDt() float64 {
	return 1 / float64(c.FPS)
}

// World maps the file format onto a sim.Config.
func (c *Config) World() (sim.Config, error) {
	if err := c.Validate(); err != nil {
		return sim.Config{}, err
	}
	mode, _ := ParseMode(c.Mode)

	w, h := float64(c.Window.Width), float64(c.Window.Height)
	ps := physics.DefaultSettings(w, h)
	ps.Units = dynamo.Units(c.PixelsPerMeter)
	ps.Gravity = dynamo.Vec2{X: c.Gravity.X, Y: c.Gravity.Y}
	ps.GravityEnabled = c.Gravity.Enabled
	ps.SubSteps = c.SubSteps
	ps.Restitution = c.Restitution
	ps.SpringFactor = c.SpringFactor
	ps.Mode = mode
	ps.MinRadius = c.Bodies.MinRadius
	ps.MaxRadius = c.Bodies.MaxRadius

	texts := make([]string, len(c.Intro.Texts))
	copy(texts, c.Intro.Texts)

	return sim.Config{
		Physics: ps,
		Labels: physics.FaderOptions{
			FadeInSpeed:   c.Labels.FadeInSpeed,
			FadeOutSpeed:  c.Labels.FadeOutSpeed,
			HueRate:       c.Labels.HueRate,
			HueStep:       c.Labels.HueStep,
			CharSize:      c.Labels.CharSize,
			SolidCharSize: c.Labels.SolidCharSize,
		},
		Bodies:     c.Bodies.Count,
		IntroTexts: texts,
		MaxFrameDt: c.MaxFrameDt,
		Seed:       c.Seed,
	}, nil
}
