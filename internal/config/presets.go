package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/bouncelab/internal/dynamo"
)

var Presets = map[string]*Config{
	"calm": preset(func(c *Config) {
		c.Bodies.Count = 8
		c.SpringFactor = 0.05
	}),
	"zero-g": preset(func(c *Config) {
		c.Gravity.Enabled = false
		c.Restitution = 0.9
		c.Bodies.Count = 25
	}),
	"crowd": preset(func(c *Config) {
		c.Bodies.Count = 80
		c.Bodies.MinRadius = 12
		c.Bodies.MaxRadius = 24
	}),
	"billiards": preset(func(c *Config) {
		c.Mode = "kinematic"
		c.Gravity.Enabled = false
		c.Bodies.Count = 16
		c.Bodies.MinRadius = 30
		c.Bodies.MaxRadius = 30
	}),
}

func preset(mutate func(*Config)) *Config {
	c := DefaultConfig()
	mutate(c)
	return c
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("preset %q: %w", name, dynamo.ErrUnknownPreset)
	}
	c := *p
	c.Intro.Texts = append([]string(nil), p.Intro.Texts...)
	return &c, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
