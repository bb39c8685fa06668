package sward

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ShadowConfig controls the ground shadow stamped beneath each blade.
// A Strength of 0 disables shadows entirely.
type ShadowConfig struct {
	// Strength is the shadow opacity in [0, 255].
	Strength float64 `yaml:"strength"`
	// Radius is the radius of the shadow circle in pixels.
	Radius float64 `yaml:"radius"`
	// Color is the base color of the shadow circles.
	Color Color `yaml:"color"`
	// Shift offsets the shadow relative to the base of the blade.
	Shift Vec2 `yaml:"shift"`
}

// Enabled reports whether ground shadows should be rendered.
func (s ShadowConfig) Enabled() bool {
	return s.Strength > 0
}

// Config is the constructor-time configuration for a Field. Start from
// DefaultConfig and override the fields you care about, or unmarshal a
// YAML document over the defaults with LoadConfig.
type Config struct {
	// TileSize is the edge length of a grass tile in pixels. It sets the
	// spatial granularity of simulation, caching, and rendering.
	TileSize int `yaml:"tileSize"`

	// ShadeAmount is the maximum darkening in [0, 255] applied to a blade
	// as its rotation approaches ±90 degrees.
	ShadeAmount float64 `yaml:"shadeAmount"`

	// Stiffness is the rate, in degrees per second, at which a deflected
	// blade returns to its base rotation after a force.
	Stiffness float64 `yaml:"stiffness"`

	// MaxUnique caps the number of distinct cached layouts per
	// (density, variant-set) signature. Lower values save memory at the
	// cost of visible repetition.
	MaxUnique int `yaml:"maxUnique"`

	// PlaceRange is the fractional [lo, hi] vertical band within a tile
	// where blade bases land. [1, 1] puts every base on the bottom row
	// (platformers); [0, 1] scatters them anywhere (top-down games).
	// nil uses the default [1, 1].
	PlaceRange []float64 `yaml:"placeRange"`

	// Padding is the extra canvas margin, in pixels, that contains blades
	// spilling past the tile bounds. Should be at least the height of the
	// tallest blade sprite.
	Padding int `yaml:"padding"`

	// BurnFuse is the number of ignition-pressure steps a tile absorbs
	// from burning neighbors before catching fire itself.
	BurnFuse int `yaml:"burnFuse"`

	// BurnLife is the fuel a burning tile starts with.
	BurnLife float64 `yaml:"burnLife"`

	// BurnRate is the fuel consumed per second while burning. A tile is
	// consumed (and removed from the field) after BurnLife/BurnRate
	// seconds of active burning.
	BurnRate float64 `yaml:"burnRate"`

	// Shadow configures the ground shadow pass. The zero value disables
	// shadows; EnableGroundShadows fills in sensible values.
	Shadow ShadowConfig `yaml:"shadow"`

	// Seed seeds the field's random source. Zero picks a random seed.
	// Fixing the seed makes blade layouts reproducible across runs.
	Seed uint64 `yaml:"seed"`
}

// DefaultConfig returns the configuration a Field uses when a field is
// left at its zero value.
func DefaultConfig() Config {
	return Config{
		TileSize:    15,
		ShadeAmount: 100,
		Stiffness:   360,
		MaxUnique:   10,
		PlaceRange:  []float64{1, 1},
		Padding:     13,
		BurnFuse:    60,
		BurnLife:    30,
		BurnRate:    25,
	}
}

// LoadConfig parses a YAML document into a Config, starting from
// DefaultConfig so that absent keys keep their default values.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("sward: failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// normalize fills zero-valued fields with defaults so a partially
// constructed Config behaves sensibly.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.TileSize <= 0 {
		c.TileSize = def.TileSize
	}
	if c.Stiffness <= 0 {
		c.Stiffness = def.Stiffness
	}
	if c.MaxUnique <= 0 {
		c.MaxUnique = def.MaxUnique
	}
	if c.PlaceRange == nil {
		c.PlaceRange = def.PlaceRange
	}
	if c.Padding <= 0 {
		c.Padding = def.Padding
	}
	if c.BurnFuse <= 0 {
		c.BurnFuse = def.BurnFuse
	}
	if c.BurnLife <= 0 {
		c.BurnLife = def.BurnLife
	}
	if c.BurnRate <= 0 {
		c.BurnRate = def.BurnRate
	}
}

func (c *Config) validate() error {
	if len(c.PlaceRange) != 2 {
		return fmt.Errorf("sward: placeRange must have exactly two elements, got %d", len(c.PlaceRange))
	}
	lo, hi := c.PlaceRange[0], c.PlaceRange[1]
	if lo < 0 || hi > 1 || lo > hi {
		return fmt.Errorf("sward: placeRange [%v, %v] must satisfy 0 <= lo <= hi <= 1", lo, hi)
	}
	if c.ShadeAmount < 0 || c.ShadeAmount > 255 {
		return fmt.Errorf("sward: shadeAmount %v out of range [0, 255]", c.ShadeAmount)
	}
	return nil
}
