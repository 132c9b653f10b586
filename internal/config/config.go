package config

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/scene"
)

const (
	DefaultScene         = "curtain"
	DefaultWidth         = 400.0
	DefaultHeight        = 300.0
	DefaultGravity       = 10.0
	DefaultDt            = 0.1
	DefaultSweeps        = 5
	DefaultTearTolerance = 5.0
	DefaultTicks         = 600
	DefaultFPS           = 60
	DefaultTheme         = "linen"
)

type Vector struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vector) Vec2() mgl64.Vec2 { return mgl64.Vec2{v.X, v.Y} }

type Config struct {
	Scene   string        `yaml:"scene"`
	Grid    GridConfig    `yaml:"grid"`
	World   WorldConfig   `yaml:"world"`
	Physics PhysicsConfig `yaml:"physics"`
	Ticks   int           `yaml:"ticks"`
	FPS     int           `yaml:"fps"`
	Theme   string        `yaml:"theme"`
}

// GridConfig overrides the named scene's layout; zero fields keep the
// scene's value.
type GridConfig struct {
	Rows    int           `yaml:"rows"`
	Cols    int           `yaml:"cols"`
	Spacing float64       `yaml:"spacing"`
	OriginY float64       `yaml:"origin_y"`
	Pin     scene.PinMode `yaml:"pin"`
	Shear   *bool         `yaml:"shear"`
}

// WorldConfig is the simulated area. Margin insets every wall and should
// equal the radius particles are drawn with; 0 keeps them flush.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`
}

type PhysicsConfig struct {
	Gravity       Vector  `yaml:"gravity"`
	Wind          Vector  `yaml:"wind"`
	Dt            float64 `yaml:"dt"`
	Sweeps        int     `yaml:"sweeps"`
	TearTolerance float64 `yaml:"tear_tolerance"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene: DefaultScene,
		World: WorldConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Physics: PhysicsConfig{
			Gravity:       Vector{Y: DefaultGravity},
			Dt:            DefaultDt,
			Sweeps:        DefaultSweeps,
			TearTolerance: DefaultTearTolerance,
		},
		Ticks: DefaultTicks,
		FPS:   DefaultFPS,
		Theme: DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	return LoadWith(path, DefaultConfig())
}

// LoadWith reads path over a copy of base, so keys missing from the file
// keep base's values.
func LoadWith(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	if c.Grid.Shear != nil {
		shear := *c.Grid.Shear
		cp.Grid.Shear = &shear
	}
	return &cp
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.WorldConfig().Validate(); err != nil {
		return err
	}
	if err := c.Bounds().Validate(); err != nil {
		return err
	}
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", c.Ticks)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	return nil
}

func (c *Config) WorldConfig() cloth.Config {
	return cloth.Config{
		Gravity:       c.Physics.Gravity.Vec2(),
		Dt:            c.Physics.Dt,
		Sweeps:        c.Physics.Sweeps,
		TearTolerance: c.Physics.TearTolerance,
	}
}

func (c *Config) Bounds() cloth.Bounds {
	return cloth.Bounds{Width: c.World.Width, Height: c.World.Height, Margin: c.World.Margin}
}

// Forces returns the external forces applied on top of gravity each tick.
func (c *Config) Forces() []mgl64.Vec2 {
	if c.Physics.Wind == (Vector{}) {
		return nil
	}
	return []mgl64.Vec2{c.Physics.Wind.Vec2()}
}

// SceneSpec resolves the scene from the registry, applies grid overrides
// and centres it in the world.
func (c *Config) SceneSpec(reg *scene.Registry) (scene.Spec, error) {
	s, err := reg.Get(c.Scene)
	if err != nil {
		return scene.Spec{}, err
	}
	if c.Grid.Rows > 0 {
		s.Rows = c.Grid.Rows
	}
	if c.Grid.Cols > 0 {
		s.Cols = c.Grid.Cols
	}
	if c.Grid.Spacing > 0 {
		s.Spacing = c.Grid.Spacing
	}
	if c.Grid.OriginY > 0 {
		s.OriginY = c.Grid.OriginY
	}
	if c.Grid.Pin != "" {
		s.Pin = c.Grid.Pin
	}
	if c.Grid.Shear != nil {
		s.Shear = *c.Grid.Shear
	}
	return scene.Centered(s, c.World.Width), nil
}

// NewWorld builds the configured cloth. Layouts that do not fit the world
// inset by its margin are rejected with cloth.ErrInvalidConfig.
func (c *Config) NewWorld(reg *scene.Registry) (*cloth.World, error) {
	spec, err := c.SceneSpec(reg)
	if err != nil {
		return nil, err
	}
	b, err := scene.Build(spec)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", c.Scene, err)
	}
	if err := b.CheckBounds(c.Bounds()); err != nil {
		return nil, fmt.Errorf("scene %s: %w", c.Scene, err)
	}
	return b.Build(c.WorldConfig())
}

// Tunable lists the parameter names accepted by Set.
var Tunable = []string{"dt", "sweeps", "gravity", "wind", "tolerance", "spacing"}

// Set assigns a numeric parameter by name. Sweeps is rounded to the
// nearest integer.
func (c *Config) Set(name string, v float64) error {
	switch name {
	case "dt":
		c.Physics.Dt = v
	case "sweeps":
		c.Physics.Sweeps = int(math.Round(v))
	case "gravity":
		c.Physics.Gravity.Y = v
	case "wind":
		c.Physics.Wind.X = v
	case "tolerance":
		c.Physics.TearTolerance = v
	case "spacing":
		c.Grid.Spacing = v
	default:
		return fmt.Errorf("unknown parameter: %s (available: %v)", name, Tunable)
	}
	return nil
}
