// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Field      FieldConfig      `yaml:"field"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Targets    TargetsConfig    `yaml:"targets"`
	Levels     LevelsConfig     `yaml:"levels"`
	Cannon     CannonConfig     `yaml:"cannon"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the graphical frontend.
type ScreenConfig struct {
	PanelWidth   int `yaml:"panel_width"`   // Control panel to the left of the field
	StatusHeight int `yaml:"status_height"` // Status bar below the field
	TargetFPS    int `yaml:"target_fps"`
}

// FieldConfig holds the playfield rectangle.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig holds driver intervals and material constants.
type PhysicsConfig struct {
	TickMS      int     `yaml:"tick_ms"`      // Interval between simulation ticks
	CountdownMS int     `yaml:"countdown_ms"` // Interval between countdown decrements
	Density     float64 `yaml:"density"`      // Target mass = density * pi * r^2
}

// ProjectileConfig holds projectile parameters.
type ProjectileConfig struct {
	Radius float64 `yaml:"radius"`
}

// TargetsConfig holds target batch generation parameters.
type TargetsConfig struct {
	MinRadius     int      `yaml:"min_radius"`
	MaxRadius     int      `yaml:"max_radius"`
	SpawnMinX     int      `yaml:"spawn_min_x"`     // Targets spawn right of this line, clear of the cannon
	BaseCount     int      `yaml:"base_count"`      // Targets at level 1
	CountPerLevel int      `yaml:"count_per_level"` // Extra targets per level
	BaseSpeed     float64  `yaml:"base_speed"`
	SpeedPerLevel float64  `yaml:"speed_per_level"`
	SpeedBand     float64  `yaml:"speed_band"` // Per-target speed drawn from [base-band, base]
	Palette       []string `yaml:"palette"`
}

// LevelsConfig holds level progression parameters.
type LevelsConfig struct {
	MaxLevel     int `yaml:"max_level"`
	InitialTime  int `yaml:"initial_time"`   // Seconds at level 1
	TimePerLevel int `yaml:"time_per_level"` // Seconds removed per level
	MinTime      int `yaml:"min_time"`       // Floor for the time budget
}

// CannonConfig holds emitter geometry and slider ranges.
type CannonConfig struct {
	BaseX         float64 `yaml:"base_x"` // Barrel pivot X
	MinAngle      float64 `yaml:"min_angle"`
	MaxAngle      float64 `yaml:"max_angle"`
	DefaultAngle  float64 `yaml:"default_angle"`
	MinPower      float64 `yaml:"min_power"`
	MaxPower      float64 `yaml:"max_power"`
	DefaultPower  float64 `yaml:"default_power"`
	MinBarrel     float64 `yaml:"min_barrel"`
	MaxBarrel     float64 `yaml:"max_barrel"`
	DefaultBarrel float64 `yaml:"default_barrel"`
	DefaultY      float64 `yaml:"default_y"` // 0 = middle of the field
	YMargin       float64 `yaml:"y_margin"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow   int `yaml:"perf_window"`    // Ticks averaged by the perf collector
	LogPerfEvery int `yaml:"log_perf_every"` // Ticks between perf log lines (0 = never)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickInterval      time.Duration
	CountdownInterval time.Duration
	CannonY           float64 // Effective default emitter Y
	MinCannonY        float64
	MaxCannonY        float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports values the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field size must be positive, got %vx%v", c.Field.Width, c.Field.Height))
	}
	if c.Physics.TickMS <= 0 {
		errs = append(errs, fmt.Errorf("physics.tick_ms must be positive, got %d", c.Physics.TickMS))
	}
	if c.Physics.CountdownMS <= 0 {
		errs = append(errs, fmt.Errorf("physics.countdown_ms must be positive, got %d", c.Physics.CountdownMS))
	}
	if c.Physics.Density <= 0 {
		errs = append(errs, fmt.Errorf("physics.density must be positive, got %v", c.Physics.Density))
	}
	if c.Projectile.Radius <= 0 {
		errs = append(errs, fmt.Errorf("projectile.radius must be positive, got %v", c.Projectile.Radius))
	}
	if c.Targets.MinRadius <= 0 || c.Targets.MaxRadius < c.Targets.MinRadius {
		errs = append(errs, fmt.Errorf("targets radius range [%d, %d] is invalid", c.Targets.MinRadius, c.Targets.MaxRadius))
	}
	if float64(c.Targets.SpawnMinX+2*c.Targets.MaxRadius) > c.Field.Width || float64(2*c.Targets.MaxRadius) > c.Field.Height {
		errs = append(errs, errors.New("targets do not fit inside the spawn area"))
	}
	if c.Targets.BaseCount < 1 {
		errs = append(errs, fmt.Errorf("targets.base_count must be at least 1, got %d", c.Targets.BaseCount))
	}
	if len(c.Targets.Palette) == 0 {
		errs = append(errs, errors.New("targets.palette must not be empty"))
	}
	if c.Levels.MaxLevel < 1 {
		errs = append(errs, fmt.Errorf("levels.max_level must be at least 1, got %d", c.Levels.MaxLevel))
	}
	if c.Levels.MinTime < 1 || c.Levels.InitialTime < c.Levels.MinTime {
		errs = append(errs, fmt.Errorf("levels time budget [%d, %d] is invalid", c.Levels.MinTime, c.Levels.InitialTime))
	}
	if c.Cannon.MaxAngle < c.Cannon.MinAngle || c.Cannon.MaxPower < c.Cannon.MinPower || c.Cannon.MaxBarrel < c.Cannon.MinBarrel {
		errs = append(errs, errors.New("cannon ranges must not be inverted"))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TickInterval = time.Duration(c.Physics.TickMS) * time.Millisecond
	c.Derived.CountdownInterval = time.Duration(c.Physics.CountdownMS) * time.Millisecond

	c.Derived.MinCannonY = c.Cannon.YMargin
	c.Derived.MaxCannonY = c.Field.Height - c.Cannon.YMargin
	if c.Derived.MaxCannonY < c.Derived.MinCannonY {
		c.Derived.MinCannonY, c.Derived.MaxCannonY = 0, c.Field.Height
	}

	// Emitter defaults to the middle of the field
	c.Derived.CannonY = c.Cannon.DefaultY
	if c.Derived.CannonY == 0 {
		c.Derived.CannonY = c.Field.Height / 2
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
