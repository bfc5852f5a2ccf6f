// Package config provides configuration loading and access for the backdrop.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all backdrop configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Tracker   TrackerConfig   `yaml:"tracker"`
	Colors    ColorsConfig    `yaml:"colors"`
	Horizon   HorizonConfig   `yaml:"horizon"`
	Paper     PaperConfig     `yaml:"paper"`
	Grain     GrainConfig     `yaml:"grain"`
	Lights    LightsConfig    `yaml:"lights"`
	Ripple    RippleConfig    `yaml:"ripple"`
	LongPress LongPressConfig `yaml:"long_press"`
	Motion    MotionConfig    `yaml:"motion"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Visitor   VisitorConfig   `yaml:"visitor"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// RGB is a color triple in YAML sequence form: [r, g, b].
type RGB [3]uint8

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// TrackerConfig holds dwell-time and click-level bounds.
type TrackerConfig struct {
	CapSeconds int `yaml:"cap_seconds"` // Elapsed time stops counting here
	MaxLevel   int `yaml:"max_level"`   // Click level wraps to 0 after this
	TickMs     int `yaml:"tick_ms"`
}

// ColorsConfig holds background color endpoints.
type ColorsConfig struct {
	Base        RGB `yaml:"base"`
	TimeTarget  RGB `yaml:"time_target"`  // Reached at the dwell cap
	ClickTarget RGB `yaml:"click_target"` // Reached at max click level
	Transition  int `yaml:"transition_ms"`
}

// HorizonConfig holds the horizon accent line parameters.
type HorizonConfig struct {
	Base        RGB     `yaml:"base"`
	Target      RGB     `yaml:"target"`
	MinOpacity  float64 `yaml:"min_opacity"`
	OpacitySpan float64 `yaml:"opacity_span"`
	Y           float64 `yaml:"y"` // Fraction of screen height
}

// PaperConfig holds paper texture opacity weights.
type PaperConfig struct {
	BaseOpacity float64 `yaml:"base_opacity"`
	TimeWeight  float64 `yaml:"time_weight"`
	ClickWeight float64 `yaml:"click_weight"` // Added per click level
	MaxOpacity  float64 `yaml:"max_opacity"`
	TileSize    int     `yaml:"tile_size"`
}

// GrainLayerConfig describes one fractal noise layer of the grain.
type GrainLayerConfig struct {
	BaseFrequency float64 `yaml:"base_frequency"`
	Spread        float64 `yaml:"spread"` // Frequency added at full click progress
	Octaves       int     `yaml:"octaves"`
	SeedOffset    int     `yaml:"seed_offset"`
	Attenuation   float64 `yaml:"attenuation"` // Fraction of the shared base opacity
}

// GrainConfig holds dynamic grain parameters.
type GrainConfig struct {
	MinOpacity float64            `yaml:"min_opacity"`
	MaxOpacity float64            `yaml:"max_opacity"`
	RasterSize int                `yaml:"raster_size"` // Pixels per rasterized tile
	TileSize   int                `yaml:"tile_size"`   // Drawn tile size on screen
	Layers     []GrainLayerConfig `yaml:"layers"`
}

// LightsConfig holds ambient light particle parameters.
type LightsConfig struct {
	Count        int       `yaml:"count"`
	MinDelayMs   int       `yaml:"min_delay_ms"`
	MaxDelayMs   int       `yaml:"max_delay_ms"`
	MaxStaggerMs int       `yaml:"max_stagger_ms"`
	MinCycleMs   int       `yaml:"min_cycle_ms"`
	MaxCycleMs   int       `yaml:"max_cycle_ms"`
	MinSize      float64   `yaml:"min_size"`
	MaxSize      float64   `yaml:"max_size"`
	MinOpacity   float64   `yaml:"min_opacity"`
	MaxOpacity   float64   `yaml:"max_opacity"`
	Drift        []float64 `yaml:"drift"`      // Peak-to-peak drift per interior path point
	ScaleKeys    []float64 `yaml:"scale_keys"` // Scale keyframes over one cycle
	Color        RGB       `yaml:"color"`
}

// RippleConfig holds click ripple parameters.
type RippleConfig struct {
	LifetimeMs  int        `yaml:"lifetime_ms"`
	AnimationMs int        `yaml:"animation_ms"`
	RingSize    float64    `yaml:"ring_size"`
	MaxScale    float64    `yaml:"max_scale"`
	OpacityKeys []float64  `yaml:"opacity_keys"`
	Ease        [4]float64 `yaml:"ease"` // Cubic bezier control points x1, y1, x2, y2
	Color       RGB        `yaml:"color"`
}

// LongPressConfig holds long-press detector parameters.
type LongPressConfig struct {
	HoldMs   int    `yaml:"hold_ms"`
	RevealMs int    `yaml:"reveal_ms"`
	Message  string `yaml:"message"`
}

// MotionConfig holds reduced-motion detection settings.
type MotionConfig struct {
	Reduced bool     `yaml:"reduced"`
	EnvVars []string `yaml:"env_vars"` // Checked in order
}

// TelemetryConfig holds session output settings.
type TelemetryConfig struct {
	OutputDir  string `yaml:"output_dir"`
	LogTicks   bool   `yaml:"log_ticks"`
	LogSummary bool   `yaml:"log_summary"`
}

// VisitorConfig holds visitor counter settings.
type VisitorConfig struct {
	File string `yaml:"file"` // Empty = in-memory only
}

// DerivedConfig holds values computed from the loaded configuration.
type DerivedConfig struct {
	Tick            time.Duration
	ColorTransition time.Duration
	LightsMinDelay  time.Duration
	LightsMaxDelay  time.Duration
	LightsStagger   time.Duration
	LightsMinCycle  time.Duration
	LightsMaxCycle  time.Duration
	RippleLifetime  time.Duration
	RippleAnimation time.Duration
	LongPressHold   time.Duration
	LongPressReveal time.Duration
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
	// Start with embedded defaults
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

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the engine cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Tracker.CapSeconds <= 0:
		return fmt.Errorf("tracker.cap_seconds must be positive, got %d", c.Tracker.CapSeconds)
	case c.Tracker.MaxLevel <= 0:
		return fmt.Errorf("tracker.max_level must be positive, got %d", c.Tracker.MaxLevel)
	case c.Tracker.TickMs <= 0:
		return fmt.Errorf("tracker.tick_ms must be positive, got %d", c.Tracker.TickMs)
	case len(c.Grain.Layers) == 0:
		return fmt.Errorf("grain.layers must not be empty")
	case c.Lights.MaxDelayMs < c.Lights.MinDelayMs:
		return fmt.Errorf("lights.max_delay_ms (%d) below min_delay_ms (%d)", c.Lights.MaxDelayMs, c.Lights.MinDelayMs)
	case c.Lights.MaxCycleMs < c.Lights.MinCycleMs || c.Lights.MinCycleMs <= 0:
		return fmt.Errorf("lights cycle range invalid: [%d, %d]", c.Lights.MinCycleMs, c.Lights.MaxCycleMs)
	case c.Ripple.LifetimeMs <= 0 || c.Ripple.AnimationMs <= 0:
		return fmt.Errorf("ripple durations must be positive")
	case len(c.Ripple.OpacityKeys) < 2:
		return fmt.Errorf("ripple.opacity_keys needs at least 2 keys, got %d", len(c.Ripple.OpacityKeys))
	case len(c.Lights.ScaleKeys) < 2:
		return fmt.Errorf("lights.scale_keys needs at least 2 keys, got %d", len(c.Lights.ScaleKeys))
	}
	for i, l := range c.Grain.Layers {
		if l.Octaves < 1 || l.BaseFrequency <= 0 {
			return fmt.Errorf("grain.layers[%d]: octaves must be >= 1 and base_frequency > 0", i)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }

	c.Derived.Tick = ms(c.Tracker.TickMs)
	c.Derived.ColorTransition = ms(c.Colors.Transition)
	c.Derived.LightsMinDelay = ms(c.Lights.MinDelayMs)
	c.Derived.LightsMaxDelay = ms(c.Lights.MaxDelayMs)
	c.Derived.LightsStagger = ms(c.Lights.MaxStaggerMs)
	c.Derived.LightsMinCycle = ms(c.Lights.MinCycleMs)
	c.Derived.LightsMaxCycle = ms(c.Lights.MaxCycleMs)
	c.Derived.RippleLifetime = ms(c.Ripple.LifetimeMs)
	c.Derived.RippleAnimation = ms(c.Ripple.AnimationMs)
	c.Derived.LongPressHold = ms(c.LongPress.HoldMs)
	c.Derived.LongPressReveal = ms(c.LongPress.RevealMs)
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
