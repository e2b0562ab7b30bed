// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig     `yaml:"screen"`
	World     WorldConfig      `yaml:"world"`
	Grid      GridConfig       `yaml:"grid"`
	Spray     SprayConfig      `yaml:"spray"`
	Particles ParticlesConfig  `yaml:"particles"`
	Session   SessionConfig    `yaml:"session"`
	Telemetry TelemetryConfig  `yaml:"telemetry"`
	Materials []MaterialConfig `yaml:"materials"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds wound-plane dimensions. The wound plane is a square
// lying at y = plane_height, spanning [-diameter/2, diameter/2] in x and z.
type WorldConfig struct {
	Diameter    float64 `yaml:"diameter"`     // World units across the grid
	PlaneHeight float64 `yaml:"plane_height"` // Y coordinate of the wound plane
	NozzleY     float64 `yaml:"nozzle_y"`     // Emitter height above the plane
	NozzleZ     float64 `yaml:"nozzle_z"`     // Emitter offset toward the camera
}

// GridConfig holds wound-mask grid parameters.
type GridConfig struct {
	Size         int     `yaml:"size"`         // Cells per side (N)
	BoundFactor  float64 `yaml:"bound_factor"` // Viewport circle radius = factor * N
	MinLiveCells int     `yaml:"min_live_cells"`
	RetryCap     int     `yaml:"retry_cap"`       // Generation attempts before fallback
	FallbackR    float64 `yaml:"fallback_radius"` // Fallback disc radius as fraction of N
	EdgeNoise    float64 `yaml:"edge_noise"`      // Simplex outline roughening amplitude (0 disables)
	EdgeScale    float64 `yaml:"edge_scale"`      // Simplex frequency in cell units
}

// SprayConfig holds coverage-deposit parameters.
type SprayConfig struct {
	BaseRate     float64 `yaml:"base_rate"`    // Coverage per second at intensity 1, kernel center
	WorldRadius  float64 `yaml:"world_radius"` // Spray footprint radius in world units
	SigmaFactor  float64 `yaml:"sigma_factor"` // Gaussian sigma = factor * grid radius
	JitterMin    float64 `yaml:"jitter_min"`   // Per-cell deposit jitter range
	JitterMax    float64 `yaml:"jitter_max"`
	MinIntensity int     `yaml:"min_intensity"`
	MaxIntensity int     `yaml:"max_intensity"`
}

// ParticlesConfig holds droplet pool parameters.
type ParticlesConfig struct {
	PoolSize      int     `yaml:"pool_size"`
	EmitPerSecond float64 `yaml:"emit_per_second"` // Base emission rate, scaled by intensity
	BaseSpeed     float64 `yaml:"base_speed"`      // World units per second at intensity 1
	SpeedPerLevel float64 `yaml:"speed_per_level"`
	MaxAge        float64 `yaml:"max_age"`       // Seconds before forced fade-out
	DriftFreq     float64 `yaml:"drift_freq"`    // Lateral oscillation frequency (rad/s)
	DriftAmp      float64 `yaml:"drift_amp"`     // Lateral oscillation amplitude per intensity level
	TargetJitter  float64 `yaml:"target_jitter"` // Aim scatter per intensity level, world units
	AlphaStart    float64 `yaml:"alpha_start"`
	AlphaFloor    float64 `yaml:"alpha_floor"` // Deactivate below this
	FadeRate      float64 `yaml:"fade_rate"`   // Exponential alpha decay per second
}

// SessionConfig holds session state-machine parameters.
type SessionConfig struct {
	WinThreshold float64 `yaml:"win_threshold"` // Coverage percent to reach `won`
	MaxStep      float64 `yaml:"max_step"`      // Delta-time clamp in seconds
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds per stats window
}

// MaterialConfig defines a selectable coating material.
type MaterialConfig struct {
	Name     string  `yaml:"name"`
	RateMult float64 `yaml:"rate_mult"` // Deposit rate multiplier
	Color    []uint8 `yaml:"color"`     // RGB
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CellSize      float32        // World units per grid cell
	HalfDiameter  float32        // World.Diameter / 2 as float32
	GridRadius    float32        // Spray footprint radius in cells
	BoundRadius   float64        // Viewport circle radius in cells
	MaterialIndex map[string]int // name -> index for material lookup
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

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Grid.Size <= 0 {
		c.Grid.Size = 128
	}

	c.Derived.CellSize = float32(c.World.Diameter / float64(c.Grid.Size))
	c.Derived.HalfDiameter = float32(c.World.Diameter / 2)
	c.Derived.GridRadius = float32(c.Spray.WorldRadius) / c.Derived.CellSize
	c.Derived.BoundRadius = c.Grid.BoundFactor * float64(c.Grid.Size)

	// Synthesize default materials if none specified
	if len(c.Materials) == 0 {
		c.Materials = []MaterialConfig{
			{Name: "hydrogel", RateMult: 1.0, Color: []uint8{90, 200, 250}},
			{Name: "fibrin", RateMult: 0.85, Color: []uint8{240, 220, 130}},
			{Name: "collagen", RateMult: 1.15, Color: []uint8{250, 160, 190}},
		}
	}

	// Apply defaults to materials that don't specify all fields
	for i := range c.Materials {
		m := &c.Materials[i]
		if m.RateMult == 0 {
			m.RateMult = 1.0
		}
		if len(m.Color) != 3 {
			m.Color = []uint8{200, 200, 200}
		}
	}

	// Build material index for fast lookup
	c.Derived.MaterialIndex = make(map[string]int, len(c.Materials))
	for i, m := range c.Materials {
		c.Derived.MaterialIndex[m.Name] = i
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
