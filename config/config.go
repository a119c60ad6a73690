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

// Config holds all simulation configuration parameters (spec.md §6
// "Configuration block").
type Config struct {
	Physics      PhysicsConfig      `yaml:"physics"`
	Energy       EnergyConfig       `yaml:"energy"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Environment  EnvironmentConfig  `yaml:"environment"`
	Trails       TrailsConfig       `yaml:"trails"`
	Wind         WindConfig         `yaml:"wind"`
	World        WorldConfig        `yaml:"world"`
	Runtime      RuntimeConfig      `yaml:"runtime"`
	Screen       ScreenConfig       `yaml:"screen"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading.
	Derived DerivedConfig `yaml:"-"`
}

// PhysicsConfig holds the overdamped rigid-body model parameters (C8).
type PhysicsConfig struct {
	DT                     float64 `yaml:"dt"`
	Drag                   float64 `yaml:"drag"`
	VelocityBlendMin       float64 `yaml:"velocity_blend_min"`
	VelocityBlendMax       float64 `yaml:"velocity_blend_max"`
	VelocityBlendMassScale float64 `yaml:"velocity_blend_mass_scale"`
	AngularBlend           float64 `yaml:"angular_blend"`
	VelMax                 float64 `yaml:"vel_max"`
	AngVelMax              float64 `yaml:"angvel_max"`
	SignalGain             float64 `yaml:"signal_gain"`
	AlphaAngleGain         float64 `yaml:"alpha_angle_gain"`
	BetaAngleGain          float64 `yaml:"beta_angle_gain"`
	MaxSignalAngle         float64 `yaml:"max_signal_angle"`
	MaxSignalStep          float64 `yaml:"max_signal_step"`
	AngleSmoothFactor      float64 `yaml:"angle_smooth_factor"`
	PropellerTorqueCoupling float64 `yaml:"propeller_torque_coupling"`
	GammaStrength          float64 `yaml:"gamma_strength"`
	PropStrength           float64 `yaml:"prop_strength"`
	MaxRepulsionDistance   float64 `yaml:"max_repulsion_distance"`
	RepulsionK             float64 `yaml:"repulsion_k"`
	RepulsionForceCeiling  float64 `yaml:"repulsion_force_ceiling"`
	EnableGlobalRotation   bool    `yaml:"enable_global_rotation"`
}

// EnergyConfig holds energy economics parameters (C9, C11).
type EnergyConfig struct {
	EnergyCost           float64 `yaml:"energy_cost"`
	AminoMaintenanceCost float64 `yaml:"amino_maintenance_cost"`
	FoodPower            float64 `yaml:"food_power"`
	PoisonPower          float64 `yaml:"poison_power"`
	PairingCost          float64 `yaml:"pairing_cost"`
	DeathProbability     float64 `yaml:"death_probability"`
	VampireCooldownFrames int    `yaml:"vampire_cooldown_frames"`
}

// ReproductionMode selects the genome operator used on reproduction.
type ReproductionMode string

const (
	ModeAsexual ReproductionMode = "asexual"
	ModeSexual  ReproductionMode = "sexual"
)

// ReproductionConfig holds pairing/spawn/genome-translation parameters (C5, C11).
type ReproductionConfig struct {
	SpawnProbability  float64          `yaml:"spawn_probability"`
	MutationRate      float64          `yaml:"mutation_rate"`
	Mode              ReproductionMode `yaml:"mode"`
	IgnoreStopCodons  bool             `yaml:"ignore_stop_codons"`
	RequireStartCodon bool             `yaml:"require_start_codon"`
}

// EnvironmentConfig holds diffusion/advection/rain parameters (C10).
type EnvironmentConfig struct {
	AlphaBlur             float64 `yaml:"alpha_blur"`
	BetaBlur              float64 `yaml:"beta_blur"`
	GammaBlur             float64 `yaml:"gamma_blur"`
	AlphaSlopeBias        float64 `yaml:"alpha_slope_bias"`
	BetaSlopeBias         float64 `yaml:"beta_slope_bias"`
	AlphaRainMultiplier   float64 `yaml:"alpha_rain_multiplier"`
	BetaRainMultiplier    float64 `yaml:"beta_rain_multiplier"`
	ChemicalSlopeScaleAlpha float64 `yaml:"chemical_slope_scale_alpha"`
	ChemicalSlopeScaleBeta  float64 `yaml:"chemical_slope_scale_beta"`
	GammaVisMin           float64 `yaml:"gamma_vis_min"`
	GammaVisMax           float64 `yaml:"gamma_vis_max"`
	RainNoiseScale        float64 `yaml:"rain_noise_scale"`
	RainNoiseSpeed        float64 `yaml:"rain_noise_speed"`
	RainNoiseOctaves      int     `yaml:"rain_noise_octaves"`
}

// TrailsConfig holds trail grid parameters (C9, C10).
type TrailsConfig struct {
	Diffusion   float64 `yaml:"diffusion"`
	Decay       float64 `yaml:"decay"`
	Opacity     float64 `yaml:"opacity"`
	Display     bool    `yaml:"display"`
	DepositRate float64 `yaml:"deposit_rate"`
}

// WindConfig holds the global constant force (C8).
type WindConfig struct {
	Power float64 `yaml:"power"`
	DirX  float64 `yaml:"dir_x"`
	DirY  float64 `yaml:"dir_y"`
}

// WorldConfig holds the fixed-at-startup sizing parameters (spec.md §6 "World").
type WorldConfig struct {
	SimSize         float64 `yaml:"sim_size"`
	EnvGridSize     int     `yaml:"env_grid_size"`
	SpatialGridSize int     `yaml:"spatial_grid_size"`
	MaxBodyParts    int     `yaml:"max_body_parts"`
	GenomeBytes     int     `yaml:"genome_bytes"`
	MinGeneLength   int     `yaml:"min_gene_length"`
}

// RuntimeConfig holds per-run operational parameters.
type RuntimeConfig struct {
	RandomSeed          int64 `yaml:"random_seed"`
	AgentCount          int   `yaml:"agent_count"`
	MaxAgents           int   `yaml:"max_agents"`
	CPUSpawnCount       int   `yaml:"cpu_spawn_count"`
	SelectedAgentIndex  int   `yaml:"selected_agent_index"`
	DebugMode           bool  `yaml:"debug_mode"`
	Headless            bool  `yaml:"headless"`
}

// ScreenConfig holds the (out-of-scope) display settings consumed only by
// the external rendering/UI surface (spec.md §6 "Out of scope" collaborators).
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// TelemetryConfig holds the ambient observability surface (not part of the
// spec's core, carried as ambient stack regardless).
type TelemetryConfig struct {
	StatsWindowSeconds float64 `yaml:"stats_window_seconds"`
	CSVExportPath      string  `yaml:"csv_export_path"`
}

// DerivedConfig holds values computed once after loading.
type DerivedConfig struct {
	DT32          float32
	CellSize      float32 // SimSize / SpatialGridSize
	EnvCellSize   float32 // SimSize / EnvGridSize
}

var global *Config

// Init loads configuration from path, or uses embedded defaults if path is
// empty. Must be called before Cfg().
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
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.sanitize(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// sanitize checks the grid sizes called out in spec.md §7 ("Configuration
// error"): every positive-size field must actually be positive before
// anything allocates off of it, and an unset spatial grid size defaults to
// a quarter of the environment grid size. The ratio between the two grids
// is not otherwise checked.
func (c *Config) sanitize() error {
	if c.World.SimSize <= 0 {
		return fmt.Errorf("config: world.sim_size must be positive")
	}
	if c.World.EnvGridSize <= 0 {
		return fmt.Errorf("config: world.env_grid_size must be positive")
	}
	if c.World.SpatialGridSize <= 0 {
		c.World.SpatialGridSize = c.World.EnvGridSize / 4
	}
	if c.World.SpatialGridSize <= 0 {
		return fmt.Errorf("config: world.spatial_grid_size could not be satisfied")
	}
	if c.World.MaxBodyParts <= 0 {
		return fmt.Errorf("config: world.max_body_parts must be positive")
	}
	if c.World.GenomeBytes <= 0 {
		return fmt.Errorf("config: world.genome_bytes must be positive")
	}
	return nil
}

func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.CellSize = float32(c.World.SimSize) / float32(c.World.SpatialGridSize)
	c.Derived.EnvCellSize = float32(c.World.SimSize) / float32(c.World.EnvGridSize)
}

// WriteYAML saves the resolved configuration to path, for per-run archival
// alongside the telemetry/perf CSV exports.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
