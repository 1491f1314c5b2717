// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	Grid         GridConfig         `yaml:"grid"`
	Population   PopulationConfig   `yaml:"population"`
	Seeds        SeedsConfig        `yaml:"seeds"`
	Habitat      HabitatConfig      `yaml:"habitat"`
	Cell         CellConfig         `yaml:"cell"`
	Lifeform     LifeformConfig     `yaml:"lifeform"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Combat       CombatConfig       `yaml:"combat"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
}

// ScreenConfig holds viewer display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds world dimensions and clock scaling.
type GridConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TimeScale float64 `yaml:"time_scale"` // dt units converted into the 52-unit seasonal cycle
}

// PopulationConfig holds initial population parameters.
type PopulationConfig struct {
	Initial           int `yaml:"initial"`
	MaxPerCell        int `yaml:"max_per_cell"`       // placement room limit per grid square
	PlacementAttempts int `yaml:"placement_attempts"` // bounded retries when seeding the population
}

// SeedsConfig holds one seed per independent RNG stream.
// Fixed defaults keep runs reproducible without flags.
type SeedsConfig struct {
	Habitat  int64 `yaml:"habitat"`
	Food     int64 `yaml:"food"`
	Lifeform int64 `yaml:"lifeform"`
	Combat   int64 `yaml:"combat"`
	Movement int64 `yaml:"movement"`
}

// HabitatConfig holds habitat generation parameters.
type HabitatConfig struct {
	MaxFoodMin   float64 `yaml:"max_food_min"`
	MaxFoodMax   float64 `yaml:"max_food_max"`
	RegenRateMin float64 `yaml:"regen_rate_min"`
	RegenRateMax float64 `yaml:"regen_rate_max"`

	RichPatchesMin int `yaml:"rich_patches_min"`
	RichPatchesMax int `yaml:"rich_patches_max"`
	PoorPatchesMin int `yaml:"poor_patches_min"`
	PoorPatchesMax int `yaml:"poor_patches_max"`
	PatchRadius    int `yaml:"patch_radius"` // Chebyshev radius of the square patch footprint

	RichFoodBonus   float64 `yaml:"rich_food_bonus"`   // additive max_food at patch center
	RichFoodFalloff float64 `yaml:"rich_food_falloff"` // linear drop per Manhattan step
	RichFoodCap     float64 `yaml:"rich_food_cap"`
	PoorFoodPenalty float64 `yaml:"poor_food_penalty"`
	PoorFoodFalloff float64 `yaml:"poor_food_falloff"`
	PoorFoodFloor   float64 `yaml:"poor_food_floor"`

	RichRegenBoost   float64 `yaml:"rich_regen_boost"`   // regen factor bonus at center (1 + bonus)
	RichRegenFalloff float64 `yaml:"rich_regen_falloff"` // bonus reduction per Manhattan step
	PoorRegenBase    float64 `yaml:"poor_regen_base"`    // regen factor at center
	PoorRegenFalloff float64 `yaml:"poor_regen_falloff"` // factor recovery per Manhattan step

	InitialFoodMin float64 `yaml:"initial_food_min"` // fraction of final max_food
	InitialFoodMax float64 `yaml:"initial_food_max"`
}

// CellConfig holds per-cell food dynamics parameters.
type CellConfig struct {
	DepletionChance      float64 `yaml:"depletion_chance"`       // per-tick start probability
	DepletionMinDuration float64 `yaml:"depletion_min_duration"` // time units
	DepletionMaxDuration float64 `yaml:"depletion_max_duration"`
	DepletionDrainFactor float64 `yaml:"depletion_drain_factor"` // drain = regen * seasonal * this
	WinterDecayFactor    float64 `yaml:"winter_decay_factor"`    // contraction toward seasonal max
	HasFoodThreshold     float64 `yaml:"has_food_threshold"`     // minimum usable food amount
}

// LifeformConfig holds agent trait ranges and metabolic parameters.
type LifeformConfig struct {
	MaxHealthMin         float64 `yaml:"max_health_min"`
	MaxHealthMax         float64 `yaml:"max_health_max"`
	MovementThresholdMin float64 `yaml:"movement_threshold_min"`
	MovementThresholdMax float64 `yaml:"movement_threshold_max"`
	FoodPerSecondMin     int     `yaml:"food_per_second_min"`
	FoodPerSecondMax     int     `yaml:"food_per_second_max"`

	MovementCost float64 `yaml:"movement_cost"`  // base cost, scaled by the seasonal curve
	HungerRate   float64 `yaml:"hunger_rate"`    // flat health decay per time unit
	FoodToHealth float64 `yaml:"food_to_health"` // health gained per unit of food consumed
	FadeTime     float64 `yaml:"fade_time"`      // corpse removal cutoff
}

// ReproductionConfig holds reproduction parameters.
type ReproductionConfig struct {
	HealthGate    float64 `yaml:"health_gate"`     // fraction of max health required
	ChanceMax     float64 `yaml:"chance_max"`      // success probability at a fully rich cell
	FoodRichScale float64 `yaml:"food_rich_scale"` // food amount treated as fully rich
	TraitJitter   float64 `yaml:"trait_jitter"`    // ± multiplicative perturbation on child traits
}

// CombatConfig holds combat resolution parameters.
type CombatConfig struct {
	EngageChance       float64 `yaml:"engage_chance"`         // fraction of encounters that escalate
	FightToDeathChance float64 `yaml:"fight_to_death_chance"` // chance of a zero flee threshold
	MaxRoundDamage     float64 `yaml:"max_round_damage"`      // damage cap at full relative health
	DisplaceRetries    int     `yaml:"displace_retries"`      // forced rounds before both stay put
	MaxRounds          int     `yaml:"max_rounds"`            // hard termination bound
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // window length in simulation time units
}

var global *Config

// Init loads configuration from the given path (empty = embedded defaults)
// and installs it as the package-global config.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is Init that panics on failure. Intended for tests.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global config. Panics if Init was never called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load reads configuration, starting from embedded defaults and overlaying
// the user file if a path is given.
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
		// Unmarshal into the same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the constraints world construction depends on.
func (c *Config) Validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("%w: grid dimensions %dx%d must be positive", ErrInvalidConfig, c.Grid.Width, c.Grid.Height)
	}
	if c.Population.Initial < 1 {
		return fmt.Errorf("%w: initial population %d must be at least 1", ErrInvalidConfig, c.Population.Initial)
	}
	if c.Population.MaxPerCell < 1 {
		return fmt.Errorf("%w: max_per_cell %d must be at least 1", ErrInvalidConfig, c.Population.MaxPerCell)
	}
	if room := c.Grid.Width * c.Grid.Height * c.Population.MaxPerCell; c.Population.Initial > room {
		return fmt.Errorf("%w: population %d exceeds grid room %d", ErrInvalidConfig, c.Population.Initial, room)
	}
	if c.Habitat.MaxFoodMin <= 0 || c.Habitat.MaxFoodMax < c.Habitat.MaxFoodMin {
		return fmt.Errorf("%w: max_food range [%g, %g]", ErrInvalidConfig, c.Habitat.MaxFoodMin, c.Habitat.MaxFoodMax)
	}
	if c.Habitat.RegenRateMin < 0 || c.Habitat.RegenRateMax < c.Habitat.RegenRateMin {
		return fmt.Errorf("%w: regen_rate range [%g, %g]", ErrInvalidConfig, c.Habitat.RegenRateMin, c.Habitat.RegenRateMax)
	}
	if c.Lifeform.MaxHealthMin <= 0 || c.Lifeform.MaxHealthMax < c.Lifeform.MaxHealthMin {
		return fmt.Errorf("%w: max_health range [%g, %g]", ErrInvalidConfig, c.Lifeform.MaxHealthMin, c.Lifeform.MaxHealthMax)
	}
	if c.Lifeform.FadeTime <= 0 {
		return fmt.Errorf("%w: fade_time %g must be positive", ErrInvalidConfig, c.Lifeform.FadeTime)
	}
	if c.Combat.MaxRounds < 1 {
		return fmt.Errorf("%w: combat max_rounds %d must be at least 1", ErrInvalidConfig, c.Combat.MaxRounds)
	}
	return nil
}

// WriteYAML writes the config to a file for experiment reproducibility.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
