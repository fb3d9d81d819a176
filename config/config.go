// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/petri/traits"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World        WorldConfig        `yaml:"world"`
	Population   PopulationConfig   `yaml:"population"`
	Run          RunConfig          `yaml:"run"`
	Genome       GenomeConfig       `yaml:"genome"`
	Food         FoodConfig         `yaml:"food"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Mutation     MutationConfig     `yaml:"mutation"`
	History      HistoryConfig      `yaml:"history"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds grid extent and population bound.
type WorldConfig struct {
	Width            int `yaml:"width"`
	Height           int `yaml:"height"`
	CarryingCapacity int `yaml:"carrying_capacity"` // max simultaneously alive organisms
}

// PopulationConfig holds founder parameters.
type PopulationConfig struct {
	Initial int `yaml:"initial"` // founders placed in the first generation
}

// RunConfig holds the evolutionary loop parameters.
type RunConfig struct {
	Generations        int   `yaml:"generations"`
	TicksPerGeneration int   `yaml:"ticks_per_generation"`
	Seed               int64 `yaml:"seed"` // 0 = time-based
	StopOnExtinction   bool  `yaml:"stop_on_extinction"`
}

// GenomeConfig holds genome shape and trait weights.
type GenomeConfig struct {
	PatternLength int           `yaml:"pattern_length"`
	Weights       WeightsConfig `yaml:"weights"`
}

// WeightsConfig holds the fixed per-trait weights.
type WeightsConfig struct {
	AgingRateDivisor float64 `yaml:"aging_rate_divisor"`
	EatingEfficiency float64 `yaml:"eating_efficiency"`
}

// FoodConfig selects the food source.
type FoodConfig struct {
	Mode           string  `yaml:"mode"`    // plants, modular, noise, none, everywhere
	Plants         int     `yaml:"plants"`  // static items for plants mode
	Modulus        int     `yaml:"modulus"` // modular mode: (x*x_factor + y*y_factor) % modulus == 0
	XFactor        int     `yaml:"x_factor"`
	YFactor        int     `yaml:"y_factor"`
	NoiseScale     float64 `yaml:"noise_scale"`     // noise mode feature frequency per cell
	NoiseThreshold float64 `yaml:"noise_threshold"` // noise mode cutoff in [0,1)
}

// ReproductionConfig holds reproduction trial parameters.
type ReproductionConfig struct {
	LifeThreshold float64 `yaml:"life_threshold"` // trial only when life exceeds this
	Chance        float64 `yaml:"chance"`         // Bernoulli probability per eligible organism per tick
}

// MutationConfig holds the mutation invocation policy.
type MutationConfig struct {
	Policy string  `yaml:"policy"` // none, birth, generation
	Rate   float64 `yaml:"rate"`
}

// HistoryConfig controls per-tick snapshot retention.
type HistoryConfig struct {
	Save bool   `yaml:"save"`
	Mode string `yaml:"mode"` // dense or compressed
}

// TelemetryConfig holds output parameters.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"`
	StrainTop int    `yaml:"strain_top"` // strains kept per generation in strains.csv
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	Weights traits.Weights
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

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Parse(data)
}

// Parse merges YAML data over the embedded defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Unmarshal into same struct - only overwrites fields present in data
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate checks that the configuration describes a runnable world.
func (c *Config) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world extent must be positive, got %dx%d", c.World.Width, c.World.Height))
	}
	if c.World.CarryingCapacity <= 0 {
		errs = append(errs, fmt.Errorf("carrying_capacity must be positive, got %d", c.World.CarryingCapacity))
	}
	if c.Population.Initial < 0 {
		errs = append(errs, fmt.Errorf("population.initial must not be negative, got %d", c.Population.Initial))
	}
	if c.World.CarryingCapacity > 0 && c.Population.Initial > c.World.CarryingCapacity {
		errs = append(errs, fmt.Errorf("population.initial %d exceeds carrying_capacity %d",
			c.Population.Initial, c.World.CarryingCapacity))
	}
	if c.Run.Generations < 0 || c.Run.TicksPerGeneration < 0 {
		errs = append(errs, errors.New("run.generations and run.ticks_per_generation must not be negative"))
	}
	if c.Genome.PatternLength <= 0 {
		errs = append(errs, fmt.Errorf("genome.pattern_length must be positive, got %d", c.Genome.PatternLength))
	}
	if c.Genome.Weights.AgingRateDivisor <= 0 || c.Genome.Weights.EatingEfficiency < 0 {
		errs = append(errs, errors.New("genome.weights: aging_rate_divisor must be positive and eating_efficiency non-negative"))
	}
	switch c.Food.Mode {
	case "plants", "modular", "noise", "none", "everywhere":
	default:
		errs = append(errs, fmt.Errorf("unknown food.mode %q", c.Food.Mode))
	}
	if c.Food.Mode == "modular" && c.Food.Modulus <= 0 {
		errs = append(errs, fmt.Errorf("food.modulus must be positive, got %d", c.Food.Modulus))
	}
	if c.Reproduction.Chance < 0 || c.Reproduction.Chance > 1 {
		errs = append(errs, fmt.Errorf("reproduction.chance must be in [0,1], got %v", c.Reproduction.Chance))
	}
	switch c.Mutation.Policy {
	case "none", "birth", "generation":
	default:
		errs = append(errs, fmt.Errorf("unknown mutation.policy %q", c.Mutation.Policy))
	}
	switch c.History.Mode {
	case "dense", "compressed":
	default:
		errs = append(errs, fmt.Errorf("unknown history.mode %q", c.History.Mode))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Weights = traits.Weights{
		traits.AgingRateDivisor: c.Genome.Weights.AgingRateDivisor,
		traits.EatingEfficiency: c.Genome.Weights.EatingEfficiency,
	}
}

// SetWeight sets the weight of the trait with the given snake_case name.
func (c *Config) SetWeight(name string, v float64) error {
	id, err := traits.ParseTraitID(name)
	if err != nil {
		return err
	}
	switch id {
	case traits.AgingRateDivisor:
		c.Genome.Weights.AgingRateDivisor = v
	case traits.EatingEfficiency:
		c.Genome.Weights.EatingEfficiency = v
	}
	c.computeDerived()
	return nil
}

// Recompute refreshes derived values after fields were edited in code.
func (c *Config) Recompute() {
	c.computeDerived()
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
