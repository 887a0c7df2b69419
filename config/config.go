// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Species   []SpeciesConfig `yaml:"species"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Bookmarks BookmarksConfig `yaml:"bookmarks"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// InputConfig selects where the scenario is read from.
type InputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // auto, text, yaml or json
}

// SpeciesConfig maps a species name in the input to its feeding kind and sound.
// Kind is kept as a name here and resolved by the scenario package.
type SpeciesConfig struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	Sound string `yaml:"sound"`
}

// LoggingConfig holds slog settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TelemetryConfig holds run output settings.
type TelemetryConfig struct {
	OutputDir  string `yaml:"output_dir"`
	EventLog   string `yaml:"event_log"`
	IndexDB    string `yaml:"index_db"`
	LogStats   bool   `yaml:"log_stats"`
	PerfWindow int    `yaml:"perf_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	PopulationCrash  PopulationCrashConfig  `yaml:"population_crash"`
	HuntingSpree     HuntingSpreeConfig     `yaml:"hunting_spree"`
	StablePopulation StablePopulationConfig `yaml:"stable_population"`
}

// PopulationCrashConfig holds population crash detection parameters.
type PopulationCrashConfig struct {
	DropPercent float64 `yaml:"drop_percent"`
	MinDrop     int     `yaml:"min_drop"`
}

// HuntingSpreeConfig holds hunting spree detection parameters.
type HuntingSpreeConfig struct {
	Multiplier float64 `yaml:"multiplier"`
	MinKills   int     `yaml:"min_kills"`
}

// StablePopulationConfig holds stable population detection parameters.
type StablePopulationConfig struct {
	Days int `yaml:"days"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SpeciesIndex map[string]int // name -> index into Species
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

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Species) == 0 {
		return fmt.Errorf("config: no species defined")
	}
	seen := make(map[string]bool, len(c.Species))
	for _, sp := range c.Species {
		if sp.Name == "" || strings.ContainsAny(sp.Name, " \t") {
			return fmt.Errorf("config: invalid species name %q", sp.Name)
		}
		if seen[sp.Name] {
			return fmt.Errorf("config: duplicate species %q", sp.Name)
		}
		seen[sp.Name] = true
	}
	switch c.Input.Format {
	case "", "auto", "text", "yaml", "json":
	default:
		return fmt.Errorf("config: unknown input format %q", c.Input.Format)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.SpeciesIndex = make(map[string]int, len(c.Species))
	for i, sp := range c.Species {
		c.Derived.SpeciesIndex[sp.Name] = i
	}
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 30
	}
}

// LookupSpecies returns the species entry with the given name.
func (c *Config) LookupSpecies(name string) (SpeciesConfig, bool) {
	i, ok := c.Derived.SpeciesIndex[name]
	if !ok {
		return SpeciesConfig{}, false
	}
	return c.Species[i], true
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
