// Package morfessorcfg is the Config surface for training and decoding: a
// single struct with defaults, validation, and YAML overlay loading, in
// the style the pack's config-heavy repos use for their own settings
// structs.
package morfessorcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/r0ller/morfessor/cost"
)

// Config is the full set of tunables for a training run.
type Config struct {
	// AlgorithmMode selects one of cost.Baseline, cost.BaselineFreq,
	// cost.BaselineLength, cost.BaselineFreqLength by its canonical name.
	AlgorithmMode string `yaml:"algorithm_mode"`
	// ConvergenceThreshold stops optimization once a pass improves the
	// overall cost by less than this many bits.
	ConvergenceThreshold float64 `yaml:"convergence_threshold"`
	// HapaxLegomenaPrior parameterizes the explicit frequency cost.
	HapaxLegomenaPrior float64 `yaml:"hapax_legomena_prior"`
	// LengthPrior is the mode of the Gamma length-cost distribution.
	LengthPrior float64 `yaml:"length_prior"`
	// LengthBeta is the scale parameter of the Gamma length-cost
	// distribution.
	LengthBeta float64 `yaml:"length_beta"`
	// Seed makes the optimizer's shuffle order reproducible. Nil draws
	// entropy from the runtime.
	Seed *uint64 `yaml:"seed,omitempty"`
	// MaxPasses bounds the optimizer's pass loop; 0 means unbounded.
	MaxPasses int `yaml:"max_passes"`
	// DecodeConcurrency is loaded and stored with the model, but no caller
	// reads it: the segment and serve subcommands take their
	// decode.SegmentAll bound from their own -concurrency flag.
	DecodeConcurrency int `yaml:"decode_concurrency"`
}

// Default returns the documented default configuration:
// baseline_freq_length mode, a convergence threshold of 0.01 bits, a
// hapax-legomena prior of 0.5, a length prior of 5.0 with beta 1.0, an
// unseeded (nondeterministic) shuffle, and unbounded passes and decode
// concurrency.
func Default() Config {
	return Config{
		AlgorithmMode:        cost.BaselineFreqLength.String(),
		ConvergenceThreshold: 0.01,
		HapaxLegomenaPrior:   0.5,
		LengthPrior:          5.0,
		LengthBeta:           1.0,
		MaxPasses:            0,
		DecodeConcurrency:    0,
	}
}

// Validate checks that every field is within the range the cost and
// optimize packages expect.
func (c Config) Validate() error {
	if _, ok := cost.ParseMode(c.AlgorithmMode); !ok {
		return fmt.Errorf("morfessorcfg: unknown algorithm_mode %q", c.AlgorithmMode)
	}
	if c.ConvergenceThreshold <= 0 {
		return fmt.Errorf("morfessorcfg: convergence_threshold must be > 0, got %v", c.ConvergenceThreshold)
	}
	if c.HapaxLegomenaPrior <= 0 || c.HapaxLegomenaPrior >= 1 {
		return fmt.Errorf("morfessorcfg: hapax_legomena_prior must be in (0, 1), got %v", c.HapaxLegomenaPrior)
	}
	if c.LengthPrior <= 0 {
		return fmt.Errorf("morfessorcfg: length_prior must be > 0, got %v", c.LengthPrior)
	}
	if c.LengthBeta <= 0 {
		return fmt.Errorf("morfessorcfg: length_beta must be > 0, got %v", c.LengthBeta)
	}
	if c.MaxPasses < 0 {
		return fmt.Errorf("morfessorcfg: max_passes must be >= 0, got %v", c.MaxPasses)
	}
	return nil
}

// Mode resolves AlgorithmMode into a cost.Mode. Callers should Validate
// first; Mode panics on an unrecognized name so a validated Config can
// never trip it.
func (c Config) Mode() cost.Mode {
	mode, ok := cost.ParseMode(c.AlgorithmMode)
	if !ok {
		panic(fmt.Sprintf("morfessorcfg: unvalidated Config with algorithm_mode %q", c.AlgorithmMode))
	}
	return mode
}

// Params extracts the cost.Params subset of the configuration.
func (c Config) Params() cost.Params {
	return cost.Params{
		HapaxLegomenaPrior: c.HapaxLegomenaPrior,
		LengthPrior:        c.LengthPrior,
		LengthBeta:         c.LengthBeta,
	}
}

// LoadYAML overlays the YAML document in data onto Default(), then
// validates the result.
func LoadYAML(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("morfessorcfg: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadYAMLFile reads path and parses it with LoadYAML.
func LoadYAMLFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("morfessorcfg: read %s: %w", path, err)
	}
	return LoadYAML(data)
}
