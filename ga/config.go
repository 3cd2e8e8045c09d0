package ga

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/vrpga/heuristic"
)

// FitnessPolicy selects how route distance and load balance turn into a
// fitness score. Higher is better; every policy is ≤ 0.
type FitnessPolicy int

const (
	// PolicyA: −Inf when infeasible, else −distance.
	PolicyA FitnessPolicy = iota
	// PolicyB: −distance · stdev(loads).
	PolicyB
	// PolicyC: −distance · stdev(loads)².
	PolicyC
	// PolicyD: −distance · stdev(loads) when infeasible, else −distance.
	PolicyD
	// PolicyE: −distance · stdev(loads)² when infeasible, else −distance.
	PolicyE
)

var policyTags = [...]string{
	PolicyA: "a",
	PolicyB: "b",
	PolicyC: "c",
	PolicyD: "d",
	PolicyE: "e",
}

// String returns the configuration tag ("a".."e").
func (p FitnessPolicy) String() string {
	if p < 0 || int(p) >= len(policyTags) {
		return fmt.Sprintf("FitnessPolicy(%d)", int(p))
	}
	return policyTags[p]
}

// ParseFitnessPolicy maps "a".."e" to a FitnessPolicy.
func ParseFitnessPolicy(s string) (FitnessPolicy, error) {
	for i, tag := range policyTags {
		if tag == s {
			return FitnessPolicy(i), nil
		}
	}
	return 0, fmt.Errorf("fitness policy %q: %w", s, ErrConfig)
}

// MarshalText implements encoding.TextMarshaler.
func (p FitnessPolicy) MarshalText() ([]byte, error) {
	if p < 0 || int(p) >= len(policyTags) {
		return nil, fmt.Errorf("fitness policy %d: %w", int(p), ErrConfig)
	}
	return []byte(policyTags[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *FitnessPolicy) UnmarshalText(text []byte) error {
	v, err := ParseFitnessPolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Config parametrizes one Engine run.
type Config struct {
	// PopulationSize is fixed for the run; even and > 0.
	PopulationSize int `yaml:"population_size"`
	// Elitism is the elite-set size, 0 disables it; < PopulationSize.
	Elitism int `yaml:"elitism"`
	// PCross is the per-pair crossover probability, in [0,1].
	PCross float64 `yaml:"p_cross"`
	// PMut is the per-individual mutation probability, in [0,1].
	PMut float64 `yaml:"p_mut"`
	// K is the tournament size, 2 ≤ K ≤ PopulationSize.
	K int `yaml:"tournament_k"`
	// InitRatio is the share of the initial population built by
	// Construction; the rest is random. Ignored for the random method.
	InitRatio float64 `yaml:"init_ratio"`
	// RestartRatio is the share of the population replaced on restart.
	RestartRatio float64 `yaml:"restart_ratio"`

	Construction heuristic.Method `yaml:"construction"`
	Mutation     heuristic.Method `yaml:"mutation"`
	Policy       FitnessPolicy    `yaml:"fitness"`

	// Pairwise recombines every unordered pair of distinct individuals
	// instead of consecutive pairs.
	Pairwise bool `yaml:"pairwise"`

	// MaxAttempts bounds the tries spent on one unique new individual.
	MaxAttempts int `yaml:"max_attempts"`

	// Seed drives the default RNG; 0 selects a fixed default seed.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns a balanced setup for mid-sized instances.
func DefaultConfig() Config {
	return Config{
		PopulationSize: 100,
		Elitism:        2,
		PCross:         0.9,
		PMut:           0.1,
		K:              3,
		InitRatio:      0.5,
		RestartRatio:   0.5,
		Construction:   heuristic.TwoOpt,
		Mutation:       heuristic.TwoOpt,
		Policy:         PolicyD,
		MaxAttempts:    1000,
	}
}

// Validate checks every field. Errors wrap ErrConfig.
func (c Config) Validate() error {
	if c.PopulationSize <= 0 || c.PopulationSize%2 != 0 {
		return fmt.Errorf("population size %d must be even and > 0: %w", c.PopulationSize, ErrConfig)
	}
	if c.Elitism < 0 || c.Elitism >= c.PopulationSize {
		return fmt.Errorf("elitism %d outside [0,%d): %w", c.Elitism, c.PopulationSize, ErrConfig)
	}
	if !unit(c.PCross) {
		return fmt.Errorf("p_cross %v outside [0,1]: %w", c.PCross, ErrConfig)
	}
	if !unit(c.PMut) {
		return fmt.Errorf("p_mut %v outside [0,1]: %w", c.PMut, ErrConfig)
	}
	if c.K < 2 || c.K > c.PopulationSize {
		return fmt.Errorf("tournament k %d outside [2,%d]: %w", c.K, c.PopulationSize, ErrConfig)
	}
	if !unit(c.InitRatio) {
		return fmt.Errorf("init ratio %v outside [0,1]: %w", c.InitRatio, ErrConfig)
	}
	if !unit(c.RestartRatio) {
		return fmt.Errorf("restart ratio %v outside [0,1]: %w", c.RestartRatio, ErrConfig)
	}
	if _, err := c.Construction.MarshalText(); err != nil {
		return fmt.Errorf("construction: %v: %w", err, ErrConfig)
	}
	if _, err := c.Mutation.MarshalText(); err != nil {
		return fmt.Errorf("mutation: %v: %w", err, ErrConfig)
	}
	if _, err := c.Policy.MarshalText(); err != nil {
		return err
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("max attempts %d must be > 0: %w", c.MaxAttempts, ErrConfig)
	}
	return nil
}

func unit(x float64) bool {
	return !math.IsNaN(x) && x >= 0 && x <= 1
}

// ParseConfig decodes YAML over DefaultConfig, so omitted keys keep their
// defaults, and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %v: %w", err, ErrConfig)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}
