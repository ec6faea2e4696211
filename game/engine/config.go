package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SensorSpec is the configured cost and CPT for one sensor kind
type SensorSpec struct {
	Cost int `json:"cost" yaml:"cost"`
	CPT  CPT `json:"cpt" yaml:"cpt"`
}

// GameConfig is a sensor profile: grid defaults plus the per-sensor CPTs
type GameConfig struct {
	Name        string                    `json:"name" yaml:"name"`
	Description string                    `json:"description" yaml:"description"`
	Rows        int                       `json:"rows" yaml:"rows"`
	Columns     int                       `json:"columns" yaml:"columns"`
	Budget      int                       `json:"budget" yaml:"budget"`
	Sensors     map[SensorType]SensorSpec `json:"sensors" yaml:"sensors"`
}

// Params returns the profile's grid size and budget
func (c *GameConfig) Params() GameParams {
	return GameParams{Rows: c.Rows, Columns: c.Columns, Budget: c.Budget}
}

// SensorSet builds the sensor models described by the profile
func (c *GameConfig) SensorSet() (SensorSet, error) {
	var set SensorSet
	for _, t := range SensorTypes {
		spec, ok := c.Sensors[t]
		if !ok {
			return SensorSet{}, fmt.Errorf("config %q: %w: %s is missing", c.Name, ErrUnknownSensor, t)
		}
		model := &SensorModel{Type: t, Cost: spec.Cost, CPT: spec.CPT}
		switch t {
		case GPR:
			set.GPR = model
		case MAG:
			set.MAG = model
		case VIS:
			set.VIS = model
		}
	}
	return set, nil
}

// ValidateGameConfig validates a sensor profile for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	if err := validateDimensions(config.Rows, config.Columns); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if config.Budget < 0 || config.Budget > MaxBudget {
		return fmt.Errorf("config validation: budget must be between 0 and %d, got %d", MaxBudget, config.Budget)
	}

	for name := range config.Sensors {
		if !name.Valid() {
			return fmt.Errorf("config validation: %w: %q", ErrUnknownSensor, name)
		}
	}

	for _, t := range SensorTypes {
		spec, ok := config.Sensors[t]
		if !ok {
			return fmt.Errorf("config validation: sensor %s is required", t)
		}
		if spec.Cost <= 0 {
			return fmt.Errorf("config validation: sensor %s cost must be positive, got %d", t, spec.Cost)
		}
		if err := validateCPT(spec.CPT); err != nil {
			return fmt.Errorf("config validation: sensor %s: %w", t, err)
		}
	}

	return nil
}

func validateCPT(cpt CPT) error {
	if len(cpt.Buckets) == 0 && cpt.Default == nil {
		return fmt.Errorf("cpt has no distance buckets and no %q entry", DefaultKey)
	}
	for _, d := range cpt.Distances() {
		if err := validateDistribution(cpt.Buckets[d]); err != nil {
			return fmt.Errorf("cpt[%d]: %w", d, err)
		}
	}
	if cpt.Default != nil {
		if err := validateDistribution(cpt.Default); err != nil {
			return fmt.Errorf("cpt[%s]: %w", DefaultKey, err)
		}
	}
	return nil
}

func validateDistribution(d Distribution) error {
	if len(d) == 0 {
		return fmt.Errorf("distribution is empty")
	}
	for _, label := range d.Labels() {
		if label == "" {
			return fmt.Errorf("reading label cannot be empty")
		}
		if p := d[label]; p < 0 || p > 1 || math.IsNaN(p) {
			return fmt.Errorf("%w: %s=%v", ErrProbabilityOutOfRange, label, p)
		}
	}
	if sum := d.Sum(); math.Abs(sum-1) > ProbabilityEpsilon {
		return fmt.Errorf("probabilities must sum to 1, got %.6f", sum)
	}
	return nil
}

// ParseGameConfig decodes a profile; format is "yaml" or "json"
func ParseGameConfig(data []byte, format string) (*GameConfig, error) {
	var config GameConfig
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	case "json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	return &config, nil
}

// FormatFromPath maps a file extension to a profile format
func FormatFromPath(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// LoadGameConfig loads and validates a profile from a YAML or JSON file
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config, err := ParseGameConfig(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}

	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultGameConfig returns the built-in "standard" profile
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:        "standard",
		Description: "Balanced 10x10 dig site with the stock sensor kit",
		Rows:        10,
		Columns:     10,
		Budget:      DefaultBudget,
		Sensors: map[SensorType]SensorSpec{
			GPR: {
				Cost: 5,
				CPT: CPT{
					Buckets: map[int]Distribution{
						0: {"HIGH": 0.85, "MEDIUM": 0.10, "LOW": 0.05},
						1: {"HIGH": 0.15, "MEDIUM": 0.70, "LOW": 0.15},
						2: {"HIGH": 0.05, "MEDIUM": 0.30, "LOW": 0.65},
					},
					Default: Distribution{"HIGH": 0.02, "MEDIUM": 0.08, "LOW": 0.90},
				},
			},
			MAG: {
				Cost: 3,
				CPT: CPT{
					Buckets: map[int]Distribution{
						0: {"STRONG": 0.70, "WEAK": 0.20, "NONE": 0.10},
						1: {"STRONG": 0.40, "WEAK": 0.40, "NONE": 0.20},
						2: {"STRONG": 0.20, "WEAK": 0.40, "NONE": 0.40},
						3: {"STRONG": 0.10, "WEAK": 0.30, "NONE": 0.60},
					},
				},
			},
			VIS: {
				Cost: 1,
				CPT: CPT{
					Buckets: map[int]Distribution{
						0: {"SIGNS": 0.50, "NOTHING": 0.50},
						1: {"SIGNS": 0.30, "NOTHING": 0.70},
						2: {"SIGNS": 0.10, "NOTHING": 0.90},
					},
				},
			},
		},
	}
}
