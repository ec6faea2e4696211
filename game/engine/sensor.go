package engine

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultKey is the CPT key for the catch-all distribution
const DefaultKey = "default"

// Distribution maps a reading label to its probability
type Distribution map[string]float64

// Labels returns the reading labels in sorted order
func (d Distribution) Labels() []string {
	labels := make([]string, 0, len(d))
	for label := range d {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Sum returns the total probability mass
func (d Distribution) Sum() float64 {
	total := 0.0
	for _, label := range d.Labels() {
		total += d[label]
	}
	return total
}

// CPT is a conditional probability table keyed by Manhattan distance.
// Buckets hold the exact distance entries; Default is optional.
type CPT struct {
	Buckets map[int]Distribution
	Default Distribution
}

// Distances returns the bucket keys in ascending order
func (t CPT) Distances() []int {
	keys := make([]int, 0, len(t.Buckets))
	for k := range t.Buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Distribution resolves the reading distribution for a distance: the exact
// bucket, then the default entry, then the bucket with the largest key.
func (t CPT) Distribution(distance int) (Distribution, error) {
	if d, ok := t.Buckets[distance]; ok {
		return d, nil
	}
	if t.Default != nil {
		return t.Default, nil
	}
	keys := t.Distances()
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoDistribution, distance)
	}
	return t.Buckets[keys[len(keys)-1]], nil
}

// UnmarshalYAML decodes a table whose keys are distances or "default"
func (t *CPT) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("cpt: line %d: expected a mapping", node.Line)
	}
	raw := make(map[string]Distribution, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var dist Distribution
		if err := value.Decode(&dist); err != nil {
			return fmt.Errorf("cpt: line %d: %w", value.Line, err)
		}
		if _, dup := raw[key.Value]; dup {
			return fmt.Errorf("cpt: line %d: duplicate key %q", key.Line, key.Value)
		}
		raw[key.Value] = dist
	}
	return t.fromRaw(raw)
}

// MarshalYAML writes distance keys as integers
func (t CPT) MarshalYAML() (interface{}, error) {
	out := make(map[interface{}]Distribution, len(t.Buckets)+1)
	for k, d := range t.Buckets {
		out[k] = d
	}
	if t.Default != nil {
		out[DefaultKey] = t.Default
	}
	return out, nil
}

// UnmarshalJSON decodes a table whose keys are distances or "default"
func (t *CPT) UnmarshalJSON(data []byte) error {
	var raw map[string]Distribution
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("cpt: %w", err)
	}
	return t.fromRaw(raw)
}

// MarshalJSON writes distance keys as decimal strings
func (t CPT) MarshalJSON() ([]byte, error) {
	out := make(map[string]Distribution, len(t.Buckets)+1)
	for k, d := range t.Buckets {
		out[strconv.Itoa(k)] = d
	}
	if t.Default != nil {
		out[DefaultKey] = t.Default
	}
	return json.Marshal(out)
}

func (t *CPT) fromRaw(raw map[string]Distribution) error {
	t.Buckets = make(map[int]Distribution, len(raw))
	t.Default = nil
	for key, dist := range raw {
		if key == DefaultKey {
			t.Default = dist
			continue
		}
		distance, err := strconv.Atoi(key)
		if err != nil || distance < 0 {
			return fmt.Errorf("cpt: invalid distance key %q (want a non-negative integer or %q)", key, DefaultKey)
		}
		if _, dup := t.Buckets[distance]; dup {
			return fmt.Errorf("cpt: duplicate distance %d", distance)
		}
		t.Buckets[distance] = dist
	}
	return nil
}

// SensorModel couples a sensor kind with its cost and CPT
type SensorModel struct {
	Type SensorType
	Cost int
	CPT  CPT
}

// Validate checks that the model has a positive cost and a well-formed CPT
func (s *SensorModel) Validate() error {
	if s.Cost <= 0 {
		return fmt.Errorf("%w: %s cost must be positive, got %d", ErrInvalidSensor, s.Type, s.Cost)
	}
	if err := validateCPT(s.CPT); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidSensor, s.Type, err)
	}
	return nil
}

// GetCost returns the fixed survey cost
func (s *SensorModel) GetCost() int {
	return s.Cost
}

// ConditionalProbability returns P(reading | distance). A reading that the
// resolved distribution does not list has probability 0.
func (s *SensorModel) ConditionalProbability(distance int, reading string) (float64, error) {
	dist, err := s.CPT.Distribution(distance)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", s.Type, err)
	}
	return dist[reading], nil
}

// SampleReading draws one reading for the given distance using rng
func (s *SensorModel) SampleReading(distance int, rng *rand.Rand) (string, error) {
	dist, err := s.CPT.Distribution(distance)
	if err != nil {
		return "", fmt.Errorf("%s: %w", s.Type, err)
	}

	labels := dist.Labels()
	total := 0.0
	for _, label := range labels {
		total += dist[label]
	}
	if total <= 0 {
		return "", fmt.Errorf("%s: %w: empty distribution at distance %d", s.Type, ErrNoDistribution, distance)
	}

	roll := rng.Float64() * total
	last := ""
	for _, label := range labels {
		w := dist[label]
		if w <= 0 {
			continue
		}
		last = label
		if roll < w {
			return label, nil
		}
		roll -= w
	}
	// Rounding can leave a sliver of mass past the final bucket
	return last, nil
}

// Readings returns every label that appears anywhere in the table
func (s *SensorModel) Readings() []string {
	seen := make(map[string]bool)
	collect := func(d Distribution) {
		for label := range d {
			seen[label] = true
		}
	}
	for _, d := range s.CPT.Buckets {
		collect(d)
	}
	collect(s.CPT.Default)

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// SensorSet holds one model per sensor kind
type SensorSet struct {
	GPR *SensorModel
	MAG *SensorModel
	VIS *SensorModel
}

// Get returns the model for a sensor kind
func (s SensorSet) Get(t SensorType) (*SensorModel, error) {
	var m *SensorModel
	switch t {
	case GPR:
		m = s.GPR
	case MAG:
		m = s.MAG
	case VIS:
		m = s.VIS
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSensor, t)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: %s is not configured", ErrUnknownSensor, t)
	}
	return m, nil
}

// Costs returns the survey cost per sensor kind
func (s SensorSet) Costs() map[SensorType]int {
	costs := make(map[SensorType]int, len(SensorTypes))
	for _, t := range SensorTypes {
		if m, err := s.Get(t); err == nil {
			costs[t] = m.GetCost()
		}
	}
	return costs
}

// CheapestCost returns the lowest survey cost among configured sensors
func (s SensorSet) CheapestCost() int {
	cheapest := -1
	for _, cost := range s.Costs() {
		if cheapest < 0 || cost < cheapest {
			cheapest = cost
		}
	}
	return cheapest
}
