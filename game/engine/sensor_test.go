package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCPT_DistributionLookup(t *testing.T) {
	withDefault := testSensors().GPR.CPT
	saturating := testSensors().MAG.CPT

	tests := []struct {
		name     string
		cpt      CPT
		distance int
		want     Distribution
	}{
		{"exact bucket", withDefault, 1, Distribution{"HIGH": 0.5, "LOW": 0.5}},
		{"default entry", withDefault, 7, Distribution{"LOW": 1}},
		{"saturates at largest key", saturating, 9, Distribution{"STRONG": 0.3, "NONE": 0.7}},
		{"exact zero", saturating, 0, Distribution{"STRONG": 0.8, "NONE": 0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cpt.Distribution(tt.distance)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCPT_EmptyTableHasNoDistribution(t *testing.T) {
	_, err := CPT{}.Distribution(0)
	if !errors.Is(err, ErrNoDistribution) {
		t.Errorf("Expected ErrNoDistribution, got %v", err)
	}
}

func TestSensorModel_ConditionalProbability(t *testing.T) {
	vis := testSensors().VIS

	p, err := vis.ConditionalProbability(1, "SIGNS")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-12)

	p, err = vis.ConditionalProbability(0, "NOTHING")
	require.NoError(t, err)
	assert.Zero(t, p, "unlisted readings have probability zero")

	p, err = vis.ConditionalProbability(12, "NOTHING")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p, 1e-12)
}

func TestSensorModel_SampleReadingDeterministic(t *testing.T) {
	vis := testSensors().VIS
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 50; i++ {
		reading, err := vis.SampleReading(0, rng)
		require.NoError(t, err)
		assert.Equal(t, "SIGNS", reading)

		reading, err = vis.SampleReading(5, rng)
		require.NoError(t, err)
		assert.Equal(t, "NOTHING", reading)
	}
}

func TestSensorModel_SampleReadingSameSeedSameSequence(t *testing.T) {
	gpr := DefaultGameConfig().Sensors[GPR]
	model := &SensorModel{Type: GPR, Cost: gpr.Cost, CPT: gpr.CPT}

	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))
	for d := 0; d < 20; d++ {
		ra, err := model.SampleReading(d%4, a)
		require.NoError(t, err)
		rb, err := model.SampleReading(d%4, b)
		require.NoError(t, err)
		assert.Equal(t, ra, rb, "draw %d", d)
	}
}

func TestSensorModel_SampleReadingFrequencies(t *testing.T) {
	mag := testSensors().MAG
	rng := rand.New(rand.NewSource(7))

	strong := 0
	const draws = 20000
	for i := 0; i < draws; i++ {
		reading, err := mag.SampleReading(0, rng)
		require.NoError(t, err)
		if reading == "STRONG" {
			strong++
		}
	}
	assert.InDelta(t, 0.8, float64(strong)/draws, 0.02)
}

func TestSensorModel_Readings(t *testing.T) {
	assert.Equal(t, []string{"HIGH", "LOW"}, testSensors().GPR.Readings())
	assert.Equal(t, []string{"NOTHING", "SIGNS"}, testSensors().VIS.Readings())
}

func TestSensorModel_Validate(t *testing.T) {
	tests := []struct {
		name  string
		model SensorModel
		want  string
	}{
		{"negative cost", SensorModel{Type: VIS, Cost: -4, CPT: testSensors().VIS.CPT}, "VIS cost must be positive, got -4"},
		{"zero cost", SensorModel{Type: GPR, Cost: 0, CPT: testSensors().GPR.CPT}, "GPR cost must be positive, got 0"},
		{"empty table", SensorModel{Type: MAG, Cost: 3}, "no distance buckets"},
		{"bad probability", SensorModel{Type: MAG, Cost: 3, CPT: CPT{Default: Distribution{"NONE": 1.5}}}, "probability out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.model.Validate()
			assert.ErrorIs(t, err, ErrInvalidSensor)
			assert.ErrorContains(t, err, tt.want)
		})
	}

	for _, sensor := range SensorTypes {
		m, err := testSensors().Get(sensor)
		require.NoError(t, err)
		assert.NoError(t, m.Validate(), "%s", sensor)
	}
}

func TestSensorSet_Get(t *testing.T) {
	set := testSensors()

	m, err := set.Get(MAG)
	require.NoError(t, err)
	assert.Equal(t, 3, m.GetCost())

	_, err = set.Get(SensorType("SONAR"))
	assert.ErrorIs(t, err, ErrUnknownSensor)

	set.VIS = nil
	_, err = set.Get(VIS)
	assert.ErrorIs(t, err, ErrUnknownSensor)
}

func TestSensorSet_Costs(t *testing.T) {
	set := testSensors()
	assert.Equal(t, map[SensorType]int{GPR: 5, MAG: 3, VIS: 1}, set.Costs())
	assert.Equal(t, 1, set.CheapestCost())
}

func TestCPT_UnmarshalYAML(t *testing.T) {
	src := `
0: {HIGH: 0.9, LOW: 0.1}
2: {HIGH: 0.2, LOW: 0.8}
default: {LOW: 1.0}
`
	var cpt CPT
	require.NoError(t, yaml.Unmarshal([]byte(src), &cpt))

	assert.Equal(t, []int{0, 2}, cpt.Distances())
	assert.Equal(t, Distribution{"LOW": 1.0}, cpt.Default)

	// Distance 1 has no bucket and falls through to the default entry
	d, err := cpt.Distribution(1)
	require.NoError(t, err)
	assert.Equal(t, Distribution{"LOW": 1.0}, d)
}

func TestCPT_UnmarshalYAMLRejectsBadKeys(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"word key", "near: {HIGH: 1.0}\n"},
		{"negative key", "-1: {HIGH: 1.0}\n"},
		{"duplicate key", "1: {HIGH: 1.0}\n1: {LOW: 1.0}\n"},
		{"not a mapping", "- 1\n- 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cpt CPT
			if err := yaml.Unmarshal([]byte(tt.src), &cpt); err == nil {
				t.Errorf("Expected error decoding %q", tt.src)
			}
		})
	}
}

func TestCPT_JSON(t *testing.T) {
	var cpt CPT
	require.NoError(t, cpt.UnmarshalJSON([]byte(`{"0":{"SIGNS":1},"default":{"NOTHING":1}}`)))
	assert.Equal(t, Distribution{"SIGNS": 1}, cpt.Buckets[0])
	assert.Equal(t, Distribution{"NOTHING": 1}, cpt.Default)

	data, err := cpt.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"0":{"SIGNS":1},"default":{"NOTHING":1}}`, string(data))

	assert.Error(t, cpt.UnmarshalJSON([]byte(`{"far":{"NOTHING":1}}`)))
}
