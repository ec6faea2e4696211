package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testSensors returns a kit whose readings are fully determined at the
// distances the tests rely on.
func testSensors() SensorSet {
	return SensorSet{
		GPR: &SensorModel{Type: GPR, Cost: 5, CPT: CPT{
			Buckets: map[int]Distribution{
				0: {"HIGH": 1},
				1: {"HIGH": 0.5, "LOW": 0.5},
			},
			Default: Distribution{"LOW": 1},
		}},
		MAG: &SensorModel{Type: MAG, Cost: 3, CPT: CPT{
			Buckets: map[int]Distribution{
				0: {"STRONG": 0.8, "NONE": 0.2},
				1: {"STRONG": 0.3, "NONE": 0.7},
			},
		}},
		VIS: &SensorModel{Type: VIS, Cost: 1, CPT: CPT{
			Buckets: map[int]Distribution{
				0: {"SIGNS": 1},
				1: {"SIGNS": 0.5, "NOTHING": 0.5},
				2: {"NOTHING": 1},
			},
		}},
	}
}

func testConfig() *GameConfig {
	sensors := testSensors()
	return &GameConfig{
		Name:    "test",
		Rows:    3,
		Columns: 3,
		Budget:  20,
		Sensors: map[SensorType]SensorSpec{
			GPR: {Cost: sensors.GPR.Cost, CPT: sensors.GPR.CPT},
			MAG: {Cost: sensors.MAG.Cost, CPT: sensors.MAG.CPT},
			VIS: {Cost: sensors.VIS.Cost, CPT: sensors.VIS.CPT},
		},
	}
}

// newTestGame builds a game with the artifact moved to a known cell
func newTestGame(t *testing.T, rows, columns, budget int, artifact Position) *GameEngine {
	t.Helper()
	game, err := NewGame(testSensors(), GameParams{Rows: rows, Columns: columns, Seed: 1, Budget: budget},
		WithClock(func() time.Time { return time.Unix(1700000000, 0) }))
	require.NoError(t, err)
	require.True(t, game.grid.Contains(artifact))
	game.grid.artifact = artifact
	return game
}

func gridSum(t *testing.T, game *GameEngine) float64 {
	t.Helper()
	return SumGrid(game.ProbabilityGrid())
}
