package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame_InitialState(t *testing.T) {
	game := newTestGame(t, 3, 4, 50, Position{Row: 2, Col: 3})

	state := game.GetState()
	if state.Budget != 50 || state.InitialBudget != 50 {
		t.Errorf("Expected budget 50/50, got %d/%d", state.Budget, state.InitialBudget)
	}
	if state.GameOver || state.Victory || state.Score != 0 || state.SurveyCount != 0 {
		t.Errorf("Expected fresh game, got %+v", state)
	}
	if state.Artifact != nil {
		t.Errorf("Artifact must stay hidden while the game is active")
	}
	assert.InDelta(t, 1.0, SumGrid(state.Probabilities), 1e-9)
	assert.Len(t, state.Probabilities, 3)
	assert.Len(t, state.Probabilities[0], 4)
}

func TestNewGame_InvalidParams(t *testing.T) {
	_, err := NewGame(testSensors(), GameParams{Rows: 1, Columns: 5, Budget: 10})
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = NewGame(testSensors(), GameParams{Rows: 3, Columns: 3, Budget: -1})
	assert.ErrorIs(t, err, ErrInvalidBudget)

	sensors := testSensors()
	sensors.MAG = nil
	_, err = NewGame(sensors, GameParams{Rows: 3, Columns: 3, Budget: 10})
	assert.ErrorIs(t, err, ErrUnknownSensor)

	// A negative cost would let a survey raise the budget
	sensors = testSensors()
	sensors.VIS.Cost = -4
	_, err = NewGame(sensors, GameParams{Rows: 3, Columns: 3, Budget: 10})
	assert.ErrorIs(t, err, ErrInvalidSensor)

	sensors = testSensors()
	sensors.GPR.Cost = 0
	_, err = NewGame(sensors, GameParams{Rows: 3, Columns: 3, Budget: 10})
	assert.ErrorIs(t, err, ErrInvalidSensor)

	sensors = testSensors()
	sensors.MAG.CPT = CPT{Buckets: map[int]Distribution{0: {"STRONG": 0.5, "NONE": 0.2}}}
	_, err = NewGame(sensors, GameParams{Rows: 3, Columns: 3, Budget: 10})
	assert.ErrorIs(t, err, ErrInvalidSensor)
	assert.ErrorContains(t, err, "sum to 1")
}

func TestGame_ExampleScenario(t *testing.T) {
	game := newTestGame(t, 2, 2, 10, Position{Row: 1, Col: 1})

	result, err := game.Survey(Position{Row: 0, Col: 0}, VIS)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Reading)
	assert.Equal(t, 1, result.Cost)
	assert.Equal(t, 9, game.GetBudget())

	grid := game.ProbabilityGrid()
	assert.InDelta(t, 1.0, SumGrid(grid), 1e-9)
	assert.GreaterOrEqual(t, grid[1][1], 0.25)

	dig, err := game.Excavate(Position{Row: 1, Col: 1})
	require.NoError(t, err)
	assert.True(t, dig.Success)
	assert.Equal(t, 9, dig.Score)

	after, err := game.Survey(Position{Row: 0, Col: 1}, VIS)
	require.NoError(t, err)
	assert.False(t, after.Success)
	assert.Equal(t, MsgGameOver, after.Message)
	assert.Empty(t, after.Reading)
}

func TestGame_SurveyUpdatesCounters(t *testing.T) {
	game := newTestGame(t, 3, 3, 20, Position{Row: 0, Col: 0})

	_, err := game.Survey(Position{Row: 2, Col: 2}, GPR)
	require.NoError(t, err)
	_, err = game.Survey(Position{Row: 1, Col: 1}, MAG)
	require.NoError(t, err)

	status := game.Status()
	assert.Equal(t, 12, status.Budget)
	assert.Equal(t, 2, status.SurveyCount)

	history := game.SurveyHistory()
	require.Len(t, history, 2)
	assert.Equal(t, 1, history[0].SurveyNumber)
	assert.Equal(t, GPR, history[0].Sensor)
	assert.Equal(t, "LOW", history[0].Reading)
	assert.Equal(t, 15, history[0].BudgetAfter)
	assert.Equal(t, int64(1700000000), history[0].Timestamp)

	last := game.GetLastSurvey()
	require.NotNil(t, last)
	assert.Equal(t, 2, last.SurveyNumber)
	assert.Equal(t, 12, last.BudgetAfter)
}

func TestGame_RepeatSurveyReplacesObservation(t *testing.T) {
	game := newTestGame(t, 3, 3, 20, Position{Row: 2, Col: 2})
	pos := Position{Row: 0, Col: 0}

	_, err := game.Survey(pos, VIS)
	require.NoError(t, err)
	first := game.ProbabilityGrid()

	_, err = game.Survey(pos, VIS)
	require.NoError(t, err)

	// Same deterministic reading twice leaves the belief unchanged
	assert.Equal(t, first, game.ProbabilityGrid())
	assert.Equal(t, 1, game.observations.Len())
	assert.Equal(t, 2, game.Status().SurveyCount)
}

func TestGame_InsufficientFunds(t *testing.T) {
	game := newTestGame(t, 3, 3, 4, Position{Row: 1, Col: 1})
	before := game.GetState()

	result, err := game.Survey(Position{Row: 0, Col: 0}, GPR)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, MsgInsufficientFunds, result.Message)
	assert.Equal(t, before, game.GetState(), "a refused survey must not change state")

	// A cheaper sensor still works
	result, err = game.Survey(Position{Row: 0, Col: 0}, MAG)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Budget)
}

func TestGame_BudgetNeverIncreases(t *testing.T) {
	game := newTestGame(t, 4, 4, 30, Position{Row: 3, Col: 1})
	sensors := []SensorType{GPR, MAG, VIS}

	prev := game.GetBudget()
	for i := 0; i < 40; i++ {
		pos := Position{Row: i % 4, Col: (i / 4) % 4}
		result, err := game.Survey(pos, sensors[i%3])
		require.NoError(t, err)

		budget := game.GetBudget()
		if budget > prev {
			t.Fatalf("budget rose from %d to %d", prev, budget)
		}
		if !result.Success && budget != prev {
			t.Fatalf("soft failure changed budget from %d to %d", prev, budget)
		}
		assert.GreaterOrEqual(t, budget, 0)
		prev = budget
	}
	assert.InDelta(t, 1.0, gridSum(t, game), 1e-9)
}

func TestGame_InvalidSurveyInput(t *testing.T) {
	game := newTestGame(t, 3, 3, 20, Position{Row: 1, Col: 1})
	before := game.GetState()

	_, err := game.Survey(Position{Row: 3, Col: 0}, VIS)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = game.Survey(Position{Row: 0, Col: -1}, VIS)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = game.Survey(Position{Row: 0, Col: 0}, SensorType("XRAY"))
	assert.ErrorIs(t, err, ErrUnknownSensor)

	assert.Equal(t, before, game.GetState())
}

func TestGame_ExcavateMiss(t *testing.T) {
	game := newTestGame(t, 3, 3, 20, Position{Row: 2, Col: 2})

	result, err := game.Excavate(Position{Row: 0, Col: 0})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 0, result.Score)
	require.NotNil(t, result.Artifact)
	assert.Equal(t, Position{Row: 2, Col: 2}, *result.Artifact)

	status := game.Status()
	assert.True(t, status.GameOver)
	assert.False(t, status.Victory)
	require.NotNil(t, status.Artifact)
}

func TestGame_ExcavateIsTerminal(t *testing.T) {
	game := newTestGame(t, 3, 3, 20, Position{Row: 1, Col: 0})

	_, err := game.Survey(Position{Row: 1, Col: 1}, VIS)
	require.NoError(t, err)
	first, err := game.Excavate(Position{Row: 1, Col: 0})
	require.NoError(t, err)
	require.True(t, first.Success)
	assert.Equal(t, 19, first.Score)

	state := game.GetState()

	again, err := game.Excavate(Position{Row: 2, Col: 2})
	require.NoError(t, err)
	assert.False(t, again.Success)
	assert.Equal(t, MsgGameOver, again.Message)

	survey, err := game.Survey(Position{Row: 0, Col: 0}, VIS)
	require.NoError(t, err)
	assert.False(t, survey.Success)

	assert.Equal(t, state, game.GetState(), "no mutation after game over")
	assert.Equal(t, 19, game.GetScore())
}

func TestGame_ExcavateOutOfBoundsKeepsGameActive(t *testing.T) {
	game := newTestGame(t, 3, 3, 20, Position{Row: 1, Col: 1})

	_, err := game.Excavate(Position{Row: 5, Col: 5})
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.False(t, game.IsGameOver())
}

func TestGame_ZeroBudget(t *testing.T) {
	game := newTestGame(t, 2, 2, 0, Position{Row: 0, Col: 1})

	result, err := game.Survey(Position{Row: 0, Col: 0}, VIS)
	require.NoError(t, err)
	assert.Equal(t, MsgInsufficientFunds, result.Message)

	dig, err := game.Excavate(Position{Row: 0, Col: 1})
	require.NoError(t, err)
	assert.True(t, dig.Success)
	assert.Equal(t, 0, dig.Score)
	assert.True(t, game.IsVictory())
}

func TestGame_SameSeedSameGame(t *testing.T) {
	config := DefaultGameConfig()
	a, err := NewEngine(config, 42)
	require.NoError(t, err)
	b, err := NewEngine(config, 42)
	require.NoError(t, err)

	assert.Equal(t, a.grid.artifact, b.grid.artifact)

	for i := 0; i < 15; i++ {
		pos := Position{Row: (i * 3) % 10, Col: (i * 7) % 10}
		sensor := SensorTypes[i%len(SensorTypes)]
		ra, err := a.Survey(pos, sensor)
		require.NoError(t, err)
		rb, err := b.Survey(pos, sensor)
		require.NoError(t, err)
		assert.Equal(t, ra.Reading, rb.Reading, "survey %d", i)
	}
	assert.Equal(t, a.ProbabilityGrid(), b.ProbabilityGrid())
}

func TestGame_CellInfo(t *testing.T) {
	game := newTestGame(t, 3, 3, 20, Position{Row: 0, Col: 0})
	_, err := game.Survey(Position{Row: 0, Col: 0}, VIS)
	require.NoError(t, err)

	info, err := game.CellInfo(Position{Row: 0, Col: 0})
	require.NoError(t, err)
	assert.Equal(t, []SensorStatus{
		{Sensor: GPR},
		{Sensor: MAG},
		{Sensor: VIS, Reading: "SIGNS", Used: true},
	}, info.Sensors)
	// SIGNS weighs 1 at the cell and 0.5 at its two neighbours
	assert.InDelta(t, 0.5, info.Probability, 1e-12)

	_, err = game.CellInfo(Position{Row: 9, Col: 9})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestGame_BestGuess(t *testing.T) {
	game := newTestGame(t, 3, 3, 20, Position{Row: 2, Col: 1})

	pos, p := game.BestGuess()
	assert.Equal(t, Position{}, pos, "ties break to the first cell in row-major order")
	assert.InDelta(t, 1.0/9, p, 1e-12)

	_, err := game.Survey(Position{Row: 2, Col: 1}, VIS)
	require.NoError(t, err)
	pos, p = game.BestGuess()
	assert.Equal(t, Position{Row: 2, Col: 1}, pos)
	assert.InDelta(t, 0.4, p, 1e-12)
}

func TestGame_PriorOption(t *testing.T) {
	game, err := NewEngine(testConfig(), 5, WithPrior(PriorInitial))
	require.NoError(t, err)
	assert.Equal(t, PriorInitial, game.bayes.prior)
	assert.Equal(t, "test", game.ConfigName())
	assert.Equal(t, GameParams{Rows: 3, Columns: 3, Seed: 5, Budget: 20}, game.Params())
}
