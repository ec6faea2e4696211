package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/artifact-hunt/api"
	"github.com/wricardo/artifact-hunt/game/config"
	"github.com/wricardo/artifact-hunt/game/engine"
	"github.com/wricardo/artifact-hunt/game/service"
	"github.com/wricardo/artifact-hunt/game/session"
)

// newTestServer serves the real API over the shipped profiles
func newTestServer(t *testing.T) (*httptest.Server, *session.Manager) {
	t.Helper()
	configs, err := config.NewManager(filepath.Join("..", "..", "configs"))
	require.NoError(t, err)
	sessions := session.NewManager()
	srv := httptest.NewServer(api.NewServer(service.NewGameService(sessions, configs), nil))
	t.Cleanup(srv.Close)
	return srv, sessions
}

func newTestPlayer(url string, threshold float64, sensors ...engine.SensorType) *player {
	return &player{
		client:   NewClient(url + "/"),
		strategy: NewGreedyStrategy(threshold, sensors),
		maxMoves: 1000,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func seeded(configID string, seed int64) service.CreateSessionRequest {
	return service.CreateSessionRequest{ConfigID: configID, Seed: &seed}
}

func testGrid() *service.ProbabilityGrid {
	return &service.ProbabilityGrid{
		Rows:    2,
		Columns: 3,
		Probabilities: [][]float64{
			{0.10, 0.05, 0.20},
			{0.05, 0.30, 0.30},
		},
		BestGuess:      engine.Position{Row: 1, Col: 1},
		MaxProbability: 0.3,
	}
}

func TestGreedyStrategy_Next(t *testing.T) {
	costs := map[engine.SensorType]int{engine.GPR: 5, engine.MAG: 3, engine.VIS: 1}
	best := engine.Position{Row: 1, Col: 1}

	tests := []struct {
		name      string
		threshold float64
		sensors   []engine.SensorType
		budget    int
		want      Action
	}{
		{
			name:      "confident enough to dig",
			threshold: 0.25,
			budget:    100,
			want:      Action{Excavate: true, Position: best},
		},
		{
			name:      "first preference affordable",
			threshold: 0.9,
			budget:    100,
			want:      Action{Position: best, Sensor: engine.GPR},
		},
		{
			name:      "falls through to cheaper sensor",
			threshold: 0.9,
			budget:    4,
			want:      Action{Position: best, Sensor: engine.MAG},
		},
		{
			name:      "custom order",
			threshold: 0.9,
			sensors:   []engine.SensorType{engine.VIS, engine.GPR},
			budget:    100,
			want:      Action{Position: best, Sensor: engine.VIS},
		},
		{
			name:      "nothing affordable",
			threshold: 0.9,
			budget:    0,
			want:      Action{Excavate: true, Position: best},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := &service.StatusInfo{SensorCosts: costs}
			status.Budget = tt.budget
			got := NewGreedyStrategy(tt.threshold, tt.sensors).Next(testGrid(), status)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGreedyStrategy_SkipsSurveyedPairs(t *testing.T) {
	status := &service.StatusInfo{SensorCosts: map[engine.SensorType]int{engine.GPR: 5, engine.VIS: 1}}
	status.Budget = 100
	s := NewGreedyStrategy(0.9, []engine.SensorType{engine.GPR, engine.VIS})
	grid := testGrid()

	first := s.Next(grid, status)
	assert.Equal(t, Action{Position: engine.Position{Row: 1, Col: 1}, Sensor: engine.GPR}, first)
	s.Record(first)

	// Ties go to the first cell in row-major order, so (1,2) is next
	second := s.Next(grid, status)
	assert.Equal(t, Action{Position: engine.Position{Row: 1, Col: 2}, Sensor: engine.GPR}, second)

	for _, row := range []int{0, 1} {
		for col := 0; col < 3; col++ {
			s.Record(Action{Position: engine.Position{Row: row, Col: col}, Sensor: engine.GPR})
		}
	}
	assert.Equal(t, Action{Position: engine.Position{Row: 1, Col: 1}, Sensor: engine.VIS}, s.Next(grid, status),
		"exhausted sensors give way to the next preference")

	s.Record(Action{Excavate: true, Position: engine.Position{Row: 1, Col: 1}})
	assert.Equal(t, engine.VIS, s.Next(grid, status).Sensor, "excavations are not recorded")

	for _, row := range []int{0, 1} {
		for col := 0; col < 3; col++ {
			s.Record(Action{Position: engine.Position{Row: row, Col: col}, Sensor: engine.VIS})
		}
	}
	assert.True(t, s.Next(grid, status).Excavate, "nothing left to learn")

	s.Reset()
	assert.Equal(t, first, s.Next(grid, status))
}

func TestParseSensors(t *testing.T) {
	sensors, err := parseSensors("vis, GPR,")
	require.NoError(t, err)
	assert.Equal(t, []engine.SensorType{engine.VIS, engine.GPR}, sensors)

	_, err = parseSensors("GPR,SONAR")
	assert.ErrorIs(t, err, engine.ErrUnknownSensor)

	_, err = parseSensors(" , ")
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	var s Summary
	assert.Equal(t, 0.0, s.WinRate())

	s.Add(&Outcome{Surveys: 3, Victory: true, Score: 12})
	s.Add(&Outcome{Surveys: 5})
	assert.Equal(t, 2, s.Games)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 8, s.Surveys)
	assert.Equal(t, 12, s.TotalGain)
	assert.Equal(t, 0.5, s.WinRate())
}

func TestPlay_SpendsBudgetThenDigs(t *testing.T) {
	srv, sessions := newTestServer(t)
	ctx := context.Background()

	// quick has no zero probabilities, so the belief never reaches 1
	p := newTestPlayer(srv.URL, 1.0, engine.GPR)
	outcome, err := p.play(ctx, seeded("quick", 42))
	require.NoError(t, err)

	assert.Equal(t, 6, outcome.Surveys, "budget 30 buys six GPR surveys")
	assert.Equal(t, 0, outcome.Score, "nothing left to score")
	require.NotNil(t, outcome.Artifact)
	assert.Equal(t, *outcome.Artifact == outcome.Guess, outcome.Victory)
	assert.Equal(t, 0, sessions.Count(), "finished sessions are deleted")
}

func TestPlay_CheapSensorOnly(t *testing.T) {
	srv, _ := newTestServer(t)

	// One VIS reading per cell, then nothing new to learn
	p := newTestPlayer(srv.URL, 1.0, engine.VIS)
	outcome, err := p.play(context.Background(), seeded("quick", 7))
	require.NoError(t, err)
	assert.Equal(t, 25, outcome.Surveys)
}

func TestPlay_DigsImmediatelyAtLowThreshold(t *testing.T) {
	srv, sessions := newTestServer(t)

	p := newTestPlayer(srv.URL, 0.01)
	p.keep = true
	outcome, err := p.play(context.Background(), seeded("quick", 3))
	require.NoError(t, err)

	assert.Equal(t, 0, outcome.Surveys, "uniform 1/25 already clears the threshold")
	assert.Equal(t, 1, sessions.Count())
	if outcome.Victory {
		assert.Equal(t, 30, outcome.Score)
	}
}

func TestPlay_Deterministic(t *testing.T) {
	srv, _ := newTestServer(t)

	a, err := newTestPlayer(srv.URL, 0.6).play(context.Background(), seeded("standard", 99))
	require.NoError(t, err)
	b, err := newTestPlayer(srv.URL, 0.6).play(context.Background(), seeded("standard", 99))
	require.NoError(t, err)

	assert.Equal(t, a.Surveys, b.Surveys)
	assert.Equal(t, a.Guess, b.Guess)
	assert.Equal(t, a.Victory, b.Victory)
}

func TestPlay_MoveLimit(t *testing.T) {
	srv, _ := newTestServer(t)

	p := newTestPlayer(srv.URL, 1.0, engine.VIS)
	p.maxMoves = 3
	_, err := p.play(context.Background(), seeded("quick", 1))
	assert.ErrorContains(t, err, "no excavation after 3 moves")
}

func TestClient_Errors(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()

	c := NewClient(srv.URL)
	_, err := c.CreateSession(ctx, service.CreateSessionRequest{ConfigID: "missing"})
	assert.ErrorContains(t, err, "404")

	_, err = c.CreateSession(ctx, service.CreateSessionRequest{ConfigID: "quick"})
	require.NoError(t, err)
	_, err = c.Survey(ctx, 9, 9, "GPR")
	assert.ErrorContains(t, err, "position out of bounds")

	_, err = c.Survey(ctx, 0, 0, "SONAR")
	assert.ErrorContains(t, err, "400")

	require.NoError(t, c.DeleteSession(ctx))
	assert.Empty(t, c.SessionID())
	require.NoError(t, c.DeleteSession(ctx), "no session is a no-op")
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).CreateSession(context.Background(), service.CreateSessionRequest{})
	assert.ErrorContains(t, err, "upstream down")
}
