package main

import (
	"github.com/wricardo/artifact-hunt/game/engine"
	"github.com/wricardo/artifact-hunt/game/service"
)

// Action is one move chosen by the strategy
type Action struct {
	Excavate bool
	Position engine.Position
	Sensor   engine.SensorType // empty when excavating
}

type surveyKey struct {
	pos    engine.Position
	sensor engine.SensorType
}

// GreedyStrategy surveys the most likely cell until the belief there is
// confident enough or the budget runs out, then digs the best guess.
// The server keeps only the latest reading per cell and sensor, so a pair
// already surveyed is skipped in favor of the next most likely cell.
type GreedyStrategy struct {
	Threshold float64             // excavate once the best cell reaches this probability
	Sensors   []engine.SensorType // preference order, first affordable wins

	surveyed map[surveyKey]bool
}

func NewGreedyStrategy(threshold float64, sensors []engine.SensorType) *GreedyStrategy {
	if len(sensors) == 0 {
		sensors = engine.SensorTypes
	}
	return &GreedyStrategy{
		Threshold: threshold,
		Sensors:   sensors,
		surveyed:  make(map[surveyKey]bool),
	}
}

// Reset forgets the surveys of the previous game
func (s *GreedyStrategy) Reset() {
	s.surveyed = make(map[surveyKey]bool)
}

// Record marks a survey action as spent
func (s *GreedyStrategy) Record(a Action) {
	if a.Excavate {
		return
	}
	s.surveyed[surveyKey{a.Position, a.Sensor}] = true
}

// Next picks the move for the current belief and budget
func (s *GreedyStrategy) Next(grid *service.ProbabilityGrid, status *service.StatusInfo) Action {
	dig := Action{Excavate: true, Position: grid.BestGuess}
	if grid.MaxProbability >= s.Threshold {
		return dig
	}

	for _, sensor := range s.Sensors {
		cost, ok := status.SensorCosts[sensor]
		if !ok || cost > status.Budget {
			continue
		}
		if pos, ok := s.target(grid, sensor); ok {
			return Action{Position: pos, Sensor: sensor}
		}
	}
	return dig
}

// target is the most likely cell not yet surveyed with sensor; ties go to
// the first cell in row-major order
func (s *GreedyStrategy) target(grid *service.ProbabilityGrid, sensor engine.SensorType) (engine.Position, bool) {
	var best engine.Position
	bestP := -1.0
	for i, row := range grid.Probabilities {
		for j, p := range row {
			pos := engine.Position{Row: i, Col: j}
			if s.surveyed[surveyKey{pos, sensor}] {
				continue
			}
			if p > bestP {
				best, bestP = pos, p
			}
		}
	}
	return best, bestP >= 0
}
