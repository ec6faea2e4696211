package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Actions
	Survey(pos Position, sensor SensorType) (*SurveyResult, error)
	Excavate(pos Position) (*ExcavateResult, error)

	// Game state
	GetState() *GameState
	Status() Status
	IsGameOver() bool
	IsVictory() bool
	GetScore() int
	GetBudget() int

	// Beliefs
	ProbabilityGrid() [][]float64
	CellInfo(pos Position) (*CellInfo, error)
	BestGuess() (Position, float64)

	// History
	SurveyHistory() []SurveyHistoryEntry
	GetLastSurvey() *SurveyHistoryEntry

	// Configuration
	Params() GameParams
	Sensors() SensorSet
}

// Option customizes a GameEngine
type Option func(*GameEngine)

// WithPrior selects the prior used by the posterior computation
func WithPrior(mode PriorMode) Option {
	return func(e *GameEngine) { e.priorMode = mode }
}

// WithConfigName tags the engine with the profile it was built from
func WithConfigName(name string) Option {
	return func(e *GameEngine) { e.configName = name }
}

// WithClock overrides the time source used for history timestamps
func WithClock(now func() time.Time) Option {
	return func(e *GameEngine) { e.now = now }
}

// GameEngine implements the Engine interface. It is the survey/excavate
// state machine: Active until the first excavation, then Terminal forever.
type GameEngine struct {
	mu sync.RWMutex

	params     GameParams
	configName string
	priorMode  PriorMode
	now        func() time.Time

	rng          *rand.Rand
	grid         *Grid
	observations *ObservationLog
	bayes        *BayesianEngine

	budget      int
	score       int
	surveyCount int
	gameOver    bool
	victory     bool
	message     string
	excavation  *Position
	history     []SurveyHistoryEntry
}

// NewGame creates a session with its own seeded random source
func NewGame(sensors SensorSet, params GameParams, opts ...Option) (*GameEngine, error) {
	if params.Budget < 0 || params.Budget > MaxBudget {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBudget, params.Budget)
	}
	for _, t := range SensorTypes {
		m, err := sensors.Get(t)
		if err != nil {
			return nil, err
		}
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}

	e := &GameEngine{
		params:    params,
		priorMode: PriorUniform,
		now:       time.Now,
		budget:    params.Budget,
		message:   "Survey the site, then excavate where the artifact most likely is.",
		history:   []SurveyHistoryEntry{},
	}
	for _, opt := range opts {
		opt(e)
	}

	e.rng = rand.New(rand.NewSource(params.Seed))
	grid, err := NewGrid(params.Rows, params.Columns, e.rng, sensors)
	if err != nil {
		return nil, err
	}
	e.grid = grid
	e.observations = NewObservationLog()
	e.bayes = NewBayesianEngine(grid, e.priorMode)

	return e, nil
}

// NewEngine creates a session from a profile using its grid size and budget
func NewEngine(config *GameConfig, seed int64, opts ...Option) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	sensors, err := config.SensorSet()
	if err != nil {
		return nil, err
	}
	params := config.Params()
	params.Seed = seed
	return NewGame(sensors, params, append([]Option{WithConfigName(config.Name)}, opts...)...)
}

// Survey pays for one sensor reading at pos and updates the belief grid.
// Game over and insufficient budget are reported in the result, not as
// errors. Errors are reserved for invalid input and leave no trace.
func (e *GameEngine) Survey(pos Position, sensorType SensorType) (*SurveyResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := &SurveyResult{Position: pos, Sensor: sensorType, Budget: e.budget}

	if e.gameOver {
		result.Message = MsgGameOver
		return result, nil
	}

	sensor, err := e.grid.Sensors().Get(sensorType)
	if err != nil {
		return nil, err
	}
	if err := e.grid.checkBounds(pos); err != nil {
		return nil, err
	}

	cost := sensor.GetCost()
	if e.budget < cost {
		result.Message = MsgInsufficientFunds
		return result, nil
	}

	prevLogged, hadLogged := e.observations.Reading(pos, sensorType)
	prevStatus, hadStatus := e.grid.cells[pos.Row][pos.Col].Status[sensorType]

	reading, err := e.grid.EvaluateSensor(pos, sensorType, e.rng)
	if err != nil {
		return nil, err
	}
	e.observations.Record(pos, sensorType, reading)

	rollback := func() {
		if hadLogged {
			e.observations.Record(pos, sensorType, prevLogged)
		} else {
			e.observations.Remove(pos, sensorType)
		}
		e.grid.restoreStatus(pos, sensorType, prevStatus, hadStatus)
	}

	posterior, err := e.bayes.ComputePosterior(e.observations)
	if err != nil {
		rollback()
		return nil, fmt.Errorf("compute posterior: %w", err)
	}
	if err := e.grid.SetProbabilities(posterior); err != nil {
		rollback()
		return nil, fmt.Errorf("apply posterior: %w", err)
	}

	e.budget -= cost
	e.surveyCount++
	e.history = append(e.history, SurveyHistoryEntry{
		SurveyNumber: e.surveyCount,
		Position:     pos,
		Sensor:       sensorType,
		Reading:      reading,
		Cost:         cost,
		BudgetAfter:  e.budget,
		Timestamp:    e.now().Unix(),
	})
	e.message = fmt.Sprintf("%s at %s: %s (cost %d, budget %d)", sensorType, pos, reading, cost, e.budget)

	result.Success = true
	result.Reading = reading
	result.Cost = cost
	result.Budget = e.budget
	return result, nil
}

// Excavate makes the terminal guess. The first in-bounds call ends the game
// whatever the outcome; later calls report game over and change nothing.
func (e *GameEngine) Excavate(pos Position) (*ExcavateResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := &ExcavateResult{Position: pos}

	if e.gameOver {
		result.Message = MsgGameOver
		return result, nil
	}
	if err := e.grid.checkBounds(pos); err != nil {
		return nil, err
	}

	e.gameOver = true
	dug := pos
	e.excavation = &dug
	artifact := e.grid.artifact
	result.Artifact = &artifact

	if e.grid.isArtifact(pos) {
		e.victory = true
		e.score = e.budget
		e.message = fmt.Sprintf("Artifact found at %s! Final score: %d", pos, e.score)
	} else {
		e.score = 0
		e.message = fmt.Sprintf("Nothing at %s. The artifact was at %s. Final score: 0", pos, artifact)
	}

	result.Success = e.victory
	result.Score = e.score
	result.Message = e.message
	return result, nil
}

// GetState returns a snapshot of the full observable state
func (e *GameEngine) GetState() *GameState {
	e.mu.RLock()
	defer e.mu.RUnlock()

	best, maxP := e.bestGuess()
	state := &GameState{
		Rows:           e.grid.Rows(),
		Columns:        e.grid.Columns(),
		Seed:           e.params.Seed,
		Budget:         e.budget,
		InitialBudget:  e.params.Budget,
		Score:          e.score,
		SurveyCount:    e.surveyCount,
		GameOver:       e.gameOver,
		Victory:        e.victory,
		Message:        e.message,
		ConfigName:     e.configName,
		Probabilities:  e.probabilityGrid(),
		Observations:   e.observations.All(),
		SurveyHistory:  append([]SurveyHistoryEntry(nil), e.history...),
		BestGuess:      best,
		MaxProbability: maxP,
	}
	if e.excavation != nil {
		dug := *e.excavation
		state.Excavation = &dug
	}
	state.Artifact = e.revealedArtifact()
	return state
}

// Status returns the session counters
func (e *GameEngine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return Status{
		Budget:        e.budget,
		InitialBudget: e.params.Budget,
		Score:         e.score,
		GameOver:      e.gameOver,
		Victory:       e.victory,
		SurveyCount:   e.surveyCount,
		GridSize:      [2]int{e.grid.Rows(), e.grid.Columns()},
		Artifact:      e.revealedArtifact(),
	}
}

// revealedArtifact exposes the artifact only after the game has ended
func (e *GameEngine) revealedArtifact() *Position {
	if !e.gameOver {
		return nil
	}
	artifact := e.grid.artifact
	return &artifact
}

// IsGameOver returns whether the game is over
func (e *GameEngine) IsGameOver() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gameOver
}

// IsVictory returns whether the excavation found the artifact
func (e *GameEngine) IsVictory() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.victory
}

// GetScore returns the final score, 0 until the game ends
func (e *GameEngine) GetScore() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.score
}

// GetBudget returns the remaining budget
func (e *GameEngine) GetBudget() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.budget
}

// ProbabilityGrid returns the belief grid as rows of floats
func (e *GameEngine) ProbabilityGrid() [][]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.probabilityGrid()
}

func (e *GameEngine) probabilityGrid() [][]float64 {
	out := make([][]float64, e.grid.Rows())
	for i := range out {
		out[i] = make([]float64, e.grid.Columns())
		for j := range out[i] {
			out[i][j] = e.grid.cells[i][j].Probability
		}
	}
	return out
}

// CellInfo returns the belief and per-sensor status of one cell
func (e *GameEngine) CellInfo(pos Position) (*CellInfo, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	cell, err := e.grid.CellAt(pos)
	if err != nil {
		return nil, err
	}

	info := &CellInfo{
		Position:    pos,
		Probability: cell.Probability,
		Sensors:     make([]SensorStatus, 0, len(SensorTypes)),
	}
	for _, t := range SensorTypes {
		reading, used := cell.Status[t]
		info.Sensors = append(info.Sensors, SensorStatus{Sensor: t, Reading: reading, Used: used})
	}
	return info, nil
}

// BestGuess returns the cell with the highest belief
func (e *GameEngine) BestGuess() (Position, float64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.bestGuess()
}

// bestGuess scans row-major so ties go to the first cell
func (e *GameEngine) bestGuess() (Position, float64) {
	best := Position{}
	maxP := -1.0
	for i := range e.grid.cells {
		for j := range e.grid.cells[i] {
			if p := e.grid.cells[i][j].Probability; p > maxP {
				maxP = p
				best = Position{Row: i, Col: j}
			}
		}
	}
	return best, maxP
}

// SurveyHistory returns every successful survey in order
func (e *GameEngine) SurveyHistory() []SurveyHistoryEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]SurveyHistoryEntry(nil), e.history...)
}

// GetLastSurvey returns the last survey made, or nil if none
func (e *GameEngine) GetLastSurvey() *SurveyHistoryEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if len(e.history) == 0 {
		return nil
	}
	last := e.history[len(e.history)-1]
	return &last
}

// Params returns the construction parameters
func (e *GameEngine) Params() GameParams {
	return e.params
}

// Sensors returns the sensor models in use
func (e *GameEngine) Sensors() SensorSet {
	return e.grid.Sensors()
}

// ConfigName returns the profile name the session was built from
func (e *GameEngine) ConfigName() string {
	return e.configName
}
