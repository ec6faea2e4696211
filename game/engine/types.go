package engine

import (
	"errors"
	"fmt"
	"strings"
)

// SensorType identifies one of the survey instruments available to the player
type SensorType string

const (
	GPR SensorType = "GPR" // ground penetrating radar
	MAG SensorType = "MAG" // magnetometer
	VIS SensorType = "VIS" // visual inspection

	// Validation constants
	MinGridSize        = 2
	MaxGridSize        = 50
	MaxBudget          = 1_000_000
	DefaultBudget      = 100
	ProbabilityEpsilon = 1e-6

	// Soft failure messages returned by Survey and Excavate
	MsgGameOver          = "Game Over"
	MsgInsufficientFunds = "Insufficient Funds"
)

// SensorTypes lists every sensor kind in display order
var SensorTypes = []SensorType{GPR, MAG, VIS}

var (
	ErrInvalidDimensions     = errors.New("invalid grid dimensions")
	ErrInvalidBudget         = errors.New("invalid budget")
	ErrProbabilityOutOfRange = errors.New("probability out of range")
	ErrNoDistribution        = errors.New("no distribution for distance")
	ErrUnknownSensor         = errors.New("unknown sensor type")
	ErrOutOfBounds           = errors.New("position out of bounds")
	ErrInvalidSensor         = errors.New("invalid sensor model")
)

// ParseSensorType resolves a sensor name case-insensitively
func ParseSensorType(s string) (SensorType, error) {
	switch SensorType(strings.ToUpper(strings.TrimSpace(s))) {
	case GPR:
		return GPR, nil
	case MAG:
		return MAG, nil
	case VIS:
		return VIS, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSensor, s)
}

// Valid reports whether t is one of the known sensor kinds
func (t SensorType) Valid() bool {
	switch t {
	case GPR, MAG, VIS:
		return true
	}
	return false
}

// Position represents row,col coordinates on the grid
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Cell is one grid square with its current belief and sensor status
type Cell struct {
	Position
	Probability        float64               `json:"probability"`
	InitialProbability float64               `json:"initial_probability"`
	Status             map[SensorType]string `json:"status,omitempty"`
}

// SetProbability overwrites the cell belief
func (c *Cell) SetProbability(p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%w: %v at %s", ErrProbabilityOutOfRange, p, c.Position)
	}
	c.Probability = p
	return nil
}

// setInitialState assigns the prior and resets the belief to it
func (c *Cell) setInitialState(p float64) {
	c.InitialProbability = p
	c.Probability = p
	c.Status = make(map[SensorType]string, len(SensorTypes))
}

// SensorStatus is the latest reading of one sensor at one cell
type SensorStatus struct {
	Sensor  SensorType `json:"sensor"`
	Reading string     `json:"reading,omitempty"`
	Used    bool       `json:"used"`
}

// CellInfo describes a single cell for display layers
type CellInfo struct {
	Position    Position       `json:"position"`
	Probability float64        `json:"probability"`
	Sensors     []SensorStatus `json:"sensors"`
}

// GameParams are the per-session construction parameters
type GameParams struct {
	Rows    int   `json:"rows"`
	Columns int   `json:"columns"`
	Seed    int64 `json:"seed"`
	Budget  int   `json:"budget"`
}

// SurveyResult is the outcome of a survey call. Success is false for soft
// failures, in which case Message explains why and nothing changed.
type SurveyResult struct {
	Success  bool       `json:"success"`
	Reading  string     `json:"reading,omitempty"`
	Message  string     `json:"message,omitempty"`
	Cost     int        `json:"cost,omitempty"`
	Budget   int        `json:"budget"`
	Position Position   `json:"position"`
	Sensor   SensorType `json:"sensor"`
}

// ExcavateResult is the outcome of an excavate call
type ExcavateResult struct {
	Success  bool      `json:"success"`
	Score    int       `json:"score"`
	Message  string    `json:"message,omitempty"`
	Position Position  `json:"position"`
	Artifact *Position `json:"artifact,omitempty"`
}

// Status summarizes the session counters
type Status struct {
	Budget        int       `json:"budget"`
	InitialBudget int       `json:"initial_budget"`
	Score         int       `json:"score"`
	GameOver      bool      `json:"game_over"`
	Victory       bool      `json:"victory"`
	SurveyCount   int       `json:"survey_count"`
	GridSize      [2]int    `json:"grid_size"`
	Artifact      *Position `json:"artifact,omitempty"` // revealed once the game is over
}

// SurveyHistoryEntry represents a single survey in the session history
type SurveyHistoryEntry struct {
	SurveyNumber int        `json:"survey_number"`
	Position     Position   `json:"position"`
	Sensor       SensorType `json:"sensor"`
	Reading      string     `json:"reading"`
	Cost         int        `json:"cost"`
	BudgetAfter  int        `json:"budget_after"`
	Timestamp    int64      `json:"timestamp"`
}

// GameState represents the complete observable game state
type GameState struct {
	Rows          int                  `json:"rows"`
	Columns       int                  `json:"columns"`
	Seed          int64                `json:"seed"`
	Budget        int                  `json:"budget"`
	InitialBudget int                  `json:"initial_budget"`
	Score         int                  `json:"score"`
	SurveyCount   int                  `json:"survey_count"`
	GameOver      bool                 `json:"game_over"`
	Victory       bool                 `json:"victory"`
	Message       string               `json:"message"`
	ConfigName    string               `json:"config_name"`
	Probabilities [][]float64          `json:"probabilities"`
	Observations  []Observation        `json:"observations"`
	SurveyHistory []SurveyHistoryEntry `json:"survey_history"`
	Excavation    *Position            `json:"excavation,omitempty"`
	Artifact      *Position            `json:"artifact,omitempty"`

	// Computed helper views
	BestGuess      Position `json:"best_guess"`
	MaxProbability float64  `json:"max_probability"`
}
