package service

import (
	"time"

	"github.com/wricardo/artifact-hunt/game/engine"
)

// CreateSessionRequest describes a new session. Zero dimensions and nil
// pointers fall back to the profile; a nil seed draws a fresh one.
type CreateSessionRequest struct {
	ConfigID string `json:"config_id"`
	Rows     int    `json:"rows,omitempty"`
	Columns  int    `json:"columns,omitempty"`
	Seed     *int64 `json:"seed,omitempty"`
	Budget   *int   `json:"budget,omitempty"`
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	Seed           int64              `json:"seed"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// SurveyResult contains the result of a survey operation
type SurveyResult struct {
	engine.SurveyResult
	BudgetRisk string            `json:"budget_risk,omitempty"`
	GameState  *engine.GameState `json:"game_state"`
	Events     []GameEvent       `json:"events,omitempty"`
}

// ExcavateResult contains the result of an excavation
type ExcavateResult struct {
	engine.ExcavateResult
	GameState *engine.GameState `json:"game_state"`
	Events    []GameEvent       `json:"events,omitempty"`
}

// EndedGame reports whether this excavation moved the game to its terminal
// state, as opposed to a dig on an already finished game
func (r *ExcavateResult) EndedGame() bool {
	for _, e := range r.Events {
		if e.Type == EventExcavate {
			return true
		}
	}
	return false
}

// StatusInfo is the compact session summary
type StatusInfo struct {
	engine.Status
	SessionID      string                    `json:"session_id"`
	Message        string                    `json:"message"`
	BudgetRisk     string                    `json:"budget_risk"`
	BestGuess      engine.Position           `json:"best_guess"`
	MaxProbability float64                   `json:"max_probability"`
	SensorCosts    map[engine.SensorType]int `json:"sensor_costs"`
}

// ProbabilityGrid is the belief grid with a few derived values
type ProbabilityGrid struct {
	Rows           int             `json:"rows"`
	Columns        int             `json:"columns"`
	Probabilities  [][]float64     `json:"probabilities"`
	Sum            float64         `json:"sum"`
	BestGuess      engine.Position `json:"best_guess"`
	MaxProbability float64         `json:"max_probability"`
}

// GameEvent types
const (
	EventSurvey            = "survey"
	EventInsufficientFunds = "insufficient_funds"
	EventExcavate          = "excavate"
	EventVictory           = "victory"
	EventGameOver          = "game_over"
)

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // one of the Event* constants
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position"`
}

// HistoryOptions configures survey history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated survey history
type HistoryResponse struct {
	Surveys      []engine.SurveyHistoryEntry `json:"surveys"`
	TotalSurveys int                         `json:"total_surveys"`
	Page         int                         `json:"page"`
	PageSize     int                         `json:"page_size"`
	TotalPages   int                         `json:"total_pages"`
	HasNext      bool                        `json:"has_next"`
	HasPrevious  bool                        `json:"has_previous"`
}

// ConfigInfo provides information about a sensor profile
type ConfigInfo struct {
	Filename    string                    `json:"filename"`
	ConfigID    string                    `json:"config_id"` // The identifier to use for session creation
	Name        string                    `json:"name"`      // Display name
	Description string                    `json:"description"`
	Rows        int                       `json:"rows"`
	Columns     int                       `json:"columns"`
	Budget      int                       `json:"budget"`
	SensorCosts map[engine.SensorType]int `json:"sensor_costs"`
}
