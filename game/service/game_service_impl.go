package service

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wricardo/artifact-hunt/game/engine"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	logger   *slog.Logger
	newSeed  func() int64
	mu       sync.RWMutex
}

// Option customizes the game service
type Option func(*gameServiceImpl)

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *gameServiceImpl) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSeedSource overrides how seeds are drawn for sessions created without one
func WithSeedSource(newSeed func() int64) Option {
	return func(s *gameServiceImpl) {
		if newSeed != nil {
			s.newSeed = newSeed
		}
	}
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, opts ...Option) GameService {
	s := &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   slog.Default(),
		newSeed:  randomSeed,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// randomSeed draws a non-negative seed from crypto/rand
func randomSeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
}

// getConfigID returns the config_id for a given profile name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		Seed:           sess.Seed,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
	}
}

// resolveConfig loads the requested profile and applies the request overrides
func (s *gameServiceImpl) resolveConfig(req CreateSessionRequest) (*engine.GameConfig, error) {
	var base *engine.GameConfig
	if req.ConfigID != "" {
		config, err := s.configs.LoadConfig(req.ConfigID)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				var configIDs []string
				if available, listErr := s.configs.ListConfigs(); listErr == nil {
					for _, cfg := range available {
						configIDs = append(configIDs, cfg.ConfigID)
					}
				}
				return nil, fmt.Errorf("%w: '%s' (available configs: %v)", ErrConfigNotFound, req.ConfigID, configIDs)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", req.ConfigID, err)
		}
		base = config
	} else {
		base = s.configs.GetDefault()
	}
	if base == nil {
		return nil, fmt.Errorf("%w: no default profile", ErrConfigNotFound)
	}

	if req.Rows == 0 && req.Columns == 0 && req.Budget == nil {
		return base, nil
	}

	// Sensors are shared read-only with the cached profile
	config := *base
	if req.Rows != 0 {
		config.Rows = req.Rows
	}
	if req.Columns != 0 {
		config.Columns = req.Columns
	}
	if req.Budget != nil {
		config.Budget = *req.Budget
	}
	if err := engine.ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &config, nil
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	config, err := s.resolveConfig(req)
	if err != nil {
		return nil, err
	}

	seed := s.newSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", config, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("session created",
		"session", sess.ID,
		"config", config.Name,
		"rows", config.Rows,
		"columns", config.Columns,
		"budget", config.Budget,
		"seed", seed)

	return s.sessionInfo(sess, req.ConfigID), nil
}

// getSession looks a session up and marks it accessed
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	_ = s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess, ""), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.logger.Info("session deleted", "session", sessionID)
	return nil
}

// Survey takes one sensor reading for a session
func (s *gameServiceImpl) Survey(ctx context.Context, sessionID string, row, col int, sensor string) (*SurveyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sensorType, err := engine.ParseSensorType(sensor)
	if err != nil {
		if !sess.Engine.IsGameOver() {
			return nil, err
		}
		// A finished game answers every survey with the game over result
		sensorType = engine.SensorType(sensor)
	}

	pos := engine.Position{Row: row, Col: col}
	res, err := sess.Engine.Survey(pos, sensorType)
	if err != nil {
		s.logger.Debug("survey rejected", "session", sessionID, "pos", pos.String(), "sensor", sensor, "error", err)
		return nil, err
	}

	state := sess.Engine.GetState()
	result := &SurveyResult{
		SurveyResult: *res,
		BudgetRisk:   engine.AnalyzeBudgetRisk(state.Budget, sess.Engine.Sensors()),
		GameState:    state,
	}

	now := time.Now()
	switch {
	case res.Success:
		result.Events = append(result.Events, GameEvent{
			Type:      EventSurvey,
			Message:   fmt.Sprintf("%s reading at %s: %s", sensorType, pos, res.Reading),
			Timestamp: now,
			Position:  pos,
		})
	case res.Message == engine.MsgInsufficientFunds:
		result.Events = append(result.Events, GameEvent{
			Type:      EventInsufficientFunds,
			Message:   fmt.Sprintf("%s costs more than the remaining budget of %d", sensorType, res.Budget),
			Timestamp: now,
			Position:  pos,
		})
	default:
		result.Events = append(result.Events, GameEvent{
			Type:      EventGameOver,
			Message:   res.Message,
			Timestamp: now,
			Position:  pos,
		})
	}

	s.logger.Info("survey",
		"session", sessionID,
		"pos", pos.String(),
		"sensor", string(sensorType),
		"success", res.Success,
		"reading", res.Reading,
		"cost", res.Cost,
		"budget", res.Budget)

	return result, nil
}

// Excavate makes the terminal guess for a session
func (s *gameServiceImpl) Excavate(ctx context.Context, sessionID string, row, col int) (*ExcavateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	pos := engine.Position{Row: row, Col: col}
	alreadyOver := sess.Engine.IsGameOver()
	res, err := sess.Engine.Excavate(pos)
	if err != nil {
		s.logger.Debug("excavate rejected", "session", sessionID, "pos", pos.String(), "error", err)
		return nil, err
	}

	result := &ExcavateResult{
		ExcavateResult: *res,
		GameState:      sess.Engine.GetState(),
	}

	now := time.Now()
	if !alreadyOver {
		result.Events = append(result.Events, GameEvent{
			Type:      EventExcavate,
			Message:   fmt.Sprintf("Excavated %s", pos),
			Timestamp: now,
			Position:  pos,
		})
	}
	outcome := EventGameOver
	if res.Success {
		outcome = EventVictory
	}
	result.Events = append(result.Events, GameEvent{
		Type:      outcome,
		Message:   res.Message,
		Timestamp: now,
		Position:  pos,
	})

	s.logger.Info("excavate",
		"session", sessionID,
		"pos", pos.String(),
		"success", res.Success,
		"score", res.Score,
		"already_over", alreadyOver)

	return result, nil
}

// GetGameState returns the current game state for a session
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState(), nil
}

// GetStatus returns the compact session summary
func (s *gameServiceImpl) GetStatus(ctx context.Context, sessionID string) (*StatusInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState()
	return &StatusInfo{
		Status:         sess.Engine.Status(),
		SessionID:      sess.ID,
		Message:        state.Message,
		BudgetRisk:     engine.AnalyzeBudgetRisk(state.Budget, sess.Engine.Sensors()),
		BestGuess:      state.BestGuess,
		MaxProbability: state.MaxProbability,
		SensorCosts:    sess.Engine.Sensors().Costs(),
	}, nil
}

// GetProbabilityGrid returns the belief grid for a session
func (s *gameServiceImpl) GetProbabilityGrid(ctx context.Context, sessionID string) (*ProbabilityGrid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	grid := sess.Engine.ProbabilityGrid()
	best, maxP := sess.Engine.BestGuess()
	params := sess.Engine.Params()
	return &ProbabilityGrid{
		Rows:           params.Rows,
		Columns:        params.Columns,
		Probabilities:  grid,
		Sum:            engine.SumGrid(grid),
		BestGuess:      best,
		MaxProbability: maxP,
	}, nil
}

// GetCellInfo returns the belief and sensor status of one cell
func (s *gameServiceImpl) GetCellInfo(ctx context.Context, sessionID string, row, col int) (*engine.CellInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.CellInfo(engine.Position{Row: row, Col: col})
}

// GetSurveyHistory returns paginated survey history for a session
func (s *gameServiceImpl) GetSurveyHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return paginateHistory(sess.Engine.SurveyHistory(), opts), nil
}

func paginateHistory(history []engine.SurveyHistoryEntry, opts HistoryOptions) *HistoryResponse {
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultHistoryLimit
	}
	if opts.Limit > maxHistoryLimit {
		opts.Limit = maxHistoryLimit
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	surveys := []engine.SurveyHistoryEntry{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				surveys = append(surveys, history[i])
			}
		} else {
			surveys = append(surveys, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Surveys:      surveys,
		TotalSurveys: total,
		Page:         opts.Page,
		PageSize:     opts.Limit,
		TotalPages:   totalPages,
		HasNext:      opts.Page < totalPages,
		HasPrevious:  opts.Page > 1,
	}
}

// ListConfigs returns all available profiles
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific profile
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a profile
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if err := s.configs.SaveConfig(configName, config); err != nil {
		return err
	}
	s.logger.Info("config saved", "config", configName)
	return nil
}
