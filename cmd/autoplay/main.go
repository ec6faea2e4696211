// Command autoplay plays artifact hunt sessions against a running server
// through its REST API, using a greedy survey-then-dig strategy, and
// reports how often it finds the artifact.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/artifact-hunt/game/engine"
	"github.com/wricardo/artifact-hunt/game/service"
)

// Outcome is the result of one played session
type Outcome struct {
	SessionID string
	Surveys   int
	Victory   bool
	Score     int
	Guess     engine.Position
	Artifact  *engine.Position
}

// Summary aggregates the outcomes of a run
type Summary struct {
	Games     int
	Wins      int
	Surveys   int
	TotalGain int
}

func (s *Summary) Add(o *Outcome) {
	s.Games++
	s.Surveys += o.Surveys
	s.TotalGain += o.Score
	if o.Victory {
		s.Wins++
	}
}

func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// player runs games with one client and strategy
type player struct {
	client   *Client
	strategy *GreedyStrategy
	maxMoves int
	delay    time.Duration
	keep     bool
	logger   *slog.Logger
}

// play runs a single session to completion
func (p *player) play(ctx context.Context, req service.CreateSessionRequest) (*Outcome, error) {
	session, err := p.client.CreateSession(ctx, req)
	if err != nil {
		return nil, err
	}
	if !p.keep {
		defer func() {
			if err := p.client.DeleteSession(context.WithoutCancel(ctx)); err != nil {
				p.logger.Warn("failed to delete session", "session", session.ID, "error", err)
			}
		}()
	}

	p.logger.Debug("session created", "session", session.ID, "config", session.ConfigName, "seed", session.Seed)
	p.strategy.Reset()
	outcome := &Outcome{SessionID: session.ID}

	for moves := 0; moves < p.maxMoves; moves++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		status, err := p.client.Status(ctx)
		if err != nil {
			return nil, err
		}
		grid, err := p.client.Grid(ctx)
		if err != nil {
			return nil, err
		}

		action := p.strategy.Next(grid, status)
		if action.Excavate {
			result, err := p.client.Excavate(ctx, action.Position.Row, action.Position.Col)
			if err != nil {
				return nil, err
			}
			outcome.Victory = result.Success
			outcome.Score = result.Score
			outcome.Guess = action.Position
			outcome.Artifact = result.Artifact
			p.logger.Debug("excavated", "session", session.ID, "pos", action.Position.String(),
				"probability", grid.MaxProbability, "victory", result.Success)
			return outcome, nil
		}

		result, err := p.client.Survey(ctx, action.Position.Row, action.Position.Col, string(action.Sensor))
		if err != nil {
			return nil, err
		}
		if !result.Success {
			return nil, fmt.Errorf("survey failed: %s", result.Message)
		}
		p.strategy.Record(action)
		outcome.Surveys++
		p.logger.Debug("surveyed", "session", session.ID, "pos", action.Position.String(),
			"sensor", action.Sensor, "reading", result.Reading, "budget", result.Budget)

		if p.delay > 0 {
			time.Sleep(p.delay)
		}
	}

	return nil, fmt.Errorf("no excavation after %d moves", p.maxMoves)
}

// parseSensors turns "GPR,MAG" into sensor types
func parseSensors(s string) ([]engine.SensorType, error) {
	var sensors []engine.SensorType
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		t, err := engine.ParseSensorType(part)
		if err != nil {
			return nil, err
		}
		sensors = append(sensors, t)
	}
	if len(sensors) == 0 {
		return nil, errors.New("at least one sensor is required")
	}
	return sensors, nil
}

func runAutoplay(ctx context.Context, cmd *cli.Command) error {
	level := slog.LevelInfo
	if cmd.Bool("v") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	sensors, err := parseSensors(cmd.String("sensors"))
	if err != nil {
		return err
	}
	threshold := cmd.Float("threshold")
	if threshold <= 0 || threshold > 1 {
		return fmt.Errorf("threshold must be in (0, 1], got %v", threshold)
	}

	p := &player{
		client:   NewClient(cmd.String("url")),
		strategy: NewGreedyStrategy(threshold, sensors),
		maxMoves: int(cmd.Int("max-moves")),
		delay:    time.Duration(cmd.Int("delay")) * time.Millisecond,
		keep:     cmd.Bool("keep"),
		logger:   logger,
	}

	logger.Info("connecting to game server", "url", cmd.String("url"))

	var summary Summary
	games := int(cmd.Int("games"))
	for i := 0; i < games; i++ {
		req := service.CreateSessionRequest{ConfigID: cmd.String("config")}
		if cmd.IsSet("seed") {
			seed := cmd.Int64("seed") + int64(i)
			req.Seed = &seed
		}

		outcome, err := p.play(ctx, req)
		if err != nil {
			return fmt.Errorf("game %d: %w", i+1, err)
		}
		summary.Add(outcome)

		logger.Info("game finished",
			"game", i+1,
			"session", outcome.SessionID,
			"surveys", outcome.Surveys,
			"guess", outcome.Guess.String(),
			"victory", outcome.Victory,
			"score", outcome.Score)
	}

	fmt.Printf("Games: %d  Wins: %d  Win rate: %.1f%%  Avg surveys: %.1f  Total score: %d\n",
		summary.Games, summary.Wins, summary.WinRate()*100,
		float64(summary.Surveys)/float64(max(summary.Games, 1)), summary.TotalGain)
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "autoplay",
		Usage: "Play artifact hunt sessions with a greedy strategy",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Game server URL", Sources: cli.EnvVars("EXTERNAL_API_URL")},
			&cli.StringFlag{Name: "config", Usage: "Sensor profile to play (server default when empty)"},
			&cli.IntFlag{Name: "games", Value: 10, Usage: "Number of sessions to play"},
			&cli.Int64Flag{Name: "seed", Usage: "Seed for the first game, incremented per game"},
			&cli.FloatFlag{Name: "threshold", Value: 0.5, Usage: "Excavate once the best cell reaches this probability"},
			&cli.StringFlag{Name: "sensors", Value: "GPR,MAG,VIS", Usage: "Sensor preference order"},
			&cli.IntFlag{Name: "max-moves", Value: 1000, Usage: "Maximum surveys per game"},
			&cli.IntFlag{Name: "delay", Usage: "Delay between surveys in milliseconds"},
			&cli.BoolFlag{Name: "keep", Usage: "Keep finished sessions on the server"},
			&cli.BoolFlag{Name: "v", Usage: "Verbose output"},
		},
		Action: runAutoplay,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
