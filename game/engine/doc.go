// Package engine provides the core game logic for the Artifact Hunt game.
//
// The engine package implements the game mechanics including:
//   - Grid construction and seeded placement of the hidden artifact
//   - Sensor models backed by distance-keyed conditional probability tables
//   - Bayesian fusion of every survey reading into a belief grid
//   - The survey/excavate state machine enforcing budget and game over rules
//   - Sensor profile loading and validation
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. Grid owns the cells and the artifact,
// SensorModel wraps one CPT, ObservationLog keeps the latest reading per
// (cell, sensor) pair and BayesianEngine turns that log into a posterior.
// GameConfig is a sensor profile loaded from YAML or JSON.
//
// Usage:
//
//	config, err := engine.LoadGameConfig("configs/standard.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game, err := engine.NewEngine(config, 42)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := game.Survey(engine.Position{Row: 0, Col: 0}, engine.VIS)
//	grid := game.ProbabilityGrid()
//
// Game Rules:
//
// Each survey costs the sensor's price and yields one noisy reading whose
// distribution depends on the Manhattan distance to the artifact. The game
// ends at the first excavation: the score is the remaining budget when the
// guess is right and zero otherwise. Running out of budget does not end the
// game; the player can still excavate.
//
// Randomness:
//
// Every session owns its own *rand.Rand seeded at construction. Two sessions
// built with the same dimensions and seed place the artifact identically and
// produce the same readings for the same sequence of surveys.
package engine
