// Package service provides the business logic layer for the Artifact Hunt game.
//
// The service package implements:
//   - Multi-session game management
//   - Sensor profile resolution with per-session overrides
//   - Survey and excavation processing
//   - Survey history pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages sensor profile loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine and random source, so
// sessions never share state. Sessions created without a seed get one drawn
// from crypto/rand, and the seed is reported back so the game can be replayed.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr, service.WithLogger(logger))
//
//	seed := int64(42)
//	info, err := gameService.CreateSession(ctx, service.CreateSessionRequest{ConfigID: "quick", Seed: &seed})
//	result, err := gameService.Survey(ctx, info.ID, 2, 3, "MAG")
//	dig, err := gameService.Excavate(ctx, info.ID, 2, 4)
package service
