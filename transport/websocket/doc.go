// Package websocket provides WebSocket transport for the Artifact Hunt game.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - State broadcasting after every survey and excavation
//   - Connection lifecycle management with ping/pong keepalive
//
// Architecture:
//
// A central Hub owns every connection. Each client gets a read goroutine
// and a write goroutine; registration, removal and broadcasts are funneled
// through the Hub's Run loop.
//
// Message Protocol:
//
// Clients only listen. Outgoing messages are JSON objects:
//
//	{"session_id": "a1b2", "event": "state_update", "game_state": {...}}
//	{"session_id": "a1b2", "event": "survey", "data": {...}}
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
//	hub.BroadcastToSession(sessionID, state)
package websocket
