// Package api provides the HTTP REST API for artifact hunt sessions.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a session ({config_id, rows, columns, seed, budget}, all optional)
//   - GET /api/sessions - List sessions (sort=created|accessed, order=asc|desc, limit)
//   - GET /api/sessions/unified - Summary across sessions (sessionIds=a,b or configName)
//   - GET /api/sessions/{id} - Session details
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Full observable state
//   - GET /api/sessions/{id}/status - Budget, score and best guess
//   - GET /api/sessions/{id}/grid - Posterior probability grid
//   - GET /api/sessions/{id}/cells/{row}/{col} - Belief and readings for one cell
//   - POST /api/sessions/{id}/survey - {row, col, sensor}
//   - POST /api/sessions/{id}/excavate - {row, col}
//   - GET /api/sessions/{id}/history - Survey history (page, limit, order)
//
// Configuration:
//   - GET /api/configs - List sensor profiles
//   - GET /api/configs/{name} - Full profile including CPTs
//   - POST /api/configs - Validate and save a profile
//
// Other:
//   - GET /health
//   - GET /ws?session={id} - WebSocket state updates
//
// Soft failures (game over, insufficient funds) answer 200 with
// "success": false. Errors are returned as {"error": "..."} with 400 for
// invalid input, 404 for unknown sessions or profiles, and 500 otherwise.
package api
