// Package mcp exposes artifact hunt to AI agents over the Model Context
// Protocol.
//
// The Client is a thin proxy: every tool call becomes a REST request against
// the api package, so agents and browser users share the same sessions.
//
// MCP Tools:
//   - create_session: New session with optional config_id, rows, columns, budget and seed
//   - list_sessions, get_session: Session inspection
//   - game_status: Budget, best guess, budget risk and sensor costs
//   - survey: One GPR, MAG or VIS reading at a cell
//   - excavate: Dig one cell and end the game
//   - probability_grid: The posterior rendered as a percent table
//   - describe_cell: Belief and latest readings for one cell
//   - survey_history: Paginated survey log
//   - list_configs: Sensor profiles
//   - game_instructions: Rules and strategy notes
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: POST /mcp handled with GetMCPServer().HandleMessage
package mcp
