package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/artifact-hunt/game/engine"
	"github.com/wricardo/artifact-hunt/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Artifact Hunt",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Artifact Hunt - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
An artifact is buried in one cell of the grid. Spend budget on noisy sensor
surveys to sharpen the probability map, then excavate exactly once. Finding
the artifact scores the remaining budget; missing it scores 0.

AVAILABLE TOOLS:
- create_session: Start a new dig site
- list_sessions / get_session: Inspect sessions
- game_status: Budget, best guess and sensor costs
- survey: Use GPR, MAG or VIS on a cell (costs budget)
- excavate: Dig one cell and end the game
- probability_grid: Current posterior over artifact locations
- describe_cell: Belief and readings for one cell
- survey_history: Past surveys
- list_configs: Available sensor profiles
- game_instructions: Full rules and strategy notes`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func cellProperties(withSensor bool) map[string]interface{} {
	props := map[string]interface{}{
		"session_id": sessionIDProperty(),
		"row": map[string]interface{}{
			"type":        "integer",
			"description": "Row of the cell (0-based)",
		},
		"col": map[string]interface{}{
			"type":        "integer",
			"description": "Column of the cell (0-based)",
		},
	}
	if withSensor {
		props["sensor"] = map[string]interface{}{
			"type":        "string",
			"enum":        []string{string(engine.GPR), string(engine.MAG), string(engine.VIS)},
			"description": "Sensor to use",
		}
	}
	return props
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session, optionally picking a sensor profile and overriding its grid size, budget or seed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Sensor profile to use (see list_configs)",
				},
				"rows": map[string]interface{}{
					"type":        "integer",
					"description": "Grid rows override",
				},
				"columns": map[string]interface{}{
					"type":        "integer",
					"description": "Grid columns override",
				},
				"budget": map[string]interface{}{
					"type":        "integer",
					"description": "Starting budget override",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Random seed for a reproducible game",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_status",
		Description: "Get budget, score, best guess and sensor costs for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameStatus)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "survey",
		Description: "Take one sensor reading at a cell. Costs the sensor's price and updates the probability map.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: cellProperties(true),
			Required:   []string{"session_id", "row", "col", "sensor"},
		},
	}, c.handleSurvey)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "excavate",
		Description: "Dig at a cell. This ends the game whatever the outcome.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: cellProperties(false),
			Required:   []string{"session_id", "row", "col"},
		},
	}, c.handleExcavate)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "probability_grid",
		Description: "Get the posterior probability of the artifact being in each cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleProbabilityGrid)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get the belief and latest sensor readings for one cell",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: cellProperties(false),
			Required:   []string{"session_id", "row", "col"},
		},
	}, c.handleDescribeCell)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "survey_history",
		Description: "Get survey history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Sort order (default desc)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleSurveyHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available sensor profiles",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a JSON number argument
func intArg(args map[string]interface{}, name string) (int, bool) {
	switch v := args[name].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

func sessionPath(args map[string]interface{}, suffix string) (string, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix, nil
}

func cellArgs(args map[string]interface{}) (int, int, error) {
	row, okRow := intArg(args, "row")
	col, okCol := intArg(args, "col")
	if !okRow || !okCol {
		return 0, 0, fmt.Errorf("row and col are required integers")
	}
	return row, col, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := map[string]interface{}{}
	if configID, _ := args["config_id"].(string); configID != "" {
		body["config_id"] = configID
	}
	for _, name := range []string{"rows", "columns", "budget", "seed"} {
		if v, ok := intArg(args, name); ok {
			body[name] = v
		}
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\nSeed: %d\n\n%s",
		session.ID, session.ConfigName, session.Seed, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := "active"
		if s.GameState != nil && s.GameState.GameOver {
			status = "finished"
		}
		fmt.Fprintf(&b, "- %s (Config: %s, %s, Created: %s)\n",
			s.ID, s.ConfigName, status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/status")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var status service.StatusInfo
	if err := c.apiCall(ctx, "GET", path, nil, &status); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatStatus(&status)), nil
}

func (c *Client) handleSurvey(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/survey")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	row, col, err := cellArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sensor, _ := args["sensor"].(string)

	body := map[string]interface{}{
		"row":    row,
		"col":    col,
		"sensor": sensor,
	}

	var result service.SurveyResult
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSurveyResult(&result)), nil
}

func (c *Client) handleExcavate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/excavate")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	row, col, err := cellArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.ExcavateResult
	if err := c.apiCall(ctx, "POST", path, map[string]int{"row": row, "col": col}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatExcavateResult(&result)), nil
}

func (c *Client) handleProbabilityGrid(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/grid")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var grid service.ProbabilityGrid
	if err := c.apiCall(ctx, "GET", path, nil, &grid); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatProbabilityGrid(&grid)), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	row, col, err := cellArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path, err := sessionPath(args, fmt.Sprintf("/cells/%d/%d", row, col))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var cell engine.CellInfo
	if err := c.apiCall(ctx, "GET", path, nil, &cell); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCellInfo(&cell)), nil
}

func (c *Client) handleSurveyHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/history")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	query := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		query.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		query.Set("limit", fmt.Sprint(limit))
	}
	if order, _ := args["order"].(string); order != "" {
		query.Set("order", order)
	}
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Grid: %dx%d, Budget: %d, Costs: %s\n\n",
			config.Name, config.ConfigID, config.Description,
			config.Rows, config.Columns, config.Budget, formatCosts(config.SensorCosts))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Artifact Hunt - Complete Instructions

GAME OBJECTIVE:
One artifact is hidden in a single cell of a rectangular grid. You cannot see
it. Use sensors to gather evidence, then excavate one cell. If the artifact is
there you win and your score is the budget you have left. If not, you score 0.

SENSORS:
• GPR - ground penetrating radar, the most expensive and most precise
• MAG - magnetometer, medium cost, wider reach
• VIS - visual inspection, cheap and noisy
Each sensor returns a reading (for example HIGH/LOW, STRONG/NONE, SIGNS/NOTHING)
whose likelihood depends on the Manhattan distance |dr|+|dc| between the
surveyed cell and the artifact. The exact tables are in each profile.

PROBABILITY MAP:
Every cell starts equally likely. After each survey the server recomputes the
posterior from all readings so far. The grid always sums to 1. Surveying the
same cell with the same sensor again replaces the earlier reading.

RULES:
• A survey costs the sensor's price. If the budget cannot pay, nothing happens
  and the result says "Insufficient Funds".
• The first excavation ends the game whatever the outcome.
• After the game ends every action answers "Game Over".

STRATEGY:
1. Start with cheap VIS sweeps to find a promising region
2. Use MAG to narrow it down, GPR to confirm
3. Watch the best guess and its probability in game_status
4. Stop surveying once extra certainty costs more than it is worth
5. Excavate at the best guess

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Passing a seed to create_session makes the artifact placement and readings reproducible

Good luck!`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nSeed: %d\nCreated: %s\n\n%s",
		session.ID, session.ConfigName, session.Seed,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Grid: %dx%d | Budget: %d/%d | Score: %d | Surveys: %d\n",
		state.Rows, state.Columns, state.Budget, state.InitialBudget, state.Score, state.SurveyCount)
	fmt.Fprintf(&result, "Best guess: %s (p=%.4f)\n", state.BestGuess, state.MaxProbability)

	if state.GameOver {
		if state.Victory {
			result.WriteString("\n🎉 VICTORY!")
		} else {
			result.WriteString("\n💀 GAME OVER")
		}
		if state.Artifact != nil {
			fmt.Fprintf(&result, " Artifact was at %s", *state.Artifact)
		}
		result.WriteString("\n")
	}

	if state.Message != "" {
		fmt.Fprintf(&result, "\nMessage: %s", state.Message)
	}

	return result.String()
}

func formatStatus(status *service.StatusInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", status.SessionID)
	fmt.Fprintf(&b, "Grid: %dx%d | Budget: %d/%d | Score: %d | Surveys: %d\n",
		status.GridSize[0], status.GridSize[1], status.Budget, status.InitialBudget, status.Score, status.SurveyCount)
	fmt.Fprintf(&b, "Budget risk: %s\n", status.BudgetRisk)
	fmt.Fprintf(&b, "Best guess: %s (p=%.4f)\n", status.BestGuess, status.MaxProbability)
	fmt.Fprintf(&b, "Sensor costs: %s\n", formatCosts(status.SensorCosts))
	if status.GameOver {
		if status.Victory {
			b.WriteString("🎉 VICTORY!\n")
		} else {
			b.WriteString("💀 GAME OVER\n")
		}
	}
	if status.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", status.Message)
	}
	return b.String()
}

func formatSurveyResult(result *service.SurveyResult) string {
	var b strings.Builder
	if result.Success {
		fmt.Fprintf(&b, "✓ %s at %s read %s (cost %d, budget left %d)\n",
			result.Sensor, result.Position, result.Reading, result.Cost, result.Budget)
	} else {
		fmt.Fprintf(&b, "✗ Survey not performed: %s (budget %d)\n", result.Message, result.Budget)
	}

	if result.BudgetRisk != "" {
		fmt.Fprintf(&b, "Budget risk: %s\n", result.BudgetRisk)
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatExcavateResult(result *service.ExcavateResult) string {
	var b strings.Builder
	switch {
	case result.Success:
		fmt.Fprintf(&b, "🎉 Artifact found at %s! Score: %d\n", result.Position, result.Score)
	case result.Artifact != nil:
		fmt.Fprintf(&b, "💀 Nothing at %s. The artifact was at %s. Score: 0\n", result.Position, *result.Artifact)
	default:
		fmt.Fprintf(&b, "✗ %s\n", result.Message)
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}
	return b.String()
}

// formatProbabilityGrid prints one row per line, probabilities in percent
func formatProbabilityGrid(grid *service.ProbabilityGrid) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Probability grid %dx%d (percent), sum=%.4f\n",
		grid.Rows, grid.Columns, grid.Sum)
	fmt.Fprintf(&b, "Best guess: %s (p=%.4f)\n\n", grid.BestGuess, grid.MaxProbability)

	b.WriteString("     ")
	for j := 0; j < grid.Columns; j++ {
		fmt.Fprintf(&b, "%6d", j)
	}
	b.WriteString("\n")
	for i, row := range grid.Probabilities {
		fmt.Fprintf(&b, "%4d ", i)
		for j, p := range row {
			mark := " "
			if i == grid.BestGuess.Row && j == grid.BestGuess.Col {
				mark = "*"
			}
			fmt.Fprintf(&b, "%5.1f%s", p*100, mark)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatCellInfo(cell *engine.CellInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cell %s\n", cell.Position)
	fmt.Fprintf(&b, "Probability: %.4f\n", cell.Probability)
	b.WriteString("Readings:\n")
	for _, s := range cell.Sensors {
		if s.Used {
			fmt.Fprintf(&b, "- %s: %s\n", s.Sensor, s.Reading)
		} else {
			fmt.Fprintf(&b, "- %s: not surveyed\n", s.Sensor)
		}
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Survey History (Page %d/%d), Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalSurveys)

	if len(history.Surveys) == 0 {
		b.WriteString("(no surveys yet)\n")
		return b.String()
	}

	for _, s := range history.Surveys {
		fmt.Fprintf(&b, "%d. %s at %s → %s [cost %d, budget %d]\n",
			s.SurveyNumber, s.Sensor, s.Position, s.Reading, s.Cost, s.BudgetAfter)
	}
	return b.String()
}

func formatCosts(costs map[engine.SensorType]int) string {
	parts := make([]string, 0, len(engine.SensorTypes))
	for _, t := range engine.SensorTypes {
		if cost, ok := costs[t]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", t, cost))
		}
	}
	return strings.Join(parts, " ")
}
