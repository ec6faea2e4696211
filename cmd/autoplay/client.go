package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wricardo/artifact-hunt/game/service"
)

// Client drives one session over the REST API
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SessionID is the session the client is playing
func (c *Client) SessionID() string {
	return c.sessionID
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s failed: %s - %s", method, path, resp.Status, apiErr.Error)
		}
		return fmt.Errorf("%s %s failed: %s - %s", method, path, resp.Status, string(data))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s response: %w", path, err)
	}
	return nil
}

// CreateSession starts a session and makes it current
func (c *Client) CreateSession(ctx context.Context, req service.CreateSessionRequest) (*service.SessionInfo, error) {
	var session service.SessionInfo
	if err := c.do(ctx, http.MethodPost, "/api/sessions", req, &session); err != nil {
		return nil, err
	}
	c.sessionID = session.ID
	return &session, nil
}

func (c *Client) Status(ctx context.Context) (*service.StatusInfo, error) {
	var status service.StatusInfo
	if err := c.do(ctx, http.MethodGet, c.sessionPath("status"), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) Grid(ctx context.Context) (*service.ProbabilityGrid, error) {
	var grid service.ProbabilityGrid
	if err := c.do(ctx, http.MethodGet, c.sessionPath("grid"), nil, &grid); err != nil {
		return nil, err
	}
	return &grid, nil
}

func (c *Client) Survey(ctx context.Context, row, col int, sensor string) (*service.SurveyResult, error) {
	body := map[string]interface{}{"row": row, "col": col, "sensor": sensor}
	var result service.SurveyResult
	if err := c.do(ctx, http.MethodPost, c.sessionPath("survey"), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Excavate(ctx context.Context, row, col int) (*service.ExcavateResult, error) {
	body := map[string]interface{}{"row": row, "col": col}
	var result service.ExcavateResult
	if err := c.do(ctx, http.MethodPost, c.sessionPath("excavate"), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteSession removes the current session from the server
func (c *Client) DeleteSession(ctx context.Context) error {
	if c.sessionID == "" {
		return nil
	}
	err := c.do(ctx, http.MethodDelete, "/api/sessions/"+c.sessionID, nil, nil)
	c.sessionID = ""
	return err
}

func (c *Client) sessionPath(action string) string {
	return fmt.Sprintf("/api/sessions/%s/%s", c.sessionID, action)
}
