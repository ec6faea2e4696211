package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/artifact-hunt/game/session"
	"github.com/wricardo/artifact-hunt/transport/mcp"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// parseOptions runs the root flags against args and returns the resolved options
func parseOptions(t *testing.T, args ...string) (options, error) {
	t.Helper()
	var got options
	var loadErr error
	cmd := &cli.Command{
		Name:  "test",
		Flags: rootFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			got, loadErr = loadOptions(cmd)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	return got, loadErr
}

func TestConstants(t *testing.T) {
	assert.Equal(t, "1.0.0", Version)
	assert.Equal(t, "Artifact Hunt Server", AppName)
}

func TestLoadOptions_Defaults(t *testing.T) {
	opts, err := parseOptions(t)
	require.NoError(t, err)

	assert.Equal(t, "localhost", opts.Host)
	assert.Equal(t, 8080, opts.Port)
	assert.Equal(t, "configs", opts.ConfigDir)
	assert.False(t, opts.Debug)
	assert.False(t, opts.Ngrok)
	assert.Equal(t, 24*time.Hour, opts.Env.SessionTTL)
	assert.Equal(t, time.Hour, opts.Env.SessionCleanupTick)
	assert.Equal(t, "localhost:8080", opts.addr())
}

func TestLoadOptions_FlagsAndEnv(t *testing.T) {
	t.Setenv("CONFIG_DIR", "/srv/profiles")
	t.Setenv("NGROK_ENABLED", "true")
	t.Setenv("NGROK_AUTH_TOKEN", "from-env")
	t.Setenv("NGROK_DOMAIN", "dig.example.com")
	t.Setenv("SESSION_TTL", "2h")

	opts, err := parseOptions(t, "--port", "9090", "--host", "0.0.0.0", "--debug", "--ngrok-domain", "flag.example.com")
	require.NoError(t, err)

	assert.Equal(t, 9090, opts.Port)
	assert.Equal(t, "0.0.0.0", opts.Host)
	assert.Equal(t, "/srv/profiles", opts.ConfigDir)
	assert.True(t, opts.Debug)
	assert.True(t, opts.Ngrok)
	assert.Equal(t, "from-env", opts.NgrokAuth)
	assert.Equal(t, "flag.example.com", opts.NgrokDomain, "flags win over env")
	assert.Equal(t, 2*time.Hour, opts.Env.SessionTTL)
}

func TestLoadOptions_InvalidPort(t *testing.T) {
	_, err := parseOptions(t, "--port", "70000")
	assert.ErrorContains(t, err, "invalid port")
}

func TestLoadOptions_InvalidEnv(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")
	_, err := parseOptions(t)
	assert.ErrorContains(t, err, "parse env")
}

func TestRootCommand(t *testing.T) {
	root := newRootCommand()

	names := map[string][]string{}
	for _, sub := range root.Commands {
		names[sub.Name] = sub.Aliases
	}
	assert.Equal(t, []string{"http"}, names["server"])
	assert.ElementsMatch(t, []string{"mcp-stdio", "mcp"}, names["stdio-mcp"])
	assert.NotNil(t, root.Action, "server is the default")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	newLogger(&buf, true).Debug("shown", "k", "v")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "k=v")
}

func TestInitializeServices(t *testing.T) {
	gameService, sessions, err := initializeServices("configs", discardLogger())
	require.NoError(t, err)
	require.NotNil(t, gameService)
	require.NotNil(t, sessions)

	configs, err := gameService.ListConfigs(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, configs)
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	_, _, err := initializeServices("/non/existent/path", discardLogger())
	assert.Error(t, err)
}

func TestSessionCleanupRoutine(t *testing.T) {
	manager := session.NewManager()

	t.Run("disabled", func(t *testing.T) {
		done := make(chan struct{})
		go func() {
			sessionCleanupRoutine(context.Background(), manager, 0, time.Hour, discardLogger())
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("routine should return immediately when disabled")
		}
	})

	t.Run("stops with context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			sessionCleanupRoutine(ctx, manager, time.Hour, time.Hour, discardLogger())
			close(done)
		}()
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("routine should stop when the context ends")
		}
	})
}

func TestMainHandler_MCP(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := newMainHandler(api, mcp.NewClient("http://127.0.0.1:1"))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/mcp", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/sessions", nil))
	assert.Equal(t, http.StatusTeapot, w.Code, "everything else goes to the API")

	initialize := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0.0"}}}`
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/mcp", strings.NewReader(initialize)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Artifact Hunt")
}

func TestExternalAPIAvailable(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer healthy.Close()

	assert.True(t, externalAPIAvailable(context.Background(), healthy.URL))
	assert.False(t, externalAPIAvailable(context.Background(), "http://127.0.0.1:1"))
}
