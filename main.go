// Command artifact-hunt starts the artifact hunt game server.
//
// It supports two modes:
//  1. "server" (default) runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, config directory, debug logging, version output,
// and optional ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/artifact-hunt/api"
	"github.com/wricardo/artifact-hunt/game/config"
	"github.com/wricardo/artifact-hunt/game/service"
	"github.com/wricardo/artifact-hunt/game/session"
	"github.com/wricardo/artifact-hunt/transport/mcp"
	"github.com/wricardo/artifact-hunt/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Artifact Hunt Server"
)

// envSettings are read from the environment (and .env) rather than flags
type envSettings struct {
	NgrokEnabled       bool          `env:"NGROK_ENABLED"`
	NgrokAuthToken     string        `env:"NGROK_AUTHTOKEN"`
	NgrokAuthTokenAlt  string        `env:"NGROK_AUTH_TOKEN"`
	NgrokDomain        string        `env:"NGROK_DOMAIN"`
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionCleanupTick time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1h"`
	ExternalAPIURL     string        `env:"EXTERNAL_API_URL" envDefault:"http://localhost:8080"`
}

// options is the resolved runtime configuration
type options struct {
	Host        string
	Port        int
	ConfigDir   string
	Debug       bool
	Ngrok       bool
	NgrokAuth   string
	NgrokDomain string
	Env         envSettings
}

func (o options) addr() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

// loadOptions merges flags with environment settings. Flags win.
func loadOptions(cmd *cli.Command) (options, error) {
	var settings envSettings
	if err := env.Parse(&settings); err != nil {
		return options{}, fmt.Errorf("parse env: %w", err)
	}

	opts := options{
		Host:        cmd.String("host"),
		Port:        int(cmd.Int("port")),
		ConfigDir:   cmd.String("config-dir"),
		Debug:       cmd.Bool("debug"),
		Ngrok:       cmd.Bool("ngrok") || settings.NgrokEnabled,
		NgrokAuth:   cmd.String("ngrok-auth"),
		NgrokDomain: cmd.String("ngrok-domain"),
		Env:         settings,
	}
	if opts.NgrokAuth == "" {
		opts.NgrokAuth = settings.NgrokAuthToken
	}
	if opts.NgrokAuth == "" {
		opts.NgrokAuth = settings.NgrokAuthTokenAlt
	}
	if opts.NgrokDomain == "" {
		opts.NgrokDomain = settings.NgrokDomain
	}
	if opts.Port <= 0 || opts.Port > 65535 {
		return options{}, fmt.Errorf("invalid port: %d", opts.Port)
	}
	return opts, nil
}

// newLogger writes text records to stderr so stdio MCP keeps stdout clean
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	}))
}

// rootFlags are shared by every subcommand
func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Value:   8080,
			Usage:   "HTTP server port",
			Sources: cli.EnvVars("PORT"),
		},
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "HTTP server host",
			Sources: cli.EnvVars("HOST"),
		},
		&cli.StringFlag{
			Name:    "config-dir",
			Value:   "configs",
			Usage:   "Directory containing sensor profiles",
			Sources: cli.EnvVars("CONFIG_DIR"),
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
		&cli.BoolFlag{
			Name:  "ngrok",
			Usage: "Enable ngrok tunnel (or NGROK_ENABLED=true)",
		},
		&cli.StringFlag{
			Name:  "ngrok-auth",
			Usage: "Ngrok auth token (or use NGROK_AUTHTOKEN env var)",
		},
		&cli.StringFlag{
			Name:  "ngrok-domain",
			Usage: "Custom ngrok domain (optional)",
		},
	}
}

// newRootCommand builds the command tree
func newRootCommand() *cli.Command {
	runServer := func(ctx context.Context, cmd *cli.Command) error {
		return run(ctx, cmd, runHTTPServer)
	}
	runStdio := func(ctx context.Context, cmd *cli.Command) error {
		return run(ctx, cmd, runStdioMCPWithInternalServer)
	}

	return &cli.Command{
		Name:    "artifact-hunt",
		Usage:   "Probabilistic artifact search game over REST, WebSocket and MCP",
		Version: Version,
		Flags:   rootFlags(),
		Action:  runServer,
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint (default)",
				Action:  runServer,
			},
			{
				Name:    "stdio-mcp",
				Aliases: []string{"mcp-stdio", "mcp"},
				Usage:   "Run MCP stdio server with internal HTTP server",
				Action:  runStdio,
			},
		},
	}
}

type modeFunc func(ctx context.Context, opts options, svc service.GameService, logger *slog.Logger) error

func run(ctx context.Context, cmd *cli.Command, mode modeFunc) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, opts.Debug)
	slog.SetDefault(logger)
	logger.Info("starting", "app", AppName, "version", Version, "command", cmd.Name)

	gameService, sessions, err := initializeServices(opts.ConfigDir, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	go sessionCleanupRoutine(ctx, sessions, opts.Env.SessionCleanupTick, opts.Env.SessionTTL, logger)

	return mode(ctx, opts, gameService, logger)
}

// main loads .env, wires signal handling, and runs the selected command.
func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initializeServices wires session/config managers and the game service.
func initializeServices(configDir string, logger *slog.Logger) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	sessionManager := session.NewManager()
	gameService := service.NewGameService(sessionManager, configManager, service.WithLogger(logger))

	return gameService, sessionManager, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within ttl
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval, ttl time.Duration, logger *slog.Logger) {
	if interval <= 0 || ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(ttl); removed > 0 {
				logger.Info("cleaned up expired sessions", "removed", removed, "remaining", manager.Count())
			}
		}
	}
}

// newMainHandler mounts the API at the root and the MCP proxy at /mcp
func newMainHandler(apiServer http.Handler, mcpClient *mcp.Client) http.Handler {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	return mainRouter
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, opts options, gameService service.GameService, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	apiServer := api.NewServer(gameService, hub)

	addr := opts.addr()
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))
	handler := newMainHandler(apiServer, mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		logger.Info("HTTP server listening",
			"addr", addr,
			"api", fmt.Sprintf("http://%s/api", addr),
			"websocket", fmt.Sprintf("ws://%s/ws?session=<session_id>", addr),
			"mcp", fmt.Sprintf("http://%s/mcp", addr))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			cancel()
		}
	}()

	if opts.Ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, opts, handler, logger)
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	wg.Wait()
	logger.Info("server stopped")

	select {
	case err := <-serveErr:
		return fmt.Errorf("HTTP server failed: %w", err)
	default:
		return nil
	}
}

// runNgrokTunnel serves handler through an ngrok endpoint until ctx ends
func runNgrokTunnel(ctx context.Context, opts options, handler http.Handler, logger *slog.Logger) {
	if opts.NgrokAuth == "" {
		logger.Warn("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	logger.Info("starting ngrok tunnel")

	var tunnel ngrokConfig.Tunnel
	if opts.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.NgrokDomain))
		logger.Info("using custom ngrok domain", "domain", opts.NgrokDomain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(opts.NgrokAuth))
	if err != nil {
		logger.Error("failed to start ngrok tunnel", "error", err)
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			logger.Error("failed to close ngrok tunnel", "error", err)
		}
	}()

	ngrokURL := tun.URL()
	logger.Info("ngrok tunnel established",
		"url", ngrokURL,
		"api", ngrokURL+"/api",
		"websocket", ngrokURL+"/ws?session=<session_id>",
		"mcp", ngrokURL+"/mcp")

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		logger.Error("ngrok server error", "error", err)
	}
	logger.Info("ngrok tunnel closed")
}

// externalAPIAvailable reports whether a server answers /health at baseURL
func externalAPIAvailable(ctx context.Context, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It reuses an external API when one answers; otherwise it starts an internal
// HTTP API on a random loopback port and targets that.
func runStdioMCPWithInternalServer(ctx context.Context, opts options, gameService service.GameService, logger *slog.Logger) error {
	baseURL := opts.Env.ExternalAPIURL

	if baseURL != "" && externalAPIAvailable(ctx, baseURL) {
		logger.Info("external API server found, using it for MCP", "url", baseURL)
	} else {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		hub := websocket.NewHub(logger)
		go hub.Run(ctx)

		httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("internal HTTP server error", "error", err)
			}
		}()
		defer httpServer.Close()

		baseURL = fmt.Sprintf("http://%s", listener.Addr().String())
		logger.Info("started internal HTTP server for MCP stdio", "url", baseURL)
	}

	mcpClient := mcp.NewClient(baseURL)
	logger.Info("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
