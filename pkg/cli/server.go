package cli

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/mchmarny/churnpulse/pkg/engine"
	"github.com/mchmarny/churnpulse/pkg/metrics"
	"github.com/urfave/cli/v2"
)

const (
	serverShutdownWaitSeconds = 5
	serverTimeoutSeconds      = 30
	serverMaxHeaderBytes      = 20
)

var (
	//go:embed assets/* templates/*
	embedFS embed.FS

	portFlag = &cli.IntFlag{
		Name:     "port",
		Usage:    "Port on which the server will listen (default: from config)",
		Required: false,
	}

	noBrowserFlag = &cli.BoolFlag{
		Name:    "no-browser",
		Aliases: []string{"nb"},
		Usage:   "Do not open browser automatically",
	}

	serverCmd = &cli.Command{
		Name:    "server",
		Aliases: []string{"serve"},
		Usage:   "Start local HTTP server with the prediction form",
		Action:  cmdStartServer,
		Flags: []cli.Flag{
			portFlag,
			noBrowserFlag,
			debugFlag,
		},
	}
)

func cmdStartServer(c *cli.Context) error {
	applyFlags(c)
	cfg := getConfig(c)

	port := cfg.Config.Port
	if c.IsSet(portFlag.Name) {
		port = c.Int(portFlag.Name)
	}
	address := fmt.Sprintf("127.0.0.1:%d", port)

	handler, err := makeRouter(cfg.Engine)
	if err != nil {
		return fmt.Errorf("creating router: %w", err)
	}

	s := &http.Server{
		Addr:           address,
		Handler:        handler,
		ReadTimeout:    serverTimeoutSeconds * time.Second,
		WriteTimeout:   serverTimeoutSeconds * time.Second,
		MaxHeaderBytes: 1 << serverMaxHeaderBytes,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("error starting server", "error", err)
			done <- syscall.SIGTERM
		}
	}()

	url := fmt.Sprintf("http://%s", address)
	slog.Info("server started", "address", url)

	if cfg.Config.OpenBrowser && !c.Bool(noBrowserFlag.Name) {
		openBrowser(url)
	}

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownWaitSeconds*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("error shutting down server", "error", err)
	}
	slog.Info("server stopped")
	return nil
}

func makeRouter(eng *engine.Engine) (http.Handler, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(embedFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(embedFS)))
	mux.HandleFunc("GET /favicon.ico", faviconHandler)

	// Views
	mux.HandleFunc("GET /{$}", homeViewHandler(tmpl))
	mux.HandleFunc("POST /predict", predictViewHandler(tmpl, eng))
	mux.HandleFunc("POST /reset", resetViewHandler(tmpl, eng))

	// API
	mux.HandleFunc("POST /api/predict", predictAPIHandler(eng))
	mux.HandleFunc("GET /api/check", checkAPIHandler(eng))
	mux.Handle("GET /metrics", metrics.Handler())

	return metrics.Middleware(mux), nil
}

func openBrowser(url string) {
	var cmd string
	args := make([]string, 0, 1)

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
	case "linux":
		cmd = "xdg-open"
	default: // windows
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler"}
	}

	args = append(args, url)
	if err := exec.Command(cmd, args...).Start(); err != nil {
		slog.Error("failed to open browser", "error", err)
	}
}
