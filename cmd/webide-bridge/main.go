// Command webide-bridge runs the local HTTP bridge between the CPI
// scripting IDE plugin and the web-based Groovy IDE.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/MarkTrayford/CPIDebugLocal/internal/config"
	"github.com/MarkTrayford/CPIDebugLocal/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "webide-bridge:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  = pflag.StringP("config", "c", "", "path to YAML config file")
		port        = pflag.IntP("port", "p", 0, "listen port (overrides config)")
		openBrowser = pflag.Bool("open-browser", false, "open the web IDE after each encode (overrides config)")
	)
	pflag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *openBrowser {
		cfg.WebIDE.OpenBrowser = true
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))

	srv := server.New(cfg, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port))
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}
