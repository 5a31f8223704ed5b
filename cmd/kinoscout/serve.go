package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	v1 "github.com/vmunix/kinoscout/internal/api/v1"
	"github.com/vmunix/kinoscout/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Args:  cobra.NoArgs,
	RunE:  runServeCmd,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(os.Stdout, parseLogLevel(cfg.Server.LogLevel))

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	api, err := v1.NewWithDeps(v1.ServerDeps{
		Resolver:  a.resolver,
		Finder:    a.coordinator,
		Presenter: a.presenter,
		Checks:    a.healthChecks(),
	}, v1.Config{Version: version}, logger)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	logger.Info("server starting",
		"addr", addr,
		"providers", a.registry.Names(),
		"library", a.store != nil,
		"log_level", cfg.Server.LogLevel,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := server.NewRunner(v1.LogRequests(mux, logger), server.Config{Addr: addr}, logger)
	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
