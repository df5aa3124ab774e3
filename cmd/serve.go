package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/incense/internal/server"
	"github.com/desertthunder/incense/internal/shared"
	"github.com/desertthunder/incense/internal/tasks"
	"github.com/desertthunder/incense/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve runs the read-only dashboard until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}

	store, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	source := &server.StoreSource{
		Log:    tasks.NewSessionLog(store, r.clock, r.logger),
		Quotes: tasks.NewQuoteRotator(store, r.clock, nil, r.logger),
	}

	logger := shared.WithLogger(r.logger, "component", "dashboard")

	page, err := web.NewDashboardPage(source, logger, time.Local)
	if err != nil {
		return fmt.Errorf("failed to load dashboard templates: %w", err)
	}

	router := server.NewBasicRouter()
	router.Use(server.Recover(logger), server.Logging(logger), server.RateLimit(cfg.RateLimit, cfg.Burst))
	router.Handler(server.NewAPIHandler(source, logger))
	router.Handler(page)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ready := make(chan string, 1)
	go func() {
		if addr, ok := <-ready; ok {
			r.writePlain("→ Dashboard at http://%s (Ctrl+C to stop)\n", addr)
		}
	}()

	return server.Serve(ctx, cfg.Addr(), router, logger, ready)
}
