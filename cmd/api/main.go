package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"list-timeline/config"
	_ "list-timeline/docs" // Swagger docs
	"list-timeline/internal/app"
	"list-timeline/internal/httpserver"
	listHTTP "list-timeline/internal/list/delivery/http"
	listJob "list-timeline/internal/list/delivery/job"
	"list-timeline/internal/middleware"
	"list-timeline/pkg/log"
)

// @title       Slack List Timeline API
// @description Discovers Slack List schemas and serves list records as timeline tasks.
// @version     1
// @host        localhost:3000
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Slack List timeline...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	if missing := cfg.Missing(); len(missing) > 0 {
		logger.Warnf(ctx, "Missing configuration: %s. Timeline requests will report a failed status.", strings.Join(missing, ", "))
	}
	if len(cfg.Fields.CategoryOptions) > 0 {
		logger.Infof(ctx, "Static category options: %s", strings.Join(config.SortedKeys(cfg.Fields.CategoryOptions), ", "))
	}

	// 3. Timeline domain
	a := app.Build(ctx, cfg, logger)

	// 4. Background refresh (optional)
	poller, err := listJob.New(logger, a.UseCase, listJob.Config{
		ListIDs:         cfg.Slack.ListIDs,
		IntervalMinutes: cfg.Poller.IntervalMinutes,
		Schedule:        cfg.Poller.Schedule,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize poller: %v", err)
		os.Exit(1)
	}
	if poller.Enabled() {
		if err := poller.Start(ctx); err != nil {
			logger.Errorf(ctx, "Failed to start poller: %v", err)
			os.Exit(1)
		}
		defer poller.Stop()
	}

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		ListHandler: listHTTP.New(logger, a.UseCase, a.Dates, listHTTP.Config{
			CategoryColors: cfg.Timeline.CategoryColors,
			DefaultColor:   cfg.Timeline.DefaultTaskColor,
		}),
		Middleware: middleware.New(logger, middleware.Config{RateLimitPerMin: cfg.RateLimit.PerMinute}),
		Readiness:  a.Repo.Ready,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		os.Exit(1)
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		os.Exit(1)
	}

	logger.Info(context.Background(), "Server stopped gracefully")
}
