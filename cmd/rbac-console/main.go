package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/rbac-console/cmd/rbac-console/cli"
	"github.com/odyssey-erp/rbac-console/internal/app"
	"github.com/odyssey-erp/rbac-console/internal/console"
	"github.com/odyssey-erp/rbac-console/internal/observability"
	"github.com/odyssey-erp/rbac-console/internal/permissions"
	"github.com/odyssey-erp/rbac-console/internal/roles"
	"github.com/odyssey-erp/rbac-console/internal/seed"
	"github.com/odyssey-erp/rbac-console/internal/shared"
	"github.com/odyssey-erp/rbac-console/internal/users"
	"github.com/odyssey-erp/rbac-console/internal/view"
	"github.com/odyssey-erp/rbac-console/internal/workspace"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}
	if len(os.Args) > 1 {
		os.Exit(runCommand(os.Args[1:]))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	data, err := seed.Load(cfg.SeedFile)
	if err != nil {
		logger.Error("load seed", slog.Any("error", err))
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "rbac_console_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	workspaces := workspace.NewManager(cfg.WorkspaceMax, cfg.WorkspaceTTL, logger)
	if err := metrics.ObserveWorkspaces(workspaces.Len); err != nil {
		logger.Warn("register workspace gauge", slog.Any("error", err))
	}

	params := console.Params{
		Logger:     logger,
		Templates:  templates,
		CSRF:       csrfManager,
		Workspaces: workspaces,
		Metrics:    metrics,
		PageSize:   cfg.PageSize,
		Actor:      cfg.ActingUser,
	}

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		Templates:      templates,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		Workspaces:     workspaces,
		Metrics:        metrics,
		Sections: []app.Section{
			console.NewHandler(users.Definition(), users.FromSeed(data.Users), params),
			console.NewHandler(roles.Definition(), roles.FromSeed(data.Roles), params),
			console.NewHandler(permissions.Definition(), permissions.FromSeed(data.Permissions), params),
		},
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func runCommand(args []string) int {
	if len(args) < 2 || args[0] != "seed" || args[1] != "validate" {
		_, _ = fmt.Fprintln(os.Stderr, "usage: rbac-console [seed validate [-file path] [-json]]")
		return 2
	}
	fs := flag.NewFlagSet("seed validate", flag.ContinueOnError)
	path := fs.String("file", os.Getenv("SEED_FILE"), "seed TOML file (defaults to the embedded seed)")
	jsonOutput := fs.Bool("json", false, "print the summary as JSON")
	if err := fs.Parse(args[2:]); err != nil {
		return 2
	}
	return cli.ValidateSeedCommand(cli.SeedValidateOptions{Path: *path, JSONOutput: *jsonOutput})
}
