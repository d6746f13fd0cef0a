package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/target/pom-practice/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logger := bootstrap.InitLogger(cfg.Observability.SlogLevel())

	logger.InfoContext(ctx, "starting pom practice ui",
		"addr", cfg.HTTP.Addr,
		"session_store", cfg.Sessions.Store,
		"guard_routes", cfg.Auth.GuardRoutes,
		"dev", cfg.IsDev,
	)

	return bootstrap.Run(ctx, &cfg, logger)
}
