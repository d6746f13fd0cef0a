package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/target/pom-practice/config"
)

// Run wires every dependency from cfg and serves HTTP until SIGINT/SIGTERM
// or ctx cancellation.
func Run(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (err error) {
	if cfg == nil {
		return errors.New("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redisClient redis.UniversalClient
	if cfg.UsesRedis() {
		redisClient, err = ConnectRedis(ctx, RedisConnectConfig{Redis: cfg.Redis, Logger: logger})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("close redis: %w", cerr))
			}
		}()
	}

	services, err := NewServices(&ServiceDeps{Config: cfg, RedisClient: redisClient, Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := services.Close(); cerr != nil {
			logger.Warn("close metrics client failed", "error", cerr)
		}
	}()

	handler, err := BuildHTTPHandler(HTTPHandlerConfig{Config: cfg, Services: services, Logger: logger})
	if err != nil {
		return err
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", cfg.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.HTTP.Addr, err)
	}

	return Serve(ctx, ServeOptions{Handler: handler, Listener: listener, Logger: logger})
}
