package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/target/pom-practice/config"
	"github.com/target/pom-practice/internal/adapters/memory"
	redisadapter "github.com/target/pom-practice/internal/adapters/redis"
	"github.com/target/pom-practice/internal/adapters/staticcreds"
	"github.com/target/pom-practice/internal/data"
	"github.com/target/pom-practice/internal/observability/statsd"
	"github.com/target/pom-practice/internal/ports"
	"github.com/target/pom-practice/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Shell    *service.Shell
	Login    *service.LoginService
	Users    *service.UserService
	Sessions ports.SessionStore
	Metrics  *statsd.Client
}

// Close releases resources owned by the container.
func (c ServiceContainer) Close() error {
	return c.Metrics.Close()
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires the credential validator, session store, shell and
// page services from configuration.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service config is required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sink, err := buildMetricsSink(logger, cfg.Observability.Metrics)
	if err != nil {
		return ServiceContainer{}, err
	}

	validator, err := staticcreds.NewValidator(staticcreds.Config{
		Email:    cfg.Auth.Email,
		Password: cfg.Auth.Password,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("credential validator: %w", err)
	}

	sessions, err := buildSessionStore(cfg.Sessions, deps.RedisClient)
	if err != nil {
		return ServiceContainer{}, err
	}

	shell := service.NewShell(service.ShellOptions{
		Sessions: sessions,
		Config: service.ShellConfig{
			TTL:       cfg.Sessions.TTL,
			StoreName: string(cfg.Sessions.Store),
		},
		Metrics: sink,
	})
	login := service.NewLoginService(service.LoginServiceOptions{
		Validator:     validator,
		Authenticator: shell,
		Observability: service.LoginObservability{Metrics: sink, Logger: logger},
	})
	users := service.NewUserService(service.UserServiceOptions{Directory: data.NewStaticUserDirectory()})

	return ServiceContainer{
		Shell:    shell,
		Login:    login,
		Users:    users,
		Sessions: sessions,
		Metrics:  sink,
	}, nil
}

//nolint:ireturn // callers only need the port.
func buildSessionStore(cfg config.SessionConfig, client redis.UniversalClient) (ports.SessionStore, error) {
	switch cfg.Store {
	case config.SessionStoreRedis:
		if client == nil {
			return nil, errors.New("redis session store requires a redis client")
		}
		return redisadapter.NewSessionStoreWithPrefix(client, cfg.KeyPrefix), nil
	case config.SessionStoreMemory, "":
		return memory.NewSessionStore(), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}

func buildMetricsSink(logger *slog.Logger, cfg config.ObservabilityMetricsConfig) (*statsd.Client, error) {
	client, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.IsEnabled(),
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("statsd client: %w", err)
	}
	if cfg.IsEnabled() {
		logger.Info("statsd metrics enabled", "address", cfg.StatsdAddress, "prefix", cfg.Prefix)
	}
	return client, nil
}
