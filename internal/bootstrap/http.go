package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/target/pom-practice/config"
	httpx "github.com/target/pom-practice/internal/http"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// HTTPHandlerConfig contains what the HTTP handler is built from.
type HTTPHandlerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// BuildHTTPHandler creates the router and wraps it with request logging and
// panic recovery. Order: Recover -> Logging -> Router.
func BuildHTTPHandler(cfg HTTPHandlerConfig) (http.Handler, error) {
	if cfg.Config == nil {
		return nil, errors.New("http handler config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	router, err := httpx.NewRouter(httpx.RouterServices{
		Shell:         cfg.Services.Shell,
		Login:         cfg.Services.Login,
		Users:         cfg.Services.Users,
		CookieDomain:  appCfg.HTTP.CookieDomain,
		GuardRoutes:   appCfg.Auth.GuardRoutes,
		HTMXScriptURL: appCfg.HTTP.HTMXScriptURL,
		IsDev:         appCfg.IsDev,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	h := httpx.Logging(logger, cfg.Services.Metrics)(router)
	h = httpx.Recover(logger)(h)
	return h, nil
}

func newHTTPServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// ServeOptions groups what Serve needs to run the HTTP server.
type ServeOptions struct {
	Handler  http.Handler
	Listener net.Listener
	Logger   *slog.Logger
}

// Serve runs the HTTP server on the listener until ctx is done, then shuts it
// down gracefully. A server failure cancels the shutdown watcher and is returned.
func Serve(ctx context.Context, opts ServeOptions) error {
	if opts.Handler == nil || opts.Listener == nil {
		return errors.New("handler and listener are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server := newHTTPServer(opts.Handler)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", opts.Listener.Addr().String())
		if err := server.Serve(opts.Listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info("HTTP server stopped")
		return nil
	})

	return g.Wait()
}
