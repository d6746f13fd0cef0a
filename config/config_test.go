package config

import (
	"log/slog"
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.Auth.Email != DefaultAuthEmail || cfg.Auth.Password != DefaultAuthPassword {
		t.Errorf("unexpected default credential pair: %q / %q", cfg.Auth.Email, cfg.Auth.Password)
	}
	if cfg.Auth.GuardRoutes {
		t.Error("expected route guard to be disabled by default")
	}
	if cfg.Sessions.Store != SessionStoreMemory {
		t.Errorf("expected memory session store, got %q", cfg.Sessions.Store)
	}
	if cfg.Sessions.TTL != 12*time.Hour {
		t.Errorf("expected 12h session ttl, got %v", cfg.Sessions.TTL)
	}
	if cfg.UsesRedis() {
		t.Error("memory session store should not require redis")
	}
	if cfg.Observability.Metrics.IsEnabled() {
		t.Error("metrics should be disabled by default")
	}
}

func TestAppConfig_ParseFromEnv(t *testing.T) {
	t.Setenv("AUTH_EMAIL", "qa@example.com")
	t.Setenv("AUTH_PASSWORD", "hunter2")
	t.Setenv("AUTH_GUARD_ROUTES", "true")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("REDIS_URI", "redis:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("UI_HTMX_SCRIPT_URL", " /static/htmx.min.js ")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	expectedAuth := AuthConfig{Email: "qa@example.com", Password: "hunter2", GuardRoutes: true}
	if !reflect.DeepEqual(cfg.Auth, expectedAuth) {
		t.Fatalf("unexpected auth configuration:\nexpected: %#v\ngot:      %#v", expectedAuth, cfg.Auth)
	}

	expectedRedis := RedisConfig{URI: "redis:6379", DB: 3}
	if !reflect.DeepEqual(cfg.Redis, expectedRedis) {
		t.Fatalf("unexpected redis configuration:\nexpected: %#v\ngot:      %#v", expectedRedis, cfg.Redis)
	}

	if cfg.Sessions.Store != SessionStoreRedis {
		t.Errorf("expected redis session store, got %q", cfg.Sessions.Store)
	}
	if cfg.Sessions.TTL != 30*time.Minute {
		t.Errorf("expected 30m ttl, got %v", cfg.Sessions.TTL)
	}
	if !cfg.UsesRedis() {
		t.Error("redis session store should require redis")
	}
	if cfg.HTTP.Addr != "127.0.0.1:9000" {
		t.Errorf("unexpected addr %q", cfg.HTTP.Addr)
	}
	if cfg.HTTP.HTMXScriptURL != "/static/htmx.min.js" {
		t.Errorf("expected trimmed htmx url, got %q", cfg.HTTP.HTMXScriptURL)
	}
}

func TestSessionStoreKind_UnmarshalText(t *testing.T) {
	tests := []struct {
		input       string
		expected    SessionStoreKind
		expectError bool
	}{
		{input: "memory", expected: SessionStoreMemory},
		{input: " REDIS ", expected: SessionStoreRedis},
		{input: "postgres", expectError: true},
		{input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var k SessionStoreKind
			err := k.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if k != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, k)
			}
		})
	}
}

func TestSessionConfig_Sanitize(t *testing.T) {
	cfg := SessionConfig{TTL: -time.Second, KeyPrefix: "  "}
	cfg.Sanitize()

	if cfg.Store != SessionStoreMemory {
		t.Errorf("expected store to default to memory, got %q", cfg.Store)
	}
	if cfg.TTL != defaultSessionTTL {
		t.Errorf("expected ttl to fall back to default, got %v", cfg.TTL)
	}
	if cfg.KeyPrefix != "pom:session:" {
		t.Errorf("expected default key prefix, got %q", cfg.KeyPrefix)
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	cfg := HTTPConfig{Addr: "   "}
	cfg.Sanitize()
	if cfg.Addr != ":8080" {
		t.Fatalf("expected empty addr to fall back to :8080, got %q", cfg.Addr)
	}
}

func TestDetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "Development")
	cfg := AppConfig{}
	cfg.Sanitize()
	if !cfg.IsDev {
		t.Fatal("expected NODE_ENV=development to enable dev mode")
	}
}

func TestObservabilityConfig_SlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		cfg := ObservabilityConfig{LogLevel: in}
		cfg.Sanitize()
		if got := cfg.SlogLevel(); got != want {
			t.Errorf("LogLevel %q: expected %v, got %v", in, want, got)
		}
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " ",
	}

	cfg.Sanitize()

	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " statsd:1234 ",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
	if cfg.Prefix != defaultObservabilityName {
		t.Fatalf("expected default prefix, got %q", cfg.Prefix)
	}
}
