package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionStoreKind selects the backing store for session state.
type SessionStoreKind string

const (
	// SessionStoreMemory keeps session state in process memory; state is lost on restart.
	SessionStoreMemory SessionStoreKind = "memory"
	// SessionStoreRedis keeps session state in Redis with a TTL.
	SessionStoreRedis SessionStoreKind = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreKind.
func (k *SessionStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "memory", "redis":
		*k = SessionStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStoreKind: %q (valid options: memory, redis)", v)
	}
}

const defaultSessionTTL = 12 * time.Hour

// SessionConfig controls how per-browser session state is kept.
type SessionConfig struct {
	Store SessionStoreKind `env:"SESSION_STORE" envDefault:"memory"`

	// TTL bounds how long a session is kept before a fresh anonymous one is started.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// KeyPrefix namespaces session keys in Redis.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"pom:session:"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.Store == "" {
		s.Store = SessionStoreMemory
	}
	if s.TTL <= 0 {
		s.TTL = defaultSessionTTL
	}
	if strings.TrimSpace(s.KeyPrefix) == "" {
		s.KeyPrefix = "pom:session:"
	}
}
