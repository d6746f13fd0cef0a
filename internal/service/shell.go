package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/target/pom-practice/internal/domain/auth"
	"github.com/target/pom-practice/internal/observability/metrics"
	"github.com/target/pom-practice/internal/observability/statsd"
	"github.com/target/pom-practice/internal/ports"
)

// DefaultSessionTTL bounds a session when no TTL is configured.
const DefaultSessionTTL = 12 * time.Hour

// Authenticator is the single write capability over authentication state.
// Only the login flow receives it.
type Authenticator interface {
	MarkAuthenticated(ctx context.Context, id string) (domainauth.State, error)
}

// ShellConfig holds the non-dependency settings of a Shell.
type ShellConfig struct {
	TTL       time.Duration
	StoreName string
	Now       func() time.Time
}

// ShellOptions groups dependencies for Shell.
type ShellOptions struct {
	Sessions ports.SessionStore
	Config   ShellConfig
	Metrics  statsd.Sink
}

// Shell owns each browser's authentication state. It hands out read access
// via Current/Resume and write access only via MarkAuthenticated. Only
// authenticated states are persisted.
type Shell struct {
	sessions  ports.SessionStore
	ttl       time.Duration
	storeName string
	now       func() time.Time
	metrics   statsd.Sink
}

var _ Authenticator = (*Shell)(nil)

// NewShell constructs a Shell. Sessions is required.
func NewShell(opts ShellOptions) *Shell {
	if opts.Sessions == nil {
		panic("SessionStore is required")
	}
	ttl := opts.Config.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := opts.Config.Now
	if now == nil {
		now = time.Now
	}
	storeName := opts.Config.StoreName
	if storeName == "" {
		storeName = "memory"
	}
	return &Shell{
		sessions:  opts.Sessions,
		ttl:       ttl,
		storeName: storeName,
		now:       now,
		metrics:   opts.Metrics,
	}
}

// Anonymous returns a fresh unauthenticated state. It is not persisted and
// carries no ID until MarkAuthenticated stores it.
func (s *Shell) Anonymous() domainauth.State {
	now := s.now().UTC()
	return domainauth.State{
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
}

// Current returns the stored state for id, or ports.ErrSessionNotFound when
// the id is empty, unknown or expired.
func (s *Shell) Current(ctx context.Context, id string) (domainauth.State, error) {
	if id == "" {
		return domainauth.State{}, ports.ErrSessionNotFound
	}
	state, err := s.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return domainauth.State{}, ports.ErrSessionNotFound
		}
		metrics.EmitSessionStoreError(s.metrics, "get", err)
		return domainauth.State{}, fmt.Errorf("get session: %w", err)
	}
	if state.Expired(s.now()) {
		return domainauth.State{}, ports.ErrSessionNotFound
	}
	return state, nil
}

// Resume returns the stored state for id, or an unsaved anonymous state when
// there is none. The bool reports whether id named a live stored session.
func (s *Shell) Resume(ctx context.Context, id string) (domainauth.State, bool, error) {
	state, err := s.Current(ctx, id)
	if err == nil {
		return state, true, nil
	}
	if !errors.Is(err, ports.ErrSessionNotFound) {
		return domainauth.State{}, false, err
	}
	return s.Anonymous(), false, nil
}

// MarkAuthenticated flips the state to authenticated under a fresh session ID.
// The old ID is retired before the new state is stored. An unknown or expired
// id is treated as a fresh anonymous state. Calling it on an authenticated
// state keeps the flag true and keeps the original AuthenticatedAt.
func (s *Shell) MarkAuthenticated(ctx context.Context, id string) (domainauth.State, error) {
	now := s.now().UTC()
	current, err := s.Current(ctx, id)
	switch {
	case errors.Is(err, ports.ErrSessionNotFound):
		current = domainauth.State{CreatedAt: now}
	case err != nil:
		return domainauth.State{}, err
	}

	next := current
	next.ID = generateSessionID()
	next.Authenticated = true
	if next.AuthenticatedAt.IsZero() {
		next.AuthenticatedAt = now
	}
	next.ExpiresAt = now.Add(s.ttl)

	if current.ID != "" {
		if err := s.sessions.Delete(ctx, current.ID); err != nil {
			metrics.EmitSessionStoreError(s.metrics, "delete", err)
			return domainauth.State{}, fmt.Errorf("delete previous session: %w", err)
		}
	}
	if err := s.sessions.Save(ctx, next); err != nil {
		metrics.EmitSessionStoreError(s.metrics, "save", err)
		return domainauth.State{}, fmt.Errorf("save session: %w", err)
	}
	if current.ID == "" {
		metrics.EmitSessionStarted(s.metrics, s.storeName)
	}
	return next, nil
}

func generateSessionID() string {
	return uuid.NewString()
}
