package redis

// Package redis provides Redis-backed adapters.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/target/pom-practice/internal/domain/auth"
	"github.com/target/pom-practice/internal/ports"
)

// DefaultKeyPrefix namespaces session keys when no prefix is configured.
const DefaultKeyPrefix = "pom:session:"

// SessionStore keeps authentication state in Redis.
// Keys expire with the state's ExpiresAt.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return NewSessionStoreWithPrefix(client, DefaultKeyPrefix)
}

// NewSessionStoreWithPrefix creates a Redis session store with a custom key prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &SessionStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

func (s *SessionStore) key(id string) string {
	return s.prefix + id
}

func (s *SessionStore) Save(ctx context.Context, state domainauth.State) error {
	if state.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	if state.ExpiresAt.IsZero() {
		return errors.New("session expiry is required")
	}

	ttl := state.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return errors.New("session is expired")
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(state.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.State, error) {
	if id == "" {
		return domainauth.State{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.State{}, ErrNotFound
		}
		return domainauth.State{}, fmt.Errorf("redis get: %w", err)
	}

	var state domainauth.State
	if err := json.Unmarshal(data, &state); err != nil {
		return domainauth.State{}, fmt.Errorf("unmarshal session: %w", err)
	}

	if state.Expired(s.now()) {
		if err := s.Delete(ctx, id); err != nil {
			return domainauth.State{}, fmt.Errorf("cleanup expired session: %w", err)
		}
		return domainauth.State{}, ErrNotFound
	}

	return state, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.key(id)).Err()
}

// ErrNotFound is returned when a session is not present or has expired.
var ErrNotFound = ports.ErrSessionNotFound
