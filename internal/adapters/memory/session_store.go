package memory

// Package memory provides in-process adapters. State held here lives until the process exits.

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/target/pom-practice/internal/domain/auth"
	"github.com/target/pom-practice/internal/ports"
)

// SessionStore is an in-memory session store safe for concurrent use.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domainauth.State
	now      func() time.Time
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domainauth.State),
		now:      time.Now,
	}
}

// NewSessionStoreWithClock creates a store that evaluates expiry against the given clock.
func NewSessionStoreWithClock(now func() time.Time) *SessionStore {
	s := NewSessionStore()
	if now != nil {
		s.now = now
	}
	return s
}

// Save stores state and drops any entries that have already expired.
func (s *SessionStore) Save(_ context.Context, state domainauth.State) error {
	if state.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	now := s.now()
	if state.Expired(now) {
		return errors.New("session is expired")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	s.sessions[state.ID] = state
	return nil
}

func (s *SessionStore) sweepLocked(now time.Time) {
	for id, state := range s.sessions {
		if state.Expired(now) {
			delete(s.sessions, id)
		}
	}
}

func (s *SessionStore) Get(_ context.Context, id string) (domainauth.State, error) {
	if id == "" {
		return domainauth.State{}, ErrNotFound
	}
	s.mu.RLock()
	state, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return domainauth.State{}, ErrNotFound
	}

	if state.Expired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return domainauth.State{}, ErrNotFound
	}
	return state, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len returns the number of stored sessions, including expired ones not yet swept.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ErrNotFound is returned when a session is not present or has expired.
var ErrNotFound = ports.ErrSessionNotFound
