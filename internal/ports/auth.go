package ports

// Package ports defines interfaces (hexagonal ports) for auth- and directory-related behavior.
// Implementations live in internal/adapters and internal/data; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/target/pom-practice/internal/domain/auth"
)

// CredentialValidator decides whether an email/password pair is accepted.
// Implementations must be pure: same input, same answer, no side effects.
type CredentialValidator interface {
	Validate(email, password string) bool
}

// ErrSessionNotFound is returned by SessionStore.Get for unknown or expired IDs.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists and retrieves per-browser authentication state.
type SessionStore interface {
	Save(ctx context.Context, state domainauth.State) error
	Get(ctx context.Context, id string) (domainauth.State, error)
	Delete(ctx context.Context, id string) error
}
