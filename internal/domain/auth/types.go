package auth

// Package auth contains domain-level types for credentials and session state.
// It is pure and free of framework/adapter concerns.

import "time"

// InvalidCredentialsMessage is the literal text shown when a login is rejected.
const InvalidCredentialsMessage = "Invalid credentials"

// Credentials is the transient email/password pair collected by the login form.
type Credentials struct {
	Email    string
	Password string
}

// Display is the two-variant selector the layout resolves once per render.
type Display string

const (
	DisplayAnonymous     Display = "anonymous"
	DisplayAuthenticated Display = "authenticated"
)

// State is the authentication state of one browser session.
// Authenticated starts false and only ever flips to true.
type State struct {
	ID              string    `json:"id"`
	Authenticated   bool      `json:"authenticated"`
	AuthenticatedAt time.Time `json:"authenticated_at,omitzero"`
	CreatedAt       time.Time `json:"created_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// Display resolves which chrome variant a page should render for this state.
func (s State) Display() Display {
	if s.Authenticated {
		return DisplayAuthenticated
	}
	return DisplayAnonymous
}

// Expired reports whether the state is past its expiry at the given instant.
func (s State) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
