package httpx

import (
	"context"

	domainauth "github.com/target/pom-practice/internal/domain/auth"
)

// authStateKey is an unexported context key type to avoid collisions across packages.
type authStateKey struct{}

// SetAuthStateInContext returns a child context that carries the given state.
func SetAuthStateInContext(ctx context.Context, state domainauth.State) context.Context {
	return context.WithValue(ctx, authStateKey{}, state)
}

// GetAuthStateFromContext returns the request's authentication state and whether one was loaded.
func GetAuthStateFromContext(ctx context.Context) (domainauth.State, bool) {
	state, ok := ctx.Value(authStateKey{}).(domainauth.State)
	return state, ok
}

// DisplayFromContext resolves the display variant for the request. A request
// without loaded state renders as anonymous.
func DisplayFromContext(ctx context.Context) domainauth.Display {
	state, ok := GetAuthStateFromContext(ctx)
	if !ok {
		return domainauth.DisplayAnonymous
	}
	return state.Display()
}
