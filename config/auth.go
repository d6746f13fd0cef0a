package config

// Default credential pair accepted by the login form.
const (
	DefaultAuthEmail    = "test@example.com"
	DefaultAuthPassword = "password123"
)

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Email and Password form the single credential pair the login form accepts.
	// The pair is fixed for the lifetime of the process.
	Email    string `env:"AUTH_EMAIL"    envDefault:"test@example.com"`
	Password string `env:"AUTH_PASSWORD" envDefault:"password123"`

	// GuardRoutes redirects anonymous sessions away from /dashboard and /users.
	// Disabled by default: those pages are reachable without signing in.
	GuardRoutes bool `env:"AUTH_GUARD_ROUTES" envDefault:"false"`
}
