package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domainauth "github.com/target/pom-practice/internal/domain/auth"
	apperrors "github.com/target/pom-practice/internal/errors"
	"github.com/target/pom-practice/internal/observability/metrics"
	"github.com/target/pom-practice/internal/observability/statsd"
	"github.com/target/pom-practice/internal/ports"
)

// ErrInvalidCredentials is returned when a submitted pair is rejected.
var ErrInvalidCredentials = apperrors.InvalidCredentials(domainauth.InvalidCredentialsMessage)

// LoginObservability groups the optional telemetry dependencies of LoginService.
type LoginObservability struct {
	Metrics statsd.Sink
	Logger  *slog.Logger
}

// LoginServiceOptions groups dependencies for LoginService.
type LoginServiceOptions struct {
	Validator     ports.CredentialValidator
	Authenticator Authenticator
	Observability LoginObservability
}

// LoginService evaluates login submissions.
type LoginService struct {
	validator ports.CredentialValidator
	auth      Authenticator
	metrics   statsd.Sink
	logger    *slog.Logger
}

// NewLoginService constructs a LoginService. Validator and Authenticator are required.
func NewLoginService(opts LoginServiceOptions) *LoginService {
	if opts.Validator == nil {
		panic("CredentialValidator is required")
	}
	if opts.Authenticator == nil {
		panic("Authenticator is required")
	}
	return &LoginService{
		validator: opts.Validator,
		auth:      opts.Authenticator,
		metrics:   opts.Observability.Metrics,
		logger:    opts.Observability.Logger,
	}
}

// Submit evaluates creds for the session identified by sessionID. A rejected
// pair returns ErrInvalidCredentials and leaves the state untouched. An
// accepted pair returns the authenticated state, which may carry a new ID.
func (s *LoginService) Submit(ctx context.Context, sessionID string, creds domainauth.Credentials) (domainauth.State, error) {
	start := time.Now()

	if !s.validator.Validate(creds.Email, creds.Password) {
		metrics.EmitLoginAttempt(s.metrics, metrics.OutcomeRejected, time.Since(start))
		return domainauth.State{}, ErrInvalidCredentials
	}

	state, err := s.auth.MarkAuthenticated(ctx, sessionID)
	if err != nil {
		return domainauth.State{}, fmt.Errorf("mark authenticated: %w", err)
	}

	metrics.EmitLoginAttempt(s.metrics, metrics.OutcomeAccepted, time.Since(start))
	if s.logger != nil {
		s.logger.InfoContext(ctx, "login accepted", "authenticated_at", state.AuthenticatedAt)
	}
	return state, nil
}
