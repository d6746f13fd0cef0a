package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/target/pom-practice/internal/domain/auth"
	apperrors "github.com/target/pom-practice/internal/errors"
	"github.com/target/pom-practice/internal/observability/metrics"
	"github.com/target/pom-practice/internal/observability/statsd"
)

// routeKey carries a slot the mux fills with the matched pattern.
type routeKey struct{}

type routeSlot struct{ pattern string }

// Logging returns a middleware that logs HTTP requests and responses and
// records per-route request metrics when sink is non-nil.
func Logging(logger *slog.Logger, sink statsd.Sink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			slot := &routeSlot{}
			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), routeKey{}, slot)))

			elapsed := time.Since(start)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", elapsed),
			)
			metrics.EmitHTTPRequest(sink, slot.pattern, ww.status, elapsed)
		})
	}
}

// withRoute records the mux pattern that matched the request so Logging can tag it.
func withRoute(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slot, ok := r.Context().Value(routeKey{}).(*routeSlot); ok {
			slot.pattern = r.Pattern
		}
		h.ServeHTTP(w, r)
	})
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionResumer loads a browser's authentication state. The bool reports
// whether id named a stored session.
type SessionResumer interface {
	Resume(ctx context.Context, id string) (domainauth.State, bool, error)
}

// SessionMiddlewareConfig configures the Sessions middleware.
type SessionMiddlewareConfig struct {
	Shell        SessionResumer
	CookieDomain string
	Logger       *slog.Logger
}

// Sessions loads the request's authentication state into the context. A
// missing, unknown or expired session cookie yields an unsaved anonymous
// state, and a stale cookie is cleared. Health checks bypass session handling.
func Sessions(cfg SessionMiddlewareConfig) func(http.Handler) http.Handler {
	if cfg.Shell == nil {
		panic("SessionResumer is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" {
				next.ServeHTTP(w, r)
				return
			}

			id := cookieValue(r, SessionCookieName)
			state, found, err := cfg.Shell.Resume(r.Context(), id)
			if err != nil {
				logger.ErrorContext(r.Context(), "failed to load session", "error", err)
				if IsBrowserRequest(r) {
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				WriteAppError(w, err)
				return
			}
			if id != "" && !found {
				clearSessionCookie(w, r, cfg.CookieDomain)
			}

			next.ServeHTTP(w, r.WithContext(SetAuthStateInContext(r.Context(), state)))
		})
	}
}

// setSessionCookie writes the session cookie for state.
func setSessionCookie(w http.ResponseWriter, r *http.Request, state domainauth.State, domain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    state.ID,
		Path:     "/",
		Domain:   domain,
		Expires:  state.ExpiresAt,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie in the browser.
func clearSessionCookie(w http.ResponseWriter, r *http.Request, domain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// browserRequestKey is an unexported context key type for browser request detection.
type browserRequestKey struct{}

// BrowserDetection marks each request as browser or API so downstream
// handlers can choose between HTML and JSON responses.
func BrowserDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), browserRequestKey{}, isBrowserRequest(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsBrowserRequest returns true if the current request is from a browser.
func IsBrowserRequest(r *http.Request) bool {
	if isBrowser, ok := r.Context().Value(browserRequestKey{}).(bool); ok {
		return isBrowser
	}
	return isBrowserRequest(r)
}

// isBrowserRequest treats /api/ paths as API calls, htmx requests as browser
// calls, and otherwise trusts the Accept header. No Accept header means browser.
func isBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return false
	}
	if IsHTMX(r) {
		return true
	}
	accept := r.Header.Get("Accept")
	if accept == "" {
		return true
	}
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "*/*")
}

// RequireAuthBrowser guards a route on the loaded authentication state.
// Browsers are sent to the login page; API clients get a 401 JSON error.
func RequireAuthBrowser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state, ok := GetAuthStateFromContext(r.Context())
			if ok && state.Authenticated {
				next.ServeHTTP(w, r)
				return
			}
			if IsBrowserRequest(r) {
				redirect(w, r, PathLogin)
				return
			}
			WriteAppError(w, apperrors.Unauthorized("authentication required"))
		})
	}
}
