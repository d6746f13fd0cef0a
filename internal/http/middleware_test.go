package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/pom-practice/internal/domain/auth"
	"github.com/target/pom-practice/internal/mocks"
	"github.com/target/pom-practice/internal/service"
	"go.uber.org/mock/gomock"
)

type countCall struct {
	name string
	tags map[string]string
}

type recordingSink struct {
	mu     sync.Mutex
	counts []countCall
}

func (s *recordingSink) Count(name string, _ int64, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts = append(s.counts, countCall{name: name, tags: tags})
}

func (s *recordingSink) Timing(string, time.Duration, map[string]string) {}

func TestLogging_TagsMatchedRoute(t *testing.T) {
	sink := &recordingSink{}
	mux := http.NewServeMux()
	handle(mux, "GET /users", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	handler := Logging(discardLogger(), sink)(mux)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	require.Len(t, sink.counts, 2)
	assert.Equal(t, "http.request", sink.counts[0].name)
	assert.Equal(t, map[string]string{"route": "GET /users", "status": "202"}, sink.counts[0].tags)
	assert.Equal(t, map[string]string{"route": "unmatched", "status": "404"}, sink.counts[1].tags)
}

func TestRecover(t *testing.T) {
	handler := Recover(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()

	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestIsBrowserRequest(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		headers map[string]string
		want    bool
	}{
		{name: "no accept header", path: "/users", want: true},
		{name: "html accept", path: "/users", headers: map[string]string{"Accept": "text/html,application/xhtml+xml"}, want: true},
		{name: "json accept", path: "/users", headers: map[string]string{"Accept": "application/json"}, want: false},
		{name: "api path", path: "/api/session", headers: map[string]string{"Accept": "text/html"}, want: false},
		{name: "htmx", path: "/users", headers: map[string]string{"Accept": "application/json", "HX-Request": "true"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, IsBrowserRequest(req))
		})
	}
}

func sessionsHandler(t *testing.T, shell SessionResumer) (http.Handler, *domainauth.State) {
	t.Helper()
	var seen domainauth.State
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, ok := GetAuthStateFromContext(r.Context())
		require.True(t, ok)
		seen = state
		w.WriteHeader(http.StatusOK)
	})
	return Sessions(SessionMiddlewareConfig{Shell: shell, Logger: discardLogger()})(next), &seen
}

func TestSessions_AnonymousWithoutCookie(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	handler, seen := sessionsHandler(t, app.Shell)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	assert.Nil(t, findCookie(rec.Result().Cookies(), SessionCookieName))
	assert.Empty(t, seen.ID)
	assert.False(t, seen.Authenticated)
	assert.Equal(t, domainauth.DisplayAnonymous, seen.Display())
	assert.Zero(t, app.Sessions.Len())
}

func TestSessions_ReusesKnownSession(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	state, err := app.Shell.MarkAuthenticated(context.Background(), "")
	require.NoError(t, err)
	handler, seen := sessionsHandler(t, app.Shell)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: state.ID})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Nil(t, findCookie(rec.Result().Cookies(), SessionCookieName), "cookie unchanged")
	assert.Equal(t, state.ID, seen.ID)
	assert.True(t, seen.Authenticated)
}

func TestSessions_UnknownCookieIsCleared(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	handler, seen := sessionsHandler(t, app.Shell)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	cookie := findCookie(rec.Result().Cookies(), SessionCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
	assert.Empty(t, seen.ID)
	assert.False(t, seen.Authenticated)
	assert.Zero(t, app.Sessions.Len())
}

func TestSessions_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Get(gomock.Any(), "abc").Return(domainauth.State{}, errors.New("connection refused"))
	shell := service.NewShell(service.ShellOptions{Sessions: store})

	handler := Sessions(SessionMiddlewareConfig{Shell: shell, Logger: discardLogger()})(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("next handler must not run")
		}))

	t.Run("browser", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "abc"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("api", func(t *testing.T) {
		store.EXPECT().Get(gomock.Any(), "abc").Return(domainauth.State{}, errors.New("connection refused"))
		req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "abc"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"internal","message":"internal error"}`, rec.Body.String())
	})
}

func TestRequireAuthBrowser_NoStateIsAnonymous(t *testing.T) {
	handler := RequireAuthBrowser()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, PathDashboard, nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PathLogin, rec.Header().Get("Location"))
}

func TestRequireAuthBrowser_APIClientGetsUnauthorized(t *testing.T) {
	handler := RequireAuthBrowser()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"unauthorized","message":"authentication required"}`, rec.Body.String())
}
