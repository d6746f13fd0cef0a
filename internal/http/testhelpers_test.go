package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/target/pom-practice/internal/adapters/memory"
	"github.com/target/pom-practice/internal/adapters/staticcreds"
	"github.com/target/pom-practice/internal/data"
	"github.com/target/pom-practice/internal/service"
	"github.com/target/pom-practice/internal/testutil/pageobject"
)

const (
	testEmail    = "test@example.com"
	testPassword = "password123"
)

type testAppOptions struct {
	Guard         bool
	HTMXScriptURL string
}

type testApp struct {
	Handler  http.Handler
	Sessions *memory.SessionStore
	Shell    *service.Shell
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestApp wires the router with the in-memory session store and the embedded templates.
func newTestApp(t *testing.T, opts testAppOptions) *testApp {
	t.Helper()
	store := memory.NewSessionStore()
	shell := service.NewShell(service.ShellOptions{Sessions: store})
	validator, err := staticcreds.NewValidator(staticcreds.Config{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	login := service.NewLoginService(service.LoginServiceOptions{Validator: validator, Authenticator: shell})
	users := service.NewUserService(service.UserServiceOptions{Directory: data.NewStaticUserDirectory()})

	handler, err := NewRouter(RouterServices{
		Shell:         shell,
		Login:         login,
		Users:         users,
		GuardRoutes:   opts.Guard,
		HTMXScriptURL: opts.HTMXScriptURL,
		Logger:        discardLogger(),
	})
	require.NoError(t, err)
	return &testApp{Handler: handler, Sessions: store, Shell: shell}
}

// newTestBrowser serves app over a real listener and returns a fresh browser for it.
func newTestBrowser(t *testing.T, app *testApp) *pageobject.Browser {
	t.Helper()
	srv := httptest.NewServer(app.Handler)
	t.Cleanup(srv.Close)
	b, err := pageobject.NewBrowser(srv.URL)
	require.NoError(t, err)
	return b
}
