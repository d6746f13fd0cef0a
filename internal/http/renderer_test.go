package httpx

import (
	"bytes"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pompractice "github.com/target/pom-practice"
	"github.com/target/pom-practice/internal/http/ui/viewmodel"
)

func embeddedRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	sub, err := fs.Sub(pompractice.TemplateFS, TemplatePathFromRoot)
	require.NoError(t, err)
	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: sub, Logger: discardLogger()})
	require.NoError(t, err)
	return tr
}

func TestNewTemplateRenderer_RequiresFS(t *testing.T) {
	_, err := NewTemplateRenderer(TemplateRendererConfig{})
	require.Error(t, err)
}

func TestNewTemplateRenderer_ParseError(t *testing.T) {
	broken := fstest.MapFS{
		"layout.tmpl":          {Data: []byte(`{{define "layout"}}{{.Title}`)},
		"pages/login.tmpl":     {Data: []byte(`{{define "login-content"}}{{end}}`)},
		"partials/navbar.tmpl": {Data: []byte(`{{define "navbar"}}{{end}}`)},
	}
	_, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: broken})
	require.Error(t, err)
}

func TestRenderFull_ExecutionErrorIsLogged(t *testing.T) {
	tmpl := fstest.MapFS{
		"layout.tmpl":          {Data: []byte(`{{define "layout"}}<p>{{index .Items 5}}</p>{{end}}`)},
		"pages/login.tmpl":     {Data: []byte(`{{define "login-content"}}{{end}}`)},
		"partials/navbar.tmpl": {Data: []byte(`{{define "navbar"}}{{end}}`)},
	}
	var logs bytes.Buffer
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: tmpl,
		Logger:     slog.New(slog.NewTextHandler(&logs, nil)),
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = tr.RenderFull(rec, httptest.NewRequest(http.MethodGet, "/", nil), map[string]any{"Items": []int{}})

	require.Error(t, err)
	assert.Empty(t, rec.Body.String(), "a failed render writes nothing")
	assert.Contains(t, logs.String(), "template execution failed")
	assert.Contains(t, logs.String(), "template=layout")
}

func TestRenderFull_NavOnlyWhenShown(t *testing.T) {
	tr := embeddedRenderer(t)

	base := func(showNav bool) map[string]any {
		var links []viewmodel.NavLink
		if showNav {
			links = viewmodel.NavLinks(PathDashboard)
		}
		return map[string]any{
			"Title":         "Dashboard",
			"PageTitle":     "Dashboard",
			"CurrentPage":   PageDashboard,
			"CSRFToken":     "",
			"HTMXScriptURL": "",
			"Display":       "",
			"ShowNav":       showNav,
			"NavLinks":      links,
		}
	}

	rec := httptest.NewRecorder()
	require.NoError(t, tr.RenderFull(rec, httptest.NewRequest(http.MethodGet, "/", nil), base(true)))
	body := rec.Body.String()
	assert.Contains(t, body, `data-testid="nav-bar"`)
	assert.Contains(t, body, `data-testid="nav-dashboard"`)
	assert.Contains(t, body, `data-testid="nav-users"`)
	assert.Contains(t, body, `data-testid="dashboard-page"`)
	assert.Contains(t, body, `aria-current="page"`)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	require.NoError(t, tr.RenderFull(rec, httptest.NewRequest(http.MethodGet, "/", nil), base(false)))
	assert.NotContains(t, rec.Body.String(), `data-testid="nav-bar"`)
	assert.NotContains(t, rec.Body.String(), "<script")
}

func TestRenderPartial_ContentOnly(t *testing.T) {
	tr := embeddedRenderer(t)
	rec := httptest.NewRecorder()

	err := tr.RenderPartial(rec, httptest.NewRequest(http.MethodGet, "/", nil), map[string]any{
		"CurrentPage": PageLogin,
		"CSRFToken":   "tok",
		"Email":       "a@b.c",
		"Password":    "pw",
		"Error":       "",
	})

	require.NoError(t, err)
	body := rec.Body.String()
	assert.Contains(t, body, `data-testid="login-page"`)
	assert.Contains(t, body, `value="tok"`)
	assert.Contains(t, body, `value="a@b.c"`)
	assert.NotContains(t, body, `data-testid="login-error"`)
	assert.NotContains(t, body, "<html")
}
