package httpx

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	pompractice "github.com/target/pom-practice"
)

// RouterServices holds the dependencies and settings of the router.
type RouterServices struct {
	Shell        SessionResumer
	Login        LoginSubmitter
	Users        UserLister
	CookieDomain string
	// GuardRoutes sends anonymous visitors of /dashboard and /users to the login page.
	GuardRoutes   bool
	HTMXScriptURL string
	// TemplateFS overrides the template source. When nil, templates come
	// from disk in dev mode and from the embedded copy otherwise.
	TemplateFS fs.FS
	IsDev      bool
	Logger     *slog.Logger
}

// NewRouter creates the application handler: the route table wrapped with
// 404 handling, session loading and browser detection.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templateFS, err := resolveTemplateFS(services)
	if err != nil {
		return nil, err
	}
	renderer, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: templateFS, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	ui := &UIHandlers{
		T:             renderer,
		UserSvc:       services.Users,
		LoginSvc:      services.Login,
		CookieDomain:  services.CookieDomain,
		HTMXScriptURL: services.HTMXScriptURL,
		IsDev:         services.IsDev,
		Logger:        logger,
	}
	api := &APIHandlers{UserSvc: services.Users}

	mux := http.NewServeMux()
	registerUIRoutes(mux, ui, uiRouteConfig{CookieDomain: services.CookieDomain, Guard: services.GuardRoutes})
	registerAPIRoutes(mux, api)
	handle(mux, "GET /healthz", http.HandlerFunc(healthHandler))
	handle(mux, "HEAD /healthz", http.HandlerFunc(healthHandler))

	var handler http.Handler = &notFoundHandler{mux: mux, uiHandlers: ui}
	handler = Sessions(SessionMiddlewareConfig{
		Shell:        services.Shell,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	})(handler)
	return BrowserDetection()(handler), nil
}

func resolveTemplateFS(services RouterServices) (fs.FS, error) {
	if services.TemplateFS != nil {
		return services.TemplateFS, nil
	}
	if services.IsDev {
		return os.DirFS(TemplatePathFromRoot), nil
	}
	sub, err := fs.Sub(pompractice.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		return nil, fmt.Errorf("embedded templates: %w", err)
	}
	return sub, nil
}

type uiRouteConfig struct {
	CookieDomain string
	Guard        bool
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	csrf := CSRFProtection(CSRFConfig{CookieDomain: cfg.CookieDomain})
	guard := func(next http.Handler) http.Handler { return next }
	if cfg.Guard {
		guard = RequireAuthBrowser()
	}

	handle(mux, "GET /{$}", http.HandlerFunc(h.Index))
	handle(mux, "GET /login", csrf(http.HandlerFunc(h.LoginPage)))
	handle(mux, "POST /login", csrf(http.HandlerFunc(h.LoginSubmit)))
	handle(mux, "GET /dashboard", guard(http.HandlerFunc(h.Dashboard)))
	handle(mux, "GET /users", guard(http.HandlerFunc(h.Users)))
}

func registerAPIRoutes(mux *http.ServeMux, h *APIHandlers) {
	handle(mux, "GET /api/session", http.HandlerFunc(h.Session))
	handle(mux, "GET /api/users", http.HandlerFunc(h.ListUsers))
}

// handle registers h so request logging can tag it with its pattern.
func handle(mux *http.ServeMux, pattern string, h http.Handler) {
	mux.Handle(pattern, withRoute(h))
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler and provides custom 404 handling.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cw := newCaptureWriter(w)
	h.mux.ServeHTTP(cw, r)

	if cw.status == http.StatusNotFound && cw.header.Get("Content-Type") != "application/json" {
		h.uiHandlers.NotFound(w, r)
		return
	}
	cw.flushTo(w)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	rw     http.ResponseWriter
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter) *captureWriter {
	return &captureWriter{rw: w, header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		slog.Default().Error("failed to write captured response", "error", err)
	}
}
