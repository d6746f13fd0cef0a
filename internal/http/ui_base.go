package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"

	domainauth "github.com/target/pom-practice/internal/domain/auth"
	"github.com/target/pom-practice/internal/domain/model"
	"github.com/target/pom-practice/internal/http/ui/viewmodel"
	"github.com/target/pom-practice/internal/service"
)

// LoginSubmitter evaluates a login form submission.
type LoginSubmitter interface {
	Submit(ctx context.Context, sessionID string, creds domainauth.Credentials) (domainauth.State, error)
}

// UserLister exposes the user directory.
type UserLister interface {
	List() []model.User
}

var (
	_ LoginSubmitter = (*service.LoginService)(nil)
	_ UserLister     = (*service.UserService)(nil)
	_ SessionResumer = (*service.Shell)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T             *TemplateRenderer
	UserSvc       UserLister
	LoginSvc      LoginSubmitter
	CookieDomain  string
	HTMXScriptURL string
	IsDev         bool // Development mode flag for enhanced error reporting
	Logger        *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout resolves the display variant once and derives the chrome from it.
func (h *UIHandlers) buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.NewLayout(DisplayFromContext(r.Context()), r.URL.Path)
	layout.Title = meta.Title
	layout.PageTitle = meta.PageTitle
	layout.CurrentPage = meta.CurrentPage
	layout.CSRFToken = GetCSRFToken(r)
	layout.HTMXScriptURL = h.HTMXScriptURL
	return layout
}

// basePageData constructs the common page data map. Every key the layout
// reads is always present.
func (h *UIHandlers) basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := h.buildLayout(r, meta)
	return map[string]any{
		"Title":         layout.Title,
		"PageTitle":     layout.PageTitle,
		"CurrentPage":   layout.CurrentPage,
		"CSRFToken":     layout.CSRFToken,
		"HTMXScriptURL": layout.HTMXScriptURL,
		"Display":       string(layout.Display),
		"ShowNav":       layout.ShowNav,
		"NavLinks":      layout.NavLinks,
	}
}

// PageSpec defines metadata and an optional fill step for page-specific data.
type PageSpec struct {
	Meta PageMeta
	Fill func(data map[string]any)
}

// Page builds base data, fills in content data, and renders.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := h.basePageData(r, spec.Meta)
	if spec.Fill != nil {
		spec.Fill(data)
	}
	h.renderPage(w, r, data)
}

// renderPage renders a full document, or only the content fragment for htmx requests.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	SetHXPushURL(w, r.URL.Path)

	// htmx lifts a <title> out of the swapped content into document.title.
	title, _ := data["Title"].(string)
	if _, err := w.Write([]byte(`<title>` + html.EscapeString(title) + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}
	if err := h.T.RenderPartial(w, r, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, phase string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"phase", phase,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		body := `<pre data-testid="template-error">` +
			html.EscapeString(phase) + "\n" +
			html.EscapeString(r.URL.Path) + "\n" +
			html.EscapeString(err.Error()) + `</pre>`
		if _, writeErr := w.Write([]byte(body)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}
