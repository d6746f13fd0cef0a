package httpx

import (
	"net/http"

	apperrors "github.com/target/pom-practice/internal/errors"
)

// NotFound handles 404 errors. Browser requests get an HTML error page that
// keeps the navigation bar for authenticated sessions; API requests get JSON.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		h.renderBrowserNotFound(w, r)
		return
	}
	renderAPINotFound(w)
}

func (h *UIHandlers) renderBrowserNotFound(w http.ResponseWriter, r *http.Request) {
	layout := h.buildLayout(r, PageMeta{Title: "Page Not Found - POM Practice"})
	homeHref := PathLogin
	if layout.ShowNav {
		homeHref = PathDashboard
	}
	data := map[string]any{
		"Title":    layout.Title,
		"Code":     "404",
		"Message":  "The page you're looking for doesn't exist.",
		"HomeHref": homeHref,
		"ShowNav":  layout.ShowNav,
		"NavLinks": layout.NavLinks,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if h.T == nil {
		_, _ = w.Write([]byte("Page not found\n"))
		return
	}
	if err := h.T.RenderError(w, r, data); err != nil {
		h.logger().Error("failed to render not found page", "error", err)
	}
}

func renderAPINotFound(w http.ResponseWriter) {
	WriteAppError(w, apperrors.NotFound("not found"))
}
