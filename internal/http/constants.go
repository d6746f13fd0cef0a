package httpx

// CurrentPage identifiers used in templates and navigation.
const (
	PageLogin     = "login"
	PageDashboard = "dashboard"
	PageUsers     = "users"
)

// Route paths.
const (
	PathRoot      = "/"
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
	PathUsers     = "/users"
)

// SessionCookieName carries the opaque session ID.
const SessionCookieName = "session_id"

// TemplatePathFromRoot is the on-disk template directory used in dev mode.
const TemplatePathFromRoot = "frontend/templates"

//nolint:gochecknoglobals // static read-only lookup
var contentTemplates = map[string]string{
	PageLogin:     "login-content",
	PageDashboard: "dashboard-content",
	PageUsers:     "users-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Unknown pages fall back to the login form.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "login-content"
}
