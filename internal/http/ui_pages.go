package httpx

import (
	"net/http"
)

var (
	loginMeta     = PageMeta{Title: "Login - POM Practice", PageTitle: "Login", CurrentPage: PageLogin}
	dashboardMeta = PageMeta{Title: "Dashboard - POM Practice", PageTitle: "Dashboard", CurrentPage: PageDashboard}
	usersMeta     = PageMeta{Title: "Users - POM Practice", PageTitle: "Users", CurrentPage: PageUsers}
)

// Index sends every visitor of the root path to the login page.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, PathLogin, http.StatusFound)
}

// Dashboard renders the post-login landing page.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{Meta: dashboardMeta})
}

// Users renders one row per directory entry.
func (h *UIHandlers) Users(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: usersMeta,
		Fill: func(data map[string]any) {
			data["Users"] = h.UserSvc.List()
		},
	})
}
