package viewmodel

import domainauth "github.com/target/pom-practice/internal/domain/auth"

// NavLink is one entry of the navigation bar.
type NavLink struct {
	TestID string
	Href   string
	Label  string
	Active bool
}

// navLinks is the fixed navigation bar content, in render order.
var navLinks = []NavLink{
	{TestID: "nav-dashboard", Href: "/dashboard", Label: "Dashboard"},
	{TestID: "nav-users", Href: "/users", Label: "Users"},
}

// NavLinks returns the navigation links with the one matching currentPath marked active.
func NavLinks(currentPath string) []NavLink {
	links := make([]NavLink, len(navLinks))
	for i, l := range navLinks {
		l.Active = l.Href == currentPath
		links[i] = l
	}
	return links
}

// Layout captures shared chrome metadata (titles, navigation state, display variant).
type Layout struct {
	Title         string
	PageTitle     string
	CurrentPage   string
	CSRFToken     string
	HTMXScriptURL string
	Display       domainauth.Display
	ShowNav       bool
	NavLinks      []NavLink
}

// NewLayout resolves the chrome for one render. The navigation bar is
// present only for the authenticated display variant.
func NewLayout(display domainauth.Display, currentPath string) Layout {
	layout := Layout{Display: display}
	if display == domainauth.DisplayAuthenticated {
		layout.ShowNav = true
		layout.NavLinks = NavLinks(currentPath)
	}
	return layout
}
