package pageobject

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Test IDs rendered by the application.
const (
	TestIDLoginPage     = "login-page"
	TestIDLoginEmail    = "login-email"
	TestIDLoginPassword = "login-password"
	TestIDLoginSubmit   = "login-submit"
	TestIDLoginError    = "login-error"
	TestIDNavBar        = "nav-bar"
	TestIDNavDashboard  = "nav-dashboard"
	TestIDNavUsers      = "nav-users"
	TestIDDashboardPage = "dashboard-page"
	TestIDUsersPage     = "users-page"
	UserRowPrefix       = "user-row-"
)

// LoginPage models the login form.
type LoginPage struct {
	b        *Browser
	email    string
	password string
}

// NewLoginPage binds a LoginPage to b.
func NewLoginPage(b *Browser) *LoginPage { return &LoginPage{b: b} }

// Open navigates to /login.
func (p *LoginPage) Open(ctx context.Context) error { return p.b.Visit(ctx, "/login") }

// IsLoaded reports whether the login form is on the current page.
func (p *LoginPage) IsLoaded() bool { return p.b.Exists(TestIDLoginPage) }

// FillEmail sets the email typed into the form.
func (p *LoginPage) FillEmail(email string) *LoginPage {
	p.email = email
	return p
}

// FillPassword sets the password typed into the form.
func (p *LoginPage) FillPassword(password string) *LoginPage {
	p.password = password
	return p
}

// Submit clicks Sign In: every named input of the form is posted, with the
// email and password fields replaced by the filled values.
func (p *LoginPage) Submit(ctx context.Context) error {
	button, err := p.b.Find(TestIDLoginSubmit)
	if err != nil {
		return err
	}
	form := enclosingForm(button)
	if form == nil {
		return errors.New("login submit button is not inside a form")
	}

	values := url.Values{}
	walk(form, func(n *html.Node) bool {
		if n.Data != "input" {
			return true
		}
		name := attr(n, "name")
		if name == "" {
			return true
		}
		switch attr(n, "data-testid") {
		case TestIDLoginEmail:
			values.Set(name, p.email)
		case TestIDLoginPassword:
			values.Set(name, p.password)
		default:
			values.Set(name, attr(n, "value"))
		}
		return true
	})

	action := attr(form, "action")
	if action == "" {
		action = p.b.Path()
	}
	return p.b.Submit(ctx, action, values)
}

// Login fills both fields and submits.
func (p *LoginPage) Login(ctx context.Context, email, password string) error {
	return p.FillEmail(email).FillPassword(password).Submit(ctx)
}

// Error returns the rejection message and whether one is shown.
func (p *LoginPage) Error() (string, bool) {
	text, err := p.b.Text(TestIDLoginError)
	if err != nil {
		return "", false
	}
	return text, true
}

// EmailValue returns the value rendered in the email input.
func (p *LoginPage) EmailValue() string { return p.inputValue(TestIDLoginEmail) }

// PasswordValue returns the value rendered in the password input.
func (p *LoginPage) PasswordValue() string { return p.inputValue(TestIDLoginPassword) }

func (p *LoginPage) inputValue(testID string) string {
	n, err := p.b.Find(testID)
	if err != nil {
		return ""
	}
	return attr(n, "value")
}

func enclosingForm(n *html.Node) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type == html.ElementNode && cur.Data == "form" {
			return cur
		}
	}
	return nil
}

// Link is one navigation entry.
type Link struct {
	TestID string
	Href   string
	Label  string
}

// NavBar models the navigation bar.
type NavBar struct{ b *Browser }

// NewNavBar binds a NavBar to b.
func NewNavBar(b *Browser) *NavBar { return &NavBar{b: b} }

// IsVisible reports whether the navigation bar is on the current page.
func (n *NavBar) IsVisible() bool { return n.b.Exists(TestIDNavBar) }

// Links returns the navigation links in render order.
func (n *NavBar) Links() []Link {
	bar, err := n.b.Find(TestIDNavBar)
	if err != nil {
		return nil
	}
	var links []Link
	walk(bar, func(node *html.Node) bool {
		if node.Data == "a" {
			links = append(links, Link{
				TestID: attr(node, "data-testid"),
				Href:   attr(node, "href"),
				Label:  textContent(node),
			})
		}
		return true
	})
	return links
}

// GoToDashboard follows the dashboard link.
func (n *NavBar) GoToDashboard(ctx context.Context) error { return n.follow(ctx, TestIDNavDashboard) }

// GoToUsers follows the users link.
func (n *NavBar) GoToUsers(ctx context.Context) error { return n.follow(ctx, TestIDNavUsers) }

func (n *NavBar) follow(ctx context.Context, testID string) error {
	link, err := n.b.Find(testID)
	if err != nil {
		return err
	}
	href := attr(link, "href")
	if href == "" {
		return fmt.Errorf("%s has no href", testID)
	}
	return n.b.Visit(ctx, href)
}

// DashboardPage models the dashboard view.
type DashboardPage struct{ b *Browser }

// NewDashboardPage binds a DashboardPage to b.
func NewDashboardPage(b *Browser) *DashboardPage { return &DashboardPage{b: b} }

// Open navigates to /dashboard.
func (p *DashboardPage) Open(ctx context.Context) error { return p.b.Visit(ctx, "/dashboard") }

// IsLoaded reports whether the dashboard is on the current page.
func (p *DashboardPage) IsLoaded() bool { return p.b.Exists(TestIDDashboardPage) }

// UserRow is one rendered entry of the users list.
type UserRow struct {
	TestID string
	Name   string
}

// UsersPage models the users list.
type UsersPage struct{ b *Browser }

// NewUsersPage binds a UsersPage to b.
func NewUsersPage(b *Browser) *UsersPage { return &UsersPage{b: b} }

// Open navigates to /users.
func (p *UsersPage) Open(ctx context.Context) error { return p.b.Visit(ctx, "/users") }

// IsLoaded reports whether the users list is on the current page.
func (p *UsersPage) IsLoaded() bool { return p.b.Exists(TestIDUsersPage) }

// Rows returns the user rows in render order.
func (p *UsersPage) Rows() []UserRow {
	nodes := p.b.FindAllWithPrefix(UserRowPrefix)
	rows := make([]UserRow, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, UserRow{TestID: attr(n, "data-testid"), Name: textContent(n)})
	}
	return rows
}

// RowNames returns only the names of the user rows.
func (p *UsersPage) RowNames() []string {
	rows := p.Rows()
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = strings.TrimSpace(r.Name)
	}
	return names
}
