package httpx

import (
	"net/http"

	domainauth "github.com/target/pom-practice/internal/domain/auth"
	apperrors "github.com/target/pom-practice/internal/errors"
)

// LoginPage renders the login form in its unsubmitted state.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, loginForm{})
}

// LoginSubmit evaluates the submitted pair. Accepted pairs navigate to the
// dashboard; rejected pairs re-render the form with the submitted values and
// the invalid credentials message.
func (h *UIHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	creds := domainauth.Credentials{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	var sessionID string
	if state, ok := GetAuthStateFromContext(r.Context()); ok {
		sessionID = state.ID
	}

	state, err := h.LoginSvc.Submit(r.Context(), sessionID, creds)
	if err != nil {
		if apperrors.IsInvalidCredentials(err) {
			h.renderLogin(w, r, loginForm{Credentials: creds, Error: domainauth.InvalidCredentialsMessage})
			return
		}
		h.logger().ErrorContext(r.Context(), "login failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, r, state, h.CookieDomain)
	redirect(w, r, PathDashboard)
}

// loginForm is the observable state of the login view.
type loginForm struct {
	domainauth.Credentials
	Error string
}

func (h *UIHandlers) renderLogin(w http.ResponseWriter, r *http.Request, form loginForm) {
	h.Page(w, r, PageSpec{
		Meta: loginMeta,
		Fill: func(data map[string]any) {
			data["Email"] = form.Email
			data["Password"] = form.Password
			data["Error"] = form.Error
		},
	})
}
