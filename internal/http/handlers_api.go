package httpx

import (
	"net/http"

	domainauth "github.com/target/pom-practice/internal/domain/auth"
	"github.com/target/pom-practice/internal/domain/model"
)

// APIHandlers serves the JSON state endpoints.
type APIHandlers struct {
	UserSvc UserLister
}

type sessionResponse struct {
	Authenticated bool               `json:"authenticated"`
	Display       domainauth.Display `json:"display"`
}

// Session reports the caller's authentication state.
func (h *APIHandlers) Session(w http.ResponseWriter, r *http.Request) {
	state, _ := GetAuthStateFromContext(r.Context())
	WriteJSON(w, http.StatusOK, sessionResponse{
		Authenticated: state.Authenticated,
		Display:       state.Display(),
	})
}

type usersResponse struct {
	Users []model.User `json:"users"`
}

// ListUsers returns the user directory in order.
func (h *APIHandlers) ListUsers(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, usersResponse{Users: h.UserSvc.List()})
}
