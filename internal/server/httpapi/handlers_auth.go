package httpapi

import (
	"net/http"

	"github.com/aquapure/backoffice/internal/server/models"
)

type adminView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toAdminView(a *models.Admin) adminView {
	return adminView{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	admin, token, ttl, err := s.admins.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"admin":       toAdminView(admin),
		"accessToken": token,
		"expiresIn":   ttl.String(),
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	admin, err := s.admins.Profile(r.Context(), AdminIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"admin": toAdminView(admin)})
}

// handleLogout exists so clients have a uniform endpoint to end a session
// against. Access tokens are stateless, so there is nothing to revoke server
// side; the client discards its stored credential.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Logged out")
}
