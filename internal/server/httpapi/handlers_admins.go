package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := s.admins.List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "failed to list admins", "error", err)
		writeServiceError(w, err)
		return
	}

	views := make([]adminView, 0, len(admins))
	for _, a := range admins {
		views = append(views, toAdminView(a))
	}
	writeJSON(w, http.StatusOK, listView[adminView]{Items: views, Total: len(views)})
}

func (s *Server) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Role     string `json:"role"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	admin, err := s.admins.Create(r.Context(), req.Name, req.Email, req.Role, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"admin": toAdminView(admin)})
}

func (s *Server) handleListSettings(w http.ResponseWriter, r *http.Request) {
	items, err := s.settings.List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "failed to list settings", "error", err)
		writeServiceError(w, err)
		return
	}

	kv := make(map[string]string, len(items))
	for _, item := range items {
		kv[item.Key] = item.Value
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": kv})
}

func (s *Server) handlePutSetting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if _, err := s.settings.Put(r.Context(), chi.URLParam(r, "key"), req.Value); err != nil {
		s.logger.Error(r.Context(), "failed to store setting", "error", err)
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Saved")
}
