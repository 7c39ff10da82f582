package httpapi

import (
	"net/http"
	"time"

	"github.com/aquapure/backoffice/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type galleryItemView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) handleListGallery(w http.ResponseWriter, r *http.Request) {
	items, err := s.gallery.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		s.logger.Error(r.Context(), "failed to list gallery", "error", err)
		writeServiceError(w, err)
		return
	}

	views := make([]galleryItemView, 0, len(items))
	for _, item := range items {
		url, err := s.gallery.PresignedGetURL(r.Context(), item.StorageKey)
		if err != nil {
			// One broken image should not empty the whole gallery.
			s.logger.Warn(r.Context(), "failed to presign image", "id", item.ID, "error", err)
		}
		views = append(views, galleryItemView{
			ID: item.ID, Title: item.Title, Category: item.Category,
			ImageURL: url, CreatedAt: item.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, listView[galleryItemView]{Items: views, Total: len(views)})
}

func (s *Server) handleGetGalleryItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.gallery.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	url, err := s.gallery.PresignedGetURL(r.Context(), item.StorageKey)
	if err != nil {
		s.logger.Warn(r.Context(), "failed to presign image", "id", item.ID, "error", err)
	}

	view := toGalleryItemView(item)
	view.ImageURL = url
	writeJSON(w, http.StatusOK, map[string]any{"item": view})
}

func (s *Server) handleCreateGalleryItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string `json:"title"`
		Category string `json:"category"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	item, uploadURL, err := s.gallery.CreateItem(r.Context(), req.Title, req.Category)
	if err != nil {
		s.logger.Error(r.Context(), "failed to create gallery item", "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"item":      toGalleryItemView(item),
		"uploadUrl": uploadURL,
	})
}

func toGalleryItemView(item *models.GalleryItem) galleryItemView {
	return galleryItemView{ID: item.ID, Title: item.Title, Category: item.Category, CreatedAt: item.CreatedAt}
}

func (s *Server) handleDeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	if err := s.gallery.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Deleted")
}
