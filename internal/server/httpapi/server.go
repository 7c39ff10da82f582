// Package httpapi exposes the back-office REST API. Public endpoints accept
// website form submissions; everything under the authenticated group serves
// the admin dashboard and CLI.
package httpapi

import (
	"net/http"

	"github.com/aquapure/backoffice/internal/logging"
	"github.com/aquapure/backoffice/internal/server/repositories/contacts"
	"github.com/aquapure/backoffice/internal/server/repositories/enquiries"
	"github.com/aquapure/backoffice/internal/server/repositories/issues"
	"github.com/aquapure/backoffice/internal/server/repositories/settings"
	"github.com/aquapure/backoffice/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	admins   *services.AdminService
	gallery  *services.GalleryService
	visitors *services.VisitorService

	contacts  contacts.Repository
	enquiries enquiries.Repository
	issues    issues.Repository
	settings  settings.Repository

	logger logging.Logger
}

func New(
	adminSvc *services.AdminService,
	gallerySvc *services.GalleryService,
	visitorSvc *services.VisitorService,
	contactRepo contacts.Repository,
	enquiryRepo enquiries.Repository,
	issueRepo issues.Repository,
	settingRepo settings.Repository,
	logger logging.Logger,
) *Server {
	return &Server{
		admins:    adminSvc,
		gallery:   gallerySvc,
		visitors:  visitorSvc,
		contacts:  contactRepo,
		enquiries: enquiryRepo,
		issues:    issueRepo,
		settings:  settingRepo,
		logger:    logger,
	}
}

// Router builds the route tree. Public routes take no credentials; the
// authenticated group rejects missing or stale tokens with 401 before any
// handler runs.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.observe)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)

		r.Post("/contacts", s.handleCreateContact)
		r.Post("/enquiries", s.handleCreateEnquiry)
		r.Post("/issues", s.handleCreateIssue)
		r.Get("/gallery", s.handleListGallery)
		r.Get("/gallery/{id}", s.handleGetGalleryItem)
		r.Post("/visitors/track", s.handleTrackVisitor)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/auth/profile", s.handleProfile)
			r.Post("/auth/logout", s.handleLogout)

			r.Get("/contacts", s.handleListContacts)
			r.Patch("/contacts/{id}/status", s.handleUpdateContactStatus)
			r.Delete("/contacts/{id}", s.handleDeleteContact)

			r.Get("/enquiries", s.handleListEnquiries)
			r.Patch("/enquiries/{id}/status", s.handleUpdateEnquiryStatus)
			r.Delete("/enquiries/{id}", s.handleDeleteEnquiry)

			r.Get("/issues", s.handleListIssues)
			r.Patch("/issues/{id}/status", s.handleUpdateIssueStatus)
			r.Delete("/issues/{id}", s.handleDeleteIssue)

			r.Post("/gallery", s.handleCreateGalleryItem)
			r.Delete("/gallery/{id}", s.handleDeleteGalleryItem)

			r.Get("/visitors/summary", s.handleVisitorSummary)

			r.Get("/admins", s.handleListAdmins)
			r.Post("/admins", s.handleCreateAdmin)

			r.Get("/settings", s.handleListSettings)
			r.Put("/settings/{key}", s.handlePutSetting)
		})
	})

	return r
}
