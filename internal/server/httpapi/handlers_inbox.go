package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aquapure/backoffice/internal/server/models"
	"github.com/aquapure/backoffice/internal/server/repositories/contacts"
	"github.com/aquapure/backoffice/internal/server/repositories/enquiries"
	"github.com/aquapure/backoffice/internal/server/repositories/issues"
	"github.com/go-chi/chi/v5"
)

type contactView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type enquiryView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Part      string    `json:"part"`
	Quantity  int       `json:"quantity"`
	Message   string    `json:"message,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type issueView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type listView[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// pageFilter translates page/perPage query parameters into a limit/offset
// pair. Page numbering starts at 1.
func pageFilter(r *http.Request) (status string, limit, offset int) {
	q := r.URL.Query()
	status = q.Get("status")
	perPage, _ := strconv.Atoi(q.Get("perPage"))
	page, _ := strconv.Atoi(q.Get("page"))
	if perPage > 0 {
		limit = perPage
		if page > 1 {
			offset = (page - 1) * perPage
		}
	}
	return status, limit, offset
}

func validStatus(status string) bool {
	switch status {
	case models.StatusNew, models.StatusSeen, models.StatusResolved:
		return true
	}
	return false
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "Name, email and message are required")
		return
	}

	contact := &models.Contact{Name: req.Name, Email: req.Email, Phone: req.Phone, Message: req.Message}
	created, err := s.contacts.Create(r.Context(), contact)
	if err != nil {
		s.logger.Error(r.Context(), "failed to create contact", "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toContactView(created))
}

func toContactView(c *models.Contact) contactView {
	return contactView{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone,
		Message: c.Message, Status: c.Status, CreatedAt: c.CreatedAt}
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	status, limit, offset := pageFilter(r)
	items, total, err := s.contacts.List(r.Context(), contacts.Filter{Status: status, Limit: limit, Offset: offset})
	if err != nil {
		s.logger.Error(r.Context(), "failed to list contacts", "error", err)
		writeServiceError(w, err)
		return
	}

	views := make([]contactView, 0, len(items))
	for _, c := range items {
		views = append(views, toContactView(c))
	}
	writeJSON(w, http.StatusOK, listView[contactView]{Items: views, Total: total})
}

func (s *Server) handleUpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !validStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "Unknown status")
		return
	}

	if err := s.contacts.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Status updated")
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := s.contacts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Deleted")
}

func (s *Server) handleCreateEnquiry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Part     string `json:"part"`
		Quantity int    `json:"quantity"`
		Message  string `json:"message"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Part == "" {
		writeError(w, http.StatusBadRequest, "Name, email and part are required")
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	enquiry := &models.Enquiry{Name: req.Name, Email: req.Email, Phone: req.Phone,
		Part: req.Part, Quantity: req.Quantity, Message: req.Message}
	created, err := s.enquiries.Create(r.Context(), enquiry)
	if err != nil {
		s.logger.Error(r.Context(), "failed to create enquiry", "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEnquiryView(created))
}

func toEnquiryView(e *models.Enquiry) enquiryView {
	return enquiryView{ID: e.ID, Name: e.Name, Email: e.Email, Phone: e.Phone,
		Part: e.Part, Quantity: e.Quantity, Message: e.Message, Status: e.Status, CreatedAt: e.CreatedAt}
}

func (s *Server) handleListEnquiries(w http.ResponseWriter, r *http.Request) {
	status, limit, offset := pageFilter(r)
	items, total, err := s.enquiries.List(r.Context(), enquiries.Filter{Status: status, Limit: limit, Offset: offset})
	if err != nil {
		s.logger.Error(r.Context(), "failed to list enquiries", "error", err)
		writeServiceError(w, err)
		return
	}

	views := make([]enquiryView, 0, len(items))
	for _, e := range items {
		views = append(views, toEnquiryView(e))
	}
	writeJSON(w, http.StatusOK, listView[enquiryView]{Items: views, Total: total})
}

func (s *Server) handleUpdateEnquiryStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !validStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "Unknown status")
		return
	}

	if err := s.enquiries.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Status updated")
}

func (s *Server) handleDeleteEnquiry(w http.ResponseWriter, r *http.Request) {
	if err := s.enquiries.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Deleted")
}

func (s *Server) handleCreateIssue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Subject     string `json:"subject"`
		Description string `json:"description"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Subject == "" || req.Description == "" {
		writeError(w, http.StatusBadRequest, "Name, email, subject and description are required")
		return
	}

	issue := &models.Issue{Name: req.Name, Email: req.Email, Subject: req.Subject, Description: req.Description}
	created, err := s.issues.Create(r.Context(), issue)
	if err != nil {
		s.logger.Error(r.Context(), "failed to create issue", "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toIssueView(created))
}

func toIssueView(i *models.Issue) issueView {
	return issueView{ID: i.ID, Name: i.Name, Email: i.Email, Subject: i.Subject,
		Description: i.Description, Status: i.Status, CreatedAt: i.CreatedAt}
}

func (s *Server) handleListIssues(w http.ResponseWriter, r *http.Request) {
	status, limit, offset := pageFilter(r)
	items, total, err := s.issues.List(r.Context(), issues.Filter{Status: status, Limit: limit, Offset: offset})
	if err != nil {
		s.logger.Error(r.Context(), "failed to list issues", "error", err)
		writeServiceError(w, err)
		return
	}

	views := make([]issueView, 0, len(items))
	for _, i := range items {
		views = append(views, toIssueView(i))
	}
	writeJSON(w, http.StatusOK, listView[issueView]{Items: views, Total: total})
}

func (s *Server) handleUpdateIssueStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !validStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "Unknown status")
		return
	}

	if err := s.issues.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Status updated")
}

func (s *Server) handleDeleteIssue(w http.ResponseWriter, r *http.Request) {
	if err := s.issues.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Deleted")
}
