package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aquapure/backoffice/internal/common"
	"github.com/aquapure/backoffice/internal/logging"
	"github.com/aquapure/backoffice/internal/server/config"
	"github.com/aquapure/backoffice/internal/server/models"
	"github.com/aquapure/backoffice/internal/server/repositories/contacts"
	"github.com/aquapure/backoffice/internal/server/repositories/enquiries"
	"github.com/aquapure/backoffice/internal/server/repositories/issues"
	"github.com/aquapure/backoffice/internal/server/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminRepo struct {
	byEmail map[string]*models.Admin
	byID    map[string]*models.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{byEmail: map[string]*models.Admin{}, byID: map[string]*models.Admin{}}
}

func (r *fakeAdminRepo) Create(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	if _, ok := r.byEmail[admin.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	admin.ID = fmt.Sprintf("admin-%d", len(r.byID)+1)
	admin.CreatedAt = time.Now()
	r.byEmail[admin.Email] = admin
	r.byID[admin.ID] = admin
	return admin, nil
}

func (r *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	a, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return a, nil
}

func (r *fakeAdminRepo) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return a, nil
}

func (r *fakeAdminRepo) List(ctx context.Context) ([]*models.Admin, error) {
	var result []*models.Admin
	for _, a := range r.byID {
		result = append(result, a)
	}
	return result, nil
}

type fakeContactRepo struct {
	items []*models.Contact
}

func (r *fakeContactRepo) Create(ctx context.Context, c *models.Contact) (*models.Contact, error) {
	c.ID = fmt.Sprintf("contact-%d", len(r.items)+1)
	c.Status = models.StatusNew
	c.CreatedAt = time.Now()
	r.items = append(r.items, c)
	return c, nil
}

func (r *fakeContactRepo) List(ctx context.Context, f contacts.Filter) ([]*models.Contact, int, error) {
	var result []*models.Contact
	for _, c := range r.items {
		if f.Status == "" || c.Status == f.Status {
			result = append(result, c)
		}
	}
	return result, len(result), nil
}

func (r *fakeContactRepo) UpdateStatus(ctx context.Context, id, status string) error {
	for _, c := range r.items {
		if c.ID == id {
			c.Status = status
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *fakeContactRepo) Delete(ctx context.Context, id string) error {
	for i, c := range r.items {
		if c.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

type fakeEnquiryRepo struct{}

func (r *fakeEnquiryRepo) Create(ctx context.Context, e *models.Enquiry) (*models.Enquiry, error) {
	e.ID = "enquiry-1"
	e.Status = models.StatusNew
	e.CreatedAt = time.Now()
	return e, nil
}

func (r *fakeEnquiryRepo) List(ctx context.Context, f enquiries.Filter) ([]*models.Enquiry, int, error) {
	return nil, 0, nil
}

func (r *fakeEnquiryRepo) UpdateStatus(ctx context.Context, id, status string) error { return nil }
func (r *fakeEnquiryRepo) Delete(ctx context.Context, id string) error              { return nil }

type fakeIssueRepo struct{}

func (r *fakeIssueRepo) Create(ctx context.Context, i *models.Issue) (*models.Issue, error) {
	i.ID = "issue-1"
	i.Status = models.StatusNew
	i.CreatedAt = time.Now()
	return i, nil
}

func (r *fakeIssueRepo) List(ctx context.Context, f issues.Filter) ([]*models.Issue, int, error) {
	return nil, 0, nil
}

func (r *fakeIssueRepo) UpdateStatus(ctx context.Context, id, status string) error { return nil }
func (r *fakeIssueRepo) Delete(ctx context.Context, id string) error              { return nil }

type fakeSettingRepo struct {
	kv map[string]string
}

func (r *fakeSettingRepo) Get(ctx context.Context, key string) (*models.Setting, error) {
	v, ok := r.kv[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &models.Setting{Key: key, Value: v}, nil
}

func (r *fakeSettingRepo) Put(ctx context.Context, key, value string) (*models.Setting, error) {
	if r.kv == nil {
		r.kv = map[string]string{}
	}
	r.kv[key] = value
	return &models.Setting{Key: key, Value: value, UpdatedAt: time.Now()}, nil
}

func (r *fakeSettingRepo) List(ctx context.Context) ([]*models.Setting, error) {
	var result []*models.Setting
	for k, v := range r.kv {
		result = append(result, &models.Setting{Key: k, Value: v})
	}
	return result, nil
}

type testEnv struct {
	ts       *httptest.Server
	adminSvc *services.AdminService
	contacts *fakeContactRepo
	settings *fakeSettingRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{SecretKey: "test-secret", AccessTokenTTL: time.Minute}

	adminRepo := newFakeAdminRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = adminRepo.Create(context.Background(), &models.Admin{
		Name: "Priya", Email: "priya@example.com", Role: "admin", PasswordHash: string(hash),
	})
	require.NoError(t, err)

	adminSvc := services.NewAdminService(adminRepo, cfg)
	contactRepo := &fakeContactRepo{}
	settingRepo := &fakeSettingRepo{}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := New(adminSvc, nil, nil, contactRepo, &fakeEnquiryRepo{}, &fakeIssueRepo{}, settingRepo, logger)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts, adminSvc: adminSvc, contacts: contactRepo, settings: settingRepo}
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) (int, testEnvelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env testEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	status, env := e.request(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "priya@example.com", "password": "correct-horse"})
	require.Equal(t, http.StatusOK, status)

	var data struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func TestLoginSuccessReturnsAdminAndToken(t *testing.T) {
	env := newTestEnv(t)

	status, resp := env.request(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "priya@example.com", "password": "correct-horse"})

	require.Equal(t, http.StatusOK, status)
	require.True(t, resp.Success)

	var data struct {
		Admin struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"admin"`
		AccessToken string `json:"accessToken"`
		ExpiresIn   string `json:"expiresIn"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Equal(t, "Priya", data.Admin.Name)
	require.NotEmpty(t, data.AccessToken)
	require.Equal(t, "1m0s", data.ExpiresIn)
}

func TestLoginWrongPasswordReturns401(t *testing.T) {
	env := newTestEnv(t)

	status, resp := env.request(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "priya@example.com", "password": "nope"})

	require.Equal(t, http.StatusUnauthorized, status)
	require.False(t, resp.Success)
	require.Equal(t, "Invalid credentials", resp.Message)
}

func TestLoginUnknownEmailReturns401(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.request(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "nobody@example.com", "password": "x"})

	require.Equal(t, http.StatusUnauthorized, status)
}

func TestProtectedRouteWithoutTokenReturns401(t *testing.T) {
	env := newTestEnv(t)

	status, resp := env.request(t, http.MethodGet, "/api/contacts", "", nil)

	require.Equal(t, http.StatusUnauthorized, status)
	require.False(t, resp.Success)
	require.Equal(t, "Authentication required", resp.Message)
}

func TestProtectedRouteWithGarbageTokenReturns401(t *testing.T) {
	env := newTestEnv(t)

	status, resp := env.request(t, http.MethodGet, "/api/contacts", "not-a-jwt", nil)

	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Invalid access token", resp.Message)
}

func TestProfileReturnsTokenSubject(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	status, resp := env.request(t, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Admin struct {
			Email string `json:"email"`
		} `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Equal(t, "priya@example.com", data.Admin.Email)
}

func TestLogoutAlwaysSucceedsForAuthenticatedCaller(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	status, resp := env.request(t, http.MethodPost, "/api/auth/logout", token, nil)

	require.Equal(t, http.StatusOK, status)
	require.True(t, resp.Success)
}

func TestPublicContactFormCreateAndAdminList(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.request(t, http.MethodPost, "/api/contacts", "", map[string]string{
		"name": "Ben", "email": "ben@example.com", "message": "RO unit leaking",
	})
	require.Equal(t, http.StatusCreated, status)

	token := env.login(t)
	status, resp := env.request(t, http.MethodGet, "/api/contacts", token, nil)
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Items []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"items"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Equal(t, 1, data.Total)
	require.Equal(t, "Ben", data.Items[0].Name)
	require.Equal(t, models.StatusNew, data.Items[0].Status)
}

func TestContactFormRejectsMissingFields(t *testing.T) {
	env := newTestEnv(t)

	status, resp := env.request(t, http.MethodPost, "/api/contacts", "", map[string]string{
		"name": "Ben",
	})

	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, resp.Success)
}

func TestUpdateContactStatusValidatesStatus(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	env.contacts.items = append(env.contacts.items, &models.Contact{ID: "contact-1", Status: models.StatusNew})

	status, resp := env.request(t, http.MethodPatch, "/api/contacts/contact-1/status", token,
		map[string]string{"status": "bogus"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Unknown status", resp.Message)

	status, _ = env.request(t, http.MethodPatch, "/api/contacts/contact-1/status", token,
		map[string]string{"status": models.StatusSeen})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, models.StatusSeen, env.contacts.items[0].Status)
}

func TestDeleteMissingContactReturns404(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	status, resp := env.request(t, http.MethodDelete, "/api/contacts/ghost", token, nil)

	require.Equal(t, http.StatusNotFound, status)
	require.False(t, resp.Success)
}

func TestCreateAdminConflictReturns409(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	status, _ := env.request(t, http.MethodPost, "/api/admins", token, map[string]string{
		"name": "Priya Again", "email": "priya@example.com", "password": "pw",
	})

	require.Equal(t, http.StatusConflict, status)
}

func TestSettingsRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	status, _ := env.request(t, http.MethodPut, "/api/settings/opening_hours", token,
		map[string]string{"value": "Mon-Sat 9-18"})
	require.Equal(t, http.StatusOK, status)

	status, resp := env.request(t, http.MethodGet, "/api/settings", token, nil)
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Settings map[string]string `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Equal(t, "Mon-Sat 9-18", data.Settings["opening_hours"])
}
