package services

import (
	"context"
	"testing"
	"time"

	"github.com/aquapure/backoffice/internal/common"
	"github.com/aquapure/backoffice/internal/server/config"
	"github.com/aquapure/backoffice/internal/server/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminRepo struct {
	admins map[string]*models.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[string]*models.Admin{}}
}

func (r *fakeAdminRepo) Create(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	if _, ok := r.admins[admin.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	admin.ID = "id-" + admin.Email
	r.admins[admin.Email] = admin
	return admin, nil
}

func (r *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	a, ok := r.admins[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return a, nil
}

func (r *fakeAdminRepo) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	for _, a := range r.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeAdminRepo) List(ctx context.Context) ([]*models.Admin, error) {
	var result []*models.Admin
	for _, a := range r.admins {
		result = append(result, a)
	}
	return result, nil
}

func newAdminSvc(t *testing.T) (*AdminService, *fakeAdminRepo) {
	t.Helper()
	repo := newFakeAdminRepo()
	cfg := &config.Config{SecretKey: "test-secret", AccessTokenTTL: time.Minute}
	return NewAdminService(repo, cfg), repo
}

func seedAdmin(t *testing.T, repo *fakeAdminRepo, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), &models.Admin{
		Name: "Priya", Email: email, Role: "admin", PasswordHash: string(hash),
	})
	require.NoError(t, err)
}

func TestAdminLoginSuccess(t *testing.T) {
	svc, repo := newAdminSvc(t)
	seedAdmin(t, repo, "priya@example.com", "pw123")

	admin, token, ttl, err := svc.Login(context.Background(), "priya@example.com", "pw123")

	require.NoError(t, err)
	require.Equal(t, "Priya", admin.Name)
	require.NotEmpty(t, token)
	require.Equal(t, time.Minute, ttl)

	adminID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, admin.ID, adminID)
}

func TestAdminLoginWrongPassword(t *testing.T) {
	svc, repo := newAdminSvc(t)
	seedAdmin(t, repo, "priya@example.com", "pw123")

	_, _, _, err := svc.Login(context.Background(), "priya@example.com", "wrong")

	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestAdminLoginUnknownEmail(t *testing.T) {
	svc, _ := newAdminSvc(t)

	_, _, _, err := svc.Login(context.Background(), "ghost@example.com", "pw")

	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestAdminCreateHashesPasswordAndDefaultsRole(t *testing.T) {
	svc, _ := newAdminSvc(t)

	admin, err := svc.Create(context.Background(), "Ben", "ben@example.com", "", "hunter2")

	require.NoError(t, err)
	require.Equal(t, "admin", admin.Role)
	require.NotEqual(t, "hunter2", admin.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("hunter2")))
}

func TestAdminCreateDuplicateEmail(t *testing.T) {
	svc, repo := newAdminSvc(t)
	seedAdmin(t, repo, "priya@example.com", "pw123")

	_, err := svc.Create(context.Background(), "Other", "priya@example.com", "admin", "pw")

	require.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestAdminProfileUnknownIDMapsToUnauthorized(t *testing.T) {
	svc, _ := newAdminSvc(t)

	_, err := svc.Profile(context.Background(), "no-such-admin")

	require.ErrorIs(t, err, common.ErrUnauthorized)
}
