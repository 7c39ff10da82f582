// Package services contains server-side business logic. This file implements
// AdminService, which verifies dashboard credentials and mints access tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aquapure/backoffice/internal/common"
	"github.com/aquapure/backoffice/internal/server/auth"
	"github.com/aquapure/backoffice/internal/server/config"
	"github.com/aquapure/backoffice/internal/server/models"
	"github.com/aquapure/backoffice/internal/server/repositories/admins"
	"golang.org/x/crypto/bcrypt"
)

// AdminService provides authentication and admin account management:
// - Login: verify credentials and mint an access token
// - Profile: resolve a token subject back to an admin
// - Create/List: manage admin accounts
type AdminService struct {
	repo           admins.Repository
	jwtSecret      []byte
	accessTokenTTL time.Duration
}

func NewAdminService(repo admins.Repository, cfg *config.Config) *AdminService {
	return &AdminService{
		repo:           repo,
		jwtSecret:      []byte(cfg.SecretKey),
		accessTokenTTL: cfg.AccessTokenTTL,
	}
}

// Login verifies the password against the stored bcrypt hash and, on success,
// returns the admin together with a signed access token and its lifetime.
// Unknown emails and wrong passwords both yield common.ErrUnauthorized.
func (s *AdminService) Login(ctx context.Context, email, password string) (*models.Admin, string, time.Duration, error) {
	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", 0, common.ErrUnauthorized
		}
		return nil, "", 0, common.ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, "", 0, common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(admin.ID, s.jwtSecret, s.accessTokenTTL)
	if err != nil {
		return nil, "", 0, fmt.Errorf("error generating token: %v", err)
	}

	return admin, token, s.accessTokenTTL, nil
}

// Profile returns the admin an access token was issued for.
func (s *AdminService) Profile(ctx context.Context, adminID string) (*models.Admin, error) {
	admin, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}
	return admin, nil
}

// VerifyToken checks an access token and returns its admin ID.
func (s *AdminService) VerifyToken(tokenString string) (string, error) {
	return auth.GetAdminIDFromToken(tokenString, s.jwtSecret)
}

// Create registers a new admin account with a bcrypt-hashed password.
func (s *AdminService) Create(ctx context.Context, name, email, role, password string) (*models.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %v", err)
	}

	if role == "" {
		role = "admin"
	}

	admin := &models.Admin{Name: name, Email: email, Role: role, PasswordHash: string(hash)}
	created, err := s.repo.Create(ctx, admin)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating admin: %v", err)
	}
	return created, nil
}

func (s *AdminService) List(ctx context.Context) ([]*models.Admin, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing admins: %v", err)
	}
	return result, nil
}
