package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/AnshRaj112/mercado-seguro-backend/internal/log"
	"github.com/AnshRaj112/mercado-seguro-backend/internal/models"
	"github.com/AnshRaj112/mercado-seguro-backend/pkg/utils"
)

// RegisterRequest is the payload of POST /api/register.
type RegisterRequest struct {
	Token    string `json:"token"`
	Usuario  string `json:"usuario" validate:"required,min=4,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Confirm  string `json:"confirm" validate:"omitempty,eqfield=Password"`
}

// LoginRequest is the payload of POST /api/login.
type LoginRequest struct {
	Usuario  string `json:"usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminService registers and authenticates administrators.
type AdminService struct {
	repo          AdminRepository
	registerToken string
	now           func() time.Time
}

// NewAdminService returns the service. An empty registerToken turns
// registration off.
func NewAdminService(repo AdminRepository, registerToken string) *AdminService {
	return &AdminService{repo: repo, registerToken: registerToken, now: time.Now}
}

// Register creates an admin account. The registration token is checked
// before anything else, so a caller without it learns nothing about the
// payload or existing accounts.
func (s *AdminService) Register(ctx context.Context, req RegisterRequest) (*models.Admin, error) {
	if s.registerToken == "" {
		return nil, ErrRegistrationDisabled
	}
	if subtle.ConstantTimeCompare([]byte(req.Token), []byte(s.registerToken)) != 1 {
		return nil, ErrInvalidRegisterToken
	}

	req.Usuario = strings.TrimSpace(req.Usuario)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		Usuario:       req.Usuario,
		Email:         req.Email,
		PasswordHash:  hash,
		FechaRegistro: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"usuario": admin.Usuario}).Info("admin registered")
	return admin, nil
}

// Login checks credentials. Missing fields, unknown users and wrong
// passwords are all ErrInvalidCredentials.
func (s *AdminService) Login(ctx context.Context, req LoginRequest) (*models.Admin, error) {
	req.Usuario = strings.TrimSpace(req.Usuario)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.repo.FindByUsuario(ctx, req.Usuario)
	if errors.Is(err, ErrAdminNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := utils.VerifyPassword(req.Password, admin.PasswordHash)
	if err != nil {
		// plaintext or foreign hashes from older deployments never match
		log.WithFields(log.Fields{"usuario": admin.Usuario}).WithError(err).Warn("stored password hash unreadable")
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}
