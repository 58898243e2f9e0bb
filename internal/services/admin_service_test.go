package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/mercado-seguro-backend/internal/models"
	"github.com/AnshRaj112/mercado-seguro-backend/pkg/utils"
)

const registerToken = "mercado-2026"

func registerReq() RegisterRequest {
	return RegisterRequest{
		Token:    registerToken,
		Usuario:  "admin1",
		Email:    "Admin1@Mercado.pe ",
		Password: "clave-segura",
		Confirm:  "clave-segura",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	repo := &memAdmins{}
	svc := NewAdminService(repo, registerToken)

	admin, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	assert.Equal(t, "admin1@mercado.pe", admin.Email)
	assert.NotEqual(t, "clave-segura", repo.admins[0].PasswordHash)

	got, err := svc.Login(ctx, LoginRequest{Usuario: "admin1", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)
}

func TestRegisterChecksTokenFirst(t *testing.T) {
	repo := &memAdmins{}
	svc := NewAdminService(repo, registerToken)

	req := registerReq()
	req.Token = "wrong"
	req.Password = "x" // invalid too, but the token wins
	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRegisterToken)
	assert.Empty(t, repo.admins)
}

func TestRegisterDisabledWithoutToken(t *testing.T) {
	repo := &memAdmins{}
	svc := NewAdminService(repo, "")

	req := registerReq()
	req.Token = ""
	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrRegistrationDisabled)
	assert.Empty(t, repo.admins)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
		field  string
	}{
		{"short usuario", func(r *RegisterRequest) { r.Usuario = "abc" }, "usuario"},
		{"bad email", func(r *RegisterRequest) { r.Email = "no-es-email" }, "email"},
		{"short password", func(r *RegisterRequest) { r.Password, r.Confirm = "corta", "corta" }, "password"},
		{"mismatch", func(r *RegisterRequest) { r.Confirm = "otra-clave" }, "confirm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memAdmins{}
			svc := NewAdminService(repo, registerToken)
			req := registerReq()
			tt.mutate(&req)

			_, err := svc.Register(context.Background(), req)
			var verr *utils.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Contains(t, verr.Fields, tt.field)
			assert.Empty(t, repo.admins)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := NewAdminService(&memAdmins{}, registerToken)

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	req := registerReq()
	req.Usuario = "admin2"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrDuplicateAdmin)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	repo := &memAdmins{admins: []models.Admin{{Usuario: "legacy", Email: "l@x.pe", PasswordHash: "plaintext"}}}
	svc := NewAdminService(repo, registerToken)
	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Usuario: "admin1", Password: "incorrecta"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Usuario: "nadie", Password: "clave-segura"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Usuario: "legacy", Password: "plaintext"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Usuario: "admin1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Usuario: "  ", Password: "clave-segura"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
