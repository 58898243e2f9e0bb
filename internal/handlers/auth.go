package handlers

import (
	"net/http"

	"github.com/AnshRaj112/mercado-seguro-backend/internal/log"
	"github.com/AnshRaj112/mercado-seguro-backend/internal/middleware"
	"github.com/AnshRaj112/mercado-seguro-backend/internal/models"
	"github.com/AnshRaj112/mercado-seguro-backend/internal/services"
	"github.com/AnshRaj112/mercado-seguro-backend/internal/survey"
)

type adminView struct {
	Usuario string `json:"usuario"`
	Email   string `json:"email"`
}

func viewOf(a *models.Admin) adminView {
	return adminView{Usuario: a.Usuario, Email: a.Email}
}

// Login handles POST /api/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	ctx, cancel := storeContext(r)
	defer cancel()

	admin, err := h.Admins.Login(ctx, req)
	if err != nil {
		fail(w, r, err, "Error al iniciar sesión")
		return
	}

	token, err := h.Sessions.Create(ctx, admin.Usuario)
	if err != nil {
		fail(w, r, err, "Error al crear la sesión")
		return
	}

	gate, err := survey.Gate{State: survey.ShowingLogin, View: survey.ViewAdmin}.Apply(survey.LoginSucceeded)
	if err != nil {
		fail(w, r, err, "Error al crear la sesión")
		return
	}

	log.WithFields(log.Fields{"usuario": admin.Usuario}).Info("admin logged in")
	respond(w, r, http.StatusOK, map[string]any{
		"mensaje": "Inicio de sesión exitoso",
		"user":    viewOf(admin),
		"token":   token,
		"estado":  gate.State,
		"vista":   gate.View,
	})
}

// Logout handles POST /api/logout. Mount behind RequireAdmin.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r)
	defer cancel()

	if err := h.Sessions.Invalidate(ctx, middleware.TokenFrom(r.Context())); err != nil {
		fail(w, r, err, "Error al cerrar sesión")
		return
	}

	gate, err := survey.Gate{State: survey.LoggedIn, View: survey.ViewAdmin}.Apply(survey.Logout)
	if err != nil {
		fail(w, r, err, "Error al cerrar sesión")
		return
	}
	respond(w, r, http.StatusOK, map[string]any{
		"mensaje": "Sesión cerrada",
		"estado":  gate.State,
		"vista":   gate.View,
	})
}

// Register handles POST /api/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	ctx, cancel := storeContext(r)
	defer cancel()

	admin, err := h.Admins.Register(ctx, req)
	if err != nil {
		fail(w, r, err, "Error al registrar el administrador")
		return
	}
	respond(w, r, http.StatusCreated, map[string]any{
		"mensaje": "Administrador registrado correctamente",
		"user":    viewOf(admin),
	})
}
