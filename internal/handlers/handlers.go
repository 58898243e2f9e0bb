package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/AnshRaj112/mercado-seguro-backend/internal/log"
	"github.com/AnshRaj112/mercado-seguro-backend/internal/services"
	"github.com/AnshRaj112/mercado-seguro-backend/pkg/utils"
)

const (
	// storeTimeout bounds every request's work against Mongo and Redis.
	storeTimeout = 10 * time.Second
	maxBodyBytes = 64 << 10
)

// Handler serves the survey API.
type Handler struct {
	Surveys  *services.SurveyService
	Admins   *services.AdminService
	Sessions *services.SessionStore

	now func() time.Time
}

func New(surveys *services.SurveyService, admins *services.AdminService, sessions *services.SessionStore) *Handler {
	return &Handler{Surveys: surveys, Admins: admins, Sessions: sessions, now: time.Now}
}

func storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), storeTimeout)
}

// decode reads a JSON body into v, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := render.DecodeJSON(r.Body, v); err != nil {
		respond(w, r, http.StatusBadRequest, map[string]any{"mensaje": "Cuerpo de la solicitud inválido"})
		return false
	}
	return true
}

func respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	render.Status(r, status)
	render.JSON(w, r, body)
}

// fail maps service errors to responses. Anything unrecognised is a store
// failure, reported as 500 with msg.
func fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		respond(w, r, http.StatusBadRequest, map[string]any{
			"mensaje": "Datos inválidos",
			"errores": verr.Fields,
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		respond(w, r, http.StatusUnauthorized, map[string]any{"mensaje": "Usuario o contraseña incorrectos"})
	case errors.Is(err, services.ErrRegistrationDisabled):
		respond(w, r, http.StatusForbidden, map[string]any{"mensaje": "El registro de administradores está deshabilitado"})
	case errors.Is(err, services.ErrInvalidRegisterToken):
		respond(w, r, http.StatusForbidden, map[string]any{"mensaje": "Token de registro inválido"})
	case errors.Is(err, services.ErrDuplicateAdmin):
		respond(w, r, http.StatusConflict, map[string]any{"mensaje": "El usuario o email ya está registrado"})
	default:
		log.WithError(err).WithField("path", r.URL.Path).Error(msg)
		respond(w, r, http.StatusInternalServerError, map[string]any{
			"error":   msg,
			"details": "servicio de datos no disponible",
		})
	}
}
