package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/AnshRaj112/mercado-seguro-backend/internal/log"
)

// SessionValidator resolves a session token to the admin that owns it.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (usuario string, ok bool, err error)
}

type ctxKey int

const (
	adminKey ctxKey = iota
	tokenKey
)

// RequireAdmin rejects requests without a live admin session with 401.
// The admin's usuario and token are available through AdminFrom and
// TokenFrom.
func RequireAdmin(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			usuario, ok, err := sessions.Validate(r.Context(), token)
			if err != nil {
				log.WithError(err).Error("session lookup failed")
				reject(w, r, http.StatusServiceUnavailable, "No se pudo verificar la sesión")
				return
			}
			if !ok {
				reject(w, r, http.StatusUnauthorized, "Sesión no válida o expirada")
				return
			}
			ctx := context.WithValue(r.Context(), adminKey, usuario)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func AdminFrom(ctx context.Context) string {
	usuario, _ := ctx.Value(adminKey).(string)
	return usuario
}

func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
