package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/AnshRaj112/mercado-seguro-backend/internal/handlers"
	"github.com/AnshRaj112/mercado-seguro-backend/internal/middleware"
)

type Options struct {
	AllowedOrigins []string
	// Production adds security headers, the host check and per-IP limits.
	Production  bool
	AllowedHost string
	// TrustProxy takes the client address from X-Forwarded-For and friends.
	// Only set it when every request arrives through a proxy that overwrites them.
	TrustProxy bool
	// SubmitLimit guards POST /api/respuestas; nil leaves it open.
	SubmitLimit func(http.Handler) http.Handler
	// AuthLimit guards /api/login and /api/register; nil leaves them open.
	AuthLimit func(http.Handler) http.Handler
}

// NewRouter builds the full HTTP surface.
func NewRouter(h *handlers.Handler, opts Options) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(opts.AllowedOrigins))

	if opts.Production {
		for _, mw := range middleware.ProductionSecurity(opts.AllowedHost) {
			r.Use(mw)
		}
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	SetupRoutes(r, h, opts)
	return r
}

func SetupRoutes(r chi.Router, h *handlers.Handler, opts Options) {
	requireAdmin := middleware.RequireAdmin(h.Sessions)
	authLimit := optional(opts.AuthLimit)

	r.Route("/api", func(r chi.Router) {
		// Survey submission (public)
		r.With(optional(opts.SubmitLimit)).Post("/respuestas", h.SubmitRespuesta)

		// Admin views over the responses
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/respuestas", h.ListRespuestas)
			r.Delete("/respuestas", h.DeleteRespuestas)
			r.Get("/respuestas/estadisticas", h.Estadisticas)
			r.Get("/respuestas/exportar", h.Exportar)
			r.Post("/logout", h.Logout)
		})

		// Admin auth
		r.With(authLimit).Post("/login", h.Login)
		r.With(authLimit).Post("/register", h.Register)
	})
}

func optional(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	if mw == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw
}
