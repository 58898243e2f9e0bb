package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the survey front end to call the API, answering preflight
// requests itself. allowedOrigins is the list of allowed origins
// (e.g. https://encuesta.mercado.pe, http://localhost:3000).
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
