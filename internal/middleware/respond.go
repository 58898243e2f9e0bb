package middleware

import (
	"net/http"

	"github.com/go-chi/render"
)

func reject(w http.ResponseWriter, r *http.Request, status int, mensaje string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]any{"mensaje": mensaje})
}
