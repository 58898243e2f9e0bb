package handlers

import (
	"net/http"
	"strconv"

	"github.com/AnshRaj112/mercado-seguro-backend/internal/log"
	"github.com/AnshRaj112/mercado-seguro-backend/internal/middleware"
	"github.com/AnshRaj112/mercado-seguro-backend/internal/survey"
)

// SubmitRespuesta handles POST /api/respuestas.
func (h *Handler) SubmitRespuesta(w http.ResponseWriter, r *http.Request) {
	var sub survey.Submission
	if !decode(w, r, &sub) {
		return
	}

	ctx, cancel := storeContext(r)
	defer cancel()

	resp, err := h.Surveys.Submit(ctx, sub)
	if err != nil {
		fail(w, r, err, "Error al guardar la respuesta")
		return
	}
	respond(w, r, http.StatusCreated, map[string]any{
		"mensaje": "Respuesta guardada correctamente",
		"id":      resp.ID.Hex(),
	})
}

// ListRespuestas handles GET /api/respuestas.
func (h *Handler) ListRespuestas(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r)
	defer cancel()

	list, err := h.Surveys.List(ctx)
	if err != nil {
		fail(w, r, err, "Error al obtener las respuestas")
		return
	}
	respond(w, r, http.StatusOK, list)
}

// DeleteRespuestas handles DELETE /api/respuestas.
func (h *Handler) DeleteRespuestas(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r)
	defer cancel()

	n, err := h.Surveys.DeleteAll(ctx)
	if err != nil {
		fail(w, r, err, "Error al eliminar las respuestas")
		return
	}
	log.WithFields(log.Fields{"usuario": middleware.AdminFrom(r.Context()), "eliminadas": n}).Info("responses deleted")
	respond(w, r, http.StatusOK, map[string]any{
		"mensaje":    "Todas las respuestas fueron eliminadas",
		"eliminadas": n,
	})
}

// Estadisticas handles GET /api/respuestas/estadisticas.
func (h *Handler) Estadisticas(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r)
	defer cancel()

	snap, err := h.Surveys.Statistics(ctx)
	if err != nil {
		fail(w, r, err, "Error al calcular las estadísticas")
		return
	}
	respond(w, r, http.StatusOK, survey.BuildReport(snap))
}

// Exportar handles GET /api/respuestas/exportar.
func (h *Handler) Exportar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r)
	defer cancel()

	list, err := h.Surveys.List(ctx)
	if err != nil {
		fail(w, r, err, "Error al exportar las respuestas")
		return
	}
	if len(list) == 0 {
		respond(w, r, http.StatusNotFound, map[string]any{"mensaje": "No hay datos para exportar"})
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+survey.ExportFilename(h.now().UTC())+`"`)
	w.Header().Set("X-Total-Count", strconv.Itoa(len(list)))
	w.WriteHeader(http.StatusOK)
	if err := survey.WriteCSV(w, list); err != nil {
		// headers are gone; the client sees a truncated file
		log.WithError(err).Error("csv export interrupted")
	}
}
