package survey

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AnshRaj112/mercado-seguro-backend/internal/models"
	"github.com/AnshRaj112/mercado-seguro-backend/pkg/utils"
)

// Submission is the payload of POST /api/respuestas before validation.
type Submission struct {
	Nombre   string `json:"nombre" validate:"required"`
	Puesto   string `json:"puesto" validate:"required"`
	Telefono string `json:"telefono"`
	Fecha    string `json:"fecha"`
	Hora     string `json:"hora"`

	SeguridadGeneral          string   `json:"seguridadGeneral" validate:"required"`
	PresenciaSerenazgo        string   `json:"presenciaSerenazgo"`
	FrecuenciaSerenazgo       string   `json:"frecuenciaSerenazgo"`
	IluminacionGeneral        string   `json:"iluminacionGeneral" validate:"required"`
	ZonasOscuras              []string `json:"zonasOscuras"`
	CamarasFuncionando        string   `json:"camarasFuncionando" validate:"required"`
	UbicacionCamaras          string   `json:"ubicacionCamaras"`
	ProblemasEspecificos      []string `json:"problemasEspecificos"`
	IncidentesReportados      string   `json:"incidentesReportados"`
	TiempoRespuesta           string   `json:"tiempoRespuesta"`
	CapacitacionSeguridad     string   `json:"capacitacionSeguridad" validate:"required"`
	SugerenciaMejora          string   `json:"sugerenciaMejora"`
	CalificacionGeneral       Rating   `json:"calificacionGeneral" validate:"required"`
	ConfianzaAdministracion   string   `json:"confianzaAdministracion" validate:"required"`
	ParticipacionComerciantes string   `json:"participacionComerciantes" validate:"required"`
	ComentariosAdicionales    string   `json:"comentariosAdicionales"`
}

// Rating is the 1-5 score. The form posts it as a string; numbers are
// accepted too.
type Rating string

func (r *Rating) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = Rating(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*r = Rating(n.String())
	return nil
}

// Validate checks sub against the questionnaire and returns the record to
// persist. now fills fecha/hora when the client did not send them.
// Failures are reported as *utils.ValidationError.
func Validate(sub Submission, now time.Time) (models.SurveyResponse, error) {
	sub = sub.trimmed()

	verr := &utils.ValidationError{}
	if err := utils.CheckStruct(sub, verr); err != nil {
		return models.SurveyResponse{}, err
	}

	resp := models.SurveyResponse{
		Nombre:                    sub.Nombre,
		Puesto:                    sub.Puesto,
		Telefono:                  sub.Telefono,
		Fecha:                     sub.Fecha,
		Hora:                      sub.Hora,
		SeguridadGeneral:          option(verr, "seguridadGeneral", models.SecurityLevel(sub.SeguridadGeneral), models.SecurityLevels),
		PresenciaSerenazgo:        option(verr, "presenciaSerenazgo", models.PatrolPresence(sub.PresenciaSerenazgo), models.PatrolPresences),
		FrecuenciaSerenazgo:       sub.FrecuenciaSerenazgo,
		IluminacionGeneral:        option(verr, "iluminacionGeneral", models.LightingQuality(sub.IluminacionGeneral), models.LightingQualities),
		ZonasOscuras:              tags(verr, "zonasOscuras", sub.ZonasOscuras, models.DarkZones),
		CamarasFuncionando:        option(verr, "camarasFuncionando", models.TriState(sub.CamarasFuncionando), models.TriStates),
		UbicacionCamaras:          sub.UbicacionCamaras,
		ProblemasEspecificos:      tags(verr, "problemasEspecificos", sub.ProblemasEspecificos, models.Problems),
		IncidentesReportados:      sub.IncidentesReportados,
		TiempoRespuesta:           option(verr, "tiempoRespuesta", models.ResponseSpeed(sub.TiempoRespuesta), models.ResponseSpeeds),
		CapacitacionSeguridad:     option(verr, "capacitacionSeguridad", models.TriState(sub.CapacitacionSeguridad), models.TriStates),
		SugerenciaMejora:          sub.SugerenciaMejora,
		CalificacionGeneral:       rating(verr, string(sub.CalificacionGeneral)),
		ConfianzaAdministracion:   option(verr, "confianzaAdministracion", models.TrustLevel(sub.ConfianzaAdministracion), models.TrustLevels),
		ParticipacionComerciantes: option(verr, "participacionComerciantes", models.Participation(sub.ParticipacionComerciantes), models.Participations),
		ComentariosAdicionales:    sub.ComentariosAdicionales,
	}
	if err := verr.Err(); err != nil {
		return models.SurveyResponse{}, err
	}

	if resp.Fecha == "" {
		resp.Fecha = FormatDate(now)
	}
	if resp.Hora == "" {
		resp.Hora = FormatTime(now)
	}
	return resp, nil
}

func (s Submission) trimmed() Submission {
	for _, f := range []*string{
		&s.Nombre, &s.Puesto, &s.Telefono, &s.Fecha, &s.Hora,
		&s.SeguridadGeneral, &s.PresenciaSerenazgo, &s.FrecuenciaSerenazgo,
		&s.IluminacionGeneral, &s.CamarasFuncionando, &s.UbicacionCamaras,
		&s.IncidentesReportados, &s.TiempoRespuesta, &s.CapacitacionSeguridad,
		&s.SugerenciaMejora, &s.ConfianzaAdministracion, &s.ParticipacionComerciantes,
		&s.ComentariosAdicionales,
	} {
		*f = strings.TrimSpace(*f)
	}
	s.CalificacionGeneral = Rating(strings.TrimSpace(string(s.CalificacionGeneral)))
	return s
}

// option flags v when it is set but not one of opts. Absence is handled by
// the required tags.
func option[T ~string](verr *utils.ValidationError, field string, v T, opts []T) T {
	if v != "" && !models.IsOption(v, opts) {
		verr.Add(field, fmt.Sprintf("%q no es una opción válida", string(v)))
	}
	return v
}

// tags turns raw checkbox values into a set ordered like opts. Unknown tags
// are rejected; the result is never nil.
func tags[T ~string](verr *utils.ValidationError, field string, raw []string, opts []T) []T {
	seen := make(map[T]bool, len(raw))
	for _, s := range raw {
		t := T(strings.TrimSpace(s))
		if !models.IsOption(t, opts) {
			verr.Add(field, fmt.Sprintf("etiqueta desconocida %q", s))
			continue
		}
		seen[t] = true
	}
	out := make([]T, 0, len(seen))
	for _, o := range opts {
		if seen[o] {
			out = append(out, o)
		}
	}
	return out
}

func rating(verr *utils.ValidationError, raw string) string {
	if raw == "" {
		return ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 5 {
		verr.Add("calificacionGeneral", "debe ser un entero entre 1 y 5")
		return raw
	}
	return strconv.Itoa(n)
}

// FormatDate renders t like the es-ES locale date of the survey form (d/m/yyyy).
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// FormatTime renders t like the es-ES locale time (H:mm:ss).
func FormatTime(t time.Time) string {
	return fmt.Sprintf("%d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}
