package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SurveyResponse is one vendor's questionnaire as kept in the respuestas
// collection. Records are never updated after insert.
type SurveyResponse struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id"`

	// Respondent
	Nombre   string `bson:"nombre" json:"nombre"`
	Puesto   string `bson:"puesto" json:"puesto"`
	Telefono string `bson:"telefono,omitempty" json:"telefono,omitempty"`

	// Client-side submission date and time (es-ES formatted)
	Fecha string `bson:"fecha" json:"fecha"`
	Hora  string `bson:"hora" json:"hora"`

	SeguridadGeneral          SecurityLevel   `bson:"seguridadGeneral" json:"seguridadGeneral"`
	PresenciaSerenazgo        PatrolPresence  `bson:"presenciaSerenazgo,omitempty" json:"presenciaSerenazgo,omitempty"`
	FrecuenciaSerenazgo       string          `bson:"frecuenciaSerenazgo,omitempty" json:"frecuenciaSerenazgo,omitempty"`
	IluminacionGeneral        LightingQuality `bson:"iluminacionGeneral" json:"iluminacionGeneral"`
	ZonasOscuras              []DarkZone      `bson:"zonasOscuras" json:"zonasOscuras"`
	CamarasFuncionando        TriState        `bson:"camarasFuncionando" json:"camarasFuncionando"`
	UbicacionCamaras          string          `bson:"ubicacionCamaras,omitempty" json:"ubicacionCamaras,omitempty"`
	ProblemasEspecificos      []Problem       `bson:"problemasEspecificos" json:"problemasEspecificos"`
	IncidentesReportados      string          `bson:"incidentesReportados,omitempty" json:"incidentesReportados,omitempty"`
	TiempoRespuesta           ResponseSpeed   `bson:"tiempoRespuesta,omitempty" json:"tiempoRespuesta,omitempty"`
	CapacitacionSeguridad     TriState        `bson:"capacitacionSeguridad" json:"capacitacionSeguridad"`
	SugerenciaMejora          string          `bson:"sugerenciaMejora,omitempty" json:"sugerenciaMejora,omitempty"`
	CalificacionGeneral       string          `bson:"calificacionGeneral" json:"calificacionGeneral"` // "1".."5"
	ConfianzaAdministracion   TrustLevel      `bson:"confianzaAdministracion" json:"confianzaAdministracion"`
	ParticipacionComerciantes Participation   `bson:"participacionComerciantes" json:"participacionComerciantes"`
	ComentariosAdicionales    string          `bson:"comentariosAdicionales,omitempty" json:"comentariosAdicionales,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
