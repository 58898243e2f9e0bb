package models

import "slices"

// Closed option sets of the questionnaire. Values are the exact labels the
// survey form submits and the store keeps.

type SecurityLevel string

const (
	SecurityVeryUnsafe SecurityLevel = "muy inseguro"
	SecurityUnsafe     SecurityLevel = "inseguro"
	SecurityFair       SecurityLevel = "regular"
	SecuritySafe       SecurityLevel = "seguro"
	SecurityVerySafe   SecurityLevel = "muy seguro"
)

var SecurityLevels = []SecurityLevel{SecurityVeryUnsafe, SecurityUnsafe, SecurityFair, SecuritySafe, SecurityVerySafe}

type PatrolPresence string

const (
	PatrolAlways    PatrolPresence = "siempre"
	PatrolOften     PatrolPresence = "a menudo"
	PatrolSometimes PatrolPresence = "a veces"
	PatrolRarely    PatrolPresence = "rara vez"
	PatrolNever     PatrolPresence = "nunca"
)

var PatrolPresences = []PatrolPresence{PatrolAlways, PatrolOften, PatrolSometimes, PatrolRarely, PatrolNever}

type LightingQuality string

const (
	LightingExcellent LightingQuality = "excelente"
	LightingGood      LightingQuality = "buena"
	LightingFair      LightingQuality = "regular"
	LightingPoor      LightingQuality = "mala"
	LightingVeryPoor  LightingQuality = "muy mala"
)

var LightingQualities = []LightingQuality{LightingExcellent, LightingGood, LightingFair, LightingPoor, LightingVeryPoor}

// TriState answers the yes/no/unsure questions (cameras, training).
type TriState string

const (
	TriYes    TriState = "sí"
	TriNo     TriState = "no"
	TriUnsure TriState = "no estoy seguro"
)

var TriStates = []TriState{TriYes, TriNo, TriUnsure}

type ResponseSpeed string

const (
	SpeedVeryFast   ResponseSpeed = "muy rápido"
	SpeedFast       ResponseSpeed = "rápido"
	SpeedAcceptable ResponseSpeed = "aceptable"
	SpeedSlow       ResponseSpeed = "lento"
	SpeedVerySlow   ResponseSpeed = "muy lento"
)

var ResponseSpeeds = []ResponseSpeed{SpeedVeryFast, SpeedFast, SpeedAcceptable, SpeedSlow, SpeedVerySlow}

type TrustLevel string

const (
	TrustVeryConfident TrustLevel = "muy confiado"
	TrustConfident     TrustLevel = "confiado"
	TrustNeutral       TrustLevel = "neutral"
	TrustLow           TrustLevel = "poco confiado"
	TrustNone          TrustLevel = "nada confiado"
)

var TrustLevels = []TrustLevel{TrustVeryConfident, TrustConfident, TrustNeutral, TrustLow, TrustNone}

// Participation is the tri-state for joining security initiatives.
type Participation string

const (
	ParticipationYes   Participation = "sí"
	ParticipationNo    Participation = "no"
	ParticipationMaybe Participation = "tal vez"
)

var Participations = []Participation{ParticipationYes, ParticipationNo, ParticipationMaybe}

type DarkZone string

const (
	ZoneInnerAisles   DarkZone = "pasillos_internos"
	ZoneLoadingDocks  DarkZone = "zonas_carga_descarga"
	ZonePerimeter     DarkZone = "exteriores_perimetro"
	ZoneRestrooms     DarkZone = "baños"
	ZoneParking       DarkZone = "estacionamiento"
	ZoneOtherDarkArea DarkZone = "otras_zonas_oscuras"
)

var DarkZones = []DarkZone{ZoneInnerAisles, ZoneLoadingDocks, ZonePerimeter, ZoneRestrooms, ZoneParking, ZoneOtherDarkArea}

type Problem string

const (
	ProblemTheft          Problem = "robo"
	ProblemLighting       Problem = "iluminacion"
	ProblemSurveillance   Problem = "vigilancia"
	ProblemAccess         Problem = "acceso"
	ProblemEmergency      Problem = "emergencia"
	ProblemInfrastructure Problem = "infraestructura"
	ProblemStaff          Problem = "personal"
	ProblemOther          Problem = "otros"
)

var Problems = []Problem{
	ProblemTheft, ProblemLighting, ProblemSurveillance, ProblemAccess,
	ProblemEmergency, ProblemInfrastructure, ProblemStaff, ProblemOther,
}

// ProblemLabels are the dashboard display names of each problem tag.
var ProblemLabels = map[Problem]string{
	ProblemTheft:          "Robos/hurtos",
	ProblemLighting:       "Mala iluminación",
	ProblemSurveillance:   "Falta vigilancia",
	ProblemAccess:         "Control acceso",
	ProblemEmergency:      "Plan emergencias",
	ProblemInfrastructure: "Infraestructura deficiente",
	ProblemStaff:          "Personal de seguridad insuficiente",
	ProblemOther:          "Otros",
}

// IsOption reports whether v is one of opts.
func IsOption[T ~string](v T, opts []T) bool {
	return slices.Contains(opts, v)
}
