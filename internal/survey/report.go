package survey

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/AnshRaj112/mercado-seguro-backend/internal/models"
)

const (
	SentimentPositive = "positivo"
	SentimentNegative = "negativo"
	SentimentNeutral  = "neutral"
)

type SecurityLine struct {
	Label      string  `json:"etiqueta"`
	Count      int     `json:"cantidad"`
	Percentage float64 `json:"porcentaje"`
	Sentiment  string  `json:"sentimiento"`
}

type RatingLine struct {
	Rating     string  `json:"calificacion"`
	Count      int     `json:"cantidad"`
	Percentage float64 `json:"porcentaje"`
}

type ProblemLine struct {
	Tag        string  `json:"clave"`
	Label      string  `json:"etiqueta"`
	Count      int     `json:"cantidad"`
	Percentage float64 `json:"porcentaje"`
}

// Report is the dashboard view of a Snapshot.
type Report struct {
	Total         int            `json:"total"`
	AverageRating float64        `json:"promedioCalificacion"`
	Security      []SecurityLine `json:"seguridadGeneral"`
	Ratings       []RatingLine   `json:"calificaciones"`
	TopProblems   []ProblemLine  `json:"principalesProblemas"`
}

func BuildReport(s Snapshot) Report {
	rep := Report{
		Total:         s.Total,
		AverageRating: s.AverageRating,
		Security:      make([]SecurityLine, 0, len(s.Security)),
		Ratings:       make([]RatingLine, 0, len(s.Ratings)),
		TopProblems:   make([]ProblemLine, 0, DefaultTopProblems),
	}
	for _, b := range s.Security {
		rep.Security = append(rep.Security, SecurityLine{
			Label:      b.Key,
			Count:      b.Count,
			Percentage: Percentage(b.Count, s.Total),
			Sentiment:  sentiment(models.SecurityLevel(b.Key)),
		})
	}
	for _, b := range s.Ratings {
		rep.Ratings = append(rep.Ratings, RatingLine{
			Rating:     b.Key,
			Count:      b.Count,
			Percentage: Percentage(b.Count, s.Total),
		})
	}
	for _, b := range s.TopProblems(DefaultTopProblems) {
		label, ok := models.ProblemLabels[models.Problem(b.Key)]
		if !ok {
			label = b.Key
		}
		rep.TopProblems = append(rep.TopProblems, ProblemLine{
			Tag:        b.Key,
			Label:      label,
			Count:      b.Count,
			Percentage: Percentage(b.Count, s.Total),
		})
	}
	return rep
}

func sentiment(l models.SecurityLevel) string {
	switch l {
	case models.SecuritySafe, models.SecurityVerySafe:
		return SentimentPositive
	case models.SecurityUnsafe, models.SecurityVeryUnsafe:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// CSV export

const csvHeader = "ID,Fecha,Hora,Nombre,Puesto,Teléfono,Seguridad General,Calificación General,Problemas Específicos,Sugerencia de Mejora\n"

const (
	noProblems   = "Ninguno"
	noSuggestion = "Ninguna"
	noStall      = "No especificado"
	noPhone      = "No proporcionado"
)

// ExportFilename names the CSV download for the given day.
func ExportFilename(t time.Time) string {
	return "encuestas-seguridad-mercado-" + t.Format(time.DateOnly) + ".csv"
}

// WriteCSV writes records in input order, one quoted row each.
func WriteCSV(w io.Writer, records []models.SurveyResponse) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := writeRow(bw, csvRow(r)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func csvRow(r models.SurveyResponse) []string {
	fecha, hora := r.Fecha, r.Hora
	if fecha == "" && !r.CreatedAt.IsZero() {
		fecha = FormatDate(r.CreatedAt.Local())
	}
	if hora == "" && !r.CreatedAt.IsZero() {
		hora = FormatTime(r.CreatedAt.Local())
	}

	problems := noProblems
	if len(r.ProblemasEspecificos) > 0 {
		names := make([]string, len(r.ProblemasEspecificos))
		for i, p := range r.ProblemasEspecificos {
			names[i] = string(p)
		}
		problems = strings.Join(names, "; ")
	}

	return []string{
		r.ID.Hex(),
		fecha,
		hora,
		r.Nombre,
		orDefault(r.Puesto, noStall),
		orDefault(r.Telefono, noPhone),
		string(r.SeguridadGeneral),
		r.CalificacionGeneral,
		problems,
		orDefault(r.SugerenciaMejora, noSuggestion),
	}
}

func writeRow(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		w.WriteByte('"')
	}
	return w.WriteByte('\n')
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
