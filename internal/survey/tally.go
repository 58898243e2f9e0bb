package survey

import (
	"math"
	"slices"
	"strconv"

	"github.com/AnshRaj112/mercado-seguro-backend/internal/models"
)

// DefaultTopProblems is the size of the dashboard's problem ranking.
const DefaultTopProblems = 5

// Bucket is one entry of a tally.
type Bucket struct {
	Key   string `json:"clave"`
	Count int    `json:"cantidad"`
}

// Counter is a tally that remembers the order in which keys first appeared.
type Counter struct {
	index   map[string]int
	buckets []Bucket
}

func (c *Counter) Inc(key string) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	i, ok := c.index[key]
	if !ok {
		i = len(c.buckets)
		c.index[key] = i
		c.buckets = append(c.buckets, Bucket{Key: key})
	}
	c.buckets[i].Count++
}

// Buckets returns a copy of the tally in first-seen order.
func (c *Counter) Buckets() []Bucket {
	return append([]Bucket{}, c.buckets...)
}

// Tally accumulates statistics one record at a time, so a store cursor can be
// drained without holding every record in memory.
type Tally struct {
	total     int
	ratingSum int
	security  Counter
	ratings   Counter
	problems  Counter
}

func (t *Tally) Add(r models.SurveyResponse) {
	t.total++
	if r.SeguridadGeneral != "" {
		t.security.Inc(string(r.SeguridadGeneral))
	}
	if r.CalificacionGeneral != "" {
		t.ratings.Inc(r.CalificacionGeneral)
	}
	// unparsable legacy ratings count toward the total but add nothing
	if n, err := strconv.Atoi(r.CalificacionGeneral); err == nil {
		t.ratingSum += n
	}
	for _, p := range r.ProblemasEspecificos {
		t.problems.Inc(string(p))
	}
}

// Snapshot is the immutable result of an aggregation.
type Snapshot struct {
	Total         int      `json:"total"`
	AverageRating float64  `json:"promedioCalificacion"`
	Security      []Bucket `json:"seguridadGeneral"`
	Ratings       []Bucket `json:"calificaciones"`
	Problems      []Bucket `json:"problemasEspecificos"`
}

func (t *Tally) Snapshot() Snapshot {
	avg := 0.0
	if t.total > 0 {
		avg = round1(float64(t.ratingSum) / float64(t.total))
	}
	return Snapshot{
		Total:         t.total,
		AverageRating: avg,
		Security:      t.security.Buckets(),
		Ratings:       t.ratings.Buckets(),
		Problems:      t.problems.Buckets(),
	}
}

// Aggregate computes the statistics of records. It does not modify records.
func Aggregate(records []models.SurveyResponse) Snapshot {
	var t Tally
	for _, r := range records {
		t.Add(r)
	}
	return t.Snapshot()
}

// TopProblems ranks problem tags by count, keeping first-seen order on ties,
// and keeps at most n.
func (s Snapshot) TopProblems(n int) []Bucket {
	ranked := slices.Clone(s.Problems)
	slices.SortStableFunc(ranked, func(a, b Bucket) int {
		return b.Count - a.Count
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Percentage is 100*count/total rounded to one decimal; 0 for an empty total.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(100 * float64(count) / float64(total))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
