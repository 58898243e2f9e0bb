package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AnshRaj112/mercado-seguro-backend/internal/models"
)

func record(rating string, security models.SecurityLevel, problems ...models.Problem) models.SurveyResponse {
	return models.SurveyResponse{
		CalificacionGeneral:  rating,
		SeguridadGeneral:     security,
		ProblemasEspecificos: problems,
	}
}

func TestAggregateExample(t *testing.T) {
	records := []models.SurveyResponse{
		record("5", models.SecuritySafe, models.ProblemTheft, models.ProblemLighting),
		record("3", models.SecurityFair, models.ProblemTheft),
	}

	snap := Aggregate(records)

	assert.Equal(t, 2, snap.Total)
	assert.Equal(t, 4.0, snap.AverageRating)
	assert.Equal(t, []Bucket{{"robo", 2}, {"iluminacion", 1}}, snap.Problems)
	assert.Equal(t, []Bucket{{"robo", 2}, {"iluminacion", 1}}, snap.TopProblems(DefaultTopProblems))
	assert.Equal(t, []Bucket{{"seguro", 1}, {"regular", 1}}, snap.Security)
}

func TestAggregateEmpty(t *testing.T) {
	snap := Aggregate(nil)

	assert.Zero(t, snap.Total)
	assert.Equal(t, 0.0, snap.AverageRating)
	assert.Empty(t, snap.Problems)
	assert.Empty(t, snap.TopProblems(DefaultTopProblems))
}

func TestAverageRatingRoundsToOneDecimal(t *testing.T) {
	records := []models.SurveyResponse{
		record("5", models.SecuritySafe),
		record("4", models.SecuritySafe),
		record("4", models.SecuritySafe),
	}
	// 13/3 = 4.333...
	assert.Equal(t, 4.3, Aggregate(records).AverageRating)
}

func TestUnparsableRatingCountsTowardTotal(t *testing.T) {
	records := []models.SurveyResponse{
		record("4", models.SecuritySafe),
		record("", models.SecuritySafe),
	}
	assert.Equal(t, 2.0, Aggregate(records).AverageRating)
}

func TestProblemTallyCountsEveryMembership(t *testing.T) {
	records := []models.SurveyResponse{
		record("2", models.SecurityUnsafe, models.ProblemTheft, models.ProblemAccess, models.ProblemStaff),
		record("3", models.SecurityFair, models.ProblemAccess),
	}

	snap := Aggregate(records)

	sum := 0
	for _, b := range snap.Problems {
		sum += b.Count
	}
	assert.Equal(t, 4, sum)
	assert.Equal(t, 2, snap.Total)
}

func TestTopProblemsIsStableOnTies(t *testing.T) {
	var c Counter
	for _, k := range []string{"a", "b", "c", "a", "b", "a", "b", "c"} {
		c.Inc(k)
	}
	snap := Snapshot{Problems: c.Buckets()}

	assert.Equal(t, []Bucket{{"a", 3}, {"b", 3}, {"c", 2}}, snap.TopProblems(5))
}

func TestTopProblemsTruncates(t *testing.T) {
	var c Counter
	for i, k := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		for n := 0; n <= i; n++ {
			c.Inc(k)
		}
	}
	top := Snapshot{Problems: c.Buckets()}.TopProblems(DefaultTopProblems)

	assert.Len(t, top, 5)
	assert.Equal(t, "g", top[0].Key)
	assert.Equal(t, "c", top[4].Key)
}

func TestAggregateIsPureAndIdempotent(t *testing.T) {
	records := []models.SurveyResponse{
		record("1", models.SecurityVeryUnsafe, models.ProblemOther, models.ProblemTheft),
		record("2", models.SecurityUnsafe, models.ProblemTheft),
	}
	before := append([]models.SurveyResponse{}, records...)

	first := Aggregate(records)
	second := Aggregate(records)

	assert.Equal(t, first, second)
	assert.Equal(t, before, records)

	// ranking must not reorder the snapshot it was computed from
	_ = first.TopProblems(1)
	assert.Equal(t, []Bucket{{"otros", 1}, {"robo", 2}}, first.Problems)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(3, 0))
	assert.Equal(t, 33.3, Percentage(1, 3))
	assert.Equal(t, 66.7, Percentage(2, 3))
	assert.Equal(t, 100.0, Percentage(4, 4))
}
