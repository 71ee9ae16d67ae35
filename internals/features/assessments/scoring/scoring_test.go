package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncidentPenaltyBreakpoints(t *testing.T) {
	cases := []struct {
		hours int
		want  int
	}{
		{1, -2},
		{4, -2},  // boundary stays in the first bucket
		{5, -5},  // one past the boundary drops a bucket
		{24, -5},
		{25, -8},
		{72, -8},
		{73, -15},
		{500, -15},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IncidentPenalty(true, tc.hours), "hours=%d", tc.hours)
	}
}

func TestIncidentPenaltyNoIncident(t *testing.T) {
	assert.Equal(t, 0, IncidentPenalty(false, 0))
	assert.Equal(t, 0, IncidentPenalty(false, 100))
	// Zero recovery hours with an incident flagged scores as no incident.
	assert.Equal(t, 0, IncidentPenalty(true, 0))
}

func TestIncidentPenaltyNonIncreasing(t *testing.T) {
	prev := 0
	for h := 1; h <= 200; h++ {
		p := IncidentPenalty(true, h)
		require.LessOrEqual(t, p, prev, "penalty must not rise with recovery hours (h=%d)", h)
		prev = p
	}
}

func TestBreachPenaltyTable(t *testing.T) {
	assert.Equal(t, 0, BreachPenalty(false, BreachCritical))
	assert.Equal(t, 0, BreachPenalty(true, BreachNone))
	assert.Equal(t, 2, BreachPenalty(true, BreachLow))
	assert.Equal(t, 5, BreachPenalty(true, BreachMedium))
	assert.Equal(t, 8, BreachPenalty(true, BreachHigh))
	assert.Equal(t, 15, BreachPenalty(true, BreachCritical))
	// Unknown severity is scored as the worst bucket, not ignored.
	assert.Equal(t, 15, BreachPenalty(true, BreachSeverity("made_up")))
}

func TestLegacyImpactTotal(t *testing.T) {
	// Clean record keeps the full 15.
	assert.Equal(t, 15, LegacyImpactTotal(false, 0, false, BreachNone))
	// A quick incident costs 2.
	assert.Equal(t, 13, LegacyImpactTotal(true, 3, false, BreachNone))
	// Worst case clamps at zero instead of going negative.
	assert.Equal(t, 0, LegacyImpactTotal(true, 100, true, BreachCritical))
}

func TestCanonicalComponentsDefaultToMax(t *testing.T) {
	assert.Equal(t, ComponentMax, IncidentComponent(false, 0))
	assert.Equal(t, ComponentMax, BreachComponent(false, BreachCritical))
	assert.Equal(t, ImpactMax, ImpactTotal(false, 0, false, BreachNone))
}

func TestImpactTotalCanonical(t *testing.T) {
	// 5h recovery (30) + medium breach (25)
	assert.Equal(t, 55.0, ImpactTotal(true, 5, true, BreachMedium))
	// >72h recovery (0) + critical breach (0)
	assert.Equal(t, 0.0, ImpactTotal(true, 100, true, BreachCritical))
}

func TestNormalizeLegacy(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeLegacy(0))
	assert.Equal(t, 0.0, NormalizeLegacy(-3))
	assert.Equal(t, 100.0, NormalizeLegacy(15))
	assert.Equal(t, 100.0, NormalizeLegacy(30))
	assert.Equal(t, 86.67, NormalizeLegacy(13))
}

func TestDeterminism(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, ImpactTotal(true, 30, true, BreachHigh), ImpactTotal(true, 30, true, BreachHigh))
	}
}

func TestCategoryWeightsSumToMax(t *testing.T) {
	var sum float64
	for _, c := range Categories() {
		sum += CategoryWeight(c)
	}
	assert.Equal(t, AssessmentMaxScore, sum)
}

func TestAssessmentTotal(t *testing.T) {
	items := make([]ScoredItem, 0, len(Categories()))
	for _, c := range Categories() {
		items = append(items, ScoredItem{Category: c, Score: ItemMaxScore})
	}
	assert.Equal(t, AssessmentMaxScore, AssessmentTotal(items))

	// Half credit everywhere halves the total.
	for i := range items {
		items[i].Score = ItemMaxScore / 2
	}
	assert.Equal(t, AssessmentMaxScore/2, AssessmentTotal(items))

	// Unknown categories and out-of-range scores are neutralized.
	assert.Equal(t, 0.0, AssessmentTotal([]ScoredItem{{Category: "nope", Score: 10}}))
	assert.Equal(t, 15.0, AssessmentTotal([]ScoredItem{{Category: CategoryGovernance, Score: 99}}))
}

func TestItemScoreForStatus(t *testing.T) {
	assert.Equal(t, ItemMaxScore, ItemScoreForStatus(ItemStatusPass))
	assert.Equal(t, ItemMaxScore/2, ItemScoreForStatus(ItemStatusPartial))
	assert.Equal(t, 0.0, ItemScoreForStatus(ItemStatusFail))
	assert.Equal(t, 0.0, ItemScoreForStatus("garbage"))
}
