package aggregate

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orgService "cyberassess_backend/internals/features/organizations/service"
)

/* ========================================================
   Fixture: one region, 3 provinces, 2 units each
======================================================== */

type fixture struct {
	h        *orgService.Hierarchy
	region   uuid.UUID
	provs    []uuid.UUID
	units    [][]uuid.UUID // units[i] belongs to provs[i]
}

func newFixture() fixture {
	f := fixture{
		region: uuid.New(),
		h: &orgService.Hierarchy{
			UnitProvince:   map[uuid.UUID]uuid.UUID{},
			ProvinceRegion: map[uuid.UUID]uuid.UUID{},
			UnitName:       map[uuid.UUID]string{},
			ProvinceName:   map[uuid.UUID]string{},
			RegionName:     map[uuid.UUID]string{},
		},
	}
	for i := 0; i < 3; i++ {
		prov := uuid.New()
		f.provs = append(f.provs, prov)
		f.h.ProvinceRegion[prov] = f.region
		var units []uuid.UUID
		for j := 0; j < 2; j++ {
			u := uuid.New()
			units = append(units, u)
			f.h.UnitProvince[u] = prov
		}
		f.units = append(f.units, units)
	}
	return f
}

// A region of 3 provinces × 2 units with budgets {10,20},{30,40},{50,60}
// reports a region total of 210 and a province breakdown of 30/70/110.
func TestBudgetRollupScenario(t *testing.T) {
	f := newFixture()
	amounts := [][]float64{{10, 20}, {30, 40}, {50, 60}}

	var points []Point
	for i, units := range f.units {
		for j, u := range units {
			points = append(points, Point{UnitID: u, Value: amounts[i][j]})
		}
	}

	res := Fold(points, f.h)
	require.NotNil(t, res.ByRegion[f.region])
	assert.Equal(t, 210.0, res.ByRegion[f.region].Total)
	assert.Equal(t, 6, res.ByRegion[f.region].UnitCount())

	wantProv := []float64{30, 70, 110}
	for i, prov := range f.provs {
		require.NotNil(t, res.ByProvince[prov])
		assert.Equal(t, wantProv[i], res.ByProvince[prov].Total)
		assert.Equal(t, 2, res.ByProvince[prov].UnitCount())
	}
	assert.Zero(t, res.Unresolved)
}

// Re-running the fold over an unchanged input set yields identical totals
// and unit counts every time.
func TestFoldIdempotent(t *testing.T) {
	f := newFixture()
	var points []Point
	for _, units := range f.units {
		for _, u := range units {
			points = append(points, Point{UnitID: u, Value: 7})
		}
	}

	first := Fold(points, f.h)
	for i := 0; i < 5; i++ {
		again := Fold(points, f.h)
		assert.Equal(t, first.ByRegion[f.region].Total, again.ByRegion[f.region].Total)
		assert.Equal(t, first.ByRegion[f.region].UnitCount(), again.ByRegion[f.region].UnitCount())
		for _, prov := range f.provs {
			assert.Equal(t, first.ByProvince[prov].Total, again.ByProvince[prov].Total)
		}
	}
}

func TestFoldNeverDoubleCountsAUnit(t *testing.T) {
	f := newFixture()
	u := f.units[0][0]
	points := []Point{
		{UnitID: u, Value: 10},
		{UnitID: u, Value: 10},
	}
	res := Fold(points, f.h)
	// The total sums both records, but the unit set holds one entry.
	assert.Equal(t, 20.0, res.ByRegion[f.region].Total)
	assert.Equal(t, 1, res.ByRegion[f.region].UnitCount())
}

func TestFoldSkipsUnresolvedUnits(t *testing.T) {
	f := newFixture()
	res := Fold([]Point{{UnitID: uuid.New(), Value: 99}}, f.h)
	assert.Equal(t, 1, res.Unresolved)
	assert.Empty(t, res.ByRegion)
}

/* ========================================================
   Selection semantics
======================================================== */

func rec(unit uuid.UUID, year int, status string, created time.Time, score float64) Record {
	return Record{
		AssessmentID: uuid.New(),
		UnitID:       unit,
		FiscalYear:   year,
		Status:       status,
		CreatedAt:    created,
		Score:        score,
	}
}

func TestFilterQualifying(t *testing.T) {
	u := uuid.New()
	t0 := time.Now()
	records := []Record{
		rec(u, 2024, "approved_provincial", t0, 80),
		rec(u, 2024, "approved_regional", t0, 85),
		rec(u, 2024, "draft", t0, 10),
		rec(u, 2024, "submitted", t0, 20),
		rec(u, 2024, "returned", t0, 30),
		rec(u, 2023, "approved_regional", t0, 90),
	}

	year := 2024
	got := FilterQualifying(records, &year, true)
	require.Len(t, got, 2, "draft/submitted/returned never enter official statistics")

	all := FilterQualifying(records, nil, true)
	assert.Len(t, all, 3)

	everything := FilterQualifying(records, &year, false)
	assert.Len(t, everything, 5)
}

func TestLatestPerUnit(t *testing.T) {
	u1, u2 := uuid.New(), uuid.New()
	base := time.Now()
	records := []Record{
		rec(u1, 2024, "approved_regional", base.Add(-2*time.Hour), 50),
		rec(u1, 2024, "approved_regional", base.Add(-1*time.Hour), 75), // latest for u1
		rec(u2, 2024, "approved_regional", base, 60),
	}

	got := LatestPerUnit(records)
	require.Len(t, got, 2)

	byUnit := map[uuid.UUID]float64{}
	for _, r := range got {
		byUnit[r.UnitID] = r.Score
	}
	assert.Equal(t, 75.0, byUnit[u1], "a unit contributes its most recent record only")
	assert.Equal(t, 60.0, byUnit[u2])
}

// A unit with no qualifying assessment in the selected year must be
// excluded from both numerator and denominator of an average — never
// counted as zero.
func TestAverageExcludesUnassessedUnits(t *testing.T) {
	f := newFixture()
	assessed1 := f.units[0][0]
	assessed2 := f.units[0][1]
	// f.units[1], f.units[2] have no qualifying records at all.

	year := 2024
	records := []Record{
		rec(assessed1, 2024, "approved_regional", time.Now(), 80),
		rec(assessed2, 2024, "approved_provincial", time.Now(), 60),
		rec(f.units[1][0], 2024, "draft", time.Now(), 5), // never qualifies
	}

	qualifying := LatestPerUnit(FilterQualifying(records, &year, true))
	res := Fold(ScorePoints(qualifying), f.h)

	region := res.ByRegion[f.region]
	require.NotNil(t, region)
	assert.Equal(t, 2, region.UnitCount())
	assert.Equal(t, 70.0, region.Average(), "(80+60)/2, not (80+60+0)/3 nor /6")
}

func TestAverageOfEmptyRollup(t *testing.T) {
	r := newRollup()
	assert.Equal(t, 0.0, r.Average())
}
