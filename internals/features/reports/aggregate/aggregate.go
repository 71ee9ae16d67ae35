// file: internals/features/reports/aggregate/aggregate.go
//
// Hierarchical roll-ups of scores and budget figures. Every public
// function here is pure over in-memory inputs; the fetch layer lives in
// the reports service. Results are fresh snapshots per call — nothing is
// mutated incrementally across refreshes.
package aggregate

import (
	"sort"
	"time"

	"github.com/google/uuid"

	orgService "cyberassess_backend/internals/features/organizations/service"
	"cyberassess_backend/internals/features/assessments/workflow"
)

// Record is one assessment's contribution candidate.
type Record struct {
	AssessmentID uuid.UUID
	UnitID       uuid.UUID
	FiscalYear   int
	Status       string
	CreatedAt    time.Time
	Score        float64 // canonical 0–100 scale; normalize legacy rows first
}

// Point is one (unit, value) pair ready to fold — either a qualifying
// assessment's score or a budget figure.
type Point struct {
	UnitID uuid.UUID
	Value  float64
}

/* ========================================================
   Selection
======================================================== */

// FilterQualifying keeps records for the requested fiscal year (nil means
// all years) and, when approvedOnly is set, only records whose status
// counts as approved for official statistics.
func FilterQualifying(records []Record, fiscalYear *int, approvedOnly bool) []Record {
	approved := map[string]bool{}
	for _, s := range workflow.ApprovedStatuses() {
		approved[s] = true
	}

	var out []Record
	for _, r := range records {
		if fiscalYear != nil && r.FiscalYear != *fiscalYear {
			continue
		}
		if approvedOnly && !approved[r.Status] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// LatestPerUnit reduces the set to the single most-recent qualifying
// record per unit, so a unit contributes at most one data point to any
// aggregate regardless of how many historical cycles it has. Ties on
// creation time break on assessment id for determinism.
func LatestPerUnit(records []Record) []Record {
	best := map[uuid.UUID]Record{}
	for _, r := range records {
		cur, ok := best[r.UnitID]
		if !ok {
			best[r.UnitID] = r
			continue
		}
		if r.CreatedAt.After(cur.CreatedAt) ||
			(r.CreatedAt.Equal(cur.CreatedAt) && r.AssessmentID.String() > cur.AssessmentID.String()) {
			best[r.UnitID] = r
		}
	}

	out := make([]Record, 0, len(best))
	for _, r := range best {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UnitID.String() < out[j].UnitID.String()
	})
	return out
}

// ScorePoints adapts selected records into foldable points.
func ScorePoints(records []Record) []Point {
	out := make([]Point, 0, len(records))
	for _, r := range records {
		out = append(out, Point{UnitID: r.UnitID, Value: r.Score})
	}
	return out
}

/* ========================================================
   Fold
======================================================== */

// Rollup accumulates one aggregation bucket. The contributing units are a
// set, not a counter: the same unit appearing in multiple records must
// never be double counted.
type Rollup struct {
	Total float64
	Units map[uuid.UUID]struct{}
}

func newRollup() *Rollup {
	return &Rollup{Units: map[uuid.UUID]struct{}{}}
}

func bucket(m map[uuid.UUID]*Rollup, key uuid.UUID) *Rollup {
	if m[key] == nil {
		m[key] = newRollup()
	}
	return m[key]
}

func (r *Rollup) add(unitID uuid.UUID, value float64) {
	r.Total += value
	r.Units[unitID] = struct{}{}
}

// UnitCount is the count-of-units-covered metric.
func (r *Rollup) UnitCount() int { return len(r.Units) }

// Average divides the total by the number of contributing units. Units
// with no qualifying data are in neither the numerator nor the
// denominator — "not assessed" is never treated as zero.
func (r *Rollup) Average() float64 {
	if len(r.Units) == 0 {
		return 0
	}
	return r.Total / float64(len(r.Units))
}

// Result holds the three parallel maps of one fold pass.
type Result struct {
	ByRegion   map[uuid.UUID]*Rollup
	ByProvince map[uuid.UUID]*Rollup
	ByUnit     map[uuid.UUID]*Rollup

	// Points whose unit has no ancestor chain in the hierarchy snapshot.
	Unresolved int
}

// Fold enriches each point with its province and region and accumulates
// it into all three maps. The input order does not affect the result.
func Fold(points []Point, h *orgService.Hierarchy) *Result {
	res := &Result{
		ByRegion:   map[uuid.UUID]*Rollup{},
		ByProvince: map[uuid.UUID]*Rollup{},
		ByUnit:     map[uuid.UUID]*Rollup{},
	}

	for _, p := range points {
		provinceID, ok := h.ProvinceOfUnit(p.UnitID)
		if !ok {
			res.Unresolved++
			continue
		}
		regionID, ok := h.ProvinceRegion[provinceID]
		if !ok {
			res.Unresolved++
			continue
		}

		bucket(res.ByRegion, regionID).add(p.UnitID, p.Value)
		bucket(res.ByProvince, provinceID).add(p.UnitID, p.Value)
		bucket(res.ByUnit, p.UnitID).add(p.UnitID, p.Value)
	}
	return res
}
