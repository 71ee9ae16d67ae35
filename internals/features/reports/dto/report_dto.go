// file: internals/features/reports/dto/report_dto.go
package dto

import "github.com/google/uuid"

// BucketResponse is one row of a summary or drill listing: a region,
// province, or unit with its rolled-up figures.
type BucketResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`

	ScoreAverage   float64 `json:"score_average"`
	ScoreUnitCount int     `json:"score_unit_count"`

	ImpactAverage   float64 `json:"impact_average"`
	ImpactUnitCount int     `json:"impact_unit_count"`

	BudgetTotal     float64 `json:"budget_total"`
	BudgetUnitCount int     `json:"budget_unit_count"`
}

// SummaryResponse carries the full visible roll-up for one fiscal year.
// display_fiscal_year is the Buddhist Era rendering of fiscal_year.
type SummaryResponse struct {
	FiscalYear        int `json:"fiscal_year"`
	DisplayFiscalYear int `json:"display_fiscal_year"`

	Regions   []BucketResponse `json:"regions"`
	Provinces []BucketResponse `json:"provinces"`
	Units     []BucketResponse `json:"units"`
}

// DrillResponse is the result of replaying one drill path: the level the
// cursor landed on and the child rows visible there.
type DrillResponse struct {
	FiscalYear        int `json:"fiscal_year"`
	DisplayFiscalYear int `json:"display_fiscal_year"`

	Level string `json:"level"`

	RegionID   *uuid.UUID `json:"region_id,omitempty"`
	ProvinceID *uuid.UUID `json:"province_id,omitempty"`
	UnitID     *uuid.UUID `json:"unit_id,omitempty"`

	Children   []BucketResponse    `json:"children,omitempty"`
	Categories []CategoryBreakdown `json:"categories,omitempty"`
}

// CategoryBreakdown is the deepest drill level: one unit's per-category
// scores from its latest approved assessment.
type CategoryBreakdown struct {
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
	Score    float64 `json:"score"`
}
