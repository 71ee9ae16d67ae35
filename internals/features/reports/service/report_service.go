// file: internals/features/reports/service/report_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"cyberassess_backend/internals/features/assessments/scoring"
	"cyberassess_backend/internals/features/assessments/workflow"
	impactModel "cyberassess_backend/internals/features/assessments/impact/model"
	orgService "cyberassess_backend/internals/features/organizations/service"
	"cyberassess_backend/internals/features/reports/aggregate"
)

// ReportService is the fetch layer under the aggregation fold: it turns
// table rows into aggregate.Record / aggregate.Point slices. All
// selection semantics (latest-per-unit, approved-only) stay in the pure
// aggregate package.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

type scoreRow struct {
	AssessmentID         uuid.UUID `gorm:"column:assessment_id"`
	AssessmentOrgUnitID  uuid.UUID `gorm:"column:assessment_org_unit_id"`
	AssessmentFiscalYear int       `gorm:"column:assessment_fiscal_year"`
	AssessmentStatus     string    `gorm:"column:assessment_status"`
	AssessmentCreatedAt  time.Time `gorm:"column:assessment_created_at"`
	Score                float64   `gorm:"column:score"`
}

// FetchScoreRecords loads assessment rows whose status is in the given
// set. The status filter is pushed into SQL via ANY() so a growing
// assessments table never streams draft rows through the app.
func (s *ReportService) FetchScoreRecords(ctx context.Context, fiscalYear *int, statuses []string) ([]aggregate.Record, error) {
	if len(statuses) == 0 {
		statuses = workflow.ApprovedStatuses()
	}

	q := s.DB.WithContext(ctx).
		Table("assessments").
		Select("assessment_id, assessment_org_unit_id, assessment_fiscal_year, assessment_status, assessment_created_at, COALESCE(assessment_total_score, 0) AS score").
		Where("assessment_deleted_at IS NULL").
		Where("assessment_status = ANY(?)", pq.Array(statuses))
	if fiscalYear != nil {
		q = q.Where("assessment_fiscal_year = ?", *fiscalYear)
	}

	var rows []scoreRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]aggregate.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, aggregate.Record{
			AssessmentID: r.AssessmentID,
			UnitID:       r.AssessmentOrgUnitID,
			FiscalYear:   r.AssessmentFiscalYear,
			Status:       r.AssessmentStatus,
			CreatedAt:    r.AssessmentCreatedAt,
			Score:        r.Score,
		})
	}
	return out, nil
}

type impactRow struct {
	AssessmentID         uuid.UUID `gorm:"column:assessment_id"`
	AssessmentOrgUnitID  uuid.UUID `gorm:"column:assessment_org_unit_id"`
	AssessmentFiscalYear int       `gorm:"column:assessment_fiscal_year"`
	AssessmentStatus     string    `gorm:"column:assessment_status"`
	AssessmentCreatedAt  time.Time `gorm:"column:assessment_created_at"`
	SchemaVersion        int       `gorm:"column:impact_score_schema_version"`
	Total                float64   `gorm:"column:impact_score_total"`
	LegacyTotal          int       `gorm:"column:impact_score_legacy_total"`
}

// FetchImpactRecords joins impact rows onto their assessments and
// normalizes legacy-scale rows onto the canonical 0–100 scale, so the
// fold never mixes scales.
func (s *ReportService) FetchImpactRecords(ctx context.Context, fiscalYear *int, statuses []string) ([]aggregate.Record, error) {
	if len(statuses) == 0 {
		statuses = workflow.ApprovedStatuses()
	}

	q := s.DB.WithContext(ctx).
		Table("impact_scores").
		Select("assessments.assessment_id, assessments.assessment_org_unit_id, assessments.assessment_fiscal_year, assessments.assessment_status, assessments.assessment_created_at, impact_scores.impact_score_schema_version, impact_scores.impact_score_total, impact_scores.impact_score_legacy_total").
		Joins("JOIN assessments ON assessments.assessment_id = impact_scores.impact_score_assessment_id").
		Where("impact_scores.impact_score_deleted_at IS NULL").
		Where("assessments.assessment_deleted_at IS NULL").
		Where("assessments.assessment_status = ANY(?)", pq.Array(statuses))
	if fiscalYear != nil {
		q = q.Where("assessments.assessment_fiscal_year = ?", *fiscalYear)
	}

	var rows []impactRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]aggregate.Record, 0, len(rows))
	for _, r := range rows {
		score := r.Total
		if r.SchemaVersion == impactModel.ImpactSchemaLegacy {
			score = scoring.NormalizeLegacy(r.LegacyTotal)
		}
		out = append(out, aggregate.Record{
			AssessmentID: r.AssessmentID,
			UnitID:       r.AssessmentOrgUnitID,
			FiscalYear:   r.AssessmentFiscalYear,
			Status:       r.AssessmentStatus,
			CreatedAt:    r.AssessmentCreatedAt,
			Score:        score,
		})
	}
	return out, nil
}

type budgetRow struct {
	OrgUnitID uuid.UUID `gorm:"column:budget_record_org_unit_id"`
	Total     float64   `gorm:"column:total"`
}

// FetchBudgetPoints sums each unit's budget figures for one fiscal year.
func (s *ReportService) FetchBudgetPoints(ctx context.Context, fiscalYear int) ([]aggregate.Point, error) {
	var rows []budgetRow
	err := s.DB.WithContext(ctx).
		Table("budget_records").
		Select("budget_record_org_unit_id, SUM(budget_record_amount) AS total").
		Where("budget_record_fiscal_year = ?", fiscalYear).
		Group("budget_record_org_unit_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]aggregate.Point, 0, len(rows))
	for _, r := range rows {
		out = append(out, aggregate.Point{UnitID: r.OrgUnitID, Value: r.Total})
	}
	return out, nil
}

// Summary bundles one fiscal year's three folds. Scores and impacts take
// only the latest approved record per unit; budgets are a plain sum.
type Summary struct {
	FiscalYear int
	Scores     *aggregate.Result
	Impacts    *aggregate.Result
	Budgets    *aggregate.Result
}

func (s *ReportService) BuildSummary(ctx context.Context, fiscalYear int, h *orgService.Hierarchy) (*Summary, error) {
	year := fiscalYear

	scoreRecords, err := s.FetchScoreRecords(ctx, &year, nil)
	if err != nil {
		return nil, err
	}
	impactRecords, err := s.FetchImpactRecords(ctx, &year, nil)
	if err != nil {
		return nil, err
	}
	budgetPoints, err := s.FetchBudgetPoints(ctx, year)
	if err != nil {
		return nil, err
	}

	scores := aggregate.Fold(aggregate.ScorePoints(aggregate.LatestPerUnit(scoreRecords)), h)
	impacts := aggregate.Fold(aggregate.ScorePoints(aggregate.LatestPerUnit(impactRecords)), h)
	budgets := aggregate.Fold(budgetPoints, h)

	return &Summary{FiscalYear: year, Scores: scores, Impacts: impacts, Budgets: budgets}, nil
}
