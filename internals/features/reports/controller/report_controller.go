// file: internals/features/reports/controller/report_controller.go
package controller

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	assessModel "cyberassess_backend/internals/features/assessments/assessments/model"
	"cyberassess_backend/internals/features/assessments/scoring"
	"cyberassess_backend/internals/features/assessments/workflow"
	orgService "cyberassess_backend/internals/features/organizations/service"
	"cyberassess_backend/internals/features/reports/aggregate"
	"cyberassess_backend/internals/features/reports/dto"
	reportService "cyberassess_backend/internals/features/reports/service"
	"cyberassess_backend/internals/features/users/access"
	"cyberassess_backend/internals/constants"
	helper "cyberassess_backend/internals/helpers"
	authHelper "cyberassess_backend/internals/helpers/auth"
)

type ReportController struct {
	DB      *gorm.DB
	Service *reportService.ReportService
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db, Service: reportService.NewReportService(db)}
}

func parseFiscalYear(c *fiber.Ctx) (int, error) {
	raw := strings.TrimSpace(c.Query("fiscal_year"))
	if raw == "" {
		return constants.FiscalYearOf(time.Now()), nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 2000 || year > 3000 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "fiscal_year must be a 4-digit year")
	}
	return year, nil
}

func bucketRow(id uuid.UUID, name string, sum *reportService.Summary, pick func(*aggregate.Result) *aggregate.Rollup) dto.BucketResponse {
	row := dto.BucketResponse{ID: id, Name: name}
	if r := pick(sum.Scores); r != nil {
		row.ScoreAverage = r.Average()
		row.ScoreUnitCount = r.UnitCount()
	}
	if r := pick(sum.Impacts); r != nil {
		row.ImpactAverage = r.Average()
		row.ImpactUnitCount = r.UnitCount()
	}
	if r := pick(sum.Budgets); r != nil {
		row.BudgetTotal = r.Total
		row.BudgetUnitCount = r.UnitCount()
	}
	return row
}

func sortBuckets(rows []dto.BucketResponse) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].ID.String() < rows[j].ID.String()
	})
}

// GetSummary
// GET /api/a/reports/summary?fiscal_year=2026
//
// Rolls up scores, normalized impacts, and budget totals across every
// region, province, and unit the caller may see. Only approved
// assessments contribute; an unassessed unit is absent, never a zero.
func (ctl *ReportController) GetSummary(c *fiber.Ctx) error {
	h, err := orgService.CurrentHierarchy(c.Context(), ctl.DB)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "failed to load organization tree")
	}
	policy, err := authHelper.PolicyFromToken(c, h)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	year, err := parseFiscalYear(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	sum, err := ctl.Service.BuildSummary(c.Context(), year, h)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "failed to aggregate reports")
	}

	resp := dto.SummaryResponse{
		FiscalYear:        year,
		DisplayFiscalYear: constants.DisplayFiscalYear(year),
	}
	for regionID, name := range h.RegionName {
		if !policy.RegionVisible(regionID) {
			continue
		}
		id := regionID
		resp.Regions = append(resp.Regions, bucketRow(id, name, sum, func(r *aggregate.Result) *aggregate.Rollup {
			return r.ByRegion[id]
		}))
	}
	for provinceID, name := range h.ProvinceName {
		if !policy.ProvinceVisible(provinceID) {
			continue
		}
		id := provinceID
		resp.Provinces = append(resp.Provinces, bucketRow(id, name, sum, func(r *aggregate.Result) *aggregate.Rollup {
			return r.ByProvince[id]
		}))
	}
	for unitID, name := range h.UnitName {
		if !policy.UnitVisible(unitID) {
			continue
		}
		id := unitID
		resp.Units = append(resp.Units, bucketRow(id, name, sum, func(r *aggregate.Result) *aggregate.Rollup {
			return r.ByUnit[id]
		}))
	}
	sortBuckets(resp.Regions)
	sortBuckets(resp.Provinces)
	sortBuckets(resp.Units)

	return helper.Success(c, "Report summary fetched", resp)
}

// GetDrill
// GET /api/a/reports/drill?fiscal_year=2026&region_id=&province_id=&unit_id=
//
// Replays the drill path through the policy-checked cursor: each id in the
// chain is entered in order, so an out-of-scope selection anywhere along
// the path fails exactly as it would in interactive navigation.
func (ctl *ReportController) GetDrill(c *fiber.Ctx) error {
	h, err := orgService.CurrentHierarchy(c.Context(), ctl.DB)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "failed to load organization tree")
	}
	policy, err := authHelper.PolicyFromToken(c, h)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	year, err := parseFiscalYear(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	cursor := aggregate.NewCursor(policy, h)
	if err := ctl.replayPath(c, cursor); err != nil {
		return helper.FromDomainError(c, err)
	}

	sum, err := ctl.Service.BuildSummary(c.Context(), year, h)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "failed to aggregate reports")
	}

	resp := dto.DrillResponse{
		FiscalYear:        year,
		DisplayFiscalYear: constants.DisplayFiscalYear(year),
		Level:             cursor.Level().String(),
	}
	if id := cursor.RegionID(); id != uuid.Nil {
		resp.RegionID = &id
	}
	if id := cursor.ProvinceID(); id != uuid.Nil {
		resp.ProvinceID = &id
	}
	if id := cursor.UnitID(); id != uuid.Nil {
		resp.UnitID = &id
	}

	switch cursor.Level() {
	case access.LevelRegion:
		for regionID, name := range h.RegionName {
			if !policy.RegionVisible(regionID) {
				continue
			}
			id := regionID
			resp.Children = append(resp.Children, bucketRow(id, name, sum, func(r *aggregate.Result) *aggregate.Rollup {
				return r.ByRegion[id]
			}))
		}
	case access.LevelProvince:
		for _, provinceID := range h.ProvincesOfRegion(cursor.RegionID()) {
			if !policy.ProvinceVisible(provinceID) {
				continue
			}
			id := provinceID
			resp.Children = append(resp.Children, bucketRow(id, h.ProvinceName[id], sum, func(r *aggregate.Result) *aggregate.Rollup {
				return r.ByProvince[id]
			}))
		}
	case access.LevelUnit:
		for _, unitID := range h.UnitsOfProvince(cursor.ProvinceID()) {
			if !policy.UnitVisible(unitID) {
				continue
			}
			id := unitID
			resp.Children = append(resp.Children, bucketRow(id, h.UnitName[id], sum, func(r *aggregate.Result) *aggregate.Rollup {
				return r.ByUnit[id]
			}))
		}
	case access.LevelCategory:
		cats, err := ctl.categoryBreakdown(c, cursor.UnitID(), year)
		if err != nil {
			return helper.FromDomainError(c, err)
		}
		resp.Categories = cats
	}
	sortBuckets(resp.Children)

	return helper.Success(c, "Drill level fetched", resp)
}

func (ctl *ReportController) replayPath(c *fiber.Ctx, cursor *aggregate.Cursor) error {
	steps := []struct {
		param string
		at    access.Level
		enter func(uuid.UUID) error
	}{
		{"region_id", access.LevelRegion, cursor.EnterRegion},
		{"province_id", access.LevelProvince, cursor.EnterProvince},
		{"unit_id", access.LevelUnit, cursor.EnterUnit},
	}
	for _, step := range steps {
		raw := strings.TrimSpace(c.Query(step.param))
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, step.param+" is not a valid UUID")
		}
		// Levels above the role's home are pinned by scope; a provincial
		// approver echoing their region_id replays cleanly from home. A
		// mismatched echo still fails the containment check one level down.
		if cursor.Level() > step.at {
			continue
		}
		if err := step.enter(id); err != nil {
			return err
		}
	}
	return nil
}

// categoryBreakdown loads per-category scores from the unit's latest
// approved assessment of the year.
func (ctl *ReportController) categoryBreakdown(c *fiber.Ctx, unitID uuid.UUID, year int) ([]dto.CategoryBreakdown, error) {
	var a assessModel.AssessmentModel
	err := ctl.DB.WithContext(c.Context()).
		Where("assessment_org_unit_id = ? AND assessment_fiscal_year = ?", unitID, year).
		Where("assessment_status IN ?", workflow.ApprovedStatuses()).
		Order("assessment_created_at DESC").
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []dto.CategoryBreakdown{}, nil
		}
		return nil, err
	}

	var items []assessModel.AssessmentItemModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("assessment_item_assessment_id = ?", a.AssessmentID).
		Find(&items).Error; err != nil {
		return nil, err
	}

	byCategory := map[string]float64{}
	for _, it := range items {
		byCategory[it.AssessmentItemCategory] = it.AssessmentItemScore
	}

	out := make([]dto.CategoryBreakdown, 0, len(scoring.Categories()))
	for _, cat := range scoring.Categories() {
		out = append(out, dto.CategoryBreakdown{
			Category: cat,
			Weight:   scoring.CategoryWeight(cat),
			Score:    byCategory[cat],
		})
	}
	return out, nil
}
