// file: internals/features/budgets/controller/budget_controller.go
package controller

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cyberassess_backend/internals/features/budgets/dto"
	budgetService "cyberassess_backend/internals/features/budgets/service"
	orgService "cyberassess_backend/internals/features/organizations/service"
	"cyberassess_backend/internals/features/users/access"
	helper "cyberassess_backend/internals/helpers"
	authHelper "cyberassess_backend/internals/helpers/auth"
	"cyberassess_backend/internals/helpers/errs"
)

var validate = validator.New()

type BudgetController struct {
	DB      *gorm.DB
	Service *budgetService.BudgetService
}

func NewBudgetController(db *gorm.DB) *BudgetController {
	return &BudgetController{DB: db, Service: budgetService.NewBudgetService(db)}
}

func (ctl *BudgetController) resolveScope(c *fiber.Ctx) (*access.Policy, uuid.UUID, int, error) {
	h, err := orgService.CurrentHierarchy(c.Context(), ctl.DB)
	if err != nil {
		return nil, uuid.Nil, 0, err
	}
	policy, err := authHelper.PolicyFromToken(c, h)
	if err != nil {
		return nil, uuid.Nil, 0, err
	}

	unitID, err := uuid.Parse(c.Params("unit_id"))
	if err != nil {
		return nil, uuid.Nil, 0, errs.Validationf("unit id is not a valid UUID")
	}
	if _, ok := h.UnitProvince[unitID]; !ok {
		return nil, uuid.Nil, 0, errs.NotFoundf("unit %s", unitID)
	}
	if !policy.UnitVisible(unitID) {
		return nil, uuid.Nil, 0, errs.Permissionf("unit %s is outside your scope", unitID)
	}

	year, err := strconv.Atoi(c.Params("fiscal_year"))
	if err != nil || year < 2000 || year > 3000 {
		return nil, uuid.Nil, 0, errs.Validationf("fiscal year must be a 4-digit year")
	}
	return policy, unitID, year, nil
}

// Replace
// PUT /api/a/units/:unit_id/budgets/:fiscal_year
//
// Wholesale replace of the unit's figure set for the year. The request
// must carry every category exactly once.
func (ctl *BudgetController) Replace(c *fiber.Ctx) error {
	policy, unitID, year, err := ctl.resolveScope(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	if !policy.Role.IsUnitRole() {
		return helper.FromDomainError(c, errs.Permissionf("approvers read budgets, they do not edit them"))
	}
	userID, err := authHelper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	var req dto.ReplaceBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	lines := make([]budgetService.Line, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, budgetService.Line{Category: l.Category, Amount: l.Amount})
	}

	rows, err := ctl.Service.ReplaceYear(c.Context(), unitID, year, lines, userID)
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	out := make([]dto.BudgetRecordResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromBudgetModel(&rows[i]))
	}
	return helper.Success(c, "Budget replaced", out)
}

// List
// GET /api/a/units/:unit_id/budgets/:fiscal_year
func (ctl *BudgetController) List(c *fiber.Ctx) error {
	_, unitID, year, err := ctl.resolveScope(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	rows, err := ctl.Service.ListYear(c.Context(), unitID, year)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list budget records")
	}

	out := make([]dto.BudgetRecordResponse, 0, len(rows))
	var total float64
	for i := range rows {
		out = append(out, dto.FromBudgetModel(&rows[i]))
		total += rows[i].BudgetRecordAmount
	}
	return helper.Success(c, "Budget fetched", fiber.Map{
		"items": out,
		"total": total,
	})
}
