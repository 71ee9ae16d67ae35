// file: internals/features/assessments/assessments/controller/assessment_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cyberassess_backend/internals/features/assessments/assessments/dto"
	model "cyberassess_backend/internals/features/assessments/assessments/model"
	"cyberassess_backend/internals/features/assessments/scoring"
	"cyberassess_backend/internals/features/assessments/workflow"
	orgService "cyberassess_backend/internals/features/organizations/service"
	"cyberassess_backend/internals/features/users/access"
	"cyberassess_backend/internals/constants"
	helper "cyberassess_backend/internals/helpers"
	authHelper "cyberassess_backend/internals/helpers/auth"
	"cyberassess_backend/internals/helpers/errs"
)

var validate = validator.New()

type AssessmentController struct {
	DB       *gorm.DB
	Workflow *workflow.Service
}

func NewAssessmentController(db *gorm.DB) *AssessmentController {
	return &AssessmentController{DB: db, Workflow: workflow.NewService(db)}
}

func (ctl *AssessmentController) policy(c *fiber.Ctx) (*access.Policy, error) {
	h, err := orgService.CurrentHierarchy(c.Context(), ctl.DB)
	if err != nil {
		return nil, err
	}
	return authHelper.PolicyFromToken(c, h)
}

// resolveTargetUnit decides which unit a create targets: unit staff are
// pinned to their scope, central admins must name one explicitly.
func resolveTargetUnit(policy *access.Policy, requested *uuid.UUID) (uuid.UUID, error) {
	if policy.Role == access.RoleCentralAdmin {
		if requested == nil {
			return uuid.Nil, errs.Validationf("org_unit_id is required for central administrators")
		}
		return *requested, nil
	}
	if policy.Scope.HospitalID == nil {
		return uuid.Nil, errs.Permissionf("your account has no organizational unit")
	}
	if requested != nil && *requested != *policy.Scope.HospitalID {
		return uuid.Nil, errs.Permissionf("you may only open assessments for your own unit")
	}
	return *policy.Scope.HospitalID, nil
}

// Create
// POST /api/a/assessments
//
// Opens one cycle per (unit, fiscal year, period) and seeds one line item
// per category, all failing, so the scoring surface is complete from the
// first save.
func (ctl *AssessmentController) Create(c *fiber.Ctx) error {
	policy, err := ctl.policy(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	userID, err := authHelper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	var req dto.CreateAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	unitID, err := resolveTargetUnit(policy, req.OrgUnitID)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	if !policy.UnitVisible(unitID) {
		return helper.FromDomainError(c, errs.Permissionf("unit %s is outside your scope", unitID))
	}

	year := constants.FiscalYearOf(time.Now())
	if req.FiscalYear != nil {
		year = *req.FiscalYear
	}
	period := req.Period
	if period == "" {
		period = "annual"
	}

	a := model.AssessmentModel{
		AssessmentID:         uuid.New(),
		AssessmentOrgUnitID:  unitID,
		AssessmentFiscalYear: year,
		AssessmentPeriod:     period,
		AssessmentStatus:     string(workflow.StatusDraft),
		AssessmentCreatedBy:  userID,
	}

	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.AssessmentModel{}).
			Where("assessment_org_unit_id = ? AND assessment_fiscal_year = ? AND assessment_period = ?", unitID, year, period).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errs.Conflictf("an assessment for this unit and fiscal year already exists")
		}

		if err := tx.Create(&a).Error; err != nil {
			return err
		}

		items := make([]model.AssessmentItemModel, 0, len(scoring.Categories()))
		for _, cat := range scoring.Categories() {
			items = append(items, model.AssessmentItemModel{
				AssessmentItemID:           uuid.New(),
				AssessmentItemAssessmentID: a.AssessmentID,
				AssessmentItemCategory:     cat,
				AssessmentItemStatus:       scoring.ItemStatusFail,
				AssessmentItemScore:        0,
			})
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return helper.FromDomainError(c, duplicateToConflict(err))
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Assessment created", dto.FromAssessmentModel(&a))
}

// Postgres unique violation (SQLSTATE 23505) on the cycle identity index.
// The count pre-check above gives the friendly message; this catches the
// race when two concurrent creates both pass that check.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "23505")
}

func duplicateToConflict(err error) error {
	if isDuplicateKey(err) {
		return errs.Conflictf("an assessment for this unit and fiscal year already exists")
	}
	return err
}

// List
// GET /api/a/assessments?fiscal_year=&status=&page=&per_page=
func (ctl *AssessmentController) List(c *fiber.Ctx) error {
	policy, err := ctl.policy(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	p := helper.ParsePaging(c, "created_at", "desc")
	order, err := p.SafeOrderClause(map[string]string{
		"created_at":  "assessment_created_at",
		"fiscal_year": "assessment_fiscal_year",
		"status":      "assessment_status",
		"total_score": "assessment_total_score",
	}, "created_at")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid sort key")
	}

	q := ctl.DB.WithContext(c.Context()).Model(&model.AssessmentModel{})
	if ids, restricted := policy.VisibleUnitIDs(); restricted {
		q = q.Where("assessment_org_unit_id IN ?", ids)
	}
	if raw := strings.TrimSpace(c.Query("fiscal_year")); raw != "" {
		year, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return helper.Error(c, fiber.StatusBadRequest, "fiscal_year must be numeric")
		}
		q = q.Where("assessment_fiscal_year = ?", year)
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		if _, parseErr := workflow.ParseStatus(raw); parseErr != nil {
			return helper.FromDomainError(c, parseErr)
		}
		q = q.Where("assessment_status = ?", raw)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count assessments")
	}

	var rows []model.AssessmentModel
	if err := q.Order(strings.TrimPrefix(order, "ORDER BY ")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list assessments")
	}

	out := make([]dto.AssessmentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromAssessmentModel(&rows[i]))
	}

	return helper.Success(c, "Assessments fetched", fiber.Map{
		"items": out,
		"meta":  helper.BuildMeta(total, p),
	})
}

func (ctl *AssessmentController) loadVisible(c *fiber.Ctx, policy *access.Policy) (*model.AssessmentModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, errs.Validationf("assessment id is not a valid UUID")
	}

	var a model.AssessmentModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("assessment_id = ?", id).
		First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("assessment %s", id)
		}
		return nil, err
	}
	if !policy.UnitVisible(a.AssessmentOrgUnitID) {
		return nil, errs.Permissionf("assessment %s is outside your scope", a.AssessmentID)
	}
	return &a, nil
}

// GetByID
// GET /api/a/assessments/:id
func (ctl *AssessmentController) GetByID(c *fiber.Ctx) error {
	policy, err := ctl.policy(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	a, err := ctl.loadVisible(c, policy)
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	var items []model.AssessmentItemModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("assessment_item_assessment_id = ?", a.AssessmentID).
		Order("assessment_item_category ASC").
		Find(&items).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load assessment items")
	}

	resp := dto.FromAssessmentModel(a)
	for i := range items {
		resp.Items = append(resp.Items, dto.FromItemModel(&items[i]))
	}
	return helper.Success(c, "Assessment fetched", resp)
}

// UpdateItem
// PUT /api/a/assessments/:id/items/:item_id
//
// Rescores one category and recomputes the weighted total in the same
// transaction, so the persisted total can never drift from its items. The
// write is refused once the assessment has left draft/returned.
func (ctl *AssessmentController) UpdateItem(c *fiber.Ctx) error {
	policy, err := ctl.policy(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	a, err := ctl.loadVisible(c, policy)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	if !policy.Role.IsUnitRole() {
		return helper.FromDomainError(c, errs.Permissionf("approvers review assessments, they do not edit them"))
	}
	if !workflow.Status(a.AssessmentStatus).Editable() {
		return helper.FromDomainError(c, errs.Conflictf("assessment is %s and no longer editable", a.AssessmentStatus))
	}

	itemID, err := uuid.Parse(c.Params("item_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "item id is not a valid UUID")
	}

	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var updated model.AssessmentItemModel
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var item model.AssessmentItemModel
		if err := tx.Where("assessment_item_id = ? AND assessment_item_assessment_id = ?", itemID, a.AssessmentID).
			First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFoundf("item %s", itemID)
			}
			return err
		}

		item.AssessmentItemStatus = req.Status
		item.AssessmentItemScore = scoring.ItemScoreForStatus(req.Status)
		if req.Note != nil {
			item.AssessmentItemNote = req.Note
		}
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		var items []model.AssessmentItemModel
		if err := tx.Where("assessment_item_assessment_id = ?", a.AssessmentID).
			Find(&items).Error; err != nil {
			return err
		}
		scored := make([]scoring.ScoredItem, 0, len(items))
		for _, it := range items {
			scored = append(scored, scoring.ScoredItem{
				Category: it.AssessmentItemCategory,
				Score:    it.AssessmentItemScore,
			})
		}
		total := scoring.AssessmentTotal(scored)

		if err := tx.Model(&model.AssessmentModel{}).
			Where("assessment_id = ?", a.AssessmentID).
			Update("assessment_total_score", total).Error; err != nil {
			return err
		}

		updated = item
		return nil
	})
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	return helper.Success(c, "Item updated", dto.FromItemModel(&updated))
}

/* =======================
   Workflow transitions
======================= */

func (ctl *AssessmentController) applyAction(c *fiber.Ctx, pick func(*access.Policy) (workflow.Action, error)) error {
	policy, err := ctl.policy(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	userID, err := authHelper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "assessment id is not a valid UUID")
	}

	var req dto.ActionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return helper.ValidationError(c, err)
		}
	}

	action, err := pick(policy)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	if !policy.CanApprove(string(action)) {
		return helper.FromDomainError(c, errs.Permissionf("role %s cannot perform %s", policy.Role, action))
	}

	a, err := ctl.Workflow.Apply(c.Context(), workflow.Actor{UserID: userID, Policy: policy}, id, action, req.Note)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.Success(c, "Assessment "+string(action)+" applied", dto.FromAssessmentModel(a))
}

// Submit moves a draft (or returned) assessment into review.
// POST /api/a/assessments/:id/submit
func (ctl *AssessmentController) Submit(c *fiber.Ctx) error {
	return ctl.applyAction(c, func(*access.Policy) (workflow.Action, error) {
		return workflow.ActionSubmit, nil
	})
}

// Approve applies the approver's own tier: a provincial approver grants
// provincial approval, a regional approver the regional one.
// POST /api/a/assessments/:id/approve
func (ctl *AssessmentController) Approve(c *fiber.Ctx) error {
	return ctl.applyAction(c, func(p *access.Policy) (workflow.Action, error) {
		switch p.Role {
		case access.RoleProvincialApprover:
			return workflow.ActionApproveProvincial, nil
		case access.RoleRegionalApprover:
			return workflow.ActionApproveRegional, nil
		}
		return "", errs.Permissionf("role %s cannot approve assessments", p.Role)
	})
}

// Return sends the assessment back to the unit for rework.
// POST /api/a/assessments/:id/return
func (ctl *AssessmentController) Return(c *fiber.Ctx) error {
	return ctl.applyAction(c, func(p *access.Policy) (workflow.Action, error) {
		switch p.Role {
		case access.RoleProvincialApprover:
			return workflow.ActionReturnProvincial, nil
		case access.RoleRegionalApprover:
			return workflow.ActionReturnRegional, nil
		}
		return "", errs.Permissionf("role %s cannot return assessments", p.Role)
	})
}

// History
// GET /api/a/assessments/:id/history
func (ctl *AssessmentController) History(c *fiber.Ctx) error {
	policy, err := ctl.policy(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	a, err := ctl.loadVisible(c, policy)
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	rows, err := ctl.Workflow.History(c.Context(), a.AssessmentID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load approval history")
	}
	out := make([]dto.ApprovalHistoryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromHistoryModel(&rows[i]))
	}
	return helper.Success(c, "Approval history fetched", out)
}
