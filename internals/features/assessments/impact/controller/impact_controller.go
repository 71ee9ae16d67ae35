// file: internals/features/assessments/impact/controller/impact_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	assessModel "cyberassess_backend/internals/features/assessments/assessments/model"
	"cyberassess_backend/internals/features/assessments/impact/dto"
	model "cyberassess_backend/internals/features/assessments/impact/model"
	"cyberassess_backend/internals/features/assessments/scoring"
	"cyberassess_backend/internals/features/assessments/workflow"
	orgService "cyberassess_backend/internals/features/organizations/service"
	"cyberassess_backend/internals/features/users/access"
	helper "cyberassess_backend/internals/helpers"
	authHelper "cyberassess_backend/internals/helpers/auth"
	"cyberassess_backend/internals/helpers/errs"
)

var validate = validator.New()

type ImpactController struct {
	DB *gorm.DB
}

func NewImpactController(db *gorm.DB) *ImpactController {
	return &ImpactController{DB: db}
}

func (ctl *ImpactController) loadVisibleAssessment(c *fiber.Ctx) (*assessModel.AssessmentModel, *access.Policy, error) {
	h, err := orgService.CurrentHierarchy(c.Context(), ctl.DB)
	if err != nil {
		return nil, nil, err
	}
	policy, err := authHelper.PolicyFromToken(c, h)
	if err != nil {
		return nil, nil, err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, nil, errs.Validationf("assessment id is not a valid UUID")
	}

	var a assessModel.AssessmentModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("assessment_id = ?", id).
		First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errs.NotFoundf("assessment %s", id)
		}
		return nil, nil, err
	}
	if !policy.UnitVisible(a.AssessmentOrgUnitID) {
		return nil, nil, errs.Permissionf("assessment %s is outside your scope", a.AssessmentID)
	}
	return &a, policy, nil
}

// Get
// GET /api/a/assessments/:id/impact
func (ctl *ImpactController) Get(c *fiber.Ctx) error {
	a, _, err := ctl.loadVisibleAssessment(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	var row model.ImpactScoreModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("impact_score_assessment_id = ?", a.AssessmentID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.FromDomainError(c, errs.NotFoundf("no impact score recorded for assessment %s", a.AssessmentID))
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load impact score")
	}
	return helper.Success(c, "Impact score fetched", dto.FromImpactModel(&row))
}

// Commit
// PUT /api/a/assessments/:id/impact
//
// One explicit write per form commit. Both scale derivations run server
// side from the submitted facts: the canonical 0–100 components plus the
// historical 0–15 total kept for audit. An incident reported with zero
// recovery hours scores as no incident.
func (ctl *ImpactController) Commit(c *fiber.Ctx) error {
	a, policy, err := ctl.loadVisibleAssessment(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	if !policy.Role.IsUnitRole() {
		return helper.FromDomainError(c, errs.Permissionf("approvers review impact scores, they do not edit them"))
	}
	if !workflow.Status(a.AssessmentStatus).Editable() {
		return helper.FromDomainError(c, errs.Conflictf("assessment is %s and no longer editable", a.AssessmentStatus))
	}
	userID, err := authHelper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	var req dto.CommitImpactRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	severity := scoring.BreachSeverity(req.BreachSeverity)
	if !req.HadBreach {
		severity = scoring.BreachNone
	} else if severity == "" || severity == scoring.BreachNone {
		return helper.FromDomainError(c, errs.Validationf("breach_severity is required when had_breach is true"))
	}

	row := model.ImpactScoreModel{
		ImpactScoreID:             uuid.New(),
		ImpactScoreAssessmentID:   a.AssessmentID,
		ImpactScoreHadIncident:    req.HadIncident,
		ImpactScoreRecoveryHours:  req.RecoveryHours,
		ImpactScoreHadBreach:      req.HadBreach,
		ImpactScoreBreachSeverity: string(severity),
		ImpactScoreFacts:          req.Facts,

		ImpactScoreSchemaVersion:     model.ImpactSchemaCanonical,
		ImpactScoreIncidentComponent: scoring.IncidentComponent(req.HadIncident, req.RecoveryHours),
		ImpactScoreBreachComponent:   scoring.BreachComponent(req.HadBreach, severity),
		ImpactScoreTotal:             scoring.ImpactTotal(req.HadIncident, req.RecoveryHours, req.HadBreach, severity),
		ImpactScoreLegacyTotal:       scoring.LegacyImpactTotal(req.HadIncident, req.RecoveryHours, req.HadBreach, severity),

		ImpactScoreUpdatedBy: userID,
	}

	// Upsert on the one-row-per-assessment unique index.
	err = ctl.DB.WithContext(c.Context()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "impact_score_assessment_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"impact_score_had_incident",
				"impact_score_recovery_hours",
				"impact_score_had_breach",
				"impact_score_breach_severity",
				"impact_score_facts",
				"impact_score_schema_version",
				"impact_score_incident_component",
				"impact_score_breach_component",
				"impact_score_total",
				"impact_score_legacy_total",
				"impact_score_updated_by",
				"impact_score_updated_at",
			}),
		}).
		Create(&row).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to save impact score")
	}

	var saved model.ImpactScoreModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("impact_score_assessment_id = ?", a.AssessmentID).
		First(&saved).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to reload impact score")
	}
	return helper.Success(c, "Impact score committed", dto.FromImpactModel(&saved))
}
