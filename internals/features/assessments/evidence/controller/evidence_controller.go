// file: internals/features/assessments/evidence/controller/evidence_controller.go
package controller

import (
	"errors"
	"io"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	assessModel "cyberassess_backend/internals/features/assessments/assessments/model"
	model "cyberassess_backend/internals/features/assessments/evidence/model"
	evidenceService "cyberassess_backend/internals/features/assessments/evidence/service"
	"cyberassess_backend/internals/features/assessments/workflow"
	orgService "cyberassess_backend/internals/features/organizations/service"
	"cyberassess_backend/internals/features/users/access"
	helper "cyberassess_backend/internals/helpers"
	authHelper "cyberassess_backend/internals/helpers/auth"
	"cyberassess_backend/internals/helpers/errs"
	ossHelper "cyberassess_backend/internals/helpers/oss"
)

type EvidenceController struct {
	DB      *gorm.DB
	Service *evidenceService.Service
}

// NewEvidenceController builds the controller with its OSS-backed
// service. A missing OSS configuration is fatal at startup, not at the
// first upload.
func NewEvidenceController(db *gorm.DB) *EvidenceController {
	// Empty prefix: the evidence service builds full keys itself, so the
	// stored blob_key matches the raw object key the orphan reaper lists.
	blob, err := ossHelper.NewOSSBlobServiceFromEnv("")
	if err != nil {
		log.Printf("[EVIDENCE] ❌ OSS init failed: %v", err)
		panic(err)
	}
	svc := evidenceService.NewService(
		blob,
		evidenceService.NewMetadataStore(db),
		evidenceService.NoopSession{},
	)
	return &EvidenceController{DB: db, Service: svc}
}

// parseOwner resolves the owning item or impact field. The item route
// carries the owner in the path; the generic routes carry it as
// owner_kind + owner_id form/query values.
func parseOwner(c *fiber.Ctx, assessmentID uuid.UUID) (evidenceService.OwnerContext, error) {
	if raw := c.Params("item_id"); raw != "" {
		itemID, err := uuid.Parse(raw)
		if err != nil {
			return evidenceService.OwnerContext{}, errs.Validationf("item id is not a valid UUID")
		}
		return evidenceService.OwnerContext{
			AssessmentID: assessmentID,
			OwnerKind:    model.EvidenceOwnerItem,
			OwnerID:      itemID,
		}, nil
	}

	kind := strings.TrimSpace(c.FormValue("owner_kind", c.Query("owner_kind")))
	if kind != model.EvidenceOwnerItem && kind != model.EvidenceOwnerImpactField {
		return evidenceService.OwnerContext{}, errs.Validationf("owner_kind must be %s or %s", model.EvidenceOwnerItem, model.EvidenceOwnerImpactField)
	}
	rawID := strings.TrimSpace(c.FormValue("owner_id", c.Query("owner_id")))
	ownerID, err := uuid.Parse(rawID)
	if err != nil {
		return evidenceService.OwnerContext{}, errs.Validationf("owner_id is not a valid UUID")
	}
	return evidenceService.OwnerContext{
		AssessmentID: assessmentID,
		OwnerKind:    kind,
		OwnerID:      ownerID,
	}, nil
}

func (ctl *EvidenceController) loadVisibleAssessment(c *fiber.Ctx) (*assessModel.AssessmentModel, *access.Policy, error) {
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

// Upload
// POST /api/a/assessments/:id/items/:item_id/evidence  (multipart: file)
// POST /api/a/assessments/:id/evidence                 (multipart: file, owner_kind, owner_id)
func (ctl *EvidenceController) Upload(c *fiber.Ctx) error {
	a, policy, err := ctl.loadVisibleAssessment(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	if !policy.Role.IsUnitRole() {
		return helper.FromDomainError(c, errs.Permissionf("approvers review evidence, they do not upload it"))
	}
	if !workflow.Status(a.AssessmentStatus).Editable() {
		return helper.FromDomainError(c, errs.Conflictf("assessment is %s, evidence is frozen", a.AssessmentStatus))
	}
	userID, err := authHelper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	owner, err := parseOwner(c, a.AssessmentID)
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "failed to read file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "failed to read file")
	}

	row, err := ctl.Service.Upload(c.Context(), evidenceService.UploadInput{
		FileName:    fh.Filename,
		Data:        data,
		ContentType: fh.Header.Get("Content-Type"),
		Owner:       owner,
		UploadedBy:  userID,
	})
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Evidence uploaded", row)
}

// List
// GET /api/a/assessments/:id/evidence?owner_kind=&owner_id=
//
// On storage trouble the listing degrades instead of failing: an empty
// set with degraded=true tells the client to offer a retry.
func (ctl *EvidenceController) List(c *fiber.Ctx) error {
	a, _, err := ctl.loadVisibleAssessment(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	owner, err := parseOwner(c, a.AssessmentID)
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	rows, degraded, err := ctl.Service.ListForOwner(c.Context(), owner)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.Success(c, "Evidence listed", fiber.Map{
		"items":    rows,
		"degraded": degraded,
	})
}

// loadVisibleFile resolves a file by id alone and checks visibility
// through its owning assessment, so download/delete routes do not need
// the assessment in the path.
func (ctl *EvidenceController) loadVisibleFile(c *fiber.Ctx) (*model.EvidenceFileModel, *access.Policy, error) {
	h, err := orgService.CurrentHierarchy(c.Context(), ctl.DB)
	if err != nil {
		return nil, nil, err
	}
	policy, err := authHelper.PolicyFromToken(c, h)
	if err != nil {
		return nil, nil, err
	}

	fileID, err := uuid.Parse(c.Params("file_id"))
	if err != nil {
		return nil, nil, errs.Validationf("file id is not a valid UUID")
	}

	var row model.EvidenceFileModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("evidence_file_id = ?", fileID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errs.NotFoundf("evidence file %s", fileID)
		}
		return nil, nil, err
	}

	var a assessModel.AssessmentModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("assessment_id = ?", row.EvidenceFileAssessmentID).
		First(&a).Error; err != nil {
		return nil, nil, err
	}
	if !policy.UnitVisible(a.AssessmentOrgUnitID) {
		return nil, nil, errs.Permissionf("evidence file %s is outside your scope", fileID)
	}
	return &row, policy, nil
}

// Download
// GET /api/a/evidence/:file_id/download
func (ctl *EvidenceController) Download(c *fiber.Ctx) error {
	row, _, err := ctl.loadVisibleFile(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	meta, data, err := ctl.Service.Download(c.Context(), row.EvidenceFileID)
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	c.Set(fiber.HeaderContentType, meta.EvidenceFileContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+meta.EvidenceFileName+`"`)
	return c.Send(data)
}

// Delete
// DELETE /api/a/evidence/:file_id
func (ctl *EvidenceController) Delete(c *fiber.Ctx) error {
	row, policy, err := ctl.loadVisibleFile(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	if !policy.Role.IsUnitRole() {
		return helper.FromDomainError(c, errs.Permissionf("approvers review evidence, they do not delete it"))
	}

	if err := ctl.Service.Delete(c.Context(), row.EvidenceFileID); err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.Success(c, "Evidence deleted", fiber.Map{"evidence_file_id": row.EvidenceFileID})
}
