// file: internals/features/organizations/controller/org_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "cyberassess_backend/internals/features/organizations/model"
	helper "cyberassess_backend/internals/helpers"
)

// OrgController serves the public reference listings the registration and
// filter UIs need. Read-only; the org tree is administered out of band.
type OrgController struct {
	DB *gorm.DB
}

func NewOrgController(db *gorm.DB) *OrgController {
	return &OrgController{DB: db}
}

// ListRegions
// GET /api/public/orgs/regions
func (ctl *OrgController) ListRegions(c *fiber.Ctx) error {
	var rows []model.HealthRegionModel
	if err := ctl.DB.WithContext(c.Context()).
		Order("health_region_code ASC").
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list health regions")
	}
	return helper.Success(c, "Health regions fetched", rows)
}

// ListProvinces
// GET /api/public/orgs/provinces?region_id=
func (ctl *OrgController) ListProvinces(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.Context()).Model(&model.ProvinceModel{})
	if raw := strings.TrimSpace(c.Query("region_id")); raw != "" {
		regionID, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "region_id is not a valid UUID")
		}
		q = q.Where("province_health_region_id = ?", regionID)
	}

	var rows []model.ProvinceModel
	if err := q.Order("province_code ASC").Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list provinces")
	}
	return helper.Success(c, "Provinces fetched", rows)
}

// ListUnits
// GET /api/public/orgs/units?province_id=&type=
func (ctl *OrgController) ListUnits(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.Context()).Model(&model.OrgUnitModel{})
	if raw := strings.TrimSpace(c.Query("province_id")); raw != "" {
		provinceID, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "province_id is not a valid UUID")
		}
		q = q.Where("org_unit_province_id = ?", provinceID)
	}
	if t := strings.TrimSpace(c.Query("type")); t != "" {
		if t != model.OrgUnitTypeHospital && t != model.OrgUnitTypeHealthOffice {
			return helper.Error(c, fiber.StatusBadRequest, "type must be hospital or health_office")
		}
		q = q.Where("org_unit_type = ?", t)
	}

	var rows []model.OrgUnitModel
	if err := q.Order("org_unit_code ASC").Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list org units")
	}
	return helper.Success(c, "Org units fetched", rows)
}
