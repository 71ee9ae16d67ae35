// file: internals/features/users/profile/controller/profile_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	orgService "cyberassess_backend/internals/features/organizations/service"
	model "cyberassess_backend/internals/features/users/profile/model"
	helper "cyberassess_backend/internals/helpers"
	authHelper "cyberassess_backend/internals/helpers/auth"
	"cyberassess_backend/internals/helpers/errs"
)

type ProfileController struct {
	DB *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

// Me
// GET /api/u/profile
//
// Returns the caller's profile row plus resolved scope names, so the
// client never needs a second lookup to render "Provincial approver,
// Chiang Mai".
func (ctl *ProfileController) Me(c *fiber.Ctx) error {
	userID, err := authHelper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	var p model.ProfileModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("profile_user_id = ?", userID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.FromDomainError(c, errs.NotFoundf("no profile for user %s", userID))
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load profile")
	}

	scope := fiber.Map{}
	if h, err := orgService.CurrentHierarchy(c.Context(), ctl.DB); err == nil {
		if p.ProfileHospitalID != nil {
			scope["org_unit_id"] = p.ProfileHospitalID
			scope["org_unit_name"] = h.UnitName[*p.ProfileHospitalID]
		}
		if p.ProfileProvinceID != nil {
			scope["province_id"] = p.ProfileProvinceID
			scope["province_name"] = h.ProvinceName[*p.ProfileProvinceID]
		}
		if p.ProfileHealthRegionID != nil {
			scope["health_region_id"] = p.ProfileHealthRegionID
			scope["health_region_name"] = h.RegionName[*p.ProfileHealthRegionID]
		}
	}

	return helper.Success(c, "Profile fetched", fiber.Map{
		"profile": p,
		"scope":   scope,
	})
}
