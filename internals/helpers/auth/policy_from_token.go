// file: internals/helpers/auth/policy_from_token.go
package helper

import (
	"github.com/gofiber/fiber/v2"

	orgService "cyberassess_backend/internals/features/organizations/service"
	"cyberassess_backend/internals/features/users/access"
)

// PolicyFromToken assembles the caller's access policy from the claims the
// auth middleware stored in Locals. Controllers call this once per request
// and pass the policy down; nothing below the controller reads Locals.
func PolicyFromToken(c *fiber.Ctx, h *orgService.Hierarchy) (*access.Policy, error) {
	rawRole, err := GetRoleFromToken(c)
	if err != nil {
		return nil, err
	}
	role, err := access.ParseRole(rawRole)
	if err != nil {
		return nil, err
	}

	hospitalID, provinceID, regionID := GetScopeIDsFromToken(c)
	return access.NewPolicy(role, access.Scope{
		HospitalID:     hospitalID,
		ProvinceID:     provinceID,
		HealthRegionID: regionID,
	}, h)
}
