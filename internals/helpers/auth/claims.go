package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys populated by the auth middleware.
const (
	LocalsUserID   = "user_id"
	LocalsUserRole = "userRole"
	LocalsHospital = "hospital_id"
	LocalsProvince = "province_id"
	LocalsRegion   = "health_region_id"
)

// GetUserIDFromToken reads the authenticated user id stored by the auth middleware.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals(LocalsUserID).(string)
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id missing from token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id in token is not a valid UUID")
	}
	return id, nil
}

func GetRoleFromToken(c *fiber.Ctx) (string, error) {
	role, _ := c.Locals(LocalsUserRole).(string)
	if role == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "role missing from token")
	}
	return role, nil
}

// GetScopeIDsFromToken returns the organizational scope claims. Exactly one of
// the three is non-nil for a well-formed token (matching the role); validation
// of that invariant belongs to the access policy, not here.
func GetScopeIDsFromToken(c *fiber.Ctx) (hospitalID, provinceID, regionID *uuid.UUID) {
	return localUUID(c, LocalsHospital), localUUID(c, LocalsProvince), localUUID(c, LocalsRegion)
}

func localUUID(c *fiber.Ctx, key string) *uuid.UUID {
	raw, _ := c.Locals(key).(string)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return nil
	}
	return &id
}
