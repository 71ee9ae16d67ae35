// file: internals/features/reports/aggregate/drill.go
package aggregate

import (
	"github.com/google/uuid"

	orgService "cyberassess_backend/internals/features/organizations/service"
	"cyberassess_backend/internals/features/users/access"
	"cyberassess_backend/internals/helpers/errs"
)

// Cursor is the drill-down navigation state: region → province → unit →
// category, one level at a time. Every entry is policy-checked, so a
// request for a province or unit outside the caller's scope is rejected
// even if the underlying data was already fetched.
type Cursor struct {
	policy *access.Policy
	h      *orgService.Hierarchy

	level      access.Level
	regionID   uuid.UUID
	provinceID uuid.UUID
	unitID     uuid.UUID
}

// NewCursor starts at the role's home level with the scope path pinned:
// a provincial approver begins inside their own province, a facility user
// inside their own unit.
func NewCursor(policy *access.Policy, h *orgService.Hierarchy) *Cursor {
	c := &Cursor{policy: policy, h: h, level: policy.HomeLevel()}

	switch policy.Role {
	case access.RoleRegionalApprover:
		if policy.Scope.HealthRegionID != nil {
			c.regionID = *policy.Scope.HealthRegionID
		}
	case access.RoleProvincialApprover:
		if policy.Scope.ProvinceID != nil {
			c.provinceID = *policy.Scope.ProvinceID
			if region, ok := h.ProvinceRegion[c.provinceID]; ok {
				c.regionID = region
			}
		}
	case access.RoleFacilityIT, access.RoleOfficeIT:
		if policy.Scope.HospitalID != nil {
			c.unitID = *policy.Scope.HospitalID
			if prov, ok := h.ProvinceOfUnit(c.unitID); ok {
				c.provinceID = prov
			}
			if region, ok := h.RegionOfUnit(c.unitID); ok {
				c.regionID = region
			}
		}
	}
	return c
}

func (c *Cursor) Level() access.Level   { return c.level }
func (c *Cursor) RegionID() uuid.UUID   { return c.regionID }
func (c *Cursor) ProvinceID() uuid.UUID { return c.provinceID }
func (c *Cursor) UnitID() uuid.UUID     { return c.unitID }

// EnterRegion drills from the region list into one region.
func (c *Cursor) EnterRegion(regionID uuid.UUID) error {
	if c.level != access.LevelRegion {
		return errs.Validationf("cannot enter a region from the %s level", c.level)
	}
	if !c.policy.RegionVisible(regionID) {
		return errs.Permissionf("region %s is outside your scope", regionID)
	}
	c.regionID = regionID
	c.level = access.LevelProvince
	return nil
}

// EnterProvince drills into one province of the selected region.
func (c *Cursor) EnterProvince(provinceID uuid.UUID) error {
	if c.level != access.LevelProvince {
		return errs.Validationf("cannot enter a province from the %s level", c.level)
	}
	if region, ok := c.h.ProvinceRegion[provinceID]; !ok || region != c.regionID {
		return errs.Validationf("province %s is not in the selected region", provinceID)
	}
	if !c.policy.ProvinceVisible(provinceID) {
		return errs.Permissionf("province %s is outside your scope", provinceID)
	}
	c.provinceID = provinceID
	c.level = access.LevelUnit
	return nil
}

// EnterUnit drills into one unit's category detail.
func (c *Cursor) EnterUnit(unitID uuid.UUID) error {
	if c.level != access.LevelUnit {
		return errs.Validationf("cannot enter a unit from the %s level", c.level)
	}
	if prov, ok := c.h.ProvinceOfUnit(unitID); !ok || prov != c.provinceID {
		return errs.Validationf("unit %s is not in the selected province", unitID)
	}
	if !c.policy.UnitVisible(unitID) {
		return errs.Permissionf("unit %s is outside your scope", unitID)
	}
	c.unitID = unitID
	c.level = access.LevelCategory
	return nil
}

// Back undoes exactly one drill level. It is disabled at the role's home
// level: a provincial approver never navigates above their own province.
func (c *Cursor) Back() error {
	if c.level <= c.policy.HomeLevel() {
		return errs.Permissionf("already at the top level for your role")
	}
	switch c.level {
	case access.LevelCategory:
		c.unitID = uuid.Nil
		c.level = access.LevelUnit
	case access.LevelUnit:
		c.provinceID = uuid.Nil
		c.level = access.LevelProvince
	case access.LevelProvince:
		c.regionID = uuid.Nil
		c.level = access.LevelRegion
	}
	return nil
}
