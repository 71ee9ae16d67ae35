// file: internals/features/users/access/policy.go
package access

import (
	"github.com/google/uuid"

	orgService "cyberassess_backend/internals/features/organizations/service"
	"cyberassess_backend/internals/helpers/errs"
)

/* ========================================================
   Role (closed set)
======================================================== */

type Role string

const (
	RoleFacilityIT         Role = "facility_it"
	RoleOfficeIT           Role = "office_it"
	RoleProvincialApprover Role = "provincial_approver"
	RoleRegionalApprover   Role = "regional_approver"
	RoleCentralAdmin       Role = "central_admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleFacilityIT, RoleOfficeIT, RoleProvincialApprover, RoleRegionalApprover, RoleCentralAdmin:
		return Role(s), nil
	}
	return "", errs.Permissionf("unknown role %q", s)
}

// IsUnitRole reports whether the role owns assessments at the leaf level.
func (r Role) IsUnitRole() bool {
	return r == RoleFacilityIT || r == RoleOfficeIT || r == RoleCentralAdmin
}

/* ========================================================
   Scope: exactly one id set, matching the role
======================================================== */

type Scope struct {
	HospitalID     *uuid.UUID
	ProvinceID     *uuid.UUID
	HealthRegionID *uuid.UUID
}

// Validate enforces the profile invariant: the scope field matching the
// role is non-nil and the other two are nil. Central admins carry no scope.
func (s Scope) Validate(role Role) error {
	count := 0
	if s.HospitalID != nil {
		count++
	}
	if s.ProvinceID != nil {
		count++
	}
	if s.HealthRegionID != nil {
		count++
	}

	switch role {
	case RoleFacilityIT, RoleOfficeIT:
		if s.HospitalID == nil || count != 1 {
			return errs.Permissionf("role %s requires exactly a hospital scope", role)
		}
	case RoleProvincialApprover:
		if s.ProvinceID == nil || count != 1 {
			return errs.Permissionf("role %s requires exactly a province scope", role)
		}
	case RoleRegionalApprover:
		if s.HealthRegionID == nil || count != 1 {
			return errs.Permissionf("role %s requires exactly a health-region scope", role)
		}
	case RoleCentralAdmin:
		if count != 0 {
			return errs.Permissionf("role %s carries no organizational scope", role)
		}
	default:
		return errs.Permissionf("unknown role %q", role)
	}
	return nil
}

/* ========================================================
   Drill levels
======================================================== */

type Level int

const (
	LevelRegion Level = iota
	LevelProvince
	LevelUnit
	LevelCategory
)

func (l Level) String() string {
	switch l {
	case LevelRegion:
		return "region"
	case LevelProvince:
		return "province"
	case LevelUnit:
		return "unit"
	case LevelCategory:
		return "category"
	}
	return "unknown"
}

/* ========================================================
   Policy
======================================================== */

// Policy answers every visibility question in the system. Components never
// re-implement role checks; they ask the policy.
type Policy struct {
	Role  Role
	Scope Scope
	H     *orgService.Hierarchy
}

func NewPolicy(role Role, scope Scope, h *orgService.Hierarchy) (*Policy, error) {
	if err := scope.Validate(role); err != nil {
		return nil, err
	}
	return &Policy{Role: role, Scope: scope, H: h}, nil
}

// UnitVisible is the predicate over organizational-unit identifiers.
func (p *Policy) UnitVisible(unitID uuid.UUID) bool {
	switch p.Role {
	case RoleCentralAdmin:
		return true
	case RoleFacilityIT, RoleOfficeIT:
		return p.Scope.HospitalID != nil && *p.Scope.HospitalID == unitID
	case RoleProvincialApprover:
		prov, ok := p.H.ProvinceOfUnit(unitID)
		return ok && p.Scope.ProvinceID != nil && prov == *p.Scope.ProvinceID
	case RoleRegionalApprover:
		region, ok := p.H.RegionOfUnit(unitID)
		return ok && p.Scope.HealthRegionID != nil && region == *p.Scope.HealthRegionID
	}
	return false
}

func (p *Policy) ProvinceVisible(provinceID uuid.UUID) bool {
	switch p.Role {
	case RoleCentralAdmin:
		return true
	case RoleProvincialApprover:
		return p.Scope.ProvinceID != nil && *p.Scope.ProvinceID == provinceID
	case RoleRegionalApprover:
		region, ok := p.H.ProvinceRegion[provinceID]
		return ok && p.Scope.HealthRegionID != nil && region == *p.Scope.HealthRegionID
	case RoleFacilityIT, RoleOfficeIT:
		if p.Scope.HospitalID == nil {
			return false
		}
		prov, ok := p.H.ProvinceOfUnit(*p.Scope.HospitalID)
		return ok && prov == provinceID
	}
	return false
}

func (p *Policy) RegionVisible(regionID uuid.UUID) bool {
	switch p.Role {
	case RoleCentralAdmin:
		return true
	case RoleRegionalApprover:
		return p.Scope.HealthRegionID != nil && *p.Scope.HealthRegionID == regionID
	case RoleProvincialApprover:
		if p.Scope.ProvinceID == nil {
			return false
		}
		region, ok := p.H.ProvinceRegion[*p.Scope.ProvinceID]
		return ok && region == regionID
	case RoleFacilityIT, RoleOfficeIT:
		if p.Scope.HospitalID == nil {
			return false
		}
		region, ok := p.H.RegionOfUnit(*p.Scope.HospitalID)
		return ok && region == regionID
	}
	return false
}

// CanApprove answers the role half of a workflow action; the transition
// table still checks the from-status. Submit counts as the unit's own
// "approval" of its draft.
func (p *Policy) CanApprove(action string) bool {
	switch action {
	case "submit":
		return p.Role.IsUnitRole()
	case "approve_provincial", "return_provincial":
		return p.Role == RoleProvincialApprover
	case "approve_regional", "return_regional":
		return p.Role == RoleRegionalApprover
	}
	return false
}

// VisibleUnitIDs enumerates the units the policy can see, for pushing the
// scope into a SQL IN clause. The second return is false for central
// admins, whose queries carry no unit filter at all.
func (p *Policy) VisibleUnitIDs() ([]uuid.UUID, bool) {
	switch p.Role {
	case RoleCentralAdmin:
		return nil, false
	case RoleFacilityIT, RoleOfficeIT:
		if p.Scope.HospitalID == nil {
			return []uuid.UUID{}, true
		}
		return []uuid.UUID{*p.Scope.HospitalID}, true
	case RoleProvincialApprover:
		if p.Scope.ProvinceID == nil {
			return []uuid.UUID{}, true
		}
		return p.H.UnitsOfProvince(*p.Scope.ProvinceID), true
	case RoleRegionalApprover:
		if p.Scope.HealthRegionID == nil {
			return []uuid.UUID{}, true
		}
		var out []uuid.UUID
		for _, prov := range p.H.ProvincesOfRegion(*p.Scope.HealthRegionID) {
			out = append(out, p.H.UnitsOfProvince(prov)...)
		}
		return out, true
	}
	return []uuid.UUID{}, true
}

// HomeLevel is the drill level the role is pinned to; navigating above it
// is rejected, not merely hidden.
func (p *Policy) HomeLevel() Level {
	switch p.Role {
	case RoleCentralAdmin, RoleRegionalApprover:
		return LevelRegion
	case RoleProvincialApprover:
		return LevelProvince
	default:
		return LevelUnit
	}
}
