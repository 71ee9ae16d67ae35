package constants

import "fmt"

// Role strings as persisted on profiles and carried in JWT claims.
const (
	RoleFacilityIT         = "facility_it"
	RoleOfficeIT           = "office_it"
	RoleProvincialApprover = "provincial_approver"
	RoleRegionalApprover   = "regional_approver"
	RoleCentralAdmin       = "central_admin"
)

// Role error message templates
const (
	ErrOnlyApproversCanAccess = "❌ Only provincial or regional approvers may access %s."
	ErrOnlyAdminsCanAccess    = "❌ Only central administrators may access %s."
	ErrOnlyUnitsCanAccess     = "❌ Only facility or health-office staff may access %s."
)

func RoleErrorApprover(feature string) string {
	return fmt.Sprintf(ErrOnlyApproversCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorUnit(feature string) string {
	return fmt.Sprintf(ErrOnlyUnitsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleFacilityIT,
		RoleOfficeIT,
		RoleProvincialApprover,
		RoleRegionalApprover,
		RoleCentralAdmin,
	}

	// Roles that own and edit assessments at the leaf level.
	UnitRoles = []string{
		RoleFacilityIT,
		RoleOfficeIT,
		RoleCentralAdmin,
	}

	ApproverRoles = []string{
		RoleProvincialApprover,
		RoleRegionalApprover,
	}

	ApproverAndAbove = []string{
		RoleProvincialApprover,
		RoleRegionalApprover,
		RoleCentralAdmin,
	}

	AdminOnly = []string{
		RoleCentralAdmin,
	}
)
