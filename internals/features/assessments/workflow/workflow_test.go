package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cyberassess_backend/internals/features/users/access"
	"cyberassess_backend/internals/helpers/errs"
)

var allRoles = []access.Role{
	access.RoleFacilityIT,
	access.RoleOfficeIT,
	access.RoleProvincialApprover,
	access.RoleRegionalApprover,
	access.RoleCentralAdmin,
}

// The full table of valid (role, from, action) → to triples. Everything
// outside this table must be rejected.
var validTriples = []struct {
	role   access.Role
	from   Status
	action Action
	to     Status
}{
	{access.RoleFacilityIT, StatusDraft, ActionSubmit, StatusSubmitted},
	{access.RoleFacilityIT, StatusReturned, ActionSubmit, StatusSubmitted},
	{access.RoleOfficeIT, StatusDraft, ActionSubmit, StatusSubmitted},
	{access.RoleOfficeIT, StatusReturned, ActionSubmit, StatusSubmitted},
	{access.RoleCentralAdmin, StatusDraft, ActionSubmit, StatusSubmitted},
	{access.RoleCentralAdmin, StatusReturned, ActionSubmit, StatusSubmitted},
	{access.RoleProvincialApprover, StatusSubmitted, ActionApproveProvincial, StatusApprovedProvincial},
	{access.RoleProvincialApprover, StatusSubmitted, ActionReturnProvincial, StatusReturned},
	{access.RoleRegionalApprover, StatusApprovedProvincial, ActionApproveRegional, StatusApprovedRegional},
	{access.RoleRegionalApprover, StatusApprovedProvincial, ActionReturnRegional, StatusReturned},
}

func TestResolveValidTriples(t *testing.T) {
	for _, tc := range validTriples {
		to, err := Resolve(tc.role, tc.from, tc.action, Options{})
		require.NoError(t, err, "%s/%s/%s", tc.role, tc.from, tc.action)
		assert.Equal(t, tc.to, to)
	}
}

func TestResolveRejectsEverythingElse(t *testing.T) {
	isValid := func(role access.Role, from Status, action Action) bool {
		for _, tc := range validTriples {
			if tc.role == role && tc.from == from && tc.action == action {
				return true
			}
		}
		return false
	}

	for _, role := range allRoles {
		for _, from := range Statuses() {
			for _, action := range Actions() {
				if isValid(role, from, action) {
					continue
				}
				_, err := Resolve(role, from, action, Options{})
				require.Error(t, err, "%s/%s/%s must be rejected", role, from, action)
			}
		}
	}
}

func TestResolveErrorKinds(t *testing.T) {
	// Wrong role for the edge → permission error.
	_, err := Resolve(access.RoleFacilityIT, StatusSubmitted, ActionApproveProvincial, Options{})
	assert.ErrorIs(t, err, errs.ErrPermission)

	// Right role, wrong from-state → conflict (stale-read guard).
	_, err = Resolve(access.RoleProvincialApprover, StatusDraft, ActionApproveProvincial, Options{})
	assert.ErrorIs(t, err, errs.ErrConflict)
}

// A regional approver attempting approval while the assessment is still in
// `submitted` must be rejected: that role's edge starts at
// approved_provincial.
func TestRegionalApproverOnSubmittedIsRejected(t *testing.T) {
	_, err := Resolve(access.RoleRegionalApprover, StatusSubmitted, ActionApproveRegional, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestRegionalApproveCanComplete(t *testing.T) {
	to, err := Resolve(access.RoleRegionalApprover, StatusApprovedProvincial, ActionApproveRegional,
		Options{RegionalApproveCompletes: true})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, to)
}

func TestApprovedStatuses(t *testing.T) {
	got := ApprovedStatuses()
	assert.ElementsMatch(t, []string{"approved_provincial", "approved_regional"}, got)
	assert.NotContains(t, got, "draft")
	assert.NotContains(t, got, "submitted")
	assert.NotContains(t, got, "returned")
}

func TestEditable(t *testing.T) {
	assert.True(t, StatusDraft.Editable())
	assert.True(t, StatusReturned.Editable())
	assert.False(t, StatusSubmitted.Editable())
	assert.False(t, StatusApprovedProvincial.Editable())
	assert.False(t, StatusApprovedRegional.Editable())
	assert.False(t, StatusCompleted.Editable())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("approved_provincial")
	require.NoError(t, err)
	assert.Equal(t, StatusApprovedProvincial, s)

	_, err = ParseStatus("half_approved")
	assert.ErrorIs(t, err, errs.ErrValidation)
}
