package aggregate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cyberassess_backend/internals/features/users/access"
	"cyberassess_backend/internals/helpers/errs"
)

func centralPolicy(t *testing.T, f fixture) *access.Policy {
	t.Helper()
	p, err := access.NewPolicy(access.RoleCentralAdmin, access.Scope{}, f.h)
	require.NoError(t, err)
	return p
}

func provincialPolicy(t *testing.T, f fixture, prov uuid.UUID) *access.Policy {
	t.Helper()
	p, err := access.NewPolicy(access.RoleProvincialApprover, access.Scope{ProvinceID: &prov}, f.h)
	require.NoError(t, err)
	return p
}

func TestCursorDrillsTheFullPath(t *testing.T) {
	f := newFixture()
	c := NewCursor(centralPolicy(t, f), f.h)
	assert.Equal(t, access.LevelRegion, c.Level())

	require.NoError(t, c.EnterRegion(f.region))
	assert.Equal(t, access.LevelProvince, c.Level())

	require.NoError(t, c.EnterProvince(f.provs[1]))
	assert.Equal(t, access.LevelUnit, c.Level())

	require.NoError(t, c.EnterUnit(f.units[1][0]))
	assert.Equal(t, access.LevelCategory, c.Level())
	assert.Equal(t, f.units[1][0], c.UnitID())
}

func TestCursorRejectsSkippingLevels(t *testing.T) {
	f := newFixture()
	c := NewCursor(centralPolicy(t, f), f.h)

	err := c.EnterProvince(f.provs[0])
	assert.ErrorIs(t, err, errs.ErrValidation)

	err = c.EnterUnit(f.units[0][0])
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestCursorRejectsOutOfScopeSelection(t *testing.T) {
	f := newFixture()
	own := f.provs[0]
	other := f.provs[1]
	c := NewCursor(provincialPolicy(t, f, own), f.h)

	// Provincial approvers start inside their own province.
	assert.Equal(t, access.LevelProvince, c.Level())
	assert.Equal(t, own, c.ProvinceID())

	err := c.EnterProvince(other)
	assert.ErrorIs(t, err, errs.ErrPermission)

	// A unit of another province is rejected even after a valid drill.
	require.NoError(t, c.EnterProvince(own))
	err = c.EnterUnit(f.units[1][0])
	assert.ErrorIs(t, err, errs.ErrValidation, "containment check fires before the policy check")
}

func TestCursorRejectsUnitsOutsideTheHierarchy(t *testing.T) {
	f := newFixture()
	c := NewCursor(centralPolicy(t, f), f.h)
	require.NoError(t, c.EnterRegion(f.region))
	require.NoError(t, c.EnterProvince(f.provs[0]))

	err := c.EnterUnit(uuid.New())
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestBackStopsAtHomeLevel(t *testing.T) {
	f := newFixture()
	own := f.provs[2]
	c := NewCursor(provincialPolicy(t, f, own), f.h)

	require.NoError(t, c.EnterProvince(own))
	require.NoError(t, c.EnterUnit(f.units[2][1]))
	assert.Equal(t, access.LevelCategory, c.Level())

	require.NoError(t, c.Back())
	assert.Equal(t, access.LevelUnit, c.Level())
	assert.Equal(t, uuid.Nil, c.UnitID())

	require.NoError(t, c.Back())
	assert.Equal(t, access.LevelProvince, c.Level())

	// The home level is a hard floor, not a hidden page.
	err := c.Back()
	assert.ErrorIs(t, err, errs.ErrPermission)
	assert.Equal(t, access.LevelProvince, c.Level())
}

func TestCentralAdminCanWalkEveryBranch(t *testing.T) {
	f := newFixture()
	c := NewCursor(centralPolicy(t, f), f.h)

	for i, prov := range f.provs {
		require.NoError(t, c.EnterRegion(f.region))
		require.NoError(t, c.EnterProvince(prov))
		for _, u := range f.units[i] {
			require.NoError(t, c.EnterUnit(u))
			require.NoError(t, c.Back())
		}
		require.NoError(t, c.Back())
		require.NoError(t, c.Back())
		assert.Equal(t, access.LevelRegion, c.Level())
	}
}
