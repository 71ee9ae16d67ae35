package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orgService "cyberassess_backend/internals/features/organizations/service"
)

var (
	region1 = uuid.New()
	region2 = uuid.New()
	provA   = uuid.New() // in region1
	provB   = uuid.New() // in region1
	provC   = uuid.New() // in region2
	unitA1  = uuid.New() // in provA
	unitA2  = uuid.New() // in provA
	unitB1  = uuid.New() // in provB
	unitC1  = uuid.New() // in provC
)

func testHierarchy() *orgService.Hierarchy {
	return &orgService.Hierarchy{
		UnitProvince: map[uuid.UUID]uuid.UUID{
			unitA1: provA, unitA2: provA, unitB1: provB, unitC1: provC,
		},
		ProvinceRegion: map[uuid.UUID]uuid.UUID{
			provA: region1, provB: region1, provC: region2,
		},
		UnitName:     map[uuid.UUID]string{},
		ProvinceName: map[uuid.UUID]string{},
		RegionName:   map[uuid.UUID]string{},
	}
}

func mustPolicy(t *testing.T, role Role, scope Scope) *Policy {
	t.Helper()
	p, err := NewPolicy(role, scope, testHierarchy())
	require.NoError(t, err)
	return p
}

func TestScopeValidate(t *testing.T) {
	h := unitA1
	p := provA
	r := region1

	require.NoError(t, Scope{HospitalID: &h}.Validate(RoleFacilityIT))
	require.NoError(t, Scope{ProvinceID: &p}.Validate(RoleProvincialApprover))
	require.NoError(t, Scope{HealthRegionID: &r}.Validate(RoleRegionalApprover))
	require.NoError(t, Scope{}.Validate(RoleCentralAdmin))

	// Scope field not matching the role.
	assert.Error(t, Scope{ProvinceID: &p}.Validate(RoleFacilityIT))
	assert.Error(t, Scope{HospitalID: &h}.Validate(RoleRegionalApprover))
	// More than one scope set.
	assert.Error(t, Scope{HospitalID: &h, ProvinceID: &p}.Validate(RoleFacilityIT))
	// Central admins carry no scope.
	assert.Error(t, Scope{HospitalID: &h}.Validate(RoleCentralAdmin))
	// No scope at all for a scoped role.
	assert.Error(t, Scope{}.Validate(RoleProvincialApprover))
}

func TestFacilityVisibility(t *testing.T) {
	h := unitA1
	p := mustPolicy(t, RoleFacilityIT, Scope{HospitalID: &h})

	assert.True(t, p.UnitVisible(unitA1))
	assert.False(t, p.UnitVisible(unitA2))
	assert.True(t, p.ProvinceVisible(provA))
	assert.False(t, p.ProvinceVisible(provB))
	assert.True(t, p.RegionVisible(region1))
	assert.False(t, p.RegionVisible(region2))
	assert.Equal(t, LevelUnit, p.HomeLevel())
}

func TestProvincialVisibility(t *testing.T) {
	pa := provA
	p := mustPolicy(t, RoleProvincialApprover, Scope{ProvinceID: &pa})

	assert.True(t, p.UnitVisible(unitA1))
	assert.True(t, p.UnitVisible(unitA2))
	assert.False(t, p.UnitVisible(unitB1), "sibling province in the same region stays hidden")
	assert.False(t, p.UnitVisible(unitC1))
	assert.True(t, p.ProvinceVisible(provA))
	assert.False(t, p.ProvinceVisible(provB))
	assert.True(t, p.RegionVisible(region1))
	assert.Equal(t, LevelProvince, p.HomeLevel())
}

func TestRegionalVisibility(t *testing.T) {
	r := region1
	p := mustPolicy(t, RoleRegionalApprover, Scope{HealthRegionID: &r})

	assert.True(t, p.UnitVisible(unitA1))
	assert.True(t, p.UnitVisible(unitB1))
	assert.False(t, p.UnitVisible(unitC1))
	assert.True(t, p.ProvinceVisible(provA))
	assert.True(t, p.ProvinceVisible(provB))
	assert.False(t, p.ProvinceVisible(provC))
	assert.True(t, p.RegionVisible(region1))
	assert.False(t, p.RegionVisible(region2))
	assert.Equal(t, LevelRegion, p.HomeLevel())
}

func TestCentralSeesEverything(t *testing.T) {
	p := mustPolicy(t, RoleCentralAdmin, Scope{})

	for _, u := range []uuid.UUID{unitA1, unitA2, unitB1, unitC1} {
		assert.True(t, p.UnitVisible(u))
	}
	assert.True(t, p.RegionVisible(region2))
	assert.Equal(t, LevelRegion, p.HomeLevel())
}

func TestUnknownUnitIsInvisible(t *testing.T) {
	r := region1
	p := mustPolicy(t, RoleRegionalApprover, Scope{HealthRegionID: &r})
	assert.False(t, p.UnitVisible(uuid.New()))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("provincial_approver")
	require.NoError(t, err)
	assert.Equal(t, RoleProvincialApprover, r)

	_, err = ParseRole("superuser")
	assert.Error(t, err)
}

func TestCanApprove(t *testing.T) {
	h := unitA1
	p := provA
	r := region1

	facility := mustPolicy(t, RoleFacilityIT, Scope{HospitalID: &h})
	provincial := mustPolicy(t, RoleProvincialApprover, Scope{ProvinceID: &p})
	regional := mustPolicy(t, RoleRegionalApprover, Scope{HealthRegionID: &r})
	central := mustPolicy(t, RoleCentralAdmin, Scope{})

	assert.True(t, facility.CanApprove("submit"))
	assert.True(t, central.CanApprove("submit"))
	assert.False(t, provincial.CanApprove("submit"))

	assert.True(t, provincial.CanApprove("approve_provincial"))
	assert.True(t, provincial.CanApprove("return_provincial"))
	assert.False(t, provincial.CanApprove("approve_regional"))

	assert.True(t, regional.CanApprove("approve_regional"))
	assert.True(t, regional.CanApprove("return_regional"))
	assert.False(t, regional.CanApprove("approve_provincial"))

	assert.False(t, central.CanApprove("approve_provincial"))
	assert.False(t, facility.CanApprove("made_up_action"))
}

func TestVisibleUnitIDs(t *testing.T) {
	h := unitA1
	p := provA
	r := region1

	ids, restricted := mustPolicy(t, RoleFacilityIT, Scope{HospitalID: &h}).VisibleUnitIDs()
	assert.True(t, restricted)
	assert.Equal(t, []uuid.UUID{unitA1}, ids)

	ids, restricted = mustPolicy(t, RoleProvincialApprover, Scope{ProvinceID: &p}).VisibleUnitIDs()
	assert.True(t, restricted)
	assert.ElementsMatch(t, []uuid.UUID{unitA1, unitA2}, ids)

	ids, restricted = mustPolicy(t, RoleRegionalApprover, Scope{HealthRegionID: &r}).VisibleUnitIDs()
	assert.True(t, restricted)
	assert.ElementsMatch(t, []uuid.UUID{unitA1, unitA2, unitB1}, ids)

	ids, restricted = mustPolicy(t, RoleCentralAdmin, Scope{}).VisibleUnitIDs()
	assert.False(t, restricted, "central queries carry no unit filter")
	assert.Nil(t, ids)
}
