// file: internals/features/organizations/service/hierarchy.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "cyberassess_backend/internals/features/organizations/model"
)

// Hierarchy is an immutable snapshot of the org tree: unit → province →
// region. Reports and access checks resolve ancestry through it instead of
// issuing per-row lookups. Rebuild it per refresh; never mutate a shared one.
type Hierarchy struct {
	UnitProvince   map[uuid.UUID]uuid.UUID // unit id   → province id
	ProvinceRegion map[uuid.UUID]uuid.UUID // province  → region id

	UnitName     map[uuid.UUID]string
	ProvinceName map[uuid.UUID]string
	RegionName   map[uuid.UUID]string
}

// RegionOfUnit resolves the unit's region through its province.
func (h *Hierarchy) RegionOfUnit(unitID uuid.UUID) (uuid.UUID, bool) {
	prov, ok := h.UnitProvince[unitID]
	if !ok {
		return uuid.Nil, false
	}
	region, ok := h.ProvinceRegion[prov]
	return region, ok
}

func (h *Hierarchy) ProvinceOfUnit(unitID uuid.UUID) (uuid.UUID, bool) {
	prov, ok := h.UnitProvince[unitID]
	return prov, ok
}

// ProvincesOfRegion lists province ids under one region.
func (h *Hierarchy) ProvincesOfRegion(regionID uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	for prov, reg := range h.ProvinceRegion {
		if reg == regionID {
			out = append(out, prov)
		}
	}
	return out
}

// UnitsOfProvince lists unit ids under one province.
func (h *Hierarchy) UnitsOfProvince(provinceID uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	for unit, prov := range h.UnitProvince {
		if prov == provinceID {
			out = append(out, unit)
		}
	}
	return out
}

// LoadHierarchy reads the full org tree in three queries.
func LoadHierarchy(ctx context.Context, db *gorm.DB) (*Hierarchy, error) {
	h := &Hierarchy{
		UnitProvince:   map[uuid.UUID]uuid.UUID{},
		ProvinceRegion: map[uuid.UUID]uuid.UUID{},
		UnitName:       map[uuid.UUID]string{},
		ProvinceName:   map[uuid.UUID]string{},
		RegionName:     map[uuid.UUID]string{},
	}

	var regions []model.HealthRegionModel
	if err := db.WithContext(ctx).Find(&regions).Error; err != nil {
		return nil, err
	}
	for _, r := range regions {
		h.RegionName[r.HealthRegionID] = r.HealthRegionName
	}

	var provinces []model.ProvinceModel
	if err := db.WithContext(ctx).Find(&provinces).Error; err != nil {
		return nil, err
	}
	for _, p := range provinces {
		h.ProvinceRegion[p.ProvinceID] = p.ProvinceHealthRegionID
		h.ProvinceName[p.ProvinceID] = p.ProvinceName
	}

	var units []model.OrgUnitModel
	if err := db.WithContext(ctx).Find(&units).Error; err != nil {
		return nil, err
	}
	for _, u := range units {
		h.UnitProvince[u.OrgUnitID] = u.OrgUnitProvinceID
		h.UnitName[u.OrgUnitID] = u.OrgUnitName
	}

	return h, nil
}
