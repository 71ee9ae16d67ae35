// file: internals/features/organizations/model/org_unit_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Unit types
const (
	OrgUnitTypeHospital     = "hospital"
	OrgUnitTypeHealthOffice = "health_office"
)

// OrgUnitModel maps the `org_units` table: the leaf node (hospital or
// health office) that owns assessments and budgets. A unit belongs to
// exactly one province and is never re-parented across regions except
// through its province.
type OrgUnitModel struct {
	OrgUnitID uuid.UUID `json:"org_unit_id" gorm:"column:org_unit_id;type:uuid;primaryKey"`

	OrgUnitProvinceID uuid.UUID `json:"org_unit_province_id" gorm:"column:org_unit_province_id;type:uuid;not null;index:idx_org_units_province"`

	OrgUnitType string `json:"org_unit_type" gorm:"column:org_unit_type;type:varchar(16);not null"`
	OrgUnitCode string `json:"org_unit_code" gorm:"column:org_unit_code;type:varchar(16);not null;uniqueIndex"`
	OrgUnitName string `json:"org_unit_name" gorm:"column:org_unit_name;type:varchar(180);not null"`

	OrgUnitCreatedAt time.Time      `json:"org_unit_created_at" gorm:"column:org_unit_created_at;not null;autoCreateTime"`
	OrgUnitUpdatedAt time.Time      `json:"org_unit_updated_at" gorm:"column:org_unit_updated_at;not null;autoUpdateTime"`
	OrgUnitDeletedAt gorm.DeletedAt `json:"org_unit_deleted_at" gorm:"column:org_unit_deleted_at;index"`
}

func (OrgUnitModel) TableName() string {
	return "org_units"
}
