// file: internals/features/organizations/model/province_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProvinceModel maps the `provinces` table. Every province belongs to
// exactly one health region.
type ProvinceModel struct {
	ProvinceID uuid.UUID `json:"province_id" gorm:"column:province_id;type:uuid;primaryKey"`

	ProvinceHealthRegionID uuid.UUID `json:"province_health_region_id" gorm:"column:province_health_region_id;type:uuid;not null;index:idx_provinces_region"`

	ProvinceCode string `json:"province_code" gorm:"column:province_code;type:varchar(8);not null;uniqueIndex"`
	ProvinceName string `json:"province_name" gorm:"column:province_name;type:varchar(120);not null"`

	ProvinceCreatedAt time.Time      `json:"province_created_at" gorm:"column:province_created_at;not null;autoCreateTime"`
	ProvinceUpdatedAt time.Time      `json:"province_updated_at" gorm:"column:province_updated_at;not null;autoUpdateTime"`
	ProvinceDeletedAt gorm.DeletedAt `json:"province_deleted_at" gorm:"column:province_deleted_at;index"`
}

func (ProvinceModel) TableName() string {
	return "provinces"
}
