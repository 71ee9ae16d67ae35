// file: internals/features/organizations/model/health_region_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HealthRegionModel maps the `health_regions` table
type HealthRegionModel struct {
	HealthRegionID uuid.UUID `json:"health_region_id" gorm:"column:health_region_id;type:uuid;primaryKey"`

	HealthRegionCode string `json:"health_region_code" gorm:"column:health_region_code;type:varchar(8);not null;uniqueIndex"`
	HealthRegionName string `json:"health_region_name" gorm:"column:health_region_name;type:varchar(120);not null"`

	HealthRegionCreatedAt time.Time      `json:"health_region_created_at" gorm:"column:health_region_created_at;not null;autoCreateTime"`
	HealthRegionUpdatedAt time.Time      `json:"health_region_updated_at" gorm:"column:health_region_updated_at;not null;autoUpdateTime"`
	HealthRegionDeletedAt gorm.DeletedAt `json:"health_region_deleted_at" gorm:"column:health_region_deleted_at;index"`
}

func (HealthRegionModel) TableName() string {
	return "health_regions"
}
