// file: internals/features/users/profile/model/profile_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileModel maps the `profiles` table: one identity with a role and an
// organizational scope. Invariant: exactly the scope column matching the
// role is non-null (facility/office → hospital, provincial → province,
// regional → health region, central → none).
type ProfileModel struct {
	ProfileID uuid.UUID `json:"profile_id" gorm:"column:profile_id;type:uuid;primaryKey"`

	ProfileUserID uuid.UUID `json:"profile_user_id" gorm:"column:profile_user_id;type:uuid;not null;uniqueIndex:uq_profiles_user"`

	ProfileFullName string `json:"profile_full_name" gorm:"column:profile_full_name;type:varchar(180);not null"`
	ProfileRole     string `json:"profile_role" gorm:"column:profile_role;type:varchar(24);not null;index:idx_profiles_role"`

	ProfileHospitalID     *uuid.UUID `json:"profile_hospital_id" gorm:"column:profile_hospital_id;type:uuid"`
	ProfileProvinceID     *uuid.UUID `json:"profile_province_id" gorm:"column:profile_province_id;type:uuid"`
	ProfileHealthRegionID *uuid.UUID `json:"profile_health_region_id" gorm:"column:profile_health_region_id;type:uuid"`

	ProfileCreatedAt time.Time      `json:"profile_created_at" gorm:"column:profile_created_at;not null;autoCreateTime"`
	ProfileUpdatedAt time.Time      `json:"profile_updated_at" gorm:"column:profile_updated_at;not null;autoUpdateTime"`
	ProfileDeletedAt gorm.DeletedAt `json:"profile_deleted_at" gorm:"column:profile_deleted_at;index"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}
