// file: internals/features/assessments/assessments/model/assessment_item_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssessmentItemModel maps the `assessment_items` table: one scored line
// item per category per assessment. Items are created in bulk when the
// cycle is created and become immutable once the assessment leaves
// draft/returned.
type AssessmentItemModel struct {
	AssessmentItemID uuid.UUID `json:"assessment_item_id" gorm:"column:assessment_item_id;type:uuid;primaryKey"`

	AssessmentItemAssessmentID uuid.UUID `json:"assessment_item_assessment_id" gorm:"column:assessment_item_assessment_id;type:uuid;not null;index:idx_assessment_items_assessment,priority:1"`

	AssessmentItemCategory string `json:"assessment_item_category" gorm:"column:assessment_item_category;type:varchar(48);not null;index:idx_assessment_items_assessment,priority:2"`

	// pass | partial | fail
	AssessmentItemStatus string  `json:"assessment_item_status" gorm:"column:assessment_item_status;type:varchar(12);not null;default:'fail'"`
	AssessmentItemScore  float64 `json:"assessment_item_score" gorm:"column:assessment_item_score;type:numeric(5,2);not null;default:0"`

	AssessmentItemNote *string `json:"assessment_item_note" gorm:"column:assessment_item_note;type:text"`

	AssessmentItemCreatedAt time.Time      `json:"assessment_item_created_at" gorm:"column:assessment_item_created_at;not null;autoCreateTime"`
	AssessmentItemUpdatedAt time.Time      `json:"assessment_item_updated_at" gorm:"column:assessment_item_updated_at;not null;autoUpdateTime"`
	AssessmentItemDeletedAt gorm.DeletedAt `json:"assessment_item_deleted_at" gorm:"column:assessment_item_deleted_at;index"`
}

func (AssessmentItemModel) TableName() string {
	return "assessment_items"
}
