// file: internals/features/assessments/assessments/model/assessment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssessmentModel maps the `assessments` table: one self-assessment cycle
// for one org unit, identified by (unit, fiscal_year, period). Cycles are
// never deleted, only superseded by a new cycle.
type AssessmentModel struct {
	AssessmentID uuid.UUID `json:"assessment_id" gorm:"column:assessment_id;type:uuid;primaryKey"`

	// One live cycle per (unit, fiscal_year, period); the partial unique
	// index is the serialization point for concurrent creates.
	AssessmentOrgUnitID uuid.UUID `json:"assessment_org_unit_id" gorm:"column:assessment_org_unit_id;type:uuid;not null;uniqueIndex:uq_assessments_unit_year_period,priority:1,where:assessment_deleted_at IS NULL"`

	// Stored as the calendar-anchored integer; the Buddhist Era display
	// offset is applied in DTOs only.
	AssessmentFiscalYear int    `json:"assessment_fiscal_year" gorm:"column:assessment_fiscal_year;not null;uniqueIndex:uq_assessments_unit_year_period,priority:2"`
	AssessmentPeriod     string `json:"assessment_period" gorm:"column:assessment_period;type:varchar(16);not null;default:'annual';uniqueIndex:uq_assessments_unit_year_period,priority:3"`

	AssessmentStatus string `json:"assessment_status" gorm:"column:assessment_status;type:varchar(24);not null;default:'draft';index:idx_assessments_status"`

	// Derived by the score calculator; nil until first computed.
	AssessmentTotalScore *float64 `json:"assessment_total_score" gorm:"column:assessment_total_score;type:numeric(6,2)"`

	AssessmentCreatedBy   uuid.UUID  `json:"assessment_created_by" gorm:"column:assessment_created_by;type:uuid;not null"`
	AssessmentSubmittedBy *uuid.UUID `json:"assessment_submitted_by" gorm:"column:assessment_submitted_by;type:uuid"`
	AssessmentSubmittedAt *time.Time `json:"assessment_submitted_at" gorm:"column:assessment_submitted_at;type:timestamptz"`

	AssessmentProvincialApprovedBy *uuid.UUID `json:"assessment_provincial_approved_by" gorm:"column:assessment_provincial_approved_by;type:uuid"`
	AssessmentProvincialApprovedAt *time.Time `json:"assessment_provincial_approved_at" gorm:"column:assessment_provincial_approved_at;type:timestamptz"`
	AssessmentRegionalApprovedBy   *uuid.UUID `json:"assessment_regional_approved_by" gorm:"column:assessment_regional_approved_by;type:uuid"`
	AssessmentRegionalApprovedAt   *time.Time `json:"assessment_regional_approved_at" gorm:"column:assessment_regional_approved_at;type:timestamptz"`

	AssessmentCreatedAt time.Time      `json:"assessment_created_at" gorm:"column:assessment_created_at;not null;autoCreateTime;index:idx_assessments_created_at,sort:desc"`
	AssessmentUpdatedAt time.Time      `json:"assessment_updated_at" gorm:"column:assessment_updated_at;not null;autoUpdateTime"`
	AssessmentDeletedAt gorm.DeletedAt `json:"assessment_deleted_at" gorm:"column:assessment_deleted_at;index"`
}

func (AssessmentModel) TableName() string {
	return "assessments"
}
