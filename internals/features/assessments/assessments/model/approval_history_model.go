// file: internals/features/assessments/assessments/model/approval_history_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalHistoryModel maps the `approval_histories` table: the append-only
// audit log of status transitions. Rows are never updated or deleted; there
// is deliberately no gorm.DeletedAt here.
type ApprovalHistoryModel struct {
	ApprovalHistoryID uuid.UUID `json:"approval_history_id" gorm:"column:approval_history_id;type:uuid;primaryKey"`

	ApprovalHistoryAssessmentID uuid.UUID `json:"approval_history_assessment_id" gorm:"column:approval_history_assessment_id;type:uuid;not null;index:idx_approval_histories_assessment"`

	ApprovalHistoryFromStatus string `json:"approval_history_from_status" gorm:"column:approval_history_from_status;type:varchar(24);not null"`
	ApprovalHistoryToStatus   string `json:"approval_history_to_status" gorm:"column:approval_history_to_status;type:varchar(24);not null"`
	ApprovalHistoryAction     string `json:"approval_history_action" gorm:"column:approval_history_action;type:varchar(32);not null"`

	ApprovalHistoryActorID   uuid.UUID `json:"approval_history_actor_id" gorm:"column:approval_history_actor_id;type:uuid;not null"`
	ApprovalHistoryActorRole string    `json:"approval_history_actor_role" gorm:"column:approval_history_actor_role;type:varchar(24);not null"`

	ApprovalHistoryNote *string `json:"approval_history_note" gorm:"column:approval_history_note;type:text"`

	ApprovalHistoryCreatedAt time.Time `json:"approval_history_created_at" gorm:"column:approval_history_created_at;not null;autoCreateTime"`
}

func (ApprovalHistoryModel) TableName() string {
	return "approval_histories"
}
