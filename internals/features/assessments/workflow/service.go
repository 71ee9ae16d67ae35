// file: internals/features/assessments/workflow/service.go
package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "cyberassess_backend/internals/features/assessments/assessments/model"
	"cyberassess_backend/internals/features/users/access"
	"cyberassess_backend/internals/helpers/errs"
)

// Actor is who is performing a transition.
type Actor struct {
	UserID uuid.UUID
	Policy *access.Policy
}

type Service struct {
	DB   *gorm.DB
	Opts Options
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Apply runs one transition end to end: role guard, from-state check,
// guarded status update and exactly one history row, atomically. The
// UPDATE's WHERE on the old status is the optimistic-concurrency guard:
// of two racing approvers exactly one sees RowsAffected==1, the other
// gets a conflict and should reload.
func (s *Service) Apply(ctx context.Context, actor Actor, assessmentID uuid.UUID, action Action, note *string) (*model.AssessmentModel, error) {
	var a model.AssessmentModel
	if err := s.DB.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("assessment %s", assessmentID)
		}
		return nil, err
	}

	if !actor.Policy.UnitVisible(a.AssessmentOrgUnitID) {
		return nil, errs.Permissionf("assessment %s is outside your scope", assessmentID)
	}

	from := Status(a.AssessmentStatus)
	to, err := Resolve(actor.Policy.Role, from, action, s.Opts)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"assessment_status":     string(to),
		"assessment_updated_at": now,
	}
	switch action {
	case ActionSubmit:
		updates["assessment_submitted_by"] = actor.UserID
		updates["assessment_submitted_at"] = now
	case ActionApproveProvincial:
		updates["assessment_provincial_approved_by"] = actor.UserID
		updates["assessment_provincial_approved_at"] = now
	case ActionApproveRegional:
		updates["assessment_regional_approved_by"] = actor.UserID
		updates["assessment_regional_approved_at"] = now
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.AssessmentModel{}).
			Where("assessment_id = ? AND assessment_status = ?", assessmentID, string(from)).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Somebody else moved the assessment between our read and
			// this write.
			return errs.Conflictf("assessment %s changed status concurrently, reload and retry", assessmentID)
		}

		hist := model.ApprovalHistoryModel{
			ApprovalHistoryID:           uuid.New(),
			ApprovalHistoryAssessmentID: assessmentID,
			ApprovalHistoryFromStatus:   string(from),
			ApprovalHistoryToStatus:     string(to),
			ApprovalHistoryAction:       string(action),
			ApprovalHistoryActorID:      actor.UserID,
			ApprovalHistoryActorRole:    string(actor.Policy.Role),
			ApprovalHistoryNote:         note,
		}
		if err := tx.Create(&hist).Error; err != nil {
			// Rolling back undoes the status write too, so the audit trail
			// is never silently shorter than the status stream.
			return errs.Reconcilef("history append failed, transition rolled back: %v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.AssessmentStatus = string(to)
	a.AssessmentUpdatedAt = now
	return &a, nil
}

// History returns the append-only transition log, oldest first.
func (s *Service) History(ctx context.Context, assessmentID uuid.UUID) ([]model.ApprovalHistoryModel, error) {
	var rows []model.ApprovalHistoryModel
	err := s.DB.WithContext(ctx).
		Where("approval_history_assessment_id = ?", assessmentID).
		Order("approval_history_created_at ASC").
		Find(&rows).Error
	return rows, err
}
