// file: internals/features/assessments/assessments/dto/assessment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "cyberassess_backend/internals/features/assessments/assessments/model"
	"cyberassess_backend/internals/constants"
)

/* =======================
   Requests
======================= */

// CreateAssessmentRequest opens a new cycle. Unit staff never send
// org_unit_id (it comes from their scope); central admins must.
type CreateAssessmentRequest struct {
	OrgUnitID  *uuid.UUID `json:"org_unit_id"`
	FiscalYear *int       `json:"fiscal_year" validate:"omitempty,gte=2000,lte=3000"`
	Period     string     `json:"period" validate:"omitempty,oneof=annual"`
}

// UpdateItemRequest scores one category line item.
type UpdateItemRequest struct {
	Status string  `json:"status" validate:"required,oneof=pass partial fail"`
	Note   *string `json:"note" validate:"omitempty,max=2000"`
}

// ActionRequest carries the optional note of a workflow transition. A
// return without a note is still valid; the note is for the unit's benefit.
type ActionRequest struct {
	Note *string `json:"note" validate:"omitempty,max=2000"`
}

/* =======================
   Responses
======================= */

type AssessmentItemResponse struct {
	AssessmentItemID uuid.UUID `json:"assessment_item_id"`
	Category         string    `json:"category"`
	Status           string    `json:"status"`
	Score            float64   `json:"score"`
	Note             *string   `json:"note,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type AssessmentResponse struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
	OrgUnitID    uuid.UUID `json:"org_unit_id"`

	FiscalYear        int    `json:"fiscal_year"`
	DisplayFiscalYear int    `json:"display_fiscal_year"`
	Period            string `json:"period"`

	Status     string   `json:"status"`
	TotalScore *float64 `json:"total_score"`

	SubmittedAt          *time.Time `json:"submitted_at,omitempty"`
	ProvincialApprovedAt *time.Time `json:"provincial_approved_at,omitempty"`
	RegionalApprovedAt   *time.Time `json:"regional_approved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []AssessmentItemResponse `json:"items,omitempty"`
}

type ApprovalHistoryResponse struct {
	ApprovalHistoryID uuid.UUID `json:"approval_history_id"`
	FromStatus        string    `json:"from_status"`
	ToStatus          string    `json:"to_status"`
	Action            string    `json:"action"`
	ActorID           uuid.UUID `json:"actor_id"`
	ActorRole         string    `json:"actor_role"`
	Note              *string   `json:"note,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

/* =======================
   Converters
======================= */

func FromAssessmentModel(m *model.AssessmentModel) AssessmentResponse {
	return AssessmentResponse{
		AssessmentID:         m.AssessmentID,
		OrgUnitID:            m.AssessmentOrgUnitID,
		FiscalYear:           m.AssessmentFiscalYear,
		DisplayFiscalYear:    constants.DisplayFiscalYear(m.AssessmentFiscalYear),
		Period:               m.AssessmentPeriod,
		Status:               m.AssessmentStatus,
		TotalScore:           m.AssessmentTotalScore,
		SubmittedAt:          m.AssessmentSubmittedAt,
		ProvincialApprovedAt: m.AssessmentProvincialApprovedAt,
		RegionalApprovedAt:   m.AssessmentRegionalApprovedAt,
		CreatedAt:            m.AssessmentCreatedAt,
		UpdatedAt:            m.AssessmentUpdatedAt,
	}
}

func FromItemModel(m *model.AssessmentItemModel) AssessmentItemResponse {
	return AssessmentItemResponse{
		AssessmentItemID: m.AssessmentItemID,
		Category:         m.AssessmentItemCategory,
		Status:           m.AssessmentItemStatus,
		Score:            m.AssessmentItemScore,
		Note:             m.AssessmentItemNote,
		UpdatedAt:        m.AssessmentItemUpdatedAt,
	}
}

func FromHistoryModel(m *model.ApprovalHistoryModel) ApprovalHistoryResponse {
	return ApprovalHistoryResponse{
		ApprovalHistoryID: m.ApprovalHistoryID,
		FromStatus:        m.ApprovalHistoryFromStatus,
		ToStatus:          m.ApprovalHistoryToStatus,
		Action:            m.ApprovalHistoryAction,
		ActorID:           m.ApprovalHistoryActorID,
		ActorRole:         m.ApprovalHistoryActorRole,
		Note:              m.ApprovalHistoryNote,
		CreatedAt:         m.ApprovalHistoryCreatedAt,
	}
}
