// file: internals/features/budgets/dto/budget_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "cyberassess_backend/internals/features/budgets/model"
	"cyberassess_backend/internals/constants"
)

// BudgetLine is one category figure inside a wholesale replace.
type BudgetLine struct {
	Category string  `json:"category" validate:"required"`
	Amount   float64 `json:"amount" validate:"gte=0"`
}

// ReplaceBudgetRequest replaces a unit's full budget for one fiscal year.
// The line set must cover every category exactly once; partial writes are
// rejected so a half-entered form can never shrink a published total.
type ReplaceBudgetRequest struct {
	Lines []BudgetLine `json:"lines" validate:"required,min=1,dive"`
}

type BudgetRecordResponse struct {
	BudgetRecordID uuid.UUID `json:"budget_record_id"`
	OrgUnitID      uuid.UUID `json:"org_unit_id"`

	FiscalYear        int `json:"fiscal_year"`
	DisplayFiscalYear int `json:"display_fiscal_year"`

	Category string  `json:"category"`
	Amount   float64 `json:"amount"`

	CreatedAt time.Time `json:"created_at"`
}

func FromBudgetModel(m *model.BudgetRecordModel) BudgetRecordResponse {
	return BudgetRecordResponse{
		BudgetRecordID:    m.BudgetRecordID,
		OrgUnitID:         m.BudgetRecordOrgUnitID,
		FiscalYear:        m.BudgetRecordFiscalYear,
		DisplayFiscalYear: constants.DisplayFiscalYear(m.BudgetRecordFiscalYear),
		Category:          m.BudgetRecordCategory,
		Amount:            m.BudgetRecordAmount,
		CreatedAt:         m.BudgetRecordCreatedAt,
	}
}
