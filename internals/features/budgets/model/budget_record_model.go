// file: internals/features/budgets/model/budget_record_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// BudgetRecordModel maps the `budget_records` table: one (unit, fiscal
// year, category) figure. A unit's budget for a year is replaced wholesale
// (delete-then-insert), so there is no per-row update path and no soft
// delete column.
type BudgetRecordModel struct {
	BudgetRecordID uuid.UUID `json:"budget_record_id" gorm:"column:budget_record_id;type:uuid;primaryKey"`

	BudgetRecordOrgUnitID  uuid.UUID `json:"budget_record_org_unit_id" gorm:"column:budget_record_org_unit_id;type:uuid;not null;index:idx_budget_records_unit_year,priority:1"`
	BudgetRecordFiscalYear int       `json:"budget_record_fiscal_year" gorm:"column:budget_record_fiscal_year;not null;index:idx_budget_records_unit_year,priority:2"`

	BudgetRecordCategory string  `json:"budget_record_category" gorm:"column:budget_record_category;type:varchar(48);not null"`
	BudgetRecordAmount   float64 `json:"budget_record_amount" gorm:"column:budget_record_amount;type:numeric(14,2);not null;default:0"`

	BudgetRecordCreatedBy uuid.UUID `json:"budget_record_created_by" gorm:"column:budget_record_created_by;type:uuid;not null"`
	BudgetRecordCreatedAt time.Time `json:"budget_record_created_at" gorm:"column:budget_record_created_at;not null;autoCreateTime"`
}

func (BudgetRecordModel) TableName() string {
	return "budget_records"
}
