// file: internals/features/budgets/service/budget_service.go
package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "cyberassess_backend/internals/features/budgets/model"
	"cyberassess_backend/internals/helpers/errs"
)

// Budget categories, fixed. A replace must cover each exactly once.
const (
	CategoryHardware   = "hardware"
	CategorySoftware   = "software"
	CategoryPersonnel  = "personnel"
	CategoryTraining   = "training"
	CategoryOutsourced = "outsourced_services"
)

func Categories() []string {
	return []string{
		CategoryHardware,
		CategorySoftware,
		CategoryPersonnel,
		CategoryTraining,
		CategoryOutsourced,
	}
}

// Line is one category figure of a wholesale replace.
type Line struct {
	Category string
	Amount   float64
}

// ValidateLines checks the complete-category-set invariant: every known
// category exactly once, nothing unknown, no negative amounts. Pure, so
// the replace semantics are testable without a database.
func ValidateLines(lines []Line) error {
	known := map[string]bool{}
	for _, c := range Categories() {
		known[c] = true
	}

	seen := map[string]bool{}
	for _, l := range lines {
		cat := strings.TrimSpace(l.Category)
		if !known[cat] {
			return errs.Validationf("unknown budget category %q", l.Category)
		}
		if seen[cat] {
			return errs.Validationf("budget category %q appears more than once", cat)
		}
		if l.Amount < 0 {
			return errs.Validationf("budget amount for %q must not be negative", cat)
		}
		seen[cat] = true
	}

	if len(seen) != len(known) {
		var missing []string
		for _, c := range Categories() {
			if !seen[c] {
				missing = append(missing, c)
			}
		}
		sort.Strings(missing)
		return errs.Validationf("budget replace must cover every category; missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

type BudgetService struct {
	DB *gorm.DB
}

func NewBudgetService(db *gorm.DB) *BudgetService {
	return &BudgetService{DB: db}
}

// ReplaceYear swaps a unit's full figure set for one fiscal year:
// delete-then-insert in a single transaction. There is no per-row update
// path; readers see either the old complete set or the new one.
func (s *BudgetService) ReplaceYear(ctx context.Context, unitID uuid.UUID, fiscalYear int, lines []Line, createdBy uuid.UUID) ([]model.BudgetRecordModel, error) {
	if err := ValidateLines(lines); err != nil {
		return nil, err
	}

	rows := make([]model.BudgetRecordModel, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, model.BudgetRecordModel{
			BudgetRecordID:         uuid.New(),
			BudgetRecordOrgUnitID:  unitID,
			BudgetRecordFiscalYear: fiscalYear,
			BudgetRecordCategory:   strings.TrimSpace(l.Category),
			BudgetRecordAmount:     l.Amount,
			BudgetRecordCreatedBy:  createdBy,
		})
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("budget_record_org_unit_id = ? AND budget_record_fiscal_year = ?", unitID, fiscalYear).
			Delete(&model.BudgetRecordModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListYear returns a unit's figures for one fiscal year, category-sorted.
func (s *BudgetService) ListYear(ctx context.Context, unitID uuid.UUID, fiscalYear int) ([]model.BudgetRecordModel, error) {
	var rows []model.BudgetRecordModel
	err := s.DB.WithContext(ctx).
		Where("budget_record_org_unit_id = ? AND budget_record_fiscal_year = ?", unitID, fiscalYear).
		Order("budget_record_category ASC").
		Find(&rows).Error
	return rows, err
}
