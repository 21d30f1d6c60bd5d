package repository

import (
	"casetrack/internal/model"

	"gorm.io/gorm"
)

// caseOrder sorts the grid: virtual cases first, then numeric codes in
// numeric order ('01'..'30'), then everything else lexicographically.
const caseOrder = `is_virtual DESC, CASE WHEN code GLOB '[0-9]*' THEN CAST(code AS INTEGER) ELSE 999999 END, code`

type CaseRepository interface {
	FindByCode(code string) (*model.Case, error)
	FindActiveByCode(code string) (*model.Case, error)
	Summaries() ([]model.CaseSummary, error)
}

type caseRepo struct {
	db *gorm.DB
}

func NewCaseRepo(db *gorm.DB) CaseRepository {
	return &caseRepo{db}
}

func (r *caseRepo) FindByCode(code string) (*model.Case, error) {
	var c model.Case
	err := r.db.First(&c, "code = ?", code).Error
	return &c, err
}

func (r *caseRepo) FindActiveByCode(code string) (*model.Case, error) {
	var c model.Case
	err := r.db.First(&c, "code = ? AND is_active = ?", code, true).Error
	return &c, err
}

// Summaries returns every active case with its total quantity and distinct
// UPC count rolled up from the ledger.
func (r *caseRepo) Summaries() ([]model.CaseSummary, error) {
	var out []model.CaseSummary
	err := r.db.Model(&model.Case{}).
		Select(`cases.*,
			COALESCE(SUM(ledger_entries.qty), 0) AS total_qty,
			COALESCE(COUNT(ledger_entries.upc), 0) AS distinct_upcs`).
		Joins("LEFT JOIN ledger_entries ON ledger_entries.case_code = cases.code").
		Where("cases.is_active = ?", true).
		Group("cases.id").
		Order(caseOrder).
		Scan(&out).Error
	return out, err
}
