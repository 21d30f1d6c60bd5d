package repository

import (
	"errors"

	"casetrack/internal/model"

	"gorm.io/gorm"
)

// ErrInsufficient is returned by RemoveQty when the case holds fewer units
// than requested. The ledger never clamps; the row is left untouched.
var ErrInsufficient = errors.New("insufficient quantity")

type LedgerRepository interface {
	Quantity(tx *gorm.DB, caseCode, upc string) (int, error)
	AddQty(tx *gorm.DB, caseCode, upc string, qty int, actor string) error
	RemoveQty(tx *gorm.DB, caseCode, upc string, qty int, actor string) error
	ItemsForCase(caseCode string) ([]model.CaseItem, error)
	TypeTotals(caseCode string) (*model.TypeTotals, error)
	CaseTotal(caseCode string) (int64, error)
}

type ledgerRepo struct {
	db *gorm.DB
}

func NewLedgerRepo(db *gorm.DB) LedgerRepository {
	return &ledgerRepo{db}
}

func (r *ledgerRepo) Quantity(tx *gorm.DB, caseCode, upc string) (int, error) {
	var entry model.LedgerEntry
	err := tx.First(&entry, "case_code = ? AND upc = ?", caseCode, upc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return entry.Qty, nil
}

func (r *ledgerRepo) AddQty(tx *gorm.DB, caseCode, upc string, qty int, actor string) error {
	var entry model.LedgerEntry
	err := tx.First(&entry, "case_code = ? AND upc = ?", caseCode, upc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = model.LedgerEntry{CaseCode: caseCode, UPC: upc, Qty: qty}
		entry.CreatedBy = actor
		entry.UpdatedBy = actor
		return tx.Create(&entry).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&model.LedgerEntry{}).
		Where("case_code = ? AND upc = ?", caseCode, upc).
		Updates(map[string]interface{}{
			"qty":        entry.Qty + qty,
			"updated_by": actor,
		}).Error
}

// RemoveQty subtracts qty, deleting the row when it hits zero. Fails with
// ErrInsufficient (state unchanged) when the case holds fewer units.
func (r *ledgerRepo) RemoveQty(tx *gorm.DB, caseCode, upc string, qty int, actor string) error {
	var entry model.LedgerEntry
	err := tx.First(&entry, "case_code = ? AND upc = ?", caseCode, upc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInsufficient
	}
	if err != nil {
		return err
	}
	if entry.Qty < qty {
		return ErrInsufficient
	}

	remaining := entry.Qty - qty
	if remaining == 0 {
		return tx.Delete(&model.LedgerEntry{}, "case_code = ? AND upc = ?", caseCode, upc).Error
	}
	return tx.Model(&model.LedgerEntry{}).
		Where("case_code = ? AND upc = ?", caseCode, upc).
		Updates(map[string]interface{}{
			"qty":        remaining,
			"updated_by": actor,
		}).Error
}

func (r *ledgerRepo) ItemsForCase(caseCode string) ([]model.CaseItem, error) {
	var items []model.CaseItem
	err := r.db.Model(&model.LedgerEntry{}).
		Select(`ledger_entries.upc, ledger_entries.qty,
			COALESCE(products.item_type, '') AS item_type,
			COALESCE(products.description, '') AS description`).
		Joins("LEFT JOIN products ON products.upc = ledger_entries.upc").
		Where("ledger_entries.case_code = ?", caseCode).
		Order("ledger_entries.upc").
		Scan(&items).Error
	return items, err
}

func (r *ledgerRepo) TypeTotals(caseCode string) (*model.TypeTotals, error) {
	var totals model.TypeTotals
	err := r.db.Model(&model.LedgerEntry{}).
		Select(`
			COALESCE(SUM(CASE WHEN products.item_type = 'Earring' THEN ledger_entries.qty ELSE 0 END), 0) AS earrings,
			COALESCE(SUM(CASE WHEN products.item_type = 'Ring' THEN ledger_entries.qty ELSE 0 END), 0) AS rings,
			COALESCE(SUM(CASE WHEN products.item_type = 'Necklace' THEN ledger_entries.qty ELSE 0 END), 0) AS necklaces,
			COALESCE(SUM(CASE WHEN products.item_type = 'Bracelet' THEN ledger_entries.qty ELSE 0 END), 0) AS bracelets,
			COALESCE(SUM(CASE WHEN products.item_type IS NULL OR products.item_type = '' THEN ledger_entries.qty ELSE 0 END), 0) AS unknown,
			COALESCE(SUM(ledger_entries.qty), 0) AS total`).
		Joins("LEFT JOIN products ON products.upc = ledger_entries.upc").
		Where("ledger_entries.case_code = ?", caseCode).
		Scan(&totals).Error
	return &totals, err
}

func (r *ledgerRepo) CaseTotal(caseCode string) (int64, error) {
	var total int64
	err := r.db.Model(&model.LedgerEntry{}).
		Where("case_code = ?", caseCode).
		Select("COALESCE(SUM(qty), 0)").
		Scan(&total).Error
	return total, err
}
