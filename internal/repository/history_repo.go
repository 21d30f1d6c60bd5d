package repository

import (
	"time"

	"casetrack/internal/model"

	"gorm.io/gorm"
)

// HistoryFilter narrows history queries. Zero values are ignored.
type HistoryFilter struct {
	CaseCode string // matches either side of the movement
	UPC      string
	Action   model.ActionType
	From     time.Time
	To       time.Time
	Limit    int
}

type HistoryRepository interface {
	Create(tx *gorm.DB, rec *model.HistoryRecord) error
	Find(filter HistoryFilter) ([]model.HistoryRecord, error)
	// ActivityForCase returns the stock-moving events touching one case
	// within [from, to), oldest first, for the daily activity report.
	ActivityForCase(caseCode string, from, to time.Time) ([]model.HistoryRecord, error)
}

type historyRepo struct {
	db *gorm.DB
}

func NewHistoryRepo(db *gorm.DB) HistoryRepository {
	return &historyRepo{db}
}

func (r *historyRepo) Create(tx *gorm.DB, rec *model.HistoryRecord) error {
	return tx.Create(rec).Error
}

func (r *historyRepo) query(filter HistoryFilter) *gorm.DB {
	q := r.db.Model(&model.HistoryRecord{}).
		Select("history_records.*, COALESCE(products.item_type, '') AS item_type").
		Joins("LEFT JOIN products ON products.upc = history_records.upc")

	if filter.CaseCode != "" {
		q = q.Where("history_records.from_case_code = ? OR history_records.to_case_code = ?",
			filter.CaseCode, filter.CaseCode)
	}
	if filter.UPC != "" {
		q = q.Where("history_records.upc = ?", filter.UPC)
	}
	if filter.Action != "" {
		q = q.Where("history_records.action = ?", filter.Action)
	}
	if !filter.From.IsZero() {
		q = q.Where("history_records.created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("history_records.created_at < ?", filter.To)
	}
	return q
}

func (r *historyRepo) Find(filter HistoryFilter) ([]model.HistoryRecord, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}
	var records []model.HistoryRecord
	err := r.query(filter).
		Order("history_records.created_at DESC, history_records.id DESC").
		Limit(limit).
		Scan(&records).Error
	return records, err
}

func (r *historyRepo) ActivityForCase(caseCode string, from, to time.Time) ([]model.HistoryRecord, error) {
	var records []model.HistoryRecord
	err := r.db.Model(&model.HistoryRecord{}).
		Select("history_records.*, COALESCE(products.item_type, '') AS item_type").
		Joins("LEFT JOIN products ON products.upc = history_records.upc").
		Where("history_records.action IN ?", []model.ActionType{
			model.ActionReceive, model.ActionMove, model.ActionSold, model.ActionMissing,
		}).
		Where("history_records.from_case_code = ? OR history_records.to_case_code = ?", caseCode, caseCode).
		Where("history_records.created_at >= ? AND history_records.created_at < ?", from, to).
		Order("history_records.created_at ASC, history_records.id ASC").
		Scan(&records).Error
	return records, err
}
