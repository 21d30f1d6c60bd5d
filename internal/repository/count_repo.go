package repository

import (
	"casetrack/internal/model"

	"gorm.io/gorm"
)

type CountRepository interface {
	Create(count *model.CaseCount) error
	LatestForCaseDay(caseCode, localDate string) (*model.CaseCount, error)
	// LatestPerCaseForDay returns the newest count of each case for the
	// given store-local date.
	LatestPerCaseForDay(localDate string) ([]model.CaseCount, error)
	Find(caseCode, localDate string, limit int) ([]model.CaseCount, error)
}

type countRepo struct {
	db *gorm.DB
}

func NewCountRepo(db *gorm.DB) CountRepository {
	return &countRepo{db}
}

func (r *countRepo) Create(count *model.CaseCount) error {
	return r.db.Create(count).Error
}

func (r *countRepo) LatestForCaseDay(caseCode, localDate string) (*model.CaseCount, error) {
	var count model.CaseCount
	err := r.db.Where("case_code = ? AND local_date = ?", caseCode, localDate).
		Order("created_at DESC").
		First(&count).Error
	return &count, err
}

func (r *countRepo) LatestPerCaseForDay(localDate string) ([]model.CaseCount, error) {
	var counts []model.CaseCount
	err := r.db.Raw(`
		SELECT cc.* FROM case_counts cc
		JOIN (
			SELECT case_code, MAX(created_at) AS max_ts
			FROM case_counts
			WHERE local_date = ?
			GROUP BY case_code
		) latest ON latest.case_code = cc.case_code AND latest.max_ts = cc.created_at
		WHERE cc.local_date = ?`, localDate, localDate).
		Scan(&counts).Error
	return counts, err
}

func (r *countRepo) Find(caseCode, localDate string, limit int) ([]model.CaseCount, error) {
	if limit <= 0 {
		limit = 500
	}
	q := r.db.Model(&model.CaseCount{})
	if caseCode != "" {
		q = q.Where("case_code = ?", caseCode)
	}
	if localDate != "" {
		q = q.Where("local_date = ?", localDate)
	}
	var counts []model.CaseCount
	err := q.Order("created_at DESC").Limit(limit).Find(&counts).Error
	return counts, err
}
