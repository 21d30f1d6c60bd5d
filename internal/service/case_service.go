package service

import (
	"errors"
	"fmt"
	"strings"

	"casetrack/internal/model"
	"casetrack/internal/repository"
	"casetrack/internal/timeutil"

	"gorm.io/gorm"
)

// CaseDetail is everything the case page shows: stock, rollups, recent
// movements and today's physical count (if one was taken).
type CaseDetail struct {
	Case       model.Case            `json:"case"`
	Items      []model.CaseItem      `json:"items"`
	TypeTotals model.TypeTotals      `json:"type_totals"`
	LastCount  *model.CaseCount      `json:"last_count,omitempty"`
	History    []model.HistoryRecord `json:"history"`
}

type CaseService interface {
	List() ([]model.CaseSummary, error)
	Get(code string) (*CaseDetail, error)
	Items(code string) ([]model.CaseItem, error)
	Create(code, name, userID, username string) (*model.Case, error)
	Rename(code, newName, userID, username string) (*model.Case, error)
	Archive(code, userID, username string) error
}

type caseService struct {
	caseRepo    repository.CaseRepository
	ledgerRepo  repository.LedgerRepository
	historyRepo repository.HistoryRepository
	countRepo   repository.CountRepository
	db          *gorm.DB
}

func NewCaseService(
	caseRepo repository.CaseRepository,
	ledgerRepo repository.LedgerRepository,
	historyRepo repository.HistoryRepository,
	countRepo repository.CountRepository,
	db *gorm.DB,
) CaseService {
	return &caseService{
		caseRepo:    caseRepo,
		ledgerRepo:  ledgerRepo,
		historyRepo: historyRepo,
		countRepo:   countRepo,
		db:          db,
	}
}

func (s *caseService) List() ([]model.CaseSummary, error) {
	return s.caseRepo.Summaries()
}

func (s *caseService) Get(code string) (*CaseDetail, error) {
	c, err := s.caseRepo.FindActiveByCode(code)
	if err != nil {
		return nil, fmt.Errorf("%w: case %s", ErrNotFound, code)
	}

	items, err := s.ledgerRepo.ItemsForCase(code)
	if err != nil {
		return nil, err
	}
	totals, err := s.ledgerRepo.TypeTotals(code)
	if err != nil {
		return nil, err
	}
	history, err := s.historyRepo.Find(repository.HistoryFilter{CaseCode: code, Limit: 150})
	if err != nil {
		return nil, err
	}

	detail := &CaseDetail{
		Case:       *c,
		Items:      items,
		TypeTotals: *totals,
		History:    history,
	}
	if last, err := s.countRepo.LatestForCaseDay(code, timeutil.Today()); err == nil {
		detail.LastCount = last
	}
	return detail, nil
}

func (s *caseService) Items(code string) ([]model.CaseItem, error) {
	if _, err := s.caseRepo.FindActiveByCode(code); err != nil {
		return nil, fmt.Errorf("%w: case %s", ErrNotFound, code)
	}
	return s.ledgerRepo.ItemsForCase(code)
}

func (s *caseService) Create(code, name, userID, username string) (*model.Case, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: case code and name are required", ErrValidation)
	}
	if code == model.NewReceiptsCode {
		return nil, fmt.Errorf("%w: that case code is reserved", ErrValidation)
	}
	if existing, err := s.caseRepo.FindByCode(code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: case %s already exists", ErrValidation, code)
	}

	c := &model.Case{Code: code, Name: name, IsActive: true}
	c.CreatedBy = userID
	c.UpdatedBy = userID

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		rec := &model.HistoryRecord{
			Username: username,
			Action:   model.ActionCaseCreate,
			Notes:    fmt.Sprintf("Created case %s (%s)", code, name),
		}
		rec.CreatedBy = userID
		rec.UpdatedBy = userID
		return s.historyRepo.Create(tx, rec)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *caseService) Rename(code, newName, userID, username string) (*model.Case, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, fmt.Errorf("%w: case name is required", ErrValidation)
	}

	c, err := s.caseRepo.FindActiveByCode(code)
	if err != nil {
		return nil, fmt.Errorf("%w: case %s", ErrNotFound, code)
	}
	if c.Name == newName {
		return c, nil
	}

	oldName := c.Name
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Case{}).Where("code = ?", code).
			Updates(map[string]interface{}{"name": newName, "updated_by": userID}).Error; err != nil {
			return err
		}
		rec := &model.HistoryRecord{
			Username: username,
			Action:   model.ActionCaseEdit,
			Notes:    fmt.Sprintf("Renamed case %s: '%s' -> '%s'", code, oldName, newName),
		}
		rec.CreatedBy = userID
		rec.UpdatedBy = userID
		return s.historyRepo.Create(tx, rec)
	})
	if err != nil {
		return nil, err
	}
	c.Name = newName
	return c, nil
}

// Archive soft-deletes a case. The case must be empty, and the New
// Receipts staging case can never be archived.
func (s *caseService) Archive(code, userID, username string) error {
	if code == model.NewReceiptsCode {
		return fmt.Errorf("%w: New Receipts can't be deleted", ErrValidation)
	}
	if _, err := s.caseRepo.FindActiveByCode(code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: case %s", ErrNotFound, code)
		}
		return err
	}

	total, err := s.ledgerRepo.CaseTotal(code)
	if err != nil {
		return err
	}
	if total > 0 {
		return fmt.Errorf("%w: case must be empty before deletion, move items out first", ErrValidation)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Case{}).Where("code = ?", code).
			Updates(map[string]interface{}{"is_active": false, "updated_by": userID}).Error; err != nil {
			return err
		}
		rec := &model.HistoryRecord{
			Username: username,
			Action:   model.ActionCaseDelete,
			Notes:    fmt.Sprintf("Deleted/archived case %s", code),
		}
		rec.CreatedBy = userID
		rec.UpdatedBy = userID
		return s.historyRepo.Create(tx, rec)
	})
}
