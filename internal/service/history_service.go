package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"casetrack/internal/model"
	"casetrack/internal/repository"

	"gorm.io/gorm"
)

type HistoryService interface {
	List(filter repository.HistoryFilter) ([]model.HistoryRecord, error)
	ExportCSV(filter repository.HistoryFilter, w io.Writer) error
	ExportInventoryCSV(w io.Writer) error
	ExportCaseCSV(caseCode string, w io.Writer) error
}

type historyService struct {
	historyRepo repository.HistoryRepository
	caseRepo    repository.CaseRepository
	db          *gorm.DB
}

func NewHistoryService(historyRepo repository.HistoryRepository, caseRepo repository.CaseRepository, db *gorm.DB) HistoryService {
	return &historyService{historyRepo: historyRepo, caseRepo: caseRepo, db: db}
}

func (s *historyService) List(filter repository.HistoryFilter) ([]model.HistoryRecord, error) {
	return s.historyRepo.Find(filter)
}

func (s *historyService) ExportCSV(filter repository.HistoryFilter, w io.Writer) error {
	if filter.Limit <= 0 {
		filter.Limit = 5000
	}
	records, err := s.historyRepo.Find(filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"ts", "username", "action", "upc", "item_type", "qty",
		"from_case_code", "to_case_code", "notes",
		"trans_reg", "dept_no", "brief_desc", "ticket_price", "diamond_test",
	}); err != nil {
		return err
	}

	for _, rec := range records {
		price := ""
		if rec.TicketPrice != 0 {
			price = strconv.FormatFloat(rec.TicketPrice, 'f', 2, 64)
		}
		qty := ""
		if rec.Qty != 0 {
			qty = strconv.Itoa(rec.Qty)
		}
		row := []string{
			rec.CreatedAt.UTC().Format(time.RFC3339),
			rec.Username,
			string(rec.Action),
			rec.UPC,
			string(rec.ItemType),
			qty,
			rec.FromCaseCode,
			rec.ToCaseCode,
			rec.Notes,
			rec.TransReg,
			rec.DeptNo,
			rec.BriefDesc,
			price,
			rec.DiamondTest,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// inventoryRow is the snapshot export shape shared by the full and
// per-case inventory CSVs.
type inventoryRow struct {
	CaseCode    string
	CaseName    string
	UPC         string
	ItemType    string
	Description string
	Qty         int
}

func (s *historyService) exportRows(w io.Writer, rows []inventoryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"case_code", "case_name", "upc", "item_type", "description", "qty"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			r.CaseCode, r.CaseName, r.UPC, r.ItemType, r.Description, strconv.Itoa(r.Qty),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *historyService) ExportInventoryCSV(w io.Writer) error {
	var rows []inventoryRow
	err := s.db.Model(&model.LedgerEntry{}).
		Select(`ledger_entries.case_code, cases.name AS case_name, ledger_entries.upc,
			COALESCE(products.item_type, '') AS item_type,
			COALESCE(products.description, '') AS description,
			ledger_entries.qty`).
		Joins("JOIN cases ON cases.code = ledger_entries.case_code").
		Joins("LEFT JOIN products ON products.upc = ledger_entries.upc").
		Where("cases.is_active = ? AND ledger_entries.qty > 0", true).
		Order("ledger_entries.case_code, ledger_entries.upc").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	return s.exportRows(w, rows)
}

func (s *historyService) ExportCaseCSV(caseCode string, w io.Writer) error {
	if _, err := s.caseRepo.FindActiveByCode(caseCode); err != nil {
		return fmt.Errorf("%w: case %s", ErrNotFound, caseCode)
	}
	var rows []inventoryRow
	err := s.db.Model(&model.LedgerEntry{}).
		Select(`ledger_entries.case_code, cases.name AS case_name, ledger_entries.upc,
			COALESCE(products.item_type, '') AS item_type,
			COALESCE(products.description, '') AS description,
			ledger_entries.qty`).
		Joins("JOIN cases ON cases.code = ledger_entries.case_code").
		Joins("LEFT JOIN products ON products.upc = ledger_entries.upc").
		Where("ledger_entries.case_code = ? AND ledger_entries.qty > 0", caseCode).
		Order("ledger_entries.upc").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	return s.exportRows(w, rows)
}
