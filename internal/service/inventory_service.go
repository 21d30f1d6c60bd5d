package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"casetrack/internal/model"
	"casetrack/internal/repository"
	"casetrack/internal/ws"
	"casetrack/pkg/validator"

	"gorm.io/gorm"
)

// ReceiveInput books scanned units into a case (New Receipts by default).
// The item type is required and applied fill-once to each UPC.
type ReceiveInput struct {
	CaseCode    string         `json:"case_code"`
	ItemType    model.ItemType `json:"item_type"`
	Description string         `json:"description"`
	Entries     []ScanEntry    `json:"entries"`
}

// MoveInput transfers scanned units between two cases.
type MoveInput struct {
	FromCase    string      `json:"from_case"`
	ToCase      string      `json:"to_case"`
	Description string      `json:"description"`
	Entries     []ScanEntry `json:"entries"`
}

// SoldDetails is the register paperwork required on every sale.
type SoldDetails struct {
	TransReg    string  `json:"trans_reg" validate:"required"`
	DeptNo      string  `json:"dept_no" validate:"required"`
	BriefDesc   string  `json:"brief_desc" validate:"required"`
	TicketPrice float64 `json:"ticket_price" validate:"required,gt=0"`
	DiamondTest string  `json:"diamond_test" validate:"required"`
}

type SellInput struct {
	CaseCode string      `json:"case_code"`
	Entries  []ScanEntry `json:"entries"`
	Sold     SoldDetails `json:"sold"`
}

type MissingInput struct {
	CaseCode string      `json:"case_code"`
	Entries  []ScanEntry `json:"entries"`
	Notes    string      `json:"notes"`
}

// EntryResult is the per-UPC outcome of a bulk operation.
type EntryResult struct {
	UPC   string `json:"upc"`
	Qty   int    `json:"qty"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// BatchResult collects per-entry outcomes. A failed entry never rolls back
// entries that already applied.
type BatchResult struct {
	AppliedUnits int           `json:"applied_units"`
	Failed       int           `json:"failed"`
	Results      []EntryResult `json:"results"`
}

type InventoryService interface {
	Receive(input ReceiveInput, userID, username string) (*BatchResult, error)
	Move(input MoveInput, userID, username string) (*BatchResult, error)
	Sell(input SellInput, userID, username string) (*BatchResult, error)
	MarkMissing(input MissingInput, userID, username string) (*BatchResult, error)
	CaseTypeTotals(caseCode string) (*model.TypeTotals, error)
}

type inventoryService struct {
	caseRepo    repository.CaseRepository
	productRepo repository.ProductRepository
	ledgerRepo  repository.LedgerRepository
	historyRepo repository.HistoryRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewInventoryService(
	caseRepo repository.CaseRepository,
	productRepo repository.ProductRepository,
	ledgerRepo repository.LedgerRepository,
	historyRepo repository.HistoryRepository,
	db *gorm.DB,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		caseRepo:    caseRepo,
		productRepo: productRepo,
		ledgerRepo:  ledgerRepo,
		historyRepo: historyRepo,
		db:          db,
		wsHub:       hub,
	}
}

func (s *inventoryService) ensureActiveCase(code string) error {
	if _, err := s.caseRepo.FindActiveByCode(code); err != nil {
		return fmt.Errorf("%w: case %s", ErrNotFound, code)
	}
	return nil
}

// applyEntries runs op for each entry in its own transaction, collecting
// per-entry outcomes instead of aborting the whole batch.
func applyEntries(db *gorm.DB, entries []ScanEntry, op func(tx *gorm.DB, e ScanEntry) error) *BatchResult {
	result := &BatchResult{Results: make([]EntryResult, 0, len(entries))}
	for _, e := range entries {
		outcome := EntryResult{UPC: e.UPC, Qty: e.Qty}
		if e.UPC == "" || e.Qty <= 0 {
			outcome.Error = "qty must be greater than zero"
			result.Failed++
			result.Results = append(result.Results, outcome)
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			return op(tx, e)
		})
		if err != nil {
			outcome.Error = err.Error()
			result.Failed++
		} else {
			outcome.OK = true
			result.AppliedUnits += e.Qty
		}
		result.Results = append(result.Results, outcome)
	}
	return result
}

func (s *inventoryService) Receive(input ReceiveInput, userID, username string) (*BatchResult, error) {
	if !input.ItemType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidItemType, input.ItemType)
	}
	if input.CaseCode == "" {
		input.CaseCode = model.NewReceiptsCode
	}
	if err := s.ensureActiveCase(input.CaseCode); err != nil {
		return nil, err
	}
	if len(input.Entries) == 0 {
		return nil, fmt.Errorf("%w: scan at least one UPC", ErrValidation)
	}

	result := applyEntries(s.db, input.Entries, func(tx *gorm.DB, e ScanEntry) error {
		if _, err := s.productRepo.Upsert(tx, e.UPC, input.Description, input.ItemType, username); err != nil {
			return err
		}
		if err := s.ledgerRepo.AddQty(tx, input.CaseCode, e.UPC, e.Qty, username); err != nil {
			return err
		}
		rec := &model.HistoryRecord{
			Username:   username,
			Action:     model.ActionReceive,
			UPC:        e.UPC,
			Qty:        e.Qty,
			ToCaseCode: input.CaseCode,
			Notes:      fmt.Sprintf("Received into %s (%s)", input.CaseCode, input.ItemType),
		}
		rec.CreatedBy = userID
		rec.UpdatedBy = userID
		return s.historyRepo.Create(tx, rec)
	})

	s.broadcast("receive", username, map[string]interface{}{
		"case_code":     input.CaseCode,
		"item_type":     input.ItemType,
		"applied_units": result.AppliedUnits,
	})
	return result, nil
}

func (s *inventoryService) Move(input MoveInput, userID, username string) (*BatchResult, error) {
	if input.FromCase == "" || input.ToCase == "" {
		return nil, fmt.Errorf("%w: from and to case are required", ErrValidation)
	}
	if input.FromCase == input.ToCase {
		return nil, fmt.Errorf("%w: destination can't be the same case", ErrValidation)
	}
	if err := s.ensureActiveCase(input.FromCase); err != nil {
		return nil, err
	}
	if err := s.ensureActiveCase(input.ToCase); err != nil {
		return nil, err
	}
	if len(input.Entries) == 0 {
		return nil, fmt.Errorf("%w: scan at least one UPC", ErrValidation)
	}

	result := applyEntries(s.db, input.Entries, func(tx *gorm.DB, e ScanEntry) error {
		// Moves never set an item type; descriptions still fill once.
		if _, err := s.productRepo.Upsert(tx, e.UPC, input.Description, "", username); err != nil {
			return err
		}
		if err := s.removeChecked(tx, input.FromCase, e, username); err != nil {
			return err
		}
		if err := s.ledgerRepo.AddQty(tx, input.ToCase, e.UPC, e.Qty, username); err != nil {
			return err
		}
		rec := &model.HistoryRecord{
			Username:     username,
			Action:       model.ActionMove,
			UPC:          e.UPC,
			Qty:          e.Qty,
			FromCaseCode: input.FromCase,
			ToCaseCode:   input.ToCase,
		}
		rec.CreatedBy = userID
		rec.UpdatedBy = userID
		return s.historyRepo.Create(tx, rec)
	})

	s.broadcast("move", username, map[string]interface{}{
		"from_case":     input.FromCase,
		"to_case":       input.ToCase,
		"applied_units": result.AppliedUnits,
	})
	return result, nil
}

func (s *inventoryService) Sell(input SellInput, userID, username string) (*BatchResult, error) {
	if errs := validator.ValidateStruct(&input.Sold); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
	}
	if !model.DiamondTestOptions[input.Sold.DiamondTest] {
		return nil, fmt.Errorf("%w: diamond test must be Y, N or NRT", ErrValidation)
	}
	if err := s.ensureActiveCase(input.CaseCode); err != nil {
		return nil, err
	}
	if len(input.Entries) == 0 {
		return nil, fmt.Errorf("%w: scan at least one UPC", ErrValidation)
	}

	result := applyEntries(s.db, input.Entries, func(tx *gorm.DB, e ScanEntry) error {
		if err := s.removeChecked(tx, input.CaseCode, e, username); err != nil {
			return err
		}
		rec := &model.HistoryRecord{
			Username:     username,
			Action:       model.ActionSold,
			UPC:          e.UPC,
			Qty:          e.Qty,
			FromCaseCode: input.CaseCode,
			TransReg:     input.Sold.TransReg,
			DeptNo:       input.Sold.DeptNo,
			BriefDesc:    input.Sold.BriefDesc,
			TicketPrice:  input.Sold.TicketPrice,
			DiamondTest:  input.Sold.DiamondTest,
		}
		rec.CreatedBy = userID
		rec.UpdatedBy = userID
		return s.historyRepo.Create(tx, rec)
	})

	s.broadcast("sold", username, map[string]interface{}{
		"case_code":     input.CaseCode,
		"applied_units": result.AppliedUnits,
	})
	return result, nil
}

func (s *inventoryService) MarkMissing(input MissingInput, userID, username string) (*BatchResult, error) {
	if err := s.ensureActiveCase(input.CaseCode); err != nil {
		return nil, err
	}
	if len(input.Entries) == 0 {
		return nil, fmt.Errorf("%w: scan at least one UPC", ErrValidation)
	}
	notes := input.Notes
	if notes == "" {
		notes = "Marked missing"
	}

	result := applyEntries(s.db, input.Entries, func(tx *gorm.DB, e ScanEntry) error {
		if err := s.removeChecked(tx, input.CaseCode, e, username); err != nil {
			return err
		}
		rec := &model.HistoryRecord{
			Username:     username,
			Action:       model.ActionMissing,
			UPC:          e.UPC,
			Qty:          e.Qty,
			FromCaseCode: input.CaseCode,
			Notes:        notes,
		}
		rec.CreatedBy = userID
		rec.UpdatedBy = userID
		return s.historyRepo.Create(tx, rec)
	})

	s.broadcast("missing", username, map[string]interface{}{
		"case_code":     input.CaseCode,
		"applied_units": result.AppliedUnits,
	})
	return result, nil
}

// removeChecked subtracts qty, translating the repository underflow error
// into one that reports what the case actually holds.
func (s *inventoryService) removeChecked(tx *gorm.DB, caseCode string, e ScanEntry, actor string) error {
	err := s.ledgerRepo.RemoveQty(tx, caseCode, e.UPC, e.Qty, actor)
	if errors.Is(err, repository.ErrInsufficient) {
		have, qerr := s.ledgerRepo.Quantity(tx, caseCode, e.UPC)
		if qerr != nil {
			have = 0
		}
		return fmt.Errorf("%w: need %d, have %d", ErrInsufficientQuantity, e.Qty, have)
	}
	return err
}

func (s *inventoryService) CaseTypeTotals(caseCode string) (*model.TypeTotals, error) {
	if err := s.ensureActiveCase(caseCode); err != nil {
		return nil, err
	}
	return s.ledgerRepo.TypeTotals(caseCode)
}

func (s *inventoryService) broadcast(action, username string, detail map[string]interface{}) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "inventory_update",
			"action": action,
			"user":   username,
			"detail": detail,
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
