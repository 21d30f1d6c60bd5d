package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"casetrack/internal/model"
	"casetrack/internal/repository"
	"casetrack/internal/timeutil"
)

// CountInput is one physical count of a case, by category.
type CountInput struct {
	CaseCode  string `json:"case_code"`
	Earrings  int    `json:"earrings" validate:"gte=0"`
	Rings     int    `json:"rings" validate:"gte=0"`
	Necklaces int    `json:"necklaces" validate:"gte=0"`
	Bracelets int    `json:"bracelets" validate:"gte=0"`
	Notes     string `json:"notes"`
}

// CountStatus pairs a case's latest count for a day with the live system
// totals, so variance shows up immediately.
type CountStatus struct {
	Case      model.CaseSummary `json:"case"`
	Count     *model.CaseCount  `json:"count,omitempty"`
	SysTotals model.TypeTotals  `json:"sys_totals"`
	Variance  int               `json:"variance"`
	HasCount  bool              `json:"has_count"`
}

type CountService interface {
	Record(input CountInput, userID, username string) (*model.CaseCount, error)
	StatusForDay(localDate string) ([]CountStatus, error)
	ExportCSV(caseCode, localDate string, w io.Writer) error
}

type countService struct {
	countRepo  repository.CountRepository
	caseRepo   repository.CaseRepository
	ledgerRepo repository.LedgerRepository
}

func NewCountService(countRepo repository.CountRepository, caseRepo repository.CaseRepository, ledgerRepo repository.LedgerRepository) CountService {
	return &countService{countRepo: countRepo, caseRepo: caseRepo, ledgerRepo: ledgerRepo}
}

func (s *countService) Record(input CountInput, userID, username string) (*model.CaseCount, error) {
	if _, err := s.caseRepo.FindActiveByCode(input.CaseCode); err != nil {
		return nil, fmt.Errorf("%w: case %s", ErrNotFound, input.CaseCode)
	}
	if input.Earrings < 0 || input.Rings < 0 || input.Necklaces < 0 || input.Bracelets < 0 {
		return nil, fmt.Errorf("%w: counts must be whole numbers (0 or higher)", ErrValidation)
	}

	count := &model.CaseCount{
		LocalDate: timeutil.Today(),
		CaseCode:  input.CaseCode,
		Username:  username,
		Earrings:  input.Earrings,
		Rings:     input.Rings,
		Necklaces: input.Necklaces,
		Bracelets: input.Bracelets,
		Notes:     input.Notes,
	}
	count.ComputeTotal()
	count.CreatedBy = userID
	count.UpdatedBy = userID

	if err := s.countRepo.Create(count); err != nil {
		return nil, err
	}
	return count, nil
}

func (s *countService) StatusForDay(localDate string) ([]CountStatus, error) {
	if localDate == "" {
		localDate = timeutil.Today()
	}
	localDate = timeutil.NormalizeDate(localDate)

	summaries, err := s.caseRepo.Summaries()
	if err != nil {
		return nil, err
	}
	counts, err := s.countRepo.LatestPerCaseForDay(localDate)
	if err != nil {
		return nil, err
	}
	byCase := make(map[string]*model.CaseCount, len(counts))
	for i := range counts {
		byCase[counts[i].CaseCode] = &counts[i]
	}

	statuses := make([]CountStatus, 0, len(summaries))
	for _, sum := range summaries {
		totals, err := s.ledgerRepo.TypeTotals(sum.Code)
		if err != nil {
			return nil, err
		}
		status := CountStatus{Case: sum, SysTotals: *totals}
		if count, ok := byCase[sum.Code]; ok {
			status.Count = count
			status.HasCount = true
			status.Variance = count.Total - totals.Total
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (s *countService) ExportCSV(caseCode, localDate string, w io.Writer) error {
	counts, err := s.countRepo.Find(caseCode, timeutil.NormalizeDate(localDate), 5000)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"ts_utc", "local_date", "case_code", "username",
		"earrings", "rings", "necklaces", "bracelets", "total", "notes",
	}); err != nil {
		return err
	}
	for _, c := range counts {
		if err := cw.Write([]string{
			c.CreatedAt.UTC().Format(time.RFC3339),
			c.LocalDate,
			c.CaseCode,
			c.Username,
			strconv.Itoa(c.Earrings),
			strconv.Itoa(c.Rings),
			strconv.Itoa(c.Necklaces),
			strconv.Itoa(c.Bracelets),
			strconv.Itoa(c.Total),
			c.Notes,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
