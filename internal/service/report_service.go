package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"casetrack/internal/model"
	"casetrack/internal/repository"
	"casetrack/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

type ReportService interface {
	// DailyActivityPDF writes the case's stock movements for one
	// store-local date in the paper activity-log layout.
	DailyActivityPDF(caseCode, localDate string, w io.Writer) error
	// DailyCountPDF writes the latest physical count sheet for the day.
	DailyCountPDF(caseCode, localDate string, w io.Writer) error
}

type reportService struct {
	caseRepo    repository.CaseRepository
	historyRepo repository.HistoryRepository
	countRepo   repository.CountRepository
}

func NewReportService(caseRepo repository.CaseRepository, historyRepo repository.HistoryRepository, countRepo repository.CountRepository) ReportService {
	return &reportService{caseRepo: caseRepo, historyRepo: historyRepo, countRepo: countRepo}
}

// reasonCode maps an action to the legend used on the paper log:
// NRT new receipt, M moved, S sold, D discrepancy.
func reasonCode(action model.ActionType) string {
	switch action {
	case model.ActionReceive:
		return "NRT"
	case model.ActionMove:
		return "M"
	case model.ActionSold:
		return "S"
	case model.ActionMissing:
		return "D"
	}
	return string(action)
}

// initials derives up to two letters from a username for the log column.
func initials(username string) string {
	if username == "" {
		return ""
	}
	parts := strings.Fields(username)
	if len(parts) >= 2 {
		return strings.ToUpper(parts[0][:1] + parts[1][:1])
	}
	clean := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, username)
	if len(clean) > 2 {
		clean = clean[:2]
	}
	return strings.ToUpper(clean)
}

func (s *reportService) DailyActivityPDF(caseCode, localDate string, w io.Writer) error {
	c, err := s.caseRepo.FindActiveByCode(caseCode)
	if err != nil {
		return fmt.Errorf("%w: case %s", ErrNotFound, caseCode)
	}
	localDate = timeutil.NormalizeDate(localDate)
	from, to, err := timeutil.DayBounds(localDate)
	if err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	events, err := s.historyRepo.ActivityForCase(caseCode, from, to)
	if err != nil {
		return err
	}

	day, _ := time.Parse("2006-01-02", localDate)
	loc := timeutil.StoreLocation()

	pdf := gofpdf.New("L", "mm", "A4", "") // Landscape for the full column set
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(277, 9, "DAILY ACTIVITY LOG", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(138, 7, fmt.Sprintf("MONTH: %s", strings.ToUpper(day.Format("January"))), "", 0, "L", false, 0, "")
	pdf.CellFormat(139, 7, fmt.Sprintf("CASE #: %s %s", c.Code, c.Name), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	headers := []struct {
		label string
		width float64
	}{
		{"TIME", 18}, {"DOC #", 24}, {"DESCRIPTION", 78}, {"UPC", 34},
		{"PRICE", 20}, {"DIA", 12}, {"ITEM", 12}, {"REASON", 18},
		{"IN", 14}, {"OUT", 14}, {"INIT", 14},
	}
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for _, h := range headers {
		pdf.CellFormat(h.width, 7, h.label, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, e := range events {
		doc := e.TransReg
		if doc == "" {
			doc = "SYS-" + e.ID.String()[:8]
		}

		desc := e.Notes
		if e.Action == model.ActionSold {
			desc = strings.TrimSpace(strings.Trim(e.DeptNo+" - "+e.BriefDesc, " -"))
		}
		if desc == "" {
			desc = strings.ToUpper(string(e.ItemType))
			if desc == "" {
				desc = "ITEM"
			}
		}
		if e.Action == model.ActionMove {
			if e.ToCaseCode == caseCode {
				desc = fmt.Sprintf("FROM %s - %s", e.FromCaseCode, desc)
			} else {
				desc = fmt.Sprintf("TO %s - %s", e.ToCaseCode, desc)
			}
		}

		price := ""
		if e.Action == model.ActionSold {
			price = fmt.Sprintf("%.2f", e.TicketPrice)
		}
		dia := ""
		switch e.Action {
		case model.ActionSold:
			dia = e.DiamondTest
		case model.ActionReceive:
			dia = "NRT"
		}

		qtyIn, qtyOut := "", ""
		if e.ToCaseCode == caseCode {
			qtyIn = fmt.Sprintf("%d", e.Qty)
		} else if e.FromCaseCode == caseCode {
			qtyOut = fmt.Sprintf("%d", e.Qty)
		}

		cols := []string{
			e.CreatedAt.In(loc).Format("03:04 PM"),
			doc,
			desc,
			e.UPC,
			price,
			dia,
			e.ItemType.Short(),
			reasonCode(e.Action),
			qtyIn,
			qtyOut,
			initials(e.Username),
		}
		for i, col := range cols {
			pdf.CellFormat(headers[i].width, 6, col, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(events) == 0 {
		pdf.CellFormat(258, 6, "No activity recorded for this date.", "1", 1, "C", false, 0, "")
	}

	return pdf.Output(w)
}

func (s *reportService) DailyCountPDF(caseCode, localDate string, w io.Writer) error {
	c, err := s.caseRepo.FindActiveByCode(caseCode)
	if err != nil {
		return fmt.Errorf("%w: case %s", ErrNotFound, caseCode)
	}
	localDate = timeutil.NormalizeDate(localDate)
	day, err := time.Parse("2006-01-02", localDate)
	if err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 9, "DAILY COUNT SHEET", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("%s - %s", strings.ToUpper(day.Format("Monday")), day.Format("01/02/2006")), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("CASE # %s %s", c.Code, c.Name), "", 1, "R", false, 0, "")
	pdf.Ln(3)

	count, err := s.countRepo.LatestForCaseDay(caseCode, localDate)
	if err != nil {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(190, 7, "No count recorded for this date.", "1", 1, "C", false, 0, "")
		return pdf.Output(w)
	}

	rows := []struct {
		label string
		value int
	}{
		{"Bracelets", count.Bracelets},
		{"Rings", count.Rings},
		{"Earrings", count.Earrings},
		{"Necklaces", count.Necklaces},
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(95, 7, "CATEGORY", "1", 0, "C", true, 0, "")
	pdf.CellFormat(95, 7, "COUNTED", "1", 1, "C", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, r := range rows {
		pdf.CellFormat(95, 7, r.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, fmt.Sprintf("%d", r.value), "1", 1, "C", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(95, 7, "TOTAL", "1", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("%d", count.Total), "1", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Counted by: %s (%s)", count.Username, initials(count.Username)), "", 1, "L", false, 0, "")
	if count.Notes != "" {
		pdf.CellFormat(190, 6, "Notes: "+count.Notes, "", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}
