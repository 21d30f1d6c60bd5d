package handler

import (
	"bytes"
	"fmt"
	"time"

	"casetrack/internal/model"
	"casetrack/internal/repository"
	"casetrack/internal/service"
	"casetrack/internal/timeutil"

	"github.com/gofiber/fiber/v2"
)

type HistoryHandler struct {
	service service.HistoryService
}

func NewHistoryHandler(s service.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: s}
}

func historyFilter(c *fiber.Ctx) repository.HistoryFilter {
	filter := repository.HistoryFilter{
		CaseCode: c.Query("case_code"),
		UPC:      c.Query("upc"),
		Action:   model.ActionType(c.Query("action")),
	}
	if from := timeutil.NormalizeDate(c.Query("from")); from != "" {
		if start, _, err := timeutil.DayBounds(from); err == nil {
			filter.From = start
		}
	}
	if to := timeutil.NormalizeDate(c.Query("to")); to != "" {
		if _, end, err := timeutil.DayBounds(to); err == nil {
			filter.To = end
		}
	}
	return filter
}

func (h *HistoryHandler) List(c *fiber.Ctx) error {
	records, err := h.service.List(historyFilter(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(records)
}

func sendCSV(c *fiber.Ctx, filename string, buf *bytes.Buffer) error {
	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(buf.Bytes())
}

func (h *HistoryHandler) ExportCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.ExportCSV(historyFilter(c), &buf); err != nil {
		return fail(c, err)
	}
	return sendCSV(c, "events_history.csv", &buf)
}

func (h *HistoryHandler) ExportInventoryCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.ExportInventoryCSV(&buf); err != nil {
		return fail(c, err)
	}
	name := fmt.Sprintf("inventory_%s.csv", time.Now().In(timeutil.StoreLocation()).Format("01-02-2006_1504"))
	return sendCSV(c, name, &buf)
}

func (h *HistoryHandler) ExportCaseCSV(c *fiber.Ctx) error {
	code := c.Params("code")
	var buf bytes.Buffer
	if err := h.service.ExportCaseCSV(code, &buf); err != nil {
		return fail(c, err)
	}
	name := fmt.Sprintf("case_%s_%s.csv", code, time.Now().In(timeutil.StoreLocation()).Format("01-02-2006_1504"))
	return sendCSV(c, name, &buf)
}
