package handler

import (
	"bytes"
	"fmt"
	"strings"

	"casetrack/internal/service"
	"casetrack/internal/timeutil"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

func reportDate(c *fiber.Ctx) string {
	date := c.Query("date")
	if date == "" {
		return timeutil.Today()
	}
	return timeutil.NormalizeDate(date)
}

func sendPDF(c *fiber.Ctx, filename string, buf *bytes.Buffer) error {
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(buf.Bytes())
}

func (h *ReportHandler) DailyActivity(c *fiber.Ctx) error {
	code := c.Params("code")
	date := reportDate(c)

	var buf bytes.Buffer
	if err := h.service.DailyActivityPDF(code, date, &buf); err != nil {
		return fail(c, err)
	}
	name := fmt.Sprintf("Daily_Activity_%s_%s.pdf", code, strings.ReplaceAll(date, "-", ""))
	return sendPDF(c, name, &buf)
}

func (h *ReportHandler) DailyCount(c *fiber.Ctx) error {
	code := c.Params("code")
	date := reportDate(c)

	var buf bytes.Buffer
	if err := h.service.DailyCountPDF(code, date, &buf); err != nil {
		return fail(c, err)
	}
	name := fmt.Sprintf("Daily_Count_%s_%s.pdf", code, strings.ReplaceAll(date, "-", ""))
	return sendPDF(c, name, &buf)
}
