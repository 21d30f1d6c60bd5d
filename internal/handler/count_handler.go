package handler

import (
	"bytes"

	"casetrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CountHandler struct {
	service service.CountService
}

func NewCountHandler(s service.CountService) *CountHandler {
	return &CountHandler{service: s}
}

func (h *CountHandler) Status(c *fiber.Ctx) error {
	statuses, err := h.service.StatusForDay(c.Query("date"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(statuses)
}

type countRequest struct {
	Earrings  int    `json:"earrings"`
	Rings     int    `json:"rings"`
	Necklaces int    `json:"necklaces"`
	Bracelets int    `json:"bracelets"`
	Notes     string `json:"notes"`
}

func (h *CountHandler) Record(c *fiber.Ctx) error {
	var req countRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	count, err := h.service.Record(service.CountInput{
		CaseCode:  c.Params("code"),
		Earrings:  req.Earrings,
		Rings:     req.Rings,
		Necklaces: req.Necklaces,
		Bracelets: req.Bracelets,
		Notes:     req.Notes,
	}, getUserID(c), getUsername(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Count saved", "data": count})
}

func (h *CountHandler) ExportCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.ExportCSV(c.Query("case_code"), c.Query("date"), &buf); err != nil {
		return fail(c, err)
	}
	return sendCSV(c, "counts_history.csv", &buf)
}
