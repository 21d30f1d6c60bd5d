package handler

import (
	"casetrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CaseHandler struct {
	service service.CaseService
}

func NewCaseHandler(s service.CaseService) *CaseHandler {
	return &CaseHandler{service: s}
}

func (h *CaseHandler) List(c *fiber.Ctx) error {
	cases, err := h.service.List()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(cases)
}

func (h *CaseHandler) Get(c *fiber.Ctx) error {
	detail, err := h.service.Get(c.Params("code"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(detail)
}

func (h *CaseHandler) Items(c *fiber.Ctx) error {
	items, err := h.service.Items(c.Params("code"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"case_code": c.Params("code"), "items": items})
}

type createCaseRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (h *CaseHandler) Create(c *fiber.Ctx) error {
	var req createCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	created, err := h.service.Create(req.Code, req.Name, getUserID(c), getUsername(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Case created", "data": created})
}

type renameCaseRequest struct {
	Name string `json:"name"`
}

func (h *CaseHandler) Rename(c *fiber.Ctx) error {
	var req renameCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	renamed, err := h.service.Rename(c.Params("code"), req.Name, getUserID(c), getUsername(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Case renamed", "data": renamed})
}

func (h *CaseHandler) Archive(c *fiber.Ctx) error {
	if err := h.service.Archive(c.Params("code"), getUserID(c), getUsername(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Case deleted (archived)"})
}
