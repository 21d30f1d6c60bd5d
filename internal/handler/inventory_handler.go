package handler

import (
	"casetrack/internal/model"
	"casetrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// scanBody merges an explicit entries array with raw scanner text, so both
// the API and barcode-gun flows hit the same endpoint.
type scanBody struct {
	Entries []service.ScanEntry `json:"entries"`
	UPCs    string              `json:"upcs"`
}

func (b scanBody) entries() []service.ScanEntry {
	return append(b.Entries, service.ParseScanLines(b.UPCs)...)
}

// batchStatus returns 200 when anything applied, 400 when nothing did.
func batchStatus(c *fiber.Ctx, result *service.BatchResult, message string) error {
	status := 200
	if result.AppliedUnits == 0 && result.Failed > 0 {
		status = 400
	}
	return c.Status(status).JSON(fiber.Map{"message": message, "result": result})
}

type receiveRequest struct {
	scanBody
	CaseCode    string         `json:"case_code"`
	ItemType    model.ItemType `json:"item_type"`
	Description string         `json:"description"`
}

func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var req receiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.Receive(service.ReceiveInput{
		CaseCode:    req.CaseCode,
		ItemType:    req.ItemType,
		Description: req.Description,
		Entries:     req.entries(),
	}, getUserID(c), getUsername(c))
	if err != nil {
		return fail(c, err)
	}
	return batchStatus(c, result, "Received")
}

type moveRequest struct {
	scanBody
	FromCase    string `json:"from_case"`
	ToCase      string `json:"to_case"`
	Description string `json:"description"`
}

func (h *InventoryHandler) Move(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.Move(service.MoveInput{
		FromCase:    req.FromCase,
		ToCase:      req.ToCase,
		Description: req.Description,
		Entries:     req.entries(),
	}, getUserID(c), getUsername(c))
	if err != nil {
		return fail(c, err)
	}
	return batchStatus(c, result, "Moved")
}

type sellRequest struct {
	scanBody
	CaseCode string              `json:"case_code"`
	Sold     service.SoldDetails `json:"sold"`
}

func (h *InventoryHandler) Sell(c *fiber.Ctx) error {
	var req sellRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.Sell(service.SellInput{
		CaseCode: req.CaseCode,
		Entries:  req.entries(),
		Sold:     req.Sold,
	}, getUserID(c), getUsername(c))
	if err != nil {
		return fail(c, err)
	}
	return batchStatus(c, result, "Sold")
}

type missingRequest struct {
	scanBody
	CaseCode string `json:"case_code"`
	Notes    string `json:"notes"`
}

func (h *InventoryHandler) MarkMissing(c *fiber.Ctx) error {
	var req missingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.MarkMissing(service.MissingInput{
		CaseCode: req.CaseCode,
		Entries:  req.entries(),
		Notes:    req.Notes,
	}, getUserID(c), getUsername(c))
	if err != nil {
		return fail(c, err)
	}
	return batchStatus(c, result, "Marked missing")
}
