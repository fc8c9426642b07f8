package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rabiijabrour/workers-production-system/internal/api/dto"
	"github.com/rabiijabrour/workers-production-system/internal/service"
	apperrors "github.com/rabiijabrour/workers-production-system/pkg/util"
)

// ProductionsHandler exposes piece-count recording and aggregation.
type ProductionsHandler struct {
	productions *service.ProductionService
}

// NewProductionsHandler constructs handler.
func NewProductionsHandler(productionService *service.ProductionService) *ProductionsHandler {
	return &ProductionsHandler{productions: productionService}
}

// List handles GET /api/productions.
func (h *ProductionsHandler) List(c *fiber.Ctx) error {
	entries, err := h.productions.ListEntries(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductionResponses(entries))
}

// Create handles POST /api/productions.
func (h *ProductionsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProductionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if _, err := h.productions.Record(c.Context(), req.WorkerID, req.Pieces); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "production recorded successfully"})
}

// Summary handles GET /api/summary.
func (h *ProductionsHandler) Summary(c *fiber.Ctx) error {
	summaries, err := h.productions.Summary(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSummaryRows(summaries))
}

// Dashboard handles GET /api/production/summary.
func (h *ProductionsHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.productions.Dashboard(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
