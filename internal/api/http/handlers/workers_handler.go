package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rabiijabrour/workers-production-system/internal/api/dto"
	"github.com/rabiijabrour/workers-production-system/internal/service"
	apperrors "github.com/rabiijabrour/workers-production-system/pkg/util"
)

// WorkersHandler exposes the worker roster endpoints.
type WorkersHandler struct {
	workers *service.WorkerService
}

// NewWorkersHandler constructs handler.
func NewWorkersHandler(workerService *service.WorkerService) *WorkersHandler {
	return &WorkersHandler{workers: workerService}
}

// List handles GET /api/workers.
func (h *WorkersHandler) List(c *fiber.Ctx) error {
	workers, err := h.workers.ListWorkers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewWorkerResponses(workers))
}

// Create handles POST /api/workers.
func (h *WorkersHandler) Create(c *fiber.Ctx) error {
	var req dto.WorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if _, err := h.workers.AddWorker(c.Context(), req.ID, req.Name, req.Department); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "worker added successfully"})
}

// Delete handles DELETE /api/workers/:id.
func (h *WorkersHandler) Delete(c *fiber.Ctx) error {
	if err := h.workers.RemoveWorker(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "worker deleted successfully"})
}
