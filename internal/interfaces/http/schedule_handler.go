package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/granitflow/granitflow-api/internal/application/dto"
	"github.com/granitflow/granitflow-api/internal/application/usecase"
)

// ScheduleHandler endpoints da agenda.
type ScheduleHandler struct {
	uc *usecase.ScheduleUseCase
}

// NewScheduleHandler constrói o handler.
func NewScheduleHandler(uc *usecase.ScheduleUseCase) *ScheduleHandler {
	return &ScheduleHandler{uc: uc}
}

// Create POST /api/schedule
func (h *ScheduleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateScheduleEventRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	event, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// List GET /api/schedule?date=2026-09-01
func (h *ScheduleHandler) List(c *fiber.Ctx) error {
	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date deve estar no formato AAAA-MM-DD"})
		}
		date = &parsed
	}
	list, err := h.uc.List(date)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/schedule/:id
func (h *ScheduleHandler) GetByID(c *fiber.Ctx) error {
	event, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}

// Update PUT /api/schedule/:id
func (h *ScheduleHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateScheduleEventRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	event, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}

// Delete DELETE /api/schedule/:id
func (h *ScheduleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
