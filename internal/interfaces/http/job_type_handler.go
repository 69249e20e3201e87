package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/timesheet-api/internal/application/dto"
	"github.com/jhoicas/timesheet-api/internal/application/usecase"
)

// JobTypeHandler maneja el catálogo de job types.
type JobTypeHandler struct {
	uc *usecase.JobTypeUseCase
}

// NewJobTypeHandler construye el handler de job types.
func NewJobTypeHandler(uc *usecase.JobTypeUseCase) *JobTypeHandler {
	return &JobTypeHandler{uc: uc}
}

// List godoc
// @Summary      Listar job types (catálogo fijo como fallback)
// @Tags         job-types
// @Produce      json
// @Success      200  {array}  dto.JobTypeResponse
// @Router       /api/timesheet/job-types [get]
func (h *JobTypeHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.List(c.Context()))
}

// Create godoc
// @Summary      Crear job type
// @Tags         job-types
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateJobTypeRequest  true  "code, name"
// @Success      201   {object}  dto.JobTypeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/timesheet/job-types [post]
func (h *JobTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar job type
// @Tags         job-types
// @Produce      json
// @Param        id  path  string  true  "job type id"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/timesheet/job-types/{id} [delete]
func (h *JobTypeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "job type eliminado"})
}
