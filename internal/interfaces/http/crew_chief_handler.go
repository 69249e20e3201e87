package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/timesheet-api/internal/application/dto"
	"github.com/jhoicas/timesheet-api/internal/application/usecase"
)

// CrewChiefHandler maneja el registro de crew chiefs.
type CrewChiefHandler struct {
	uc *usecase.CrewChiefUseCase
}

// NewCrewChiefHandler construye el handler de crew chiefs.
func NewCrewChiefHandler(uc *usecase.CrewChiefUseCase) *CrewChiefHandler {
	return &CrewChiefHandler{uc: uc}
}

// List godoc
// @Summary      Listar crew chiefs
// @Tags         crew-chiefs
// @Produce      json
// @Param        company_id  query  string  false  "filtrar por company"
// @Success      200  {array}  dto.CrewChiefResponse
// @Router       /api/timesheet/crew-chiefs [get]
func (h *CrewChiefHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("company_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear crew chief (find-or-create por nombre y company)
// @Tags         crew-chiefs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCrewChiefRequest  true  "name, company_id"
// @Success      200   {object}  dto.CrewChiefResponse  "existed=true si ya estaba"
// @Success      201   {object}  dto.CrewChiefResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/timesheet/crew-chiefs [post]
func (h *CrewChiefHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCrewChiefRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.FindOrCreate(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	if out.Existed {
		return c.JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar crew chief
// @Tags         crew-chiefs
// @Produce      json
// @Param        id  path  string  true  "crew chief id"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/timesheet/crew-chiefs/{id} [delete]
func (h *CrewChiefHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "crew chief eliminado"})
}
