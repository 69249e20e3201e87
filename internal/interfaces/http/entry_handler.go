package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/timesheet-api/internal/application/dto"
	"github.com/jhoicas/timesheet-api/internal/application/usecase"
)

// EntryHandler maneja las timesheet entries.
type EntryHandler struct {
	uc *usecase.EntryUseCase
}

// NewEntryHandler construye el handler de entries.
func NewEntryHandler(uc *usecase.EntryUseCase) *EntryHandler {
	return &EntryHandler{uc: uc}
}

// CreateBulk godoc
// @Summary      Crear entries en bloque (company → jobs → crews)
// @Description  Procesa cada unidad job × crew por separado: las fallidas no
// @Description  revierten a las exitosas. 201 si al menos una se creó; 400 con
// @Description  el mismo detalle si ninguna.
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntriesRequest  true  "company_id, entry_date, jobs"
// @Success      201   {object}  dto.CreateEntriesResponse
// @Failure      400   {object}  dto.CreateEntriesResponse
// @Router       /api/timesheet/entries [post]
func (h *EntryHandler) CreateBulk(c *fiber.Ctx) error {
	var in dto.CreateEntriesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateBulk(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	if out.Created == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar entries (los program managers solo ven las suyas)
// @Tags         entries
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD, inclusive"
// @Param        end_date    query  string  false  "YYYY-MM-DD, inclusive"
// @Success      200  {array}  dto.EntryResponse
// @Router       /api/timesheet/entries [get]
func (h *EntryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetPrincipal(c), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener una entry
// @Tags         entries
// @Produce      json
// @Param        id  path  string  true  "entry id"
// @Success      200  {object}  dto.EntryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/timesheet/entries/{id} [get]
func (h *EntryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar una entry (reemplaza escalares e intervalos completos)
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "entry id"
// @Param        body  body  dto.UpdateEntryRequest  true  "entry"
// @Success      200   {object}  dto.EntryResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/timesheet/entries/{id} [put]
func (h *EntryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar una entry con sus intervalos
// @Tags         entries
// @Produce      json
// @Param        id  path  string  true  "entry id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/timesheet/entries/{id} [delete]
func (h *EntryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetPrincipal(c), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "entry eliminada"})
}
