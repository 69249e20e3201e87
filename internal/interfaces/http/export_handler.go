package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/timesheet-api/internal/application/dto"
	"github.com/jhoicas/timesheet-api/internal/application/usecase"
	"github.com/jhoicas/timesheet-api/internal/infrastructure/excel"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler genera el reporte Excel de entries.
type ExportHandler struct {
	uc *usecase.EntryUseCase
}

// NewExportHandler construye el handler de exportación.
func NewExportHandler(uc *usecase.EntryUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Excel godoc
// @Summary      Exportar entries a Excel
// @Description  Mismo alcance de visibilidad que el listado JSON: los program
// @Description  managers solo exportan sus propias entries.
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        start_date  query  string  false  "YYYY-MM-DD, inclusive"
// @Param        end_date    query  string  false  "YYYY-MM-DD, inclusive"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/export/excel [get]
func (h *ExportHandler) Excel(c *fiber.Ctx) error {
	start := c.Query("start_date")
	end := c.Query("end_date")

	entries, err := h.uc.ListEntities(c.Context(), GetPrincipal(c), start, end)
	if err != nil {
		return writeDomainError(c, err)
	}
	if len(entries) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "no hay entries en el rango solicitado",
		})
	}

	data, err := excel.WriteReport(entries)
	if err != nil {
		return writeDomainError(c, err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="timesheets_%s_to_%s.xlsx"`, orAll(start), orAll(end)))
	return c.Send(data)
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}
