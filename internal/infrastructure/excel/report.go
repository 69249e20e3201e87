// Package excel: genera el reporte xlsx de timesheets. Una fila de encabezado
// y una fila por intervalo; los campos de la entry solo aparecen en la primera
// fila de cada grupo (filas de continuación en blanco).
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/timesheet-api/internal/domain/entity"
	"github.com/jhoicas/timesheet-api/internal/domain/timesheet"
)

const sheetName = "Timesheets"

var headers = []string{
	"Job ID", "Unique ID", "Date", "Company", "Job Type",
	"Crew Chief", "Employee Code", "Time In", "Time Out", "Total Hours",
}

var colWidths = []float64{16, 16, 12, 20, 10, 20, 15, 10, 10, 12}

// BuildReport construye el libro xlsx en memoria a partir de las entries dadas.
func BuildReport(entries []*entity.TimesheetEntry) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("renombrar hoja: %w", err)
	}

	for i, w := range colWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, col, col, w); err != nil {
			return nil, fmt.Errorf("ancho de columna: %w", err)
		}
	}

	row := 1
	if err := setRow(f, row, toAnySlice(headers)); err != nil {
		return nil, err
	}

	for _, e := range entries {
		total := timesheet.FormatHours(timesheet.TotalMinutes(e.Intervals))
		date := e.EntryDate.Format("2006-01-02")

		if len(e.Intervals) == 0 {
			row++
			if err := setRow(f, row, []any{
				e.JobID, e.UniqueID, date, e.CompanyName, e.JobTypeCode,
				e.CrewChiefName, e.EmployeeCode, "", "", "0h 0m",
			}); err != nil {
				return nil, err
			}
			continue
		}

		for i, iv := range e.Intervals {
			row++
			values := []any{"", "", "", "", "", "", "", iv.TimeIn, iv.TimeOut, ""}
			if i == 0 {
				values = []any{
					e.JobID, e.UniqueID, date, e.CompanyName, e.JobTypeCode,
					e.CrewChiefName, e.EmployeeCode, iv.TimeIn, iv.TimeOut, total,
				}
			}
			if err := setRow(f, row, values); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// WriteReport serializa el reporte a bytes listos para el download HTTP.
func WriteReport(entries []*entity.TimesheetEntry) ([]byte, error) {
	f, err := BuildReport(entries)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serializar xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("fila %d: %w", row, err)
	}
	return nil
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
