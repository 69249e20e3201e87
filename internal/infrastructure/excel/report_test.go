package excel_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/timesheet-api/internal/domain/entity"
	"github.com/jhoicas/timesheet-api/internal/infrastructure/excel"
)

func sampleEntries() []*entity.TimesheetEntry {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	return []*entity.TimesheetEntry{
		{
			JobID: "KSC-25-0001-WTR", UniqueID: "TS-20250602-0001",
			CompanyName: "KS Construction", JobTypeCode: "WTR",
			CrewChiefName: "John Doe", EmployeeCode: "EMP001", EntryDate: date,
			Intervals: []entity.TimeInterval{
				{TimeIn: "09:00", TimeOut: "12:00"},
				{TimeIn: "13:00", TimeOut: "17:30"},
			},
		},
		{
			JobID: "ALP-25-0002-MLD", UniqueID: "TS-20250602-0002",
			CompanyName: "Alpine Builders", JobTypeCode: "MLD",
			CrewChiefName: "Jane Smith", EmployeeCode: "EMP002", EntryDate: date,
			Intervals: []entity.TimeInterval{
				{TimeIn: "08:00", TimeOut: "16:00"},
			},
		},
	}
}

func TestWriteReport_TotalesYFilasDeContinuacion(t *testing.T) {
	data, err := excel.WriteReport(sampleEntries())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue("Timesheets", cell)
		require.NoError(t, err)
		return v
	}

	// Encabezado
	assert.Equal(t, "Job ID", get("A1"))
	assert.Equal(t, "Total Hours", get("J1"))

	// Primera entry: dos intervalos, total solo en la primera fila
	assert.Equal(t, "KSC-25-0001-WTR", get("A2"))
	assert.Equal(t, "2025-06-02", get("C2"))
	assert.Equal(t, "09:00", get("H2"))
	assert.Equal(t, "7h 30m", get("J2"), "total = (12:00-09:00) + (17:30-13:00)")

	// Fila de continuación: campos de entry en blanco, solo horas
	assert.Equal(t, "", get("A3"))
	assert.Equal(t, "", get("J3"))
	assert.Equal(t, "13:00", get("H3"))
	assert.Equal(t, "17:30", get("I3"))

	// Segunda entry en la fila siguiente
	assert.Equal(t, "ALP-25-0002-MLD", get("A4"))
	assert.Equal(t, "8h 0m", get("J4"))
}

func TestWriteReport_EntrySinIntervalos(t *testing.T) {
	entries := sampleEntries()[:1]
	entries[0].Intervals = nil

	data, err := excel.WriteReport(entries)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Timesheets", "J2")
	require.NoError(t, err)
	assert.Equal(t, "0h 0m", v)
}
