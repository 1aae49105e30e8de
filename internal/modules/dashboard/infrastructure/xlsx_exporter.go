package infrastructure

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"mesaYaConsole/internal/modules/dashboard/application/port"
	"mesaYaConsole/internal/modules/dashboard/domain"
)

const (
	daySheet     = "Reservas"
	summarySheet = "Resumen"
)

var dayColumns = []string{"HORA", "MESA", "CLIENTE", "PERSONAS", "ESTADO", "NOTAS"}

// XLSXExporter writes the dashboard day as an Excel workbook: one sheet with
// the day's reservations and one with the headline stats.
type XLSXExporter struct{}

var _ port.DayExporter = XLSXExporter{}

func (XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXExporter) Extension() string {
	return ".xlsx"
}

func (XLSXExporter) Export(w io.Writer, overview domain.Overview) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", daySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRow(file, daySheet, 1, toAny(dayColumns)); err != nil {
		return err
	}
	if style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		end, _ := excelize.CoordinatesToCellName(len(dayColumns), 1)
		_ = file.SetCellStyle(daySheet, "A1", end, style)
	}
	for i, row := range overview.Reservations {
		values := []any{
			row.Time,
			row.Reservation.TableNumber,
			row.CustomerName,
			row.Reservation.PartySize,
			string(row.Reservation.State),
			row.Reservation.Notes,
		}
		if err := writeRow(file, daySheet, i+2, values); err != nil {
			return err
		}
	}

	if _, err := file.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", summarySheet, err)
	}
	stats := overview.Stats
	summary := [][]any{
		{"Fecha", overview.Date},
		{"Total Reservas Hoy", stats.TodayCount},
		{"Canceladas", stats.CancelledToday},
		{"Ocupación Actual (%)", stats.OccupancyPercent},
		{"Mesas Disponibles", stats.AvailableTables},
		{"Capacidad Promedio", stats.AverageCapacity},
	}
	for i, values := range summary {
		if err := writeRow(file, summarySheet, i+1, values); err != nil {
			return err
		}
	}

	return file.Write(w)
}

func writeRow(file *excelize.File, sheet string, rowNumber int, values []any) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNumber)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, value := range values {
		out[i] = value
	}
	return out
}
