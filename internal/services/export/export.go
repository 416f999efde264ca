// Package export собирает график смен в xlsx-файл.
package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sevnx/shift_backend/internal/repositories"
)

const sheetName = "Schedule"

type Exporter struct {
	shifts *repositories.ShiftRepository
}

func NewExporter(shifts *repositories.ShiftRepository) *Exporter {
	return &Exporter{shifts: shifts}
}

// BuildMonth формирует книгу со сменами месяца YYYY-MM: одна строка
// на смену (дата, тип, сотрудник, статус, заметки).
func (e *Exporter) BuildMonth(ctx context.Context, month string) (*excelize.File, error) {
	start, end, err := repositories.MonthRange(month)
	if err != nil {
		return nil, err
	}

	shifts, err := e.shifts.ListRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"Date", "Shift", "Employee", "Status", "Notes"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for i, s := range shifts {
		row := i + 2
		shiftLabel := s.ShiftType
		if s.CustomName != nil && *s.CustomName != "" {
			shiftLabel = fmt.Sprintf("%s (%s)", s.ShiftType, *s.CustomName)
		}
		notes := ""
		if s.Notes != nil {
			notes = *s.Notes
		}
		values := []interface{}{s.ShiftDate, shiftLabel, s.EmployeeName, s.Status, notes}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
