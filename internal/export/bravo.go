// Package export writes report rows into spreadsheet files.
package export

import (
	"bytes"
	"fmt"

	"hr-timesheet-backend/internal/usecase"

	"github.com/xuri/excelize/v2"
)

const bravoSheet = "Bravo"

// BravoHeaders is the column order of the payroll import sheet.
var BravoHeaders = []string{
	"Ngày", "Người nhập", "Mã bộ phận", "Đánh dấu",
	"Mã nhân viên", "Họ và tên", "Ký hiệu", "Loại công",
}

// BravoXLSX renders rows as a single-sheet workbook. Every cell is written
// as text so leading zeros in codes survive the import.
func BravoXLSX(rows []usecase.BravoRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", bravoSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range BravoHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellStr(bravoSheet, cell, h); err != nil {
			return nil, err
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(BravoHeaders))
	if err := f.SetCellStyle(bravoSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}

	for i, r := range rows {
		values := []string{
			r.Date, r.EntryUser, r.DepartmentCode, r.Marker,
			r.EmployeeCode, r.EmployeeName, r.AttendanceCode, r.CategoryLabel,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellStr(bravoSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	_ = f.SetColWidth(bravoSheet, "A", "A", 12)
	_ = f.SetColWidth(bravoSheet, "F", "F", 28)
	_ = f.SetColWidth(bravoSheet, "H", "H", 22)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write bravo workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func BravoFilename(month, year int) string {
	return fmt.Sprintf("bravo_%02d_%d.xlsx", month, year)
}
