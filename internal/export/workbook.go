package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/phi"
)

// Consolidated workbook sheet names, in workbook order.
const (
	SheetByBizDev    = "By_Biz_Dev"
	SheetByDrug      = "By_Medication"
	SheetByPhysician = "By_Physician"
	SheetClaims      = "Claims"
)

// Sheet is one named tab of a workbook export.
type Sheet struct {
	Name  string
	Table model.Table
}

// WriteWorkbook writes the sheets to one xlsx file, redacting each table
// first. Sheet order in the file follows slice order.
func WriteWorkbook(path string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				return fmt.Errorf("rename sheet %q: %w", s.Name, err)
			}
		} else {
			if _, err := f.NewSheet(s.Name); err != nil {
				return fmt.Errorf("add sheet %q: %w", s.Name, err)
			}
		}

		t := phi.Redact(s.Table)
		if err := writeSheet(f, s.Name, t); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, t model.Table) error {
	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("write sheet %q header: %w", name, err)
	}
	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("sheet %q row %d: %w", name, i+2, err)
		}
		if err := f.SetSheetRow(name, addr, &cells); err != nil {
			return fmt.Errorf("write sheet %q row %d: %w", name, i+2, err)
		}
	}
	return nil
}
