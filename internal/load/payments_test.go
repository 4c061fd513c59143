package load

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func writePaymentsXLSX(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "payments.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	return path
}

func TestPaymentsDailyRollup(t *testing.T) {
	path := writePaymentsXLSX(t, [][]interface{}{
		{"Last Service Date", "Paid Amount", "Paid/Infusion", "# of Infusions"},
		{"2025-02-03", "$10,000", "$5,000", "2"},
		{"2025-02-01", "$0", "$0", "1"},
		{"2025-02-03", "$2,000", "$1,000", "1"},
		{"", "$999", "", ""}, // undated total row, must be skipped
	})

	daily, err := Payments(path, 0.30)
	if err != nil {
		t.Fatalf("Payments: %v", err)
	}
	if len(daily) != 2 {
		t.Fatalf("expected 2 days, got %d", len(daily))
	}

	if !daily[0].Date.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("series must be chronological, first = %v", daily[0].Date)
	}
	if daily[0].Paid != 0 || daily[0].Infusions != 1 {
		t.Errorf("day 1: paid=%v infusions=%v", daily[0].Paid, daily[0].Infusions)
	}

	d := daily[1]
	if d.Paid != 12000 {
		t.Errorf("same-date rows must sum, paid = %v", d.Paid)
	}
	if d.CumulativeCash != 12000 {
		t.Errorf("CumulativeCash = %v", d.CumulativeCash)
	}
	if d.CumulativeInfusions != 4 {
		t.Errorf("CumulativeInfusions = %v", d.CumulativeInfusions)
	}
	if d.EarnedShare != 12000*0.30 {
		t.Errorf("EarnedShare = %v", d.EarnedShare)
	}
}

func TestPaymentsMissingDateColumn(t *testing.T) {
	path := writePaymentsXLSX(t, [][]interface{}{
		{"Paid Amount"},
		{"$100"},
	})
	if _, err := Payments(path, 0.30); err == nil {
		t.Fatal("expected error for missing date column")
	}
}

func TestPaymentsMissingFile(t *testing.T) {
	if _, err := Payments(filepath.Join(t.TempDir(), "nope.xlsx"), 0.30); err == nil {
		t.Fatal("expected error for missing workbook")
	}
}
