package load

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var start2025 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func writeClaimsCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "claims.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestClaimsTypedFields(t *testing.T) {
	path := writeClaimsCSV(t,
		"Created On,Rx Number,Dispensed Drug,Marketer Name,Total Price Paid,WAC Price,340B Inventory,Infusions,Prescriber Full Name\n"+
			"2025-02-10,RX1,kRYSTEXXA,\"Harper, Amy\",\"$1,250.00\",$900,340B Contract,2,\"Smith, John\"\n"+
			"2025-02-11,RX2,,,,not-a-number,Retail,,\"Jones, Mary\"\n")

	tbl, err := Claims(path, start2025)
	if err != nil {
		t.Fatalf("Claims: %v", err)
	}
	if len(tbl.Claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(tbl.Claims))
	}

	c := tbl.Claims[0]
	if c.TotalPricePaid != 1250 {
		t.Errorf("TotalPricePaid = %v", c.TotalPricePaid)
	}
	if c.WACPrice != 900 {
		t.Errorf("WACPrice = %v", c.WACPrice)
	}
	if c.DispensedDrug != "Krystexxa" {
		t.Errorf("DispensedDrug = %q", c.DispensedDrug)
	}
	if c.BizDevName != "Harper, Amy" {
		t.Errorf("Marketer Name should map to Biz Dev Name, got %q", c.BizDevName)
	}
	if c.InventoryType != "340B" {
		t.Errorf("InventoryType = %q", c.InventoryType)
	}
	if c.Infusions != 2 {
		t.Errorf("Infusions = %v", c.Infusions)
	}
	if c.Month != "2025-02" {
		t.Errorf("Month = %q", c.Month)
	}

	c2 := tbl.Claims[1]
	if c2.DispensedDrug != "Unknown" {
		t.Errorf("empty drug should default to Unknown, got %q", c2.DispensedDrug)
	}
	if c2.BizDevName != "Unknown" {
		t.Errorf("empty rep should default to Unknown, got %q", c2.BizDevName)
	}
	if c2.WACPrice != 0 {
		t.Errorf("malformed price should coerce to 0, got %v", c2.WACPrice)
	}
	if c2.Infusions != 1 {
		t.Errorf("missing infusions should default to 1, got %v", c2.Infusions)
	}
	if c2.InventoryType != "Rx" {
		t.Errorf("non-340B inventory value should tag Rx, got %q", c2.InventoryType)
	}
}

func TestClaimsInventoryDefault(t *testing.T) {
	path := writeClaimsCSV(t,
		"Created On,Rx Number\n2025-03-01,RX9\n")
	tbl, err := Claims(path, start2025)
	if err != nil {
		t.Fatalf("Claims: %v", err)
	}
	if tbl.Claims[0].InventoryType != "340B" {
		t.Errorf("no inventory column should default to 340B, got %q", tbl.Claims[0].InventoryType)
	}
}

func TestClaimsDropsPreStartAndUndatedRows(t *testing.T) {
	path := writeClaimsCSV(t,
		"Created On,Rx Number\n"+
			"2024-12-31,OLD\n"+
			"garbage,BAD\n"+
			"2025-01-01,KEEP\n")
	tbl, err := Claims(path, start2025)
	if err != nil {
		t.Fatalf("Claims: %v", err)
	}
	if len(tbl.Claims) != 1 || tbl.Claims[0].RxNumber != "KEEP" {
		t.Fatalf("expected only the in-range row, got %+v", tbl.Claims)
	}
}

func TestClaimsPreservesSourceCells(t *testing.T) {
	path := writeClaimsCSV(t,
		"Created On,Rx Number,Patient Full Name,Custom Vendor Column\n"+
			"2025-04-01,RX1,\"Doe, Jane\",custom-value\n")
	tbl, err := Claims(path, start2025)
	if err != nil {
		t.Fatalf("Claims: %v", err)
	}
	src := tbl.Claims[0].Source
	if src["Custom Vendor Column"] != "custom-value" {
		t.Errorf("unrecognized column must survive in Source, got %q", src["Custom Vendor Column"])
	}
	if src["Patient Full Name"] != "Doe, Jane" {
		t.Errorf("Source patient cell = %q", src["Patient Full Name"])
	}
}

func TestClaimsMissingFile(t *testing.T) {
	if _, err := Claims(filepath.Join(t.TempDir(), "nope.csv"), start2025); err == nil {
		t.Fatal("expected error for missing file")
	}
}
