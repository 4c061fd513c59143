package load

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRoster(t *testing.T) {
	path := writeRoster(t,
		"Doctor Name,NPI,BizDev,Specialty,Clinic\n"+
			"\"Smith, John\",1111111111.0,\"Harper, Amy\",Rheumatology,Main St\n")

	entries, err := Roster(path)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d", len(entries))
	}
	e := entries[0]
	if e.DoctorName != "Smith, John" {
		t.Errorf("identity = %+v", e)
	}
	if e.NPI != "1111111111" {
		t.Errorf("NPI float artifact should normalize, got %q", e.NPI)
	}
	if e.Rep != "Harper, Amy" || e.Specialty != "Rheumatology" {
		t.Errorf("assignment = %+v", e)
	}
	// Unmapped columns survive in the passthrough map under snake headers.
	if e.Extra["clinic"] != "Main St" {
		t.Errorf("Extra = %v", e.Extra)
	}
}

func TestRosterRepFallsBackToPCC(t *testing.T) {
	path := writeRoster(t,
		"doctor_name,npi,pcc\n"+
			"\"Jones, Mary\",2222222222,TX-07\n")

	entries, err := Roster(path)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if entries[0].Rep != "TX-07" {
		t.Errorf("Rep = %q", entries[0].Rep)
	}
}

func TestRosterMissingFile(t *testing.T) {
	if _, err := Roster("/nonexistent/roster.csv"); err == nil {
		t.Fatal("expected error")
	}
}
