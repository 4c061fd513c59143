package enrich

import (
	"testing"

	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/npi"
)

func testRoster() []model.RosterEntry {
	return []model.RosterEntry{
		{DoctorName: "Smith, John", NPI: "1111111111", Rep: "Harper, Amy"},
		{DoctorName: "Jones, Mary", NPI: "2222222222", Rep: "Harper, Amy"},
		{DoctorName: "Poe, Edgar", NPI: "", Rep: "Shehab, Sayeed"},
	}
}

func TestDoctorsJoin(t *testing.T) {
	claims := []model.Claim{
		{PrescriberNPI: "1111111111", ActualRevenue: 100},
		{PrescriberNPI: "1111111111.0", PotentialRevenueIncluded: 50},
		{PrescriberNPI: "9999999999", ActualRevenue: 999},
	}
	locations := map[string]npi.Location{
		"1111111111": {NPI: "1111111111", City: "Dallas", State: "TX"},
	}

	docs := Doctors(testRoster(), claims, locations)
	if len(docs) != 3 {
		t.Fatalf("doctors = %d", len(docs))
	}

	// Sorted by scripts descending, so Smith leads.
	smith := docs[0]
	if smith.DoctorName != "Smith, John" {
		t.Fatalf("order = %+v", docs)
	}
	if smith.Scripts != 2 || smith.Revenue != 150 {
		t.Errorf("smith activity = %+v", smith)
	}
	if smith.Status != model.DoctorActive {
		t.Errorf("smith status = %q", smith.Status)
	}
	if smith.Location != "Dallas, TX" {
		t.Errorf("smith location = %q", smith.Location)
	}

	for _, d := range docs[1:] {
		if d.Status != model.DoctorNoScripts || d.Scripts != 0 {
			t.Errorf("inactive doctor %q = %+v", d.DoctorName, d)
		}
	}
}

func TestDoctorsEmptyNPIDoesNotMatchEmptyClaimNPI(t *testing.T) {
	claims := []model.Claim{
		{PrescriberNPI: "", ActualRevenue: 500},
	}
	docs := Doctors(testRoster(), claims, nil)
	for _, d := range docs {
		if d.Scripts != 0 {
			t.Fatalf("claim with no NPI must not attach to %q", d.DoctorName)
		}
	}
}

func TestByRep(t *testing.T) {
	docs := []model.DoctorSummary{
		{RosterEntry: model.RosterEntry{DoctorName: "A", Rep: "Harper, Amy"}, Scripts: 3, Revenue: 300, Status: model.DoctorActive},
		{RosterEntry: model.RosterEntry{DoctorName: "B", Rep: "Harper, Amy"}, Status: model.DoctorNoScripts},
		{RosterEntry: model.RosterEntry{DoctorName: "C", Rep: ""}, Scripts: 1, Revenue: 10, Status: model.DoctorActive},
	}
	reps := ByRep(docs)
	if len(reps) != 2 {
		t.Fatalf("reps = %+v", reps)
	}
	h := reps[0]
	if h.Rep != "Harper, Amy" || h.Doctors != 2 || h.Active != 1 || h.Scripts != 3 {
		t.Errorf("harper = %+v", h)
	}
	if reps[1].Rep != "Unassigned" {
		t.Errorf("blank rep should land in Unassigned, got %+v", reps[1])
	}
}

func TestNPIs(t *testing.T) {
	roster := []model.RosterEntry{
		{NPI: "1111111111"},
		{NPI: "1111111111.0"},
		{NPI: ""},
		{NPI: "2222222222"},
	}
	got := NPIs(roster)
	want := []string{"1111111111", "2222222222"}
	if len(got) != len(want) {
		t.Fatalf("NPIs = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NPIs = %v, want %v", got, want)
		}
	}
}
