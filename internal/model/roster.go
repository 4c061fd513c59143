package model

// Roster column names after header normalization (lowercased, spaces
// replaced with underscores).
const (
	RosterColDoctorName = "doctor_name"
	RosterColNPI        = "npi"
	RosterColRep        = "bizdev"
	RosterColPCC        = "pcc" // territory code, used when no bizdev column exists
	RosterColSpecialty  = "specialty"
)

// RosterEntry is one provider in the business-development roster feed.
type RosterEntry struct {
	DoctorName string
	NPI        string
	Rep        string // assigned rep / territory code
	Specialty  string

	Extra map[string]string
}

// DoctorSummary is a roster entry enriched at query time with script and
// revenue aggregates from the claims ledger and a practice-location label
// from the NPI registry lookup.
type DoctorSummary struct {
	RosterEntry

	Scripts  int
	Revenue  float64
	Status   string // "Active" once the doctor has sent scripts
	Location string // "City, ST", blank on lookup miss
}

// Doctor activity statuses.
const (
	DoctorActive    = "Active"
	DoctorNoScripts = "No Scripts"
)
