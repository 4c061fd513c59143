package model

import "time"

// Canonical claims-ledger column names. Source files are not guaranteed to
// carry all of them; the loader fills typed defaults for the ones it needs.
const (
	ColCreatedOn      = "Created On"
	ColRxNumber       = "Rx Number"
	ColDispensedDrug  = "Dispensed Drug"
	ColPrescriber     = "Prescriber Full Name"
	ColPrescriberNPI  = "Prescriber NPI"
	ColPrescriberZip  = "Prescriber Zip Code"
	ColPrescriberCity = "Prescriber City"
	ColPrescriberSt   = "Prescriber State"
	ColPatientName    = "Patient Full Name"
	ColBizDevName     = "Biz Dev Name"
	ColMarketerName   = "Marketer Name" // legacy alias for Biz Dev Name
	ColTotalPricePaid = "Total Price Paid"
	ColWACPrice       = "WAC Price"
	ColInfusions      = "Infusions"
	ColRxPriority     = "Rx Priority"
	ColClaimStatus    = "Primary Claim Status"
	ColClaimMessage   = "Primary Claim Message"
)

// Derived column names used on detail egress tables.
const (
	ColDate              = "Date"
	ColMonth             = "Month"
	ColInventoryType     = "Inventory Type"
	ColActualRevenue     = "Actual Revenue"
	ColPotentialIncluded = "Potential Revenue (Included)"
	ColUnableToFill      = "Unable to Fill Revenue"
	ColDaysOpen          = "Days Open"
	ColBucket            = "Bucket"
)

// Inventory tags assigned by the loader's fuzzy inventory-column rule.
const (
	Inventory340B = "340B"
	InventoryRx   = "Rx"
)

// Claim is one dispensed-or-attempted prescription event from the claims
// ledger, with typed fields parsed out of the raw record and derived revenue
// fields recomputed by the revenue classifier. Source holds every raw cell
// keyed by cleaned column name so detail egress preserves the input schema.
type Claim struct {
	Date  time.Time
	Month string // YYYY-MM calendar month label

	RxNumber        string
	DispensedDrug   string
	PrescriberName  string
	PrescriberNPI   string
	PrescriberZip   string
	PrescriberCity  string
	PrescriberState string
	PatientName     string
	BizDevName      string
	InventoryType   string

	TotalPricePaid float64
	WACPrice       float64
	Infusions      float64

	RxPriority   string
	ClaimStatus  string
	ClaimMessage string

	// Derived revenue fields. Never persisted as source of truth; the
	// revenue classifier recomputes all four on every pass.
	ActualRevenue            float64
	PotentialRevenueRaw      float64
	PotentialRevenueIncluded float64
	UnableToFillRevenue      float64

	Source map[string]string
}

// Filled reports whether the claim was actually paid.
func (c *Claim) Filled() bool {
	return c.TotalPricePaid > 0
}

// ClaimsTable pairs loaded claims with the ordered source header so egress
// tables can reproduce the original column order.
type ClaimsTable struct {
	Header []string
	Claims []Claim
}
