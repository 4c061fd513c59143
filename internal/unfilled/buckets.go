package unfilled

// Bucket labels for open unfilled scripts.
const (
	BucketActionable = "Actionable NOW"
	BucketWaiting    = "Waiting on External"
	BucketLost       = "Likely Lost"
	BucketTransfer   = "Transfer Out (Rare Not In-Network)"
	BucketOther      = "Other"
)

// BucketOrder is the fixed display order for bucket summaries.
var BucketOrder = []string{
	BucketActionable,
	BucketTransfer,
	BucketWaiting,
	BucketLost,
	BucketOther,
}

// The four status-priority sets are fixed data, disjoint, reproduced
// verbatim from the pharmacy's priority taxonomy. Membership maps a
// priority literal to exactly one bucket.

var actionablePriorities = stringSet(
	"New Fill", "Pending Clinical Notes", "Pending Rx Clarification",
	"* Insurance Info Needed", "Pending Labs", "MD request sent for more info",
	"Pending Med", "Pending Hardcopy", "Pending Hardcopy + Med",
	"Pending Telehealth", "Pending Telehealth + Hardcopy + Med",
	"Pending communication w. PT", "LVM", "MD Sent Clarified Rx",
	"Pharmacist Check", "Pending 340B Review",
	"Pending Formulary Medication Change", "Need More Recent Labs/Notes",
	"MDO Initiate PA", "Electronic PA sent to MDO",
	"Scheduling", "Scheduling - Initial Assessment",
)

var waitingPriorities = stringSet(
	"PA Under Review", "Peer-to-Peer", "Pending Foundation Assistance",
	"Pending Financial Assistance or PAP", "Sent NJ PAAD Application",
	"Bridge",
)

var lostPriorities = stringSet(
	"PA Denied", "PT Refused", "MDO Canceled", "Switched Therapies",
	"Therapy Not Appropriate", "Plan Exclusion", "High Copay",
	"Retail Med", "* Maintenance to be put on hold",
)

var transferPriorities = stringSet(
	"Transfer", "Approved - Transfer",
)

func stringSet(items ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}
