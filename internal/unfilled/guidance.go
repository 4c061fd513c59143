package unfilled

// actionGuidance holds the advisory next-step text shown per priority code.
// Free text only; nothing downstream computes on it.
var actionGuidance = map[string]string{
	"New Fill":                            "Ready to dispense — follow up with pharmacy to expedite. Confirm patient pickup/delivery.",
	"Pending Clinical Notes":              "Call prescriber's office to get clinical notes submitted. Fax requests often get delayed — a phone call is faster.",
	"* Insurance Info Needed":             "Contact the patient to collect updated insurance card. Check for secondary coverage.",
	"Pending Rx Clarification":            "Prescriber needs to clarify Rx (dosage, qty, or directions). Call the office directly.",
	"Pending Labs":                        "Lab results needed before dispensing. Confirm labs are ordered; follow up on results.",
	"MD request sent for more info":       "Request already sent to MD. Follow up by phone if no response within 48 hours.",
	"MD Sent Clarified Rx":                "MD already responded — follow up with pharmacy to process the updated Rx.",
	"Pending Med":                         "Medication may be on backorder. Confirm ETA with pharmacy or check alternative NDC.",
	"Pending communication w. PT":         "Patient needs to be reached for counseling or consent. Try calling at different times, or try text.",
	"LVM":                                 "Voicemail was left. Call again at a different time of day. Try text or email if available.",
	"Pharmacist Check":                    "Awaiting pharmacist review. Ask pharmacy if there are clinical concerns to resolve.",
	"Pending 340B Review":                 "Awaiting 340B eligibility check. Expedite the internal review.",
	"Pending Formulary Medication Change": "Drug not on formulary. Contact prescriber to switch to a covered alternative.",
	"Need More Recent Labs/Notes":         "Updated labs or notes required. Call prescriber's office to request.",
	"MDO Initiate PA":                     "Prior auth must be started by the prescriber. Call to confirm they've submitted it.",
	"Electronic PA sent to MDO":           "PA was sent electronically. Confirm the office received it and is responding.",
	"Scheduling":                          "Patient needs to be scheduled. Coordinate the appointment.",
	"Scheduling - Initial Assessment":     "Schedule the initial assessment before treatment can begin.",
	"Pending Hardcopy":                    "Physical Rx required. Contact prescriber's office to send it.",
	"Pending Hardcopy + Med":              "Need both hardcopy Rx and medication. Contact prescriber and pharmacy.",
	"Pending Telehealth":                  "Patient needs a telehealth visit. Help schedule the appointment.",
	"Pending Telehealth + Hardcopy + Med": "Multiple steps: telehealth visit + hardcopy Rx + medication. Coordinate all three.",
}

// Guidance returns the advisory next step for a priority code, with a
// generic fallback for codes that have no specific playbook entry.
func Guidance(priority string) string {
	if g, ok := actionGuidance[priority]; ok {
		return g
	}
	return "Follow up with pharmacy or prescriber's office."
}
