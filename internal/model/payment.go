package model

import "time"

// PaymentDay is one day of the infusion-program payment ledger after rollup.
// The ledger is independent from the claims file; rows arrive per payment and
// are summed per service date, then cumulated in chronological order.
type PaymentDay struct {
	Date            time.Time
	Paid            float64
	PerInfusionPaid float64
	Infusions       float64

	CumulativeCash            float64
	CumulativePerInfusionPaid float64
	EarnedShare               float64 // CumulativeCash * program revenue share rate
	CumulativeInfusions       float64
}

// MonthlyCash is one month of collected cash derived from the daily series.
type MonthlyCash struct {
	Month string
	Cash  float64
}
