// Package revenue derives the per-claim revenue split. A zero-paid claim's
// WAC value is recoverable while the claim is inside the 30-day window and
// written off once it ages out; the two buckets are mutually exclusive and
// exhaustive over zero-paid claims with a positive WAC price.
package revenue

import (
	"time"

	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/normalize"
)

// RecoveryWindowDays is how long an unpaid script is still considered
// recoverable before its WAC value is assumed lost.
const RecoveryWindowDays = 30

// Classify recomputes the derived revenue fields on every claim as of the
// given evaluation time. All four fields are overwritten from
// TotalPricePaid, WACPrice, and Date alone, so reapplying on already
// classified rows yields identical output.
func Classify(claims []model.Claim, today time.Time) []model.Claim {
	cutoff := Cutoff(today)

	out := make([]model.Claim, len(claims))
	for i, c := range claims {
		c.ActualRevenue = c.TotalPricePaid

		c.PotentialRevenueRaw = 0
		c.PotentialRevenueIncluded = 0
		c.UnableToFillRevenue = 0
		if c.TotalPricePaid == 0 {
			c.PotentialRevenueRaw = c.WACPrice
			if c.WACPrice > 0 {
				if !c.Date.Before(cutoff) {
					c.PotentialRevenueIncluded = c.WACPrice
				} else {
					c.UnableToFillRevenue = c.WACPrice
				}
			}
		}
		out[i] = c
	}
	return out
}

// Cutoff returns the recoverability boundary: claims dated on or after it
// still count as potential revenue.
func Cutoff(today time.Time) time.Time {
	return normalize.Midnight(today).AddDate(0, 0, -RecoveryWindowDays)
}
