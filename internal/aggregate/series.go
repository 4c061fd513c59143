package aggregate

import (
	"sort"
	"time"

	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/normalize"
)

// DayPoint is one day of the revenue time series with running cumulative
// sums over the chronologically sorted days.
type DayPoint struct {
	Date                time.Time
	Actual              float64
	PotentialIncluded   float64
	CumulativeActual    float64
	CumulativePotential float64
}

// DailySeries groups claims by calendar day and computes cumulative actual
// and potential revenue in chronological order.
func DailySeries(claims []model.Claim) []DayPoint {
	byDay := make(map[time.Time]*DayPoint)
	for i := range claims {
		c := &claims[i]
		d := normalize.Midnight(c.Date)
		p, ok := byDay[d]
		if !ok {
			p = &DayPoint{Date: d}
			byDay[d] = p
		}
		p.Actual += c.ActualRevenue
		p.PotentialIncluded += c.PotentialRevenueIncluded
	}

	out := make([]DayPoint, 0, len(byDay))
	for _, p := range byDay {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	var actual, potential float64
	for i := range out {
		actual += out[i].Actual
		potential += out[i].PotentialIncluded
		out[i].CumulativeActual = actual
		out[i].CumulativePotential = potential
	}
	return out
}

// KPIs computes the headline dashboard metrics over filtered claims.
// today fixes the recoverability boundary for the unable-to-fill count.
func KPIs(claims []model.Claim, today time.Time) model.KPIBlock {
	cutoff := normalize.Midnight(today).AddDate(0, 0, -30)

	var k model.KPIBlock
	for i := range claims {
		c := &claims[i]
		k.TotalClaims++
		k.ScriptCount += int(c.Infusions)
		if c.Filled() {
			k.PaidClaims++
		}
		if c.InventoryType == model.Inventory340B {
			k.Actual340B += c.ActualRevenue
			k.Potential340B += c.PotentialRevenueIncluded
		}
		k.UnableToFillWAC += c.UnableToFillRevenue
		if c.TotalPricePaid == 0 && c.Date.Before(cutoff) {
			k.UnableToFillNum++
		}
	}
	k.Potential340B += k.Actual340B
	k.UnfilledClaims = k.TotalClaims - k.PaidClaims
	k.FillRatePercent = float64(k.PaidClaims) / float64(max(k.TotalClaims, 1)) * 100
	return k
}

// InfusionProjection overlays projected cash on the infusion-program daily
// series: for days with no payment, the expected revenue per infusion is
// accumulated on top of the last actual cumulative cash figure.
type InfusionProjection struct {
	Days           []ProjectedDay
	CashActual     float64
	CashProjected  float64
	TotalInfusions float64
	PaidInfusions  float64
	RevPerInfusion float64
}

// ProjectedDay is one day of the infusion series with its projection.
// Projected is meaningful only on zero-paid days; Masked reports whether
// the overlay applies to this day.
type ProjectedDay struct {
	model.PaymentDay
	Projected float64
	Masked    bool
}

// Project computes the actual-versus-projected infusion cash overlay using
// a fixed expected payment per infusion (not a statistical estimate).
func Project(daily []model.PaymentDay, estPaidPerInfusion float64) InfusionProjection {
	var p InfusionProjection
	var unpaidInfusions float64
	for _, d := range daily {
		p.CashActual += d.Paid
		p.TotalInfusions += d.Infusions
		if d.Paid == 0 {
			unpaidInfusions += d.Infusions
		}
	}
	p.PaidInfusions = p.TotalInfusions - unpaidInfusions
	p.CashProjected = p.CashActual + unpaidInfusions*estPaidPerInfusion
	p.RevPerInfusion = p.CashActual / max(p.PaidInfusions, 1)

	var lastActual float64
	if n := len(daily); n > 0 {
		lastActual = daily[n-1].CumulativeCash
	}
	var projectedRunning float64
	p.Days = make([]ProjectedDay, len(daily))
	for i, d := range daily {
		pd := ProjectedDay{PaymentDay: d}
		if d.Paid == 0 {
			projectedRunning += d.Infusions * estPaidPerInfusion
			pd.Projected = lastActual + projectedRunning
			pd.Masked = true
		}
		p.Days[i] = pd
	}
	return p
}

// MonthlyCash derives per-month collected cash from the daily cumulative
// series: the month's ending cumulative minus the previous month's.
func MonthlyCash(daily []model.PaymentDay) []model.MonthlyCash {
	type monthMax struct {
		month string
		max   float64
	}
	var months []monthMax
	seen := make(map[string]int)
	for _, d := range daily {
		m := normalize.MonthLabel(d.Date)
		if i, ok := seen[m]; ok {
			if d.CumulativeCash > months[i].max {
				months[i].max = d.CumulativeCash
			}
			continue
		}
		seen[m] = len(months)
		months = append(months, monthMax{month: m, max: d.CumulativeCash})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].month < months[j].month })

	out := make([]model.MonthlyCash, len(months))
	var prev float64
	for i, m := range months {
		out[i] = model.MonthlyCash{Month: m.month, Cash: m.max - prev}
		prev = m.max
	}
	return out
}
