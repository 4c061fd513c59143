package model

import "time"

// ReportSummary captures metrics from a single report pipeline run.
type ReportSummary struct {
	SessionID     string
	Role          string
	ClaimsLoaded  int
	ClaimsScoped  int
	ClaimsInRange int
	PaymentDays   int
	RosterLoaded  int
	RosterScoped  int
	UnfilledOpen  int
	ExportsOut    []string

	DurationLoad    time.Duration
	DurationCompute time.Duration
	DurationExport  time.Duration
	DurationTotal   time.Duration
}

// KPIBlock is the headline metric row of the dashboard: revenue totals,
// script volume, and fill rate over the filtered claim set.
type KPIBlock struct {
	Actual340B      float64 // paid revenue on 340B-inventory claims
	Potential340B   float64 // actual + still-recoverable WAC (30-day window)
	UnableToFillWAC float64 // WAC on zero-paid claims older than 30 days
	UnableToFillNum int
	ScriptCount     int // sum of infusion counts
	TotalClaims     int
	PaidClaims      int
	UnfilledClaims  int
	FillRatePercent float64
}
