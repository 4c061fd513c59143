package pipeline

import (
	"fmt"
	"time"

	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/normalize"
)

// Date range presets offered by every report surface.
const (
	RangeLast7Days  = "Last 7 Days"
	RangeLast30Days = "Last 30 Days"
	RangeLastQtr    = "Last Quarter"
	RangeLastYear   = "Last Year"
	RangeAll        = "All"
	RangeCustom     = "Custom"
)

// DateRange is a closed day interval.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Label renders the range for export annotations.
func (r DateRange) Label() string {
	return r.From.Format("2006-01-02") + " to " + r.To.Format("2006-01-02")
}

// Contains reports whether the day falls inside the range.
func (r DateRange) Contains(d time.Time) bool {
	d = normalize.Midnight(d)
	return !d.Before(r.From) && !d.After(r.To)
}

// ResolveRange turns a preset name into a concrete range ending today. The
// custom preset requires explicit from and to values; any other preset
// ignores them. The All preset starts at the analysis floor.
func ResolveRange(preset string, today, start time.Time, from, to time.Time) (DateRange, error) {
	today = normalize.Midnight(today)
	switch preset {
	case RangeLast7Days:
		return DateRange{From: today.AddDate(0, 0, -7), To: today}, nil
	case RangeLast30Days:
		return DateRange{From: today.AddDate(0, 0, -30), To: today}, nil
	case RangeLastQtr:
		return DateRange{From: today.AddDate(0, -3, 0), To: today}, nil
	case RangeLastYear:
		return DateRange{From: today.AddDate(-1, 0, 0), To: today}, nil
	case RangeAll, "":
		return DateRange{From: normalize.Midnight(start), To: today}, nil
	case RangeCustom:
		if from.IsZero() || to.IsZero() {
			return DateRange{}, fmt.Errorf("custom range requires both --from and --to")
		}
		from, to = normalize.Midnight(from), normalize.Midnight(to)
		if to.Before(from) {
			return DateRange{}, fmt.Errorf("custom range end %s before start %s",
				to.Format("2006-01-02"), from.Format("2006-01-02"))
		}
		return DateRange{From: from, To: to}, nil
	default:
		return DateRange{}, fmt.Errorf("unknown date range preset %q", preset)
	}
}

// FilterClaims keeps the claims whose date falls inside the range.
func FilterClaims(claims []model.Claim, r DateRange) []model.Claim {
	out := make([]model.Claim, 0, len(claims))
	for i := range claims {
		if r.Contains(claims[i].Date) {
			out = append(out, claims[i])
		}
	}
	return out
}

// FilterRep narrows claims to one rep by exact case-insensitive name match.
// An empty or "All" rep returns the input unchanged.
func FilterRep(claims []model.Claim, rep string) []model.Claim {
	if rep == "" || rep == "All" {
		return claims
	}
	out := make([]model.Claim, 0, len(claims))
	for i := range claims {
		if normalize.FoldEqual(claims[i].BizDevName, rep) {
			out = append(out, claims[i])
		}
	}
	return out
}

// StripPotential zeroes the still-recoverable revenue on a copy of the
// claims, for views that count only collected cash.
func StripPotential(claims []model.Claim) []model.Claim {
	out := make([]model.Claim, len(claims))
	copy(out, claims)
	for i := range out {
		out[i].PotentialRevenueIncluded = 0
	}
	return out
}
