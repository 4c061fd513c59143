// Package unfilled buckets open zero-paid scripts from the last 30 days
// into actionability categories. The bucket mapping is data, not logic: a
// fixed taxonomy over status-priority literals, with a single message-based
// rule that outranks all of them.
package unfilled

import (
	"sort"
	"strings"
	"time"

	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/normalize"
	"github.com/hudsonrx/claimsight/internal/revenue"
)

// transferMessageMarker flags claims rejected because the dispensing
// pharmacy is out-of-network for the plan; these are transfer-outs no
// matter what the priority code says.
const transferMessageMarker = "M/I PHARMACY NUMBER"

// Row is one open unfilled script with its actionability classification.
type Row struct {
	model.Claim
	DaysOpen int
	Bucket   string
}

// Report is the full unfilled-scripts view over a scoped claim set.
type Report struct {
	Rows []Row // sorted by DaysOpen descending

	TotalUnfilled     int
	TotalWAC          float64
	ActionableCount   int
	ActionableWAC     float64
	UniquePatients    int
	UniquePrescribers int

	// Claims rejected for "M/I Pharmacy Number" point at a systemic
	// out-of-network issue worth flagging on its own.
	TransferMessageCount int
	TransferMessageWAC   float64
}

// BucketSummary is the per-bucket rollup in fixed display order.
type BucketSummary struct {
	Bucket  string
	Scripts int
	WAC     float64
}

// PrioritySummary is the bucket × priority breakdown.
type PrioritySummary struct {
	Bucket   string
	Priority string
	Scripts  int
	WAC      float64
}

// ClassifyBucket assigns the actionability bucket for one claim. The
// message rule runs first; missing priority codes classify as "Unknown",
// which falls through to Other.
func ClassifyBucket(priority, message string) string {
	if strings.Contains(strings.ToUpper(message), transferMessageMarker) {
		return BucketTransfer
	}
	switch {
	case contains(actionablePriorities, priority):
		return BucketActionable
	case contains(waitingPriorities, priority):
		return BucketWaiting
	case contains(lostPriorities, priority):
		return BucketLost
	case contains(transferPriorities, priority):
		return BucketTransfer
	default:
		return BucketOther
	}
}

// Build selects the open unfilled scripts (zero-paid, dated within the
// recovery window) from already-scoped claims and classifies each.
func Build(claims []model.Claim, today time.Time) *Report {
	cutoff := revenue.Cutoff(today)

	r := &Report{Rows: make([]Row, 0)}
	patients := make(map[string]struct{})
	prescribers := make(map[string]struct{})

	for _, c := range claims {
		if c.TotalPricePaid != 0 || c.Date.Before(cutoff) {
			continue
		}
		if c.RxPriority == "" {
			c.RxPriority = "Unknown"
		}

		row := Row{
			Claim:    c,
			DaysOpen: normalize.DaysBetween(c.Date, today),
			Bucket:   ClassifyBucket(c.RxPriority, c.ClaimMessage),
		}
		r.Rows = append(r.Rows, row)

		r.TotalUnfilled++
		r.TotalWAC += c.WACPrice
		if row.Bucket == BucketActionable {
			r.ActionableCount++
			r.ActionableWAC += c.WACPrice
		}
		if strings.Contains(strings.ToUpper(c.ClaimMessage), transferMessageMarker) {
			r.TransferMessageCount++
			r.TransferMessageWAC += c.WACPrice
		}
		if c.PatientName != "" {
			patients[c.PatientName] = struct{}{}
		}
		if c.PrescriberName != "" {
			prescribers[c.PrescriberName] = struct{}{}
		}
	}

	r.UniquePatients = len(patients)
	r.UniquePrescribers = len(prescribers)

	sort.SliceStable(r.Rows, func(i, j int) bool {
		return r.Rows[i].DaysOpen > r.Rows[j].DaysOpen
	})
	return r
}

// ByBucket rolls the report up per bucket, in fixed display order, dropping
// empty buckets.
func (r *Report) ByBucket() []BucketSummary {
	counts := make(map[string]*BucketSummary)
	for _, row := range r.Rows {
		s, ok := counts[row.Bucket]
		if !ok {
			s = &BucketSummary{Bucket: row.Bucket}
			counts[row.Bucket] = s
		}
		s.Scripts++
		s.WAC += row.WACPrice
	}

	out := make([]BucketSummary, 0, len(counts))
	for _, b := range BucketOrder {
		if s, ok := counts[b]; ok {
			out = append(out, *s)
		}
	}
	return out
}

// ByPriority breaks the report down by bucket and priority code, sorted by
// bucket display order then scripts descending.
func (r *Report) ByPriority() []PrioritySummary {
	type key struct{ bucket, priority string }
	counts := make(map[key]*PrioritySummary)
	for _, row := range r.Rows {
		k := key{row.Bucket, row.RxPriority}
		s, ok := counts[k]
		if !ok {
			s = &PrioritySummary{Bucket: k.bucket, Priority: k.priority}
			counts[k] = s
		}
		s.Scripts++
		s.WAC += row.WACPrice
	}

	out := make([]PrioritySummary, 0, len(counts))
	for _, s := range counts {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		bi, bj := bucketRank(out[i].Bucket), bucketRank(out[j].Bucket)
		if bi != bj {
			return bi < bj
		}
		if out[i].Scripts != out[j].Scripts {
			return out[i].Scripts > out[j].Scripts
		}
		return out[i].Priority < out[j].Priority
	})
	return out
}

// Actionable returns the actionable rows grouped by priority code, each
// group sorted by DaysOpen descending, groups ordered by first appearance
// in the day-sorted report.
func (r *Report) Actionable() []PriorityGroup {
	order := make([]string, 0)
	groups := make(map[string]*PriorityGroup)
	for _, row := range r.Rows {
		if row.Bucket != BucketActionable {
			continue
		}
		g, ok := groups[row.RxPriority]
		if !ok {
			g = &PriorityGroup{Priority: row.RxPriority, Guidance: Guidance(row.RxPriority)}
			groups[row.RxPriority] = g
			order = append(order, row.RxPriority)
		}
		g.Rows = append(g.Rows, row)
		g.WAC += row.WACPrice
	}

	out := make([]PriorityGroup, 0, len(order))
	for _, p := range order {
		out = append(out, *groups[p])
	}
	return out
}

// PriorityGroup is one actionable priority code with its scripts and the
// advisory next step.
type PriorityGroup struct {
	Priority string
	Guidance string
	WAC      float64
	Rows     []Row
}

func bucketRank(b string) int {
	for i, name := range BucketOrder {
		if name == b {
			return i
		}
	}
	return len(BucketOrder)
}

func contains(set map[string]struct{}, v string) bool {
	_, ok := set[v]
	return ok
}
