// Package aggregate is the generic group-and-summarize engine behind every
// summary table: by rep, by drug, by physician, by date, by month. All
// invocations share the same metric set and tolerate empty input by
// returning empty, schema-preserving results.
package aggregate

import (
	"sort"

	"github.com/hudsonrx/claimsight/internal/model"
)

// Group is one grouped summary row. Total is always Actual plus the
// still-recoverable potential revenue; FillRate is a percentage with a
// denominator floor of one script.
type Group struct {
	Key               string
	Scripts           int
	Filled            int
	Actual            float64
	PotentialIncluded float64
	Total             float64
	FillRate          float64
	Unfilled          int
}

// KeyFunc extracts the grouping key from a claim.
type KeyFunc func(*model.Claim) string

// Grouping keys used across the dashboard.
func ByRep(c *model.Claim) string       { return c.BizDevName }
func ByDrug(c *model.Claim) string      { return c.DispensedDrug }
func ByPhysician(c *model.Claim) string { return c.PrescriberName }
func ByDate(c *model.Claim) string      { return c.Date.Format("2006-01-02") }
func ByMonth(c *model.Claim) string     { return c.Month }

// By groups claims by key and computes the standard metric set. The result
// carries one row per distinct key; the sum of Scripts across rows always
// equals len(claims).
func By(claims []model.Claim, key KeyFunc) []Group {
	idx := make(map[string]int)
	out := make([]Group, 0)
	for i := range claims {
		c := &claims[i]
		k := key(c)
		gi, ok := idx[k]
		if !ok {
			gi = len(out)
			idx[k] = gi
			out = append(out, Group{Key: k})
		}
		g := &out[gi]
		g.Scripts++
		if c.Filled() {
			g.Filled++
		}
		g.Actual += c.ActualRevenue
		g.PotentialIncluded += c.PotentialRevenueIncluded
	}
	for i := range out {
		g := &out[i]
		g.Total = g.Actual + g.PotentialIncluded
		g.Unfilled = g.Scripts - g.Filled
		g.FillRate = float64(g.Filled) / float64(max(g.Scripts, 1)) * 100
	}
	return out
}

// MonthlyActual groups claims by calendar month in chronological order.
func MonthlyActual(claims []model.Claim) []Group {
	groups := By(claims, ByMonth)
	SortByKey(groups)
	return groups
}

// SortByTotal orders groups by Total descending (stable on key for ties).
func SortByTotal(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Total != groups[j].Total {
			return groups[i].Total > groups[j].Total
		}
		return groups[i].Key < groups[j].Key
	})
}

// SortByActual orders groups by Actual revenue descending.
func SortByActual(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Actual != groups[j].Actual {
			return groups[i].Actual > groups[j].Actual
		}
		return groups[i].Key < groups[j].Key
	})
}

// SortByScripts orders groups by script count descending.
func SortByScripts(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Scripts != groups[j].Scripts {
			return groups[i].Scripts > groups[j].Scripts
		}
		return groups[i].Key < groups[j].Key
	})
}

// SortByKey orders groups by key ascending (chronological for date and
// month labels, which sort lexically).
func SortByKey(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
}

// TopN truncates a sorted group list to n rows, clamping n to
// [1, len(groups)]. Empty input stays empty.
func TopN(groups []Group, n int) []Group {
	if len(groups) == 0 {
		return groups
	}
	if n < 1 {
		n = 1
	}
	if n > len(groups) {
		n = len(groups)
	}
	return groups[:n]
}
