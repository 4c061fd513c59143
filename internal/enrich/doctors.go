// Package enrich joins the physician roster with claim activity and NPI
// Registry locations into the doctor coverage view.
package enrich

import (
	"sort"

	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/normalize"
	"github.com/hudsonrx/claimsight/internal/npi"
)

type activity struct {
	scripts int
	revenue float64
}

// Doctors builds the per-doctor summary: roster identity, script count and
// total revenue from claims (matched on normalized NPI), activity status,
// and practice location where one is known. Roster doctors with no claims
// appear with zero activity so coverage gaps stay visible.
func Doctors(roster []model.RosterEntry, claims []model.Claim, locations map[string]npi.Location) []model.DoctorSummary {
	byNPI := make(map[string]*activity)
	for i := range claims {
		c := &claims[i]
		key := normalize.NormalizeNPI(c.PrescriberNPI)
		if key == "" {
			continue
		}
		a, ok := byNPI[key]
		if !ok {
			a = &activity{}
			byNPI[key] = a
		}
		a.scripts++
		a.revenue += c.ActualRevenue + c.PotentialRevenueIncluded
	}

	out := make([]model.DoctorSummary, 0, len(roster))
	for _, entry := range roster {
		s := model.DoctorSummary{RosterEntry: entry, Status: model.DoctorNoScripts}
		key := normalize.NormalizeNPI(entry.NPI)
		if a, ok := byNPI[key]; ok && key != "" {
			s.Scripts = a.scripts
			s.Revenue = a.revenue
			if a.scripts > 0 {
				s.Status = model.DoctorActive
			}
		}
		if loc, ok := locations[key]; ok {
			s.Location = loc.Label()
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Scripts != out[j].Scripts {
			return out[i].Scripts > out[j].Scripts
		}
		return out[i].DoctorName < out[j].DoctorName
	})
	return out
}

// RepCoverage is one rep's roster footprint.
type RepCoverage struct {
	Rep     string
	Doctors int
	Active  int
	Scripts int
	Revenue float64
}

// ByRep rolls doctor summaries up to their assigned rep.
func ByRep(doctors []model.DoctorSummary) []RepCoverage {
	idx := make(map[string]int)
	out := make([]RepCoverage, 0)
	for _, d := range doctors {
		rep := d.Rep
		if rep == "" {
			rep = "Unassigned"
		}
		i, ok := idx[rep]
		if !ok {
			i = len(out)
			idx[rep] = i
			out = append(out, RepCoverage{Rep: rep})
		}
		r := &out[i]
		r.Doctors++
		if d.Status == model.DoctorActive {
			r.Active++
		}
		r.Scripts += d.Scripts
		r.Revenue += d.Revenue
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Scripts != out[j].Scripts {
			return out[i].Scripts > out[j].Scripts
		}
		return out[i].Rep < out[j].Rep
	})
	return out
}

// NPIs lists the distinct normalized NPIs present on the roster, in roster
// order, for registry resolution.
func NPIs(roster []model.RosterEntry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, entry := range roster {
		key := normalize.NormalizeNPI(entry.NPI)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}
