// Package export turns pipeline results into egress tables and files. All
// serialization paths strip patient identifiers unconditionally; redaction
// is not a caller decision.
package export

import (
	"sort"
	"strconv"

	"github.com/hudsonrx/claimsight/internal/aggregate"
	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/unfilled"
)

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// ClaimTable renders claim detail rows newest first: the original source
// columns in their loaded order followed by the derived revenue columns.
func ClaimTable(t *model.ClaimsTable) model.Table {
	out := model.Table{Columns: make([]string, 0, len(t.Header)+6)}
	out.Columns = append(out.Columns, t.Header...)
	out.Columns = append(out.Columns,
		model.ColDate, model.ColMonth, model.ColInventoryType,
		model.ColActualRevenue, model.ColPotentialIncluded, model.ColUnableToFill)

	order := make([]int, len(t.Claims))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return t.Claims[order[a]].Date.After(t.Claims[order[b]].Date)
	})

	out.Rows = make([][]string, 0, len(t.Claims))
	for _, i := range order {
		c := &t.Claims[i]
		row := make([]string, 0, len(out.Columns))
		for _, col := range t.Header {
			row = append(row, c.Source[col])
		}
		row = append(row,
			c.Date.Format("2006-01-02"), c.Month, c.InventoryType,
			money(c.ActualRevenue), money(c.PotentialRevenueIncluded), money(c.UnableToFillRevenue))
		out.Rows = append(out.Rows, row)
	}
	return out
}

// GroupTable renders aggregated summary rows. keyName labels the grouping
// column ("Biz Dev Name", "Dispensed Drug", ...).
func GroupTable(groups []aggregate.Group, keyName string) model.Table {
	out := model.Table{Columns: []string{
		keyName, "Scripts", "Filled", "Unfilled", "Fill Rate %",
		model.ColActualRevenue, model.ColPotentialIncluded, "Total Revenue",
	}}
	out.Rows = make([][]string, 0, len(groups))
	for _, g := range groups {
		out.Rows = append(out.Rows, []string{
			g.Key,
			strconv.Itoa(g.Scripts),
			strconv.Itoa(g.Filled),
			strconv.Itoa(g.Unfilled),
			percent(g.FillRate),
			money(g.Actual),
			money(g.PotentialIncluded),
			money(g.Total),
		})
	}
	return out
}

// UnfilledTable renders the unfilled worklist with bucket and age columns.
func UnfilledTable(r *unfilled.Report) model.Table {
	out := model.Table{Columns: []string{
		model.ColRxNumber, model.ColDate, model.ColDaysOpen, model.ColBucket,
		model.ColRxPriority, model.ColDispensedDrug, model.ColPrescriber,
		model.ColBizDevName, model.ColWACPrice, model.ColClaimMessage,
	}}
	out.Rows = make([][]string, 0, len(r.Rows))
	for i := range r.Rows {
		row := &r.Rows[i]
		out.Rows = append(out.Rows, []string{
			row.RxNumber,
			row.Date.Format("2006-01-02"),
			strconv.Itoa(row.DaysOpen),
			row.Bucket,
			row.RxPriority,
			row.DispensedDrug,
			row.PrescriberName,
			row.BizDevName,
			money(row.WACPrice),
			row.ClaimMessage,
		})
	}
	return out
}

// DailyTable renders the revenue time series with its running cumulatives.
func DailyTable(days []aggregate.DayPoint) model.Table {
	out := model.Table{Columns: []string{
		model.ColDate, model.ColActualRevenue, model.ColPotentialIncluded,
		"Cumulative Actual", "Cumulative Potential",
	}}
	out.Rows = make([][]string, 0, len(days))
	for _, d := range days {
		out.Rows = append(out.Rows, []string{
			d.Date.Format("2006-01-02"),
			money(d.Actual),
			money(d.PotentialIncluded),
			money(d.CumulativeActual),
			money(d.CumulativePotential),
		})
	}
	return out
}

// MonthlyTable renders month-keyed revenue groups.
func MonthlyTable(months []aggregate.Group) model.Table {
	out := model.Table{Columns: []string{model.ColMonth, "Scripts", model.ColActualRevenue}}
	out.Rows = make([][]string, 0, len(months))
	for _, m := range months {
		out.Rows = append(out.Rows, []string{m.Key, strconv.Itoa(m.Scripts), money(m.Actual)})
	}
	return out
}

// DoctorTable renders the roster coverage view.
func DoctorTable(doctors []model.DoctorSummary) model.Table {
	out := model.Table{Columns: []string{
		"Doctor", "NPI", "Rep", "Specialty", "Scripts", "Revenue", "Status", "Location",
	}}
	out.Rows = make([][]string, 0, len(doctors))
	for _, d := range doctors {
		out.Rows = append(out.Rows, []string{
			d.DoctorName,
			d.NPI,
			d.Rep,
			d.Specialty,
			strconv.Itoa(d.Scripts),
			money(d.Revenue),
			d.Status,
			d.Location,
		})
	}
	return out
}
