package load

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/normalize"
)

// Payment-ledger spreadsheet column names, as exported by the infusion
// program's billing summary.
const (
	payColDate        = "Last Service Date"
	payColPaid        = "Paid Amount"
	payColPerInfusion = "Paid/Infusion"
	payColInfusions   = "# of Infusions"
)

// Payments reads the infusion-program payment spreadsheet and rolls it up
// into a chronologically sorted daily series with running cumulative cash
// and infusion totals. shareRate is the program's revenue-share fraction
// applied to cumulative cash to derive the earned-share column.
func Payments(path string, shareRate float64) ([]model.PaymentDay, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("load payments: open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("load payments: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, errors.New("load payments: workbook has no header row")
	}

	header := rows[0]
	for i, h := range header {
		header[i] = normalize.CleanHeader(h)
	}
	col := columnIndexer(header)
	dateIdx := col(payColDate)
	if dateIdx < 0 {
		return nil, fmt.Errorf("load payments: missing %q column", payColDate)
	}

	// Sum per service date. Unparseable dates are skipped: the ledger's
	// trailing total rows carry no date.
	byDate := make(map[time.Time]*model.PaymentDay)
	for _, rec := range rows[1:] {
		date, ok := normalize.ParseDate(cell(rec, dateIdx))
		if !ok {
			continue
		}
		d, exists := byDate[date]
		if !exists {
			d = &model.PaymentDay{Date: date}
			byDate[date] = d
		}
		d.Paid += normalize.ParseCurrency(cell(rec, col(payColPaid)))
		d.PerInfusionPaid += normalize.ParseCurrency(cell(rec, col(payColPerInfusion)))
		d.Infusions += normalize.ParseNumber(cell(rec, col(payColInfusions)), 0)
	}

	daily := make([]model.PaymentDay, 0, len(byDate))
	for _, d := range byDate {
		daily = append(daily, *d)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date.Before(daily[j].Date) })

	var cash, perInf, infusions float64
	for i := range daily {
		cash += daily[i].Paid
		perInf += daily[i].PerInfusionPaid
		infusions += daily[i].Infusions
		daily[i].CumulativeCash = cash
		daily[i].CumulativePerInfusionPaid = perInf
		daily[i].EarnedShare = cash * shareRate
		daily[i].CumulativeInfusions = infusions
	}
	return daily, nil
}
