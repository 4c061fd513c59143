// Package load parses the external source ledgers (claims CSV, infusion
// payment spreadsheet, provider roster CSV) into typed in-memory tables with
// guaranteed columns, regardless of which optional columns each export
// carries. A file that cannot be parsed fails the load outright; there is no
// partial or best-effort parse.
package load

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dimchansky/utfbom"
	"github.com/go-gota/gota/dataframe"

	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/normalize"
)

// Claims reads the claims ledger CSV into typed rows. Rows dated before
// startDate (or with no parseable date) are dropped. Every surviving raw
// cell is kept in Claim.Source keyed by cleaned header name, so downstream
// egress can reproduce the source schema.
func Claims(path string, startDate time.Time) (*model.ClaimsTable, error) {
	header, records, err := readCSV(path)
	if err != nil {
		return nil, fmt.Errorf("load claims: %w", err)
	}

	for i, h := range header {
		header[i] = normalize.CleanHeader(h)
	}
	renameColumn(header, model.ColMarketerName, model.ColBizDevName)

	invCol, hasInvCol := normalize.DetectInventoryColumn(header)

	col := columnIndexer(header)
	claims := make([]model.Claim, 0, len(records))
	for _, rec := range records {
		date, ok := normalize.ParseDate(cell(rec, col(model.ColCreatedOn)))
		if !ok || date.Before(startDate) {
			continue
		}

		c := model.Claim{
			Date:            date,
			Month:           normalize.MonthLabel(date),
			RxNumber:        cell(rec, col(model.ColRxNumber)),
			PrescriberName:  cell(rec, col(model.ColPrescriber)),
			PrescriberNPI:   normalize.NormalizeNPI(cell(rec, col(model.ColPrescriberNPI))),
			PrescriberZip:   cell(rec, col(model.ColPrescriberZip)),
			PrescriberCity:  cell(rec, col(model.ColPrescriberCity)),
			PrescriberState: cell(rec, col(model.ColPrescriberSt)),
			PatientName:     cell(rec, col(model.ColPatientName)),
			RxPriority:      cell(rec, col(model.ColRxPriority)),
			ClaimStatus:     cell(rec, col(model.ColClaimStatus)),
			ClaimMessage:    cell(rec, col(model.ColClaimMessage)),
			TotalPricePaid:  normalize.ParseCurrency(cell(rec, col(model.ColTotalPricePaid))),
			WACPrice:        normalize.ParseCurrency(cell(rec, col(model.ColWACPrice))),
			Infusions:       normalize.ParseNumber(cell(rec, col(model.ColInfusions)), 1),
		}

		c.DispensedDrug = normalize.TitleCase(cell(rec, col(model.ColDispensedDrug)))
		if c.DispensedDrug == "" {
			c.DispensedDrug = "Unknown"
		}
		c.BizDevName = cell(rec, col(model.ColBizDevName))
		if c.BizDevName == "" {
			c.BizDevName = "Unknown"
		}

		if hasInvCol {
			c.InventoryType = normalize.InventoryTag(cell(rec, col(invCol)))
		} else {
			c.InventoryType = model.Inventory340B
		}

		c.Source = make(map[string]string, len(header))
		for i, h := range header {
			c.Source[h] = cell(rec, i)
		}

		claims = append(claims, c)
	}

	return &model.ClaimsTable{Header: header, Claims: claims}, nil
}

// readCSV opens a CSV (BOM-safe) and returns the header row plus data rows.
func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(utfbom.SkipOnly(f),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
	)
	if df.Err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", df.Err)
	}

	records := df.Records()
	if len(records) == 0 {
		return nil, nil, errors.New("csv has no header row")
	}
	return records[0], records[1:], nil
}

// columnIndexer maps cleaned column names to positions; unknown names
// resolve to -1 so cell() yields "".
func columnIndexer(header []string) func(string) int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if _, seen := idx[h]; !seen {
			idx[h] = i
		}
	}
	return func(name string) int {
		if i, ok := idx[name]; ok {
			return i
		}
		return -1
	}
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return trimCell(rec[i])
}

func trimCell(s string) string {
	return normalize.CleanHeader(s)
}

func renameColumn(header []string, from, to string) {
	for _, h := range header {
		if h == to {
			return
		}
	}
	for i, h := range header {
		if h == from {
			header[i] = to
			return
		}
	}
}
