// Package medicare pre-processes the CMS Medicare Part D prescriber file
// from its distributed CSV into Parquet with derived per-claim and
// per-beneficiary cost columns, for fast targeting queries.
package medicare

import (
	"fmt"
	"os"

	"github.com/dimchansky/utfbom"
	"github.com/go-gota/gota/dataframe"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"

	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/normalize"
)

// PrepareSummary reports what a conversion run produced.
type PrepareSummary struct {
	RowsIn      int
	RowsOut     int
	RowsDropped int // rows missing an NPI or a drug name
}

// Prepare converts the raw CSV at inPath to Parquet at outPath. Derived
// cost columns are left null when their denominator is not positive rather
// than recording an infinity.
func Prepare(inPath, outPath string, log zerolog.Logger) (*PrepareSummary, error) {
	header, records, err := readCSV(inPath)
	if err != nil {
		return nil, err
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[normalize.CleanHeader(name)] = i
	}
	for _, required := range []string{model.MedicareColNPI, model.MedicareColClaims, model.MedicareColDrugCost} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("medicare file missing column %q", required)
		}
	}
	cell := func(record []string, name string) string {
		if i, ok := col[name]; ok && i < len(record) {
			return record[i]
		}
		return ""
	}

	out, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}
	defer out.Close()
	w := parquet.NewGenericWriter[model.MedicareRow](out)

	summary := &PrepareSummary{RowsIn: len(records)}
	buf := make([]model.MedicareRow, 0, 1024)
	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("write parquet rows: %w", err)
		}
		buf = buf[:0]
		return nil
	}

	for _, record := range records {
		row := model.MedicareRow{
			PrescriberNPI:      normalize.NormalizeNPI(cell(record, model.MedicareColNPI)),
			PrescriberName:     cell(record, model.MedicareColName),
			State:              cell(record, model.MedicareColState),
			BrandName:          cell(record, model.MedicareColBrand),
			GenericName:        cell(record, model.MedicareColGeneric),
			TotalClaims:        normalize.ParseNumber(cell(record, model.MedicareColClaims), 0),
			TotalBeneficiaries: normalize.ParseNumber(cell(record, model.MedicareColBenes), 0),
			TotalDrugCost:      normalize.ParseCurrency(cell(record, model.MedicareColDrugCost)),
		}
		if row.PrescriberNPI == "" || (row.BrandName == "" && row.GenericName == "") {
			summary.RowsDropped++
			continue
		}
		if row.TotalClaims > 0 {
			v := row.TotalDrugCost / row.TotalClaims
			row.CostPerClaim = &v
		}
		if row.TotalBeneficiaries > 0 {
			v := row.TotalDrugCost / row.TotalBeneficiaries
			row.CostPerBeneficiary = &v
		}

		buf = append(buf, row)
		summary.RowsOut++
		if len(buf) == cap(buf) {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close parquet writer: %w", err)
	}

	log.Info().
		Int("rows_in", summary.RowsIn).
		Int("rows_out", summary.RowsOut).
		Int("rows_dropped", summary.RowsDropped).
		Str("path", outPath).
		Msg("medicare parquet written")
	return summary, out.Close()
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open medicare file: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(utfbom.SkipOnly(f),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false))
	if df.Err != nil {
		return nil, nil, fmt.Errorf("parse medicare csv: %w", df.Err)
	}

	records := df.Records()
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("medicare file %s is empty", path)
	}
	return records[0], records[1:], nil
}
