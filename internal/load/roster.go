package load

import (
	"fmt"

	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/normalize"
)

// Roster reads the business-development roster feed (a CSV export of a
// shared sheet). Headers are lowercased with underscores so the feed's
// inconsistent capitalization never matters downstream.
func Roster(path string) ([]model.RosterEntry, error) {
	header, records, err := readCSV(path)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	for i, h := range header {
		header[i] = normalize.SnakeHeader(h)
	}

	col := columnIndexer(header)
	repIdx := col(model.RosterColRep)
	if repIdx < 0 {
		repIdx = col(model.RosterColPCC)
	}

	entries := make([]model.RosterEntry, 0, len(records))
	for _, rec := range records {
		e := model.RosterEntry{
			DoctorName: cell(rec, col(model.RosterColDoctorName)),
			NPI:        normalize.NormalizeNPI(cell(rec, col(model.RosterColNPI))),
			Rep:        cell(rec, repIdx),
			Specialty:  cell(rec, col(model.RosterColSpecialty)),
		}
		e.Extra = make(map[string]string, len(header))
		for i, h := range header {
			e.Extra[h] = cell(rec, i)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
