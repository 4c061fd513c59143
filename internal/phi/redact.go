// Package phi strips direct patient identifiers from tables before they
// leave the process boundary. The column set is a closed, explicit list:
// redaction is never inferred from what a value "looks like", so adding a
// new patient-identifying column to a source export requires adding it here.
package phi

import (
	"strings"

	"github.com/hudsonrx/claimsight/internal/model"
)

// Columns is the fixed set of patient-identifying column names, compared
// against trimmed column names exactly.
var Columns = map[string]struct{}{
	"Patient Full Name":     {},
	"Patient Contact #":     {},
	"Patient Phone":         {},
	"Patient Phone #":       {},
	"Patient Email":         {},
	"Patient Address":       {},
	"MRN":                   {},
	"Medical Record Number": {},
}

// Redact returns a copy of the table with every PHI column dropped. It is
// idempotent and a no-op for tables that never had the columns; dropping is
// a set operation over column names, so order does not matter.
func Redact(t model.Table) model.Table {
	keep := make([]int, 0, len(t.Columns))
	for i, c := range t.Columns {
		if !IsPHI(c) {
			keep = append(keep, i)
		}
	}
	if len(keep) == len(t.Columns) {
		return clone(t)
	}

	out := model.Table{Columns: make([]string, len(keep))}
	for j, i := range keep {
		out.Columns[j] = t.Columns[i]
	}
	out.Rows = make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		nr := make([]string, len(keep))
		for j, i := range keep {
			if i < len(row) {
				nr[j] = row[i]
			}
		}
		out.Rows[r] = nr
	}
	return out
}

// IsPHI reports whether the trimmed column name is in the closed PHI set.
func IsPHI(column string) bool {
	_, ok := Columns[strings.TrimSpace(column)]
	return ok
}

func clone(t model.Table) model.Table {
	out := model.Table{Columns: append([]string(nil), t.Columns...)}
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}
