package model

// Table is a generic column-ordered table used on every egress path
// (on-screen detail, CSV export, workbook sheets). Transformations over a
// Table return a new value; shared snapshots are never mutated in place.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Prepend returns a copy of the table with a constant-valued column inserted
// at position zero, e.g. the "Date Range" column on summary exports.
func (t Table) Prepend(name, value string) Table {
	out := Table{Columns: make([]string, 0, len(t.Columns)+1)}
	out.Columns = append(out.Columns, name)
	out.Columns = append(out.Columns, t.Columns...)
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		r := make([]string, 0, len(row)+1)
		r = append(r, value)
		r = append(r, row...)
		out.Rows[i] = r
	}
	return out
}
