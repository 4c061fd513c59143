package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/phi"
)

// WriteCSV writes a table to path with patient identifier columns removed.
// dateRange, when non-empty, is prepended as a constant first column so an
// exported file is self-describing about the period it covers.
func WriteCSV(path string, t model.Table, dateRange string) error {
	t = phi.Redact(t)
	if dateRange != "" {
		t = t.Prepend("Date Range", dateRange)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	return f.Close()
}
