package medicare

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/hudsonrx/claimsight/internal/model"
)

// Reader wraps a parquet GenericReader for streaming MedicareRow records.
type Reader struct {
	file   *os.File
	reader *parquet.GenericReader[model.MedicareRow]
}

// Open opens a prepared Parquet file and returns a streaming Reader.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	r := parquet.NewGenericReader[model.MedicareRow](pf)
	return &Reader{file: f, reader: r}, nil
}

// NumRows returns the total number of rows in the Parquet file.
func (r *Reader) NumRows() int64 {
	return r.reader.NumRows()
}

// Read reads up to len(rows) records into the provided slice.
// Returns the number of rows read and io.EOF when done.
func (r *Reader) Read(rows []model.MedicareRow) (int, error) {
	n, err := r.reader.Read(rows)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("read parquet rows: %w", err)
	}
	return n, err
}

// ReadAll drains the file into memory. Intended for the prepared file,
// which is small after filtering.
func (r *Reader) ReadAll() ([]model.MedicareRow, error) {
	out := make([]model.MedicareRow, 0, r.NumRows())
	buf := make([]model.MedicareRow, 1024)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// VerifySummary reports what a read-back of a prepared file found.
type VerifySummary struct {
	Rows            int64
	NullCostPerClm  int
	NullCostPerBene int
}

// Verify re-reads a prepared Parquet file and checks every row still
// satisfies the conversion contract: a non-empty NPI and derived costs
// present exactly when their denominator was positive.
func Verify(path string) (*VerifySummary, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	s := &VerifySummary{Rows: r.NumRows()}
	for i := range rows {
		row := &rows[i]
		if row.PrescriberNPI == "" {
			return nil, fmt.Errorf("row %d has an empty NPI", i)
		}
		if (row.CostPerClaim != nil) != (row.TotalClaims > 0) {
			return nil, fmt.Errorf("row %d (%s): cost per claim does not match claim count %v",
				i, row.PrescriberNPI, row.TotalClaims)
		}
		if (row.CostPerBeneficiary != nil) != (row.TotalBeneficiaries > 0) {
			return nil, fmt.Errorf("row %d (%s): cost per beneficiary does not match beneficiary count %v",
				i, row.PrescriberNPI, row.TotalBeneficiaries)
		}
		if row.CostPerClaim == nil {
			s.NullCostPerClm++
		}
		if row.CostPerBeneficiary == nil {
			s.NullCostPerBene++
		}
	}
	return s, nil
}

// Close closes the underlying reader and file.
func (r *Reader) Close() error {
	if err := r.reader.Close(); err != nil {
		r.file.Close()
		return fmt.Errorf("close parquet reader: %w", err)
	}
	return r.file.Close()
}
