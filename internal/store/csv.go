package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/accountant-dev/accountant/internal/model"
)

// Header returns the CSV header row text, comma-joined in schema order.
func Header() string {
	return strings.Join(model.FieldNames(), ",")
}

// MarshalEntry converts an Entry to a CSV row in schema field order.
func MarshalEntry(e model.Entry) []string {
	specs := model.Schema()
	row := make([]string, len(specs))
	for i, spec := range specs {
		row[i] = spec.Get(e)
	}
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (model.Entry, error) {
	specs := model.Schema()
	if len(record) != len(specs) {
		return model.Entry{}, fmt.Errorf("expected %d fields, got %d", len(specs), len(record))
	}

	fields := make(map[string]string, len(specs))
	for i, spec := range specs {
		fields[spec.Name] = record[i]
	}
	return model.FromFields(fields)
}

// ReadEntries reads all entries from a ledger CSV reader.
func ReadEntries(r io.Reader) ([]model.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(model.FieldNames())

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var entries []model.Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteEntries writes entries to a ledger CSV writer (including header).
func WriteEntries(w io.Writer, entries []model.Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(model.FieldNames()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	// The buffered rows only reach w on Flush, so it must run before the
	// error check.
	cw.Flush()
	return cw.Error()
}

// AppendEntries appends entries to an existing ledger CSV writer (no header).
func AppendEntries(w io.Writer, entries []model.Entry) error {
	cw := csv.NewWriter(w)

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
