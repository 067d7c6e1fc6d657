package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/accountant-dev/accountant/internal/model"
)

// BankParser parses generic bank checking exports: a header row followed
// by date,description,amount rows, amounts signed from the account's
// point of view (negative = money out).
type BankParser struct{}

const (
	bankDateFormat = "01/02/2006"
	bankNumFields  = 3
	bankColDate    = 0
	bankColDesc    = 1
	bankColAmount  = 2
)

// Format returns the parser name.
func (p *BankParser) Format() string { return "bank" }

// Parse reads a statement CSV and returns ledger entries. Negative
// amounts become debit entries with the absolute amount; positive amounts
// become credits.
func (p *BankParser) Parse(r io.Reader) ([]model.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = bankNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []model.Entry
	for i, rec := range records[1:] {
		e, err := parseBankRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseBankRow(rec []string) (model.Entry, error) {
	date, err := time.Parse(bankDateFormat, rec[bankColDate])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing date %q: %w", rec[bankColDate], err)
	}

	amount, err := decimal.NewFromString(rec[bankColAmount])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing amount %q: %w", rec[bankColAmount], err)
	}

	flow := model.FlowCredit
	if amount.IsNegative() {
		flow = model.FlowDebit
		amount = amount.Neg()
	}

	return model.New(rec[bankColDesc], amount, "imported from bank statement",
		model.WithDateTime(date), model.WithFlowType(flow)), nil
}
