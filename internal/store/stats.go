package store

import (
	"github.com/shopspring/decimal"

	"github.com/accountant-dev/accountant/internal/model"
)

// Summary aggregates the ledger by flow type.
type Summary struct {
	Count  int
	Totals map[model.FlowType]decimal.Decimal
}

// Total returns the exact sum of amounts for one flow type.
func (s Summary) Total(ft model.FlowType) decimal.Decimal {
	return s.Totals[ft]
}

// Stats reads the whole ledger and totals amounts per flow type.
func (s *Store) Stats() (Summary, error) {
	entries, err := s.ReadAll()
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		Count:  len(entries),
		Totals: make(map[model.FlowType]decimal.Decimal),
	}
	for _, e := range entries {
		sum.Totals[e.FlowType] = sum.Totals[e.FlowType].Add(e.Amount)
	}
	return sum, nil
}
