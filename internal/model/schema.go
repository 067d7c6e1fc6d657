package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FieldSpec pairs a persisted field name with its accessor and mutator.
// Predicate matching and row encoding both dispatch through this table, so
// field names are never compared against struct fields anywhere else.
type FieldSpec struct {
	Name string
	Get  func(Entry) string
	Set  func(*Entry, string) error
}

// Schema returns the ordered field list for the Entry record. This is the
// single source of truth for the ledger file layout: the store derives its
// header and its field dispatch from it at construction.
func Schema() []FieldSpec {
	return []FieldSpec{
		{
			Name: "id",
			Get:  func(e Entry) string { return e.ID },
			Set:  func(e *Entry, v string) error { e.ID = v; return nil },
		},
		{
			Name: "date_time",
			Get: func(e Entry) string {
				if e.DateTime.IsZero() {
					return ""
				}
				return e.DateTime.Format(DateTimeFormat)
			},
			Set: func(e *Entry, v string) error {
				if v == "" {
					return nil
				}
				t, err := time.Parse(DateTimeFormat, v)
				if err != nil {
					return &ValidationError{Field: "date_time", Value: v, Err: err}
				}
				e.DateTime = t
				return nil
			},
		},
		{
			Name: "name",
			Get:  func(e Entry) string { return e.Name },
			Set:  func(e *Entry, v string) error { e.Name = v; return nil },
		},
		{
			Name: "amount",
			Get:  func(e Entry) string { return e.Amount.String() },
			Set: func(e *Entry, v string) error {
				d, err := decimal.NewFromString(v)
				if err != nil {
					return &ValidationError{Field: "amount", Value: v, Err: err}
				}
				e.Amount = d
				return nil
			},
		},
		{
			Name: "reason",
			Get:  func(e Entry) string { return e.Reason },
			Set:  func(e *Entry, v string) error { e.Reason = v; return nil },
		},
		{
			Name: "tag",
			Get:  func(e Entry) string { return e.Tag },
			Set:  func(e *Entry, v string) error { e.Tag = v; return nil },
		},
		{
			Name: "flow_type",
			Get:  func(e Entry) string { return string(e.FlowType) },
			Set: func(e *Entry, v string) error {
				if v == "" {
					return nil
				}
				ft, err := ParseFlowType(v)
				if err != nil {
					return err
				}
				e.FlowType = ft
				return nil
			},
		},
	}
}

// FieldNames returns the schema field names in order.
func FieldNames() []string {
	specs := Schema()
	names := make([]string, len(specs))
	for i, spec := range specs {
		names[i] = spec.Name
	}
	return names
}
