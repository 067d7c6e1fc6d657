package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FlowType classifies the cash flow direction of a transaction.
type FlowType string

const (
	FlowCredit  FlowType = "credit"
	FlowDebit   FlowType = "debit"
	FlowSavings FlowType = "savings"
)

// ParseFlowType converts flow type text to a FlowType. Anything other than
// the three literal values is a validation error.
func ParseFlowType(s string) (FlowType, error) {
	switch FlowType(s) {
	case FlowCredit, FlowDebit, FlowSavings:
		return FlowType(s), nil
	}
	return "", &ValidationError{
		Field: "flow_type",
		Value: s,
		Err:   fmt.Errorf("must be one of %q, %q, %q", FlowCredit, FlowDebit, FlowSavings),
	}
}

// DateTimeFormat is the fixed text format for entry timestamps.
const DateTimeFormat = "2006-01-02T15:04:05"

// Entry is one persisted financial transaction.
type Entry struct {
	ID       string // random UUID, assigned once at creation
	DateTime time.Time
	Name     string
	Amount   decimal.Decimal // exact decimal, never float
	Reason   string
	Tag      string // optional classification
	FlowType FlowType
}

// Option configures optional Entry fields at creation.
type Option func(*Entry)

// WithTag sets the optional classification tag.
func WithTag(tag string) Option {
	return func(e *Entry) { e.Tag = tag }
}

// WithFlowType overrides the default credit flow type.
func WithFlowType(ft FlowType) Option {
	return func(e *Entry) { e.FlowType = ft }
}

// WithDateTime overrides the default creation timestamp.
func WithDateTime(t time.Time) Option {
	return func(e *Entry) { e.DateTime = t }
}

// New creates an Entry with a fresh random ID, the current time, and a
// credit flow type unless options say otherwise.
func New(name string, amount decimal.Decimal, reason string, opts ...Option) Entry {
	e := Entry{
		ID:       uuid.NewString(),
		DateTime: time.Now(),
		Name:     name,
		Amount:   amount,
		Reason:   reason,
		FlowType: FlowCredit,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// ValidationError reports a field value that cannot be coerced to its
// declared type, or a required field that is missing.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s: invalid value %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// requiredFields must be present when constructing an Entry from raw text.
var requiredFields = []string{"name", "amount", "reason"}

// FromFields builds an Entry from a field-name to text mapping, as read
// from one ledger row. An empty date_time defaults to the current time and
// an empty flow_type defaults to credit; empty id and tag stay empty so
// that rows round-trip unchanged.
func FromFields(fields map[string]string) (Entry, error) {
	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			return Entry{}, &ValidationError{Field: name, Err: errors.New("required field missing")}
		}
	}

	var e Entry
	for _, spec := range Schema() {
		value, ok := fields[spec.Name]
		if !ok {
			continue
		}
		if err := spec.Set(&e, value); err != nil {
			return Entry{}, err
		}
	}
	if e.DateTime.IsZero() {
		e.DateTime = time.Now()
	}
	if e.FlowType == "" {
		e.FlowType = FlowCredit
	}
	return e, nil
}

// Fields serializes the Entry back to its text representation, keyed by
// field name.
func (e Entry) Fields() map[string]string {
	specs := Schema()
	out := make(map[string]string, len(specs))
	for _, spec := range specs {
		out[spec.Name] = spec.Get(e)
	}
	return out
}
