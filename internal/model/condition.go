package model

import "fmt"

// Query is a single-field equality predicate used for read and delete
// selection. Values compare as exact text against the serialized field.
type Query struct {
	Where string
	Value string
}

func (q Query) String() string {
	return fmt.Sprintf("WHERE::%s == VALUE::%s", q.Where, q.Value)
}

// UpdateCondition selects rows whose Where field equals Value and replaces
// that field with WithNewValue. Similar to
// `UPDATE where VALUE = SOME_VALUE with NEW_VALUE`.
type UpdateCondition struct {
	Where        string
	Value        string
	WithNewValue string
}

func (c UpdateCondition) String() string {
	return fmt.Sprintf("WHERE::%s == VALUE::%s THEN UPDATE WITH::%s", c.Where, c.Value, c.WithNewValue)
}
