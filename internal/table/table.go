// Package table holds the in-memory tabular model that uploads are loaded into.
// A Table is an ordered list of named columns whose values line up by row.
package table

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrNoHeader        = errors.New("input has no header row")
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrRaggedRow       = errors.New("row width does not match header")
)

// Kind is the scalar type inferred for a column.
type Kind string

const (
	KindEmpty     Kind = "empty"
	KindInteger   Kind = "integer"
	KindFloat     Kind = "float"
	KindBoolean   Kind = "boolean"
	KindTimestamp Kind = "timestamp"
	KindString    Kind = "string"
)

// Column is a named sequence of values. A nil value is missing.
type Column struct {
	Name   string
	Values []any
}

// Kind infers the column kind from its current values.
func (c *Column) Kind() Kind {
	return InferKind(c.Values)
}

type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// New returns an empty table with the given column names.
func New(names []string) (*Table, error) {
	t := &Table{
		columns: make([]*Column, 0, len(names)),
		index:   make(map[string]int, len(names)),
	}
	for i, name := range names {
		if _, ok := t.index[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		t.index[name] = i
		t.columns = append(t.columns, &Column{Name: name})
	}
	return t, nil
}

// AppendRow adds one row. len(values) must equal the number of columns.
func (t *Table) AppendRow(values []any) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("%w: expected %d fields, got %d", ErrRaggedRow, len(t.columns), len(values))
	}
	for i, v := range values {
		t.columns[i].Values = append(t.columns[i].Values, v)
	}
	t.rows++
	return nil
}

// Columns returns the column names in input order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column. Mutating its Values is visible to the table.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.rows
}

// Row returns a copy of row i in column order.
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.columns))
	for j, c := range t.columns {
		row[j] = c.Values[i]
	}
	return row
}

// RowComplete reports whether row i has a value in every column.
func (t *Table) RowComplete(i int) bool {
	for _, c := range t.columns {
		if IsMissing(c.Values[i]) {
			return false
		}
	}
	return true
}

// Filter returns a new table holding the rows for which keep returns true.
func (t *Table) Filter(keep func(row int) bool) *Table {
	out := t.emptyCopy()
	for i := 0; i < t.rows; i++ {
		if !keep(i) {
			continue
		}
		for j, c := range t.columns {
			out.columns[j].Values = append(out.columns[j].Values, c.Values[i])
		}
		out.rows++
	}
	return out
}

// DropNA returns the rows that have no missing value in any column.
func (t *Table) DropNA() *Table {
	return t.Filter(t.RowComplete)
}

// Head returns at most the first n rows.
func (t *Table) Head(n int) *Table {
	return t.Filter(func(row int) bool { return row < n })
}

func (t *Table) emptyCopy() *Table {
	out := &Table{
		columns: make([]*Column, len(t.columns)),
		index:   make(map[string]int, len(t.index)),
	}
	for i, c := range t.columns {
		out.columns[i] = &Column{Name: c.Name}
		out.index[c.Name] = i
	}
	return out
}

// IsMissing reports whether v counts as a missing value. NaN floats are missing.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}

// KindOf returns the kind of a single value.
func KindOf(v any) Kind {
	if IsMissing(v) {
		return KindEmpty
	}
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInteger
	case float32, float64:
		return KindFloat
	case bool:
		return KindBoolean
	case time.Time:
		return KindTimestamp
	default:
		return KindString
	}
}

// InferKind returns the narrowest kind that every non-missing value satisfies.
// Mixed integers and floats widen to float; any other mix is string.
func InferKind(values []any) Kind {
	kind := KindEmpty
	for _, v := range values {
		k := KindOf(v)
		switch {
		case k == KindEmpty || k == kind:
			continue
		case kind == KindEmpty:
			kind = k
		case isNumeric(kind) && isNumeric(k):
			kind = KindFloat
		default:
			return KindString
		}
	}
	return kind
}

func isNumeric(k Kind) bool {
	return k == KindInteger || k == KindFloat
}
