package domain

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies what a single cell holds
type Kind uint8

const (
	KindMissing Kind = iota
	KindNumber
	KindText
	KindBool
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	default:
		return "missing"
	}
}

// Value is a single table cell. The zero Value is missing.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	Bool bool
}

// Number returns a numeric cell. NaN is stored as missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Missing()
	}
	return Value{Kind: KindNumber, Num: f}
}

// Text returns a text cell
func Text(s string) Value {
	return Value{Kind: KindText, Str: s}
}

// Bool returns a boolean cell
func Bool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// Missing returns a missing cell
func Missing() Value {
	return Value{}
}

// IsMissing reports whether the cell holds no value
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// Float returns the numeric content and whether the cell is a number
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.Num, true
}

// String renders the cell the way it is keyed and written to CSV.
// Missing cells render as the empty string.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText:
		return v.Str
	case KindBool:
		if v.Bool {
			return "True"
		}
		return "False"
	default:
		return ""
	}
}

// Less orders two non-missing cells of the same kind. Cells of different
// kinds order by kind.
func (v Value) Less(o Value) bool {
	if v.Kind != o.Kind {
		return v.Kind < o.Kind
	}
	switch v.Kind {
	case KindNumber:
		return v.Num < o.Num
	case KindText:
		return v.Str < o.Str
	case KindBool:
		return !v.Bool && o.Bool
	default:
		return false
	}
}

// ColumnType is the declared type of a column, fixed when the table is loaded
type ColumnType string

const (
	ColumnNumeric ColumnType = "numeric"
	ColumnText    ColumnType = "text"
	ColumnBool    ColumnType = "bool"
)

// Column is a named, typed sequence of cells
type Column struct {
	Name   string
	Type   ColumnType
	Values []Value
}

// IsNumeric reports whether the column is declared numeric
func (c *Column) IsNumeric() bool {
	return c.Type == ColumnNumeric
}

// MissingCount returns how many cells are missing
func (c *Column) MissingCount() int {
	n := 0
	for _, v := range c.Values {
		if v.IsMissing() {
			n++
		}
	}
	return n
}

// Floats returns the numeric cells in row order, skipping anything else
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if f, ok := v.Float(); ok {
			out = append(out, f)
		}
	}
	return out
}

func (c *Column) clone() *Column {
	values := make([]Value, len(c.Values))
	copy(values, c.Values)
	return &Column{Name: c.Name, Type: c.Type, Values: values}
}

// InferColumnType declares a column type from its cells: numeric when every
// non-missing cell is a number, bool when every one is a bool, text otherwise.
// A column with no values at all is numeric.
func InferColumnType(values []Value) ColumnType {
	numeric, boolean := true, true
	for _, v := range values {
		switch v.Kind {
		case KindMissing:
		case KindNumber:
			boolean = false
		case KindBool:
			numeric = false
		default:
			return ColumnText
		}
	}
	switch {
	case numeric:
		return ColumnNumeric
	case boolean:
		return ColumnBool
	default:
		return ColumnText
	}
}

// Table is the in-memory record table: ordered named columns of equal length.
// Operations return new tables and leave the receiver untouched.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// NewTable builds a table from columns. All columns must have the same length
// and unique names.
func NewTable(columns ...Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(columns))}
	for i := range columns {
		col := columns[i]
		if _, dup := t.index[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", col.Name)
		}
		if i == 0 {
			t.rows = len(col.Values)
		} else if len(col.Values) != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Values), t.rows)
		}
		if col.Type == "" {
			col.Type = InferColumnType(col.Values)
		}
		t.index[col.Name] = len(t.columns)
		t.columns = append(t.columns, col.clone())
	}
	return t, nil
}

// NumRows returns the number of rows
func (t *Table) NumRows() int {
	return t.rows
}

// NumCols returns the number of columns
func (t *Table) NumCols() int {
	return len(t.columns)
}

// ColumnNames returns column names in table order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether the named column exists
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column. The returned column must not be modified.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Columns returns the columns in table order. They must not be modified.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Row returns the cells of row i in column order
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.columns))
	for j, c := range t.columns {
		row[j] = c.Values[i]
	}
	return row
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	out := &Table{index: make(map[string]int, len(t.columns)), rows: t.rows}
	for i, c := range t.columns {
		out.columns = append(out.columns, c.clone())
		out.index[c.Name] = i
	}
	return out
}

// WithColumn returns a copy of the table with col set. An existing column of
// the same name is replaced in place; otherwise col is appended.
func (t *Table) WithColumn(col Column) (*Table, error) {
	if len(t.columns) > 0 && len(col.Values) != t.rows {
		return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Values), t.rows)
	}
	if col.Type == "" {
		col.Type = InferColumnType(col.Values)
	}
	out := t.Clone()
	if len(out.columns) == 0 {
		out.rows = len(col.Values)
	}
	if i, ok := out.index[col.Name]; ok {
		out.columns[i] = col.clone()
		return out, nil
	}
	out.index[col.Name] = len(out.columns)
	out.columns = append(out.columns, col.clone())
	return out, nil
}

// Drop returns a copy of the table without the named columns. Names that do
// not exist are ignored.
func (t *Table) Drop(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	out := &Table{index: make(map[string]int, len(t.columns)), rows: t.rows}
	for _, c := range t.columns {
		if drop[c.Name] {
			continue
		}
		out.index[c.Name] = len(out.columns)
		out.columns = append(out.columns, c.clone())
	}
	return out
}

// FilterRows returns a copy of the table holding only the rows for which keep
// returns true, in their original order.
func (t *Table) FilterRows(keep func(row int) bool) *Table {
	kept := make([]int, 0, t.rows)
	for i := 0; i < t.rows; i++ {
		if keep(i) {
			kept = append(kept, i)
		}
	}
	out := &Table{index: make(map[string]int, len(t.columns)), rows: len(kept)}
	for i, c := range t.columns {
		values := make([]Value, len(kept))
		for j, r := range kept {
			values[j] = c.Values[r]
		}
		out.columns = append(out.columns, &Column{Name: c.Name, Type: c.Type, Values: values})
		out.index[c.Name] = i
	}
	return out
}

// ColumnsWithMissing returns the names of columns holding at least one
// missing cell, in table order
func (t *Table) ColumnsWithMissing() []string {
	var names []string
	for _, c := range t.columns {
		if c.MissingCount() > 0 {
			names = append(names, c.Name)
		}
	}
	return names
}
