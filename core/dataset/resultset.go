package dataset

import (
	"fmt"
	"strconv"
)

// ResultSet is one named, rectangular query result.
// Row values are nil, a string, or a Go numeric type.
type ResultSet struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
	Rows    [][]any  `yaml:"rows"`
}

// New returns an empty ResultSet with the given header.
func New(name string, columns ...string) *ResultSet {
	return &ResultSet{Name: name, Columns: columns}
}

// Append adds a row. Arity is checked by Validate, not here.
func (r *ResultSet) Append(values ...any) {
	r.Rows = append(r.Rows, values)
}

// Len returns the number of data rows.
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Empty reports whether the result set has no data rows.
func (r *ResultSet) Empty() bool { return r.Len() == 0 }

// Validate checks that every row has the same arity as the header.
func (r *ResultSet) Validate() error {
	if len(r.Columns) == 0 {
		return fmt.Errorf("result set %q has no columns", r.Name)
	}
	for i, row := range r.Rows {
		if len(row) != len(r.Columns) {
			return fmt.Errorf("result set %q: row %d has %d values, expected %d", r.Name, i+1, len(row), len(r.Columns))
		}
	}
	return nil
}

// ColumnIndex returns the position of a column by header name, or -1.
func (r *ResultSet) ColumnIndex(name string) int {
	for i, c := range r.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the values of one column, in row order.
func (r *ResultSet) Column(name string) ([]any, error) {
	idx := r.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("result set %q has no column %q", r.Name, name)
	}
	out := make([]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		if idx < len(row) {
			out = append(out, row[idx])
		} else {
			out = append(out, nil)
		}
	}
	return out, nil
}

// Floats returns a numeric column as float64s. Null cells are skipped;
// any other non-numeric cell is an error.
func (r *ResultSet) Floats(name string) ([]float64, error) {
	values, err := r.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		f, ok := AsFloat(v)
		if !ok {
			return nil, fmt.Errorf("result set %q: column %q row %d is %T, not a number", r.Name, name, i+1, v)
		}
		out = append(out, f)
	}
	return out, nil
}

// Strings returns a column rendered as text. Null cells become "".
func (r *ResultSet) Strings(name string) ([]string, error) {
	values, err := r.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Text(v)
	}
	return out, nil
}

// IsNumber reports whether v holds a Go numeric type. Strings that look
// like numbers and booleans are not numbers.
func IsNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// AsFloat converts a numeric value to float64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Text renders a scalar for labels.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprint(t)
	}
}
