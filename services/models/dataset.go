package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateColumn is returned when two columns of a dataset share a name.
	ErrDuplicateColumn = errors.New("duplicate column name")
	// ErrRowWidth is returned when a row does not have one cell per column.
	ErrRowWidth = errors.New("row width does not match column count")
)

// Kind is the inferred type of a dataset column.
type Kind int

const (
	// KindOther covers every non-numeric column (text, booleans, dates, ...).
	KindOther Kind = iota
	// KindNumeric columns only hold numbers or nulls.
	KindNumeric
)

func (k Kind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "other"
}

// Column describes one named column of a Dataset.
type Column struct {
	Name string
	Kind Kind
	// DatabaseType is the type name reported by the driver, empty when unknown.
	DatabaseType string
}

// Dataset is an in-memory table of named, typed columns.
// A nil cell is a null value.
type Dataset struct {
	name    string
	columns []Column
	index   map[string]int
	rows    [][]any
}

// NewDataset builds a Dataset, rejecting duplicate column names and ragged rows.
// The dataset keeps its own copy of the column slice but takes ownership of rows.
func NewDataset(name string, columns []Column, rows [][]any) (*Dataset, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, ok := index[c.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		index[c.Name] = i
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRowWidth, i, len(row), len(columns))
		}
	}
	if rows == nil {
		rows = [][]any{}
	}
	return &Dataset{
		name:    name,
		columns: append([]Column(nil), columns...),
		index:   index,
		rows:    rows,
	}, nil
}

// Name returns the dataset name (the query name for query results).
func (d *Dataset) Name() string { return d.name }

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Width returns the number of columns.
func (d *Dataset) Width() int { return len(d.columns) }

// Columns returns the columns in their original left-to-right order.
func (d *Dataset) Columns() []Column {
	return append([]Column(nil), d.columns...)
}

// ColumnNames returns the column names in order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// ColumnsOfKind returns the columns of the given kind, preserving order.
func (d *Dataset) ColumnsOfKind(kind Kind) []Column {
	var out []Column
	for _, c := range d.columns {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Column looks a column up by name.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

// Row returns the cells of row i. The slice must not be modified.
func (d *Dataset) Row(i int) []any { return d.rows[i] }

// Values returns a copy of the cells of the named column, nil when the column is unknown.
func (d *Dataset) Values(name string) []any {
	i, ok := d.index[name]
	if !ok {
		return nil
	}
	out := make([]any, len(d.rows))
	for r, row := range d.rows {
		out[r] = row[i]
	}
	return out
}

// InferKind decides the kind of a column from its cells. A column is numeric when
// every non-null cell is a number. Columns without any non-null cell fall back to
// the declared database type.
func InferKind(values []any, databaseType string) Kind {
	seen := false
	for _, v := range values {
		if v == nil {
			continue
		}
		seen = true
		if _, ok := ToFloat(v); !ok {
			return KindOther
		}
	}
	if seen {
		return KindNumeric
	}
	if IsNumericType(databaseType) {
		return KindNumeric
	}
	return KindOther
}

// ToFloat converts Go numeric values to float64. Booleans and strings are not numbers.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
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
	}
	return 0, false
}

var numericTypes = map[string]bool{
	"INT": true, "INTEGER": true, "SMALLINT": true, "BIGINT": true, "TINYINT": true,
	"MEDIUMINT": true, "INT2": true, "INT4": true, "INT8": true,
	"SERIAL": true, "BIGSERIAL": true, "SMALLSERIAL": true,
	"REAL": true, "FLOAT": true, "FLOAT4": true, "FLOAT8": true, "DOUBLE": true,
	"DOUBLE PRECISION": true, "DECIMAL": true, "NUMERIC": true, "NUMBER": true,
}

// IsNumericType reports whether a database type name denotes a numeric type.
// Length/precision suffixes and the MySQL UNSIGNED prefix are ignored.
func IsNumericType(databaseType string) bool {
	t := strings.ToUpper(strings.TrimSpace(databaseType))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = strings.TrimPrefix(t, "UNSIGNED ")
	return numericTypes[t]
}
