package entities

// Table is the canonical raw form every data-loading collaborator
// produces: a named grid of string cells under a header row. Cell values
// stay unparsed here; numeric conversion is the schema adapter's job so
// that per-cell conversion problems degrade gracefully instead of failing
// the load.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of a named column, or -1 when the
// table does not carry it. Matching is exact; loaders normalize case and
// whitespace before building a Table.
func (t Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the table carries no data rows.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// TableSet is the four input tables of one planning run. Forecast is
// optional and superseded by Demand whenever Demand is present.
type TableSet struct {
	Supply   Table
	Builds   Table
	Forecast Table
	Demand   Table
}
