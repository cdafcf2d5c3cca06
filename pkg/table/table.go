// Package table holds the in-memory tabular dataset and its delimited-text
// I/O. Cells are never auto-typed: every value stays text from read to write.
package table

// Table is an ordered set of rows under a named header. Rows always have
// exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Clone returns a deep copy. Transforms operate on clones so the source
// table is never modified.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// ColumnIndex returns the position of a named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns a copy of the named column's values, or nil if the column
// does not exist.
func (t *Table) Column(name string) []string {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values
}

// InsertColumnAfter adds a column named name directly after position idx,
// filling each row from values (missing values become empty cells).
func (t *Table) InsertColumnAfter(idx int, name string, values []string) {
	pos := idx + 1
	t.Columns = append(t.Columns, "")
	copy(t.Columns[pos+1:], t.Columns[pos:])
	t.Columns[pos] = name

	for i, row := range t.Rows {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		row = append(row, "")
		copy(row[pos+1:], row[pos:])
		row[pos] = v
		t.Rows[i] = row
	}
}
