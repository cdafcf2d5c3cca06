package table

// Apply returns a copy of t with fn applied to every cell of the named
// columns, each cell independently. Names that match no column are ignored.
// An empty column set yields an identical copy. The input table is left
// untouched.
func Apply(t *Table, columns []string, fn func(string) string) *Table {
	out := t.Clone()

	var indices []int
	for _, name := range columns {
		if idx := t.ColumnIndex(name); idx >= 0 {
			indices = append(indices, idx)
		}
	}
	if len(indices) == 0 {
		return out
	}

	for _, row := range out.Rows {
		for _, idx := range indices {
			row[idx] = fn(row[idx])
		}
	}
	return out
}
