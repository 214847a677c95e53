package core

// join.go implements the two equi-join operators the reports need.
//
// Both operators build a hash index over the right table and require its key
// to be unique: a repeated key is a DuplicateKeyError rather than a silent
// fan-out. Null keys never match. Output columns are the left columns
// followed by the right columns minus the key; a right column whose name
// already exists on the left is renamed "<column>_<right table name>".

import "fmt"

type joinKind int

const (
	joinLeft joinKind = iota
	joinInner
)

// LeftJoin keeps every left row in order. Unmatched rows get null for every
// right column. The result has exactly left.Len() rows.
func LeftJoin(left, right *Table, key string) (*Table, error) {
	return hashJoin(left, right, key, joinLeft)
}

// InnerJoin keeps only left rows that have a match on the right, in left
// order. The result never has more rows than left.
func InnerJoin(left, right *Table, key string) (*Table, error) {
	return hashJoin(left, right, key, joinInner)
}

func hashJoin(left, right *Table, key string, kind joinKind) (*Table, error) {
	leftKey, err := left.ColumnIndex(key)
	if err != nil {
		return nil, err
	}
	rightKey, err := right.ColumnIndex(key)
	if err != nil {
		return nil, err
	}

	index, err := uniqueIndex(right, rightKey)
	if err != nil {
		return nil, err
	}

	// Right-hand columns carried into the result, and their output names.
	carry := make([]int, 0, len(right.Columns)-1)
	columns := make([]string, 0, len(left.Columns)+len(right.Columns)-1)
	columns = append(columns, left.Columns...)
	taken := make(map[string]bool, len(columns))
	for _, c := range left.Columns {
		taken[c] = true
	}
	for i, c := range right.Columns {
		if i == rightKey {
			continue
		}
		name := c
		if taken[name] {
			name = fmt.Sprintf("%s_%s", c, right.Name)
		}
		taken[name] = true
		carry = append(carry, i)
		columns = append(columns, name)
	}

	rows := make([]Row, 0, len(left.Rows))
	for _, lrow := range left.Rows {
		var rrow Row
		if k := lrow[leftKey]; !k.IsNull() {
			if pos, ok := index[k.String()]; ok {
				rrow = right.Rows[pos]
			}
		}

		if rrow == nil && kind == joinInner {
			continue
		}

		out := make(Row, 0, len(columns))
		out = append(out, lrow...)
		for _, ci := range carry {
			if rrow == nil {
				out = append(out, Null())
			} else {
				out = append(out, rrow[ci])
			}
		}
		rows = append(rows, out)
	}

	return &Table{Name: left.Name, Columns: columns, Rows: rows}, nil
}

// uniqueIndex maps each non-null key to its row position.
func uniqueIndex(t *Table, col int) (map[string]int, error) {
	index := make(map[string]int, len(t.Rows))
	for i, row := range t.Rows {
		k := row[col]
		if k.IsNull() {
			continue
		}
		ks := k.String()
		if _, dup := index[ks]; dup {
			return nil, &DuplicateKeyError{Table: t.Name, Column: t.Columns[col], Value: ks}
		}
		index[ks] = i
	}
	return index, nil
}
