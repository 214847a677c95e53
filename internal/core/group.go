package core

import (
	"fmt"
	"sort"
)

// AggFunc identifies an aggregation applied per group.
type AggFunc int

const (
	AggCount         AggFunc = iota // rows in the group, nulls included
	AggSum                          // sum of non-null values
	AggMean                         // mean of non-null values
	AggCountDistinct                // distinct non-null values
)

// Aggregate describes one output column of GroupBy.
type Aggregate struct {
	Func   AggFunc
	Column string // Input column; unused for AggCount
	As     string // Output column name
}

// Count counts rows per group.
func Count(as string) Aggregate { return Aggregate{Func: AggCount, As: as} }

// Sum adds the non-null values of column per group.
func Sum(column, as string) Aggregate { return Aggregate{Func: AggSum, Column: column, As: as} }

// Mean averages the non-null values of column per group.
func Mean(column, as string) Aggregate { return Aggregate{Func: AggMean, Column: column, As: as} }

// CountDistinct counts distinct non-null values of column per group.
func CountDistinct(column, as string) Aggregate {
	return Aggregate{Func: AggCountDistinct, Column: column, As: as}
}

// GroupBy groups rows by the value of key and computes each aggregate.
//
// The result has columns [key, aggs[0].As, aggs[1].As, ...] and one row per
// distinct non-null key, in ascending key order. Rows with a null key are
// dropped. Sum yields KindInt when every summed value is an integer and
// KindFloat otherwise; Sum and Mean yield null for a group with no non-null
// values. Text values in a summed column are an error.
func GroupBy(t *Table, key string, aggs ...Aggregate) (*Table, error) {
	keyIdx, err := t.ColumnIndex(key)
	if err != nil {
		return nil, err
	}

	colIdx := make([]int, len(aggs))
	columns := make([]string, 0, len(aggs)+1)
	columns = append(columns, t.Columns[keyIdx])
	for i, a := range aggs {
		colIdx[i] = -1
		if a.Func != AggCount {
			if colIdx[i], err = t.ColumnIndex(a.Column); err != nil {
				return nil, err
			}
		}
		columns = append(columns, a.As)
	}

	type group struct {
		key  Value
		rows []Row
	}
	groups := make(map[Value]*group)
	var order []*group
	for _, row := range t.Rows {
		k := row[keyIdx]
		if k.IsNull() {
			continue
		}
		g, ok := groups[k]
		if !ok {
			g = &group{key: k}
			groups[k] = g
			order = append(order, g)
		}
		g.rows = append(g.rows, row)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return compareValues(order[i].key, order[j].key) < 0
	})

	rows := make([]Row, 0, len(order))
	for _, g := range order {
		out := make(Row, 0, len(columns))
		out = append(out, g.key)
		for i, a := range aggs {
			v, err := aggregate(a, colIdx[i], g.rows)
			if err != nil {
				return nil, fmt.Errorf("group %s=%q: %w", columns[0], g.key.String(), err)
			}
			out = append(out, v)
		}
		rows = append(rows, out)
	}

	return &Table{Name: t.Name, Columns: columns, Rows: rows}, nil
}

func aggregate(a Aggregate, col int, rows []Row) (Value, error) {
	switch a.Func {
	case AggCount:
		return Int(int64(len(rows))), nil

	case AggCountDistinct:
		seen := make(map[Value]struct{}, len(rows))
		for _, row := range rows {
			if v := row[col]; !v.IsNull() {
				seen[v] = struct{}{}
			}
		}
		return Int(int64(len(seen))), nil

	case AggSum, AggMean:
		var (
			isum     int64
			fsum     float64
			n        int
			floaty   bool
			overflow bool
		)
		for _, row := range rows {
			v := row[col]
			switch v.Kind() {
			case KindNull:
				continue
			case KindInt:
				i, _ := v.Int64()
				next := isum + i
				if (i > 0 && next < isum) || (i < 0 && next > isum) {
					overflow = true
				}
				isum = next
				fsum += float64(i)
			case KindFloat:
				f, _ := v.Float64()
				fsum += f
				floaty = true
			default:
				return Null(), fmt.Errorf("column %q is not numeric: %q", a.Column, v.String())
			}
			n++
		}
		if n == 0 {
			return Null(), nil
		}
		if a.Func == AggMean {
			return Float(fsum / float64(n)), nil
		}
		if floaty || overflow {
			return Float(fsum), nil
		}
		return Int(isum), nil

	default:
		return Null(), fmt.Errorf("unsupported aggregation %d", a.Func)
	}
}
