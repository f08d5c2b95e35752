// Copyright (c) 2026 The orgchart Authors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package orgdata

// In this file: row filtering and column listings.

import (
	"errors"
	"slices"
	"strings"
)

// costCenterColumn is compared with headers stripped of spaces.
const costCenterColumn = "costcentername"

// Condition is a single column=value filter term.
type Condition struct {
	Column string
	Value  string
}

// ParseFilter parses the filter expression "col=value,col2=value2".  Terms
// without "=" are ignored.  Columns and values are compared ignoring case.
func ParseFilter(s string) ([]Condition, error) {
	var conds []Condition
	for term := range strings.SplitSeq(s, ",") {
		col, val, ok := strings.Cut(term, "=")
		if !ok {
			continue
		}
		col = strings.TrimSpace(col)
		if col == "" {
			return nil, errors.New("filter: empty column name in " + strings.TrimSpace(term))
		}
		conds = append(conds, Condition{Column: col, Value: strings.TrimSpace(val)})
	}
	return conds, nil
}

// Filter returns a table with only the rows that satisfy every condition.
// It returns a *ColumnError if a condition names an unknown column.
func (t *Table) Filter(conds []Condition) (*Table, error) {
	idx := make([]int, len(conds))
	for i, c := range conds {
		idx[i] = t.Column(c.Column)
		if idx[i] < 0 {
			return nil, &ColumnError{Want: []string{c.Column}, Available: t.Columns(), Err: ErrUnknownColumn}
		}
	}
	out := &Table{Header: t.Header}
	for _, row := range t.Rows {
		keep := true
		for i, c := range conds {
			if !strings.EqualFold(Cell(row, idx[i]), c.Value) {
				keep = false
				break
			}
		}
		if keep {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

// CostCenters returns the sorted distinct non-empty values of the "Cost
// Center Name" column.  The header is matched ignoring case and spaces.
func CostCenters(t *Table) ([]string, error) {
	col := slices.IndexFunc(t.Header, func(h string) bool {
		return strings.ReplaceAll(normalise(h), " ", "") == costCenterColumn
	})
	if col < 0 {
		return nil, &ColumnError{Want: []string{"Cost Center Name"}, Available: t.Columns(), Err: ErrUnknownColumn}
	}
	seen := make(map[string]struct{})
	var centers []string
	for _, row := range t.Rows {
		v := Cell(row, col)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		centers = append(centers, v)
	}
	slices.Sort(centers)
	return centers, nil
}
