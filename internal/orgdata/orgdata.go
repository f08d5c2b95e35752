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

// Package orgdata extracts reporting lines from spreadsheets and builds the
// organisation hierarchy from them.
package orgdata

import (
	"context"
	"slices"
	"strings"
)

var (
	// DefEmployeeColumns are the accepted headers of the employee column,
	// in the order of preference.
	DefEmployeeColumns = []string{"associate id", "employee id", "employee", "employee name", "name"}
	// DefManagerColumns are the accepted headers of the manager column, in
	// the order of preference.
	DefManagerColumns = []string{"reports to manager id", "manager id", "manager", "manager name", "reports to"}
)

// Options control the extraction.
type Options struct {
	// EmployeeColumns overrides DefEmployeeColumns.
	EmployeeColumns []string
	// ManagerColumns overrides DefManagerColumns.
	ManagerColumns []string
	// Sheet is the worksheet to read; empty means the first one.
	Sheet string
	// Filter keeps only the rows matching it, see [ParseFilter].
	Filter string
}

func (o Options) employeeColumns() []string {
	if len(o.EmployeeColumns) > 0 {
		return o.EmployeeColumns
	}
	return DefEmployeeColumns
}

func (o Options) managerColumns() []string {
	if len(o.ManagerColumns) > 0 {
		return o.ManagerColumns
	}
	return DefManagerColumns
}

// Load reads the spreadsheet at path, applies the filter and builds the
// hierarchy.
func Load(ctx context.Context, path string, opts Options) (*Hierarchy, error) {
	t, err := ReadFile(ctx, path, opts.Sheet)
	if err != nil {
		return nil, err
	}
	if opts.Filter != "" {
		conds, err := ParseFilter(opts.Filter)
		if err != nil {
			return nil, err
		}
		if t, err = t.Filter(conds); err != nil {
			return nil, err
		}
	}
	return Build(t, opts)
}

// Field is a column value of an employee record.
type Field struct {
	Key   string
	Value string
}

// Employee is a single record of the org data.
type Employee struct {
	Name    string
	Manager string // empty for a root
	// Attrs holds every column of the row, in header order, including the
	// name and manager columns.
	Attrs []Field
}

// Attr returns the value of the column key, ignoring case.
func (e *Employee) Attr(key string) (string, bool) {
	want := normalise(key)
	for _, f := range e.Attrs {
		if normalise(f.Key) == want {
			return f.Value, true
		}
	}
	return "", false
}

// Edge is a reporting line.
type Edge struct {
	Manager string
	Report  string
}

// Hierarchy is the reporting forest built from the org data.
type Hierarchy struct {
	employees []*Employee
	byName    map[string]*Employee
	reports   map[string][]string
	roots     []string

	// Skipped is the number of rows without an employee name.
	Skipped int
	// Duplicates is the number of rows whose employee name was already seen.
	Duplicates int
}

// Build creates the hierarchy from the table.  The employee column is
// required; without the manager column every employee is a root.  An
// employee whose manager is not in the table becomes a root as well.
func Build(t *Table, opts Options) (*Hierarchy, error) {
	empCol := t.Column(opts.employeeColumns()...)
	if empCol < 0 {
		return nil, &ColumnError{Want: opts.employeeColumns(), Available: t.Columns(), Err: ErrMalformed}
	}
	mgrCol := t.Column(opts.managerColumns()...)

	h := &Hierarchy{
		byName:  make(map[string]*Employee, len(t.Rows)),
		reports: make(map[string][]string),
	}
	for _, row := range t.Rows {
		name := Cell(row, empCol)
		if name == "" {
			h.Skipped++
			continue
		}
		if _, seen := h.byName[name]; seen {
			h.Duplicates++
			continue
		}
		e := &Employee{
			Name:    name,
			Manager: Cell(row, mgrCol),
		}
		for i, key := range t.Header {
			if key == "" {
				continue
			}
			e.Attrs = append(e.Attrs, Field{Key: key, Value: Cell(row, i)})
		}
		h.employees = append(h.employees, e)
		h.byName[name] = e
	}

	for _, e := range h.employees {
		if e.Manager == e.Name {
			return nil, &CycleError{Chain: []string{e.Name, e.Name}}
		}
		if _, ok := h.byName[e.Manager]; !ok {
			h.roots = append(h.roots, e.Name)
			continue
		}
		h.reports[e.Manager] = append(h.reports[e.Manager], e.Name)
	}
	if err := h.checkCycles(); err != nil {
		return nil, err
	}
	return h, nil
}

// parent returns the manager of name if the manager is in the hierarchy.
func (h *Hierarchy) parent(name string) string {
	e, ok := h.byName[name]
	if !ok {
		return ""
	}
	if _, ok := h.byName[e.Manager]; !ok {
		return ""
	}
	return e.Manager
}

// checkCycles walks up the manager chain from every employee and fails on
// the first loop.
func (h *Hierarchy) checkCycles() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(h.employees))
	for _, e := range h.employees {
		var path []string
		cur := e.Name
		for cur != "" && state[cur] == unvisited {
			state[cur] = visiting
			path = append(path, cur)
			cur = h.parent(cur)
		}
		if cur != "" && state[cur] == visiting {
			i := slices.Index(path, cur)
			return &CycleError{Chain: append(slices.Clone(path[i:]), cur)}
		}
		for _, p := range path {
			state[p] = done
		}
	}
	return nil
}

// Len returns the number of employees.
func (h *Hierarchy) Len() int {
	return len(h.employees)
}

// Employees returns the employees in the order of the spreadsheet rows.
func (h *Hierarchy) Employees() []*Employee {
	return slices.Clone(h.employees)
}

// Lookup returns the employee by name.
func (h *Hierarchy) Lookup(name string) (*Employee, bool) {
	e, ok := h.byName[name]
	return e, ok
}

// Roots returns the names of the employees without a known manager.
func (h *Hierarchy) Roots() []string {
	return slices.Clone(h.roots)
}

// Reports returns the names of the direct reports of the manager.
func (h *Hierarchy) Reports(manager string) []string {
	return slices.Clone(h.reports[manager])
}

// Edges returns all reporting lines, ordered by report row.
func (h *Hierarchy) Edges() []Edge {
	var edges []Edge
	for _, e := range h.employees {
		if m := h.parent(e.Name); m != "" {
			edges = append(edges, Edge{Manager: m, Report: e.Name})
		}
	}
	return edges
}

// Depth returns the number of levels in the deepest tree of the forest.
func (h *Hierarchy) Depth() int {
	var walk func(name string) int
	walk = func(name string) int {
		d := 0
		for _, r := range h.reports[name] {
			d = max(d, walk(r))
		}
		return d + 1
	}
	depth := 0
	for _, r := range h.roots {
		depth = max(depth, walk(r))
	}
	return depth
}

// String returns a short summary of the hierarchy.
func (h *Hierarchy) String() string {
	var buf strings.Builder
	for i, r := range h.roots {
		if i > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(r)
		if n := len(h.reports[r]); n > 0 {
			buf.WriteString(" (")
			buf.WriteString(strings.Join(h.reports[r], ", "))
			buf.WriteString(")")
		}
	}
	return buf.String()
}
